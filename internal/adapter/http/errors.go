package http

import (
	"errors"
	"fmt"
	"net/http"

	"crediasesor-backoffice/internal/domain/client"
	"crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/domain/credit"
	"crediasesor-backoffice/internal/domain/message"
	"crediasesor-backoffice/internal/domain/user"
	"crediasesor-backoffice/internal/usecase/auth"
	"crediasesor-backoffice/internal/usecase/chat"
	"crediasesor-backoffice/internal/usecase/reporting"
	usersuc "crediasesor-backoffice/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

var outcomeStatus = map[commission.Kind]int{
	commission.KindAdvisorComputed: http.StatusConflict,
	commission.KindPeriodComplete:  http.StatusConflict,
	commission.KindInProgress:      http.StatusConflict,
	commission.KindNoCredits:       http.StatusNotFound,
	commission.KindBelowFloor:      http.StatusNotFound,
}

// ValidationError carries validator failures to the error handler.
type ValidationError struct{ Details []FieldError }

func (e *ValidationError) Error() string { return fmt.Sprintf("validation failed (%d fields)", len(e.Details)) }

// statusOf maps domain errors to HTTP status codes; unknown errors are 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, commission.ErrInvalidPeriod),
		errors.Is(err, commission.ErrNotDeletable),
		errors.Is(err, commission.ErrInvalidStatus),
		errors.Is(err, user.ErrInvalidTheme),
		errors.Is(err, user.ErrSelfDelete),
		errors.Is(err, usersuc.ErrCurrentPasswordRequired),
		errors.Is(err, usersuc.ErrPasswordTooShort),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, reporting.ErrInvalidRange),
		errors.Is(err, reporting.ErrInvalidYear):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUserInactive),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, usersuc.ErrProtectedAccount),
		errors.Is(err, message.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, commission.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, credit.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrUsernameTaken),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, commission.ErrComputeInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler is installed as echo's HTTPErrorHandler. Handlers return
// domain errors and this writes them as {success:false, message}.
// Commission outcomes carry their own body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var (
		code int
		body any
		oe   *commission.OutcomeError
		ve   *ValidationError
		he   *echo.HTTPError
	)
	switch {
	case errors.As(err, &oe):
		var ok bool
		if code, ok = outcomeStatus[oe.Kind]; !ok {
			code = http.StatusConflict
		}
		body = oe.Detail
	case errors.As(err, &ve):
		code, body = http.StatusUnprocessableEntity, ErrorResponse{Message: "validation failed", Details: ve.Details}
	case errors.As(err, &he):
		code, body = he.Code, ErrorResponse{Message: fmt.Sprint(he.Message)}
	default:
		code, body = statusOf(err), ErrorResponse{Message: err.Error()}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// bindValid binds the request then runs the validator.
func bindValid(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(dst); err != nil {
		return &ValidationError{Details: ToFieldErrors(err)}
	}
	return nil
}

func badRequest(msg string) error { return echo.NewHTTPError(http.StatusBadRequest, msg) }
