package commission

import "errors"

var (
	ErrNotFound            = errors.New("commission not found")
	ErrInvalidPeriod       = errors.New("invalid period, expected YYYY-MM")
	ErrAlreadyComputed     = errors.New("commission already computed for advisor and period")
	ErrPeriodComplete      = errors.New("period already fully computed")
	ErrNoQualifyingCredits = errors.New("no qualifying credits in period")
	ErrBelowMillionFloor   = errors.New("no credit reached the million floor")
	ErrComputeInProgress   = errors.New("commission computation already running for period")
	ErrNotDeletable        = errors.New("only pending commissions can be deleted")
	ErrInvalidStatus       = errors.New("invalid commission status or payment method")
)

// Kind discriminates informational outcomes in API bodies.
type Kind string

const (
	KindAdvisorComputed Kind = "asesor_ya_calculado"
	KindPeriodComplete  Kind = "periodo_completo"
	KindNoCredits       Kind = "sin_creditos"
	KindBelowFloor      Kind = "sin_comisiones_validas"
	KindInProgress      Kind = "calculo_en_curso"
)

// OutcomeError is a non-failure result of a computation (conflict or
// nothing to compute). Detail carries the diagnostic payload for the caller.
type OutcomeError struct {
	Err    error
	Kind   Kind
	Detail any
}

func (e *OutcomeError) Error() string { return e.Err.Error() }

func (e *OutcomeError) Unwrap() error { return e.Err }

func NewOutcome(err error, kind Kind, detail any) *OutcomeError {
	return &OutcomeError{Err: err, Kind: kind, Detail: detail}
}
