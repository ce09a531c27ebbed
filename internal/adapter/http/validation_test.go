package http

import (
	"errors"
	"strings"
	"testing"

	"crediasesor-backoffice/internal/usecase/commission"
)

func fieldMsg(fe []FieldError, field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

func TestPeriodValidation(t *testing.T) {
	cv := NewValidator()

	for _, s := range []string{"2025-01", "2025-07", "1999-12"} {
		if err := cv.Validate(commission.ComputeInput{Period: s}); err != nil {
			t.Fatalf("expected %q valid, got %v", s, err)
		}
	}
	for _, s := range []string{"2025-13", "2025-00", "2025-7", "25-07", "2025/07", "2025-07-01"} {
		err := cv.Validate(commission.ComputeInput{Period: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		msg, ok := fieldMsg(ToFieldErrors(err), "periodo")
		if !ok || !strings.Contains(msg, "YYYY-MM") {
			t.Fatalf("expected period message for %q, got %q", s, msg)
		}
	}
	if msg, _ := fieldMsg(ToFieldErrors(cv.Validate(commission.ComputeInput{})), "periodo"); msg != "is required" {
		t.Fatalf("empty period message = %q", msg)
	}
}

func TestPhoneValidation(t *testing.T) {
	type P struct {
		Phone string `json:"telefono" validate:"omitempty,phone"`
	}
	cv := NewValidator()

	for _, s := range []string{"", "3001234567", "+57 300 123 4567", "(604) 444-5566"} {
		if err := cv.Validate(P{Phone: s}); err != nil {
			t.Fatalf("expected %q valid, got %v", s, err)
		}
	}
	for _, s := range []string{"123", "300-abc-4567", strings.Repeat("1", 21)} {
		err := cv.Validate(P{Phone: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if msg, _ := fieldMsg(ToFieldErrors(err), "telefono"); msg != "must be a phone number" {
			t.Fatalf("unexpected message for %q: %q", s, msg)
		}
	}
}

func TestToFieldErrors_UsesJSONNames(t *testing.T) {
	type P struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"correo" validate:"required,email"`
		Status   string `json:"estado" validate:"oneof=Pendiente Pagado"`
		Password string `json:"newPassword" validate:"min=6"`
		Internal string `validate:"required"`
	}
	err := NewValidator().Validate(P{Email: "x", Status: "Otro", Password: "abc"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fe := ToFieldErrors(err)

	want := map[string]string{
		"username":    "is required",
		"correo":      "must be a valid email",
		"estado":      "must be one of: Pendiente, Pagado",
		"newPassword": "must have at least 6 characters",
		"Internal":    "is required",
	}
	if len(fe) != len(want) {
		t.Fatalf("got %d errors: %+v", len(fe), fe)
	}
	for field, w := range want {
		if got, ok := fieldMsg(fe, field); !ok || got != w {
			t.Errorf("%s: got %q, want %q", field, got, w)
		}
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected %+v", fe)
	}
}
