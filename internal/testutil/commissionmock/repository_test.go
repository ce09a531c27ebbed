package commissionmock

import (
	"context"
	"errors"
	"testing"

	domain "crediasesor-backoffice/internal/domain/commission"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if ok, err := m.CreateIfAbsent(ctx, &domain.Commission{}); !ok || err != nil {
		t.Fatalf("CreateIfAbsent default = %v, %v", ok, err)
	}
	if n, err := m.DeleteByPeriod(ctx, "2025-07", nil); n != 0 || err != nil {
		t.Fatalf("DeleteByPeriod default = %d, %v", n, err)
	}
	if err := m.Save(ctx, &domain.Commission{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if _, err := m.GetByID(ctx, 1); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("GetByID default: %v", err)
	}
	if _, err := m.QualifyingAdvisors(ctx, domain.Window{}); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("QualifyingAdvisors default: %v", err)
	}
}

func TestRepo_UsesFunc(t *testing.T) {
	ctx := context.Background()
	want := &domain.Commission{ID: 7}
	called := false
	m := &Repo{
		GetByIDFn: func(gotCtx context.Context, id uint64) (*domain.Commission, error) {
			called = true
			if gotCtx != ctx || id != 7 {
				t.Fatalf("GetByID args mismatch: %d", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByID(ctx, 7)
	if err != nil || got != want || !called {
		t.Fatalf("GetByID = %+v, %v (called=%v)", got, err, called)
	}
}
