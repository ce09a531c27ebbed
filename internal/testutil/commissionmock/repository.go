package commissionmock

import (
	"context"
	"errors"

	"crediasesor-backoffice/internal/domain/advisor"
	domain "crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/domain/entity"
)

var _ domain.Repository = (*Repo)(nil)

// ErrUnimplemented is returned by reads whose function field is nil.
var ErrUnimplemented = errors.New("commissionmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Nil writes are no-ops; nil reads return ErrUnimplemented.
type Repo struct {
	QualifyingAdvisorsFn      func(ctx context.Context, w domain.Window) ([]advisor.Advisor, error)
	CreditLinesFn             func(ctx context.Context, t entity.Type, w domain.Window, advisorIDs []uint64) ([]domain.CreditLine, error)
	AdvisorsWithCommissionsFn func(ctx context.Context, period string) ([]advisor.Advisor, error)
	ExistsForAdvisorFn        func(ctx context.Context, period string, advisorID uint64) (bool, error)
	CreateIfAbsentFn          func(ctx context.Context, c *domain.Commission) (bool, error)
	DeleteByPeriodFn          func(ctx context.Context, period string, advisorID *uint64) (int64, error)
	GetByIDFn                 func(ctx context.Context, id uint64) (*domain.Commission, error)
	ListFn                    func(ctx context.Context, f domain.Filter) ([]domain.Commission, error)
	SaveFn                    func(ctx context.Context, c *domain.Commission) error
	DeleteFn                  func(ctx context.Context, id uint64) error
	SummaryFn                 func(ctx context.Context, limit int) ([]domain.PeriodSummary, error)
}

func (m *Repo) QualifyingAdvisors(ctx context.Context, w domain.Window) ([]advisor.Advisor, error) {
	if m.QualifyingAdvisorsFn != nil {
		return m.QualifyingAdvisorsFn(ctx, w)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) CreditLines(ctx context.Context, t entity.Type, w domain.Window, advisorIDs []uint64) ([]domain.CreditLine, error) {
	if m.CreditLinesFn != nil {
		return m.CreditLinesFn(ctx, t, w, advisorIDs)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) AdvisorsWithCommissions(ctx context.Context, period string) ([]advisor.Advisor, error) {
	if m.AdvisorsWithCommissionsFn != nil {
		return m.AdvisorsWithCommissionsFn(ctx, period)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) ExistsForAdvisor(ctx context.Context, period string, advisorID uint64) (bool, error) {
	if m.ExistsForAdvisorFn != nil {
		return m.ExistsForAdvisorFn(ctx, period, advisorID)
	}
	return false, ErrUnimplemented
}

func (m *Repo) CreateIfAbsent(ctx context.Context, c *domain.Commission) (bool, error) {
	if m.CreateIfAbsentFn != nil {
		return m.CreateIfAbsentFn(ctx, c)
	}
	return true, nil
}

func (m *Repo) DeleteByPeriod(ctx context.Context, period string, advisorID *uint64) (int64, error) {
	if m.DeleteByPeriodFn != nil {
		return m.DeleteByPeriodFn(ctx, period, advisorID)
	}
	return 0, nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Commission, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Commission, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) Save(ctx context.Context, c *domain.Commission) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) Summary(ctx context.Context, limit int) ([]domain.PeriodSummary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, limit)
	}
	return nil, ErrUnimplemented
}
