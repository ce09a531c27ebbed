// Package reporting aggregates credits into the dashboard summaries.
package reporting

import (
	"context"
	"errors"
	"sort"
	"time"

	"crediasesor-backoffice/internal/domain/advisor"
	"crediasesor-backoffice/internal/domain/credit"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRange = errors.New("fechaInicio and fechaFin must be YYYY-MM-DD with fechaInicio <= fechaFin")
	ErrInvalidYear  = errors.New("year must be between 2000 and 2100")
)

const topN = 5

var (
	hundred     = decimal.NewFromInt(100)
	revenueRate = decimal.RequireFromString("0.02")
	monthNames  = [...]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio",
		"Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}
)

type Usecase struct {
	credits  credit.Repository
	advisors advisor.Repository
}

func NewUsecase(credits credit.Repository, advisors advisor.Repository) *Usecase {
	return &Usecase{credits: credits, advisors: advisors}
}

// Period summarises credits requested between from and to, both inclusive.
func (u *Usecase) Period(ctx context.Context, from, to string) (*PeriodReport, error) {
	start, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return nil, ErrInvalidRange
	}
	end, err := time.Parse(time.DateOnly, to)
	if err != nil || end.Before(start) {
		return nil, ErrInvalidRange
	}
	rows, err := u.credits.ListRequested(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	r := &PeriodReport{From: from, To: to, ApprovedAmount: decimal.Zero, ApprovalRate: decimal.Zero}
	for _, c := range rows {
		switch c.Status {
		case credit.StatusApproved:
			r.Approved++
			r.ApprovedAmount = r.ApprovedAmount.Add(c.Amount)
		case credit.StatusRejected:
			r.Rejected++
		case credit.StatusPending:
			r.Pending++
		}
	}
	if len(rows) > 0 {
		r.ApprovalRate = decimal.NewFromInt(int64(r.Approved)).Mul(hundred).
			Div(decimal.NewFromInt(int64(len(rows)))).Round(2)
	}
	r.EstimatedRevenue = r.ApprovedAmount.Mul(revenueRate)
	return r, nil
}

// Banks: top lenders by managed amount; credits without a bank are left out.
func (u *Usecase) Banks(ctx context.Context) ([]LenderSummary, error) {
	return u.lenders(ctx, func(c credit.Credit) (uint64, string, bool) {
		if c.BankID == nil || c.Bank == nil {
			return 0, "", false
		}
		return *c.BankID, c.Bank.Name, true
	})
}

func (u *Usecase) Institutions(ctx context.Context) ([]LenderSummary, error) {
	return u.lenders(ctx, func(c credit.Credit) (uint64, string, bool) {
		if c.InstitutionID == nil || c.Institution == nil {
			return 0, "", false
		}
		return *c.InstitutionID, c.Institution.Name, true
	})
}

func (u *Usecase) lenders(ctx context.Context, key func(credit.Credit) (uint64, string, bool)) ([]LenderSummary, error) {
	rows, err := u.credits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	acc := map[uint64]*LenderSummary{}
	for _, c := range rows {
		id, name, ok := key(c)
		if !ok {
			continue
		}
		s := acc[id]
		if s == nil {
			s = &LenderSummary{ID: id, Name: name, Amount: decimal.Zero}
			acc[id] = s
		}
		s.Credits++
		s.Amount = s.Amount.Add(c.Amount)
	}
	out := lo.Map(lo.Values(acc), func(s *LenderSummary, _ int) LenderSummary { return *s })
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// Statuses: the most frequent statuses with their share of all credits.
func (u *Usecase) Statuses(ctx context.Context) ([]StatusSummary, error) {
	rows, err := u.credits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := lo.CountValuesBy(rows, func(c credit.Credit) credit.Status { return c.Status })
	total := decimal.NewFromInt(int64(len(rows)))
	out := make([]StatusSummary, 0, len(counts))
	for st, n := range counts {
		out = append(out, StatusSummary{
			Status:  string(st),
			Count:   n,
			Percent: decimal.NewFromInt(int64(n)).Mul(hundred).Div(total).Round(1),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// Monthly counts a year's requests per month; months without credits are omitted.
func (u *Usecase) Monthly(ctx context.Context, year int) ([]MonthSummary, error) {
	if year < 2000 || year > 2100 {
		return nil, ErrInvalidYear
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := u.credits.ListRequested(ctx, start, start.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	var months [12]*MonthSummary
	for _, c := range rows {
		m := int(c.RequestedAt.Month())
		s := months[m-1]
		if s == nil {
			s = &MonthSummary{Month: monthNames[m-1], MonthNum: m}
			months[m-1] = s
		}
		switch c.Status {
		case credit.StatusApproved:
			s.Approved++
		case credit.StatusRejected:
			s.Rejected++
		case credit.StatusPending, credit.StatusInReview:
			s.Pending++
		}
	}
	out := []MonthSummary{}
	for _, s := range months {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

// Ranking orders every advisor by approved amount; rendimiento is the
// percentage of the best advisor's amount.
func (u *Usecase) Ranking(ctx context.Context) ([]AdvisorRank, error) {
	advisors, err := u.advisors.List(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := u.credits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	approved := lo.GroupBy(lo.Filter(rows, func(c credit.Credit, _ int) bool {
		return c.Status == credit.StatusApproved
	}), func(c credit.Credit) uint64 { return c.AdvisorID })

	out := make([]AdvisorRank, 0, len(advisors))
	best := decimal.Zero
	for _, a := range advisors {
		r := AdvisorRank{AdvisorID: a.ID, Advisor: a.Name, Amount: decimal.Zero, Performance: decimal.Zero}
		for _, c := range approved[a.ID] {
			r.Credits++
			r.Amount = r.Amount.Add(c.Amount)
		}
		if r.Amount.GreaterThan(best) {
			best = r.Amount
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	for i := range out {
		out[i].Position = i + 1
		if best.IsPositive() {
			out[i].Performance = out[i].Amount.Mul(hundred).Div(best).Round(0)
		}
	}
	return out, nil
}
