package commission

import (
	"fmt"
	"time"

	"crediasesor-backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var million = decimal.NewFromInt(1_000_000)

// CreditLine is one qualifying credit joined to its advisor and lender.
type CreditLine struct {
	CreditID    string
	AdvisorID   uint64
	AdvisorName string
	EntityType  entity.Type
	EntityID    uint64
	EntityName  string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// WholeMillions is floor(amount / 1,000,000).
func WholeMillions(amount decimal.Decimal) int64 {
	return amount.Div(million).Floor().IntPart()
}

// Line is the advisor x entity aggregate a commission row is built from.
type Line struct {
	AdvisorID   uint64
	AdvisorName string
	EntityType  entity.Type
	EntityID    uint64
	EntityName  string
	Rate        decimal.Decimal
	Credits     int
	Amount      decimal.Decimal
	Millions    int64
	Base        decimal.Decimal
}

type lineKey struct {
	advisorID  uint64
	entityType entity.Type
	entityID   uint64
}

// Aggregate folds credit lines into advisor x entity lines in first-seen
// order. The million floor applies per credit, so 999,999 never pays even
// when several such credits add up past a million.
func Aggregate(credits []CreditLine) []Line {
	idx := make(map[lineKey]int, len(credits))
	out := make([]Line, 0, len(credits))
	for _, c := range credits {
		k := lineKey{c.AdvisorID, c.EntityType, c.EntityID}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Line{
				AdvisorID:   c.AdvisorID,
				AdvisorName: c.AdvisorName,
				EntityType:  c.EntityType,
				EntityID:    c.EntityID,
				EntityName:  c.EntityName,
				Rate:        c.Rate,
			})
		}
		m := WholeMillions(c.Amount)
		l := &out[i]
		l.Credits++
		l.Amount = l.Amount.Add(c.Amount)
		l.Millions += m
		l.Base = l.Base.Add(decimal.NewFromInt(m).Mul(c.Rate))
	}
	return out
}

// Payable drops lines that earn nothing.
func Payable(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Base.IsPositive() {
			out = append(out, l)
		}
	}
	return out
}

// AutoPaidNote is the observation stored on engine-generated rows.
func AutoPaidNote(period string) string {
	return fmt.Sprintf("Comisión calculada y pagada automáticamente para el periodo %s", period)
}

// NewPaid builds the row persisted for a computed line. Engine rows are
// settled immediately by transfer.
func NewPaid(l Line, period string, now time.Time) *Commission {
	method := PaymentTransfer
	note := AutoPaidNote(period)
	paidAt := now
	c := &Commission{
		AdvisorID:       l.AdvisorID,
		EntityType:      l.EntityType,
		EntityID:        l.EntityID,
		Period:          period,
		ApprovedCredits: l.Credits,
		ManagedAmount:   l.Amount,
		BaseCommission:  l.Base,
		Bonuses:         decimal.Zero,
		Deductions:      decimal.Zero,
		TotalCommission: l.Base,
		Status:          StatusPaid,
		ComputedAt:      now,
		PaidAt:          &paidAt,
		PaymentMethod:   &method,
		Notes:           &note,
	}
	id := l.EntityID
	if l.EntityType == entity.TypeBank {
		c.BankID = &id
	} else {
		c.InstitutionID = &id
	}
	return c
}
