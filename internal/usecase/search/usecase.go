package search

import (
	"context"
	"fmt"
	"strings"

	"crediasesor-backoffice/internal/domain/client"
	"crediasesor-backoffice/internal/domain/credit"

	"github.com/dustin/go-humanize"
)

const (
	globalLimit = 5
	listLimit   = 10
)

type Usecase struct {
	clients client.Repository
	credits credit.Repository
}

func NewUsecase(clients client.Repository, credits credit.Repository) *Usecase {
	return &Usecase{clients: clients, credits: credits}
}

// All searches clients and credits, clients first. A blank query matches nothing.
func (u *Usecase) All(ctx context.Context, q string) ([]Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []Result{}, nil
	}
	clients, err := u.clients.Search(ctx, q, globalLimit)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	credits, err := u.credits.Search(ctx, q, globalLimit)
	if err != nil {
		return nil, fmt.Errorf("search credits: %w", err)
	}
	out := make([]Result, 0, len(clients)+len(credits))
	for i := range clients {
		out = append(out, clientResult(&clients[i], 0))
	}
	for i := range credits {
		out = append(out, creditResult(&credits[i]))
	}
	return out, nil
}

func (u *Usecase) Clients(ctx context.Context, q string) ([]Result, error) {
	q = strings.TrimSpace(q)
	out := []Result{}
	if q == "" {
		return out, nil
	}
	rows, err := u.clients.Search(ctx, q, listLimit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out = append(out, clientResult(&rows[i], 0))
	}
	return out, nil
}

func (u *Usecase) Credits(ctx context.Context, q string) ([]Result, error) {
	q = strings.TrimSpace(q)
	out := []Result{}
	if q == "" {
		return out, nil
	}
	rows, err := u.credits.Search(ctx, q, listLimit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out = append(out, creditResult(&rows[i]))
	}
	return out, nil
}

// Client also counts the client's live credits (approved, disbursed, active).
func (u *Usecase) Client(ctx context.Context, id uint64) (*Result, error) {
	c, err := u.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := u.credits.CountByClient(ctx, id, credit.CommissionableStatuses)
	if err != nil {
		return nil, err
	}
	r := clientResult(c, n)
	return &r, nil
}

func (u *Usecase) Credit(ctx context.Context, id string) (*Result, error) {
	c, err := u.credits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := creditResult(c)
	return &r, nil
}

func clientResult(c *client.Client, active int64) Result {
	return Result{
		ID:       c.ID,
		Type:     TypeClient,
		Title:    c.FullName(),
		Subtitle: "DNI/RUC: " + c.NationalID,
		Status:   c.Status,
		ClientHit: &ClientHit{
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			NationalID:    c.NationalID,
			Email:         c.Email,
			Phone:         c.Phone,
			Address:       c.Address,
			MonthlyIncome: c.MonthlyIncome,
			ActiveCredits: active,
		},
	}
}

func creditResult(c *credit.Credit) Result {
	hit := &CreditHit{
		Client:        "Cliente no asignado",
		ClientID:      c.ClientID,
		Amount:        c.Amount,
		TermMonths:    c.TermMonths,
		Kind:          c.Kind,
		Collateral:    c.Collateral,
		RequestedAt:   c.RequestedAt,
		ApprovedAt:    c.ApprovedAt,
		DueAt:         c.DueAt,
		Notes:         c.Notes,
		Bank:          unassigned,
		BankID:        c.BankID,
		InstitutionID: c.InstitutionID,
		Advisor:       unassigned,
		AdvisorID:     c.AdvisorID,
	}
	if c.Client != nil {
		hit.Client = c.Client.FullName()
	}
	if c.InterestRate != nil {
		r := c.InterestRate.String() + "%"
		hit.Rate = &r
	}
	if c.Bank != nil {
		hit.Bank = c.Bank.Name
	}
	if c.Institution != nil {
		hit.Institution = &c.Institution.Name
	}
	if c.Advisor != nil {
		hit.Advisor = c.Advisor.Name
	}
	return Result{
		ID:        c.ID,
		Type:      TypeCredit,
		Title:     "Crédito #" + c.ID,
		Subtitle:  fmt.Sprintf("Monto: $%s • %s", humanize.FormatInteger("#.###,", int(c.Amount.IntPart())), c.Status),
		Status:    string(c.Status),
		CreditHit: hit,
	}
}
