package mysql

import (
	"context"
	"errors"
	"testing"

	"crediasesor-backoffice/internal/domain/client"
	"crediasesor-backoffice/internal/domain/credit"
)

func TestClientAndCreditRepo_Search(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db)
	ctx := context.Background()

	other := client.Client{FirstName: "Lucía", LastName: "Gómez", NationalID: "2020"}
	mustCreate(t, db, &other)
	addCredit(t, db, "CRD-20250001", f.cli.ID, f.ana.ID, &f.bank.ID, nil, 5_000_000, credit.StatusApproved, day(2025, 7, 1))
	addCredit(t, db, "CRD-20250002", other.ID, f.beto.ID, nil, &f.inst.ID, 8_000_000, credit.StatusPending, day(2025, 7, 2))

	clients := NewClientRepository(db)
	got, err := clients.Search(ctx, "Per", 5)
	if err != nil || len(got) != 1 || got[0].NationalID != "1010" {
		t.Fatalf("client search = %+v err=%v", got, err)
	}
	got, _ = clients.Search(ctx, "2020", 5)
	if len(got) != 1 || got[0].FirstName != "Lucía" {
		t.Fatalf("search by dni = %+v", got)
	}
	if _, err := clients.GetByID(ctx, 404); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("GetByID missing: %v", err)
	}

	credits := NewCreditRepository(db)
	byClient, err := credits.Search(ctx, "Gómez", 5)
	if err != nil || len(byClient) != 1 || byClient[0].ID != "CRD-20250002" {
		t.Fatalf("credit search by client = %+v err=%v", byClient, err)
	}
	if byClient[0].Client == nil || byClient[0].Client.LastName != "Gómez" {
		t.Fatalf("client not joined: %+v", byClient[0].Client)
	}
	if byClient[0].Institution == nil || byClient[0].Advisor == nil || byClient[0].Bank != nil {
		t.Fatalf("lender/advisor not loaded: %+v", byClient[0])
	}
	byID, _ := credits.Search(ctx, "2025000", 1)
	if len(byID) != 1 {
		t.Fatalf("limit not applied: %d", len(byID))
	}

	if n, err := credits.CountByClient(ctx, other.ID, credit.CommissionableStatuses); err != nil || n != 0 {
		t.Fatalf("CountByClient pending-only = %d, %v", n, err)
	}
	if n, _ := credits.CountByClient(ctx, f.cli.ID, credit.CommissionableStatuses); n != 1 {
		t.Fatalf("CountByClient = %d", n)
	}

	c, err := credits.GetByID(ctx, "CRD-20250001")
	if err != nil || c.Bank == nil || c.Advisor == nil || c.Client == nil || c.Institution != nil {
		t.Fatalf("GetByID = %+v err=%v", c, err)
	}
	if _, err := credits.GetByID(ctx, "CRD-0"); !errors.Is(err, credit.ErrNotFound) {
		t.Fatalf("missing credit: %v", err)
	}

	july, err := credits.ListRequested(ctx, day(2025, 7, 2), day(2025, 8, 1))
	if err != nil || len(july) != 1 || july[0].ID != "CRD-20250002" {
		t.Fatalf("ListRequested = %+v err=%v", july, err)
	}
	all, _ := credits.ListAll(ctx)
	if len(all) != 2 {
		t.Fatalf("ListAll = %d", len(all))
	}

	advisors, err := NewAdvisorRepository(db).List(ctx)
	if err != nil || len(advisors) != 3 || advisors[0].Name != "Ana" {
		t.Fatalf("advisors = %+v err=%v", advisors, err)
	}
}
