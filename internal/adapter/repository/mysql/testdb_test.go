package mysql

import (
	"testing"
	"time"

	"crediasesor-backoffice/internal/domain/advisor"
	"crediasesor-backoffice/internal/domain/client"
	"crediasesor-backoffice/internal/domain/credit"
	"crediasesor-backoffice/internal/domain/entity"
	"crediasesor-backoffice/internal/testutil/sqlitedb"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB { return sqlitedb.Open(t) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}

type fixture struct {
	ana, beto, carla advisor.Advisor
	bank             entity.Bank
	inst             entity.Institution
	cli              client.Client
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{
		ana:   advisor.Advisor{Name: "Ana"},
		beto:  advisor.Advisor{Name: "Beto"},
		carla: advisor.Advisor{Name: "Carla"},
		bank:  entity.Bank{Name: "Banco Uno", Rate: decimal.NewFromInt(10000)},
		inst:  entity.Institution{Name: "Finanzas Dos", Rate: decimal.NewFromInt(20000)},
		cli:   client.Client{FirstName: "Juan", LastName: "Perez", NationalID: "1010"},
	}
	mustCreate(t, db, &f.ana)
	mustCreate(t, db, &f.beto)
	mustCreate(t, db, &f.carla)
	mustCreate(t, db, &f.bank)
	mustCreate(t, db, &f.inst)
	mustCreate(t, db, &f.cli)
	return f
}

func addCredit(t *testing.T, db *gorm.DB, id string, clientID, advisorID uint64, bankID, instID *uint64, amount int64, st credit.Status, requested time.Time) {
	t.Helper()
	mustCreate(t, db, &credit.Credit{
		ID: id, ClientID: clientID, AdvisorID: advisorID, BankID: bankID, InstitutionID: instID,
		Amount: decimal.NewFromInt(amount), Status: st, RequestedAt: requested,
	})
}

func ptr[T any](v T) *T { return &v }
