package credit

import (
	"context"
	"errors"
	"time"

	"crediasesor-backoffice/internal/domain/advisor"
	"crediasesor-backoffice/internal/domain/client"
	"crediasesor-backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("credit not found")

type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusInReview  Status = "En Revisión"
	StatusApproved  Status = "Aprobado"
	StatusRejected  Status = "Rechazado"
	StatusDisbursed Status = "Desembolsado"
	StatusActive    Status = "Activo"
)

// CommissionableStatuses are the states that count towards advisor commissions.
var CommissionableStatuses = []Status{StatusApproved, StatusDisbursed, StatusActive}

type Credit struct {
	ID            string           `gorm:"column:id;primaryKey;size:32" json:"id"`
	ClientID      uint64           `gorm:"column:clienteId;not null" json:"clienteId"`
	AdvisorID     uint64           `gorm:"column:asesorId;not null;index:ix_creditos_asesor_fecha,priority:1" json:"asesorId"`
	BankID        *uint64          `gorm:"column:bancoId" json:"bancoId"`
	InstitutionID *uint64          `gorm:"column:financieraId" json:"financieraId"`
	Amount        decimal.Decimal  `gorm:"column:monto;type:decimal(15,2);not null" json:"monto"`
	InterestRate  *decimal.Decimal `gorm:"column:tasa;type:decimal(7,4)" json:"tasa,omitempty"`
	TermMonths    *int             `gorm:"column:plazo" json:"plazo,omitempty"`
	Kind          string           `gorm:"column:tipo;size:40" json:"tipo,omitempty"`
	Collateral    string           `gorm:"column:garantia;size:120" json:"garantia,omitempty"`
	Status        Status           `gorm:"column:estado;size:20;not null;default:'Pendiente';index:ix_creditos_estado" json:"estado"`
	RequestedAt   time.Time        `gorm:"column:fechaSolicitud;not null;index:ix_creditos_asesor_fecha,priority:2" json:"fechaSolicitud"`
	ApprovedAt    *time.Time       `gorm:"column:fechaAprobacion" json:"fechaAprobacion,omitempty"`
	RejectedAt    *time.Time       `gorm:"column:fechaRechazo" json:"fechaRechazo,omitempty"`
	DueAt         *time.Time       `gorm:"column:fechaVencimiento" json:"fechaVencimiento,omitempty"`
	Notes         string           `gorm:"column:observaciones;type:text" json:"observaciones,omitempty"`
	CreatedAt     time.Time        `gorm:"column:createdAt;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time        `gorm:"column:updatedAt;autoUpdateTime" json:"updatedAt"`

	Client      *client.Client      `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
	Advisor     *advisor.Advisor    `gorm:"foreignKey:AdvisorID" json:"asesor,omitempty"`
	Bank        *entity.Bank        `gorm:"foreignKey:BankID" json:"banco,omitempty"`
	Institution *entity.Institution `gorm:"foreignKey:InstitutionID" json:"financiera,omitempty"`
}

func (Credit) TableName() string { return "Creditos" }

// Financed reports whether exactly one lender is set.
func (c Credit) Financed() bool { return (c.BankID == nil) != (c.InstitutionID == nil) }

// Commissionable reports whether the credit counts towards commissions.
func (c Credit) Commissionable() bool {
	if !c.Financed() {
		return false
	}
	for _, s := range CommissionableStatuses {
		if c.Status == s {
			return true
		}
	}
	return false
}

type Repository interface {
	// Search matches the credit id or the client's name with LIKE, at most limit rows.
	Search(ctx context.Context, q string, limit int) ([]Credit, error)
	GetByID(ctx context.Context, id string) (*Credit, error)
	// CountByClient counts the client's credits in any of statuses.
	CountByClient(ctx context.Context, clientID uint64, statuses []Status) (int64, error)
	// ListRequested returns credits requested in [from, to) with client, lender and advisor loaded.
	ListRequested(ctx context.Context, from, to time.Time) ([]Credit, error)
	// ListAll returns every credit with lender and advisor loaded.
	ListAll(ctx context.Context) ([]Credit, error)
}
