package commission

import (
	"time"

	"crediasesor-backoffice/internal/domain/advisor"
	"crediasesor-backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pendiente"
	StatusPaid     Status = "Pagado"
	StatusRejected Status = "Rechazado"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid || s == StatusRejected
}

type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "Transferencia"
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentCheque   PaymentMethod = "Cheque"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentTransfer || m == PaymentCash || m == PaymentCheque
}

// Table: Comisions. One row per (advisor, entity type, entity id, period),
// backed by ux_comisions_asesor_entidad_periodo.
type Commission struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AdvisorID       uint64          `gorm:"column:asesorId;not null;uniqueIndex:ux_comisions_asesor_entidad_periodo,priority:1" json:"asesorId"`
	BankID          *uint64         `gorm:"column:bancoid" json:"bancoid"`
	InstitutionID   *uint64         `gorm:"column:financieraId" json:"financieraId"`
	EntityType      entity.Type     `gorm:"column:tipoEntidad;size:16;not null;uniqueIndex:ux_comisions_asesor_entidad_periodo,priority:2" json:"tipoEntidad"`
	EntityID        uint64          `gorm:"column:entidadId;not null;uniqueIndex:ux_comisions_asesor_entidad_periodo,priority:3" json:"entidadId"`
	Period          string          `gorm:"column:periodo;size:7;not null;uniqueIndex:ux_comisions_asesor_entidad_periodo,priority:4;index:ix_comisions_periodo" json:"periodo"`
	ApprovedCredits int             `gorm:"column:creditosAprobados;not null;default:0" json:"creditosAprobados"`
	ManagedAmount   decimal.Decimal `gorm:"column:montoTotalGestionado;type:decimal(15,2);not null;default:0" json:"montoTotalGestionado"`
	BaseCommission  decimal.Decimal `gorm:"column:comisionBase;type:decimal(15,2);not null;default:0" json:"comisionBase"`
	Bonuses         decimal.Decimal `gorm:"column:bonificaciones;type:decimal(15,2);not null;default:0" json:"bonificaciones"`
	Deductions      decimal.Decimal `gorm:"column:deducciones;type:decimal(15,2);not null;default:0" json:"deducciones"`
	TotalCommission decimal.Decimal `gorm:"column:comisionTotal;type:decimal(15,2);not null;default:0" json:"comisionTotal"`
	Status          Status          `gorm:"column:estado;size:16;not null;default:'Pendiente'" json:"estado"`
	ComputedAt      time.Time       `gorm:"column:fechaCalculo;not null" json:"fechaCalculo"`
	PaidAt          *time.Time      `gorm:"column:fechaPago" json:"fechaPago"`
	PaymentMethod   *PaymentMethod  `gorm:"column:metodoPago;size:16" json:"metodoPago"`
	TransferNumber  *string         `gorm:"column:numeroTransferencia;size:64" json:"numeroTransferencia"`
	Notes           *string         `gorm:"column:observaciones;type:text" json:"observaciones"`
	CreatedAt       time.Time       `gorm:"column:createdAt;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"column:updatedAt;autoUpdateTime" json:"updatedAt"`

	Advisor     *advisor.Advisor    `gorm:"foreignKey:AdvisorID" json:"asesor,omitempty"`
	Bank        *entity.Bank        `gorm:"foreignKey:BankID" json:"banco,omitempty"`
	Institution *entity.Institution `gorm:"foreignKey:InstitutionID" json:"financiera,omitempty"`
}

func (Commission) TableName() string { return "Comisions" }

// Recalculate sets the total from base, bonuses and deductions.
func (c *Commission) Recalculate() {
	c.TotalCommission = c.BaseCommission.Add(c.Bonuses).Sub(c.Deductions)
}

// Deletable reports whether the row may still be removed.
func (c *Commission) Deletable() bool { return c.Status == StatusPending }

// PeriodSummary aggregates the commissions of one period.
type PeriodSummary struct {
	Period          string          `json:"periodo"`
	Count           int64           `json:"totalComisiones"`
	Advisors        int64           `json:"totalAsesores"`
	TotalAmount     decimal.Decimal `json:"totalMonto"`
	Pending         int64           `json:"pendientes"`
	Paid            int64           `json:"pagados"`
	Rejected        int64           `json:"rechazados"`
	BankRows        int64           `json:"comisionesBancos"`
	InstitutionRows int64           `json:"comisionesFinancieras"`
}
