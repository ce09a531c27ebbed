package search

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeClient = "cliente"
	TypeCredit = "credito"

	unassigned = "No asignado"
)

// Result is one hit of the global search box. Exactly one of the embedded
// pointers is set and its fields are flattened into the JSON object; estado
// lives here because both kinds carry it.
type Result struct {
	ID       any    `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Status   string `json:"estado"`
	*ClientHit
	*CreditHit
}

type ClientHit struct {
	FirstName     string           `json:"nombre"`
	LastName      string           `json:"apellido"`
	NationalID    string           `json:"dni"`
	Email         string           `json:"email"`
	Phone         string           `json:"telefono"`
	Address       string           `json:"direccion"`
	MonthlyIncome *decimal.Decimal `json:"ingresosMensuales"`
	ActiveCredits int64            `json:"creditosActivos"`
}

type CreditHit struct {
	Client        string          `json:"cliente"`
	ClientID      uint64          `json:"clienteId"`
	Amount        decimal.Decimal `json:"monto"`
	Rate          *string         `json:"tasa"`
	TermMonths    *int            `json:"plazo"`
	Kind          string          `json:"tipo"`
	Collateral    string          `json:"garantia"`
	RequestedAt   time.Time       `json:"fechaSolicitud"`
	ApprovedAt    *time.Time      `json:"fechaAprobacion"`
	DueAt         *time.Time      `json:"fechaVencimiento"`
	Notes         string          `json:"observaciones"`
	Bank          string          `json:"banco"`
	BankID        *uint64         `json:"bancoId"`
	Institution   *string         `json:"financiera"`
	InstitutionID *uint64         `json:"financieraId"`
	Advisor       string          `json:"asesor"`
	AdvisorID     uint64          `json:"asesorId"`
}
