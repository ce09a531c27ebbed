package reporting

import "github.com/shopspring/decimal"

type PeriodReport struct {
	From             string          `json:"fechaInicio"`
	To               string          `json:"fechaFin"`
	Approved         int             `json:"creditosAprobados"`
	Rejected         int             `json:"creditosRechazados"`
	Pending          int             `json:"creditosPendientes"`
	ApprovedAmount   decimal.Decimal `json:"montoTotal"`
	ApprovalRate     decimal.Decimal `json:"tasaAprobacion"`
	EstimatedRevenue decimal.Decimal `json:"comisionesTotal"`
}

// LenderSummary is one row of the per-bank or per-institution summary.
type LenderSummary struct {
	ID      uint64          `json:"id"`
	Name    string          `json:"nombre"`
	Credits int             `json:"total_creditos"`
	Amount  decimal.Decimal `json:"total_monto"`
}

type StatusSummary struct {
	Status  string          `json:"estado"`
	Count   int             `json:"cantidad"`
	Percent decimal.Decimal `json:"porcentaje"`
}

type MonthSummary struct {
	Month    string `json:"mes"`
	MonthNum int    `json:"mes_num"`
	Approved int    `json:"aprobados"`
	Rejected int    `json:"rechazados"`
	Pending  int    `json:"pendientes"`
}

type AdvisorRank struct {
	Position    int             `json:"posicion"`
	AdvisorID   uint64          `json:"asesorId"`
	Advisor     string          `json:"asesor"`
	Credits     int             `json:"creditos"`
	Amount      decimal.Decimal `json:"montoGestionado"`
	Performance decimal.Decimal `json:"rendimiento"`
}
