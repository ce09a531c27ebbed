package commission

import (
	"fmt"
	"strings"
	"time"

	domain "crediasesor-backoffice/internal/domain/commission"

	"github.com/shopspring/decimal"
)

const (
	systemDescription = "Sistema colombiano: Comisión fija por cada millón de pesos"
	systemFormula     = "FLOOR(Monto ÷ 1,000,000) × Comisión_por_millón"
)

type ComputeInput struct {
	Period    string  `json:"periodo" validate:"required,period"`
	AdvisorID *uint64 `json:"asesorId"`
}

type UpdateInput struct {
	Status         domain.Status         `json:"estado" validate:"required,oneof=Pendiente Pagado Rechazado"`
	PaidAt         *PaymentDate          `json:"fechaPago"`
	PaymentMethod  *domain.PaymentMethod `json:"metodoPago" validate:"omitempty,oneof=Transferencia Efectivo Cheque"`
	TransferNumber *string               `json:"numeroTransferencia"`
	Notes          *string               `json:"observaciones"`
	Bonuses        *decimal.Decimal      `json:"bonificaciones"`
	Deductions     *decimal.Decimal      `json:"deducciones"`
}

// PaymentDate reads fechaPago either as a plain date (2006-01-02, taken as
// UTC midnight) or as an RFC3339 timestamp. An empty string leaves it zero.
type PaymentDate struct{ time.Time }

func (d *PaymentDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("fechaPago %q: want YYYY-MM-DD or RFC3339", s)
}

type CalculationSystem struct {
	Description string `json:"descripcion"`
	Formula     string `json:"formula"`
}

// DetailLine is the human-readable row shown next to the raw commissions.
type DetailLine struct {
	Advisor     string `json:"asesor"`
	Entity      string `json:"entidad"`
	Credits     int    `json:"creditos"`
	Amount      string `json:"montoTotal"`
	Millions    int64  `json:"millonesGestionados"`
	Rate        string `json:"comisionPorMillon"`
	Calculation string `json:"calculoComision"`
	Total       string `json:"comisionTotal"`
	Status      string `json:"estado"`
	PaidOn      string `json:"fechaPago"`
	Method      string `json:"metodoPago"`
}

type ReportFile struct {
	Generated bool   `json:"generado"`
	Name      string `json:"nombre"`
	Path      string `json:"ruta"`
	Size      int64  `json:"tamaño"`
	Content   string `json:"contenido"`
}

type ComputeResult struct {
	Success                bool                `json:"success"`
	Message                string              `json:"message"`
	Period                 string              `json:"periodo"`
	AdvisorID              *uint64             `json:"asesorId"`
	AdvisorsWithCommission int                 `json:"asesoresConComision"`
	Rows                   int                 `json:"registros"`
	TotalCommission        decimal.Decimal     `json:"totalComisiones"`
	System                 CalculationSystem   `json:"sistemaCalculo"`
	Detail                 []DetailLine        `json:"detalle"`
	Commissions            []domain.Commission `json:"comisiones"`
	Deleted                *int64              `json:"comisionesEliminadas,omitempty"`
	File                   ReportFile          `json:"archivo"`
}

// Outcome payloads. Each one is the full response body for its outcome.

type AdvisorComputed struct {
	Message   string      `json:"message"`
	Kind      domain.Kind `json:"tipo"`
	Period    string      `json:"periodo"`
	AdvisorID uint64      `json:"asesorId"`
	Action    string      `json:"accion"`
}

type PeriodComplete struct {
	Message            string      `json:"message"`
	Kind               domain.Kind `json:"tipo"`
	Period             string      `json:"periodo"`
	QualifyingAdvisors int         `json:"totalAsesoresConCreditos"`
	ComputedAdvisors   int         `json:"totalAsesoresConComisiones"`
	ComputedNames      []string    `json:"asesoresConComisiones"`
	Action             string      `json:"accion"`
}

type InProgress struct {
	Message string      `json:"message"`
	Kind    domain.Kind `json:"tipo"`
	Period  string      `json:"periodo"`
}

type NoCreditsDetail struct {
	Period      string   `json:"periodo"`
	AdvisorID   *uint64  `json:"asesorId"`
	From        string   `json:"fechaInicio"`
	To          string   `json:"fechaFin"`
	Explanation string   `json:"explicacion"`
	Suggestions []string `json:"sugerencias"`
}

type Criteria struct {
	ValidStatuses []string `json:"estadosValidos"`
	Requires      string   `json:"requiere"`
	System        string   `json:"sistema"`
}

type NoCredits struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Kind     domain.Kind     `json:"tipo"`
	Detail   NoCreditsDetail `json:"detalles"`
	Criteria Criteria        `json:"criterios"`
}

type BelowFloorDetail struct {
	Period       string          `json:"periodo"`
	AdvisorID    *uint64         `json:"asesorId"`
	CreditsFound int             `json:"creditosEncontrados"`
	AmountFound  decimal.Decimal `json:"montoTotalEncontrado"`
	Reason       string          `json:"razonPrincipal"`
	System       string          `json:"sistemaComision"`
}

type BelowFloor struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Kind    domain.Kind      `json:"tipo"`
	Detail  BelowFloorDetail `json:"detalles"`
}
