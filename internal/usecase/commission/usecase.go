package commission

import (
	"context"
	"fmt"
	"time"

	"crediasesor-backoffice/internal/domain/advisor"
	domain "crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/domain/credit"
	"crediasesor-backoffice/internal/domain/entity"
	"crediasesor-backoffice/internal/domain/uow"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportWriter persists a rendered report and returns where it landed.
type ReportWriter interface {
	Write(name string, content []byte) (path string, size int64, err error)
}

// Locker serialises computations of the same period across instances.
type Locker interface {
	TryLock(ctx context.Context, period string) (unlock func(), acquired bool, err error)
}

type nopLocker struct{}

func (nopLocker) TryLock(context.Context, string) (func(), bool, error) { return func() {}, true, nil }

type Usecase struct {
	uow     uow.UnitOfWork
	repo    domain.Repository
	reports ReportWriter
	locker  Locker
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Usecase)

func WithLocker(l Locker) Option { return func(u *Usecase) { u.locker = l } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

// NewUsecase: repo serves reads, tx runs computations, reports stores the TXT artifact.
func NewUsecase(tx uow.UnitOfWork, repo domain.Repository, reports ReportWriter, opts ...Option) *Usecase {
	u := &Usecase{
		uow:     tx,
		repo:    repo,
		reports: reports,
		locker:  nopLocker{},
		now:     func() time.Time { return time.Now().UTC() },
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Compute persists commissions for every advisor x entity pair of the period
// that is not computed yet.
func (u *Usecase) Compute(ctx context.Context, in ComputeInput) (*ComputeResult, error) {
	return u.run(ctx, in, false)
}

// Recompute deletes the period's rows (optionally one advisor's) and computes
// again. Delete and insert share a transaction.
func (u *Usecase) Recompute(ctx context.Context, in ComputeInput) (*ComputeResult, error) {
	return u.run(ctx, in, true)
}

func (u *Usecase) run(ctx context.Context, in ComputeInput, recompute bool) (*ComputeResult, error) {
	if in.Period == "" {
		return nil, domain.ErrInvalidPeriod
	}
	p, err := domain.ParsePeriod(in.Period)
	if err != nil {
		return nil, err
	}
	period := p.String()

	unlock, ok, err := u.locker.TryLock(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("lock period %s: %w", period, err)
	}
	if !ok {
		return nil, domain.NewOutcome(domain.ErrComputeInProgress, domain.KindInProgress, InProgress{
			Message: "Ya hay un cálculo de comisiones en curso para este periodo",
			Kind:    domain.KindInProgress,
			Period:  period,
		})
	}
	defer unlock()

	var res *ComputeResult
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var deleted *int64
		if recompute {
			n, err := r.Commissions.DeleteByPeriod(ctx, period, in.AdvisorID)
			if err != nil {
				return fmt.Errorf("delete period %s: %w", period, err)
			}
			deleted = &n
			u.log.Info("commissions deleted for recompute",
				zap.String("periodo", period), zap.Int64("deleted", n))
		}
		out, err := u.compute(ctx, r.Commissions, p, in.AdvisorID)
		if err != nil {
			return err
		}
		out.Deleted = deleted
		res = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("commissions computed",
		zap.String("periodo", period),
		zap.Int("rows", res.Rows),
		zap.String("total", res.TotalCommission.String()),
		zap.String("file", res.File.Name))
	return res, nil
}

func advisorIDs(as []advisor.Advisor) []uint64 {
	return lo.Map(as, func(a advisor.Advisor, _ int) uint64 { return a.ID })
}

func (u *Usecase) compute(ctx context.Context, repo domain.Repository, p domain.Period, advisorID *uint64) (*ComputeResult, error) {
	period := p.String()
	w := p.Window()

	var scope []uint64
	var missing []advisor.Advisor
	if advisorID != nil {
		exists, err := repo.ExistsForAdvisor(ctx, period, *advisorID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, advisorComputed(period, *advisorID)
		}
		scope = []uint64{*advisorID}
	} else {
		qualifying, err := repo.QualifyingAdvisors(ctx, w)
		if err != nil {
			return nil, err
		}
		computed, err := repo.AdvisorsWithCommissions(ctx, period)
		if err != nil {
			return nil, err
		}
		if len(computed) > 0 {
			done := advisorIDs(computed)
			missing = lo.Filter(qualifying, func(a advisor.Advisor, _ int) bool { return !lo.Contains(done, a.ID) })
			if len(missing) == 0 {
				return nil, periodComplete(period, len(qualifying), computed)
			}
			scope = advisorIDs(missing)
			u.log.Info("narrowing computation to advisors without commissions",
				zap.String("periodo", period),
				zap.Strings("asesores", lo.Map(missing, func(a advisor.Advisor, _ int) string { return a.Name })))
		}
	}

	bank, err := repo.CreditLines(ctx, entity.TypeBank, w, scope)
	if err != nil {
		return nil, err
	}
	inst, err := repo.CreditLines(ctx, entity.TypeInstitution, w, scope)
	if err != nil {
		return nil, err
	}
	lines := domain.Aggregate(append(bank, inst...))
	if len(lines) == 0 {
		return nil, noCredits(p, advisorID)
	}

	payable := domain.Payable(lines)
	if len(payable) == 0 {
		return nil, belowFloor(period, advisorID, lines)
	}

	now := u.now()
	rows := make([]domain.Commission, 0, len(payable))
	persisted := make([]domain.Line, 0, len(payable))
	for _, l := range payable {
		c := domain.NewPaid(l, period, now)
		created, err := repo.CreateIfAbsent(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("insert commission advisor=%d entity=%s/%d: %w", l.AdvisorID, l.EntityType, l.EntityID, err)
		}
		if !created {
			u.log.Warn("commission already present, skipped",
				zap.String("periodo", period), zap.Uint64("asesorId", l.AdvisorID),
				zap.String("tipoEntidad", string(l.EntityType)), zap.Uint64("entidadId", l.EntityID))
			continue
		}
		rows = append(rows, *c)
		persisted = append(persisted, l)
	}
	if len(rows) == 0 {
		if advisorID != nil {
			return nil, advisorComputed(period, *advisorID)
		}
		computed, err := repo.AdvisorsWithCommissions(ctx, period)
		if err != nil {
			return nil, err
		}
		return nil, periodComplete(period, len(lo.UniqBy(lines, func(l domain.Line) uint64 { return l.AdvisorID })), computed)
	}

	content := RenderReport(persisted, period, advisorID, now)
	name := FileName(period, advisorID, now)
	path, size, err := u.reports.Write(name, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("write report %s: %w", name, err)
	}

	return &ComputeResult{
		Success:                true,
		Message:                resultMessage(period, advisorID, missing),
		Period:                 period,
		AdvisorID:              advisorID,
		AdvisorsWithCommission: len(lo.UniqBy(persisted, func(l domain.Line) uint64 { return l.AdvisorID })),
		Rows:                   len(rows),
		TotalCommission:        sumBase(persisted),
		System:                 CalculationSystem{Description: systemDescription, Formula: systemFormula},
		Detail:                 detailLines(persisted, now),
		Commissions:            rows,
		File: ReportFile{
			Generated: true,
			Name:      name,
			Path:      path,
			Size:      size,
			Content:   content,
		},
	}, nil
}

func resultMessage(period string, advisorID *uint64, missing []advisor.Advisor) string {
	switch {
	case advisorID != nil:
		return fmt.Sprintf("Comisión calculada para asesor específico en %s", period)
	case len(missing) > 0:
		return fmt.Sprintf("Comisiones completadas para %d asesores faltantes en %s", len(missing), period)
	default:
		return fmt.Sprintf("Comisiones calculadas para todos los asesores en %s", period)
	}
}

func advisorComputed(period string, advisorID uint64) error {
	return domain.NewOutcome(domain.ErrAlreadyComputed, domain.KindAdvisorComputed, AdvisorComputed{
		Message:   "Ya existe comisión para este asesor en el periodo",
		Kind:      domain.KindAdvisorComputed,
		Period:    period,
		AdvisorID: advisorID,
		Action:    "Este asesor ya tiene comisión calculada para este periodo",
	})
}

func periodComplete(period string, qualifying int, computed []advisor.Advisor) error {
	return domain.NewOutcome(domain.ErrPeriodComplete, domain.KindPeriodComplete, PeriodComplete{
		Message:            "Ya existen comisiones completas para este periodo",
		Kind:               domain.KindPeriodComplete,
		Period:             period,
		QualifyingAdvisors: qualifying,
		ComputedAdvisors:   len(computed),
		ComputedNames:      lo.Map(computed, func(a advisor.Advisor, _ int) string { return a.Name }),
		Action:             "Todos los asesores ya tienen comisiones calculadas para este periodo",
	})
}

func noCredits(p domain.Period, advisorID *uint64) error {
	explanation := fmt.Sprintf("No se encontraron créditos aprobados para los asesores faltantes en el periodo %s", p)
	last := "Revisa que los asesores faltantes tengan créditos asociados en este periodo"
	if advisorID != nil {
		explanation = fmt.Sprintf("No se encontraron créditos aprobados para el asesor seleccionado en el periodo %s", p)
		last = "Revisa que el asesor tenga créditos asociados en este periodo"
	}
	statuses := lo.Map(credit.CommissionableStatuses, func(s credit.Status, _ int) string { return string(s) })
	return domain.NewOutcome(domain.ErrNoQualifyingCredits, domain.KindNoCredits, NoCredits{
		Message: "No se encontraron comisiones para calcular",
		Kind:    domain.KindNoCredits,
		Detail: NoCreditsDetail{
			Period:      p.String(),
			AdvisorID:   advisorID,
			From:        p.FirstDay().Format(time.DateOnly),
			To:          p.LastDay().Format(time.DateOnly),
			Explanation: explanation,
			Suggestions: []string{
				"Verifica que existan créditos con estado: Aprobado, Desembolsado o Activo",
				"Confirma que las fechas de solicitud estén dentro del periodo seleccionado",
				"Asegúrate de que los créditos tengan asignado un banco o financiera",
				last,
			},
		},
		Criteria: Criteria{
			ValidStatuses: statuses,
			Requires:      "Banco o Financiera asociada al crédito",
			System:        "Comisión por cada millón de pesos gestionado",
		},
	})
}

func belowFloor(period string, advisorID *uint64, lines []domain.Line) error {
	credits := lo.SumBy(lines, func(l domain.Line) int { return l.Credits })
	amount := lo.Reduce(lines, func(acc decimal.Decimal, l domain.Line, _ int) decimal.Decimal { return acc.Add(l.Amount) }, decimal.Zero)
	return domain.NewOutcome(domain.ErrBelowMillionFloor, domain.KindBelowFloor, BelowFloor{
		Message: "No se generaron comisiones válidas",
		Kind:    domain.KindBelowFloor,
		Detail: BelowFloorDetail{
			Period:       period,
			AdvisorID:    advisorID,
			CreditsFound: credits,
			AmountFound:  amount,
			Reason:       "Los montos de los créditos son menores a $1,000,000 COP",
			System:       "Solo se pagan comisiones por cada millón de pesos completo",
		},
	})
}

func sumBase(lines []domain.Line) decimal.Decimal {
	return lo.Reduce(lines, func(acc decimal.Decimal, l domain.Line, _ int) decimal.Decimal { return acc.Add(l.Base) }, decimal.Zero)
}

func detailLines(lines []domain.Line, paidOn time.Time) []DetailLine {
	return lo.Map(lines, func(l domain.Line, _ int) DetailLine {
		return DetailLine{
			Advisor:     l.AdvisorName,
			Entity:      fmt.Sprintf("%s (%s)", l.EntityName, l.EntityType),
			Credits:     l.Credits,
			Amount:      FormatCOP(l.Amount),
			Millions:    l.Millions,
			Rate:        FormatCOP(l.Rate),
			Calculation: fmt.Sprintf("%d millones × %s", l.Millions, formatPesos(l.Rate)),
			Total:       FormatCOP(l.Base),
			Status:      "Pagado ✅",
			PaidOn:      paidOn.Format("2/1/2006"),
			Method:      "Auto",
		}
	})
}

// List returns commissions filtered by period and status, newest period first.
func (u *Usecase) List(ctx context.Context, period string, status domain.Status) ([]domain.Commission, error) {
	return u.repo.List(ctx, domain.Filter{Period: period, Status: status})
}

func (u *Usecase) ByAdvisor(ctx context.Context, advisorID uint64, period string, status domain.Status) ([]domain.Commission, error) {
	return u.repo.List(ctx, domain.Filter{AdvisorID: &advisorID, Period: period, Status: status})
}

func (u *Usecase) ByPeriod(ctx context.Context, period string, status domain.Status) ([]domain.Commission, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return u.repo.List(ctx, domain.Filter{Period: p.String(), Status: status})
}

// Summary covers the twelve most recent periods.
func (u *Usecase) Summary(ctx context.Context) ([]domain.PeriodSummary, error) {
	return u.repo.Summary(ctx, 12)
}

// Update adjusts bonuses and deductions and moves the row through its
// payment states. Missing amounts count as zero.
func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateInput) (*domain.Commission, error) {
	if !in.Status.Valid() || (in.PaymentMethod != nil && !in.PaymentMethod.Valid()) {
		return nil, domain.ErrInvalidStatus
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Status = in.Status
	c.Notes = in.Notes
	c.Bonuses = decimal.Zero
	if in.Bonuses != nil {
		c.Bonuses = *in.Bonuses
	}
	c.Deductions = decimal.Zero
	if in.Deductions != nil {
		c.Deductions = *in.Deductions
	}
	c.Recalculate()

	if in.Status == domain.StatusPaid {
		paidAt := u.now()
		if in.PaidAt != nil && !in.PaidAt.IsZero() {
			paidAt = in.PaidAt.UTC()
		}
		c.PaidAt = &paidAt
		c.PaymentMethod = in.PaymentMethod
		c.TransferNumber = in.TransferNumber
	}

	if err := u.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return u.repo.GetByID(ctx, id)
}

// Delete removes a commission that is still pending.
func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !c.Deletable() {
		return domain.ErrNotDeletable
	}
	return u.repo.Delete(ctx, id)
}
