package mysql

import (
	"context"
	"errors"

	"crediasesor-backoffice/internal/domain/advisor"
	commissionDomain "crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/domain/credit"
	"crediasesor-backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommissionRepository struct{ db *gorm.DB }

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func commissionableStatuses() []string {
	out := make([]string, 0, len(credit.CommissionableStatuses))
	for _, s := range credit.CommissionableStatuses {
		out = append(out, string(s))
	}
	return out
}

// commissionable restricts the credits aliased "c" to the period window,
// the status whitelist and exactly one lender.
func commissionable(w commissionDomain.Window) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("c.fechaSolicitud >= ? AND c.fechaSolicitud < ?", w.From, w.To).
			Where("c.estado IN ?", commissionableStatuses()).
			Where("(c.bancoId IS NULL) <> (c.financieraId IS NULL)")
	}
}

func (r *CommissionRepository) QualifyingAdvisors(ctx context.Context, w commissionDomain.Window) ([]advisor.Advisor, error) {
	var out []advisor.Advisor
	err := r.db.WithContext(ctx).
		Model(&advisor.Advisor{}).
		Distinct("asesor.id", "asesor.nombre").
		Joins("JOIN Creditos c ON c.asesorId = asesor.id").
		Scopes(commissionable(w)).
		Order("asesor.nombre, asesor.id").
		Find(&out).Error
	return out, err
}

type creditLineRow struct {
	CreditID    string
	AdvisorID   uint64
	AdvisorName string
	EntityID    uint64
	EntityName  string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

func (r *CommissionRepository) CreditLines(ctx context.Context, t entity.Type, w commissionDomain.Window, advisorIDs []uint64) ([]commissionDomain.CreditLine, error) {
	if advisorIDs != nil && len(advisorIDs) == 0 {
		return nil, nil
	}

	q := r.db.WithContext(ctx).Table("Creditos AS c").Joins("JOIN asesor a ON a.id = c.asesorId")
	switch t {
	case entity.TypeBank:
		q = q.Select("c.id AS credit_id, a.id AS advisor_id, a.nombre AS advisor_name, e.id AS entity_id, e.nombre AS entity_name, e.comisionban AS rate, c.monto AS amount").
			Joins("JOIN Bancos e ON e.id = c.bancoId")
	case entity.TypeInstitution:
		q = q.Select("c.id AS credit_id, a.id AS advisor_id, a.nombre AS advisor_name, e.id AS entity_id, e.nombre AS entity_name, e.comisionfin AS rate, c.monto AS amount").
			Joins("JOIN Financieras e ON e.id = c.financieraId")
	default:
		return nil, errors.New("unknown entity type " + string(t))
	}
	q = q.Scopes(commissionable(w))
	if advisorIDs != nil {
		q = q.Where("c.asesorId IN ?", advisorIDs)
	}

	var rows []creditLineRow
	if err := q.Order("a.id, e.id, c.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]commissionDomain.CreditLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, commissionDomain.CreditLine{
			CreditID:    row.CreditID,
			AdvisorID:   row.AdvisorID,
			AdvisorName: row.AdvisorName,
			EntityType:  t,
			EntityID:    row.EntityID,
			EntityName:  row.EntityName,
			Rate:        row.Rate,
			Amount:      row.Amount,
		})
	}
	return out, nil
}

func (r *CommissionRepository) AdvisorsWithCommissions(ctx context.Context, period string) ([]advisor.Advisor, error) {
	var out []advisor.Advisor
	err := r.db.WithContext(ctx).
		Model(&advisor.Advisor{}).
		Distinct("asesor.id", "asesor.nombre").
		Joins("JOIN Comisions k ON k.asesorId = asesor.id").
		Where("k.periodo = ?", period).
		Order("asesor.nombre, asesor.id").
		Find(&out).Error
	return out, err
}

func (r *CommissionRepository) ExistsForAdvisor(ctx context.Context, period string, advisorID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&commissionDomain.Commission{}).
		Where("periodo = ? AND asesorId = ?", period, advisorID).
		Count(&n).Error
	return n > 0, err
}

// CreateIfAbsent relies on ux_comisions_asesor_entidad_periodo; a duplicate
// leaves RowsAffected at 0.
func (r *CommissionRepository) CreateIfAbsent(ctx context.Context, c *commissionDomain.Commission) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(c)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *CommissionRepository) DeleteByPeriod(ctx context.Context, period string, advisorID *uint64) (int64, error) {
	q := r.db.WithContext(ctx).Where("periodo = ?", period)
	if advisorID != nil {
		q = q.Where("asesorId = ?", *advisorID)
	}
	res := q.Delete(&commissionDomain.Commission{})
	return res.RowsAffected, res.Error
}

func (r *CommissionRepository) withAssociations() *gorm.DB {
	return r.db.
		Preload("Advisor").
		Preload("Bank").
		Preload("Institution")
}

func (r *CommissionRepository) GetByID(ctx context.Context, id uint64) (*commissionDomain.Commission, error) {
	var out commissionDomain.Commission
	err := r.withAssociations().WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, commissionDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CommissionRepository) List(ctx context.Context, f commissionDomain.Filter) ([]commissionDomain.Commission, error) {
	q := r.withAssociations().WithContext(ctx)
	if f.AdvisorID != nil {
		q = q.Where("asesorId = ?", *f.AdvisorID)
	}
	if f.Period != "" {
		q = q.Where("periodo = ?", f.Period)
	}
	if f.Status != "" {
		q = q.Where("estado = ?", string(f.Status))
	}
	out := []commissionDomain.Commission{}
	err := q.Order("periodo DESC, comisionTotal DESC, id ASC").Find(&out).Error
	return out, err
}

func (r *CommissionRepository) Save(ctx context.Context, c *commissionDomain.Commission) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *CommissionRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&commissionDomain.Commission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return commissionDomain.ErrNotFound
	}
	return nil
}

type periodSummaryRow struct {
	Period          string
	Count           int64
	Advisors        int64
	TotalAmount     decimal.Decimal
	Pending         int64
	Paid            int64
	Rejected        int64
	BankRows        int64
	InstitutionRows int64
}

func (r *CommissionRepository) Summary(ctx context.Context, limit int) ([]commissionDomain.PeriodSummary, error) {
	var rows []periodSummaryRow
	err := r.db.WithContext(ctx).
		Model(&commissionDomain.Commission{}).
		Select(`periodo AS period,
			COUNT(*) AS count,
			COUNT(DISTINCT asesorId) AS advisors,
			COALESCE(SUM(comisionTotal), 0) AS total_amount,
			SUM(CASE WHEN estado = ? THEN 1 ELSE 0 END) AS pending,
			SUM(CASE WHEN estado = ? THEN 1 ELSE 0 END) AS paid,
			SUM(CASE WHEN estado = ? THEN 1 ELSE 0 END) AS rejected,
			SUM(CASE WHEN tipoEntidad = ? THEN 1 ELSE 0 END) AS bank_rows,
			SUM(CASE WHEN tipoEntidad = ? THEN 1 ELSE 0 END) AS institution_rows`,
			string(commissionDomain.StatusPending), string(commissionDomain.StatusPaid), string(commissionDomain.StatusRejected),
			string(entity.TypeBank), string(entity.TypeInstitution)).
		Group("periodo").
		Order("periodo DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]commissionDomain.PeriodSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, commissionDomain.PeriodSummary(row))
	}
	return out, nil
}
