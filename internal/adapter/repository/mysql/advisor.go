package mysql

import (
	"context"
	"errors"

	advisorDomain "crediasesor-backoffice/internal/domain/advisor"

	"gorm.io/gorm"
)

type AdvisorRepository struct{ db *gorm.DB }

func NewAdvisorRepository(db *gorm.DB) *AdvisorRepository { return &AdvisorRepository{db: db} }

func (r *AdvisorRepository) List(ctx context.Context) ([]advisorDomain.Advisor, error) {
	out := []advisorDomain.Advisor{}
	err := r.db.WithContext(ctx).Order("nombre, id").Find(&out).Error
	return out, err
}

func (r *AdvisorRepository) GetByID(ctx context.Context, id uint64) (*advisorDomain.Advisor, error) {
	var out advisorDomain.Advisor
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, advisorDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
