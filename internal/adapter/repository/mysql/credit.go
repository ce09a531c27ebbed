package mysql

import (
	"context"
	"errors"
	"time"

	creditDomain "crediasesor-backoffice/internal/domain/credit"

	"gorm.io/gorm"
)

type CreditRepository struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) *CreditRepository { return &CreditRepository{db: db} }

func (r *CreditRepository) Search(ctx context.Context, q string, limit int) ([]creditDomain.Credit, error) {
	like := "%" + q + "%"
	out := []creditDomain.Credit{}
	err := r.db.WithContext(ctx).
		Joins("Client").
		Preload("Advisor").
		Preload("Bank").
		Preload("Institution").
		Where("Creditos.id LIKE ? OR Client.nombre LIKE ? OR Client.apellido LIKE ?", like, like, like).
		Order("Creditos.fechaSolicitud DESC, Creditos.id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *CreditRepository) GetByID(ctx context.Context, id string) (*creditDomain.Credit, error) {
	var out creditDomain.Credit
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Advisor").
		Preload("Bank").
		Preload("Institution").
		Where("id = ?", id).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, creditDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CreditRepository) CountByClient(ctx context.Context, clientID uint64, statuses []creditDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&creditDomain.Credit{}).
		Where("clienteId = ? AND estado IN ?", clientID, statuses).
		Count(&n).Error
	return n, err
}

func (r *CreditRepository) ListRequested(ctx context.Context, from, to time.Time) ([]creditDomain.Credit, error) {
	out := []creditDomain.Credit{}
	err := r.db.WithContext(ctx).
		Preload("Advisor").
		Preload("Bank").
		Preload("Institution").
		Where("fechaSolicitud >= ? AND fechaSolicitud < ?", from, to).
		Order("fechaSolicitud, id").
		Find(&out).Error
	return out, err
}

func (r *CreditRepository) ListAll(ctx context.Context) ([]creditDomain.Credit, error) {
	out := []creditDomain.Credit{}
	err := r.db.WithContext(ctx).
		Preload("Advisor").
		Preload("Bank").
		Preload("Institution").
		Order("fechaSolicitud, id").
		Find(&out).Error
	return out, err
}
