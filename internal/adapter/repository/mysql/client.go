package mysql

import (
	"context"
	"errors"

	clientDomain "crediasesor-backoffice/internal/domain/client"

	"gorm.io/gorm"
)

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) Search(ctx context.Context, q string, limit int) ([]clientDomain.Client, error) {
	like := "%" + q + "%"
	out := []clientDomain.Client{}
	err := r.db.WithContext(ctx).
		Where("nombre LIKE ? OR apellido LIKE ? OR dni LIKE ?", like, like, like).
		Order("nombre, apellido, id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint64) (*clientDomain.Client, error) {
	var out clientDomain.Client
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, clientDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
