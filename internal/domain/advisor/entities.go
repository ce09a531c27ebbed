package advisor

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("advisor not found")

// Advisor is the sales agent credits are attributed to.
type Advisor struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:nombre;size:120;not null" json:"nombre"`
	Email     string    `gorm:"column:email;size:160" json:"email,omitempty"`
	Position  string    `gorm:"column:cargo;size:80" json:"cargo,omitempty"`
	Branch    string    `gorm:"column:sucursal;size:80" json:"sucursal,omitempty"`
	CreatedAt time.Time `gorm:"column:createdAt;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updatedAt;autoUpdateTime" json:"-"`
}

func (Advisor) TableName() string { return "asesor" }

type Repository interface {
	List(ctx context.Context) ([]Advisor, error)
	GetByID(ctx context.Context, id uint64) (*Advisor, error)
}
