package client

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("client not found")

type Client struct {
	ID            uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FirstName     string           `gorm:"column:nombre;size:120;not null" json:"nombre"`
	LastName      string           `gorm:"column:apellido;size:120;not null" json:"apellido"`
	NationalID    string           `gorm:"column:dni;size:32;not null;uniqueIndex:ux_clientes_dni" json:"dni"`
	Email         string           `gorm:"column:email;size:160" json:"email,omitempty"`
	Phone         string           `gorm:"column:telefono;size:32" json:"telefono,omitempty"`
	Address       string           `gorm:"column:direccion;size:255" json:"direccion,omitempty"`
	MonthlyIncome *decimal.Decimal `gorm:"column:ingresosMensuales;type:decimal(15,2)" json:"ingresosMensuales,omitempty"`
	Status        string           `gorm:"column:estado;size:20;not null;default:'Activo'" json:"estado"`
	CreatedAt     time.Time        `gorm:"column:createdAt;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time        `gorm:"column:updatedAt;autoUpdateTime" json:"updatedAt"`
}

func (Client) TableName() string { return "Clientes" }

func (c Client) FullName() string { return c.FirstName + " " + c.LastName }

type Repository interface {
	// Search matches name, surname or national id with LIKE, at most limit rows.
	Search(ctx context.Context, q string, limit int) ([]Client, error)
	GetByID(ctx context.Context, id uint64) (*Client, error)
}
