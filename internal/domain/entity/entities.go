// Package entity holds the lenders a credit is financed through: banks and
// financial institutions. Each carries a commission rate per whole million.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeBank        Type = "Banco"
	TypeInstitution Type = "Financiera"
)

func (t Type) Valid() bool { return t == TypeBank || t == TypeInstitution }

type Bank struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"column:nombre;size:120;not null" json:"nombre"`
	Rate      decimal.Decimal `gorm:"column:comisionban;type:decimal(15,2);not null;default:0" json:"comisionban"`
	CreatedAt time.Time       `gorm:"column:createdAt;autoCreateTime" json:"-"`
	UpdatedAt time.Time       `gorm:"column:updatedAt;autoUpdateTime" json:"-"`
}

func (Bank) TableName() string { return "Bancos" }

type Institution struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"column:nombre;size:120;not null" json:"nombre"`
	Rate      decimal.Decimal `gorm:"column:comisionfin;type:decimal(15,2);not null;default:0" json:"comisionfin"`
	CreatedAt time.Time       `gorm:"column:createdAt;autoCreateTime" json:"-"`
	UpdatedAt time.Time       `gorm:"column:updatedAt;autoUpdateTime" json:"-"`
}

func (Institution) TableName() string { return "Financieras" }
