package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is an inventory item of the barbería. Stock is mutated only by the
// sale engine, the reversal engine, or an explicit manual adjustment; products
// are never deleted.
type Producto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Categoria string          `gorm:"not null;index"`
	Nombre    string          `gorm:"not null;index"`
	Precio    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Producto) TableName() string { return "productos" }

// Stock level thresholds used by the inventory listing and the low-stock alert job.
const (
	StockCritico = 5
	StockBajo    = 10
)

// EstadoStock classifies the current stock level: critico, bajo or normal.
func (p *Producto) EstadoStock() string {
	switch {
	case p.Stock <= StockCritico:
		return "critico"
	case p.Stock <= StockBajo:
		return "bajo"
	default:
		return "normal"
	}
}
