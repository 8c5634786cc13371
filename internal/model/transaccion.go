package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TipoIngreso = "income"
	TipoGasto   = "expense"
)

// CategoriaVentas marks a transaction produced by the sale engine; only these
// carry items and trigger stock restoration when deleted.
const CategoriaVentas = "Ventas"

// Transaccion is one ledger record: a sale, an expense, or a manual income.
// Immutable once created; the only lifecycle operation is deletion, which for
// sales reverses the stock decrements.
type Transaccion struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha       string          `gorm:"type:char(10);not null;index"` // YYYY-MM-DD
	Tipo        string          `gorm:"not null;index"`               // income | expense
	Categoria   string          `gorm:"not null"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Sale-only fields. For a sale, Monto = Subtotal - Descuento.
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2)"`
	Descuento  decimal.Decimal `gorm:"type:decimal(12,2)"`
	MetodoPago string
	Items      []ItemVenta `gorm:"foreignKey:TransaccionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

func (Transaccion) TableName() string { return "transacciones" }

// EsVenta reports whether deleting this record must restore stock.
func (t *Transaccion) EsVenta() bool {
	return t.Categoria == CategoriaVentas && len(t.Items) > 0
}

// ItemVenta is one cart line persisted with a sale. StockOriginal is the stock
// observed when the line entered the cart; reversal writes it back verbatim.
type ItemVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransaccionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Posicion       int             `gorm:"not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockOriginal  int             `gorm:"not null"`
}

func (ItemVenta) TableName() string { return "items_venta" }
