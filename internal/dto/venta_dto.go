package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

// RegistrarVentaRequest is the cart as submitted at checkout. Fecha and
// MetodoPago are validated in the service against the closed sets.
type RegistrarVentaRequest struct {
	Fecha      string             `json:"fecha"       validate:"required"`
	MetodoPago string             `json:"metodo_pago" validate:"required"`
	Items      []ItemVentaRequest `json:"items"       validate:"dive"`
}

// CotizarVentaRequest prices a cart without committing anything.
type CotizarVentaRequest struct {
	Items []ItemVentaRequest `json:"items" validate:"dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PrecioVentaResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	EsPorMayor bool            `json:"es_por_mayor"`
	Descuento  decimal.Decimal `json:"descuento"`
	Total      decimal.Decimal `json:"total"`
}

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	StockOriginal  int             `json:"stock_original"`
}
