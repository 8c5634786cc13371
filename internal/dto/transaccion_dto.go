package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearTransaccionRequest registers a manual gasto or ingreso. All fields are
// required; Tipo and Categoria are validated in the service against the closed
// sets.
type CrearTransaccionRequest struct {
	Fecha       string          `json:"fecha"       validate:"required"`
	Tipo        string          `json:"tipo"        validate:"required,oneof=income expense"`
	Categoria   string          `json:"categoria"   validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// TransaccionFilter is bound from the query string of GET /v1/transacciones.
// Zero values mean "no filter".
type TransaccionFilter struct {
	Mes  int    `form:"mes"  validate:"min=0,max=12"`
	Anio int    `form:"anio" validate:"min=0"`
	Tipo string `form:"tipo" validate:"omitempty,oneof=income expense"`
}

type TransaccionResponse struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Tipo        string          `json:"tipo"`
	Categoria   string          `json:"categoria"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`

	// Sale-only fields; omitted for manual movements.
	Subtotal   *decimal.Decimal    `json:"subtotal,omitempty"`
	Descuento  *decimal.Decimal    `json:"descuento,omitempty"`
	MetodoPago string              `json:"metodo_pago,omitempty"`
	Items      []ItemVentaResponse `json:"items,omitempty"`
}

type TransaccionListResponse struct {
	Data  []TransaccionResponse `json:"data"`
	Total int                   `json:"total"`
	// Anios holds every year present in the ledger, descending, for the UI
	// year filter.
	Anios []int `json:"anios"`
}

// ─── Resumen ─────────────────────────────────────────────────────────────────

type ResumenResponse struct {
	Mes           int             `json:"mes"`
	Anio          int             `json:"anio"`
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
	TotalGastos   decimal.Decimal `json:"total_gastos"`
	Balance       decimal.Decimal `json:"balance"`
}
