package handler

import (
	"net/http"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/dto"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Crea una venta atomica: descuenta stock con escritura condicional, registra movimientos de inventario y crea la transaccion de ingreso.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.TransaccionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cotizar godoc
// @Summary      Cotizar una venta
// @Description  Calcula subtotal, descuento por mayor y total del carrito sin registrar nada.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.CotizarVentaRequest true "Items del carrito"
// @Success      200  {object} dto.PrecioVentaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventas/precio [post]
func (h *VentasHandler) Cotizar(c *gin.Context) {
	var req dto.CotizarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cotizar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
