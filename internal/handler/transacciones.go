package handler

import (
	"net/http"
	"strconv"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apierror"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/dto"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransaccionesHandler struct {
	svc      service.TransaccionService
	ventaSvc service.VentaService
}

func NewTransaccionesHandler(svc service.TransaccionService, ventaSvc service.VentaService) *TransaccionesHandler {
	return &TransaccionesHandler{svc: svc, ventaSvc: ventaSvc}
}

// Crear godoc
// @Summary      Registrar ingreso o gasto manual
// @Description  Crea una transaccion del ledger. La categoria "Ventas" es reservada: las ventas entran por POST /v1/ventas.
// @Tags         transacciones
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearTransaccionRequest true "Transaccion"
// @Success      201  {object} dto.TransaccionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/transacciones [post]
func (h *TransaccionesHandler) Crear(c *gin.Context) {
	var req dto.CrearTransaccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar transacciones
// @Description  Retorna el ledger filtrado por mes, año y tipo, ordenado por fecha descendente, junto con los años disponibles.
// @Tags         transacciones
// @Produce      json
// @Param        mes  query int    false "Mes 1-12"
// @Param        anio query int    false "Año"
// @Param        tipo query string false "income | expense"
// @Success      200  {object} dto.TransaccionListResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/transacciones [get]
func (h *TransaccionesHandler) Listar(c *gin.Context) {
	var filtro dto.TransaccionFilter
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar transaccion
// @Description  Borra una transaccion. Si es una venta, restaura el stock de cada item a su valor al momento de la seleccion.
// @Tags         transacciones
// @Produce      json
// @Param        id path string true "UUID de la transaccion"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/transacciones/{id} [delete]
func (h *TransaccionesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.ventaSvc.EliminarTransaccion(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Resumen godoc
// @Summary      Resumen mensual
// @Description  Totales de ingresos, gastos y balance del mes indicado.
// @Tags         transacciones
// @Produce      json
// @Param        mes  query int true "Mes 1-12"
// @Param        anio query int true "Año"
// @Success      200  {object} dto.ResumenResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/resumen [get]
func (h *TransaccionesHandler) Resumen(c *gin.Context) {
	mes, err := strconv.Atoi(c.Query("mes"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro mes invalido"))
		return
	}
	anio, err := strconv.Atoi(c.Query("anio"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro anio invalido"))
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), mes, anio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
