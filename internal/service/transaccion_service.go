package service

import (
	"context"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/dto"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/notify"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/repository"

	"gorm.io/gorm"
)

// TransaccionService covers the ledger outside the sale engine: manual
// expense/income entry, the filtered history, and the monthly summary.
type TransaccionService interface {
	Crear(ctx context.Context, req dto.CrearTransaccionRequest) (*dto.TransaccionResponse, error)
	Listar(ctx context.Context, filtro dto.TransaccionFilter) (*dto.TransaccionListResponse, error)
	Resumen(ctx context.Context, mes, anio int) (*dto.ResumenResponse, error)
}

type transaccionService struct {
	repo     repository.TransaccionRepository
	notifier *notify.Notifier
}

func NewTransaccionService(repo repository.TransaccionRepository, notifier *notify.Notifier) TransaccionService {
	return &transaccionService{repo: repo, notifier: notifier}
}

// Crear registers a manual gasto or ingreso. The sale engine owns the
// "Ventas" category, so it is rejected here along with anything outside the
// closed category sets.
func (s *transaccionService) Crear(ctx context.Context, req dto.CrearTransaccionRequest) (*dto.TransaccionResponse, error) {
	if !FechaValida(req.Fecha) {
		return nil, apperr.Newf(apperr.Validation, "fecha inválida: %q (se espera YYYY-MM-DD)", req.Fecha)
	}
	if req.Tipo != model.TipoIngreso && req.Tipo != model.TipoGasto {
		return nil, apperr.Newf(apperr.Validation, "tipo desconocido: %q", req.Tipo)
	}
	if !model.CategoriaTransaccionValida(req.Tipo, req.Categoria) {
		return nil, apperr.Newf(apperr.CategoriaDesconocida,
			"categoría %q no es válida para %s", req.Categoria, req.Tipo)
	}
	if !req.Monto.IsPositive() {
		return nil, apperr.New(apperr.Validation, "el monto debe ser mayor a cero")
	}

	transaccion := model.Transaccion{
		Fecha:       req.Fecha,
		Tipo:        req.Tipo,
		Categoria:   req.Categoria,
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &transaccion)
	})
	if txErr != nil {
		return nil, apperr.Wrap(apperr.Commit, "el movimiento no pudo guardarse", txErr)
	}

	s.notifier.Publicar(ctx, notify.CanalTransacciones, "movimiento_agregado", transaccion.ID.String())
	resp := transaccionToResponse(&transaccion)
	return &resp, nil
}

func (s *transaccionService) Listar(ctx context.Context, filtro dto.TransaccionFilter) (*dto.TransaccionListResponse, error) {
	transacciones, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtradas := FiltrarYOrdenar(transacciones, filtro)
	data := make([]dto.TransaccionResponse, 0, len(filtradas))
	for i := range filtradas {
		data = append(data, transaccionToResponse(&filtradas[i]))
	}
	return &dto.TransaccionListResponse{
		Data:  data,
		Total: len(data),
		Anios: AniosDisponibles(transacciones),
	}, nil
}

func (s *transaccionService) Resumen(ctx context.Context, mes, anio int) (*dto.ResumenResponse, error) {
	if mes < 1 || mes > 12 {
		return nil, apperr.Newf(apperr.Validation, "mes inválido: %d", mes)
	}
	if anio < 1 {
		return nil, apperr.Newf(apperr.Validation, "año inválido: %d", anio)
	}

	transacciones, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resumen := ResumenPeriodo(transacciones, mes, anio)
	return &dto.ResumenResponse{
		Mes:           mes,
		Anio:          anio,
		TotalIngresos: resumen.TotalIngresos,
		TotalGastos:   resumen.TotalGastos,
		Balance:       resumen.Balance,
	}, nil
}

func transaccionToResponse(t *model.Transaccion) dto.TransaccionResponse {
	resp := dto.TransaccionResponse{
		ID:          t.ID.String(),
		Fecha:       t.Fecha,
		Tipo:        t.Tipo,
		Categoria:   t.Categoria,
		Descripcion: t.Descripcion,
		Monto:       t.Monto,
	}
	if t.EsVenta() {
		subtotal := t.Subtotal
		descuento := t.Descuento
		resp.Subtotal = &subtotal
		resp.Descuento = &descuento
		resp.MetodoPago = t.MetodoPago
		for _, item := range t.Items {
			resp.Items = append(resp.Items, dto.ItemVentaResponse{
				ProductoID:     item.ProductoID.String(),
				Nombre:         item.Nombre,
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
				Subtotal:       item.Subtotal,
				StockOriginal:  item.StockOriginal,
			})
		}
	}
	return resp
}
