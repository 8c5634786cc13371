package service

import (
	"context"
	"fmt"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/dto"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/notify"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/repository"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaService turns a cart into a committed sale and reverses committed
// sales on deletion.
type VentaService interface {
	// Cotizar prices a cart against the current inventory snapshot without
	// committing anything.
	Cotizar(ctx context.Context, req dto.CotizarVentaRequest) (*dto.PrecioVentaResponse, error)
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.TransaccionResponse, error)
	EliminarTransaccion(ctx context.Context, id uuid.UUID) error
}

type ventaService struct {
	transaccionRepo repository.TransaccionRepository
	productoRepo    repository.ProductoRepository
	movimientoRepo  repository.MovimientoStockRepository
	notifier        *notify.Notifier
	dispatcher      *worker.Dispatcher
}

func NewVentaService(
	transaccionRepo repository.TransaccionRepository,
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
	notifier *notify.Notifier,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		transaccionRepo: transaccionRepo,
		productoRepo:    productoRepo,
		movimientoRepo:  movimientoRepo,
		notifier:        notifier,
		dispatcher:      dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// grupoProducto is one product's cumulative share of a sale. Stock writes are
// per product, never per line: a cart may carry the same product on several
// lines and their decrements must land as one CAS.
type grupoProducto struct {
	ProductoID    uuid.UUID
	Nombre        string
	Cantidad      int
	StockOriginal int
}

// agruparCarrito collapses cart lines into one entry per product, preserving
// first-seen order. All lines of a product share the same stock snapshot.
func agruparCarrito(c Carrito) []grupoProducto {
	indice := make(map[uuid.UUID]int)
	var grupos []grupoProducto
	for _, item := range c.Items {
		if i, ok := indice[item.ProductoID]; ok {
			grupos[i].Cantidad += item.Cantidad
			continue
		}
		indice[item.ProductoID] = len(grupos)
		grupos = append(grupos, grupoProducto{
			ProductoID:    item.ProductoID,
			Nombre:        item.Nombre,
			Cantidad:      item.Cantidad,
			StockOriginal: item.StockOriginal,
		})
	}
	return grupos
}

// agruparItemsVenta is agruparCarrito over persisted sale lines, used by the
// reversal path.
func agruparItemsVenta(items []model.ItemVenta) []grupoProducto {
	indice := make(map[uuid.UUID]int)
	var grupos []grupoProducto
	for _, item := range items {
		if i, ok := indice[item.ProductoID]; ok {
			grupos[i].Cantidad += item.Cantidad
			continue
		}
		indice[item.ProductoID] = len(grupos)
		grupos = append(grupos, grupoProducto{
			ProductoID:    item.ProductoID,
			Nombre:        item.Nombre,
			Cantidad:      item.Cantidad,
			StockOriginal: item.StockOriginal,
		})
	}
	return grupos
}

// armarCarrito resolves the requested lines against the current inventory
// snapshot, validating each one and capturing its stock snapshot.
func (s *ventaService) armarCarrito(ctx context.Context, items []dto.ItemVentaRequest) (Carrito, error) {
	var carrito Carrito
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return Carrito{}, apperr.Newf(apperr.Validation, "producto_id inválido: %s", item.ProductoID)
		}
		producto, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return Carrito{}, err
		}
		carrito, err = AgregarItem(carrito, producto, item.Cantidad)
		if err != nil {
			return Carrito{}, err
		}
	}
	return carrito, nil
}

func (s *ventaService) Cotizar(ctx context.Context, req dto.CotizarVentaRequest) (*dto.PrecioVentaResponse, error) {
	carrito, err := s.armarCarrito(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	precio := CalcularPrecio(carrito)
	return &dto.PrecioVentaResponse{
		Subtotal:   precio.Subtotal,
		EsPorMayor: precio.EsPorMayor,
		Descuento:  precio.Descuento,
		Total:      precio.Total,
	}, nil
}

// RegistrarVenta commits a sale:
//  1. Build the cart against the current snapshot (validates quantity/stock).
//  2. Price it.
//  3. In ONE transaction: write each product's new stock guarded by a
//     compare-and-swap on the cart's stock snapshot, record the stock
//     movements, and append the ledger record. A stale snapshot aborts the
//     whole commit with Conflicto; any other failure surfaces as Commit.
//     Either way no partial state is ever visible.
func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.TransaccionResponse, error) {
	if !FechaValida(req.Fecha) {
		return nil, apperr.Newf(apperr.Validation, "fecha inválida: %q (se espera YYYY-MM-DD)", req.Fecha)
	}
	if !model.MetodoPagoValido(req.MetodoPago) {
		return nil, apperr.Newf(apperr.Validation, "método de pago desconocido: %q", req.MetodoPago)
	}
	if len(req.Items) == 0 {
		return nil, apperr.New(apperr.CarritoVacio, "el carrito está vacío")
	}

	carrito, err := s.armarCarrito(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	precio := CalcularPrecio(carrito)

	modalidad := "Detal"
	if precio.EsPorMayor {
		modalidad = "Por Mayor"
	}

	transaccion := model.Transaccion{
		ID:          uuid.New(),
		Fecha:       req.Fecha,
		Tipo:        model.TipoIngreso,
		Categoria:   model.CategoriaVentas,
		Descripcion: fmt.Sprintf("Venta (%s) de %d tipo(s) de producto.", modalidad, len(carrito.Items)),
		Monto:       precio.Total,
		Subtotal:    precio.Subtotal,
		Descuento:   precio.Descuento,
		MetodoPago:  req.MetodoPago,
	}
	for i, item := range carrito.Items {
		transaccion.Items = append(transaccion.Items, model.ItemVenta{
			TransaccionID:  transaccion.ID,
			Posicion:       i,
			ProductoID:     item.ProductoID,
			Nombre:         item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
			StockOriginal:  item.StockOriginal,
		})
	}

	grupos := agruparCarrito(carrito)
	txErr := runTx(ctx, s.transaccionRepo.DB(), func(tx *gorm.DB) error {
		for _, g := range grupos {
			nuevoStock := g.StockOriginal - g.Cantidad
			if err := s.productoRepo.ActualizarStockCAS(tx, g.ProductoID, g.StockOriginal, nuevoStock); err != nil {
				return err
			}
			ref := transaccion.ID
			mov := &model.MovimientoStock{
				ProductoID:    g.ProductoID,
				Tipo:          "venta",
				Cantidad:      -g.Cantidad,
				StockAnterior: g.StockOriginal,
				StockNuevo:    nuevoStock,
				Motivo:        fmt.Sprintf("Venta %s", transaccion.ID),
				ReferenciaID:  &ref,
			}
			if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.transaccionRepo.Create(ctx, tx, &transaccion)
	})
	if txErr != nil {
		if apperr.KindOf(txErr) != 0 {
			return nil, txErr
		}
		return nil, apperr.Wrap(apperr.Commit, "la venta no pudo confirmarse", txErr)
	}

	s.notifier.Publicar(ctx, notify.CanalTransacciones, "venta_registrada", transaccion.ID.String())
	s.notifier.Publicar(ctx, notify.CanalInventario, "stock_descontado", transaccion.ID.String())
	s.alertarStockCritico(ctx, grupos)

	resp := transaccionToResponse(&transaccion)
	return &resp, nil
}

// alertarStockCritico enqueues a low-stock alert for every product the sale
// drove to the critical level. Fire and forget.
func (s *ventaService) alertarStockCritico(ctx context.Context, grupos []grupoProducto) {
	if s.dispatcher == nil {
		return
	}
	for _, g := range grupos {
		nuevoStock := g.StockOriginal - g.Cantidad
		if nuevoStock > model.StockCritico {
			continue
		}
		_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
			ProductoID: g.ProductoID.String(),
			Nombre:     g.Nombre,
			Stock:      nuevoStock,
		})
	}
}

// EliminarTransaccion deletes a ledger record. For a sale it first restores
// every product's stock to the cart-time snapshot, guarded by a CAS expecting
// the post-sale value, inside the same transaction that removes the record —
// if restoration fails the record stays intact and the operation is safely
// retryable.
func (s *ventaService) EliminarTransaccion(ctx context.Context, id uuid.UUID) error {
	transaccion, err := s.transaccionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	txErr := runTx(ctx, s.transaccionRepo.DB(), func(tx *gorm.DB) error {
		if transaccion.EsVenta() {
			for _, g := range agruparItemsVenta(transaccion.Items) {
				vendido := g.StockOriginal - g.Cantidad
				if err := s.productoRepo.ActualizarStockCAS(tx, g.ProductoID, vendido, g.StockOriginal); err != nil {
					return err
				}
				ref := transaccion.ID
				mov := &model.MovimientoStock{
					ProductoID:    g.ProductoID,
					Tipo:          "restauracion",
					Cantidad:      g.Cantidad,
					StockAnterior: vendido,
					StockNuevo:    g.StockOriginal,
					Motivo:        fmt.Sprintf("Eliminación de venta %s", transaccion.ID),
					ReferenciaID:  &ref,
				}
				if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
					return err
				}
			}
		}
		return s.transaccionRepo.DeleteTx(tx, id)
	})
	if txErr != nil {
		if apperr.KindOf(txErr) != 0 {
			return txErr
		}
		return apperr.Wrap(apperr.Commit, "no se pudo eliminar la transacción", txErr)
	}

	s.notifier.Publicar(ctx, notify.CanalTransacciones, "transaccion_eliminada", id.String())
	if transaccion.EsVenta() {
		s.notifier.Publicar(ctx, notify.CanalInventario, "stock_restaurado", id.String())
	}
	return nil
}
