package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/dto"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/notify"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoService maintains the product catalog and manual stock edits.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) (*dto.ProductoListResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error)
}

type productoService struct {
	repo           repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
	notifier       *notify.Notifier
}

func NewProductoService(
	repo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
	notifier *notify.Notifier,
) ProductoService {
	return &productoService{repo: repo, movimientoRepo: movimientoRepo, notifier: notifier}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if !model.CategoriaProductoValida(req.Categoria) {
		return nil, apperr.Newf(apperr.CategoriaDesconocida, "categoría de producto desconocida: %q", req.Categoria)
	}
	if req.Precio.IsNegative() {
		return nil, apperr.New(apperr.Validation, "el precio no puede ser negativo")
	}
	if req.Stock < 0 {
		return nil, apperr.New(apperr.Validation, "el stock no puede ser negativo")
	}

	producto := model.Producto{
		Categoria: req.Categoria,
		Nombre:    req.Nombre,
		Precio:    req.Precio,
		Stock:     req.Stock,
	}
	if err := s.repo.Create(ctx, &producto); err != nil {
		return nil, apperr.Wrap(apperr.Commit, "el producto no pudo guardarse", err)
	}

	s.notifier.Publicar(ctx, notify.CanalInventario, "producto_agregado", producto.ID.String())
	resp := productoToResponse(&producto)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context) (*dto.ProductoListResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: len(data)}, nil
}

// AjustarStock is the manual inventory edit: an absolute overwrite of stock,
// audited with a movement row in the same commit.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	if req.Stock < 0 {
		return nil, apperr.New(apperr.Validation, "el stock no puede ser negativo")
	}
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	anterior := producto.Stock
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AjustarStock(ctx, tx, id, req.Stock); err != nil {
			return err
		}
		mov := &model.MovimientoStock{
			ProductoID:    id,
			Tipo:          "ajuste_manual",
			Cantidad:      req.Stock - anterior,
			StockAnterior: anterior,
			StockNuevo:    req.Stock,
			Motivo:        fmt.Sprintf("Ajuste manual de %s", producto.Nombre),
		}
		return s.movimientoRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		if apperr.KindOf(txErr) != 0 {
			return nil, txErr
		}
		return nil, apperr.Wrap(apperr.Commit, "el ajuste de stock no pudo guardarse", txErr)
	}

	s.notifier.Publicar(ctx, notify.CanalInventario, "stock_ajustado", id.String())
	producto.Stock = req.Stock
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error) {
	movimientos, total, err := s.movimientoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoStockResponse, 0, len(movimientos))
	for _, m := range movimientos {
		var ref *string
		if m.ReferenciaID != nil {
			refStr := m.ReferenciaID.String()
			ref = &refStr
		}
		data = append(data, dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			ReferenciaID:  ref,
			CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return &dto.MovimientoStockListResponse{Data: data, Total: total}, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID.String(),
		Categoria:   p.Categoria,
		Nombre:      p.Nombre,
		Precio:      p.Precio,
		Stock:       p.Stock,
		EstadoStock: p.EstadoStock(),
	}
}
