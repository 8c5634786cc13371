package repository

import (
	"context"
	"errors"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for inventory products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	// List returns the full inventory snapshot ordered by category and name.
	List(ctx context.Context) ([]model.Producto, error)

	// ActualizarStockCAS writes an absolute stock value guarded by an
	// expected-current-value check. A stale expectation fails the whole
	// surrounding transaction with apperr.Conflicto; callers retry against
	// fresh data. Must run inside the tx passed by the caller.
	ActualizarStockCAS(tx *gorm.DB, id uuid.UUID, esperado, nuevo int) error

	// AjustarStock sets stock to an absolute value outside any sale (manual edit).
	AjustarStock(ctx context.Context, tx *gorm.DB, id uuid.UUID, nuevo int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NoEncontrado, "producto no encontrado")
	}
	return &p, err
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("categoria ASC, nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) ActualizarStockCAS(tx *gorm.DB, id uuid.UUID, esperado, nuevo int) error {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock = ?", id, esperado).
		Update("stock", nuevo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Newf(apperr.Conflicto,
			"el stock del producto %s cambió desde que se armó el carrito", id)
	}
	return nil
}

func (r *productoRepo) AjustarStock(ctx context.Context, tx *gorm.DB, id uuid.UUID, nuevo int) error {
	res := tx.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock", nuevo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NoEncontrado, "producto no encontrado")
	}
	return nil
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
