package service

import (
	"context"
	"errors"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductoRepo is an in-memory ProductoRepository. DB() returns nil so
// services run their transaction bodies directly against the stub.
type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo(productos ...*model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
	for _, p := range productos {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.productos[p.ID] = p
	}
	return r
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, apperr.New(apperr.NoEncontrado, "producto no encontrado")
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) ActualizarStockCAS(_ *gorm.DB, id uuid.UUID, esperado, nuevo int) error {
	p, ok := r.productos[id]
	if !ok {
		return apperr.New(apperr.NoEncontrado, "producto no encontrado")
	}
	if p.Stock != esperado {
		return apperr.Newf(apperr.Conflicto, "stock de %s cambió: esperado %d, actual %d", p.Nombre, esperado, p.Stock)
	}
	p.Stock = nuevo
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, _ *gorm.DB, id uuid.UUID, nuevo int) error {
	p, ok := r.productos[id]
	if !ok {
		return apperr.New(apperr.NoEncontrado, "producto no encontrado")
	}
	p.Stock = nuevo
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubTransaccionRepo is an in-memory TransaccionRepository.
type stubTransaccionRepo struct {
	transacciones map[uuid.UUID]*model.Transaccion
	failCreate    bool
}

func newStubTransaccionRepo(transacciones ...*model.Transaccion) *stubTransaccionRepo {
	r := &stubTransaccionRepo{transacciones: make(map[uuid.UUID]*model.Transaccion)}
	for _, t := range transacciones {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		r.transacciones[t.ID] = t
	}
	return r
}

func (r *stubTransaccionRepo) Create(_ context.Context, _ *gorm.DB, t *model.Transaccion) error {
	if r.failCreate {
		return errors.New("connection reset by peer")
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transacciones[t.ID] = t
	return nil
}

func (r *stubTransaccionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaccion, error) {
	t, ok := r.transacciones[id]
	if !ok {
		return nil, apperr.New(apperr.NoEncontrado, "transacción no encontrada")
	}
	return t, nil
}

func (r *stubTransaccionRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.transacciones[id]; !ok {
		return apperr.New(apperr.NoEncontrado, "transacción no encontrada")
	}
	delete(r.transacciones, id)
	return nil
}

func (r *stubTransaccionRepo) List(_ context.Context) ([]model.Transaccion, error) {
	out := make([]model.Transaccion, 0, len(r.transacciones))
	for _, t := range r.transacciones {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTransaccionRepo) DB() *gorm.DB { return nil }

var _ repository.TransaccionRepository = (*stubTransaccionRepo)(nil)

// stubMovimientoRepo captures audit rows for assertion.
type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, _ repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	return r.movimientos, int64(len(r.movimientos)), nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)
