package repository

import (
	"context"
	"errors"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransaccionRepository is the append/delete/read-all contract of the ledger.
// Writes that belong to an atomic sale or reversal commit take the live tx.
type TransaccionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.Transaccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	// List returns the full ledger snapshot; filtering and ordering for
	// display are pure operations on the snapshot, not queries.
	List(ctx context.Context) ([]model.Transaccion, error)
	DB() *gorm.DB
}

type transaccionRepo struct{ db *gorm.DB }

func NewTransaccionRepository(db *gorm.DB) TransaccionRepository {
	return &transaccionRepo{db: db}
}

func (r *transaccionRepo) DB() *gorm.DB { return r.db }

func (r *transaccionRepo) Create(ctx context.Context, tx *gorm.DB, t *model.Transaccion) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transaccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error) {
	var t model.Transaccion
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NoEncontrado, "transacción no encontrada")
	}
	return &t, err
}

func (r *transaccionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Delete(&model.Transaccion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NoEncontrado, "transacción no encontrada")
	}
	return nil
}

func (r *transaccionRepo) List(ctx context.Context) ([]model.Transaccion, error) {
	var transacciones []model.Transaccion
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		Find(&transacciones).Error
	return transacciones, err
}
