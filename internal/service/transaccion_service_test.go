package service

import (
	"context"
	"testing"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/dto"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gastoRequest() dto.CrearTransaccionRequest {
	return dto.CrearTransaccionRequest{
		Fecha:       "2024-04-02",
		Tipo:        model.TipoGasto,
		Categoria:   "Servicios",
		Descripcion: "Factura de agua",
		Monto:       decimal.NewFromInt(45000),
	}
}

func TestCrearTransaccion(t *testing.T) {
	repo := newStubTransaccionRepo()
	svc := NewTransaccionService(repo, nil)

	resp, err := svc.Crear(context.Background(), gastoRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, model.TipoGasto, resp.Tipo)
	assert.Nil(t, resp.Subtotal, "manual records carry no sale fields")
	assert.Empty(t, resp.Items)
	assert.Len(t, repo.transacciones, 1)
}

func TestCrearTransaccion_Validaciones(t *testing.T) {
	svc := NewTransaccionService(newStubTransaccionRepo(), nil)

	req := gastoRequest()
	req.Fecha = "02-04-2024"
	_, err := svc.Crear(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.Validation))

	req = gastoRequest()
	req.Tipo = "transfer"
	_, err = svc.Crear(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.Validation))

	req = gastoRequest()
	req.Monto = decimal.Zero
	_, err = svc.Crear(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.Validation))

	req = gastoRequest()
	req.Monto = decimal.NewFromInt(-100)
	_, err = svc.Crear(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestCrearTransaccion_CategoriaDesconocida(t *testing.T) {
	svc := NewTransaccionService(newStubTransaccionRepo(), nil)

	req := gastoRequest()
	req.Categoria = "Criptomonedas"
	_, err := svc.Crear(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.CategoriaDesconocida))

	// Category sets are per type: an income category is not a valid expense one.
	req = gastoRequest()
	req.Categoria = "Servicios Barbería"
	_, err = svc.Crear(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.CategoriaDesconocida))
}

func TestCrearTransaccion_CategoriaVentasReservada(t *testing.T) {
	// Sales enter the ledger only through the sale engine.
	svc := NewTransaccionService(newStubTransaccionRepo(), nil)

	req := gastoRequest()
	req.Tipo = model.TipoIngreso
	req.Categoria = model.CategoriaVentas
	_, err := svc.Crear(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.CategoriaDesconocida))
}

func TestListar_FiltraYExponeAnios(t *testing.T) {
	repo := newStubTransaccionRepo(
		&model.Transaccion{Fecha: "2024-01-05", Tipo: model.TipoIngreso, Categoria: "Servicios Barbería", Monto: decimal.NewFromInt(1000)},
		&model.Transaccion{Fecha: "2024-02-09", Tipo: model.TipoGasto, Categoria: "Arriendo", Monto: decimal.NewFromInt(2000)},
		&model.Transaccion{Fecha: "2023-06-15", Tipo: model.TipoIngreso, Categoria: "Otros Ingresos", Monto: decimal.NewFromInt(3000)},
	)
	svc := NewTransaccionService(repo, nil)

	resp, err := svc.Listar(context.Background(), dto.TransaccionFilter{Anio: 2024})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "2024-02-09", resp.Data[0].Fecha)
	// Year filter list always reflects the full ledger.
	assert.Equal(t, []int{2024, 2023}, resp.Anios)
}

func TestResumen_ValidaPeriodo(t *testing.T) {
	svc := NewTransaccionService(newStubTransaccionRepo(), nil)

	_, err := svc.Resumen(context.Background(), 0, 2024)
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.Resumen(context.Background(), 13, 2024)
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.Resumen(context.Background(), 5, 0)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestResumen_TotalesDelMes(t *testing.T) {
	repo := newStubTransaccionRepo(
		&model.Transaccion{Fecha: "2024-01-15", Tipo: model.TipoIngreso, Categoria: "Servicios Barbería", Monto: decimal.NewFromInt(50000)},
		&model.Transaccion{Fecha: "2024-02-01", Tipo: model.TipoGasto, Categoria: "Servicios", Monto: decimal.NewFromInt(20000)},
	)
	svc := NewTransaccionService(repo, nil)

	resp, err := svc.Resumen(context.Background(), 1, 2024)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Mes)
	assert.Equal(t, 2024, resp.Anio)
	assert.True(t, resp.TotalIngresos.Equal(decimal.NewFromInt(50000)))
	assert.True(t, resp.TotalGastos.IsZero())
	assert.True(t, resp.Balance.Equal(decimal.NewFromInt(50000)))
}
