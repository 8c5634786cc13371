package service

import (
	"context"
	"testing"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/dto"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVentaFixture(productos ...*model.Producto) (VentaService, *stubTransaccionRepo, *stubProductoRepo, *stubMovimientoRepo) {
	productoRepo := newStubProductoRepo(productos...)
	transaccionRepo := newStubTransaccionRepo()
	movimientoRepo := &stubMovimientoRepo{}
	svc := NewVentaService(transaccionRepo, productoRepo, movimientoRepo, nil, nil)
	return svc, transaccionRepo, productoRepo, movimientoRepo
}

func ventaRequest(fecha string, items ...dto.ItemVentaRequest) dto.RegistrarVentaRequest {
	return dto.RegistrarVentaRequest{Fecha: fecha, MetodoPago: "Efectivo", Items: items}
}

func TestRegistrarVenta_CarritoVacio(t *testing.T) {
	svc, transaccionRepo, _, _ := newVentaFixture()

	_, err := svc.RegistrarVenta(context.Background(), ventaRequest("2024-03-10"))

	assert.True(t, apperr.Is(err, apperr.CarritoVacio))
	assert.Empty(t, transaccionRepo.transacciones)
}

func TestRegistrarVenta_FechaInvalida(t *testing.T) {
	svc, _, _, _ := newVentaFixture()

	_, err := svc.RegistrarVenta(context.Background(), ventaRequest("10/03/2024"))
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.RegistrarVenta(context.Background(), ventaRequest("2024-13-01"))
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestRegistrarVenta_MetodoPagoDesconocido(t *testing.T) {
	p := producto("Cera", 20000, 10)
	svc, _, _, _ := newVentaFixture(p)

	req := ventaRequest("2024-03-10", dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 1})
	req.MetodoPago = "Bitcoin"

	_, err := svc.RegistrarVenta(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestRegistrarVenta_DescuentaStockYRegistraLedger(t *testing.T) {
	p := producto("Cera para cabello", 20000, 10)
	svc, transaccionRepo, productoRepo, movimientoRepo := newVentaFixture(p)

	resp, err := svc.RegistrarVenta(context.Background(),
		ventaRequest("2024-03-10", dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 3}))
	require.NoError(t, err)

	// Stock decremented by the sold quantity.
	assert.Equal(t, 7, productoRepo.productos[p.ID].Stock)

	// Ledger record: income in the reserved sales category.
	require.Len(t, transaccionRepo.transacciones, 1)
	assert.Equal(t, model.TipoIngreso, resp.Tipo)
	assert.Equal(t, model.CategoriaVentas, resp.Categoria)
	assert.Equal(t, "Venta (Detal) de 1 tipo(s) de producto.", resp.Descripcion)
	assert.True(t, resp.Monto.Equal(decimal.NewFromInt(60000)))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 10, resp.Items[0].StockOriginal)

	// One audit row per product.
	require.Len(t, movimientoRepo.movimientos, 1)
	mov := movimientoRepo.movimientos[0]
	assert.Equal(t, "venta", mov.Tipo)
	assert.Equal(t, -3, mov.Cantidad)
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 7, mov.StockNuevo)
}

func TestRegistrarVenta_MismoProductoEnVariasLineas(t *testing.T) {
	// The original cart UI appends a new line per add without merging, so the
	// same product legitimately appears twice. The commit must collapse the
	// lines into one cumulative stock write instead of failing the second one.
	p := producto("Cera para cabello", 20000, 10)
	svc, transaccionRepo, productoRepo, movimientoRepo := newVentaFixture(p)

	resp, err := svc.RegistrarVenta(context.Background(), ventaRequest("2024-03-10",
		dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 2},
		dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 2}))
	require.NoError(t, err)

	assert.Equal(t, 6, productoRepo.productos[p.ID].Stock)
	assert.True(t, resp.Monto.Equal(decimal.NewFromInt(80000)))
	assert.Len(t, transaccionRepo.transacciones, 1)

	// Both lines persist on the record, but the stock audit is one cumulative
	// row for the product.
	require.Len(t, resp.Items, 2)
	require.Len(t, movimientoRepo.movimientos, 1)
	mov := movimientoRepo.movimientos[0]
	assert.Equal(t, -4, mov.Cantidad)
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 6, mov.StockNuevo)
}

func TestRegistrarVenta_AcumuladoExcedeStock(t *testing.T) {
	// 3+3 against stock 5: the violation is a cart-build problem, so it must
	// surface as StockInsuficiente at build, never as a commit conflict.
	p := producto("Navaja", 30000, 5)
	svc, transaccionRepo, productoRepo, movimientoRepo := newVentaFixture(p)

	_, err := svc.RegistrarVenta(context.Background(), ventaRequest("2024-03-10",
		dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 3},
		dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 3}))

	assert.True(t, apperr.Is(err, apperr.StockInsuficiente))
	assert.False(t, apperr.Is(err, apperr.Conflicto))
	assert.Equal(t, 5, productoRepo.productos[p.ID].Stock)
	assert.Empty(t, transaccionRepo.transacciones)
	assert.Empty(t, movimientoRepo.movimientos)
}

func TestEliminarVenta_MismoProductoEnVariasLineas(t *testing.T) {
	p := producto("Aceite de barba", 48000, 10)
	svc, transaccionRepo, productoRepo, movimientoRepo := newVentaFixture(p)

	resp, err := svc.RegistrarVenta(context.Background(), ventaRequest("2024-03-10",
		dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 2},
		dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 2}))
	require.NoError(t, err)
	require.Equal(t, 6, productoRepo.productos[p.ID].Stock)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, svc.EliminarTransaccion(context.Background(), id))

	assert.Equal(t, 10, productoRepo.productos[p.ID].Stock)
	assert.Empty(t, transaccionRepo.transacciones)

	// One cumulative restauracion row mirroring the cumulative venta row.
	require.Len(t, movimientoRepo.movimientos, 2)
	assert.Equal(t, "restauracion", movimientoRepo.movimientos[1].Tipo)
	assert.Equal(t, 4, movimientoRepo.movimientos[1].Cantidad)
	assert.Equal(t, 6, movimientoRepo.movimientos[1].StockAnterior)
	assert.Equal(t, 10, movimientoRepo.movimientos[1].StockNuevo)
}

func TestRegistrarVenta_PorMayorEnDescripcion(t *testing.T) {
	p := producto("Kit profesional", 250000, 4)
	svc, _, _, _ := newVentaFixture(p)

	resp, err := svc.RegistrarVenta(context.Background(),
		ventaRequest("2024-03-10", dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 1}))
	require.NoError(t, err)

	assert.Equal(t, "Venta (Por Mayor) de 1 tipo(s) de producto.", resp.Descripcion)
	assert.True(t, resp.Monto.Equal(decimal.NewFromInt(225000)))
	require.NotNil(t, resp.Descuento)
	assert.True(t, resp.Descuento.Equal(decimal.NewFromInt(25000)))
}

func TestRegistrarVenta_StockInsuficienteNoEscribeNada(t *testing.T) {
	p := producto("Navaja", 30000, 5)
	svc, transaccionRepo, productoRepo, movimientoRepo := newVentaFixture(p)

	_, err := svc.RegistrarVenta(context.Background(),
		ventaRequest("2024-03-10", dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 6}))

	assert.True(t, apperr.Is(err, apperr.StockInsuficiente))
	assert.Equal(t, 5, productoRepo.productos[p.ID].Stock)
	assert.Empty(t, transaccionRepo.transacciones)
	assert.Empty(t, movimientoRepo.movimientos)
}

func TestRegistrarVenta_ProductoInexistente(t *testing.T) {
	svc, _, _, _ := newVentaFixture()

	_, err := svc.RegistrarVenta(context.Background(),
		ventaRequest("2024-03-10", dto.ItemVentaRequest{ProductoID: uuid.NewString(), Cantidad: 1}))
	assert.True(t, apperr.Is(err, apperr.NoEncontrado))
}

func TestRegistrarVenta_ErrorDeCommit(t *testing.T) {
	p := producto("Shampoo", 35000, 10)
	productoRepo := newStubProductoRepo(p)
	transaccionRepo := newStubTransaccionRepo()
	transaccionRepo.failCreate = true
	svc := NewVentaService(transaccionRepo, productoRepo, &stubMovimientoRepo{}, nil, nil)

	_, err := svc.RegistrarVenta(context.Background(),
		ventaRequest("2024-03-10", dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 2}))

	assert.True(t, apperr.Is(err, apperr.Commit))
	assert.Empty(t, transaccionRepo.transacciones)
}

func TestEliminarVenta_RestauraStockOriginal(t *testing.T) {
	p := producto("Aceite de barba", 48000, 10)
	svc, transaccionRepo, productoRepo, movimientoRepo := newVentaFixture(p)

	resp, err := svc.RegistrarVenta(context.Background(),
		ventaRequest("2024-03-10", dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 3}))
	require.NoError(t, err)
	require.Equal(t, 7, productoRepo.productos[p.ID].Stock)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, svc.EliminarTransaccion(context.Background(), id))

	// Stock returns to the cart-time snapshot and the record is gone.
	assert.Equal(t, 10, productoRepo.productos[p.ID].Stock)
	assert.Empty(t, transaccionRepo.transacciones)

	// venta + restauracion audit rows.
	require.Len(t, movimientoRepo.movimientos, 2)
	assert.Equal(t, "restauracion", movimientoRepo.movimientos[1].Tipo)
	assert.Equal(t, 3, movimientoRepo.movimientos[1].Cantidad)
}

func TestEliminarVenta_ConflictoDejaElRegistroIntacto(t *testing.T) {
	p := producto("Minoxidil", 55000, 10)
	svc, transaccionRepo, productoRepo, _ := newVentaFixture(p)

	resp, err := svc.RegistrarVenta(context.Background(),
		ventaRequest("2024-03-10", dto.ItemVentaRequest{ProductoID: p.ID.String(), Cantidad: 3}))
	require.NoError(t, err)

	// A manual stock edit lands between the sale and its reversal.
	productoRepo.productos[p.ID].Stock = 20

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	err = svc.EliminarTransaccion(context.Background(), id)

	assert.True(t, apperr.Is(err, apperr.Conflicto))
	// The ledger record survives a failed restoration and stays retryable.
	assert.Len(t, transaccionRepo.transacciones, 1)
	assert.Equal(t, 20, productoRepo.productos[p.ID].Stock)
}

func TestEliminarTransaccion_NoEncontrada(t *testing.T) {
	svc, _, _, _ := newVentaFixture()

	err := svc.EliminarTransaccion(context.Background(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.NoEncontrado))
}

func TestEliminarTransaccion_GastoManualNoTocaStock(t *testing.T) {
	p := producto("Gel", 15000, 8)
	gasto := &model.Transaccion{
		ID:          uuid.New(),
		Fecha:       "2024-02-01",
		Tipo:        model.TipoGasto,
		Categoria:   "Servicios",
		Descripcion: "Factura de luz",
		Monto:       decimal.NewFromInt(80000),
	}
	productoRepo := newStubProductoRepo(p)
	transaccionRepo := newStubTransaccionRepo(gasto)
	movimientoRepo := &stubMovimientoRepo{}
	svc := NewVentaService(transaccionRepo, productoRepo, movimientoRepo, nil, nil)

	require.NoError(t, svc.EliminarTransaccion(context.Background(), gasto.ID))

	assert.Equal(t, 8, productoRepo.productos[p.ID].Stock)
	assert.Empty(t, movimientoRepo.movimientos)
	assert.Empty(t, transaccionRepo.transacciones)
}

func TestCotizar_NoCambiaElInventario(t *testing.T) {
	p := producto("Tónico", 28000, 9)
	svc, transaccionRepo, productoRepo, _ := newVentaFixture(p)

	resp, err := svc.Cotizar(context.Background(), dto.CotizarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 2}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(56000)))
	assert.False(t, resp.EsPorMayor)
	assert.Equal(t, 9, productoRepo.productos[p.ID].Stock)
	assert.Empty(t, transaccionRepo.transacciones)
}
