package service

import (
	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wholesale pricing rules: carts at or above the threshold get a flat
// percentage discount.
var (
	UmbralPorMayor = decimal.NewFromInt(200000)
	TasaDescuento  = decimal.NewFromFloat(0.10)
)

// ItemCarrito is one cart line. StockOriginal snapshots the product's stock at
// the moment the line entered the cart; it is the value the reversal engine
// writes back and the CAS expectation at commit, never re-read later.
type ItemCarrito struct {
	ProductoID     uuid.UUID
	Nombre         string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
	StockOriginal  int
}

// Carrito is an in-progress sale. It is a value: cart operations return a new
// cart and never touch inventory.
type Carrito struct {
	Items []ItemCarrito
}

// PrecioCarrito is the deterministic pricing of a cart.
type PrecioCarrito struct {
	Subtotal   decimal.Decimal
	EsPorMayor bool
	Descuento  decimal.Decimal
	Total      decimal.Decimal
}

// CalcularPrecio prices a cart. Pure: left-to-right summation of the line
// subtotals, wholesale discount at the threshold, no errors — an empty cart
// prices to zero.
func CalcularPrecio(c Carrito) PrecioCarrito {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}

	precio := PrecioCarrito{Subtotal: subtotal, Descuento: decimal.Zero}
	if subtotal.GreaterThanOrEqual(UmbralPorMayor) {
		precio.EsPorMayor = true
		precio.Descuento = subtotal.Mul(TasaDescuento)
	}
	precio.Total = subtotal.Sub(precio.Descuento)
	return precio
}

// AgregarItem appends a line for producto to the cart, snapshotting its
// current stock. The product itself is not mutated: stock is only decremented
// at commit, there is no reservation. The same product may appear on several
// lines; the stock check is against the cart-wide cumulative quantity.
func AgregarItem(c Carrito, producto *model.Producto, cantidad int) (Carrito, error) {
	if producto == nil {
		return c, apperr.New(apperr.Validation, "selecciona un producto")
	}
	if cantidad <= 0 {
		return c, apperr.New(apperr.Validation, "la cantidad debe ser mayor a cero")
	}
	total := cantidad
	for _, item := range c.Items {
		if item.ProductoID == producto.ID {
			total += item.Cantidad
		}
	}
	if total > producto.Stock {
		return c, apperr.Newf(apperr.StockInsuficiente,
			"stock insuficiente para %s: disponible %d", producto.Nombre, producto.Stock)
	}

	item := ItemCarrito{
		ProductoID:     producto.ID,
		Nombre:         producto.Nombre,
		Cantidad:       cantidad,
		PrecioUnitario: producto.Precio,
		Subtotal:       producto.Precio.Mul(decimal.NewFromInt(int64(cantidad))),
		StockOriginal:  producto.Stock,
	}

	items := make([]ItemCarrito, 0, len(c.Items)+1)
	items = append(items, c.Items...)
	items = append(items, item)
	return Carrito{Items: items}, nil
}

// QuitarItem removes the line matching productoID. No-op when absent.
func QuitarItem(c Carrito, productoID uuid.UUID) Carrito {
	items := make([]ItemCarrito, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductoID == productoID {
			continue
		}
		items = append(items, item)
	}
	return Carrito{Items: items}
}
