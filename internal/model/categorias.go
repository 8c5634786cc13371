package model

// Closed category sets. Anything outside these is rejected at the boundary
// instead of being stored as a free-form string.

// CategoriasProducto are the inventory categories of the barbería.
var CategoriasProducto = []string{"capilar", "barba", "facial", "maquinas", "insumos"}

// CategoriasGasto are the accepted expense categories.
var CategoriasGasto = []string{
	"Arriendo", "Servicios", "Nómina", "Proveedores",
	"Marketing", "Impuestos", "Otros Gastos",
}

// CategoriasIngreso are the accepted manual income categories. Sales use
// CategoriaVentas and are created by the sale engine only.
var CategoriasIngreso = []string{"Servicios Barbería", "Otros Ingresos"}

// MetodosPago are the accepted payment methods for a sale.
var MetodosPago = []string{
	"Efectivo", "Tarjeta Débito/Crédito", "PSE", "Nequi", "Daviplata", "Otro",
}

func contiene(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// CategoriaProductoValida reports whether c is a known product category.
func CategoriaProductoValida(c string) bool { return contiene(CategoriasProducto, c) }

// CategoriaTransaccionValida reports whether the category is allowed for a
// manual transaction of the given type.
func CategoriaTransaccionValida(tipo, categoria string) bool {
	switch tipo {
	case TipoGasto:
		return contiene(CategoriasGasto, categoria)
	case TipoIngreso:
		return contiene(CategoriasIngreso, categoria)
	}
	return false
}

// MetodoPagoValido reports whether m is a known payment method.
func MetodoPagoValido(m string) bool { return contiene(MetodosPago, m) }
