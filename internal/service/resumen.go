package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/dto"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/model"

	"github.com/shopspring/decimal"
)

// DescomponerFecha splits a YYYY-MM-DD string into its literal components.
// Deliberately not time.Parse: calendar arithmetic with time zones would shift
// dates near UTC boundaries, and the ledger stores plain local dates.
func DescomponerFecha(fecha string) (anio, mes, dia int, ok bool) {
	partes := strings.Split(fecha, "-")
	if len(partes) != 3 {
		return 0, 0, 0, false
	}
	// Strict 4-2-2 digit shape: unpadded dates would break the descending
	// string sort against padded ones.
	if len(partes[0]) != 4 || len(partes[1]) != 2 || len(partes[2]) != 2 {
		return 0, 0, 0, false
	}
	for _, parte := range partes {
		for _, r := range parte {
			if r < '0' || r > '9' {
				return 0, 0, 0, false
			}
		}
	}
	anio, _ = strconv.Atoi(partes[0])
	mes, _ = strconv.Atoi(partes[1])
	dia, _ = strconv.Atoi(partes[2])
	if anio < 1 || mes < 1 || mes > 12 || dia < 1 || dia > 31 {
		return 0, 0, 0, false
	}
	return anio, mes, dia, true
}

// FechaValida reports whether fecha is a well-formed YYYY-MM-DD date.
func FechaValida(fecha string) bool {
	_, _, _, ok := DescomponerFecha(fecha)
	return ok
}

// Resumen totals one month of the ledger.
type Resumen struct {
	TotalIngresos decimal.Decimal
	TotalGastos   decimal.Decimal
	Balance       decimal.Decimal
}

// ResumenPeriodo aggregates the transactions dated in the given month/year.
// Pure; records with unparseable dates are skipped and an empty input yields
// all zeros.
func ResumenPeriodo(transacciones []model.Transaccion, mes, anio int) Resumen {
	ingresos := decimal.Zero
	gastos := decimal.Zero
	for _, t := range transacciones {
		a, m, _, ok := DescomponerFecha(t.Fecha)
		if !ok || m != mes || a != anio {
			continue
		}
		switch t.Tipo {
		case model.TipoIngreso:
			ingresos = ingresos.Add(t.Monto)
		case model.TipoGasto:
			gastos = gastos.Add(t.Monto)
		}
	}
	return Resumen{
		TotalIngresos: ingresos,
		TotalGastos:   gastos,
		Balance:       ingresos.Sub(gastos),
	}
}

// FiltrarYOrdenar applies the optional month/year/type filters and sorts the
// result by date descending (stable, so same-day records keep ledger order).
func FiltrarYOrdenar(transacciones []model.Transaccion, filtro dto.TransaccionFilter) []model.Transaccion {
	out := make([]model.Transaccion, 0, len(transacciones))
	for _, t := range transacciones {
		a, m, _, ok := DescomponerFecha(t.Fecha)
		if !ok {
			continue
		}
		if filtro.Mes != 0 && m != filtro.Mes {
			continue
		}
		if filtro.Anio != 0 && a != filtro.Anio {
			continue
		}
		if filtro.Tipo != "" && t.Tipo != filtro.Tipo {
			continue
		}
		out = append(out, t)
	}
	// ISO dates compare correctly as strings.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha > out[j].Fecha })
	return out
}

// AniosDisponibles returns every distinct year present in the ledger,
// descending, for the UI year filter.
func AniosDisponibles(transacciones []model.Transaccion) []int {
	vistos := make(map[int]bool)
	var anios []int
	for _, t := range transacciones {
		a, _, _, ok := DescomponerFecha(t.Fecha)
		if !ok || vistos[a] {
			continue
		}
		vistos[a] = true
		anios = append(anios, a)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(anios)))
	return anios
}
