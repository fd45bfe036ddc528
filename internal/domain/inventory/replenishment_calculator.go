package inventory

import "github.com/shopspring/decimal"

// ReorderFactor stock ideal = ceil(mínimo × factor).
var ReorderFactor = decimal.NewFromFloat(1.5)

// IdealStock stock objetivo tras reponer (servicio de dominio).
func IdealStock(minimum int) int {
	if minimum <= 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(minimum)).Mul(ReorderFactor).Ceil().IntPart())
}

// SuggestedOrder unidades a pedir para llegar al ideal; nunca negativo.
// Un stock actual negativo se pide completo.
func SuggestedOrder(current, minimum int) int {
	n := IdealStock(minimum) - current
	if n < 0 {
		return 0
	}
	return n
}

// GrossMarginPct margen bruto porcentual: (venta - costo) / venta × 100, redondeado a 2 decimales.
// Sin precio de venta positivo el margen es cero.
func GrossMarginPct(cost, sale decimal.Decimal) decimal.Decimal {
	if sale.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return sale.Sub(cost).Div(sale).Mul(decimal.NewFromInt(100)).Round(2)
}
