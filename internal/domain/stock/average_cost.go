package stock

import "github.com/shopspring/decimal"

// AverageCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// Se aplica en cada entrada por compra:
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func AverageCost(currentQty int64, currentCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	qty := decimal.NewFromInt(currentQty)
	in := decimal.NewFromInt(inQty)
	sum := qty.Add(in)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := qty.Mul(currentCost).Add(in.Mul(inCost))
	return num.Div(sum)
}
