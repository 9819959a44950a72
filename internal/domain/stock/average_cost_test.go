package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/licoreria-api/internal/domain/stock"
)

func TestAverageCost_PromedioPonderado(t *testing.T) {
	// 10 unidades a $100 + 10 unidades a $200 = promedio $150
	got := stock.AverageCost(10, decimal.NewFromInt(100), 10, decimal.NewFromInt(200))
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "esperado 150, obtenido %s", got)
}

func TestAverageCost_StockCeroTomaCostoEntrada(t *testing.T) {
	got := stock.AverageCost(0, decimal.Zero, 5, decimal.NewFromInt(80))
	assert.True(t, got.Equal(decimal.NewFromInt(80)), "esperado 80, obtenido %s", got)
}

func TestAverageCost_SumaCeroDevuelveCero(t *testing.T) {
	got := stock.AverageCost(0, decimal.NewFromInt(50), 0, decimal.NewFromInt(90))
	assert.True(t, got.Equal(decimal.Zero))
}
