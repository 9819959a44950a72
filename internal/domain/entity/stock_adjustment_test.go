package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

func TestRecomputeDifference(t *testing.T) {
	item := &entity.StockAdjustmentItem{PreviousQuantity: 50, NewQuantity: 45}
	item.RecomputeDifference()
	assert.Equal(t, int64(-5), item.Difference)

	item = &entity.StockAdjustmentItem{PreviousQuantity: 10, NewQuantity: 25}
	item.RecomputeDifference()
	assert.Equal(t, int64(15), item.Difference)

	// diferencia cero también es válida: deja constancia del conteo
	item = &entity.StockAdjustmentItem{PreviousQuantity: 8, NewQuantity: 8}
	item.RecomputeDifference()
	assert.Equal(t, int64(0), item.Difference)
}

func TestRecomputeDifference_IgnoraValorDelCaller(t *testing.T) {
	item := &entity.StockAdjustmentItem{PreviousQuantity: 20, NewQuantity: 18, Difference: 999}
	item.RecomputeDifference()
	assert.Equal(t, int64(-2), item.Difference, "la diferencia siempre se recalcula")
}

func TestIsValidAdjustmentKind(t *testing.T) {
	for _, kind := range []string{
		entity.AdjustmentPhysicalCount,
		entity.AdjustmentDamaged,
		entity.AdjustmentExpired,
		entity.AdjustmentLost,
		entity.AdjustmentFound,
		entity.AdjustmentOther,
	} {
		assert.True(t, entity.IsValidAdjustmentKind(kind), "kind %s", kind)
	}
	assert.False(t, entity.IsValidAdjustmentKind("recount"))
	assert.False(t, entity.IsValidAdjustmentKind(""))
}
