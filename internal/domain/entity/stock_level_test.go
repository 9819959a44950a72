package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

func TestNewStockLevel_IniciaEnCeroConUmbrales(t *testing.T) {
	now := time.Now()
	level := entity.NewStockLevel("t1", "s1", "p1", "", now)

	assert.Equal(t, int64(0), level.CurrentQuantity)
	assert.Equal(t, entity.DefaultMinimumThreshold, level.MinimumThreshold)
	assert.Equal(t, entity.DefaultMaximumThreshold, level.MaximumThreshold)
	assert.True(t, level.OutOfStock)
	assert.False(t, level.LowStock, "cantidad cero es out_of_stock, no low_stock")
}

func TestApplyDelta_NegativoNoMuta(t *testing.T) {
	now := time.Now()
	level := entity.NewStockLevel("t1", "s1", "p1", "", now)
	require.True(t, level.ApplyDelta(5, now))

	ok := level.ApplyDelta(-10, now)
	assert.False(t, ok, "un delta que dejaría negativo se rechaza")
	assert.Equal(t, int64(5), level.CurrentQuantity, "la cantidad no debe cambiar")
}

func TestApplyDelta_RecalculaFlags(t *testing.T) {
	now := time.Now()
	level := entity.NewStockLevel("t1", "s1", "p1", "v1", now)
	level.MinimumThreshold = 10

	require.True(t, level.ApplyDelta(50, now))
	assert.False(t, level.LowStock)
	assert.False(t, level.OutOfStock)

	require.True(t, level.ApplyDelta(-43, now))
	assert.Equal(t, int64(7), level.CurrentQuantity)
	assert.True(t, level.LowStock, "7 < mínimo 10")
	assert.False(t, level.OutOfStock)

	require.True(t, level.ApplyDelta(-7, now))
	assert.True(t, level.OutOfStock)
	assert.False(t, level.LowStock)
}

func TestSetQuantity_FijaAbsolutoYFlags(t *testing.T) {
	now := time.Now()
	level := entity.NewStockLevel("t1", "s1", "p1", "", now)
	level.MinimumThreshold = 10

	level.SetQuantity(45, now)
	assert.Equal(t, int64(45), level.CurrentQuantity)
	assert.False(t, level.LowStock)

	level.SetQuantity(0, now)
	assert.True(t, level.OutOfStock)

	// negativo se normaliza a cero
	level.SetQuantity(-3, now)
	assert.Equal(t, int64(0), level.CurrentQuantity)
}

func TestRefreshFlags_ExactamenteEnElUmbral(t *testing.T) {
	level := &entity.StockLevel{CurrentQuantity: 10, MinimumThreshold: 10}
	level.RefreshFlags()
	assert.False(t, level.LowStock, "igual al mínimo no es low_stock")
	assert.False(t, level.OutOfStock)
}
