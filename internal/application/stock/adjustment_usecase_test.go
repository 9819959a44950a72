package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

func TestAdjustment_ConteoFisicoFijaCantidad(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 50, 10)

	adjustment, err := env.adjustment.Create(context.Background(), stock.CreateAdjustmentInput{
		TenantID:    tenantA,
		ShopID:      shopMain,
		Kind:        entity.AdjustmentPhysicalCount,
		PerformedBy: userAna,
		Items: []stock.AdjustmentItemInput{
			{ProductID: prodRon, NewQuantity: 45},
		},
	})
	require.NoError(t, err)
	require.Len(t, adjustment.Items, 1)

	item := adjustment.Items[0]
	assert.Equal(t, int64(50), item.PreviousQuantity)
	assert.Equal(t, int64(45), item.NewQuantity)
	assert.Equal(t, int64(-5), item.Difference, "la diferencia se calcula en el servidor")

	assert.Equal(t, int64(45), levelQty(t, env, shopMain))

	// el asiento del libro lleva la magnitud, tipo adjustment
	require.Len(t, env.txns.txns, 1)
	txn := env.txns.txns[0]
	assert.Equal(t, entity.KindAdjustment, txn.Kind)
	assert.Equal(t, int64(5), txn.Quantity)
	assert.Equal(t, adjustment.ID, txn.ReferenceID)
	assert.Equal(t, entity.RefTypeAdjustment, txn.ReferenceType)
}

func TestAdjustment_SubidaTambienEsLegal(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 10, 5)

	adjustment, err := env.adjustment.Create(context.Background(), stock.CreateAdjustmentInput{
		TenantID: tenantA,
		ShopID:   shopMain,
		Kind:     entity.AdjustmentFound,
		Items:    []stock.AdjustmentItemInput{{ProductID: prodRon, NewQuantity: 25}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), adjustment.Items[0].Difference)
	assert.Equal(t, int64(25), levelQty(t, env, shopMain))
}

func TestAdjustment_DiferenciaCeroDejaConstancia(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 8, 5)

	adjustment, err := env.adjustment.Create(context.Background(), stock.CreateAdjustmentInput{
		TenantID: tenantA,
		ShopID:   shopMain,
		Kind:     entity.AdjustmentPhysicalCount,
		Items:    []stock.AdjustmentItemInput{{ProductID: prodRon, NewQuantity: 8}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), adjustment.Items[0].Difference)
	require.Len(t, env.txns.txns, 1, "el conteo sin delta también se asienta")
	assert.Equal(t, int64(0), env.txns.txns[0].Quantity)
}

func TestAdjustment_SobreCombinacionSinNivelParteDeCero(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)

	adjustment, err := env.adjustment.Create(context.Background(), stock.CreateAdjustmentInput{
		TenantID: tenantA,
		ShopID:   shopMain,
		Kind:     entity.AdjustmentFound,
		Items:    []stock.AdjustmentItemInput{{ProductID: prodRon, NewQuantity: 12}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), adjustment.Items[0].PreviousQuantity)
	assert.Equal(t, int64(12), adjustment.Items[0].Difference)
	assert.Equal(t, int64(12), levelQty(t, env, shopMain))
}

func TestAdjustment_KindInvalidoFalla(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)

	_, err := env.adjustment.Create(context.Background(), stock.CreateAdjustmentInput{
		TenantID: tenantA,
		ShopID:   shopMain,
		Kind:     "recount",
		Items:    []stock.AdjustmentItemInput{{ProductID: prodRon, NewQuantity: 5}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAdjustment_CantidadNegativaFalla(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)

	_, err := env.adjustment.Create(context.Background(), stock.CreateAdjustmentInput{
		TenantID: tenantA,
		ShopID:   shopMain,
		Kind:     entity.AdjustmentPhysicalCount,
		Items:    []stock.AdjustmentItemInput{{ProductID: prodRon, NewQuantity: -1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAdjustment_TiendaDeOtroTenantFalla(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)

	_, err := env.adjustment.Create(context.Background(), stock.CreateAdjustmentInput{
		TenantID: tenantB,
		ShopID:   shopMain,
		Kind:     entity.AdjustmentPhysicalCount,
		Items:    []stock.AdjustmentItemInput{{ProductID: prodRon, NewQuantity: 5}},
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAdjustment_PublicaEventos(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 10, 5)

	_, err := env.adjustment.Create(context.Background(), stock.CreateAdjustmentInput{
		TenantID: tenantA,
		ShopID:   shopMain,
		Kind:     entity.AdjustmentDamaged,
		Items:    []stock.AdjustmentItemInput{{ProductID: prodRon, NewQuantity: 7}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, env.publisher.topicCount(stock.TopicStockAdjustments))
	assert.Equal(t, 1, env.publisher.topicCount(stock.TopicStockLevels))
}
