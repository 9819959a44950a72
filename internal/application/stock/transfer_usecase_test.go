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

func createTransfer(t *testing.T, env *testEnv, qty int64) *entity.StockTransfer {
	t.Helper()
	transfer, err := env.transfer.Create(context.Background(), stock.CreateTransferInput{
		TenantID:          tenantA,
		SourceShopID:      shopMain,
		DestinationShopID: shopSec,
		InitiatedBy:       userAna,
		Items: []stock.TransferItemInput{
			{ProductID: prodRon, Quantity: qty},
		},
	})
	require.NoError(t, err)
	return transfer
}

func levelQty(t *testing.T, env *testEnv, shopID string) int64 {
	t.Helper()
	level, err := env.levels.Get(context.Background(), tenantA, shopID, prodRon, "")
	require.NoError(t, err)
	if level == nil {
		return 0
	}
	return level.CurrentQuantity
}

func TestTransfer_CicloCompleto(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 20, 5)

	transfer := createTransfer(t, env, 8)
	assert.Equal(t, entity.TransferPending, transfer.Status)
	assert.NotEmpty(t, transfer.ReferenceNumber, "se genera referencia si no viene")
	assert.Equal(t, int64(20), levelQty(t, env, shopMain), "pending no descuenta nada")

	// pending -> in_transit: salida en origen
	transfer, err := env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferInTransit, userAna)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferInTransit, transfer.Status)
	assert.Equal(t, int64(12), levelQty(t, env, shopMain))
	assert.Equal(t, int64(0), levelQty(t, env, shopSec))

	// in_transit -> completed: entrada en destino (nivel creado perezosamente)
	transfer, err = env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferCompleted, userAna)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, transfer.Status)
	assert.Equal(t, int64(12), levelQty(t, env, shopMain))
	assert.Equal(t, int64(8), levelQty(t, env, shopSec))
	require.Len(t, transfer.Items, 1)
	assert.True(t, transfer.Items[0].Received)
	assert.Equal(t, int64(8), transfer.Items[0].ReceivedQuantity)

	// el libro tiene transfer_out en origen y transfer_in en destino
	outSum, _ := env.txns.SumSigned(context.Background(), tenantA, shopMain, prodRon, "")
	inSum, _ := env.txns.SumSigned(context.Background(), tenantA, shopSec, prodRon, "")
	assert.Equal(t, int64(-8), outSum)
	assert.Equal(t, int64(8), inSum)
}

func TestTransfer_CancelarPendingNoTocaStock(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 20, 5)

	transfer := createTransfer(t, env, 8)
	transfer, err := env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferCancelled, userAna)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCancelled, transfer.Status)
	assert.Equal(t, int64(20), levelQty(t, env, shopMain))
	assert.Empty(t, env.txns.txns, "cancelar en pending no genera asientos")
}

func TestTransfer_CancelarInTransitRestauraOrigen(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 20, 5)

	transfer := createTransfer(t, env, 8)
	_, err := env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferInTransit, userAna)
	require.NoError(t, err)
	assert.Equal(t, int64(12), levelQty(t, env, shopMain))

	_, err = env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferCancelled, userAna)
	require.NoError(t, err)
	assert.Equal(t, int64(20), levelQty(t, env, shopMain), "la compensación repone el origen")
	assert.Equal(t, int64(0), levelQty(t, env, shopSec), "el destino nunca recibió nada")

	// queda rastro: transfer_out + transfer_in en el origen, suma neta cero
	sum, _ := env.txns.SumSigned(context.Background(), tenantA, shopMain, prodRon, "")
	assert.Equal(t, int64(0), sum)
	assert.Len(t, env.txns.txns, 2)
}

func TestTransfer_TransicionInvalidaNoMuta(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 20, 5)

	transfer := createTransfer(t, env, 8)

	// pending -> completed está prohibido
	_, err := env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferCompleted, userAna)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	var transErr *domain.InvalidTransitionError
	require.True(t, errors.As(err, &transErr))
	assert.Equal(t, entity.TransferPending, transErr.From)
	assert.Equal(t, entity.TransferCompleted, transErr.To)

	stored, err := env.transfer.GetByID(context.Background(), tenantA, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferPending, stored.Status, "el estado no cambia")
	assert.Equal(t, int64(20), levelQty(t, env, shopMain))
}

func TestTransfer_EstadoTerminalRechazaTodo(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 20, 5)

	transfer := createTransfer(t, env, 5)
	_, err := env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferCancelled, userAna)
	require.NoError(t, err)

	_, err = env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferInTransit, userAna)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestTransfer_TransicionMultiItemTodoONada(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedProduct(prodGin, tenantA, "GIN-001", "Ginebra London Dry 700ml")
	env.seedLevel(tenantA, shopMain, prodRon, "", 20, 5)
	env.seedLevel(tenantA, shopMain, prodGin, "", 20, 5)

	transfer, err := env.transfer.Create(context.Background(), stock.CreateTransferInput{
		TenantID:          tenantA,
		SourceShopID:      shopMain,
		DestinationShopID: shopSec,
		InitiatedBy:       userAna,
		Items: []stock.TransferItemInput{
			{ProductID: prodRon, Quantity: 8},
			{ProductID: prodGin, Quantity: 8},
		},
	})
	require.NoError(t, err)

	// entre crear y despachar, otra venta drena la ginebra del origen
	env.seedLevel(tenantA, shopMain, prodGin, "", 5, 5)

	_, err = env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferInTransit, userAna)
	require.Error(t, err)

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, prodGin, insErr.ProductID)

	// la salida del ron, registrada antes del fallo, se revierte con la tx
	assert.Equal(t, int64(20), levelQty(t, env, shopMain))
	assert.Empty(t, env.txns.txns, "ningún asiento sobrevive al rollback")

	stored, err := env.transfer.GetByID(context.Background(), tenantA, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferPending, stored.Status)
}

func TestTransfer_CrearSinStockSuficienteFalla(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 3, 5)

	_, err := env.transfer.Create(context.Background(), stock.CreateTransferInput{
		TenantID:          tenantA,
		SourceShopID:      shopMain,
		DestinationShopID: shopSec,
		Items:             []stock.TransferItemInput{{ProductID: prodRon, Quantity: 8}},
	})
	require.Error(t, err)

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr), "nombra el producto sin stock")
	assert.Equal(t, prodRon, insErr.ProductID)
	assert.Equal(t, int64(3), insErr.Available)
}

func TestTransfer_CrearConVarianteAjenaFalla(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedProduct(prodGin, tenantA, "GIN-001", "Ginebra London Dry 700ml")
	_ = env.products.CreateVariant(&entity.ProductVariant{
		ID: "var-media", ProductID: prodGin, Name: "Media botella", SKU: "GIN-001-M",
	})
	env.seedLevel(tenantA, shopMain, prodRon, "", 20, 5)

	// variante inexistente
	_, err := env.transfer.Create(context.Background(), stock.CreateTransferInput{
		TenantID:          tenantA,
		SourceShopID:      shopMain,
		DestinationShopID: shopSec,
		Items:             []stock.TransferItemInput{{ProductID: prodRon, VariantID: "var-fantasma", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// variante de otro producto
	_, err = env.transfer.Create(context.Background(), stock.CreateTransferInput{
		TenantID:          tenantA,
		SourceShopID:      shopMain,
		DestinationShopID: shopSec,
		Items:             []stock.TransferItemInput{{ProductID: prodRon, VariantID: "var-media", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, env.transfers.transfers, "no se persiste ningún traslado")
}

func TestTransfer_MismaTiendaOrigenDestinoFalla(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)

	_, err := env.transfer.Create(context.Background(), stock.CreateTransferInput{
		TenantID:          tenantA,
		SourceShopID:      shopMain,
		DestinationShopID: shopMain,
		Items:             []stock.TransferItemInput{{ProductID: prodRon, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTransfer_PublicaEventosDeTraslado(t *testing.T) {
	env := newTestEnv()
	seedBasics(env)
	env.seedLevel(tenantA, shopMain, prodRon, "", 20, 5)

	transfer := createTransfer(t, env, 4)
	_, err := env.transfer.Transition(context.Background(), tenantA, transfer.ID, entity.TransferInTransit, userAna)
	require.NoError(t, err)

	assert.Equal(t, 2, env.publisher.topicCount(stock.TopicStockTransfers), "created + status_changed")
	assert.Equal(t, 1, env.publisher.topicCount(stock.TopicStockTransactions), "el asiento de salida también se publica")
}
