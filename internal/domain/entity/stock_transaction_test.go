package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

func TestKindIncreases_TablaCompleta(t *testing.T) {
	cases := []struct {
		kind      string
		increases bool
	}{
		{entity.KindPurchase, true},
		{entity.KindReturn, true},
		{entity.KindTransferIn, true},
		{entity.KindOpeningStock, true},
		{entity.KindSale, false},
		{entity.KindTransferOut, false},
		{entity.KindWastage, false},
		{entity.KindAdjustment, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.increases, entity.KindIncreases(tc.kind), "kind %s", tc.kind)
	}
}

func TestSignedQuantity_SignoSegunTipo(t *testing.T) {
	assert.Equal(t, int64(10), entity.SignedQuantity(entity.KindPurchase, 10))
	assert.Equal(t, int64(-10), entity.SignedQuantity(entity.KindSale, 10))
	assert.Equal(t, int64(-3), entity.SignedQuantity(entity.KindWastage, 3))
	assert.Equal(t, int64(7), entity.SignedQuantity(entity.KindTransferIn, 7))
	assert.Equal(t, int64(-7), entity.SignedQuantity(entity.KindTransferOut, 7))
}

func TestIsValidTransactionKind(t *testing.T) {
	assert.True(t, entity.IsValidTransactionKind(entity.KindOpeningStock))
	assert.False(t, entity.IsValidTransactionKind("donation"))
	assert.False(t, entity.IsValidTransactionKind(""))
}

func TestStockTransaction_Signed(t *testing.T) {
	txn := &entity.StockTransaction{Kind: entity.KindSale, Quantity: 4}
	assert.Equal(t, int64(-4), txn.Signed())

	txn.Kind = entity.KindReturn
	assert.Equal(t, int64(4), txn.Signed())
}
