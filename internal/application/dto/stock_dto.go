package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordTransactionRequest body para POST /api/stock/transactions.
// quantity siempre es magnitud positiva; el signo lo determina kind.
type RecordTransactionRequest struct {
	ShopID        string           `json:"shop_id" validate:"required,uuid"`
	ProductID     string           `json:"product_id" validate:"required,uuid"`
	VariantID     string           `json:"variant_id,omitempty"`
	Kind          string           `json:"kind" validate:"required"`
	Quantity      int64            `json:"quantity" validate:"required,gt=0"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"` // solo compras
}

// StockTransactionResponse asiento del libro.
type StockTransactionResponse struct {
	ID            string    `json:"id"`
	ShopID        string    `json:"shop_id"`
	ProductID     string    `json:"product_id"`
	VariantID     string    `json:"variant_id,omitempty"`
	Kind          string    `json:"kind"`
	Quantity      int64     `json:"quantity"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	ReferenceType string    `json:"reference_type,omitempty"`
	PerformedBy   string    `json:"performed_by,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockLevelResponse nivel actual de una combinación tienda+producto+variante.
type StockLevelResponse struct {
	ShopID           string    `json:"shop_id"`
	ProductID        string    `json:"product_id"`
	VariantID        string    `json:"variant_id,omitempty"`
	CurrentQuantity  int64     `json:"current_quantity"`
	MinimumThreshold int64     `json:"minimum_threshold"`
	MaximumThreshold int64     `json:"maximum_threshold"`
	LowStock         bool      `json:"low_stock"`
	OutOfStock       bool      `json:"out_of_stock"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpdateThresholdsRequest body para fijar umbrales de un nivel.
type UpdateThresholdsRequest struct {
	ShopID           string `json:"shop_id" validate:"required,uuid"`
	ProductID        string `json:"product_id" validate:"required,uuid"`
	VariantID        string `json:"variant_id,omitempty"`
	MinimumThreshold int64  `json:"minimum_threshold" validate:"min=0"`
	MaximumThreshold int64  `json:"maximum_threshold" validate:"min=0"`
}

// LowStockItemResponse renglón del reporte de niveles bajo mínimo.
type LowStockItemResponse struct {
	ProductID        string `json:"product_id"`
	VariantID        string `json:"variant_id,omitempty"`
	SKU              string `json:"sku"`
	ProductName      string `json:"product_name"`
	CurrentQuantity  int64  `json:"current_quantity"`
	MinimumThreshold int64  `json:"minimum_threshold"`
	Deficit          int64  `json:"deficit"`
}
