package stock

import (
	"strings"
	"time"
)

// Topics Kafka del subsistema de stock. Los eventos se publican de forma
// explícita al final de cada caso de uso, después del commit (orden visible
// y testeable, nada de dispatch implícito).
const (
	TopicStockLevels       = "stock.levels"
	TopicStockTransactions = "stock.transactions"
	TopicStockTransfers    = "stock.transfers"
	TopicStockAdjustments  = "stock.adjustments"
)

// Acciones de los eventos.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionStatusChanged = "status_changed"
)

// LevelKey clave de partición por combinación tenant+tienda+producto+variante,
// para que los eventos de un mismo nivel conserven el orden dentro del topic.
func LevelKey(tenantID, shopID, productID, variantID string) string {
	return strings.Join([]string{tenantID, shopID, productID, variantID}, ":")
}

// StockLevelEvent snapshot del nivel tras una mutación.
type StockLevelEvent struct {
	Action           string    `json:"action"`
	TenantID         string    `json:"tenant_id"`
	ShopID           string    `json:"shop_id"`
	ProductID        string    `json:"product_id"`
	VariantID        string    `json:"variant_id,omitempty"`
	CurrentQuantity  int64     `json:"current_quantity"`
	MinimumThreshold int64     `json:"minimum_threshold"`
	LowStock         bool      `json:"low_stock"`
	OutOfStock       bool      `json:"out_of_stock"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StockTransactionEvent asiento recién añadido al libro.
type StockTransactionEvent struct {
	TransactionID string    `json:"transaction_id"`
	TenantID      string    `json:"tenant_id"`
	ShopID        string    `json:"shop_id"`
	ProductID     string    `json:"product_id"`
	VariantID     string    `json:"variant_id,omitempty"`
	Kind          string    `json:"kind"`
	Quantity      int64     `json:"quantity"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	ReferenceType string    `json:"reference_type,omitempty"`
	PerformedBy   string    `json:"performed_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransferEvent creación o cambio de estado de un traslado.
type TransferEvent struct {
	Action            string    `json:"action"`
	TransferID        string    `json:"transfer_id"`
	TenantID          string    `json:"tenant_id"`
	SourceShopID      string    `json:"source_shop_id"`
	DestinationShopID string    `json:"destination_shop_id"`
	Status            string    `json:"status"`
	ItemCount         int       `json:"item_count"`
	At                time.Time `json:"at"`
}

// AdjustmentEvent creación de un ajuste de inventario.
type AdjustmentEvent struct {
	Action       string    `json:"action"`
	AdjustmentID string    `json:"adjustment_id"`
	TenantID     string    `json:"tenant_id"`
	ShopID       string    `json:"shop_id"`
	Kind         string    `json:"kind"`
	ItemCount    int       `json:"item_count"`
	At           time.Time `json:"at"`
}
