package entity

import "time"

// Estados de un traslado entre tiendas.
const (
	TransferPending   = "pending"
	TransferInTransit = "in_transit"
	TransferCompleted = "completed"
	TransferCancelled = "cancelled"
)

// allowedTransitions tabla de transiciones válidas del traslado.
// Cualquier otra combinación se rechaza sin mutar nada.
var allowedTransitions = map[string]map[string]bool{
	TransferPending: {
		TransferInTransit: true,
		TransferCancelled: true,
	},
	TransferInTransit: {
		TransferCompleted: true,
		TransferCancelled: true,
	},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// IsTerminalTransferStatus indica si el estado no admite más transiciones.
func IsTerminalTransferStatus(status string) bool {
	return status == TransferCompleted || status == TransferCancelled
}

// StockTransfer cabecera de un traslado de mercancía de una tienda origen a una
// tienda destino del mismo tenant. Invariante: SourceShopID != DestinationShopID.
type StockTransfer struct {
	ID                string
	TenantID          string
	SourceShopID      string
	DestinationShopID string
	TransferDate      time.Time
	Status            string
	ReferenceNumber   string
	InitiatedBy       string
	Notes             string
	Items             []*StockTransferItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StockTransferItem renglón de un traslado: un producto/variante y su cantidad.
type StockTransferItem struct {
	ID                string
	TransferID        string
	ProductID         string
	VariantID         string // vacío = producto base
	RequestedQuantity int64
	ReceivedQuantity  int64
	Received          bool
}
