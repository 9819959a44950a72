package dto

import "time"

// TransferItemRequest renglón solicitado de un traslado.
type TransferItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateTransferRequest body para POST /api/stock/transfers.
type CreateTransferRequest struct {
	SourceShopID      string                `json:"source_shop_id" validate:"required,uuid"`
	DestinationShopID string                `json:"destination_shop_id" validate:"required,uuid"`
	TransferDate      *time.Time            `json:"transfer_date,omitempty"`
	ReferenceNumber   string                `json:"reference_number,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	Items             []TransferItemRequest `json:"items" validate:"required,min=1"`
}

// TransitionTransferRequest body para cambiar el estado de un traslado.
type TransitionTransferRequest struct {
	Status string `json:"status" validate:"required,oneof=in_transit completed cancelled"`
}

// TransferItemResponse renglón de un traslado.
type TransferItemResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	VariantID         string `json:"variant_id,omitempty"`
	RequestedQuantity int64  `json:"requested_quantity"`
	ReceivedQuantity  int64  `json:"received_quantity"`
	Received          bool   `json:"received"`
}

// TransferResponse traslado con renglones.
type TransferResponse struct {
	ID                string                 `json:"id"`
	SourceShopID      string                 `json:"source_shop_id"`
	DestinationShopID string                 `json:"destination_shop_id"`
	TransferDate      time.Time              `json:"transfer_date"`
	Status            string                 `json:"status"`
	ReferenceNumber   string                 `json:"reference_number"`
	InitiatedBy       string                 `json:"initiated_by,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	Items             []TransferItemResponse `json:"items"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}
