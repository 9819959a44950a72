package dto

import "time"

// AdjustmentItemRequest renglón de un ajuste: cantidad absoluta objetivo.
// La diferencia nunca se acepta del caller; se recalcula siempre.
type AdjustmentItemRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	VariantID   string `json:"variant_id,omitempty"`
	NewQuantity int64  `json:"new_quantity" validate:"min=0"`
	Notes       string `json:"notes,omitempty"`
}

// CreateAdjustmentRequest body para POST /api/stock/adjustments.
type CreateAdjustmentRequest struct {
	ShopID          string                  `json:"shop_id" validate:"required,uuid"`
	Kind            string                  `json:"kind" validate:"required,oneof=physical_count damaged expired lost found other"`
	AdjustmentDate  *time.Time              `json:"adjustment_date,omitempty"`
	ReferenceNumber string                  `json:"reference_number,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	Items           []AdjustmentItemRequest `json:"items" validate:"required,min=1"`
}

// AdjustmentItemResponse renglón de un ajuste con la diferencia calculada.
type AdjustmentItemResponse struct {
	ID               string `json:"id"`
	ProductID        string `json:"product_id"`
	VariantID        string `json:"variant_id,omitempty"`
	PreviousQuantity int64  `json:"previous_quantity"`
	NewQuantity      int64  `json:"new_quantity"`
	Difference       int64  `json:"difference"`
	Notes            string `json:"notes,omitempty"`
}

// AdjustmentResponse ajuste con renglones.
type AdjustmentResponse struct {
	ID              string                   `json:"id"`
	ShopID          string                   `json:"shop_id"`
	AdjustmentDate  time.Time                `json:"adjustment_date"`
	Kind            string                   `json:"kind"`
	ReferenceNumber string                   `json:"reference_number,omitempty"`
	PerformedBy     string                   `json:"performed_by,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
	Items           []AdjustmentItemResponse `json:"items"`
	CreatedAt       time.Time                `json:"created_at"`
}
