package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	VolumeML    int             `json:"volume_ml" validate:"min=0"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni stock:
// el costo lo recalculan las compras y el stock vive en los niveles).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Brand       *string          `json:"brand"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	VolumeML    *int             `json:"volume_ml"`
	Price       *decimal.Decimal `json:"price"`
}

// CreateVariantRequest entrada para crear una variante (otra presentación).
type CreateVariantRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	SKU      string          `json:"sku" validate:"required,min=1,max=100"`
	VolumeML int             `json:"volume_ml" validate:"min=0"`
	Price    decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	VolumeML    int             `json:"volume_ml"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	VolumeML  int             `json:"volume_ml"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
