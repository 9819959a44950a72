package dto

import "time"

// CreateShopRequest entrada para crear una tienda.
type CreateShopRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateShopRequest entrada para actualizar una tienda.
type UpdateShopRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// ShopResponse salida de una tienda.
type ShopResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShopListResponse lista paginada de tiendas.
type ShopListResponse struct {
	Items []ShopResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
