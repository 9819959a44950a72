package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y sus variantes (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByTenantAndSKU(tenantID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(productID string, cost decimal.Decimal) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
	// Deactivate marca el producto como desactivado; nunca hay borrado físico.
	Deactivate(id string) error

	CreateVariant(variant *entity.ProductVariant) error
	GetVariantByID(id string) (*entity.ProductVariant, error)
	ListVariants(productID string) ([]*entity.ProductVariant, error)
}
