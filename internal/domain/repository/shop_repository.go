package repository

import "github.com/jhoicas/licoreria-api/internal/domain/entity"

// ShopRepository define el puerto de persistencia para Shop (DIP).
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id string) (*entity.Shop, error)
	Update(shop *entity.Shop) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Shop, error)
	// Deactivate marca la tienda como desactivada; el histórico sigue consultable.
	Deactivate(id string) error
}
