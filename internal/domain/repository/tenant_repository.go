package repository

import "github.com/jhoicas/licoreria-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// La implementación vive en infrastructure.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
	List(limit, offset int) ([]*entity.Tenant, error)
	// Deactivate marca el tenant como desactivado; nunca hay borrado físico.
	Deactivate(id string) error
}
