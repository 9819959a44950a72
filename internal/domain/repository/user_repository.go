package repository

import "github.com/jhoicas/licoreria-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmailAndTenant(email, tenantID string) (*entity.User, error)
	Update(user *entity.User) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.User, error)
	// Deactivate marca el usuario como desactivado; nunca hay borrado físico.
	Deactivate(id string) error
}
