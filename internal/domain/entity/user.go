package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"   // administra el tenant completo
	RoleManager = "manager" // administra una tienda
	RoleCashier = "cashier" // registra ventas en una tienda
)

// User representa un usuario del sistema (pertenece a un Tenant y,
// salvo el admin, a una tienda concreta).
type User struct {
	ID           string
	TenantID     string
	ShopID       string // vacío para admins de tenant
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, cashier
	Status       EntityStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
