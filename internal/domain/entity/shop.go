package entity

import "time"

// Shop representa una tienda (punto de venta) de un tenant.
// El stock se controla por tienda, nunca de forma global.
type Shop struct {
	ID        string
	TenantID  string
	Name      string
	Address   string
	Phone     string
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
