package entity

import "time"

// Tenant representa una organización cliente (una cadena de licorerías).
// Es la frontera de aislamiento: todo dato se particiona por TenantID.
type Tenant struct {
	ID        string
	Name      string
	TaxID     string // identificación fiscal del negocio
	Address   string
	Phone     string
	Email     string
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
