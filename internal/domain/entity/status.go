package entity

// EntityStatus ciclo de vida explícito de las entidades: nunca se borra físicamente,
// solo se desactiva (el histórico sigue siendo consultable).
type EntityStatus string

const (
	StatusActive      EntityStatus = "active"
	StatusDeactivated EntityStatus = "deactivated"
)

// IsActive indica si la entidad está operativa.
func (s EntityStatus) IsActive() bool {
	return s == StatusActive || s == ""
}
