package entity

import "time"

// Tipos de ajuste de inventario (motivo de la reconciliación).
const (
	AdjustmentPhysicalCount = "physical_count"
	AdjustmentDamaged       = "damaged"
	AdjustmentExpired       = "expired"
	AdjustmentLost          = "lost"
	AdjustmentFound         = "found"
	AdjustmentOther         = "other"
)

var validAdjustmentKinds = map[string]bool{
	AdjustmentPhysicalCount: true,
	AdjustmentDamaged:       true,
	AdjustmentExpired:       true,
	AdjustmentLost:          true,
	AdjustmentFound:         true,
	AdjustmentOther:         true,
}

// IsValidAdjustmentKind indica si kind pertenece al catálogo de motivos.
func IsValidAdjustmentKind(kind string) bool {
	return validAdjustmentKinds[kind]
}

// StockAdjustment cabecera de una reconciliación de inventario (conteo físico,
// daño, pérdida, hallazgo). Fija cantidades absolutas y registra el delta implícito.
type StockAdjustment struct {
	ID              string
	TenantID        string
	ShopID          string
	AdjustmentDate  time.Time
	Kind            string
	ReferenceNumber string
	PerformedBy     string
	Notes           string
	Items           []*StockAdjustmentItem
	CreatedAt       time.Time
}

// StockAdjustmentItem renglón de un ajuste. Difference siempre se recalcula
// como NewQuantity - PreviousQuantity; nunca se acepta del caller.
type StockAdjustmentItem struct {
	ID               string
	AdjustmentID     string
	ProductID        string
	VariantID        string // vacío = producto base
	PreviousQuantity int64
	NewQuantity      int64
	Difference       int64 // firmado: nuevo - anterior
	Notes            string
}

// RecomputeDifference fija Difference a partir de las cantidades capturadas.
func (i *StockAdjustmentItem) RecomputeDifference() {
	i.Difference = i.NewQuantity - i.PreviousQuantity
}
