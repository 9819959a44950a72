package entity

import "time"

// Umbrales por defecto al crear un nivel de stock de forma perezosa
// (primer movimiento sobre una combinación tienda+producto+variante).
const (
	DefaultMinimumThreshold int64 = 10
	DefaultMaximumThreshold int64 = 100
)

// StockLevel representa la existencia actual de un producto (opcionalmente una
// variante) en una tienda. Única por (tenant, tienda, producto, variante).
// LowStock y OutOfStock son derivados: se recalculan en cada escritura.
type StockLevel struct {
	TenantID         string
	ShopID           string
	ProductID        string
	VariantID        string // vacío = producto base
	CurrentQuantity  int64
	MinimumThreshold int64
	MaximumThreshold int64
	LowStock         bool
	OutOfStock       bool
	Status           EntityStatus
	UpdatedAt        time.Time
}

// NewStockLevel crea un nivel en cero con los umbrales por defecto.
func NewStockLevel(tenantID, shopID, productID, variantID string, now time.Time) *StockLevel {
	l := &StockLevel{
		TenantID:         tenantID,
		ShopID:           shopID,
		ProductID:        productID,
		VariantID:        variantID,
		CurrentQuantity:  0,
		MinimumThreshold: DefaultMinimumThreshold,
		MaximumThreshold: DefaultMaximumThreshold,
		Status:           StatusActive,
		UpdatedAt:        now,
	}
	l.RefreshFlags()
	return l
}

// ApplyDelta suma signedQuantity a la cantidad actual. Si el resultado quedaría
// negativo no modifica nada y devuelve false. Recalcula los flags derivados.
func (l *StockLevel) ApplyDelta(signedQuantity int64, now time.Time) bool {
	next := l.CurrentQuantity + signedQuantity
	if next < 0 {
		return false
	}
	l.CurrentQuantity = next
	l.UpdatedAt = now
	l.RefreshFlags()
	return true
}

// SetQuantity fija la cantidad absoluta (solo lo usa el flujo de ajuste,
// que es el mecanismo de reconciliación). Recalcula los flags derivados.
func (l *StockLevel) SetQuantity(quantity int64, now time.Time) {
	if quantity < 0 {
		quantity = 0
	}
	l.CurrentQuantity = quantity
	l.UpdatedAt = now
	l.RefreshFlags()
}

// RefreshFlags recalcula OutOfStock y LowStock a partir de la cantidad y el
// umbral mínimo. Invariante: out_of_stock == (qty == 0) y
// low_stock == (0 < qty < mínimo). Obligatorio tras cada escritura.
func (l *StockLevel) RefreshFlags() {
	l.OutOfStock = l.CurrentQuantity == 0
	l.LowStock = l.CurrentQuantity > 0 && l.CurrentQuantity < l.MinimumThreshold
}
