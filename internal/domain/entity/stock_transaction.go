package entity

import "time"

// Tipos de transacción de stock. El signo lo determina el tipo, no el caller:
// las cantidades siempre se reciben como magnitud positiva.
const (
	KindPurchase     = "purchase"      // entrada por compra
	KindSale         = "sale"          // salida por venta
	KindReturn       = "return"        // devolución de cliente (entrada)
	KindAdjustment   = "adjustment"    // ajuste por reconciliación
	KindTransferIn   = "transfer_in"   // entrada por traslado
	KindTransferOut  = "transfer_out"  // salida por traslado
	KindWastage      = "wastage"       // merma (rotura, vencimiento)
	KindOpeningStock = "opening_stock" // saldo inicial
)

// Tipos de referencia para ligar la transacción a su documento origen.
const (
	RefTypeOrder      = "order"
	RefTypeTransfer   = "transfer"
	RefTypeAdjustment = "adjustment"
	RefTypeManual     = "manual"
)

// increasingKinds tipos que suman stock; el resto de los válidos resta.
var increasingKinds = map[string]bool{
	KindPurchase:     true,
	KindReturn:       true,
	KindTransferIn:   true,
	KindOpeningStock: true,
}

var validKinds = map[string]bool{
	KindPurchase:     true,
	KindSale:         true,
	KindReturn:       true,
	KindAdjustment:   true,
	KindTransferIn:   true,
	KindTransferOut:  true,
	KindWastage:      true,
	KindOpeningStock: true,
}

// IsValidTransactionKind indica si kind pertenece al catálogo de tipos.
func IsValidTransactionKind(kind string) bool {
	return validKinds[kind]
}

// KindIncreases indica si el tipo suma stock (purchase, return, transfer_in,
// opening_stock). Los demás tipos válidos restan.
func KindIncreases(kind string) bool {
	return increasingKinds[kind]
}

// SignedQuantity devuelve la magnitud con el signo implicado por el tipo.
func SignedQuantity(kind string, quantity int64) int64 {
	if KindIncreases(kind) {
		return quantity
	}
	return -quantity
}

// StockTransaction asiento inmutable del libro de stock: registra un único
// cambio de cantidad. Una vez creado nunca se modifica (append-only).
type StockTransaction struct {
	ID            string
	TenantID      string
	ShopID        string
	ProductID     string
	VariantID     string // vacío = producto base
	Kind          string
	Quantity      int64  // magnitud, siempre >= 0; el signo lo implica Kind
	ReferenceID   string // documento origen (orden, traslado, ajuste)
	ReferenceType string
	PerformedBy   string
	Notes         string
	CreatedAt     time.Time
}

// Signed devuelve la cantidad con signo según el tipo de la transacción.
func (t *StockTransaction) Signed() int64 {
	return SignedQuantity(t.Kind, t.Quantity)
}
