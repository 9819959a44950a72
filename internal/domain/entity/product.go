package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías habituales del catálogo de licores.
const (
	CategoryWhisky      = "whisky"
	CategoryRon         = "ron"
	CategoryVodka       = "vodka"
	CategoryCerveza     = "cerveza"
	CategoryVino        = "vino"
	CategoryAguardiente = "aguardiente"
	CategoryOtros       = "otros"
)

// Product representa un producto del catálogo de la licorería.
// Price es precio de venta; Cost costo promedio (ambos en moneda local).
// El stock no vive aquí: se maneja por tienda en StockLevel.
type Product struct {
	ID          string
	TenantID    string
	SKU         string // código único por tenant
	Name        string
	Brand       string
	Category    string
	Description string
	VolumeML    int // mililitros de la presentación base
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Status      EntityStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductVariant sub-SKU opcional de un producto (otra presentación, por
// ejemplo media botella o garrafa). Un StockLevel con VariantID vacío aplica
// al producto base.
type ProductVariant struct {
	ID        string
	ProductID string
	Name      string
	SKU       string
	VolumeML  int
	Price     decimal.Decimal
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
