package repository

import (
	"context"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// LowStockItem resultado crudo del repositorio para un nivel bajo mínimo.
type LowStockItem struct {
	ProductID        string
	VariantID        string
	SKU              string
	ProductName      string
	CurrentQuantity  int64
	MinimumThreshold int64
}

// StockLevelRepository define el puerto para consultar/actualizar niveles de
// stock por (tenant, tienda, producto, variante). Usado dentro de transacciones
// para garantizar consistencia.
type StockLevelRepository interface {
	// Get devuelve el nivel o nil si no existe fila para la combinación.
	Get(ctx context.Context, tenantID, shopID, productID, variantID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Devuelve nil si no existe.
	GetForUpdate(ctx context.Context, tenantID, shopID, productID, variantID string) (*entity.StockLevel, error)
	// Upsert inserta o actualiza el nivel completo (cantidad, umbrales y flags derivados).
	Upsert(ctx context.Context, level *entity.StockLevel) error
	ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockLevel, error)
	// ListBelowMinimum devuelve los niveles de la tienda con cantidad bajo su
	// umbral mínimo, ordenados por mayor déficit primero.
	ListBelowMinimum(ctx context.Context, tenantID, shopID string) ([]LowStockItem, error)
	// Deactivate marca el nivel como desactivado (nunca se borra físicamente).
	Deactivate(ctx context.Context, tenantID, shopID, productID, variantID string) error
}
