package repository

import (
	"context"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// StockAdjustmentRepository define el puerto de persistencia para ajustes de
// inventario (cabecera + renglones, ambos inmutables una vez creados).
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.StockAdjustment) error
	// GetByID devuelve el ajuste con sus renglones, o nil si no existe en el tenant.
	GetByID(ctx context.Context, tenantID, id string) (*entity.StockAdjustment, error)
	ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockAdjustment, error)
	// SumDifferences suma las diferencias firmadas de los renglones de ajuste
	// para una combinación (tenant, tienda, producto, variante). Junto con la
	// suma firmada del libro reconstruye la cantidad del nivel.
	SumDifferences(ctx context.Context, tenantID, shopID, productID, variantID string) (int64, error)
}
