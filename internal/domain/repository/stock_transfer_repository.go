package repository

import (
	"context"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// StockTransferRepository define el puerto de persistencia para traslados
// (cabecera + renglones).
type StockTransferRepository interface {
	// Create persiste cabecera y renglones.
	Create(ctx context.Context, transfer *entity.StockTransfer) error
	// GetByID devuelve el traslado con sus renglones, o nil si no existe en el tenant.
	GetByID(ctx context.Context, tenantID, id string) (*entity.StockTransfer, error)
	// UpdateStatus fija el nuevo estado de la cabecera.
	UpdateStatus(ctx context.Context, transfer *entity.StockTransfer) error
	// UpdateItem actualiza cantidad recibida y flag de recepción de un renglón.
	UpdateItem(ctx context.Context, item *entity.StockTransferItem) error
	ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockTransfer, error)
}
