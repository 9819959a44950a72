package repository

import (
	"context"
	"time"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// StockTransactionRepository define el puerto de persistencia del libro de
// transacciones de stock (append-only: no hay Update ni Delete).
type StockTransactionRepository interface {
	Create(ctx context.Context, txn *entity.StockTransaction) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.StockTransaction, error)
	ListByShop(ctx context.Context, tenantID, shopID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	ListByProduct(ctx context.Context, tenantID, shopID, productID, variantID string, limit, offset int) ([]*entity.StockTransaction, error)
	// SumSigned devuelve la suma de cantidades con signo para una combinación
	// (tenant, tienda, producto, variante), excluyendo el tipo adjustment: los
	// asientos de ajuste guardan magnitud sin dirección, así que su aporte se
	// toma de las diferencias firmadas de los renglones de ajuste.
	SumSigned(ctx context.Context, tenantID, shopID, productID, variantID string) (int64, error)
}
