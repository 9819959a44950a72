package stock

import (
	"context"
	"time"

	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// LevelUseCase consultas sobre niveles de stock y verificación de consistencia
// libro/nivel.
type LevelUseCase struct {
	txRunner       TxRunner
	levelRepo      repository.StockLevelRepository
	txnRepo        repository.StockTransactionRepository
	adjustmentRepo repository.StockAdjustmentRepository
}

// NewLevelUseCase construye el caso de uso de niveles.
func NewLevelUseCase(
	txRunner TxRunner,
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) *LevelUseCase {
	return &LevelUseCase{
		txRunner:       txRunner,
		levelRepo:      levelRepo,
		txnRepo:        txnRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// Get devuelve el nivel de una combinación, o ErrNotFound si nunca hubo movimiento.
func (uc *LevelUseCase) Get(ctx context.Context, tenantID, shopID, productID, variantID string) (*entity.StockLevel, error) {
	level, err := uc.levelRepo.Get(ctx, tenantID, shopID, productID, variantID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrNotFound
	}
	return level, nil
}

// ListByShop lista los niveles de una tienda con paginación.
func (uc *LevelUseCase) ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockLevel, error) {
	return uc.levelRepo.ListByShop(ctx, tenantID, shopID, limit, offset)
}

// LowStockReport devuelve los niveles bajo su umbral mínimo en la tienda,
// mayor déficit primero.
func (uc *LevelUseCase) LowStockReport(ctx context.Context, tenantID, shopID string) ([]repository.LowStockItem, error) {
	return uc.levelRepo.ListBelowMinimum(ctx, tenantID, shopID)
}

// UpdateThresholds fija los umbrales mínimo/máximo de un nivel y recalcula los
// flags derivados en la misma escritura (ningún camino se salta el recálculo).
func (uc *LevelUseCase) UpdateThresholds(ctx context.Context, tenantID, shopID, productID, variantID string, minThreshold, maxThreshold int64) (*entity.StockLevel, error) {
	if minThreshold < 0 || maxThreshold < minThreshold {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.StockLevel
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		_ repository.StockTransactionRepository,
		_ repository.ProductRepository,
	) error {
		level, err := levelRepo.GetForUpdate(ctx, tenantID, shopID, productID, variantID)
		if err != nil {
			return err
		}
		if level == nil {
			return domain.ErrNotFound
		}
		level.MinimumThreshold = minThreshold
		level.MaximumThreshold = maxThreshold
		level.UpdatedAt = time.Now()
		level.RefreshFlags()
		if err := levelRepo.Upsert(ctx, level); err != nil {
			return err
		}
		updated = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ConsistencyReport resultado del contraste libro vs nivel para una combinación.
type ConsistencyReport struct {
	TenantID        string `json:"tenant_id"`
	ShopID          string `json:"shop_id"`
	ProductID       string `json:"product_id"`
	VariantID       string `json:"variant_id,omitempty"`
	LevelQuantity   int64  `json:"level_quantity"`
	LedgerBalance   int64  `json:"ledger_balance"`
	AdjustmentDelta int64  `json:"adjustment_delta"`
	Consistent      bool   `json:"consistent"`
}

// CheckConsistency contrasta la cantidad del nivel contra la suma firmada del
// libro más las diferencias de ajuste. Invariante del subsistema: deben coincidir.
func (uc *LevelUseCase) CheckConsistency(ctx context.Context, tenantID, shopID, productID, variantID string) (*ConsistencyReport, error) {
	level, err := uc.levelRepo.Get(ctx, tenantID, shopID, productID, variantID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrNotFound
	}
	ledger, err := uc.txnRepo.SumSigned(ctx, tenantID, shopID, productID, variantID)
	if err != nil {
		return nil, err
	}
	adjustments, err := uc.adjustmentRepo.SumDifferences(ctx, tenantID, shopID, productID, variantID)
	if err != nil {
		return nil, err
	}
	balance := ledger + adjustments
	return &ConsistencyReport{
		TenantID:        tenantID,
		ShopID:          shopID,
		ProductID:       productID,
		VariantID:       variantID,
		LevelQuantity:   level.CurrentQuantity,
		LedgerBalance:   balance,
		AdjustmentDelta: adjustments,
		Consistent:      balance == level.CurrentQuantity,
	}, nil
}

// ListTransactions lista el libro de una combinación producto/variante.
func (uc *LevelUseCase) ListTransactions(ctx context.Context, tenantID, shopID, productID, variantID string, limit, offset int) ([]*entity.StockTransaction, error) {
	return uc.txnRepo.ListByProduct(ctx, tenantID, shopID, productID, variantID, limit, offset)
}

// ListShopTransactions lista el libro completo de una tienda en un rango de fechas.
func (uc *LevelUseCase) ListShopTransactions(ctx context.Context, tenantID, shopID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	return uc.txnRepo.ListByShop(ctx, tenantID, shopID, from, to, limit, offset)
}
