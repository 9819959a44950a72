package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
	domstock "github.com/jhoicas/licoreria-api/internal/domain/stock"
)

// LedgerUseCase registra transacciones de stock de forma transaccional:
// bloqueo de fila (SELECT FOR UPDATE), delta firmado según el tipo, recálculo
// de flags y asiento en el libro, todo en la misma unidad atómica.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	publisher   EventPublisher
}

// NewLedgerUseCase construye el caso de uso del libro de stock.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	publisher EventPublisher,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		publisher:   publisher,
	}
}

// RecordInput entrada para registrar una transacción de stock.
// Quantity siempre es magnitud positiva; el signo lo deriva Kind.
// UnitCost solo aplica a entradas por compra (recalcula costo promedio).
type RecordInput struct {
	TenantID      string
	ShopID        string
	ProductID     string
	VariantID     string
	Kind          string
	Quantity      int64
	ReferenceID   string
	ReferenceType string
	PerformedBy   string
	Notes         string
	UnitCost      *decimal.Decimal
}

// RecordTransaction valida la entrada, abre una transacción y registra el
// movimiento: nivel (creado perezosamente si no existe) y asiento del libro
// se confirman juntos o no se confirma nada. Con stock insuficiente devuelve
// InsufficientStockError sin crear el asiento (todo o nada).
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, in RecordInput) (*entity.StockTransaction, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.TenantID != in.TenantID {
		return nil, domain.ErrForbidden
	}
	if in.VariantID != "" {
		variant, err := uc.productRepo.GetVariantByID(in.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil || variant.ProductID != in.ProductID {
			return nil, domain.ErrNotFound
		}
	}
	shop, err := uc.shopRepo.GetByID(in.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	if shop.TenantID != in.TenantID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var (
		level *entity.StockLevel
		txn   *entity.StockTransaction
	)
	err = uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		level, txn, err = uc.RecordInTx(ctx, levelRepo, txnRepo, in, now)
		if err != nil {
			return err
		}

		// Entrada por compra: recalcular costo promedio ponderado del producto.
		// La cantidad previa se deriva del nivel ya bloqueado, nunca de una
		// lectura anterior al FOR UPDATE que podría venir desactualizada.
		if in.Kind == entity.KindPurchase && in.UnitCost != nil {
			prevQty := level.CurrentQuantity - entity.SignedQuantity(in.Kind, in.Quantity)
			newCost := domstock.AverageCost(prevQty, product.Cost, in.Quantity, *in.UnitCost)
			if err := productRepo.UpdateCost(in.ProductID, newCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishMutation(ctx, uc.publisher, level, txn)
	return txn, nil
}

// RecordInTx registra el movimiento usando los repositorios proporcionados
// (misma transacción del caller). Lo usan los flujos de traslado y la
// integración con órdenes de venta para mantener una sola unidad atómica.
func (uc *LedgerUseCase) RecordInTx(
	ctx context.Context,
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	in RecordInput,
	now time.Time,
) (*entity.StockLevel, *entity.StockTransaction, error) {
	// Bloquea la fila del nivel; si no existe se crea en cero (lazy).
	level, err := levelRepo.GetForUpdate(ctx, in.TenantID, in.ShopID, in.ProductID, in.VariantID)
	if err != nil {
		return nil, nil, err
	}
	if level == nil {
		level = entity.NewStockLevel(in.TenantID, in.ShopID, in.ProductID, in.VariantID, now)
	}

	signed := entity.SignedQuantity(in.Kind, in.Quantity)
	if !level.ApplyDelta(signed, now) {
		return nil, nil, &domain.InsufficientStockError{
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			Available: level.CurrentQuantity,
			Requested: in.Quantity,
		}
	}
	if err := levelRepo.Upsert(ctx, level); err != nil {
		return nil, nil, err
	}

	txn := &entity.StockTransaction{
		ID:            uuid.New().String(),
		TenantID:      in.TenantID,
		ShopID:        in.ShopID,
		ProductID:     in.ProductID,
		VariantID:     in.VariantID,
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		PerformedBy:   in.PerformedBy,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if err := txnRepo.Create(ctx, txn); err != nil {
		return nil, nil, err
	}
	return level, txn, nil
}

// RecordSaleForOrder registra la salida por venta de una orden dentro de la
// transacción del caller (integración con el módulo de ventas).
func (uc *LedgerUseCase) RecordSaleForOrder(
	ctx context.Context,
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	tenantID, shopID, productID, variantID string,
	quantity int64,
	orderID, userID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	_, _, err := uc.RecordInTx(ctx, levelRepo, txnRepo, RecordInput{
		TenantID:      tenantID,
		ShopID:        shopID,
		ProductID:     productID,
		VariantID:     variantID,
		Kind:          entity.KindSale,
		Quantity:      quantity,
		ReferenceID:   orderID,
		ReferenceType: entity.RefTypeOrder,
		PerformedBy:   userID,
	}, now)
	return err
}

func (uc *LedgerUseCase) validate(in RecordInput) error {
	if in.TenantID == "" || in.ShopID == "" || in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidTransactionKind(in.Kind) {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Kind == entity.KindPurchase && in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// publishMutation emite los eventos del asiento y del nivel tras el commit.
// Mejor esfuerzo: el publisher registra el fallo, nunca se propaga.
func publishMutation(ctx context.Context, pub EventPublisher, level *entity.StockLevel, txn *entity.StockTransaction) {
	if pub == nil || level == nil || txn == nil {
		return
	}
	key := LevelKey(txn.TenantID, txn.ShopID, txn.ProductID, txn.VariantID)
	_ = pub.Publish(ctx, TopicStockTransactions, key, StockTransactionEvent{
		TransactionID: txn.ID,
		TenantID:      txn.TenantID,
		ShopID:        txn.ShopID,
		ProductID:     txn.ProductID,
		VariantID:     txn.VariantID,
		Kind:          txn.Kind,
		Quantity:      txn.Quantity,
		ReferenceID:   txn.ReferenceID,
		ReferenceType: txn.ReferenceType,
		PerformedBy:   txn.PerformedBy,
		CreatedAt:     txn.CreatedAt,
	})
	_ = pub.Publish(ctx, TopicStockLevels, key, StockLevelEvent{
		Action:           ActionUpdated,
		TenantID:         level.TenantID,
		ShopID:           level.ShopID,
		ProductID:        level.ProductID,
		VariantID:        level.VariantID,
		CurrentQuantity:  level.CurrentQuantity,
		MinimumThreshold: level.MinimumThreshold,
		LowStock:         level.LowStock,
		OutOfStock:       level.OutOfStock,
		UpdatedAt:        level.UpdatedAt,
	})
}
