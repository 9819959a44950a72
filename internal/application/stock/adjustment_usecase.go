package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// AdjustmentUseCase registra reconciliaciones de inventario: fija una cantidad
// absoluta por renglón y deja en el libro el delta implícito. Es el único flujo
// autorizado a fijar valores absolutos en vez de aplicar deltas; aun así pasa
// por el recálculo de flags del nivel.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.StockAdjustmentRepository
	shopRepo       repository.ShopRepository
	productRepo    repository.ProductRepository
	publisher      EventPublisher
}

// NewAdjustmentUseCase construye el caso de uso de ajustes.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.StockAdjustmentRepository,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	publisher EventPublisher,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		shopRepo:       shopRepo,
		productRepo:    productRepo,
		publisher:      publisher,
	}
}

// AdjustmentItemInput renglón de un ajuste: cantidad absoluta objetivo.
type AdjustmentItemInput struct {
	ProductID   string
	VariantID   string
	NewQuantity int64
	Notes       string
}

// CreateAdjustmentInput entrada para crear un ajuste.
type CreateAdjustmentInput struct {
	TenantID        string
	ShopID          string
	Kind            string
	AdjustmentDate  time.Time
	ReferenceNumber string
	PerformedBy     string
	Notes           string
	Items           []AdjustmentItemInput
}

// Create ejecuta el ajuste completo en una transacción: por renglón captura la
// cantidad previa, recalcula la diferencia (nunca la acepta del caller), asienta
// una transacción de tipo adjustment con magnitud |diferencia| y fija el nivel
// en la cantidad nueva. Subidas y bajadas son ambas legales: esto es el
// mecanismo de reconciliación, no de consumo. Diferencia cero también se
// registra (el conteo que confirma el libro sigue siendo auditable).
func (uc *AdjustmentUseCase) Create(ctx context.Context, in CreateAdjustmentInput) (*entity.StockAdjustment, error) {
	if in.TenantID == "" || in.ShopID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidAdjustmentKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.NewQuantity < 0 {
			return nil, domain.ErrInvalidInput
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
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.TenantID != in.TenantID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	adjustmentDate := in.AdjustmentDate
	if adjustmentDate.IsZero() {
		adjustmentDate = now
	}

	adjustment := &entity.StockAdjustment{
		ID:              uuid.New().String(),
		TenantID:        in.TenantID,
		ShopID:          in.ShopID,
		AdjustmentDate:  adjustmentDate,
		Kind:            in.Kind,
		ReferenceNumber: in.ReferenceNumber,
		PerformedBy:     in.PerformedBy,
		Notes:           in.Notes,
		CreatedAt:       now,
	}

	var (
		levels []*entity.StockLevel
		txns   []*entity.StockTransaction
	)
	err = uc.txRunner.RunAdjustment(ctx, func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		for _, itemIn := range in.Items {
			level, err := levelRepo.GetForUpdate(ctx, in.TenantID, in.ShopID, itemIn.ProductID, itemIn.VariantID)
			if err != nil {
				return err
			}
			if level == nil {
				level = entity.NewStockLevel(in.TenantID, in.ShopID, itemIn.ProductID, itemIn.VariantID, now)
			}

			item := &entity.StockAdjustmentItem{
				ID:               uuid.New().String(),
				AdjustmentID:     adjustment.ID,
				ProductID:        itemIn.ProductID,
				VariantID:        itemIn.VariantID,
				PreviousQuantity: level.CurrentQuantity,
				NewQuantity:      itemIn.NewQuantity,
				Notes:            itemIn.Notes,
			}
			item.RecomputeDifference()
			adjustment.Items = append(adjustment.Items, item)

			// Valor absoluto, pasando por el recálculo de flags del nivel.
			level.SetQuantity(itemIn.NewQuantity, now)
			if err := levelRepo.Upsert(ctx, level); err != nil {
				return err
			}

			magnitude := item.Difference
			if magnitude < 0 {
				magnitude = -magnitude
			}
			txn := &entity.StockTransaction{
				ID:            uuid.New().String(),
				TenantID:      in.TenantID,
				ShopID:        in.ShopID,
				ProductID:     itemIn.ProductID,
				VariantID:     itemIn.VariantID,
				Kind:          entity.KindAdjustment,
				Quantity:      magnitude,
				ReferenceID:   adjustment.ID,
				ReferenceType: entity.RefTypeAdjustment,
				PerformedBy:   in.PerformedBy,
				Notes:         itemIn.Notes,
				CreatedAt:     now,
			}
			if err := txnRepo.Create(ctx, txn); err != nil {
				return err
			}
			levels = append(levels, level)
			txns = append(txns, txn)
		}
		return adjustmentRepo.Create(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	uc.publishAdjustment(ctx, adjustment, now)
	for i := range txns {
		publishMutation(ctx, uc.publisher, levels[i], txns[i])
	}
	return adjustment, nil
}

// GetByID devuelve el ajuste con renglones dentro del tenant.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, tenantID, adjustmentID string) (*entity.StockAdjustment, error) {
	adjustment, err := uc.adjustmentRepo.GetByID(ctx, tenantID, adjustmentID)
	if err != nil {
		return nil, err
	}
	if adjustment == nil {
		return nil, domain.ErrNotFound
	}
	return adjustment, nil
}

// ListByShop lista los ajustes registrados en una tienda.
func (uc *AdjustmentUseCase) ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	return uc.adjustmentRepo.ListByShop(ctx, tenantID, shopID, limit, offset)
}

func (uc *AdjustmentUseCase) publishAdjustment(ctx context.Context, adjustment *entity.StockAdjustment, at time.Time) {
	if uc.publisher == nil || adjustment == nil {
		return
	}
	_ = uc.publisher.Publish(ctx, TopicStockAdjustments, adjustment.TenantID+":"+adjustment.ID, AdjustmentEvent{
		Action:       ActionCreated,
		AdjustmentID: adjustment.ID,
		TenantID:     adjustment.TenantID,
		ShopID:       adjustment.ShopID,
		Kind:         adjustment.Kind,
		ItemCount:    len(adjustment.Items),
		At:           at,
	})
}
