package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// TransferUseCase gestiona el ciclo de vida de los traslados entre tiendas:
// creación en pending y transiciones de la máquina de estados, cada una como
// una sola unidad atómica (todos los renglones o ninguno).
type TransferUseCase struct {
	txRunner     TxRunner
	transferRepo repository.StockTransferRepository
	levelRepo    repository.StockLevelRepository
	shopRepo     repository.ShopRepository
	productRepo  repository.ProductRepository
	ledger       *LedgerUseCase
	publisher    EventPublisher
	noteGen      TransferNoteGenerator
}

// NewTransferUseCase construye el caso de uso de traslados. noteGen puede ser
// nil si la generación de remisiones no está habilitada.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.StockTransferRepository,
	levelRepo repository.StockLevelRepository,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	ledger *LedgerUseCase,
	publisher EventPublisher,
	noteGen TransferNoteGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		levelRepo:    levelRepo,
		shopRepo:     shopRepo,
		productRepo:  productRepo,
		ledger:       ledger,
		publisher:    publisher,
		noteGen:      noteGen,
	}
}

// TransferItemInput renglón solicitado en la creación de un traslado.
type TransferItemInput struct {
	ProductID string
	VariantID string
	Quantity  int64
}

// CreateTransferInput entrada para crear un traslado en estado pending.
type CreateTransferInput struct {
	TenantID          string
	SourceShopID      string
	DestinationShopID string
	TransferDate      time.Time
	ReferenceNumber   string
	Notes             string
	InitiatedBy       string
	Items             []TransferItemInput
}

// Create valida tiendas y suficiencia de stock en origen (chequeo de lectura,
// aún no se descuenta nada) y persiste cabecera + renglones en pending.
func (uc *TransferUseCase) Create(ctx context.Context, in CreateTransferInput) (*entity.StockTransfer, error) {
	if in.TenantID == "" || in.SourceShopID == "" || in.DestinationShopID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceShopID == in.DestinationShopID {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	for _, shopID := range []string{in.SourceShopID, in.DestinationShopID} {
		shop, err := uc.shopRepo.GetByID(shopID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, domain.ErrNotFound
		}
		if shop.TenantID != in.TenantID {
			return nil, domain.ErrForbidden
		}
	}

	// Chequeo de suficiencia en origen antes de persistir: falla nombrando el
	// producto concreto sin stock. El descuento real ocurre en pending→in_transit.
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
		if item.VariantID != "" {
			variant, err := uc.productRepo.GetVariantByID(item.VariantID)
			if err != nil {
				return nil, err
			}
			if variant == nil || variant.ProductID != item.ProductID {
				return nil, domain.ErrNotFound
			}
		}
		level, err := uc.levelRepo.Get(ctx, in.TenantID, in.SourceShopID, item.ProductID, item.VariantID)
		if err != nil {
			return nil, err
		}
		available := int64(0)
		if level != nil {
			available = level.CurrentQuantity
		}
		if available < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Available: available,
				Requested: item.Quantity,
			}
		}
	}

	now := time.Now()
	transferDate := in.TransferDate
	if transferDate.IsZero() {
		transferDate = now
	}
	reference := in.ReferenceNumber
	if reference == "" {
		reference = fmt.Sprintf("TR-%d", now.UnixNano())
	}

	transfer := &entity.StockTransfer{
		ID:                uuid.New().String(),
		TenantID:          in.TenantID,
		SourceShopID:      in.SourceShopID,
		DestinationShopID: in.DestinationShopID,
		TransferDate:      transferDate,
		Status:            entity.TransferPending,
		ReferenceNumber:   reference,
		InitiatedBy:       in.InitiatedBy,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, item := range in.Items {
		transfer.Items = append(transfer.Items, &entity.StockTransferItem{
			ID:                uuid.New().String(),
			TransferID:        transfer.ID,
			ProductID:         item.ProductID,
			VariantID:         item.VariantID,
			RequestedQuantity: item.Quantity,
		})
	}

	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.StockTransactionRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		return transferRepo.Create(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	uc.publishTransfer(ctx, transfer, ActionCreated, now)
	return transfer, nil
}

// Transition aplica un cambio de estado de la tabla permitida. Toda la
// transición (todos los renglones) se confirma en una sola transacción; una
// transición inválida se rechaza con InvalidTransitionError sin mutar nada.
func (uc *TransferUseCase) Transition(ctx context.Context, tenantID, transferID, target, performedBy string) (*entity.StockTransfer, error) {
	if tenantID == "" || transferID == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.transferRepo.GetByID(ctx, tenantID, transferID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(existing.Status, target) {
		return nil, &domain.InvalidTransitionError{From: existing.Status, To: target}
	}

	now := time.Now()
	var (
		transfer *entity.StockTransfer
		levels   []*entity.StockLevel
		txns     []*entity.StockTransaction
	)
	err = uc.txRunner.RunTransfer(ctx, func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		// Releer dentro de la tx: otra transición concurrente pudo ganar.
		tr, err := transferRepo.GetByID(ctx, tenantID, transferID)
		if err != nil {
			return err
		}
		if tr == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(tr.Status, target) {
			return &domain.InvalidTransitionError{From: tr.Status, To: target}
		}

		record := func(shopID, kind string, item *entity.StockTransferItem) error {
			level, txn, err := uc.ledger.RecordInTx(ctx, levelRepo, txnRepo, RecordInput{
				TenantID:      tenantID,
				ShopID:        shopID,
				ProductID:     item.ProductID,
				VariantID:     item.VariantID,
				Kind:          kind,
				Quantity:      item.RequestedQuantity,
				ReferenceID:   tr.ID,
				ReferenceType: entity.RefTypeTransfer,
				PerformedBy:   performedBy,
			}, now)
			if err != nil {
				return err
			}
			levels = append(levels, level)
			txns = append(txns, txn)
			return nil
		}

		switch {
		case tr.Status == entity.TransferPending && target == entity.TransferInTransit:
			// Salida en origen por cada renglón.
			for _, item := range tr.Items {
				if err := record(tr.SourceShopID, entity.KindTransferOut, item); err != nil {
					return err
				}
			}
		case tr.Status == entity.TransferInTransit && target == entity.TransferCompleted:
			// Entrada en destino; el nivel destino se crea si no existe.
			for _, item := range tr.Items {
				item.ReceivedQuantity = item.RequestedQuantity
				item.Received = true
				if err := transferRepo.UpdateItem(ctx, item); err != nil {
					return err
				}
				if err := record(tr.DestinationShopID, entity.KindTransferIn, item); err != nil {
					return err
				}
			}
		case tr.Status == entity.TransferInTransit && target == entity.TransferCancelled:
			// Compensación: devolver al origen lo ya descontado.
			for _, item := range tr.Items {
				if err := record(tr.SourceShopID, entity.KindTransferIn, item); err != nil {
					return err
				}
			}
		case tr.Status == entity.TransferPending && target == entity.TransferCancelled:
			// Nada que revertir: aún no se descontó stock.
		}

		tr.Status = target
		tr.UpdatedAt = now
		if err := transferRepo.UpdateStatus(ctx, tr); err != nil {
			return err
		}
		transfer = tr
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishTransfer(ctx, transfer, ActionStatusChanged, now)
	for i := range txns {
		publishMutation(ctx, uc.publisher, levels[i], txns[i])
	}
	return transfer, nil
}

// GetByID devuelve el traslado con renglones dentro del tenant.
func (uc *TransferUseCase) GetByID(ctx context.Context, tenantID, transferID string) (*entity.StockTransfer, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, tenantID, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// ListByShop lista traslados donde la tienda participa como origen o destino.
func (uc *TransferUseCase) ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockTransfer, error) {
	return uc.transferRepo.ListByShop(ctx, tenantID, shopID, limit, offset)
}

func (uc *TransferUseCase) publishTransfer(ctx context.Context, transfer *entity.StockTransfer, action string, at time.Time) {
	if uc.publisher == nil || transfer == nil {
		return
	}
	_ = uc.publisher.Publish(ctx, TopicStockTransfers, transfer.TenantID+":"+transfer.ID, TransferEvent{
		Action:            action,
		TransferID:        transfer.ID,
		TenantID:          transfer.TenantID,
		SourceShopID:      transfer.SourceShopID,
		DestinationShopID: transfer.DestinationShopID,
		Status:            transfer.Status,
		ItemCount:         len(transfer.Items),
		At:                at,
	})
}
