package stock

import (
	"context"

	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// TransferNoteLine renglón resuelto (con nombres de producto) para la remisión.
type TransferNoteLine struct {
	ProductName string
	SKU         string
	VariantName string
	Requested   int64
	Received    int64
}

// TransferNoteData datos completos para generar la remisión de un traslado.
type TransferNoteData struct {
	Transfer        *entity.StockTransfer
	SourceShop      *entity.Shop
	DestinationShop *entity.Shop
	Lines           []TransferNoteLine
}

// TransferNoteGenerator genera la remisión (documento de entrega) de un
// traslado. La implementación vive en infrastructure.
type TransferNoteGenerator interface {
	GenerateTransferNote(ctx context.Context, data *TransferNoteData) ([]byte, error)
}

// DeliveryNote arma los datos de la remisión de un traslado y genera el PDF.
func (uc *TransferUseCase) DeliveryNote(ctx context.Context, tenantID, transferID string) ([]byte, error) {
	if uc.noteGen == nil {
		return nil, domain.ErrNotFound
	}
	transfer, err := uc.GetByID(ctx, tenantID, transferID)
	if err != nil {
		return nil, err
	}
	source, err := uc.shopRepo.GetByID(transfer.SourceShopID)
	if err != nil {
		return nil, err
	}
	destination, err := uc.shopRepo.GetByID(transfer.DestinationShopID)
	if err != nil {
		return nil, err
	}
	if source == nil || destination == nil {
		return nil, domain.ErrNotFound
	}

	lines := make([]TransferNoteLine, 0, len(transfer.Items))
	for _, item := range transfer.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		line := TransferNoteLine{
			ProductName: product.Name,
			SKU:         product.SKU,
			Requested:   item.RequestedQuantity,
			Received:    item.ReceivedQuantity,
		}
		if item.VariantID != "" {
			variant, err := uc.productRepo.GetVariantByID(item.VariantID)
			if err != nil {
				return nil, err
			}
			if variant != nil {
				line.VariantName = variant.Name
				line.SKU = variant.SKU
			}
		}
		lines = append(lines, line)
	}

	return uc.noteGen.GenerateTransferNote(ctx, &TransferNoteData{
		Transfer:        transfer,
		SourceShop:      source,
		DestinationShop: destination,
		Lines:           lines,
	})
}
