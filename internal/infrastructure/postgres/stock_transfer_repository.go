package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository sobre PostgreSQL
// (usable con pool o tx). Cabecera en stock_transfers, renglones en
// stock_transfer_items.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create persiste cabecera y renglones.
func (r *StockTransferRepo) Create(ctx context.Context, transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (id, tenant_id, source_shop_id, destination_shop_id, transfer_date,
			status, reference_number, initiated_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.TenantID, transfer.SourceShopID, transfer.DestinationShopID,
		transfer.TransferDate, transfer.Status, transfer.ReferenceNumber,
		transfer.InitiatedBy, transfer.Notes, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	itemQuery := `
		INSERT INTO stock_transfer_items (id, transfer_id, product_id, variant_id, requested_quantity, received_quantity, received)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`
	for _, item := range transfer.Items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.TransferID = transfer.ID
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.TransferID, item.ProductID, item.VariantID,
			item.RequestedQuantity, item.ReceivedQuantity, item.Received,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el traslado con sus renglones, o nil si no existe en el tenant.
func (r *StockTransferRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.StockTransfer, error) {
	query := `
		SELECT id, tenant_id, source_shop_id, destination_shop_id, transfer_date,
			status, reference_number, COALESCE(initiated_by, ''), COALESCE(notes, ''), created_at, updated_at
		FROM stock_transfers WHERE tenant_id = $1 AND id = $2`
	var t entity.StockTransfer
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&t.ID, &t.TenantID, &t.SourceShopID, &t.DestinationShopID, &t.TransferDate,
		&t.Status, &t.ReferenceNumber, &t.InitiatedBy, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	items, err := r.listItems(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

func (r *StockTransferRepo) listItems(ctx context.Context, transferID string) ([]*entity.StockTransferItem, error) {
	query := `
		SELECT id, transfer_id, product_id, COALESCE(variant_id, ''), requested_quantity, received_quantity, received
		FROM stock_transfer_items WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	var items []*entity.StockTransferItem
	for rows.Next() {
		var item entity.StockTransferItem
		if err := rows.Scan(&item.ID, &item.TransferID, &item.ProductID, &item.VariantID,
			&item.RequestedQuantity, &item.ReceivedQuantity, &item.Received); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// UpdateStatus fija el nuevo estado de la cabecera.
func (r *StockTransferRepo) UpdateStatus(ctx context.Context, transfer *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers SET status = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query, transfer.TenantID, transfer.ID, transfer.Status, transfer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update transfer status: traslado %s no encontrado", transfer.ID)
	}
	return nil
}

// UpdateItem actualiza cantidad recibida y flag de recepción de un renglón.
func (r *StockTransferRepo) UpdateItem(ctx context.Context, item *entity.StockTransferItem) error {
	query := `
		UPDATE stock_transfer_items SET received_quantity = $2, received = $3
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, item.ID, item.ReceivedQuantity, item.Received)
	if err != nil {
		return fmt.Errorf("update transfer item: %w", err)
	}
	return nil
}

// ListByShop lista traslados donde la tienda es origen o destino, más reciente primero.
func (r *StockTransferRepo) ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT id, tenant_id, source_shop_id, destination_shop_id, transfer_date,
			status, reference_number, COALESCE(initiated_by, ''), COALESCE(notes, ''), created_at, updated_at
		FROM stock_transfers
		WHERE tenant_id = $1 AND (source_shop_id = $2 OR destination_shop_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		if err := rows.Scan(&t.ID, &t.TenantID, &t.SourceShopID, &t.DestinationShopID, &t.TransferDate,
			&t.Status, &t.ReferenceNumber, &t.InitiatedBy, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		items, err := r.listItems(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}
	return list, nil
}
