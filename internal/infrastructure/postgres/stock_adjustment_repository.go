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

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación de StockAdjustmentRepository sobre
// PostgreSQL (usable con pool o tx). Cabecera en stock_adjustments, renglones
// en stock_adjustment_items; ambos inmutables una vez creados.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador de ajustes. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste cabecera y renglones.
func (r *StockAdjustmentRepo) Create(ctx context.Context, adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, tenant_id, shop_id, adjustment_date, kind,
			reference_number, performed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9)`
	_, err := r.q.Exec(ctx, query,
		adjustment.ID, adjustment.TenantID, adjustment.ShopID, adjustment.AdjustmentDate,
		adjustment.Kind, adjustment.ReferenceNumber, adjustment.PerformedBy,
		adjustment.Notes, adjustment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	itemQuery := `
		INSERT INTO stock_adjustment_items (id, adjustment_id, product_id, variant_id,
			previous_quantity, new_quantity, difference, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''))`
	for _, item := range adjustment.Items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.AdjustmentID = adjustment.ID
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.AdjustmentID, item.ProductID, item.VariantID,
			item.PreviousQuantity, item.NewQuantity, item.Difference, item.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert adjustment item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el ajuste con sus renglones, o nil si no existe en el tenant.
func (r *StockAdjustmentRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.StockAdjustment, error) {
	query := `
		SELECT id, tenant_id, shop_id, adjustment_date, kind, reference_number,
			COALESCE(performed_by, ''), COALESCE(notes, ''), created_at
		FROM stock_adjustments WHERE tenant_id = $1 AND id = $2`
	var a entity.StockAdjustment
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&a.ID, &a.TenantID, &a.ShopID, &a.AdjustmentDate, &a.Kind,
		&a.ReferenceNumber, &a.PerformedBy, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	items, err := r.listItems(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Items = items
	return &a, nil
}

func (r *StockAdjustmentRepo) listItems(ctx context.Context, adjustmentID string) ([]*entity.StockAdjustmentItem, error) {
	query := `
		SELECT id, adjustment_id, product_id, COALESCE(variant_id, ''),
			previous_quantity, new_quantity, difference, COALESCE(notes, '')
		FROM stock_adjustment_items WHERE adjustment_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list adjustment items: %w", err)
	}
	defer rows.Close()
	var items []*entity.StockAdjustmentItem
	for rows.Next() {
		var item entity.StockAdjustmentItem
		if err := rows.Scan(&item.ID, &item.AdjustmentID, &item.ProductID, &item.VariantID,
			&item.PreviousQuantity, &item.NewQuantity, &item.Difference, &item.Notes); err != nil {
			return nil, fmt.Errorf("scan adjustment item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// ListByShop lista ajustes de una tienda, más reciente primero.
func (r *StockAdjustmentRepo) ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, tenant_id, shop_id, adjustment_date, kind, reference_number,
			COALESCE(performed_by, ''), COALESCE(notes, ''), created_at
		FROM stock_adjustments
		WHERE tenant_id = $1 AND shop_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.TenantID, &a.ShopID, &a.AdjustmentDate, &a.Kind,
			&a.ReferenceNumber, &a.PerformedBy, &a.Notes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, a := range list {
		items, err := r.listItems(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		a.Items = items
	}
	return list, nil
}

// SumDifferences suma las diferencias firmadas de los renglones de ajuste para
// una combinación (tenant, tienda, producto, variante).
func (r *StockAdjustmentRepo) SumDifferences(ctx context.Context, tenantID, shopID, productID, variantID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(i.difference), 0)
		FROM stock_adjustment_items i
		JOIN stock_adjustments a ON a.id = i.adjustment_id
		WHERE a.tenant_id = $1 AND a.shop_id = $2 AND i.product_id = $3
		  AND i.variant_id IS NOT DISTINCT FROM NULLIF($4, '')`
	var sum int64
	err := r.q.QueryRow(ctx, query, tenantID, shopID, productID, variantID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum differences: %w", err)
	}
	return sum, nil
}
