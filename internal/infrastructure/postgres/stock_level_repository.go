package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx). variant_id NULL en BD equivale a "" en dominio:
// el nivel del producto base.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de niveles. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `tenant_id, shop_id, product_id, COALESCE(variant_id, ''), current_quantity,
		minimum_threshold, maximum_threshold, low_stock, out_of_stock, status, updated_at`

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var l entity.StockLevel
	err := row.Scan(
		&l.TenantID, &l.ShopID, &l.ProductID, &l.VariantID, &l.CurrentQuantity,
		&l.MinimumThreshold, &l.MaximumThreshold, &l.LowStock, &l.OutOfStock,
		&l.Status, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Get devuelve el nivel o nil si no existe fila para la combinación.
func (r *StockLevelRepo) Get(ctx context.Context, tenantID, shopID, productID, variantID string) (*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM stock_levels
		WHERE tenant_id = $1 AND shop_id = $2 AND product_id = $3
		  AND variant_id IS NOT DISTINCT FROM NULLIF($4, '')`
	l, err := scanStockLevel(r.q.QueryRow(ctx, query, tenantID, shopID, productID, variantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return l, nil
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE). Devuelve nil si no existe.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, tenantID, shopID, productID, variantID string) (*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM stock_levels
		WHERE tenant_id = $1 AND shop_id = $2 AND product_id = $3
		  AND variant_id IS NOT DISTINCT FROM NULLIF($4, '')
		FOR UPDATE`
	l, err := scanStockLevel(r.q.QueryRow(ctx, query, tenantID, shopID, productID, variantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return l, nil
}

// Upsert inserta o actualiza el nivel completo (cantidad, umbrales y flags derivados).
// El índice único sobre (tenant_id, shop_id, product_id, variant_id) debe declararse
// UNIQUE NULLS NOT DISTINCT (PostgreSQL 15+) para que las filas del producto base,
// con variant_id NULL, entren en conflicto en vez de duplicarse.
func (r *StockLevelRepo) Upsert(ctx context.Context, level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (tenant_id, shop_id, product_id, variant_id, current_quantity,
			minimum_threshold, maximum_threshold, low_stock, out_of_stock, status, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tenant_id, shop_id, product_id, variant_id)
		DO UPDATE SET current_quantity = EXCLUDED.current_quantity,
			minimum_threshold = EXCLUDED.minimum_threshold,
			maximum_threshold = EXCLUDED.maximum_threshold,
			low_stock = EXCLUDED.low_stock,
			out_of_stock = EXCLUDED.out_of_stock,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		level.TenantID, level.ShopID, level.ProductID, level.VariantID,
		level.CurrentQuantity, level.MinimumThreshold, level.MaximumThreshold,
		level.LowStock, level.OutOfStock, level.Status, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByShop lista los niveles de una tienda con paginación.
func (r *StockLevelRepo) ListByShop(ctx context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM stock_levels
		WHERE tenant_id = $1 AND shop_id = $2
		ORDER BY product_id, variant_id NULLS FIRST
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		l, err := scanStockLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ListBelowMinimum devuelve los niveles activos de la tienda con cantidad bajo
// su umbral mínimo, ordenados por mayor déficit primero.
func (r *StockLevelRepo) ListBelowMinimum(ctx context.Context, tenantID, shopID string) ([]repository.LowStockItem, error) {
	query := `
		SELECT l.product_id, COALESCE(l.variant_id, ''), p.sku, p.name,
			l.current_quantity, l.minimum_threshold
		FROM stock_levels l
		JOIN products p ON p.id = l.product_id
		WHERE l.tenant_id = $1 AND l.shop_id = $2
		  AND l.status = 'active'
		  AND l.current_quantity < l.minimum_threshold
		ORDER BY (l.minimum_threshold - l.current_quantity) DESC`
	rows, err := r.q.Query(ctx, query, tenantID, shopID)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockItem
	for rows.Next() {
		var item repository.LowStockItem
		if err := rows.Scan(&item.ProductID, &item.VariantID, &item.SKU, &item.ProductName,
			&item.CurrentQuantity, &item.MinimumThreshold); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Deactivate marca el nivel como desactivado (nunca se borra físicamente).
func (r *StockLevelRepo) Deactivate(ctx context.Context, tenantID, shopID, productID, variantID string) error {
	query := `
		UPDATE stock_levels SET status = 'deactivated', updated_at = now()
		WHERE tenant_id = $1 AND shop_id = $2 AND product_id = $3
		  AND variant_id IS NOT DISTINCT FROM NULLIF($4, '')`
	_, err := r.q.Exec(ctx, query, tenantID, shopID, productID, variantID)
	if err != nil {
		return fmt.Errorf("deactivate stock level: %w", err)
	}
	return nil
}
