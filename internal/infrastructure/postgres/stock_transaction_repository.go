package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del libro de transacciones sobre
// PostgreSQL (usable con pool o tx). La tabla es append-only: este adaptador
// no expone UPDATE ni DELETE.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const stockTxnColumns = `id, tenant_id, shop_id, product_id, COALESCE(variant_id, ''), kind, quantity,
		COALESCE(reference_id, ''), COALESCE(reference_type, ''), COALESCE(performed_by, ''), COALESCE(notes, ''), created_at`

func scanStockTxn(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	err := row.Scan(
		&t.ID, &t.TenantID, &t.ShopID, &t.ProductID, &t.VariantID,
		&t.Kind, &t.Quantity, &t.ReferenceID, &t.ReferenceType,
		&t.PerformedBy, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un asiento del libro.
func (r *StockTransactionRepo) Create(ctx context.Context, txn *entity.StockTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transactions (id, tenant_id, shop_id, product_id, variant_id, kind, quantity,
			reference_id, reference_type, performed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12)`
	_, err := r.q.Exec(ctx, query,
		txn.ID, txn.TenantID, txn.ShopID, txn.ProductID, txn.VariantID,
		txn.Kind, txn.Quantity, txn.ReferenceID, txn.ReferenceType,
		txn.PerformedBy, txn.Notes, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID dentro del tenant.
func (r *StockTransactionRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.StockTransaction, error) {
	query := `
		SELECT ` + stockTxnColumns + `
		FROM stock_transactions WHERE tenant_id = $1 AND id = $2`
	t, err := scanStockTxn(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return t, nil
}

// ListByShop lista asientos de una tienda en un rango de fechas, más reciente primero.
func (r *StockTransactionRepo) ListByShop(ctx context.Context, tenantID, shopID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + stockTxnColumns + `
		FROM stock_transactions WHERE tenant_id = $1 AND shop_id = $2`
	args := []any{tenantID, shopID}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by shop: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		t, err := scanStockTxn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListByProduct lista asientos de un producto/variante en una tienda, más reciente primero.
func (r *StockTransactionRepo) ListByProduct(ctx context.Context, tenantID, shopID, productID, variantID string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + stockTxnColumns + `
		FROM stock_transactions
		WHERE tenant_id = $1 AND shop_id = $2 AND product_id = $3
		  AND variant_id IS NOT DISTINCT FROM NULLIF($4, '')
		ORDER BY created_at DESC LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, tenantID, shopID, productID, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		t, err := scanStockTxn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// SumSigned suma las cantidades con signo de una combinación, excluyendo los
// asientos de ajuste (su aporte firmado vive en los renglones de ajuste).
func (r *StockTransactionRepo) SumSigned(ctx context.Context, tenantID, shopID, productID, variantID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE
			WHEN kind IN ('purchase', 'return', 'transfer_in', 'opening_stock') THEN quantity
			ELSE -quantity
		END), 0)
		FROM stock_transactions
		WHERE tenant_id = $1 AND shop_id = $2 AND product_id = $3
		  AND variant_id IS NOT DISTINCT FROM NULLIF($4, '')
		  AND kind <> 'adjustment'`
	var sum int64
	err := r.q.QueryRow(ctx, query, tenantID, shopID, productID, variantID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum signed: %w", err)
	}
	return sum, nil
}
