package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	levelRepo := NewStockLevelRepository(tx)
	txnRepo := NewStockTransactionRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(levelRepo, txnRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransfer inicia una transacción con repos de niveles, libro y traslados
// (crear o transicionar un traslado toca los tres en la misma tx).
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	levelRepo := NewStockLevelRepository(tx)
	txnRepo := NewStockTransactionRepository(tx)
	transferRepo := NewStockTransferRepository(tx)

	if err := fn(levelRepo, txnRepo, transferRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAdjustment inicia una transacción con repos de niveles, libro y ajustes.
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	levelRepo := NewStockLevelRepository(tx)
	txnRepo := NewStockTransactionRepository(tx)
	adjustmentRepo := NewStockAdjustmentRepository(tx)

	if err := fn(levelRepo, txnRepo, adjustmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
