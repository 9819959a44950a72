package stock

import (
	"context"

	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del nivel y el
// asiento del libro se confirmen (o se reviertan) como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error) error

	// RunTransfer incluye además el repositorio de traslados (crear/transicionar
	// un traslado toca cabecera, renglones, niveles y libro en la misma tx).
	RunTransfer(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		transferRepo repository.StockTransferRepository,
	) error) error

	// RunAdjustment incluye además el repositorio de ajustes.
	RunAdjustment(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error) error
}

// EventPublisher publica eventos JSON tras cada mutación confirmada.
// Mejor esfuerzo (at-most-once): un fallo de publicación se registra en el log
// del publisher y nunca revierte la mutación ya confirmada en BD.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Close() error
}
