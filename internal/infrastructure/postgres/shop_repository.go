package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository sobre PostgreSQL.
type ShopRepo struct {
	pool *pgxpool.Pool
}

// NewShopRepository construye el adaptador de persistencia para tiendas.
func NewShopRepository(pool *pgxpool.Pool) *ShopRepo {
	return &ShopRepo{pool: pool}
}

// Create persiste una nueva tienda.
func (r *ShopRepo) Create(shop *entity.Shop) error {
	query := `
		INSERT INTO shops (id, tenant_id, name, address, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		shop.ID, shop.TenantID, shop.Name, shop.Address, shop.Phone,
		shop.Status, shop.CreatedAt, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *ShopRepo) GetByID(id string) (*entity.Shop, error) {
	query := `
		SELECT id, tenant_id, name, address, phone, status, created_at, updated_at
		FROM shops WHERE id = $1`
	var s entity.Shop
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Address, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return &s, nil
}

// Update actualiza una tienda existente.
func (r *ShopRepo) Update(shop *entity.Shop) error {
	query := `
		UPDATE shops SET name = $2, address = $3, phone = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		shop.ID, shop.Name, shop.Address, shop.Phone, shop.Status, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

// ListByTenant lista tiendas del tenant con paginación.
func (r *ShopRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Shop, error) {
	query := `
		SELECT id, tenant_id, name, address, phone, status, created_at, updated_at
		FROM shops WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shop
	for rows.Next() {
		var s entity.Shop
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Address, &s.Phone,
			&s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Deactivate marca la tienda como desactivada; el histórico sigue consultable.
func (r *ShopRepo) Deactivate(id string) error {
	query := `UPDATE shops SET status = 'deactivated', updated_at = now() WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate shop: %w", err)
	}
	return nil
}
