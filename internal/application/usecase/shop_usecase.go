package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/licoreria-api/internal/application/dto"
	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// ShopUseCase casos de uso CRUD para tiendas.
type ShopUseCase struct {
	repo repository.ShopRepository
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(repo repository.ShopRepository) *ShopUseCase {
	return &ShopUseCase{repo: repo}
}

// Create crea una nueva tienda dentro del tenant.
func (uc *ShopUseCase) Create(tenantID string, in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	now := time.Now()
	shop := &entity.Shop{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// GetByID obtiene una tienda por ID dentro del tenant.
func (uc *ShopUseCase) GetByID(tenantID, id string) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return toShopResponse(shop), nil
}

// Update actualiza una tienda.
func (uc *ShopUseCase) Update(tenantID, id string, in dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		shop.Name = *in.Name
	}
	if in.Address != nil {
		shop.Address = *in.Address
	}
	if in.Phone != nil {
		shop.Phone = *in.Phone
	}
	shop.UpdatedAt = time.Now()
	if err := uc.repo.Update(shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// List lista tiendas del tenant con paginación.
func (uc *ShopUseCase) List(tenantID string, limit, offset int) (*dto.ShopListResponse, error) {
	list, err := uc.repo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShopResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShopResponse(s))
	}
	return &dto.ShopListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate desactiva una tienda (nunca hay borrado físico).
func (uc *ShopUseCase) Deactivate(tenantID, id string) error {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if shop == nil || shop.TenantID != tenantID {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

func toShopResponse(s *entity.Shop) *dto.ShopResponse {
	if s == nil {
		return nil
	}
	return &dto.ShopResponse{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
