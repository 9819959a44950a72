package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/licoreria-api/internal/application/dto"
	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo y sus
// variantes. Cost se maneja vía transacciones de compra, nunca por aquí.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Cost inicia en 0.
func (uc *ProductUseCase) Create(tenantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByTenantAndSKU(tenantID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Category == "" {
		in.Category = entity.CategoryOtros
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		SKU:         in.SKU,
		Name:        in.Name,
		Brand:       in.Brand,
		Category:    in.Category,
		Description: in.Description,
		VolumeML:    in.VolumeML,
		Price:       in.Price,
		Cost:        decimal.Zero,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID, validando que pertenezca al tenant.
func (uc *ProductUseCase) GetByID(tenantID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Cost (se recalcula con
// cada compra) ni el stock (vive en los niveles por tienda).
func (uc *ProductUseCase) Update(tenantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.VolumeML != nil {
		product.VolumeML = *in.VolumeML
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del tenant con paginación.
func (uc *ProductUseCase) List(tenantID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate desactiva un producto (soft-delete); el historial de
// transacciones que lo referencia se conserva intacto.
func (uc *ProductUseCase) Deactivate(tenantID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || product.TenantID != tenantID {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

// CreateVariant agrega una variante (otra presentación) al producto.
func (uc *ProductUseCase) CreateVariant(tenantID, productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	variant := &entity.ProductVariant{
		ID:        uuid.New().String(),
		ProductID: productID,
		Name:      in.Name,
		SKU:       in.SKU,
		VolumeML:  in.VolumeML,
		Price:     in.Price,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateVariant(variant); err != nil {
		return nil, err
	}
	return toVariantResponse(variant), nil
}

// ListVariants lista las variantes de un producto del tenant.
func (uc *ProductUseCase) ListVariants(tenantID, productID string) ([]dto.VariantResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListVariants(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVariantResponse(v))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		SKU:         p.SKU,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Description: p.Description,
		VolumeML:    p.VolumeML,
		Price:       p.Price,
		Cost:        p.Cost,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toVariantResponse(v *entity.ProductVariant) *dto.VariantResponse {
	if v == nil {
		return nil
	}
	return &dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Name:      v.Name,
		SKU:       v.SKU,
		VolumeML:  v.VolumeML,
		Price:     v.Price,
		Status:    string(v.Status),
	}
}
