package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/licoreria-api/internal/application/dto"
	"github.com/jhoicas/licoreria-api/internal/domain"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// TenantUseCase aplica reglas de negocio para tenants (casos de uso).
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase construye el caso de uso con el puerto de persistencia.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Create crea un nuevo tenant. Genera ID y estado inicial.
func (uc *TenantUseCase) Create(in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	now := time.Now()
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// GetByID obtiene un tenant por ID.
func (uc *TenantUseCase) GetByID(id string) (*dto.TenantResponse, error) {
	tenant, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// Update actualiza los datos de contacto/estado del tenant.
func (uc *TenantUseCase) Update(id string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	tenant, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		tenant.Name = *in.Name
	}
	if in.Address != nil {
		tenant.Address = *in.Address
	}
	if in.Phone != nil {
		tenant.Phone = *in.Phone
	}
	if in.Email != nil {
		tenant.Email = *in.Email
	}
	if in.Status != nil {
		tenant.Status = entity.EntityStatus(*in.Status)
	}
	tenant.UpdatedAt = time.Now()
	if err := uc.repo.Update(tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// List lista tenants con paginación.
func (uc *TenantUseCase) List(limit, offset int) (*dto.TenantListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTenantResponse(t))
	}
	return &dto.TenantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate desactiva un tenant (soft-delete).
func (uc *TenantUseCase) Deactivate(id string) error {
	tenant, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		TaxID:     t.TaxID,
		Address:   t.Address,
		Phone:     t.Phone,
		Email:     t.Email,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
