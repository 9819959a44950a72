package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/licoreria-api/internal/application/dto"
	"github.com/jhoicas/licoreria-api/internal/application/usecase"
)

// TenantHandler maneja las peticiones HTTP de tenants (cadenas de licorerías).
type TenantHandler struct {
	uc *usecase.TenantUseCase
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc *usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenantRequest  true  "name, tax_id"
// @Success      201   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.TaxID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y tax_id son requeridos"})
	}
	tenant, err := h.uc.Create(in)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// GetByID godoc
// @Summary      Obtener tenant
// @Tags         tenants
// @Produce      json
// @Param        id   path  string  true  "Tenant ID"
// @Success      200  {object}  dto.TenantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [get]
func (h *TenantHandler) GetByID(c *fiber.Ctx) error {
	tenant, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(tenant)
}

// Update godoc
// @Summary      Actualizar tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Tenant ID"
// @Param        body  body  dto.UpdateTenantRequest  true  "campos opcionales"
// @Success      200   {object}  dto.TenantResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [put]
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tenant, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(tenant)
}

// List godoc
// @Summary      Listar tenants
// @Tags         tenants
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.TenantListResponse
// @Router       /api/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(list)
}

// Deactivate godoc
// @Summary      Desactivar tenant
// @Tags         tenants
// @Produce      json
// @Param        id   path  string  true  "Tenant ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [delete]
func (h *TenantHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return domainErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePage lee limit/offset de la query con defaults.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	return page
}
