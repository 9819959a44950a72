package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/licoreria-api/internal/application/dto"
	"github.com/jhoicas/licoreria-api/internal/application/usecase"
)

// ShopHandler maneja las peticiones HTTP de tiendas (protegido).
type ShopHandler struct {
	uc *usecase.ShopUseCase
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShopRequest  true  "name"
// @Success      201   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	var in dto.CreateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	shop, err := h.uc.Create(tenantID, in)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shop)
}

// GetByID godoc
// @Summary      Obtener tienda
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Shop ID"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	shop, err := h.uc.GetByID(GetTenantID(c), c.Params("id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(shop)
}

// Update godoc
// @Summary      Actualizar tienda
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Shop ID"
// @Param        body  body  dto.UpdateShopRequest  true  "campos opcionales"
// @Success      200   {object}  dto.ShopResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [put]
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shop, err := h.uc.Update(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(shop)
}

// List godoc
// @Summary      Listar tiendas del tenant
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ShopListResponse
// @Router       /api/shops [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	list, err := h.uc.List(GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(list)
}

// Deactivate godoc
// @Summary      Desactivar tienda
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Shop ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [delete]
func (h *ShopHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetTenantID(c), c.Params("id")); err != nil {
		return domainErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
