package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/licoreria-api/internal/application/dto"
	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// AdjustmentHandler maneja ajustes de inventario (protegido).
type AdjustmentHandler struct {
	adjustments *stock.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(adjustments *stock.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{adjustments: adjustments}
}

// Create godoc
// @Summary      Registrar ajuste de inventario
// @Description  Reconcilia el stock contra un conteo físico: cada renglón trae
//
//	la cantidad absoluta encontrada; la diferencia se calcula en el
//	servidor y el nivel queda fijado en la cantidad nueva.
//
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "shop_id, kind y renglones con new_quantity"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ShopID == "" || in.Kind == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shop_id, kind e items son requeridos"})
	}
	adjustmentDate := time.Now().UTC()
	if in.AdjustmentDate != nil {
		adjustmentDate = *in.AdjustmentDate
	}
	items := make([]stock.AdjustmentItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, stock.AdjustmentItemInput{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			NewQuantity: item.NewQuantity,
			Notes:       item.Notes,
		})
	}
	adjustment, err := h.adjustments.Create(c.Context(), stock.CreateAdjustmentInput{
		TenantID:        GetTenantID(c),
		ShopID:          in.ShopID,
		Kind:            in.Kind,
		AdjustmentDate:  adjustmentDate,
		ReferenceNumber: in.ReferenceNumber,
		PerformedBy:     GetUserID(c),
		Notes:           in.Notes,
		Items:           items,
	})
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adjustment))
}

// GetByID godoc
// @Summary      Consultar ajuste
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Adjustment ID"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	adjustment, err := h.adjustments.GetByID(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(toAdjustmentResponse(adjustment))
}

// ListByShop godoc
// @Summary      Listar ajustes de una tienda
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        shop_id  query  string  true  "Shop ID"
// @Param        limit    query  int     false "Tamaño de página (default 20)"
// @Param        offset   query  int     false "Desplazamiento"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/stock/adjustments [get]
func (h *AdjustmentHandler) ListByShop(c *fiber.Ctx) error {
	shopID := c.Query("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shop_id es requerido"})
	}
	page := parsePage(c)
	list, err := h.adjustments.ListByShop(c.Context(), GetTenantID(c), shopID, page.Limit, page.Offset)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAdjustmentResponse(a))
	}
	return c.JSON(items)
}

func toAdjustmentResponse(a *entity.StockAdjustment) *dto.AdjustmentResponse {
	if a == nil {
		return nil
	}
	items := make([]dto.AdjustmentItemResponse, 0, len(a.Items))
	for _, item := range a.Items {
		items = append(items, dto.AdjustmentItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			VariantID:        item.VariantID,
			PreviousQuantity: item.PreviousQuantity,
			NewQuantity:      item.NewQuantity,
			Difference:       item.Difference,
			Notes:            item.Notes,
		})
	}
	return &dto.AdjustmentResponse{
		ID:              a.ID,
		ShopID:          a.ShopID,
		AdjustmentDate:  a.AdjustmentDate,
		Kind:            a.Kind,
		ReferenceNumber: a.ReferenceNumber,
		PerformedBy:     a.PerformedBy,
		Notes:           a.Notes,
		Items:           items,
		CreatedAt:       a.CreatedAt,
	}
}
