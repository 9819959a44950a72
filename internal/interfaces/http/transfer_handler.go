package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/licoreria-api/internal/application/dto"
	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// TransferHandler maneja traslados de stock entre tiendas (protegido).
type TransferHandler struct {
	transfers *stock.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(transfers *stock.TransferUseCase) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// Create godoc
// @Summary      Crear traslado
// @Description  Crea un traslado en estado pending. No toca el stock hasta
//
//	pasar a in_transit.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Tiendas origen/destino y renglones"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SourceShopID == "" || in.DestinationShopID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "source_shop_id, destination_shop_id e items son requeridos"})
	}
	transferDate := time.Now().UTC()
	if in.TransferDate != nil {
		transferDate = *in.TransferDate
	}
	items := make([]stock.TransferItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, stock.TransferItemInput{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	transfer, err := h.transfers.Create(c.Context(), stock.CreateTransferInput{
		TenantID:          GetTenantID(c),
		SourceShopID:      in.SourceShopID,
		DestinationShopID: in.DestinationShopID,
		TransferDate:      transferDate,
		ReferenceNumber:   in.ReferenceNumber,
		Notes:             in.Notes,
		InitiatedBy:       GetUserID(c),
		Items:             items,
	})
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer))
}

// Transition godoc
// @Summary      Cambiar estado de un traslado
// @Description  pending→in_transit descuenta origen; in_transit→completed abona
//
//	destino; cancelar un in_transit repone el origen.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "Transfer ID"
// @Param        body  body  dto.TransitionTransferRequest  true  "Estado destino"
// @Success      200   {object}  dto.TransferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id}/status [put]
func (h *TransferHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	transfer, err := h.transfers.Transition(c.Context(), GetTenantID(c), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

// GetByID godoc
// @Summary      Consultar traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Transfer ID"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.transfers.GetByID(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

// ListByShop godoc
// @Summary      Listar traslados de una tienda
// @Description  Incluye traslados donde la tienda es origen o destino.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        shop_id  query  string  true  "Shop ID"
// @Param        limit    query  int     false "Tamaño de página (default 20)"
// @Param        offset   query  int     false "Desplazamiento"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/stock/transfers [get]
func (h *TransferHandler) ListByShop(c *fiber.Ctx) error {
	shopID := c.Query("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shop_id es requerido"})
	}
	page := parsePage(c)
	list, err := h.transfers.ListByShop(c.Context(), GetTenantID(c), shopID, page.Limit, page.Offset)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return c.JSON(items)
}

// DeliveryNote godoc
// @Summary      Remisión PDF de un traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Transfer ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id}/note [get]
func (h *TransferHandler) DeliveryNote(c *fiber.Ctx) error {
	pdfBytes, err := h.transfers.DeliveryNote(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="remision-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

func toTransferResponse(t *entity.StockTransfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, dto.TransferItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			VariantID:         item.VariantID,
			RequestedQuantity: item.RequestedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			Received:          item.Received,
		})
	}
	return &dto.TransferResponse{
		ID:                t.ID,
		SourceShopID:      t.SourceShopID,
		DestinationShopID: t.DestinationShopID,
		TransferDate:      t.TransferDate,
		Status:            t.Status,
		ReferenceNumber:   t.ReferenceNumber,
		InitiatedBy:       t.InitiatedBy,
		Notes:             t.Notes,
		Items:             items,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
