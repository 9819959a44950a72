package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/licoreria-api/internal/application/dto"
	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// manualKinds tipos registrables directamente por la API. transfer_in/out y
// adjustment solo nacen de sus flujos propios (traslados y ajustes).
var manualKinds = map[string]bool{
	entity.KindPurchase:     true,
	entity.KindSale:         true,
	entity.KindReturn:       true,
	entity.KindWastage:      true,
	entity.KindOpeningStock: true,
}

// StockHandler maneja el libro de stock y los niveles (protegido).
type StockHandler struct {
	ledger *stock.LedgerUseCase
	levels *stock.LevelUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, levels *stock.LevelUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, levels: levels}
}

// RecordTransaction godoc
// @Summary      Registrar transacción de stock
// @Description  Registra una transacción manual (purchase, sale, return, wastage,
//
//	opening_stock). Los tipos de traslado y ajuste se generan desde
//	sus propios flujos.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "shop_id, product_id, kind, quantity (magnitud positiva)"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transactions [post]
func (h *StockHandler) RecordTransaction(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !manualKinds[in.Kind] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind no registrable por esta ruta"})
	}
	refType := in.ReferenceType
	if refType == "" {
		refType = entity.RefTypeManual
	}
	txn, err := h.ledger.RecordTransaction(c.Context(), stock.RecordInput{
		TenantID:      GetTenantID(c),
		ShopID:        in.ShopID,
		ProductID:     in.ProductID,
		VariantID:     in.VariantID,
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		ReferenceID:   in.ReferenceID,
		ReferenceType: refType,
		PerformedBy:   GetUserID(c),
		Notes:         in.Notes,
		UnitCost:      in.UnitCost,
	})
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(txn))
}

// GetLevel godoc
// @Summary      Consultar nivel de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shop_id     query  string  true   "Shop ID"
// @Param        product_id  query  string  true   "Product ID"
// @Param        variant_id  query  string  false  "Variant ID (vacío = producto base)"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/levels/one [get]
func (h *StockHandler) GetLevel(c *fiber.Ctx) error {
	shopID := c.Query("shop_id")
	productID := c.Query("product_id")
	if shopID == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shop_id y product_id son requeridos"})
	}
	level, err := h.levels.Get(c.Context(), GetTenantID(c), shopID, productID, c.Query("variant_id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(toLevelResponse(level))
}

// ListLevels godoc
// @Summary      Listar niveles de una tienda
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shop_id  query  string  true  "Shop ID"
// @Param        limit    query  int     false "Tamaño de página (default 20)"
// @Param        offset   query  int     false "Desplazamiento"
// @Success      200  {array}  dto.StockLevelResponse
// @Router       /api/stock/levels [get]
func (h *StockHandler) ListLevels(c *fiber.Ctx) error {
	shopID := c.Query("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shop_id es requerido"})
	}
	page := parsePage(c)
	list, err := h.levels.ListByShop(c.Context(), GetTenantID(c), shopID, page.Limit, page.Offset)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	items := make([]dto.StockLevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLevelResponse(l))
	}
	return c.JSON(items)
}

// UpdateThresholds godoc
// @Summary      Fijar umbrales mínimo/máximo de un nivel
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateThresholdsRequest  true  "shop_id, product_id, minimum_threshold, maximum_threshold"
// @Success      200   {object}  dto.StockLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/levels/thresholds [put]
func (h *StockHandler) UpdateThresholds(c *fiber.Ctx) error {
	var in dto.UpdateThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	level, err := h.levels.UpdateThresholds(c.Context(), GetTenantID(c), in.ShopID, in.ProductID, in.VariantID, in.MinimumThreshold, in.MaximumThreshold)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(toLevelResponse(level))
}

// LowStockReport godoc
// @Summary      Reporte de niveles bajo mínimo
// @Description  Niveles activos con cantidad bajo su umbral mínimo, ordenados
//
//	por mayor déficit primero.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shop_id  query  string  true  "Shop ID"
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/stock/low-stock [get]
func (h *StockHandler) LowStockReport(c *fiber.Ctx) error {
	shopID := c.Query("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shop_id es requerido"})
	}
	list, err := h.levels.LowStockReport(c.Context(), GetTenantID(c), shopID)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	items := make([]dto.LowStockItemResponse, 0, len(list))
	for _, item := range list {
		items = append(items, toLowStockResponse(item))
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// ListTransactions godoc
// @Summary      Listar el libro de una tienda
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shop_id     query  string  true   "Shop ID"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        variant_id  query  string  false  "Filtrar por variante"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}  dto.StockTransactionResponse
// @Router       /api/stock/transactions [get]
func (h *StockHandler) ListTransactions(c *fiber.Ctx) error {
	shopID := c.Query("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shop_id es requerido"})
	}
	page := parsePage(c)
	tenantID := GetTenantID(c)

	var (
		list []*entity.StockTransaction
		err  error
	)
	if productID := c.Query("product_id"); productID != "" {
		list, err = h.levels.ListTransactions(c.Context(), tenantID, shopID, productID, c.Query("variant_id"), page.Limit, page.Offset)
	} else {
		var from, to *time.Time
		if s := c.Query("from"); s != "" {
			t, perr := time.Parse(time.RFC3339, s)
			if perr != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
			}
			from = &t
		}
		if s := c.Query("to"); s != "" {
			t, perr := time.Parse(time.RFC3339, s)
			if perr != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
			}
			to = &t
		}
		list, err = h.levels.ListShopTransactions(c.Context(), tenantID, shopID, from, to, page.Limit, page.Offset)
	}
	if err != nil {
		return domainErrorResponse(c, err)
	}
	items := make([]dto.StockTransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionResponse(t))
	}
	return c.JSON(items)
}

// CheckConsistency godoc
// @Summary      Verificar consistencia libro vs nivel
// @Description  Contrasta la cantidad del nivel contra la suma firmada del libro
//
//	más las diferencias de ajuste; deben coincidir siempre.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shop_id     query  string  true   "Shop ID"
// @Param        product_id  query  string  true   "Product ID"
// @Param        variant_id  query  string  false  "Variant ID"
// @Success      200  {object}  stock.ConsistencyReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/consistency [get]
func (h *StockHandler) CheckConsistency(c *fiber.Ctx) error {
	shopID := c.Query("shop_id")
	productID := c.Query("product_id")
	if shopID == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shop_id y product_id son requeridos"})
	}
	report, err := h.levels.CheckConsistency(c.Context(), GetTenantID(c), shopID, productID, c.Query("variant_id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(report)
}

// ── conversiones entity → dto ─────────────────────────────────────────────────

func toTransactionResponse(t *entity.StockTransaction) *dto.StockTransactionResponse {
	if t == nil {
		return nil
	}
	return &dto.StockTransactionResponse{
		ID:            t.ID,
		ShopID:        t.ShopID,
		ProductID:     t.ProductID,
		VariantID:     t.VariantID,
		Kind:          t.Kind,
		Quantity:      t.Quantity,
		ReferenceID:   t.ReferenceID,
		ReferenceType: t.ReferenceType,
		PerformedBy:   t.PerformedBy,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}
}

func toLevelResponse(l *entity.StockLevel) *dto.StockLevelResponse {
	if l == nil {
		return nil
	}
	return &dto.StockLevelResponse{
		ShopID:           l.ShopID,
		ProductID:        l.ProductID,
		VariantID:        l.VariantID,
		CurrentQuantity:  l.CurrentQuantity,
		MinimumThreshold: l.MinimumThreshold,
		MaximumThreshold: l.MaximumThreshold,
		LowStock:         l.LowStock,
		OutOfStock:       l.OutOfStock,
		UpdatedAt:        l.UpdatedAt,
	}
}

func toLowStockResponse(item repository.LowStockItem) dto.LowStockItemResponse {
	return dto.LowStockItemResponse{
		ProductID:        item.ProductID,
		VariantID:        item.VariantID,
		SKU:              item.SKU,
		ProductName:      item.ProductName,
		CurrentQuantity:  item.CurrentQuantity,
		MinimumThreshold: item.MinimumThreshold,
		Deficit:          item.MinimumThreshold - item.CurrentQuantity,
	}
}
