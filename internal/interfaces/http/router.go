package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/licoreria-api/internal/application/auth"
	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/application/usecase"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC     *usecase.TenantUseCase
	ShopUC       *usecase.ShopUseCase
	ProductUC    *usecase.ProductUseCase
	AuthUC       *auth.AuthUseCase
	LedgerUC     *stock.LedgerUseCase
	LevelUC      *stock.LevelUseCase
	TransferUC   *stock.TransferUseCase
	AdjustmentUC *stock.AdjustmentUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Tenants (público por ahora; alta de licorerías en onboarding)
	tenants := api.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Put("/:id", tenantHandler.Update)
	tenants.Delete("/:id", tenantHandler.Deactivate)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	adminOrManager := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Shops (protegido)
	shops := protected.Group("/shops")
	shopHandler := NewShopHandler(deps.ShopUC)
	shops.Post("/", adminOnly, shopHandler.Create)
	shops.Get("/", shopHandler.List)
	shops.Get("/:id", shopHandler.GetByID)
	shops.Put("/:id", adminOnly, shopHandler.Update)
	shops.Delete("/:id", adminOnly, shopHandler.Deactivate)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOrManager, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOrManager, productHandler.Update)
	products.Delete("/:id", adminOrManager, productHandler.Deactivate)
	products.Post("/:id/variants", adminOrManager, productHandler.CreateVariant)
	products.Get("/:id/variants", productHandler.ListVariants)

	// Stock: libro, niveles y reportes (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.LevelUC)
	stockGroup.Post("/transactions", stockHandler.RecordTransaction)
	stockGroup.Get("/transactions", stockHandler.ListTransactions)
	stockGroup.Get("/levels", stockHandler.ListLevels)
	stockGroup.Get("/levels/one", stockHandler.GetLevel)
	stockGroup.Put("/levels/thresholds", adminOrManager, stockHandler.UpdateThresholds)
	stockGroup.Get("/low-stock", stockHandler.LowStockReport)
	stockGroup.Get("/consistency", adminOrManager, stockHandler.CheckConsistency)

	// Transfers (protegido)
	transfers := stockGroup.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", adminOrManager, transferHandler.Create)
	transfers.Get("/", transferHandler.ListByShop)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Put("/:id/status", adminOrManager, transferHandler.Transition)
	transfers.Get("/:id/note", transferHandler.DeliveryNote)

	// Adjustments (protegido)
	adjustments := stockGroup.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adminOrManager, adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.ListByShop)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
}
