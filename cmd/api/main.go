package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/licoreria-api/internal/application/auth"
	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/licoreria-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/licoreria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/licoreria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/licoreria-api/internal/interfaces/http"
	"github.com/jhoicas/licoreria-api/pkg/config"
	"github.com/jhoicas/licoreria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: "licoreria-api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	txnRepo := postgres.NewStockTransactionRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	adjustmentRepo := postgres.NewStockAdjustmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Publicador de eventos: Kafka real o descarte según configuración.
	var publisher stock.EventPublisher = infrakafka.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPub := infrakafka.NewPublisher(cfg.Kafka.Brokers, log)
		defer kafkaPub.Close()
		publisher = kafkaPub
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("publicador Kafka habilitado")
	}

	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	shopUC := usecase.NewShopUseCase(shopRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, shopRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	ledgerUC := stock.NewLedgerUseCase(txRunner, productRepo, shopRepo, publisher)
	levelUC := stock.NewLevelUseCase(txRunner, levelRepo, txnRepo, adjustmentRepo)
	noteGen := infrapdf.NewMarotoTransferNoteGenerator()
	transferUC := stock.NewTransferUseCase(
		txRunner, transferRepo, levelRepo, shopRepo, productRepo,
		ledgerUC, publisher, noteGen,
	)
	adjustmentUC := stock.NewAdjustmentUseCase(
		txRunner, adjustmentRepo, shopRepo, productRepo, publisher,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Licorería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:     tenantUC,
		ShopUC:       shopUC,
		ProductUC:    productUC,
		AuthUC:       authUC,
		LedgerUC:     ledgerUC,
		LevelUC:      levelUC,
		TransferUC:   transferUC,
		AdjustmentUC: adjustmentUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
