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
	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/bom"
	"github.com/jhoicas/Produccion-api/internal/application/catalog"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/purchasing"
	"github.com/jhoicas/Produccion-api/internal/application/sales"
	infrapdf "github.com/jhoicas/Produccion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/pkg/config"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	itemRepo := postgres.NewItemRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	quoteRepo := postgres.NewSupplierQuoteRepository(pool)
	priceRepo := postgres.NewPriceHistoryRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	ledgerRepo := postgres.NewStockLedgerRepository(pool)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool)
	salesRepo := postgres.NewSalesOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := catalog.NewItemUseCase(itemRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	customerUC := catalog.NewCustomerUseCase(customerRepo)
	quoteUC := catalog.NewQuoteUseCase(txRunner, quoteRepo, supplierRepo, itemRepo, priceRepo)
	formulaUC := bom.NewUseCase(txRunner, formulaRepo, recipeRepo, itemRepo, quoteRepo)
	productionUC := production.NewUseCase(txRunner, itemRepo, orderRepo, recipeRepo, stockRepo, ledgerRepo)
	purchaseUC := purchasing.NewUseCase(txRunner, purchaseRepo, supplierRepo, itemRepo)
	salesUC := sales.NewUseCase(txRunner, salesRepo, customerRepo, itemRepo)

	// PDF: hoja de costos de la fórmula
	costSheetGenerator := infrapdf.NewMarotoCostSheetGenerator()
	formulaPDFUC := bom.NewPDFUseCase(formulaRepo, itemRepo, costSheetGenerator)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Producción API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		SupplierUC:   supplierUC,
		CustomerUC:   customerUC,
		QuoteUC:      quoteUC,
		FormulaUC:    formulaUC,
		FormulaPDF:   formulaPDFUC,
		ProductionUC: productionUC,
		PurchaseUC:   purchaseUC,
		SalesUC:      salesUC,
		AuthUC:       authUC,
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
