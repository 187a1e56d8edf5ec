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

	appanalytics "github.com/farmaviva/botica-api/internal/application/analytics"
	"github.com/farmaviva/botica-api/internal/application/auth"
	appinventory "github.com/farmaviva/botica-api/internal/application/inventory"
	"github.com/farmaviva/botica-api/internal/application/purchases"
	"github.com/farmaviva/botica-api/internal/application/sales"
	"github.com/farmaviva/botica-api/internal/application/usecase"
	infrapdf "github.com/farmaviva/botica-api/internal/infrastructure/pdf"
	"github.com/farmaviva/botica-api/internal/infrastructure/postgres"
	"github.com/farmaviva/botica-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/farmaviva/botica-api/internal/interfaces/http"
	"github.com/farmaviva/botica-api/pkg/clock"
	"github.com/farmaviva/botica-api/pkg/config"
	"github.com/farmaviva/botica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("timezone", cfg.Inventario.Timezone).
		Msg("iniciando aplicación")

	clk, err := clock.NewSystem(cfg.Inventario.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de negocio")
	}
	horizon := cfg.Inventario.ExpiryHorizonDays

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas; las escrituras van vía TxRunner).
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Núcleo de inventario por lotes.
	receiveLotUC := appinventory.NewReceiveLotUseCase(txRunner, productRepo, clk, horizon)
	allocateUC := appinventory.NewAllocateUseCase(lotRepo, productRepo, clk, horizon)
	adjustLotUC := appinventory.NewAdjustLotUseCase(txRunner, clk, horizon)
	sweepUC := appinventory.NewSweepExpiredUseCase(txRunner, lotRepo, clk, horizon)
	recomputeUC := appinventory.NewRecomputeUseCase(txRunner, productRepo, clk, horizon)
	ledgerUC := appinventory.NewLedgerUseCase(lotRepo, movRepo)

	// Punto de venta.
	business := sales.BusinessInfo{
		Name:    cfg.Negocio.Name,
		RUC:     cfg.Negocio.RUC,
		Address: cfg.Negocio.Address,
		Phone:   cfg.Negocio.Phone,
	}
	ticketGen := infrapdf.NewMarotoTicketGenerator()
	linkBuilder := whatsapp.NewLinkBuilder(cfg.Negocio.WhatsAppCountryCode)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, productRepo, allocateUC, clk)
	returnSaleUC := sales.NewReturnSaleUseCase(txRunner, clk, horizon)
	saleQueryUC := sales.NewQueryUseCase(saleRepo, lotRepo)
	receiptUC := sales.NewReceiptUseCase(saleRepo, productRepo, ticketGen, linkBuilder, business)

	// Compras y proveedores.
	createPurchaseUC := purchases.NewCreatePurchaseUseCase(txRunner, supplierRepo, productRepo, clk, horizon)
	purchaseQueryUC := purchases.NewQueryUseCase(purchaseRepo)
	supplierUC := purchases.NewSupplierUseCase(supplierRepo, clk)

	// Catálogo, ubicaciones, avisos, dashboard, auth.
	productUC := usecase.NewProductUseCase(productRepo, lotRepo, clk)
	locationUC := usecase.NewLocationUseCase(locationRepo, clk)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, productRepo, clk)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, clk)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, clk)

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
		Title:    "Botica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		LocationUC:     locationUC,
		NotificationUC: notificationUC,
		SupplierUC:     supplierUC,
		ReceiveLot:     receiveLotUC,
		Allocate:       allocateUC,
		AdjustLot:      adjustLotUC,
		Sweep:          sweepUC,
		Recompute:      recomputeUC,
		Ledger:         ledgerUC,
		CreateSale:     createSaleUC,
		ReturnSale:     returnSaleUC,
		SaleQuery:      saleQueryUC,
		Receipt:        receiptUC,
		CreatePurchase: createPurchaseUC,
		PurchaseQuery:  purchaseQueryUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
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
