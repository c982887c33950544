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

	"github.com/nexvolt/evretail-api/internal/application/auth"
	"github.com/nexvolt/evretail-api/internal/application/billing"
	"github.com/nexvolt/evretail-api/internal/application/ledger"
	"github.com/nexvolt/evretail-api/internal/application/usecase"
	infrapdf "github.com/nexvolt/evretail-api/internal/infrastructure/pdf"
	"github.com/nexvolt/evretail-api/internal/infrastructure/postgres"
	httpRouter "github.com/nexvolt/evretail-api/internal/interfaces/http"
	"github.com/nexvolt/evretail-api/pkg/config"
	"github.com/nexvolt/evretail-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	branchRepo := postgres.NewBranchRepository(pool)
	vehicleRepo := postgres.NewVehicleModelRepository(pool)
	partRepo := postgres.NewSparePartRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	recordRepo := postgres.NewStockRecordRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	walletRepo := postgres.NewWalletRepository(pool)
	paymentRepo := postgres.NewPaymentRequestRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, recordRepo, branchRepo)
	issueUC := billing.NewIssueInvoiceUseCase(txRunner, ledgerUC, branchRepo, invoiceRepo, cfg.Invoice.NumberPrefix)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, branchRepo, infrapdf.NewMarotoInvoiceGenerator())
	branchUC := usecase.NewBranchUseCase(branchRepo)
	catalogUC := usecase.NewCatalogUseCase(vehicleRepo, partRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	teamUC := usecase.NewTeamUseCase(userRepo)
	walletUC := usecase.NewWalletUseCase(txRunner, walletRepo, paymentRepo, userRepo)
	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
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

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EV Retail API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		BranchUC:  branchUC,
		CatalogUC: catalogUC,
		LedgerUC:  ledgerUC,
		IssueUC:   issueUC,
		PDFUC:     pdfUC,
		UserUC:    userUC,
		TeamUC:    teamUC,
		WalletUC:  walletUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
