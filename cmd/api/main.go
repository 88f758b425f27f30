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
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/application/auth"
	"github.com/tu-usuario/contable-pro/internal/application/billing"
	appbudget "github.com/tu-usuario/contable-pro/internal/application/budget"
	"github.com/tu-usuario/contable-pro/internal/application/integration"
	"github.com/tu-usuario/contable-pro/internal/application/party"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/contable-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/contable-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/contable-pro/internal/infrastructure/redisstore"
	httpRouter "github.com/tu-usuario/contable-pro/internal/interfaces/http"
	"github.com/tu-usuario/contable-pro/pkg/config"
	"github.com/tu-usuario/contable-pro/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, txRunner, log)
	billUC := billing.NewBillUseCase(billRepo, txRunner, log)
	customerUC := party.NewCustomerUseCase(customerRepo, log)
	vendorUC := party.NewVendorUseCase(vendorRepo, log)
	budgetUC := appbudget.NewUseCase(budgetRepo, txRunner, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	auditUC := audit.NewUseCase(auditRepo, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)

	// PDF: representación imprimible de la factura de venta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, pdfGenerator, log)

	// Deduplicación de webhooks: solo si hay Redis configurado. Sin Redis la
	// API acepta eventos repetidos (la firma HMAC sigue siendo obligatoria).
	var replayGuard integration.ReplayGuard
	if cfg.Redis.Addr != "" {
		redisClient, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		replayGuard = redisstore.NewEventDeduper(redisClient)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: deduplicación de webhooks deshabilitada")
	}
	integrationUC := integration.NewUseCase(
		cfg.Webhook.Secret,
		time.Duration(cfg.Webhook.ReplayTTLHours)*time.Hour,
		replayGuard,
		log,
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
		Title:    "ContablePro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		InvoiceUC:     invoiceUC,
		BillUC:        billUC,
		PDFUC:         pdfUC,
		CustomerUC:    customerUC,
		VendorUC:      vendorUC,
		BudgetUC:      budgetUC,
		UserUC:        userUC,
		AuditUC:       auditUC,
		IntegrationUC: integrationUC,
		JWTSecret:     cfg.JWT.Secret,
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
