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

	"github.com/conversahub/billing-api/internal/application/auth"
	appsub "github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/internal/application/usecase"
	"github.com/conversahub/billing-api/internal/infrastructure/mercadopago"
	infrapdf "github.com/conversahub/billing-api/internal/infrastructure/pdf"
	"github.com/conversahub/billing-api/internal/infrastructure/postgres"
	"github.com/conversahub/billing-api/internal/infrastructure/ws"
	httpRouter "github.com/conversahub/billing-api/internal/interfaces/http"
	"github.com/conversahub/billing-api/pkg/config"
	"github.com/conversahub/billing-api/pkg/logger"
)

func main() {
	// Load aborta si falta MP_ACCESS_TOKEN: sin token de gateway el servicio
	// de renovaciones no tiene razón de arrancar.
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gateway, err := mercadopago.NewClient(cfg.MercadoPago, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar gateway de pagos")
	}

	hub := ws.NewHub(log)

	createPixUC := appsub.NewCreatePixUseCase(invoiceRepo, companyRepo, planRepo, gateway, log)
	confirmUC := appsub.NewConfirmPaymentUseCase(invoiceRepo, companyRepo, planRepo, gateway, txRunner, hub, log)
	receiptUC := appsub.NewReceiptUseCase(invoiceRepo, companyRepo, planRepo,
		infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	companyUC := usecase.NewCompanyUseCase(companyRepo, planRepo, invoiceRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
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
		Title:    "Conversa Billing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.RegisterWebSocket(app, hub)
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CompanyUC: companyUC,
		CreatePix: createPixUC,
		ConfirmUC: confirmUC,
		ReceiptUC: receiptUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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
