package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/conversahub/billing-api/internal/application/auth"
	appsub "github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/internal/application/usecase"
	"github.com/conversahub/billing-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	CreatePix  *appsub.CreatePixUseCase
	ConfirmUC  *appsub.ConfirmPaymentUseCase
	ReceiptUC  *appsub.ReceiptUseCase
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	subHandler := NewSubscriptionHandler(deps.CreatePix, deps.ConfirmUC, deps.ReceiptUC, deps.Log)

	// Webhook (público: lo llama el gateway, no un usuario autenticado)
	api.Post("/subscription/webhook/:type?", subHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Subscription (protegido)
	protected.Post("/subscription", subHandler.Create)
	protected.Get("/subscription/check/:paymentId", subHandler.Check)
	protected.Get("/subscription/receipt/:invoiceId", subHandler.Receipt)

	// Companies (protegido: solo lecturas de la empresa del token)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/me", companyHandler.Me)
	companies.Get("/me/invoices", companyHandler.ListInvoices)
}
