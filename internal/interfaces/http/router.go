package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/application/auth"
	"github.com/tu-usuario/contable-pro/internal/application/billing"
	appbudget "github.com/tu-usuario/contable-pro/internal/application/budget"
	"github.com/tu-usuario/contable-pro/internal/application/integration"
	"github.com/tu-usuario/contable-pro/internal/application/party"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	InvoiceUC     *billing.InvoiceUseCase
	BillUC        *billing.BillUseCase
	PDFUC         *billing.PDFUseCase
	CustomerUC    *party.CustomerUseCase
	VendorUC      *party.VendorUseCase
	BudgetUC      *appbudget.UseCase
	UserUC        *usecase.UserUseCase
	AuditUC       *audit.UseCase
	IntegrationUC *integration.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhooks entrantes (público; autenticado por firma HMAC)
	integrationHandler := NewIntegrationHandler(deps.IntegrationUC, deps.AuditUC)
	app.Post("/api/integrations/webhook/:provider", integrationHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.AuditUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Bills (protegido; la aprobación pasa por el PATCH)
	bills := protected.Group("/bills")
	billHandler := NewBillHandler(deps.BillUC, deps.AuditUC)
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Patch("/:id", RequireRole(entity.RoleAdmin, entity.RoleContador), billHandler.Update)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.AuditUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Patch("/:id", customerHandler.Update)

	// Vendors (protegido)
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC, deps.AuditUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Patch("/:id", vendorHandler.Update)

	// Budgets (protegido; crear exige admin o contador)
	budgets := protected.Group("/budgets")
	budgetHandler := NewBudgetHandler(deps.BudgetUC, deps.AuditUC)
	budgets.Post("/", RequireRole(entity.RoleAdmin, entity.RoleContador), budgetHandler.Create)
	budgets.Get("/", budgetHandler.List)
	budgets.Get("/:id", budgetHandler.GetByID)

	// Users (protegido, solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC, deps.AuditUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Audit log (protegido; el barrido de retención exige admin)
	auditLogs := protected.Group("/audit-logs")
	auditHandler := NewAuditHandler(deps.AuditUC)
	auditLogs.Get("/", auditHandler.List)
	auditLogs.Delete("/", RequireRole(entity.RoleAdmin), auditHandler.Retention)

	// Integrations (protegido)
	integrations := protected.Group("/integrations")
	integrations.Get("/", integrationHandler.List)
	integrations.Post("/", RequireRole(entity.RoleAdmin), integrationHandler.Configure)
	integrations.Put("/", RequireRole(entity.RoleAdmin, entity.RoleContador), integrationHandler.Sync)
}
