package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/integration"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// Headers de los webhooks entrantes.
const (
	HeaderWebhookSignature = "X-Webhook-Signature"
	HeaderWebhookAlgorithm = "X-Webhook-Algorithm"
	HeaderWebhookEventID   = "X-Webhook-Event-Id"
)

// IntegrationHandler catálogo de integraciones y webhooks entrantes.
// Las rutas /api/integrations van protegidas; el endpoint de webhook es
// público y se autentica por firma HMAC.
type IntegrationHandler struct {
	uc    *integration.UseCase
	audit *audit.UseCase
}

// NewIntegrationHandler construye el handler.
func NewIntegrationHandler(uc *integration.UseCase, auditUC *audit.UseCase) *IntegrationHandler {
	return &IntegrationHandler{uc: uc, audit: auditUC}
}

// List devuelve el catálogo con el estado de conexión de la empresa.
// GET /api/integrations
func (h *IntegrationHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return c.JSON(h.uc.List(c.Context(), companyID))
}

// Configure marca una integración como conectada.
// POST /api/integrations
func (h *IntegrationHandler) Configure(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConfigureIntegrationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Configure(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionConfigure,
		EntityType: entity.AuditEntityIntegration,
		EntityID:   in.Integration,
		IPAddress:  c.IP(),
	})
	return c.JSON(resp)
}

// Sync dispara una sincronización simulada.
// PUT /api/integrations
func (h *IntegrationHandler) Sync(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SyncRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Sync(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionSync,
		EntityType: entity.AuditEntityIntegration,
		EntityID:   in.Integration,
		IPAddress:  c.IP(),
	})
	return c.JSON(resp)
}

// Webhook recibe un evento firmado de un proveedor externo. La firma va
// en X-Webhook-Signature (hex) y el algoritmo opcional en
// X-Webhook-Algorithm (por defecto sha256).
// POST /webhooks/:provider
func (h *IntegrationHandler) Webhook(c *fiber.Ctx) error {
	ack, err := h.uc.HandleWebhook(
		c.Context(),
		c.Params("provider"),
		c.Body(),
		c.Get(HeaderWebhookSignature),
		c.Get(HeaderWebhookAlgorithm),
		c.Get(HeaderWebhookEventID),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ack)
}
