package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/party"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc    *party.CustomerUseCase
	audit *audit.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *party.CustomerUseCase, auditUC *audit.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, audit: auditUC}
}

// Create registra un cliente.
// POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionCreate,
		EntityType: entity.AuditEntityCustomer,
		EntityID:   customer.ID,
		IPAddress:  c.IP(),
	})
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List lista clientes de la empresa.
// GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.PartyListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un cliente.
// GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	customer, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// Update aplica un patch parcial sobre un cliente.
// PATCH /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionUpdate,
		EntityType: entity.AuditEntityCustomer,
		EntityID:   customer.ID,
		IPAddress:  c.IP(),
	})
	return c.JSON(customer)
}
