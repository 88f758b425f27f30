package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/application/billing"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// BillHandler maneja las peticiones HTTP de facturas de proveedor (protegido).
type BillHandler struct {
	uc    *billing.BillUseCase
	audit *audit.UseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.BillUseCase, auditUC *audit.UseCase) *BillHandler {
	return &BillHandler{uc: uc, audit: auditUC}
}

// Create crea una factura de proveedor con sus líneas de forma atómica.
// POST /api/bills
func (h *BillHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	bill, err := h.uc.Create(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionCreate,
		EntityType: entity.AuditEntityBill,
		EntityID:   bill.ID,
		IPAddress:  c.IP(),
	})
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// List lista facturas de proveedor con resumen del conjunto filtrado.
// GET /api/bills
func (h *BillHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.BillListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una factura de proveedor con sus líneas.
// GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	bill, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bill)
}

// Update aplica un patch parcial (estado, pago, aprobación).
// PATCH /api/bills/:id
func (h *BillHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	bill, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionUpdate,
		EntityType: entity.AuditEntityBill,
		EntityID:   bill.ID,
		IPAddress:  c.IP(),
	})
	return c.JSON(bill)
}
