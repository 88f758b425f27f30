package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/application/billing"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP de facturas de venta (protegido).
type InvoiceHandler struct {
	uc    *billing.InvoiceUseCase
	pdf   *billing.PDFUseCase
	audit *audit.UseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, auditUC *audit.UseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, audit: auditUC}
}

// Create crea una factura con sus líneas de forma atómica.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Create(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionCreate,
		EntityType: entity.AuditEntityInvoice,
		EntityID:   invoice.ID,
		IPAddress:  c.IP(),
	})
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List lista facturas con resumen del conjunto filtrado completo.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.InvoiceListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una factura con sus líneas.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	invoice, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// Update aplica un patch parcial (estado, monto pagado).
// PATCH /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionUpdate,
		EntityType: entity.AuditEntityInvoice,
		EntityID:   invoice.ID,
		IPAddress:  c.IP(),
	})
	return c.JSON(invoice)
}

// PDF descarga la representación imprimible de la factura.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	doc, filename, err := h.pdf.InvoicePDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
