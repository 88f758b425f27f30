package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// AuditHandler consulta, exportación y retención del log de auditoría
// (protegido; la retención exige rol admin).
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List consulta el log con filtros. Con export=csv descarga el conjunto
// filtrado completo como CSV en lugar de la página JSON.
// GET /api/audit-logs
func (h *AuditHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.AuditLogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}

	if c.Query("export") == "csv" {
		return h.exportCSV(c, companyID, q)
	}

	out, err := h.uc.Query(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *AuditHandler) exportCSV(c *fiber.Ctx, companyID string, q dto.AuditLogQuery) error {
	logs, err := h.uc.QueryAll(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, err)
	}
	out, err := audit.ExportCSV(logs)
	if err != nil {
		return respondError(c, err)
	}

	h.uc.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     GetUserID(c),
		Action:     entity.AuditActionExport,
		EntityType: entity.AuditEntityAuditLog,
		EntityID:   "csv",
		IPAddress:  c.IP(),
	})

	filename := fmt.Sprintf("audit-logs-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

// Retention elimina entradas anteriores a beforeDate para la empresa del
// caller. beforeDate es obligatorio: sin él no hay barrido accidental.
// DELETE /api/audit-logs
func (h *AuditHandler) Retention(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	beforeDate := c.Query("beforeDate")
	if beforeDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "beforeDate es obligatorio"})
	}
	before, err := audit.ParseDate(beforeDate, false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "beforeDate inválido"})
	}

	deleted, err := h.uc.RetentionDelete(c.Context(), before, companyID)
	if err != nil {
		return respondError(c, err)
	}

	h.uc.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     GetUserID(c),
		Action:     entity.AuditActionDelete,
		EntityType: entity.AuditEntityAuditLog,
		EntityID:   beforeDate,
		IPAddress:  c.IP(),
	})

	return c.JSON(dto.RetentionResponse{
		Message:      fmt.Sprintf("entradas anteriores a %s eliminadas", beforeDate),
		DeletedCount: deleted,
	})
}
