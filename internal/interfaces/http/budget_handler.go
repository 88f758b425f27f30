package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	appbudget "github.com/tu-usuario/contable-pro/internal/application/budget"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// BudgetHandler maneja las peticiones HTTP de presupuestos (protegido).
type BudgetHandler struct {
	uc    *appbudget.UseCase
	audit *audit.UseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(uc *appbudget.UseCase, auditUC *audit.UseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc, audit: auditUC}
}

// Create crea un presupuesto con sus partidas de forma atómica.
// POST /api/budgets
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateBudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	budget, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		Action:     entity.AuditActionCreate,
		EntityType: entity.AuditEntityBudget,
		EntityID:   budget.ID,
		IPAddress:  c.IP(),
	})
	return c.Status(fiber.StatusCreated).JSON(budget)
}

// List lista presupuestos de la empresa.
// GET /api/budgets
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.BudgetListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un presupuesto con sus partidas y flags de sobreconsumo.
// GET /api/budgets/:id
func (h *BudgetHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	budget, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(budget)
}
