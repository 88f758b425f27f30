package dto

import "github.com/shopspring/decimal"

// BudgetItemRequest partida para POST /api/budgets.
type BudgetItemRequest struct {
	CategoryID     string          `json:"category_id"`
	Allocated      decimal.Decimal `json:"allocated"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"` // porcentaje, ej. 80
}

// CreateBudgetRequest body para POST /api/budgets.
type CreateBudgetRequest struct {
	Name      string              `json:"name"`
	Period    string              `json:"period"` // monthly, quarterly, yearly
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Items     []BudgetItemRequest `json:"items"`
}

// BudgetListQuery filtros de GET /api/budgets.
type BudgetListQuery struct {
	PageRequest
	Status string `query:"status"`
}

// BudgetItemResponse partida en respuestas. OverThreshold es derivado:
// Spent >= Allocated * AlertThreshold / 100.
type BudgetItemResponse struct {
	ID             string          `json:"id"`
	CategoryID     string          `json:"category_id"`
	Allocated      decimal.Decimal `json:"allocated"`
	Spent          decimal.Decimal `json:"spent"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
	OverThreshold  bool            `json:"over_threshold"`
}

// BudgetResponse presupuesto con partidas.
type BudgetResponse struct {
	ID             string               `json:"id"`
	CompanyID      string               `json:"company_id"`
	Name           string               `json:"name"`
	Period         string               `json:"period"`
	StartDate      string               `json:"start_date"`
	EndDate        string               `json:"end_date"`
	TotalAllocated decimal.Decimal      `json:"total_allocated"`
	TotalSpent     decimal.Decimal      `json:"total_spent"`
	Status         string               `json:"status"`
	Items          []BudgetItemResponse `json:"items"`
}

// BudgetListResponse respuesta de GET /api/budgets.
type BudgetListResponse struct {
	Data []BudgetResponse `json:"data"`
	Meta PageResponse     `json:"meta"`
}
