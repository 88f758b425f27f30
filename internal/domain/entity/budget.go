package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Períodos válidos para un presupuesto.
const (
	BudgetPeriodMonthly   = "monthly"
	BudgetPeriodQuarterly = "quarterly"
	BudgetPeriodYearly    = "yearly"
)

// Estados de un presupuesto.
const (
	BudgetStatusActive   = "active"
	BudgetStatusClosed   = "closed"
	BudgetStatusArchived = "archived"
)

// Budget representa un presupuesto por período con sus partidas.
type Budget struct {
	ID             string
	CompanyID      string
	Name           string
	Period         string // monthly, quarterly, yearly
	StartDate      time.Time
	EndDate        time.Time
	TotalAllocated decimal.Decimal
	TotalSpent     decimal.Decimal
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BudgetItem partida de presupuesto por categoría de gasto.
// AlertThreshold es el porcentaje de Allocated a partir del cual se alerta sobreconsumo.
type BudgetItem struct {
	ID             string
	BudgetID       string
	CategoryID     string
	Allocated      decimal.Decimal
	Spent          decimal.Decimal
	AlertThreshold decimal.Decimal // porcentaje, ej. 80
}

// OverThreshold indica si el gasto de la partida superó el umbral de alerta.
func (it *BudgetItem) OverThreshold() bool {
	if !it.Allocated.IsPositive() {
		return false
	}
	limit := it.Allocated.Mul(it.AlertThreshold).Div(decimal.NewFromInt(100))
	return it.Spent.GreaterThanOrEqual(limit)
}
