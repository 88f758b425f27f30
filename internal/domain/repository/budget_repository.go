package repository

import (
	"context"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// BudgetFilter predicados opcionales para listar presupuestos.
type BudgetFilter struct {
	CompanyID string
	Status    string
}

// BudgetRepository persistencia de presupuestos y sus partidas.
type BudgetRepository interface {
	Create(ctx context.Context, budget *entity.Budget) error
	CreateItem(ctx context.Context, item *entity.BudgetItem) error
	GetByID(ctx context.Context, id string) (*entity.Budget, error)
	GetItems(ctx context.Context, budgetID string) ([]*entity.BudgetItem, error)
	List(ctx context.Context, filter BudgetFilter, limit, offset int) ([]*entity.Budget, error)
}
