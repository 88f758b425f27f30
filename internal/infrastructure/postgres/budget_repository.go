package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo implementación de BudgetRepository (usable con pool o tx).
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

// Create persiste la cabecera del presupuesto.
func (r *BudgetRepo) Create(ctx context.Context, budget *entity.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	query := `
		INSERT INTO budgets (id, company_id, name, period, start_date, end_date, total_allocated, total_spent, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		budget.ID, budget.CompanyID, budget.Name, budget.Period,
		budget.StartDate, budget.EndDate, budget.TotalAllocated, budget.TotalSpent,
		budget.Status, budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// CreateItem persiste una partida del presupuesto.
func (r *BudgetRepo) CreateItem(ctx context.Context, item *entity.BudgetItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO budget_items (id, budget_id, category_id, allocated, spent, alert_threshold)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.BudgetID, item.CategoryID, item.Allocated, item.Spent, item.AlertThreshold,
	)
	if err != nil {
		return fmt.Errorf("insert budget item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un presupuesto por ID.
func (r *BudgetRepo) GetByID(ctx context.Context, id string) (*entity.Budget, error) {
	query := `
		SELECT id, company_id, name, period, start_date, end_date,
		       total_allocated, total_spent, status, created_at, updated_at
		FROM budgets WHERE id = $1`
	var b entity.Budget
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.CompanyID, &b.Name, &b.Period, &b.StartDate, &b.EndDate,
		&b.TotalAllocated, &b.TotalSpent, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

// GetItems obtiene las partidas de un presupuesto.
func (r *BudgetRepo) GetItems(ctx context.Context, budgetID string) ([]*entity.BudgetItem, error) {
	query := `
		SELECT id, budget_id, category_id, allocated, spent, alert_threshold
		FROM budget_items WHERE budget_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BudgetItem
	for rows.Next() {
		var it entity.BudgetItem
		if err := rows.Scan(&it.ID, &it.BudgetID, &it.CategoryID, &it.Allocated, &it.Spent, &it.AlertThreshold); err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista presupuestos de la empresa, más recientes primero.
func (r *BudgetRepo) List(ctx context.Context, filter repository.BudgetFilter, limit, offset int) ([]*entity.Budget, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	b := &whereBuilder{}
	b.Eq("company_id", filter.CompanyID, true)
	b.Eq("status", filter.Status, filter.Status != "")
	query := `
		SELECT id, company_id, name, period, start_date, end_date,
		       total_allocated, total_spent, status, created_at, updated_at
		FROM budgets` + b.Clause() +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s", b.Bind(limit), b.Bind(offset))

	rows, err := r.q.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Budget
	for rows.Next() {
		var bu entity.Budget
		if err := rows.Scan(
			&bu.ID, &bu.CompanyID, &bu.Name, &bu.Period, &bu.StartDate, &bu.EndDate,
			&bu.TotalAllocated, &bu.TotalSpent, &bu.Status, &bu.CreatedAt, &bu.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		list = append(list, &bu)
	}
	return list, rows.Err()
}
