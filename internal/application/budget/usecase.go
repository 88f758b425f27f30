package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

const dateLayout = "2006-01-02"

var validPeriod = map[string]bool{
	entity.BudgetPeriodMonthly:   true,
	entity.BudgetPeriodQuarterly: true,
	entity.BudgetPeriodYearly:    true,
}

// TxRunner ejecuta un callback con un BudgetRepository atado a una
// transacción. Cabecera y partidas se insertan en un solo commit.
type TxRunner interface {
	RunBudget(ctx context.Context, fn func(budgetRepo repository.BudgetRepository) error) error
}

// UseCase casos de uso de presupuestos.
type UseCase struct {
	repo repository.BudgetRepository
	tx   TxRunner
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.BudgetRepository, tx TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, tx: tx, log: log}
}

// Create valida y persiste el presupuesto con sus partidas de forma
// atómica. TotalAllocated se deriva de la suma de las partidas.
func (uc *UseCase) Create(ctx context.Context, companyID string, req dto.CreateBudgetRequest) (*dto.BudgetResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if !validPeriod[req.Period] {
		return nil, fmt.Errorf("%w: período desconocido %q", domain.ErrInvalidInput, req.Period)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: el presupuesto necesita al menos una partida", domain.ErrInvalidInput)
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date inválida", domain.ErrInvalidInput)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date inválida", domain.ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}

	totalAllocated := decimal.Zero
	for _, it := range req.Items {
		if it.CategoryID == "" {
			return nil, fmt.Errorf("%w: toda partida necesita category_id", domain.ErrInvalidInput)
		}
		if it.Allocated.IsNegative() {
			return nil, fmt.Errorf("%w: allocated no puede ser negativo", domain.ErrInvalidInput)
		}
		totalAllocated = totalAllocated.Add(it.Allocated)
	}

	now := time.Now()
	budget := &entity.Budget{
		CompanyID:      companyID,
		Name:           req.Name,
		Period:         req.Period,
		StartDate:      startDate,
		EndDate:        endDate,
		TotalAllocated: totalAllocated,
		TotalSpent:     decimal.Zero,
		Status:         entity.BudgetStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := make([]*entity.BudgetItem, 0, len(req.Items))
	err = uc.tx.RunBudget(ctx, func(txRepo repository.BudgetRepository) error {
		if err := txRepo.Create(ctx, budget); err != nil {
			return err
		}
		for _, it := range req.Items {
			item := &entity.BudgetItem{
				BudgetID:       budget.ID,
				CategoryID:     it.CategoryID,
				Allocated:      it.Allocated,
				Spent:          decimal.Zero,
				AlertThreshold: it.AlertThreshold,
			}
			if err := txRepo.CreateItem(ctx, item); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("budget_id", budget.ID).
		Str("company_id", companyID).
		Int("items", len(items)).
		Msg("presupuesto creado")

	resp := toBudgetResponse(budget, items)
	return &resp, nil
}

// List devuelve la página de presupuestos sin partidas.
func (uc *UseCase) List(ctx context.Context, companyID string, q dto.BudgetListQuery) (*dto.BudgetListResponse, error) {
	q.DefaultPage()
	filter := repository.BudgetFilter{CompanyID: companyID, Status: q.Status}

	budgets, err := uc.repo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.BudgetListResponse{
		Data: make([]dto.BudgetResponse, 0, len(budgets)),
		Meta: dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}
	for _, b := range budgets {
		out.Data = append(out.Data, toBudgetResponse(b, nil))
	}
	return out, nil
}

// GetByID devuelve el presupuesto con sus partidas y el flag derivado de
// sobreconsumo por partida.
func (uc *UseCase) GetByID(ctx context.Context, companyID, id string) (*dto.BudgetResponse, error) {
	budget, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if budget == nil || budget.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toBudgetResponse(budget, items)
	return &resp, nil
}

func toBudgetResponse(b *entity.Budget, items []*entity.BudgetItem) dto.BudgetResponse {
	resp := dto.BudgetResponse{
		ID:             b.ID,
		CompanyID:      b.CompanyID,
		Name:           b.Name,
		Period:         b.Period,
		StartDate:      b.StartDate.Format(dateLayout),
		EndDate:        b.EndDate.Format(dateLayout),
		TotalAllocated: b.TotalAllocated,
		TotalSpent:     b.TotalSpent,
		Status:         b.Status,
		Items:          make([]dto.BudgetItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.BudgetItemResponse{
			ID:             it.ID,
			CategoryID:     it.CategoryID,
			Allocated:      it.Allocated,
			Spent:          it.Spent,
			AlertThreshold: it.AlertThreshold,
			OverThreshold:  it.OverThreshold(),
		})
	}
	return resp
}
