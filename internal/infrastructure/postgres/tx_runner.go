package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appbudget "github.com/tu-usuario/contable-pro/internal/application/budget"
	"github.com/tu-usuario/contable-pro/internal/application/billing"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

// Ensure TxRunner implements billing.DocumentTxRunner and budget.TxRunner.
var _ billing.DocumentTxRunner = (*TxRunner)(nil)
var _ appbudget.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Garantiza que cabecera y líneas de un documento se insertan de forma
// atómica: un lector concurrente nunca ve la cabecera sin sus líneas.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice inicia una transacción, ejecuta fn con un InvoiceRepository
// atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBill igual que RunInvoice pero con un BillRepository atado a la tx.
func (r *TxRunner) RunBill(ctx context.Context, fn func(billRepo repository.BillRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBillRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBudget inicia una transacción con un BudgetRepository atado a la tx
// (cabecera + partidas en un solo commit).
func (r *TxRunner) RunBudget(ctx context.Context, fn func(budgetRepo repository.BudgetRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBudgetRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
