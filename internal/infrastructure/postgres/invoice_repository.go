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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, company_id, customer_id, number, status, issue_date, due_date, subtotal, tax_amount, discount_amount, total_amount, amount_paid, paid_at, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.Number, invoice.Status,
		invoice.IssueDate, invoice.DueDate, invoice.Subtotal, invoice.TaxAmount,
		invoice.DiscountAmount, invoice.TotalAmount, invoice.AmountPaid, invoice.PaidAt,
		nullIfEmpty(invoice.Notes), invoice.CreatedBy, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la factura.
func (r *InvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, quantity, unit_price, tax_rate, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InvoiceID, item.Position, item.Description, item.Quantity,
		item.UnitPrice, item.TaxRate, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `
		SELECT id, company_id, customer_id, number, status, issue_date, due_date,
		       subtotal, tax_amount, discount_amount, total_amount, amount_paid,
		       paid_at, COALESCE(notes, ''), created_by, created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Status,
		&inv.IssueDate, &inv.DueDate, &inv.Subtotal, &inv.TaxAmount,
		&inv.DiscountAmount, &inv.TotalAmount, &inv.AmountPaid,
		&inv.PaidAt, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItems obtiene las líneas de una factura ordenadas por número de
// línea (position), no por id: los UUID v4 no conservan orden de inserción.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, position, description, quantity, unit_price, tax_rate, total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// documentWhere pliega el filtro de documentos en una cláusula WHERE.
// prefix califica las columnas cuando la consulta lleva JOIN ("i." o vacío).
func documentWhere(f repository.DocumentFilter, prefix, counterpartyCol string) *whereBuilder {
	b := &whereBuilder{}
	b.Eq(prefix+"company_id", f.CompanyID, true)
	b.Eq(prefix+counterpartyCol, f.CounterpartyID, f.CounterpartyID != "")
	b.Eq(prefix+"status", f.Status, f.Status != "")
	b.Gte(prefix+"issue_date", f.StartDate, !f.StartDate.IsZero())
	b.Lte(prefix+"issue_date", f.EndDate, !f.EndDate.IsZero())
	return b
}

// List devuelve cabeceras con el nombre del cliente (LEFT JOIN: cliente
// ausente => nombre vacío, la fila se conserva). Orden: más recientes
// primero, desempate por id para paginación determinista.
func (r *InvoiceRepo) List(ctx context.Context, filter repository.DocumentFilter, limit, offset int) ([]*repository.InvoiceWithCustomer, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	b := documentWhere(filter, "i.", "customer_id")
	query := `
		SELECT i.id, i.company_id, i.customer_id, i.number, i.status, i.issue_date, i.due_date,
		       i.subtotal, i.tax_amount, i.discount_amount, i.total_amount, i.amount_paid,
		       i.paid_at, COALESCE(i.notes, ''), i.created_by, i.created_at, i.updated_at,
		       COALESCE(c.name, '')
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id` + b.Clause() +
		fmt.Sprintf(" ORDER BY i.created_at DESC, i.id DESC LIMIT %s OFFSET %s", b.Bind(limit), b.Bind(offset))

	rows, err := r.q.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*repository.InvoiceWithCustomer
	for rows.Next() {
		var row repository.InvoiceWithCustomer
		inv := &row.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Status,
			&inv.IssueDate, &inv.DueDate, &inv.Subtotal, &inv.TaxAmount,
			&inv.DiscountAmount, &inv.TotalAmount, &inv.AmountPaid,
			&inv.PaidAt, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
			&row.CustomerName,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Summarize calcula los agregados sobre el conjunto filtrado COMPLETO,
// sin limit/offset: el resumen no depende de la página consultada.
// COALESCE garantiza ceros (nunca NULL) cuando no hay filas.
func (r *InvoiceRepo) Summarize(ctx context.Context, filter repository.DocumentFilter) (*repository.DocumentSummary, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	b := documentWhere(filter, "", "customer_id")
	query := `
		SELECT COALESCE(SUM(total_amount), 0),
		       COALESCE(SUM(amount_paid), 0),
		       COALESCE(SUM(total_amount - amount_paid), 0),
		       COUNT(*)
		FROM invoices` + b.Clause()

	var s repository.DocumentSummary
	if err := r.q.QueryRow(ctx, query, b.Args()...).Scan(&s.Total, &s.Paid, &s.Outstanding, &s.Count); err != nil {
		return nil, fmt.Errorf("summarize invoices: %w", err)
	}
	return &s, nil
}

// Update persiste los campos mutables de la cabecera (estado, pagos, notas).
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status      = $2,
		    amount_paid = $3,
		    paid_at     = $4,
		    notes       = $5,
		    updated_at  = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Status, invoice.AmountPaid, invoice.PaidAt,
		nullIfEmpty(invoice.Notes), invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}
