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

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación de BillRepository (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste la cabecera de la factura de proveedor.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	query := `
		INSERT INTO bills (id, company_id, vendor_id, number, status, issue_date, due_date, subtotal, tax_amount, total_amount, amount_paid, paid_at, approved_by, approved_at, approval_notes, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		bill.ID, bill.CompanyID, bill.VendorID, bill.Number, bill.Status,
		bill.IssueDate, bill.DueDate, bill.Subtotal, bill.TaxAmount, bill.TotalAmount,
		bill.AmountPaid, bill.PaidAt, bill.ApprovedBy, bill.ApprovedAt,
		nullIfEmpty(bill.ApprovalNotes), nullIfEmpty(bill.Notes), bill.CreatedBy,
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bill number already exists: %w", err)
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la factura de proveedor.
func (r *BillRepo) CreateItem(ctx context.Context, item *entity.BillItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO bill_items (id, bill_id, position, description, quantity, unit_price, tax_rate, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.BillID, item.Position, item.Description, item.Quantity,
		item.UnitPrice, item.TaxRate, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert bill item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura de proveedor por ID.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `
		SELECT id, company_id, vendor_id, number, status, issue_date, due_date,
		       subtotal, tax_amount, total_amount, amount_paid, paid_at,
		       approved_by, approved_at, COALESCE(approval_notes, ''), COALESCE(notes, ''),
		       created_by, created_at, updated_at
		FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.CompanyID, &b.VendorID, &b.Number, &b.Status,
		&b.IssueDate, &b.DueDate, &b.Subtotal, &b.TaxAmount, &b.TotalAmount,
		&b.AmountPaid, &b.PaidAt, &b.ApprovedBy, &b.ApprovedAt,
		&b.ApprovalNotes, &b.Notes, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

// GetItems obtiene las líneas de una factura de proveedor ordenadas por
// número de línea (position).
func (r *BillRepo) GetItems(ctx context.Context, billID string) ([]*entity.BillItem, error) {
	query := `
		SELECT id, bill_id, position, description, quantity, unit_price, tax_rate, total
		FROM bill_items WHERE bill_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillItem
	for rows.Next() {
		var it entity.BillItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.Position, &it.Description, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Total); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List devuelve cabeceras con el nombre del proveedor (LEFT JOIN), más
// recientes primero con desempate por id.
func (r *BillRepo) List(ctx context.Context, filter repository.DocumentFilter, limit, offset int) ([]*repository.BillWithVendor, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	b := documentWhere(filter, "b.", "vendor_id")
	query := `
		SELECT b.id, b.company_id, b.vendor_id, b.number, b.status, b.issue_date, b.due_date,
		       b.subtotal, b.tax_amount, b.total_amount, b.amount_paid, b.paid_at,
		       b.approved_by, b.approved_at, COALESCE(b.approval_notes, ''), COALESCE(b.notes, ''),
		       b.created_by, b.created_at, b.updated_at,
		       COALESCE(v.name, '')
		FROM bills b
		LEFT JOIN vendors v ON v.id = b.vendor_id` + b.Clause() +
		fmt.Sprintf(" ORDER BY b.created_at DESC, b.id DESC LIMIT %s OFFSET %s", b.Bind(limit), b.Bind(offset))

	rows, err := r.q.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var list []*repository.BillWithVendor
	for rows.Next() {
		var row repository.BillWithVendor
		bl := &row.Bill
		if err := rows.Scan(
			&bl.ID, &bl.CompanyID, &bl.VendorID, &bl.Number, &bl.Status,
			&bl.IssueDate, &bl.DueDate, &bl.Subtotal, &bl.TaxAmount, &bl.TotalAmount,
			&bl.AmountPaid, &bl.PaidAt, &bl.ApprovedBy, &bl.ApprovedAt,
			&bl.ApprovalNotes, &bl.Notes, &bl.CreatedBy, &bl.CreatedAt, &bl.UpdatedAt,
			&row.VendorName,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Summarize agrega sobre el conjunto filtrado completo (independiente de la
// página). COALESCE garantiza ceros cuando no hay filas.
func (r *BillRepo) Summarize(ctx context.Context, filter repository.DocumentFilter) (*repository.DocumentSummary, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	b := documentWhere(filter, "", "vendor_id")
	query := `
		SELECT COALESCE(SUM(total_amount), 0),
		       COALESCE(SUM(amount_paid), 0),
		       COALESCE(SUM(total_amount - amount_paid), 0),
		       COUNT(*)
		FROM bills` + b.Clause()

	var s repository.DocumentSummary
	if err := r.q.QueryRow(ctx, query, b.Args()...).Scan(&s.Total, &s.Paid, &s.Outstanding, &s.Count); err != nil {
		return nil, fmt.Errorf("summarize bills: %w", err)
	}
	return &s, nil
}

// Update persiste los campos mutables (estado, pagos, aprobación).
func (r *BillRepo) Update(ctx context.Context, bill *entity.Bill) error {
	query := `
		UPDATE bills
		SET status         = $2,
		    amount_paid    = $3,
		    paid_at        = $4,
		    approved_by    = $5,
		    approved_at    = $6,
		    approval_notes = $7,
		    updated_at     = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		bill.ID, bill.Status, bill.AmountPaid, bill.PaidAt,
		bill.ApprovedBy, bill.ApprovedAt, nullIfEmpty(bill.ApprovalNotes),
		bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	return nil
}
