package billing_test

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

var errStorage = errors.New("storage caído")

// fakeInvoiceRepo repositorio en memoria con la misma semántica que el
// adaptador PostgreSQL: filtros en conjunción, orden descendente por fecha
// y resumen sobre el conjunto filtrado completo.
type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
	items    []*entity.InvoiceItem

	// failItemAt hace fallar CreateItem en la n-ésima llamada (1-based).
	failItemAt int
	itemCalls  int
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	cp := *inv
	r.invoices = append(r.invoices, &cp)
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	r.itemCalls++
	if r.failItemAt > 0 && r.itemCalls >= r.failItemAt {
		return errStorage
	}
	if item.ID == "" {
		item.ID = strconv.Itoa(len(r.items) + 1)
	}
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, it := range r.items {
		if it.InvoiceID == invoiceID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeInvoiceRepo) filtered(f repository.DocumentFilter) []*entity.Invoice {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID != f.CompanyID {
			continue
		}
		if f.CounterpartyID != "" && inv.CustomerID != f.CounterpartyID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if !f.StartDate.IsZero() && inv.IssueDate.Before(f.StartDate) {
			continue
		}
		if !f.EndDate.IsZero() && inv.IssueDate.After(f.EndDate) {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakeInvoiceRepo) List(_ context.Context, f repository.DocumentFilter, limit, offset int) ([]*repository.InvoiceWithCustomer, error) {
	matched := r.filtered(f)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]*repository.InvoiceWithCustomer, 0, len(matched))
	for _, inv := range matched {
		out = append(out, &repository.InvoiceWithCustomer{Invoice: *inv})
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Summarize(_ context.Context, f repository.DocumentFilter) (*repository.DocumentSummary, error) {
	s := &repository.DocumentSummary{
		Total:       decimal.Zero,
		Paid:        decimal.Zero,
		Outstanding: decimal.Zero,
	}
	for _, inv := range r.filtered(f) {
		s.Total = s.Total.Add(inv.TotalAmount)
		s.Paid = s.Paid.Add(inv.AmountPaid)
		s.Outstanding = s.Outstanding.Add(inv.TotalAmount.Sub(inv.AmountPaid))
		s.Count++
	}
	return s, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	for i, existing := range r.invoices {
		if existing.ID == inv.ID {
			cp := *inv
			r.invoices[i] = &cp
			return nil
		}
	}
	return nil
}

// fakeBillRepo igual que fakeInvoiceRepo para facturas de proveedor.
type fakeBillRepo struct {
	bills []*entity.Bill
	items []*entity.BillItem

	failItemAt int
	itemCalls  int
}

func (r *fakeBillRepo) Create(_ context.Context, b *entity.Bill) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	cp := *b
	r.bills = append(r.bills, &cp)
	return nil
}

func (r *fakeBillRepo) CreateItem(_ context.Context, item *entity.BillItem) error {
	r.itemCalls++
	if r.failItemAt > 0 && r.itemCalls >= r.failItemAt {
		return errStorage
	}
	if item.ID == "" {
		item.ID = strconv.Itoa(len(r.items) + 1)
	}
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	for _, b := range r.bills {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepo) GetItems(_ context.Context, billID string) ([]*entity.BillItem, error) {
	var out []*entity.BillItem
	for _, it := range r.items {
		if it.BillID == billID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeBillRepo) filtered(f repository.DocumentFilter) []*entity.Bill {
	var out []*entity.Bill
	for _, b := range r.bills {
		if b.CompanyID != f.CompanyID {
			continue
		}
		if f.CounterpartyID != "" && b.VendorID != f.CounterpartyID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if !f.StartDate.IsZero() && b.IssueDate.Before(f.StartDate) {
			continue
		}
		if !f.EndDate.IsZero() && b.IssueDate.After(f.EndDate) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakeBillRepo) List(_ context.Context, f repository.DocumentFilter, limit, offset int) ([]*repository.BillWithVendor, error) {
	matched := r.filtered(f)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]*repository.BillWithVendor, 0, len(matched))
	for _, b := range matched {
		out = append(out, &repository.BillWithVendor{Bill: *b})
	}
	return out, nil
}

func (r *fakeBillRepo) Summarize(_ context.Context, f repository.DocumentFilter) (*repository.DocumentSummary, error) {
	s := &repository.DocumentSummary{
		Total:       decimal.Zero,
		Paid:        decimal.Zero,
		Outstanding: decimal.Zero,
	}
	for _, b := range r.filtered(f) {
		s.Total = s.Total.Add(b.TotalAmount)
		s.Paid = s.Paid.Add(b.AmountPaid)
		s.Outstanding = s.Outstanding.Add(b.TotalAmount.Sub(b.AmountPaid))
		s.Count++
	}
	return s, nil
}

func (r *fakeBillRepo) Update(_ context.Context, b *entity.Bill) error {
	for i, existing := range r.bills {
		if existing.ID == b.ID {
			cp := *b
			r.bills[i] = &cp
			return nil
		}
	}
	return nil
}

// fakeTxRunner emula la atomicidad de la transacción: fn opera sobre un
// staging y solo en caso de éxito se publica al repositorio real.
type fakeTxRunner struct {
	invoices *fakeInvoiceRepo
	bills    *fakeBillRepo
}

func (r *fakeTxRunner) RunInvoice(ctx context.Context, fn func(repo repository.InvoiceRepository) error) error {
	staging := &fakeInvoiceRepo{
		invoices:   append([]*entity.Invoice(nil), r.invoices.invoices...),
		items:      append([]*entity.InvoiceItem(nil), r.invoices.items...),
		failItemAt: r.invoices.failItemAt,
		itemCalls:  r.invoices.itemCalls,
	}
	if err := fn(staging); err != nil {
		return err
	}
	r.invoices.invoices = staging.invoices
	r.invoices.items = staging.items
	return nil
}

func (r *fakeTxRunner) RunBill(ctx context.Context, fn func(repo repository.BillRepository) error) error {
	staging := &fakeBillRepo{
		bills:      append([]*entity.Bill(nil), r.bills.bills...),
		items:      append([]*entity.BillItem(nil), r.bills.items...),
		failItemAt: r.bills.failItemAt,
		itemCalls:  r.bills.itemCalls,
	}
	if err := fn(staging); err != nil {
		return err
	}
	r.bills.bills = staging.bills
	r.bills.items = staging.items
	return nil
}
