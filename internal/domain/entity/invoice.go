package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura de venta.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice representa la cabecera de una factura de venta (cuenta por cobrar).
// Invariante: TotalAmount == Subtotal + TaxAmount - DiscountAmount.
type Invoice struct {
	ID             string
	CompanyID      string
	CustomerID     string
	Number         string
	Status         string
	IssueDate      time.Time
	DueDate        time.Time
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	AmountPaid     decimal.Decimal
	PaidAt         *time.Time // solo cuando Status pasa a "paid"
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TotalsConsistent verifica el invariante de montos de la cabecera.
func (i *Invoice) TotalsConsistent() bool {
	return i.Subtotal.Add(i.TaxAmount).Sub(i.DiscountAmount).Equal(i.TotalAmount)
}

// InvoiceItem representa una línea de una factura de venta. Position es
// el número de línea dentro del documento, empezando en 1.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Total       decimal.Decimal
}
