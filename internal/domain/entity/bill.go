package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura de proveedor (cuenta por pagar).
const (
	BillStatusDraft           = "draft"
	BillStatusPendingApproval = "pending_approval"
	BillStatusApproved        = "approved"
	BillStatusPaid            = "paid"
	BillStatusRejected        = "rejected"
)

// Bill representa una factura de proveedor. A diferencia de Invoice lleva
// flujo de aprobación: ApprovedAt se estampa cuando se asigna ApprovedBy.
// Invariante: TotalAmount == Subtotal + TaxAmount.
type Bill struct {
	ID            string
	CompanyID     string
	VendorID      string
	Number        string
	Status        string
	IssueDate     time.Time
	DueDate       time.Time
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	PaidAt        *time.Time
	ApprovedBy    *string
	ApprovedAt    *time.Time
	ApprovalNotes string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalsConsistent verifica el invariante de montos de la cabecera.
func (b *Bill) TotalsConsistent() bool {
	return b.Subtotal.Add(b.TaxAmount).Equal(b.TotalAmount)
}

// BillItem representa una línea de una factura de proveedor. Position es
// el número de línea dentro del documento, empezando en 1.
type BillItem struct {
	ID          string
	BillID      string
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Total       decimal.Decimal
}
