package dto

import "github.com/shopspring/decimal"

// DocumentItemRequest línea de factura (venta o proveedor).
type DocumentItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Total       decimal.Decimal `json:"total"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID     string                `json:"customer_id"`
	Number         string                `json:"number"`
	IssueDate      string                `json:"issue_date"` // YYYY-MM-DD
	DueDate        string                `json:"due_date"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	Notes          string                `json:"notes,omitempty"`
	Items          []DocumentItemRequest `json:"items"`
}

// CreateBillRequest body para POST /api/bills.
type CreateBillRequest struct {
	VendorID    string                `json:"vendor_id"`
	Number      string                `json:"number"`
	IssueDate   string                `json:"issue_date"`
	DueDate     string                `json:"due_date"`
	Subtotal    decimal.Decimal       `json:"subtotal"`
	TaxAmount   decimal.Decimal       `json:"tax_amount"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Notes       string                `json:"notes,omitempty"`
	Items       []DocumentItemRequest `json:"items"`
}

// UpdateInvoiceRequest patch parcial para PATCH /api/invoices/:id.
// Campos nil no se tocan. paid_at es derivado: se estampa al pasar a "paid".
type UpdateInvoiceRequest struct {
	Status     *string          `json:"status,omitempty"`
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"`
}

// UpdateBillRequest patch parcial para PATCH /api/bills/:id.
// approved_at es derivado: se estampa al asignar approved_by.
type UpdateBillRequest struct {
	Status        *string          `json:"status,omitempty"`
	AmountPaid    *decimal.Decimal `json:"amount_paid,omitempty"`
	ApprovedBy    *string          `json:"approved_by,omitempty"`
	ApprovalNotes *string          `json:"approval_notes,omitempty"`
}

// InvoiceListQuery filtros de GET /api/invoices.
type InvoiceListQuery struct {
	PageRequest
	CustomerID string `query:"customerId"`
	Status     string `query:"status"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}

// BillListQuery filtros de GET /api/bills.
type BillListQuery struct {
	PageRequest
	VendorID  string `query:"vendorId"`
	Status    string `query:"status"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// DocumentItemResponse línea en respuestas.
type DocumentItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse factura de venta en respuestas (con o sin líneas).
type InvoiceResponse struct {
	ID             string                 `json:"id"`
	CompanyID      string                 `json:"company_id"`
	CustomerID     string                 `json:"customer_id"`
	CustomerName   string                 `json:"customer_name,omitempty"`
	Number         string                 `json:"number"`
	Status         string                 `json:"status"`
	IssueDate      string                 `json:"issue_date"`
	DueDate        string                 `json:"due_date"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	TaxAmount      decimal.Decimal        `json:"tax_amount"`
	DiscountAmount decimal.Decimal        `json:"discount_amount"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	AmountPaid     decimal.Decimal        `json:"amount_paid"`
	PaidAt         string                 `json:"paid_at,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	Items          []DocumentItemResponse `json:"items,omitempty"`
}

// BillResponse factura de proveedor en respuestas.
type BillResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	VendorID      string                 `json:"vendor_id"`
	VendorName    string                 `json:"vendor_name,omitempty"`
	Number        string                 `json:"number"`
	Status        string                 `json:"status"`
	IssueDate     string                 `json:"issue_date"`
	DueDate       string                 `json:"due_date"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	TaxAmount     decimal.Decimal        `json:"tax_amount"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	AmountPaid    decimal.Decimal        `json:"amount_paid"`
	PaidAt        string                 `json:"paid_at,omitempty"`
	ApprovedBy    string                 `json:"approved_by,omitempty"`
	ApprovedAt    string                 `json:"approved_at,omitempty"`
	ApprovalNotes string                 `json:"approval_notes,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	Items         []DocumentItemResponse `json:"items,omitempty"`
}

// DocumentSummaryResponse agregados del conjunto filtrado completo.
// Cero filas => todos los campos en cero, nunca null.
type DocumentSummaryResponse struct {
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Count       int64           `json:"count"`
}

// InvoiceListResponse respuesta de GET /api/invoices.
type InvoiceListResponse struct {
	Data    []InvoiceResponse       `json:"data"`
	Summary DocumentSummaryResponse `json:"summary"`
	Meta    PageResponse            `json:"meta"`
}

// BillListResponse respuesta de GET /api/bills.
type BillListResponse struct {
	Data    []BillResponse          `json:"data"`
	Summary DocumentSummaryResponse `json:"summary"`
	Meta    PageResponse            `json:"meta"`
}
