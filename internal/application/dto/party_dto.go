package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name         string          `json:"name"`
	TaxID        string          `json:"tax_id"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms int             `json:"payment_terms"`
}

// UpdateCustomerRequest patch parcial para PATCH /api/customers/:id.
type UpdateCustomerRequest struct {
	Name         *string          `json:"name,omitempty"`
	Email        *string          `json:"email,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	CreditLimit  *decimal.Decimal `json:"credit_limit,omitempty"`
	PaymentTerms *int             `json:"payment_terms,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// PartyListQuery filtros de GET /api/customers y /api/vendors.
// active admite "true" o "false"; vacío no restringe.
type PartyListQuery struct {
	PageRequest
	Active string `query:"active"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	Name         string          `json:"name"`
	TaxID        string          `json:"tax_id"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms int             `json:"payment_terms"`
	IsActive     bool            `json:"is_active"`
}

// CreateVendorRequest body para POST /api/vendors.
type CreateVendorRequest struct {
	Name         string `json:"name"`
	TaxID        string `json:"tax_id"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	PaymentTerms int    `json:"payment_terms"`
}

// UpdateVendorRequest patch parcial para PATCH /api/vendors/:id.
type UpdateVendorRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	PaymentTerms *int    `json:"payment_terms,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// VendorResponse proveedor en respuestas.
type VendorResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"`
	TaxID        string `json:"tax_id"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	PaymentTerms int    `json:"payment_terms"`
	IsActive     bool   `json:"is_active"`
}

// CustomerListResponse respuesta de GET /api/customers.
type CustomerListResponse struct {
	Data []CustomerResponse `json:"data"`
	Meta PageResponse       `json:"meta"`
}

// VendorListResponse respuesta de GET /api/vendors.
type VendorListResponse struct {
	Data []VendorResponse `json:"data"`
	Meta PageResponse     `json:"meta"`
}
