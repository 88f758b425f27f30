package entity

import "time"

// Vendor representa un proveedor de la empresa (cuentas por pagar).
type Vendor struct {
	ID           string
	CompanyID    string
	Name         string
	TaxID        string
	Email        string
	Phone        string
	Address      string
	PaymentTerms int // días de plazo de pago
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
