package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la empresa (cuentas por cobrar).
type Customer struct {
	ID           string
	CompanyID    string
	Name         string
	TaxID        string // NIT o Cédula (Colombia)
	Email        string
	Phone        string
	Address      string
	CreditLimit  decimal.Decimal
	PaymentTerms int // días de plazo de pago
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
