package repository

import (
	"context"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// PartyFilter predicados opcionales para listar clientes o proveedores.
// IsActive nil no restringe.
type PartyFilter struct {
	CompanyID string
	IsActive  *bool
}

// CustomerRepository persistencia de clientes.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Customer, error)
	List(ctx context.Context, filter PartyFilter, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
}
