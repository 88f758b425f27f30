package repository

import (
	"context"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// VendorRepository persistencia de proveedores.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Vendor, error)
	List(ctx context.Context, filter PartyFilter, limit, offset int) ([]*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
}
