package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación de VendorRepository (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

const vendorColumns = `id, company_id, name, tax_id, email, phone, address, payment_terms, is_active, created_at, updated_at`

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(
		&v.ID, &v.CompanyID, &v.Name, &v.TaxID, &v.Email, &v.Phone, &v.Address,
		&v.PaymentTerms, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un nuevo proveedor.
func (r *VendorRepo) Create(ctx context.Context, vendor *entity.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		vendor.ID, vendor.CompanyID, vendor.Name, vendor.TaxID, vendor.Email,
		vendor.Phone, vendor.Address, vendor.PaymentTerms, vendor.IsActive,
		vendor.CreatedAt, vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	v, err := scanVendor(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// GetByCompanyAndTaxID obtiene un proveedor por empresa y NIT.
func (r *VendorRepo) GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE company_id = $1 AND tax_id = $2`
	v, err := scanVendor(r.q.QueryRow(ctx, query, companyID, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor by tax_id: %w", err)
	}
	return v, nil
}

// List lista proveedores de la empresa con filtro opcional de activos.
func (r *VendorRepo) List(ctx context.Context, filter repository.PartyFilter, limit, offset int) ([]*entity.Vendor, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	b := &whereBuilder{}
	b.Eq("company_id", filter.CompanyID, true)
	if filter.IsActive != nil {
		b.Eq("is_active", *filter.IsActive, true)
	}
	query := `SELECT ` + vendorColumns + ` FROM vendors` + b.Clause() +
		fmt.Sprintf(" ORDER BY name LIMIT %s OFFSET %s", b.Bind(limit), b.Bind(offset))

	rows, err := r.q.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor.
func (r *VendorRepo) Update(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6,
		    payment_terms = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		vendor.ID, vendor.Name, vendor.TaxID, vendor.Email, vendor.Phone,
		vendor.Address, vendor.PaymentTerms, vendor.IsActive, vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vendor: %w", err)
	}
	return nil
}
