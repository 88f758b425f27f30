package party

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

// VendorUseCase casos de uso de proveedores.
type VendorUseCase struct {
	repo repository.VendorRepository
	log  *logger.Logger
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository, log *logger.Logger) *VendorUseCase {
	return &VendorUseCase{repo: repo, log: log}
}

// Create registra un proveedor. El tax_id es único por empresa.
func (uc *VendorUseCase) Create(ctx context.Context, companyID string, req dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if req.Name == "" || req.TaxID == "" {
		return nil, fmt.Errorf("%w: name y tax_id son obligatorios", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, req.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: tax_id %s", domain.ErrDuplicate, req.TaxID)
	}

	now := time.Now()
	vendor := &entity.Vendor{
		CompanyID:    companyID,
		Name:         req.Name,
		TaxID:        req.TaxID,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PaymentTerms: req.PaymentTerms,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	uc.log.Info().Str("vendor_id", vendor.ID).Str("company_id", companyID).Msg("proveedor creado")

	resp := toVendorResponse(vendor)
	return &resp, nil
}

// List devuelve la página de proveedores; active filtra por estado.
func (uc *VendorUseCase) List(ctx context.Context, companyID string, q dto.PartyListQuery) (*dto.VendorListResponse, error) {
	q.DefaultPage()
	filter, err := partyFilter(companyID, q.Active)
	if err != nil {
		return nil, err
	}
	vendors, err := uc.repo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.VendorListResponse{
		Data: make([]dto.VendorResponse, 0, len(vendors)),
		Meta: dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}
	for _, v := range vendors {
		out.Data = append(out.Data, toVendorResponse(v))
	}
	return out, nil
}

// GetByID devuelve el proveedor; fuera de la empresa del caller es inexistente.
func (uc *VendorUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil || vendor.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	resp := toVendorResponse(vendor)
	return &resp, nil
}

// Update aplica un patch parcial. El tax_id no es editable.
func (uc *VendorUseCase) Update(ctx context.Context, companyID, id string, req dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil || vendor.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		vendor.Name = *req.Name
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}
	if req.PaymentTerms != nil {
		vendor.PaymentTerms = *req.PaymentTerms
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	vendor.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	resp := toVendorResponse(vendor)
	return &resp, nil
}

func toVendorResponse(v *entity.Vendor) dto.VendorResponse {
	return dto.VendorResponse{
		ID:           v.ID,
		CompanyID:    v.CompanyID,
		Name:         v.Name,
		TaxID:        v.TaxID,
		Email:        v.Email,
		Phone:        v.Phone,
		Address:      v.Address,
		PaymentTerms: v.PaymentTerms,
		IsActive:     v.IsActive,
	}
}
