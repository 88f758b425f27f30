// Package party casos de uso de terceros: clientes y proveedores.
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

// CustomerUseCase casos de uso de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	log  *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, log: log}
}

// Create registra un cliente. El tax_id es único por empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if req.Name == "" || req.TaxID == "" {
		return nil, fmt.Errorf("%w: name y tax_id son obligatorios", domain.ErrInvalidInput)
	}
	if req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit_limit no puede ser negativo", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, req.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: tax_id %s", domain.ErrDuplicate, req.TaxID)
	}

	now := time.Now()
	customer := &entity.Customer{
		CompanyID:    companyID,
		Name:         req.Name,
		TaxID:        req.TaxID,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		CreditLimit:  req.CreditLimit,
		PaymentTerms: req.PaymentTerms,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	uc.log.Info().Str("customer_id", customer.ID).Str("company_id", companyID).Msg("cliente creado")

	resp := toCustomerResponse(customer)
	return &resp, nil
}

// List devuelve la página de clientes; active filtra por estado.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, q dto.PartyListQuery) (*dto.CustomerListResponse, error) {
	q.DefaultPage()
	filter, err := partyFilter(companyID, q.Active)
	if err != nil {
		return nil, err
	}
	customers, err := uc.repo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Data: make([]dto.CustomerResponse, 0, len(customers)),
		Meta: dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}
	for _, c := range customers {
		out.Data = append(out.Data, toCustomerResponse(c))
	}
	return out, nil
}

// GetByID devuelve el cliente; fuera de la empresa del caller es inexistente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

// Update aplica un patch parcial. El tax_id no es editable.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit_limit no puede ser negativo", domain.ErrInvalidInput)
		}
		customer.CreditLimit = *req.CreditLimit
	}
	if req.PaymentTerms != nil {
		customer.PaymentTerms = *req.PaymentTerms
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:           c.ID,
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		TaxID:        c.TaxID,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		CreditLimit:  c.CreditLimit,
		PaymentTerms: c.PaymentTerms,
		IsActive:     c.IsActive,
	}
}

// partyFilter traduce el parámetro active ("true"/"false"/"") al filtro.
func partyFilter(companyID, active string) (repository.PartyFilter, error) {
	filter := repository.PartyFilter{CompanyID: companyID}
	switch active {
	case "":
	case "true":
		v := true
		filter.IsActive = &v
	case "false":
		v := false
		filter.IsActive = &v
	default:
		return filter, fmt.Errorf("%w: active debe ser true o false", domain.ErrInvalidInput)
	}
	return filter, nil
}
