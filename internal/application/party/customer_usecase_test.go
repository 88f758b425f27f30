package party_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/party"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

type fakeCustomerRepo struct {
	customers []*entity.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := *c
	r.customers = append(r.customers, &cp)
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.CompanyID == companyID && c.TaxID == taxID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, f repository.PartyFilter, limit, offset int) ([]*entity.Customer, error) {
	var matched []*entity.Customer
	for _, c := range r.customers {
		if c.CompanyID != f.CompanyID {
			continue
		}
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		matched = append(matched, c)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	for i, existing := range r.customers {
		if existing.ID == c.ID {
			cp := *c
			r.customers[i] = &cp
			return nil
		}
	}
	return nil
}

func validCustomerRequest() dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{
		Name:         "Acme SAS",
		TaxID:        "900123456-7",
		Email:        "facturas@acme.co",
		CreditLimit:  decimal.RequireFromString("5000000"),
		PaymentTerms: 30,
	}
}

func TestCustomerCreate_NuevoQuedaActivo(t *testing.T) {
	uc := party.NewCustomerUseCase(&fakeCustomerRepo{}, logger.Nop())

	resp, err := uc.Create(context.Background(), "c-1", validCustomerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "900123456-7", resp.TaxID)
}

func TestCustomerCreate_TaxIDDuplicadoEnLaMismaEmpresa(t *testing.T) {
	repo := &fakeCustomerRepo{}
	uc := party.NewCustomerUseCase(repo, logger.Nop())

	_, err := uc.Create(context.Background(), "c-1", validCustomerRequest())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "c-1", validCustomerRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// en otra empresa el mismo tax_id es válido
	_, err = uc.Create(context.Background(), "c-2", validCustomerRequest())
	assert.NoError(t, err)
}

func TestCustomerCreate_SinTaxID(t *testing.T) {
	uc := party.NewCustomerUseCase(&fakeCustomerRepo{}, logger.Nop())

	req := validCustomerRequest()
	req.TaxID = ""

	_, err := uc.Create(context.Background(), "c-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerList_FiltroActive(t *testing.T) {
	repo := &fakeCustomerRepo{}
	uc := party.NewCustomerUseCase(repo, logger.Nop())

	first, err := uc.Create(context.Background(), "c-1", validCustomerRequest())
	require.NoError(t, err)

	req := validCustomerRequest()
	req.TaxID = "800987654-1"
	_, err = uc.Create(context.Background(), "c-1", req)
	require.NoError(t, err)

	inactive := false
	_, err = uc.Update(context.Background(), "c-1", first.ID, dto.UpdateCustomerRequest{IsActive: &inactive})
	require.NoError(t, err)

	out, err := uc.List(context.Background(), "c-1", dto.PartyListQuery{Active: "true"})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "800987654-1", out.Data[0].TaxID)

	all, err := uc.List(context.Background(), "c-1", dto.PartyListQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)
}

func TestCustomerList_ActiveInvalido(t *testing.T) {
	uc := party.NewCustomerUseCase(&fakeCustomerRepo{}, logger.Nop())

	_, err := uc.List(context.Background(), "c-1", dto.PartyListQuery{Active: "yes"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerUpdate_Inexistente(t *testing.T) {
	uc := party.NewCustomerUseCase(&fakeCustomerRepo{}, logger.Nop())

	name := "Nuevo Nombre"
	_, err := uc.Update(context.Background(), "c-1", "no-existe", dto.UpdateCustomerRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUpdate_OtraEmpresaEsNotFound(t *testing.T) {
	repo := &fakeCustomerRepo{}
	uc := party.NewCustomerUseCase(repo, logger.Nop())

	created, err := uc.Create(context.Background(), "c-1", validCustomerRequest())
	require.NoError(t, err)

	name := "Nuevo Nombre"
	_, err = uc.Update(context.Background(), "c-2", created.ID, dto.UpdateCustomerRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUpdate_PatchParcial(t *testing.T) {
	repo := &fakeCustomerRepo{}
	uc := party.NewCustomerUseCase(repo, logger.Nop())

	created, err := uc.Create(context.Background(), "c-1", validCustomerRequest())
	require.NoError(t, err)

	phone := "+57 300 000 0000"
	updated, err := uc.Update(context.Background(), "c-1", created.ID, dto.UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, created.Name, updated.Name, "los campos no enviados no se tocan")
	assert.Equal(t, created.TaxID, updated.TaxID)
}
