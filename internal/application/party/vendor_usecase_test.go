package party_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/party"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

type fakeVendorRepo struct {
	vendors []*entity.Vendor
}

func (r *fakeVendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	cp := *v
	r.vendors = append(r.vendors, &cp)
	return nil
}

func (r *fakeVendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	for _, v := range r.vendors {
		if v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVendorRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Vendor, error) {
	for _, v := range r.vendors {
		if v.CompanyID == companyID && v.TaxID == taxID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVendorRepo) List(_ context.Context, f repository.PartyFilter, limit, offset int) ([]*entity.Vendor, error) {
	var matched []*entity.Vendor
	for _, v := range r.vendors {
		if v.CompanyID != f.CompanyID {
			continue
		}
		if f.IsActive != nil && v.IsActive != *f.IsActive {
			continue
		}
		matched = append(matched, v)
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

func (r *fakeVendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	for i, existing := range r.vendors {
		if existing.ID == v.ID {
			cp := *v
			r.vendors[i] = &cp
			return nil
		}
	}
	return nil
}

func validVendorRequest() dto.CreateVendorRequest {
	return dto.CreateVendorRequest{
		Name:         "Suministros del Norte Ltda",
		TaxID:        "830456789-2",
		Email:        "pagos@sumnorte.co",
		PaymentTerms: 45,
	}
}

func TestVendorCreate_NuevoQuedaActivo(t *testing.T) {
	uc := party.NewVendorUseCase(&fakeVendorRepo{}, logger.Nop())

	resp, err := uc.Create(context.Background(), "c-1", validVendorRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 45, resp.PaymentTerms)
}

func TestVendorCreate_TaxIDDuplicado(t *testing.T) {
	repo := &fakeVendorRepo{}
	uc := party.NewVendorUseCase(repo, logger.Nop())

	_, err := uc.Create(context.Background(), "c-1", validVendorRequest())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "c-1", validVendorRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestVendorCreate_SinNombre(t *testing.T) {
	uc := party.NewVendorUseCase(&fakeVendorRepo{}, logger.Nop())

	req := validVendorRequest()
	req.Name = ""

	_, err := uc.Create(context.Background(), "c-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVendorGetByID_OtraEmpresaEsNotFound(t *testing.T) {
	repo := &fakeVendorRepo{}
	uc := party.NewVendorUseCase(repo, logger.Nop())

	created, err := uc.Create(context.Background(), "c-1", validVendorRequest())
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "c-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVendorUpdate_DesactivarYFiltrar(t *testing.T) {
	repo := &fakeVendorRepo{}
	uc := party.NewVendorUseCase(repo, logger.Nop())

	created, err := uc.Create(context.Background(), "c-1", validVendorRequest())
	require.NoError(t, err)

	inactive := false
	updated, err := uc.Update(context.Background(), "c-1", created.ID, dto.UpdateVendorRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	out, err := uc.List(context.Background(), "c-1", dto.PartyListQuery{Active: "true"})
	require.NoError(t, err)
	assert.Empty(t, out.Data)

	out, err = uc.List(context.Background(), "c-1", dto.PartyListQuery{Active: "false"})
	require.NoError(t, err)
	assert.Len(t, out.Data, 1)
}
