package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/contable-pro/internal/application/billing"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newInvoiceUseCase(repo *fakeInvoiceRepo) *billing.InvoiceUseCase {
	tx := &fakeTxRunner{invoices: repo, bills: &fakeBillRepo{}}
	return billing.NewInvoiceUseCase(repo, tx, logger.Nop())
}

func validInvoiceRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID:     "cust-1",
		Number:         "FV-001",
		IssueDate:      "2025-06-01",
		DueDate:        "2025-07-01",
		Subtotal:       dec("100.00"),
		TaxAmount:      dec("19.00"),
		DiscountAmount: dec("9.00"),
		TotalAmount:    dec("110.00"),
		Items: []dto.DocumentItemRequest{
			{Description: "Servicio contable", Quantity: dec("1"), UnitPrice: dec("100.00"), TaxRate: dec("19"), Total: dec("119.00")},
		},
	}
}

func TestInvoiceCreate_PersisteCabeceraYLineas(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	uc := newInvoiceUseCase(repo)

	resp, err := uc.Create(context.Background(), "c-1", "u-1", validInvoiceRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	require.Len(t, repo.invoices, 1)
	require.Len(t, repo.items, 1)
	assert.Equal(t, repo.invoices[0].ID, repo.items[0].InvoiceID)
}

// Las líneas conservan el orden del documento vía position, no vía el
// orden lexicográfico de sus UUID.
func TestInvoiceGetByID_LineasEnOrdenDelDocumento(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	uc := newInvoiceUseCase(repo)

	req := validInvoiceRequest()
	req.Items = []dto.DocumentItemRequest{
		{Description: "Primera", Quantity: dec("1"), UnitPrice: dec("40.00"), TaxRate: dec("19"), Total: dec("47.60")},
		{Description: "Segunda", Quantity: dec("1"), UnitPrice: dec("35.00"), TaxRate: dec("19"), Total: dec("41.65")},
		{Description: "Tercera", Quantity: dec("1"), UnitPrice: dec("25.00"), TaxRate: dec("19"), Total: dec("29.75")},
	}

	resp, err := uc.Create(context.Background(), "c-1", "u-1", req)
	require.NoError(t, err)

	require.Len(t, repo.items, 3)
	for i, it := range repo.items {
		assert.Equal(t, i+1, it.Position, "cada línea lleva su número dentro del documento")
	}

	// aunque el almacenamiento devuelva las filas desordenadas, la lectura
	// respeta position
	repo.items[0], repo.items[2] = repo.items[2], repo.items[0]

	got, err := uc.GetByID(context.Background(), "c-1", resp.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "Primera", got.Items[0].Description)
	assert.Equal(t, "Segunda", got.Items[1].Description)
	assert.Equal(t, "Tercera", got.Items[2].Description)
}

func TestInvoiceCreate_FalloEnLineaNoDejaCabecera(t *testing.T) {
	repo := &fakeInvoiceRepo{failItemAt: 2}
	uc := newInvoiceUseCase(repo)

	req := validInvoiceRequest()
	req.Items = append(req.Items, dto.DocumentItemRequest{
		Description: "Segunda línea", Quantity: dec("2"), UnitPrice: dec("5.00"), TaxRate: dec("0"), Total: dec("10.00"),
	})

	_, err := uc.Create(context.Background(), "c-1", "u-1", req)
	require.Error(t, err)

	assert.Empty(t, repo.invoices, "la cabecera no debe ser visible si falló una línea")
	assert.Empty(t, repo.items)
}

func TestInvoiceCreate_TotalesInconsistentes(t *testing.T) {
	uc := newInvoiceUseCase(&fakeInvoiceRepo{})

	req := validInvoiceRequest()
	req.TotalAmount = dec("999.99")

	_, err := uc.Create(context.Background(), "c-1", "u-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceCreate_SinLineas(t *testing.T) {
	uc := newInvoiceUseCase(&fakeInvoiceRepo{})

	req := validInvoiceRequest()
	req.Items = nil

	_, err := uc.Create(context.Background(), "c-1", "u-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceCreate_FechaInvalida(t *testing.T) {
	uc := newInvoiceUseCase(&fakeInvoiceRepo{})

	req := validInvoiceRequest()
	req.IssueDate = "01/06/2025"

	_, err := uc.Create(context.Background(), "c-1", "u-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func seedInvoices(t *testing.T, uc *billing.InvoiceUseCase, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		req := validInvoiceRequest()
		req.Number = "FV-" + string(rune('1'+i))
		_, err := uc.Create(context.Background(), "c-1", "u-1", req)
		require.NoError(t, err)
	}
}

// El resumen se calcula sobre el conjunto filtrado completo: pedir otra
// página no cambia los agregados.
func TestInvoiceList_ResumenIndependienteDePagina(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	uc := newInvoiceUseCase(repo)
	seedInvoices(t, uc, 5)

	page1, err := uc.List(context.Background(), "c-1", dto.InvoiceListQuery{
		PageRequest: dto.PageRequest{Limit: 2, Offset: 0},
	})
	require.NoError(t, err)
	page2, err := uc.List(context.Background(), "c-1", dto.InvoiceListQuery{
		PageRequest: dto.PageRequest{Limit: 2, Offset: 2},
	})
	require.NoError(t, err)

	assert.Len(t, page1.Data, 2)
	assert.Equal(t, page1.Summary, page2.Summary)
	assert.Equal(t, int64(5), page1.Summary.Count)
	assert.True(t, page1.Summary.Total.Equal(dec("550.00")), "5 x 110.00")
	assert.True(t, page1.Summary.Outstanding.Equal(dec("550.00")), "nada pagado aún")
}

func TestInvoiceList_SinFilasResumenEnCero(t *testing.T) {
	uc := newInvoiceUseCase(&fakeInvoiceRepo{})

	out, err := uc.List(context.Background(), "c-1", dto.InvoiceListQuery{})
	require.NoError(t, err)

	assert.Empty(t, out.Data)
	assert.Equal(t, int64(0), out.Summary.Count)
	assert.True(t, out.Summary.Total.IsZero())
	assert.True(t, out.Summary.Paid.IsZero())
	assert.True(t, out.Summary.Outstanding.IsZero())
}

func TestInvoiceGetByID_OtraEmpresaEsNotFound(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	uc := newInvoiceUseCase(repo)
	resp, err := uc.Create(context.Background(), "c-1", "u-1", validInvoiceRequest())
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "c-2", resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUpdate_Inexistente(t *testing.T) {
	uc := newInvoiceUseCase(&fakeInvoiceRepo{})

	status := entity.InvoiceStatusSent
	_, err := uc.Update(context.Background(), "c-1", "no-existe", dto.UpdateInvoiceRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUpdate_TransicionAPagadaEstampaPaidAt(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	uc := newInvoiceUseCase(repo)
	created, err := uc.Create(context.Background(), "c-1", "u-1", validInvoiceRequest())
	require.NoError(t, err)
	assert.Empty(t, created.PaidAt)

	status := entity.InvoiceStatusPaid
	paid := dec("110.00")
	updated, err := uc.Update(context.Background(), "c-1", created.ID, dto.UpdateInvoiceRequest{
		Status:     &status,
		AmountPaid: &paid,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPaid, updated.Status)
	assert.NotEmpty(t, updated.PaidAt, "paid_at es derivado y se estampa en la transición")
	assert.True(t, updated.AmountPaid.Equal(paid))

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaidAt)
	assert.WithinDuration(t, time.Now(), *stored.PaidAt, time.Minute)
}

func TestInvoiceUpdate_EstadoDesconocido(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	uc := newInvoiceUseCase(repo)
	created, err := uc.Create(context.Background(), "c-1", "u-1", validInvoiceRequest())
	require.NoError(t, err)

	status := "archivada"
	_, err = uc.Update(context.Background(), "c-1", created.ID, dto.UpdateInvoiceRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUpdate_RefrescaUpdatedAt(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	uc := newInvoiceUseCase(repo)
	created, err := uc.Create(context.Background(), "c-1", "u-1", validInvoiceRequest())
	require.NoError(t, err)

	before, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	paid := dec("50.00")
	_, err = uc.Update(context.Background(), "c-1", created.ID, dto.UpdateInvoiceRequest{AmountPaid: &paid})
	require.NoError(t, err)

	after, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}
