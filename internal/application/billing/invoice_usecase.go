package billing

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

const dateLayout = "2006-01-02"

var validInvoiceStatus = map[string]bool{
	entity.InvoiceStatusDraft:     true,
	entity.InvoiceStatusSent:      true,
	entity.InvoiceStatusPaid:      true,
	entity.InvoiceStatusOverdue:   true,
	entity.InvoiceStatusCancelled: true,
}

// InvoiceUseCase casos de uso de facturas de venta.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
	tx   DocumentTxRunner
	log  *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository, tx DocumentTxRunner, log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, tx: tx, log: log}
}

// Create valida y persiste una factura con sus líneas en una sola
// transacción. Si falla cualquier línea no queda rastro de la cabecera.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID, userID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if req.CustomerID == "" || req.Number == "" {
		return nil, fmt.Errorf("%w: customer_id y number son obligatorios", domain.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: la factura necesita al menos una línea", domain.ErrInvalidInput)
	}
	issueDate, err := time.Parse(dateLayout, req.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: issue_date inválida", domain.ErrInvalidInput)
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date inválida", domain.ErrInvalidInput)
	}

	now := time.Now()
	invoice := &entity.Invoice{
		CompanyID:      companyID,
		CustomerID:     req.CustomerID,
		Number:         req.Number,
		Status:         entity.InvoiceStatusDraft,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Subtotal:       req.Subtotal,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		TotalAmount:    req.TotalAmount,
		Notes:          req.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if !invoice.TotalsConsistent() {
		return nil, fmt.Errorf("%w: total_amount no cuadra con subtotal + impuestos - descuento", domain.ErrInvalidInput)
	}

	err = uc.tx.RunInvoice(ctx, func(txRepo repository.InvoiceRepository) error {
		if err := txRepo.Create(ctx, invoice); err != nil {
			return err
		}
		for i, it := range req.Items {
			item := &entity.InvoiceItem{
				InvoiceID:   invoice.ID,
				Position:    i + 1,
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TaxRate:     it.TaxRate,
				Total:       it.Total,
			}
			if err := txRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", invoice.ID).
		Str("company_id", companyID).
		Int("items", len(req.Items)).
		Msg("factura creada")

	resp := toInvoiceResponse(invoice, "")
	return &resp, nil
}

// List devuelve la página pedida junto con los agregados del conjunto
// filtrado completo. Filtro de listado y de resumen son el mismo: la suma
// no depende de la página que se mire.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, q dto.InvoiceListQuery) (*dto.InvoiceListResponse, error) {
	q.DefaultPage()
	filter, err := documentFilter(companyID, q.CustomerID, q.Status, q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	rows, err := uc.repo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	summary, err := uc.repo.Summarize(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.InvoiceListResponse{
		Data: make([]dto.InvoiceResponse, 0, len(rows)),
		Summary: dto.DocumentSummaryResponse{
			Total:       summary.Total,
			Paid:        summary.Paid,
			Outstanding: summary.Outstanding,
			Count:       summary.Count,
		},
		Meta: dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: summary.Count},
	}
	for _, row := range rows {
		out.Data = append(out.Data, toInvoiceResponse(&row.Invoice, row.CustomerName))
	}
	return out, nil
}

// GetByID devuelve la factura con sus líneas. Fuera de la empresa del
// caller se responde como inexistente.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice, "")
	resp.Items = toItemResponses(items)
	return &resp, nil
}

// Update aplica un patch parcial sobre la factura. paid_at es derivado:
// se estampa en la transición a "paid" y no se acepta del cliente.
func (uc *InvoiceUseCase) Update(ctx context.Context, companyID, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if req.Status != nil {
		if !validInvoiceStatus[*req.Status] {
			return nil, fmt.Errorf("%w: estado de factura desconocido %q", domain.ErrInvalidInput, *req.Status)
		}
		if *req.Status == entity.InvoiceStatusPaid && invoice.Status != entity.InvoiceStatusPaid {
			now := time.Now()
			invoice.PaidAt = &now
		}
		invoice.Status = *req.Status
	}
	if req.AmountPaid != nil {
		if req.AmountPaid.IsNegative() {
			return nil, fmt.Errorf("%w: amount_paid no puede ser negativo", domain.ErrInvalidInput)
		}
		invoice.AmountPaid = *req.AmountPaid
	}
	invoice.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice, "")
	return &resp, nil
}

func toInvoiceResponse(inv *entity.Invoice, customerName string) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:             inv.ID,
		CompanyID:      inv.CompanyID,
		CustomerID:     inv.CustomerID,
		CustomerName:   customerName,
		Number:         inv.Number,
		Status:         inv.Status,
		IssueDate:      inv.IssueDate.Format(dateLayout),
		DueDate:        inv.DueDate.Format(dateLayout),
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		DiscountAmount: inv.DiscountAmount,
		TotalAmount:    inv.TotalAmount,
		AmountPaid:     inv.AmountPaid,
		Notes:          inv.Notes,
	}
	if inv.PaidAt != nil {
		resp.PaidAt = inv.PaidAt.Format(time.RFC3339)
	}
	return resp
}

func toItemResponses(items []*entity.InvoiceItem) []dto.DocumentItemResponse {
	out := make([]dto.DocumentItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.DocumentItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Total:       it.Total,
		})
	}
	return out
}

// documentFilter arma el filtro compartido por List y Summarize.
func documentFilter(companyID, counterpartyID, status, startDate, endDate string) (repository.DocumentFilter, error) {
	filter := repository.DocumentFilter{
		CompanyID:      companyID,
		CounterpartyID: counterpartyID,
		Status:         status,
	}
	var err error
	if startDate != "" {
		if filter.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
			return filter, fmt.Errorf("%w: startDate inválida", domain.ErrInvalidInput)
		}
	}
	if endDate != "" {
		t, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return filter, fmt.Errorf("%w: endDate inválida", domain.ErrInvalidInput)
		}
		// límite superior inclusivo hasta fin de día
		filter.EndDate = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return filter, nil
}
