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

var validBillStatus = map[string]bool{
	entity.BillStatusDraft:           true,
	entity.BillStatusPendingApproval: true,
	entity.BillStatusApproved:        true,
	entity.BillStatusPaid:            true,
	entity.BillStatusRejected:        true,
}

// BillUseCase casos de uso de facturas de proveedor, incluido el flujo
// de aprobación.
type BillUseCase struct {
	repo repository.BillRepository
	tx   DocumentTxRunner
	log  *logger.Logger
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(repo repository.BillRepository, tx DocumentTxRunner, log *logger.Logger) *BillUseCase {
	return &BillUseCase{repo: repo, tx: tx, log: log}
}

// Create valida y persiste una factura de proveedor con sus líneas en una
// sola transacción.
func (uc *BillUseCase) Create(ctx context.Context, companyID, userID string, req dto.CreateBillRequest) (*dto.BillResponse, error) {
	if req.VendorID == "" || req.Number == "" {
		return nil, fmt.Errorf("%w: vendor_id y number son obligatorios", domain.ErrInvalidInput)
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
	bill := &entity.Bill{
		CompanyID:   companyID,
		VendorID:    req.VendorID,
		Number:      req.Number,
		Status:      entity.BillStatusDraft,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		Subtotal:    req.Subtotal,
		TaxAmount:   req.TaxAmount,
		TotalAmount: req.TotalAmount,
		Notes:       req.Notes,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !bill.TotalsConsistent() {
		return nil, fmt.Errorf("%w: total_amount no cuadra con subtotal + impuestos", domain.ErrInvalidInput)
	}

	err = uc.tx.RunBill(ctx, func(txRepo repository.BillRepository) error {
		if err := txRepo.Create(ctx, bill); err != nil {
			return err
		}
		for i, it := range req.Items {
			item := &entity.BillItem{
				BillID:      bill.ID,
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
		Str("bill_id", bill.ID).
		Str("company_id", companyID).
		Int("items", len(req.Items)).
		Msg("factura de proveedor creada")

	resp := toBillResponse(bill, "")
	return &resp, nil
}

// List devuelve la página pedida y los agregados del conjunto filtrado
// completo con el mismo filtro.
func (uc *BillUseCase) List(ctx context.Context, companyID string, q dto.BillListQuery) (*dto.BillListResponse, error) {
	q.DefaultPage()
	filter, err := documentFilter(companyID, q.VendorID, q.Status, q.StartDate, q.EndDate)
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

	out := &dto.BillListResponse{
		Data: make([]dto.BillResponse, 0, len(rows)),
		Summary: dto.DocumentSummaryResponse{
			Total:       summary.Total,
			Paid:        summary.Paid,
			Outstanding: summary.Outstanding,
			Count:       summary.Count,
		},
		Meta: dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: summary.Count},
	}
	for _, row := range rows {
		out.Data = append(out.Data, toBillResponse(&row.Bill, row.VendorName))
	}
	return out, nil
}

// GetByID devuelve la factura de proveedor con sus líneas.
func (uc *BillUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.BillResponse, error) {
	bill, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil || bill.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toBillResponse(bill, "")
	resp.Items = toBillItemResponses(items)
	return &resp, nil
}

// Update aplica un patch parcial. approved_at y paid_at son derivados:
// approved_at se estampa al asignar approved_by por primera vez y paid_at
// en la transición a "paid".
func (uc *BillUseCase) Update(ctx context.Context, companyID, id string, req dto.UpdateBillRequest) (*dto.BillResponse, error) {
	bill, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil || bill.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if req.Status != nil {
		if !validBillStatus[*req.Status] {
			return nil, fmt.Errorf("%w: estado de factura desconocido %q", domain.ErrInvalidInput, *req.Status)
		}
		if *req.Status == entity.BillStatusPaid && bill.Status != entity.BillStatusPaid {
			now := time.Now()
			bill.PaidAt = &now
		}
		bill.Status = *req.Status
	}
	if req.AmountPaid != nil {
		if req.AmountPaid.IsNegative() {
			return nil, fmt.Errorf("%w: amount_paid no puede ser negativo", domain.ErrInvalidInput)
		}
		bill.AmountPaid = *req.AmountPaid
	}
	if req.ApprovedBy != nil && *req.ApprovedBy != "" {
		if bill.ApprovedBy == nil || *bill.ApprovedBy != *req.ApprovedBy {
			now := time.Now()
			bill.ApprovedAt = &now
		}
		bill.ApprovedBy = req.ApprovedBy
	}
	if req.ApprovalNotes != nil {
		bill.ApprovalNotes = *req.ApprovalNotes
	}
	bill.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, bill); err != nil {
		return nil, err
	}
	resp := toBillResponse(bill, "")
	return &resp, nil
}

func toBillResponse(b *entity.Bill, vendorName string) dto.BillResponse {
	resp := dto.BillResponse{
		ID:            b.ID,
		CompanyID:     b.CompanyID,
		VendorID:      b.VendorID,
		VendorName:    vendorName,
		Number:        b.Number,
		Status:        b.Status,
		IssueDate:     b.IssueDate.Format(dateLayout),
		DueDate:       b.DueDate.Format(dateLayout),
		Subtotal:      b.Subtotal,
		TaxAmount:     b.TaxAmount,
		TotalAmount:   b.TotalAmount,
		AmountPaid:    b.AmountPaid,
		ApprovalNotes: b.ApprovalNotes,
		Notes:         b.Notes,
	}
	if b.PaidAt != nil {
		resp.PaidAt = b.PaidAt.Format(time.RFC3339)
	}
	if b.ApprovedBy != nil {
		resp.ApprovedBy = *b.ApprovedBy
	}
	if b.ApprovedAt != nil {
		resp.ApprovedAt = b.ApprovedAt.Format(time.RFC3339)
	}
	return resp
}

func toBillItemResponses(items []*entity.BillItem) []dto.DocumentItemResponse {
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
