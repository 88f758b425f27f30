package repository

import (
	"context"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// BillWithVendor fila de listado: cabecera más nombre del proveedor.
type BillWithVendor struct {
	Bill       entity.Bill
	VendorName string
}

// BillRepository persistencia de facturas de proveedor y sus líneas.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	CreateItem(ctx context.Context, item *entity.BillItem) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	GetItems(ctx context.Context, billID string) ([]*entity.BillItem, error)
	List(ctx context.Context, filter DocumentFilter, limit, offset int) ([]*BillWithVendor, error)
	Summarize(ctx context.Context, filter DocumentFilter) (*DocumentSummary, error)
	Update(ctx context.Context, bill *entity.Bill) error
}
