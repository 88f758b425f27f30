package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// DocumentFilter predicados opcionales para listar facturas de venta o de
// proveedor. CompanyID es obligatorio; CounterpartyID referencia al cliente
// o proveedor según el repositorio.
type DocumentFilter struct {
	CompanyID      string
	CounterpartyID string
	Status         string
	StartDate      time.Time
	EndDate        time.Time
}

// DocumentSummary agregados sobre el conjunto filtrado completo,
// independiente de la paginación. Cero filas => todos los montos en cero.
type DocumentSummary struct {
	Total       decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
	Count       int64
}

// InvoiceWithCustomer fila de listado: cabecera más nombre del cliente
// (LEFT JOIN: cliente ausente => nombre vacío, la fila se conserva).
type InvoiceWithCustomer struct {
	Invoice      entity.Invoice
	CustomerName string
}

// InvoiceRepository persistencia de facturas de venta y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	List(ctx context.Context, filter DocumentFilter, limit, offset int) ([]*InvoiceWithCustomer, error)
	Summarize(ctx context.Context, filter DocumentFilter) (*DocumentSummary, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
}
