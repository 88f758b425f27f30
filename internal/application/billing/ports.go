package billing

import (
	"context"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

// DocumentTxRunner ejecuta callbacks con un repositorio atado a una
// transacción. La creación de cabecera más líneas pasa siempre por aquí:
// o se persiste todo o no se persiste nada.
type DocumentTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
	RunBill(ctx context.Context, fn func(billRepo repository.BillRepository) error) error
}

// PDFGenerator renderiza el PDF de una factura de venta.
type PDFGenerator interface {
	GenerateInvoicePDF(invoice *entity.Invoice, items []*entity.InvoiceItem, customer *entity.Customer) ([]byte, error)
}
