package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

// PDFUseCase genera el PDF imprimible de una factura de venta.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	gen       PDFGenerator
	log       *logger.Logger
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoices repository.InvoiceRepository, customers repository.CustomerRepository, gen PDFGenerator, log *logger.Logger) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, customers: customers, gen: gen, log: log}
}

// InvoicePDF renderiza la factura con sus líneas y los datos del cliente.
// Devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *PDFUseCase) InvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil || invoice.CompanyID != companyID {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.invoices.GetItems(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	// cliente ausente no bloquea la generación; el PDF sale sin sus datos
	customer, err := uc.customers.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		uc.log.Warn().Err(err).Str("customer_id", invoice.CustomerID).Msg("cliente no disponible para el PDF")
		customer = nil
	}

	pdf, err := uc.gen.GenerateInvoicePDF(invoice, items, customer)
	if err != nil {
		return nil, "", fmt.Errorf("generate invoice pdf: %w", err)
	}
	return pdf, fmt.Sprintf("invoice-%s.pdf", invoice.Number), nil
}
