package subscription

import (
	"context"
	"fmt"

	"github.com/conversahub/billing-api/internal/domain"
	"github.com/conversahub/billing-api/internal/domain/entity"
	"github.com/conversahub/billing-api/internal/domain/repository"
)

// ReceiptPDFGenerator puerto hacia el generador del recibo (Maroto en producción).
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, invoice *entity.Invoice, company *entity.Company, plan *entity.Plan) ([]byte, error)
}

// ReceiptUseCase genera el recibo PDF de una factura ya paga.
type ReceiptUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	planRepo    repository.PlanRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	planRepo repository.PlanRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		planRepo:    planRepo,
		generator:   generator,
	}
}

// DownloadReceiptPDF valida propiedad y estado de la factura y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura no pertenece a la empresa del token.
//   - domain.ErrInvalidInput     si la factura aún no está paga.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, companyID string, invoiceID int64) ([]byte, string, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener factura: %w", err)
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	if !invoice.IsPaid() {
		return nil, "", fmt.Errorf("%w: la factura %d aún está %s", domain.ErrInvalidInput, invoice.ID, invoice.Status)
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	plan, err := uc.planRepo.GetByID(ctx, company.PlanID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener plan: %w", err)
	}
	if plan == nil {
		return nil, "", domain.ErrNotFound
	}

	pdf, err := uc.generator.GenerateReceiptPDF(ctx, invoice, company, plan)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("recibo-fatura-%d.pdf", invoice.ID), nil
}
