package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsub "github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/internal/domain"
	"github.com/conversahub/billing-api/internal/domain/entity"
)

func paidInvoice(id int64) *entity.Invoice {
	inv := testInvoice(id, "49.90")
	inv.Status = entity.InvoiceStatusPaid
	paidAt := time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)
	inv.PaidAt = &paidAt
	return inv
}

func buildReceiptUC(invoices *fakeInvoiceRepo, companies *fakeCompanyRepo, plans *fakePlanRepo) *appsub.ReceiptUseCase {
	return appsub.NewReceiptUseCase(invoices, companies, plans, fakeReceiptGen{})
}

func TestDownloadReceiptPDF_FacturaPaga_DevuelvePDFYNombre(t *testing.T) {
	uc := buildReceiptUC(
		newFakeInvoiceRepo(paidInvoice(7)),
		newFakeCompanyRepo(testCompany(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))),
		newFakePlanRepo(testPlan()),
	)

	pdf, filename, err := uc.DownloadReceiptPDF(context.Background(), testCompanyID, 7)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Equal(t, "recibo-fatura-7.pdf", filename)
}

func TestDownloadReceiptPDF_FacturaInexistente_NotFound(t *testing.T) {
	uc := buildReceiptUC(newFakeInvoiceRepo(), newFakeCompanyRepo(), newFakePlanRepo())

	_, _, err := uc.DownloadReceiptPDF(context.Background(), testCompanyID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadReceiptPDF_FacturaDeOtraEmpresa_Forbidden(t *testing.T) {
	ajena := paidInvoice(5)
	ajena.CompanyID = "otra-empresa"
	uc := buildReceiptUC(newFakeInvoiceRepo(ajena), newFakeCompanyRepo(), newFakePlanRepo())

	_, _, err := uc.DownloadReceiptPDF(context.Background(), testCompanyID, 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDownloadReceiptPDF_FacturaPendiente_EntradaInvalida(t *testing.T) {
	uc := buildReceiptUC(
		newFakeInvoiceRepo(testInvoice(3, "49.90")), // aún pendiente
		newFakeCompanyRepo(testCompany(time.Now())),
		newFakePlanRepo(testPlan()),
	)

	_, _, err := uc.DownloadReceiptPDF(context.Background(), testCompanyID, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Empresa o plan ausentes con la factura paga: NotFound limpio, no un 500.
func TestDownloadReceiptPDF_EmpresaAusente_NotFound(t *testing.T) {
	uc := buildReceiptUC(
		newFakeInvoiceRepo(paidInvoice(7)),
		newFakeCompanyRepo(), // sin empresas
		newFakePlanRepo(testPlan()),
	)

	_, _, err := uc.DownloadReceiptPDF(context.Background(), testCompanyID, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadReceiptPDF_PlanAusente_NotFound(t *testing.T) {
	uc := buildReceiptUC(
		newFakeInvoiceRepo(paidInvoice(7)),
		newFakeCompanyRepo(testCompany(time.Now())),
		newFakePlanRepo(), // sin planes
	)

	_, _, err := uc.DownloadReceiptPDF(context.Background(), testCompanyID, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
