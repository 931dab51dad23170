package usecase

import (
	"context"
	"fmt"

	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/internal/domain"
	"github.com/conversahub/billing-api/internal/domain/repository"
)

// CompanyUseCase lecturas de empresa para la pantalla de renovación.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	planRepo    repository.PlanRepository
	invoiceRepo repository.InvoiceRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, planRepo repository.PlanRepository, invoiceRepo repository.InvoiceRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, planRepo: planRepo, invoiceRepo: invoiceRepo}
}

// GetWithPlan devuelve la empresa del token con su plan y vencimiento.
func (uc *CompanyUseCase) GetWithPlan(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	planName := ""
	if plan, err := uc.planRepo.GetByID(ctx, company.PlanID); err == nil && plan != nil {
		planName = plan.Name
	}
	return &dto.CompanyResponse{
		ID:       company.ID,
		Name:     company.Name,
		Email:    company.Email,
		Document: company.Document,
		Phone:    company.Phone,
		PlanID:   company.PlanID,
		PlanName: planName,
		DueDate:  company.DueDate.Format("2006-01-02"),
		Status:   company.Status,
	}, nil
}

// ListInvoices lista las facturas de la empresa (las pendientes van primero en el front).
func (uc *CompanyUseCase) ListInvoices(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, &dto.InvoiceResponse{
			ID:            inv.ID,
			CompanyID:     inv.CompanyID,
			Detail:        inv.Detail,
			Value:         inv.Value,
			Status:        inv.Status,
			DueDate:       inv.DueDate.Format("2006-01-02"),
			GatewayStatus: inv.GatewayStatus,
			PaidAt:        inv.PaidAt,
		})
	}
	return out, nil
}
