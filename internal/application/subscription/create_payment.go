package subscription

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/internal/domain"
	"github.com/conversahub/billing-api/internal/domain/repository"
	"github.com/conversahub/billing-api/pkg/brdoc"
	"github.com/conversahub/billing-api/pkg/logger"
)

// CreatePixUseCase crea el cobro Pix de una factura pendiente y devuelve el
// QR al caller. No muta la factura: el estado solo cambia en la confirmación.
type CreatePixUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	planRepo    repository.PlanRepository
	gateway     PaymentGateway
	log         *logger.Logger
}

// NewCreatePixUseCase construye el caso de uso inyectando sus dependencias.
func NewCreatePixUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	planRepo repository.PlanRepository,
	gateway PaymentGateway,
	log *logger.Logger,
) *CreatePixUseCase {
	return &CreatePixUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		planRepo:    planRepo,
		gateway:     gateway,
		log:         log,
	}
}

// CreatePixPayment valida la factura y emite un intent de pago en el gateway.
//
// Retorna:
//   - domain.ErrInvalidInput  si falta invoiceId o el valor no es positivo.
//   - domain.ErrNotFound      si factura, empresa o plan no existen.
//   - domain.ErrForbidden     si la factura pertenece a otra empresa.
//   - *domain.GatewayError    si el gateway rechaza la creación.
func (uc *CreatePixUseCase) CreatePixPayment(ctx context.Context, companyID string, in dto.CreateSubscriptionRequest) (*dto.PixPaymentResponse, error) {
	if in.InvoiceID <= 0 {
		uc.log.Warn().Str("company_id", companyID).Msg("crear pix: invoiceId ausente o inválido")
		return nil, domain.ErrInvalidInput
	}

	invoice, err := uc.invoiceRepo.GetByID(ctx, in.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("crear pix: obtener factura: %w", err)
	}
	if invoice == nil {
		uc.log.Warn().Int64("invoice_id", in.InvoiceID).Msg("crear pix: factura no existe")
		return nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		uc.log.Warn().
			Int64("invoice_id", invoice.ID).
			Str("company_id", companyID).
			Str("owner_id", invoice.CompanyID).
			Msg("crear pix: factura de otra empresa")
		return nil, domain.ErrForbidden
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("crear pix: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	plan, err := uc.planRepo.GetByID(ctx, company.PlanID)
	if err != nil {
		return nil, fmt.Errorf("crear pix: obtener plan: %w", err)
	}
	if plan == nil {
		uc.log.Warn().Str("plan_id", company.PlanID).Msg("crear pix: plan no existe")
		return nil, domain.ErrNotFound
	}

	if !invoice.Value.IsPositive() {
		uc.log.Warn().Int64("invoice_id", invoice.ID).Str("value", invoice.Value.String()).
			Msg("crear pix: valor de factura no positivo")
		return nil, domain.ErrInvalidInput
	}

	charge, err := uc.gateway.CreatePixPayment(ctx, CreatePixInput{
		Amount:            invoice.Value,
		Description:       fmt.Sprintf("Fatura #%d - Plano %s", invoice.ID, plan.Name),
		PayerEmail:        company.Email,
		PayerName:         company.Name,
		PayerDocument:     company.Document,
		PayerDocumentType: brdoc.Type(company.Document),
		ExternalReference: strconv.FormatInt(invoice.ID, 10),
	})
	if err != nil {
		var gwErr *domain.GatewayError
		if !errors.As(err, &gwErr) {
			err = domain.NewGatewayError(0, err.Error(), err)
		}
		uc.log.Error().Err(err).Int64("invoice_id", invoice.ID).Msg("crear pix: gateway rechazó la creación")
		return nil, err
	}

	uc.log.Info().
		Str("payment_id", charge.ID).
		Int64("invoice_id", invoice.ID).
		Str("company_id", companyID).
		Msg("crear pix: intent creado")

	value, _ := invoice.Value.Float64()
	return &dto.PixPaymentResponse{
		ID: charge.ID,
		QRCode: dto.QRCodePayload{
			QRCode:          charge.QRCode,
			ImagemQRCode:    charge.QRCodeBase64,
			ImagemQRCodePix: charge.QRCodeBase64,
		},
		Valor:             dto.ValorPayload{Original: value},
		Plano:             plan.Name,
		Cliente:           company.Name,
		Status:            ChargeStatusPending,
		PaymentType:       "pix",
		ExternalReference: charge.ExternalReference,
	}, nil
}
