package subscription

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/internal/domain/entity"
	"github.com/conversahub/billing-api/internal/domain/repository"
	"github.com/conversahub/billing-api/internal/domain/subscription"
	"github.com/conversahub/billing-api/pkg/logger"
)

// Acciones de webhook que disparan una consulta de estado al gateway.
const (
	webhookActionCreated = "payment.created"
	webhookActionUpdated = "payment.updated"
)

// ConfirmPaymentUseCase confirma un pago aprobado: marca la factura como paga
// (compare-and-set) y avanza el vencimiento de la empresa, todo en una
// transacción. Es la única implementación del algoritmo; el polling y el
// webhook son adaptadores delgados sobre ella.
type ConfirmPaymentUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	planRepo    repository.PlanRepository
	gateway     PaymentGateway
	tx          RenewalTxRunner
	broadcaster Broadcaster
	log         *logger.Logger
	now         func() time.Time
}

// NewConfirmPaymentUseCase construye el caso de uso.
func NewConfirmPaymentUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	planRepo repository.PlanRepository,
	gateway PaymentGateway,
	tx RenewalTxRunner,
	broadcaster Broadcaster,
	log *logger.Logger,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		planRepo:    planRepo,
		gateway:     gateway,
		tx:          tx,
		broadcaster: broadcaster,
		log:         log,
		now:         time.Now,
	}
}

// WithClock fija el reloj del caso de uso (tests).
func (uc *ConfirmPaymentUseCase) WithClock(now func() time.Time) *ConfirmPaymentUseCase {
	uc.now = now
	return uc
}

// CheckPaymentStatus adaptador del camino de polling (GET /subscription/check/:paymentId).
// Nunca emite eventos realtime: el cliente que pregunta ya recibe la respuesta.
func (uc *ConfirmPaymentUseCase) CheckPaymentStatus(ctx context.Context, paymentID string) (*dto.PaymentStatusResponse, error) {
	return uc.confirm(ctx, paymentID, false)
}

// HandleWebhookEvent adaptador del camino webhook. Filtra el tipo de gateway y
// la acción; cualquier resultado (éxito, evento ajeno, error interno) termina
// en un ack: el handler HTTP siempre responde {ok:true}.
func (uc *ConfirmPaymentUseCase) HandleWebhookEvent(ctx context.Context, gatewayType string, event dto.WebhookEvent) error {
	if gatewayType != GatewayMercadoPago {
		uc.log.Debug().Str("type", gatewayType).Msg("webhook: gateway desconocido, ignorado")
		return nil
	}
	if event.Action != webhookActionCreated && event.Action != webhookActionUpdated {
		uc.log.Debug().Str("action", event.Action).Msg("webhook: acción no manejada")
		return nil
	}
	paymentID := string(event.Data.ID)
	if paymentID == "" {
		uc.log.Warn().Msg("webhook: evento sin data.id")
		return nil
	}

	out, err := uc.confirm(ctx, paymentID, true)
	if err != nil {
		return fmt.Errorf("webhook: confirmar pago %s: %w", paymentID, err)
	}
	uc.log.Info().
		Str("payment_id", paymentID).
		Str("status", out.Status).
		Bool("success", out.Success).
		Msg("webhook: evento procesado")
	return nil
}

// confirm es el algoritmo compartido. notify controla la emisión del evento
// realtime (solo webhook).
func (uc *ConfirmPaymentUseCase) confirm(ctx context.Context, paymentID string, notify bool) (*dto.PaymentStatusResponse, error) {
	charge, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("consultar pago %s: %w", paymentID, err)
	}
	if charge == nil {
		// El gateway no conoce el pago (id inventado o de otra cuenta).
		uc.log.Warn().Str("payment_id", paymentID).Msg("confirmar: pago inexistente en el gateway")
		return &dto.PaymentStatusResponse{Success: false}, nil
	}

	if charge.Status != ChargeStatusApproved {
		return &dto.PaymentStatusResponse{Status: charge.Status, Success: false}, nil
	}

	invoiceID, err := strconv.ParseInt(charge.ExternalReference, 10, 64)
	if err != nil || invoiceID <= 0 {
		uc.log.Warn().Str("payment_id", paymentID).Str("external_reference", charge.ExternalReference).
			Msg("confirmar: external_reference no referencia una factura")
		return &dto.PaymentStatusResponse{Status: charge.Status, Success: false}, nil
	}

	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("confirmar: obtener factura %d: %w", invoiceID, err)
	}
	if invoice == nil {
		uc.log.Warn().Int64("invoice_id", invoiceID).Str("payment_id", paymentID).
			Msg("confirmar: pago aprobado sin factura local")
		return &dto.PaymentStatusResponse{Status: charge.Status, Success: false}, nil
	}

	if invoice.IsPaid() {
		// Idempotencia: una confirmación previa (polling o webhook) ya aplicó
		// la extensión. Se reporta éxito sin tocar el vencimiento.
		company, err := uc.loadCompany(ctx, invoice.CompanyID)
		if err != nil {
			return nil, err
		}
		return &dto.PaymentStatusResponse{
			Status:  charge.Status,
			Success: true,
			Company: company,
			Message: "pago ya procesado anteriormente",
		}, nil
	}

	company, err := uc.companyRepo.GetByID(ctx, invoice.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("confirmar: obtener empresa %s: %w", invoice.CompanyID, err)
	}
	if company == nil {
		uc.log.Error().Str("company_id", invoice.CompanyID).Int64("invoice_id", invoiceID).
			Msg("confirmar: factura sin empresa")
		return &dto.PaymentStatusResponse{Status: charge.Status, Success: false}, nil
	}

	now := uc.now()
	newDueDate := subscription.ExtendDueDate(company.DueDate, now)

	applied := false
	err = uc.tx.RunRenewal(ctx, func(invoiceRepo repository.InvoiceRepository, companyRepo repository.CompanyRepository) error {
		won, err := invoiceRepo.MarkPaidIfPending(ctx, invoice.ID, now, charge.Status)
		if err != nil {
			return err
		}
		if !won {
			// Otra confirmación concurrente ganó el CAS: no se reaplica la extensión.
			return nil
		}
		if err := companyRepo.UpdateDueDate(ctx, company.ID, newDueDate); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("confirmar: transacción de renovación: %w", err)
	}

	// Reload después de escribir: la respuesta y el evento llevan el estado persistido.
	companyOut, err := uc.loadCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}

	if applied {
		uc.log.Info().
			Int64("invoice_id", invoice.ID).
			Str("company_id", company.ID).
			Str("due_date", newDueDate.Format("2006-01-02")).
			Msg("confirmar: suscripción renovada")
		if notify && uc.broadcaster != nil {
			uc.broadcaster.BroadcastPaymentConcluded(company.ID, companyOut)
		}
		return &dto.PaymentStatusResponse{
			Status:  charge.Status,
			Success: true,
			Company: companyOut,
			Message: "pago confirmado, suscripción renovada",
		}, nil
	}

	return &dto.PaymentStatusResponse{
		Status:  charge.Status,
		Success: true,
		Company: companyOut,
		Message: "pago ya procesado anteriormente",
	}, nil
}

// loadCompany recarga la empresa y la proyecta al DTO (incluye nombre del plan).
func (uc *ConfirmPaymentUseCase) loadCompany(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("recargar empresa %s: %w", companyID, err)
	}
	if company == nil {
		return nil, nil
	}
	planName := ""
	if plan, err := uc.planRepo.GetByID(ctx, company.PlanID); err == nil && plan != nil {
		planName = plan.Name
	}
	return toCompanyResponse(company, planName), nil
}

func toCompanyResponse(c *entity.Company, planName string) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Document: c.Document,
		Phone:    c.Phone,
		PlanID:   c.PlanID,
		PlanName: planName,
		DueDate:  c.DueDate.Format("2006-01-02"),
		Status:   c.Status,
	}
}
