package mercadopago

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/mperror"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/internal/domain"
	appcfg "github.com/conversahub/billing-api/pkg/config"
	"github.com/conversahub/billing-api/pkg/logger"
)

var _ subscription.PaymentGateway = (*Client)(nil)

// Client adaptador del SDK oficial de Mercado Pago al puerto PaymentGateway.
// Cada llamada lleva su propio timeout; el SDK no impone uno.
type Client struct {
	payments      payment.Client
	timeout       time.Duration
	pixExpiration time.Duration
	log           *logger.Logger
}

// NewClient construye el adaptador a partir de la configuración de la app.
// Falla si el access token no inicializa el SDK.
func NewClient(cfg appcfg.MercadoPagoConfig, log *logger.Logger) (*Client, error) {
	sdkCfg, err := mpconfig.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: inicializar SDK: %w", err)
	}
	return &Client{
		payments:      payment.NewClient(sdkCfg),
		timeout:       cfg.RequestTimeout,
		pixExpiration: cfg.PixExpiration,
		log:           log,
	}, nil
}

// CreatePixPayment crea el cobro Pix en Mercado Pago y devuelve el QR
// (copia-e-cola + imagen base64) junto al ID del pago.
func (c *Client) CreatePixPayment(ctx context.Context, in subscription.CreatePixInput) (*subscription.PixCharge, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	amount, _ := in.Amount.Float64()
	expiresAt := time.Now().Add(c.pixExpiration)
	req := payment.Request{
		TransactionAmount: amount,
		Description:       in.Description,
		PaymentMethodID:   "pix",
		ExternalReference: in.ExternalReference,
		DateOfExpiration:  &expiresAt,
		Payer: &payment.PayerRequest{
			Email:     in.PayerEmail,
			FirstName: in.PayerName,
			Identification: &payment.IdentificationRequest{
				Type:   in.PayerDocumentType,
				Number: in.PayerDocument,
			},
		},
	}

	resp, err := c.payments.Create(ctx, req)
	if err != nil {
		return nil, c.wrapErr("create payment", err)
	}

	c.log.Info().
		Int("payment_id", resp.ID).
		Str("external_reference", resp.ExternalReference).
		Msg("mercadopago: cobro pix creado")

	return toPixCharge(resp), nil
}

// GetPayment consulta el estado actual de un pago.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*subscription.PixCharge, error) {
	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: payment id %q no numérico: %w", paymentID, domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.payments.Get(ctx, id)
	if err != nil {
		return nil, c.wrapErr("get payment", err)
	}
	return toPixCharge(resp), nil
}

// wrapErr traduce errores del SDK a *domain.GatewayError conservando el status
// code del API cuando viene (ej. 400 por payer inválido, 401 por token vencido).
func (c *Client) wrapErr(op string, err error) error {
	var mpErr *mperror.ResponseError
	if errors.As(err, &mpErr) {
		c.log.Error().
			Int("status", mpErr.StatusCode).
			Str("op", op).
			Msg("mercadopago: API rechazó la operación")
		return domain.NewGatewayError(mpErr.StatusCode, mpErr.Message, err)
	}
	c.log.Error().Err(err).Str("op", op).Msg("mercadopago: fallo de transporte")
	return domain.NewGatewayError(0, err.Error(), err)
}

func toPixCharge(resp *payment.Response) *subscription.PixCharge {
	charge := &subscription.PixCharge{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
	}
	charge.QRCode = resp.PointOfInteraction.TransactionData.QRCode
	charge.QRCodeBase64 = resp.PointOfInteraction.TransactionData.QRCodeBase64
	return charge
}
