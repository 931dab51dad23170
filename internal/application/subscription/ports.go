package subscription

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/internal/domain/repository"
)

// GatewayMercadoPago identificador del gateway en la ruta del webhook.
// Callbacks con otro :type se reconocen (ack) pero no se procesan.
const GatewayMercadoPago = "mercadopago"

// Estados de un cobro Pix reportados por el gateway.
const (
	ChargeStatusPending  = "pending"
	ChargeStatusApproved = "approved"
)

// PixCharge es el intent de pago tal como vive en el gateway. Nunca se
// persiste localmente: se reconstruye con GetPayment en cada consulta.
type PixCharge struct {
	ID                string
	Status            string // pending, approved, otros del gateway
	QRCode            string // código copia e cola
	QRCodeBase64      string // imagen del QR en base64
	ExternalReference string // id de la factura, ida y vuelta para correlación
}

// CreatePixInput datos para crear un cobro Pix.
type CreatePixInput struct {
	Amount            decimal.Decimal
	Description       string
	PayerEmail        string
	PayerName         string
	PayerDocument     string // documento crudo tal como está en la Company
	PayerDocumentType string // "CPF" | "CNPJ", ver pkg/brdoc
	ExternalReference string
}

// PaymentGateway puerto hacia el gateway de pagos (MercadoPago en producción,
// fake en tests). El adaptador es responsable de los timeouts por llamada.
type PaymentGateway interface {
	CreatePixPayment(ctx context.Context, in CreatePixInput) (*PixCharge, error)
	GetPayment(ctx context.Context, paymentID string) (*PixCharge, error)
}

// Broadcaster puerto de push realtime hacia los clientes conectados de una
// empresa. Solo el camino webhook emite; el polling nunca.
type Broadcaster interface {
	BroadcastPaymentConcluded(companyID string, company *dto.CompanyResponse)
}

// RenewalTxRunner ejecuta la confirmación (CAS de la factura + avance del
// vencimiento) dentro de una misma transacción.
type RenewalTxRunner interface {
	RunRenewal(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		companyRepo repository.CompanyRepository,
	) error) error
}
