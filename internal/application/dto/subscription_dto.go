package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest body para POST /subscription.
type CreateSubscriptionRequest struct {
	InvoiceID int64 `json:"invoiceId"`
}

// QRCodePayload código Pix en texto (copia e cola) y su imagen base64.
// La imagen va duplicada bajo dos claves por conveniencia de los clientes
// existentes (contrato heredado del front).
type QRCodePayload struct {
	QRCode          string `json:"qrcode"`
	ImagemQRCode    string `json:"imagemQrcode"`
	ImagemQRCodePix string `json:"imagemQrcodePix"`
}

// ValorPayload monto del cobro.
type ValorPayload struct {
	Original float64 `json:"original"`
}

// PixPaymentResponse respuesta de POST /subscription: intent creado + QR.
type PixPaymentResponse struct {
	ID                string        `json:"id"`
	QRCode            QRCodePayload `json:"qrcode"`
	Valor             ValorPayload  `json:"valor"`
	Plano             string        `json:"plano"`
	Cliente           string        `json:"cliente"`
	Status            string        `json:"status"`
	PaymentType       string        `json:"payment_type"`
	ExternalReference string        `json:"external_reference"`
}

// PaymentStatusResponse respuesta de GET /subscription/check/:paymentId.
type PaymentStatusResponse struct {
	Status  string           `json:"status"`
	Success bool             `json:"success"`
	Company *CompanyResponse `json:"company,omitempty"`
	Message string           `json:"message,omitempty"`
}

// WebhookAck respuesta fija del webhook: siempre {ok:true}, nunca un error,
// para que el gateway no reintente en tormenta.
type WebhookAck struct {
	OK bool `json:"ok"`
}

// FlexibleID acepta el id del evento como string o como número JSON
// (el gateway no es consistente entre versiones de la API).
type FlexibleID string

// UnmarshalJSON acepta "123" y 123 indistintamente.
func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	*f = FlexibleID(strings.Trim(string(b), `"`))
	return nil
}

// WebhookEvent cuerpo del callback POST /subscription/webhook/:type.
type WebhookEvent struct {
	Action string           `json:"action"` // payment.created | payment.updated | otros (ignorados)
	Type   string           `json:"type,omitempty"`
	Data   WebhookEventData `json:"data"`
}

// WebhookEventData referencia al pago dentro del evento.
type WebhookEventData struct {
	ID FlexibleID `json:"id"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID            int64           `json:"id"`
	CompanyID     string          `json:"company_id"`
	Detail        string          `json:"detail"`
	Value         decimal.Decimal `json:"value"`
	Status        string          `json:"status"`
	DueDate       string          `json:"due_date"`
	GatewayStatus string          `json:"gateway_status,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}
