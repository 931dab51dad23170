package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de suscripción.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice representa una factura de renovación de suscripción.
// La transición pending → paid ocurre a lo sumo una vez por factura
// (garantizada por compare-and-set en la capa de persistencia).
type Invoice struct {
	ID            int64 // bigserial; viaja como número en el contrato HTTP
	CompanyID     string
	Detail        string
	Value         decimal.Decimal
	Status        string // pending, paid
	DueDate       time.Time
	GatewayStatus string     // último status reportado por el gateway (pending, approved, ...)
	PaidAt        *time.Time // nil mientras no se confirme el pago
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPaid informa si la factura ya fue confirmada.
func (i *Invoice) IsPaid() bool { return i.Status == InvoiceStatusPaid }
