package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan representa un plan de suscripción contratable por una Company.
// En el flujo de renovación es de solo lectura: su nombre va en la
// descripción del pago y su valor en la pantalla de cobro.
type Plan struct {
	ID          string
	Name        string
	Users       int // asientos incluidos
	Connections int // conexiones de WhatsApp incluidas
	Queues      int // filas de atención incluidas
	Value       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
