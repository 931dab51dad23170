package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/conversahub/billing-api/internal/domain/subscription"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// ExtendDueDate: nueva fecha = max(vencimiento, ahora) + 30 días, día calendario.
// ──────────────────────────────────────────────────────────────────────────────

// Renovación anticipada: el vencimiento está en el futuro, se extiende desde él.
func TestExtendDueDate_RenovacionAnticipada(t *testing.T) {
	got := subscription.ExtendDueDate(date(2024, time.January, 10), date(2024, time.January, 5))
	assert.Equal(t, date(2024, time.February, 9), got,
		"vencimiento futuro: debe extender desde el vencimiento, no desde hoy")
}

// Cuenta vencida: el vencimiento quedó atrás, se extiende desde hoy.
func TestExtendDueDate_CuentaVencida(t *testing.T) {
	got := subscription.ExtendDueDate(date(2024, time.January, 1), date(2024, time.March, 1))
	assert.Equal(t, date(2024, time.March, 31), got,
		"vencimiento pasado: debe extender desde hoy para evitar deriva")
}

// Pago exactamente el día del vencimiento: ambos caminos coinciden.
func TestExtendDueDate_PagoElMismoDia(t *testing.T) {
	got := subscription.ExtendDueDate(date(2024, time.June, 1), date(2024, time.June, 1))
	assert.Equal(t, date(2024, time.July, 1), got)
}

// La componente horaria se descarta: el resultado siempre es medianoche.
func TestExtendDueDate_TruncaAHoraCero(t *testing.T) {
	current := time.Date(2024, time.June, 1, 17, 45, 12, 0, time.UTC)
	now := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)

	got := subscription.ExtendDueDate(current, now)

	assert.Equal(t, date(2024, time.July, 1), got)
	assert.Zero(t, got.Hour())
	assert.Zero(t, got.Minute())
}

// Cruce de año: 30 días desde mediados de diciembre caen en enero.
func TestExtendDueDate_CruceDeAno(t *testing.T) {
	got := subscription.ExtendDueDate(date(2024, time.December, 15), date(2024, time.December, 1))
	assert.Equal(t, date(2025, time.January, 14), got)
}

// Aplicar dos veces con el mismo "ahora" avanza 60 días en total (30 + 30).
func TestExtendDueDate_Composicion(t *testing.T) {
	now := date(2024, time.May, 1)
	first := subscription.ExtendDueDate(date(2024, time.June, 1), now)
	second := subscription.ExtendDueDate(first, now)
	assert.Equal(t, date(2024, time.July, 31), second)
}
