// Package subscription contiene la lógica pura de renovación de suscripciones.
// Sin dependencias de infraestructura: funciones sobre time.Time, testeables
// con vectores exactos.
package subscription

import "time"

// RenewalPeriodDays días que agrega cada pago confirmado a la vigencia.
const RenewalPeriodDays = 30

// ExtendDueDate calcula la nueva fecha de vencimiento tras un pago confirmado:
//
//	nueva = max(vencimiento actual, ahora) + 30 días, truncada a día calendario.
//
// Extender desde el vencimiento vigente no castiga la renovación anticipada;
// extender desde hoy evita que cuentas vencidas acumulen deriva de fechas.
func ExtendDueDate(current, now time.Time) time.Time {
	base := current
	if base.Before(now) {
		base = now
	}
	base = base.AddDate(0, 0, RenewalPeriodDays)
	return truncateToDay(base)
}

// truncateToDay descarta la componente horaria conservando la zona.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
