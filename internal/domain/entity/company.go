package entity

import "time"

// Estados de una Company.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Company representa una organización/tenant del sistema (multi-tenant).
// DueDate es la fecha hasta la cual su suscripción permanece activa;
// solo avanza hacia adelante vía subscription.ExtendDueDate.
type Company struct {
	ID        string
	Name      string
	Email     string
	Document  string // CPF (11 dígitos) o CNPJ, usado como identificación del pagador
	Phone     string
	PlanID    string
	DueDate   time.Time // precisión de día calendario
	Status    string    // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
