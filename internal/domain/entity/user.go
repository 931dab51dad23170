package entity

import "time"

// Perfiles válidos para User.
const (
	ProfileAdmin = "admin"
	ProfileUser  = "user"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Profile      string // admin, user
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
