package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// GatewayError representa un fallo del gateway de pagos. Conserva el status
// code HTTP que reportó el gateway (500 si no entregó ninguno) para que la
// capa HTTP pueda propagarlo al caller.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

// NewGatewayError construye el error con el status recibido del gateway.
// Si status es 0 se normaliza a 500.
func NewGatewayError(status int, message string, cause error) *GatewayError {
	if status == 0 {
		status = 500
	}
	return &GatewayError{StatusCode: status, Message: message, Err: cause}
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway de pagos: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap expone la causa para errors.Is / errors.As.
func (e *GatewayError) Unwrap() error { return e.Err }
