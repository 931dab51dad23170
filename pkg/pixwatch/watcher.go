// Package pixwatch hace polling del estado de un pago Pix contra la API hasta
// llegar a un estado terminal. Lo usa el binario cmd/pixwatch para operar
// confirmaciones desde la terminal cuando el webhook del gateway no llega.
package pixwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/pkg/logger"
)

// State estado del watcher.
type State string

const (
	StateChecking   State = "checking"
	StateConfirmed  State = "confirmed"
	StateExpired    State = "expired"
	StateAuthFailed State = "auth-failed"
)

// Valores por defecto del ciclo de polling.
const (
	DefaultInterval    = 5 * time.Second
	DefaultMaxAttempts = 120
)

// Config parámetros del watcher.
type Config struct {
	BaseURL   string // ej. http://localhost:8080
	Token     string // Bearer token de la empresa
	PaymentID string

	Interval    time.Duration // 0 → DefaultInterval
	MaxAttempts int           // 0 → DefaultMaxAttempts

	HTTPClient *http.Client // nil → http.DefaultClient
	Log        *logger.Logger
}

// Result resultado final del ciclo.
type Result struct {
	State    State
	Status   string // último status reportado por el gateway
	Attempts int
	Company  *dto.CompanyResponse // presente solo en StateConfirmed
}

// estados del gateway que nunca van a aprobar: se corta el ciclo.
func isTerminalGatewayStatus(status string) bool {
	switch status {
	case "cancelled", "rejected", "expired":
		return true
	}
	return false
}

// Watch consulta el estado del pago de inmediato y luego a intervalo fijo,
// hasta confirmar, agotar los intentos (los ciclos con error cuentan) o
// cancelar el contexto. Un 401 de la API es terminal: reintentar con el mismo
// token no va a mejorar.
func Watch(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	url := fmt.Sprintf("%s/api/subscription/check/%s",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.PaymentID)

	result := &Result{State: StateChecking}
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result.Attempts = attempt

		state, out, err := check(ctx, client, url, cfg.Token)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			// El error de red cuenta como intento: un backend caído no debe
			// dejar el watcher corriendo para siempre.
			log.Warn().Err(err).Int("attempt", attempt).Msg("pixwatch: consulta falló")
		} else {
			result.Status = out.Status
			switch {
			case state == StateAuthFailed:
				result.State = StateAuthFailed
				return result, nil
			case out.Success:
				result.State = StateConfirmed
				result.Company = out.Company
				log.Info().Int("attempt", attempt).Msg("pixwatch: pago confirmado")
				return result, nil
			case isTerminalGatewayStatus(out.Status):
				result.State = StateExpired
				log.Info().Str("status", out.Status).Msg("pixwatch: el pago no va a aprobar")
				return result, nil
			}
			log.Debug().Int("attempt", attempt).Str("status", out.Status).Msg("pixwatch: aún pendiente")
		}

		if attempt == cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-ticker.C:
		}
	}

	result.State = StateExpired
	log.Info().Int("attempts", result.Attempts).Msg("pixwatch: intentos agotados, se asume QR expirado")
	return result, nil
}

// check hace una consulta. Devuelve StateAuthFailed en 401/403; cualquier otro
// status HTTP no-2xx es un error transitorio.
func check(ctx context.Context, client *http.Client, url, token string) (State, *dto.PaymentStatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StateChecking, nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return StateChecking, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return StateAuthFailed, &dto.PaymentStatusResponse{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return StateChecking, nil, fmt.Errorf("pixwatch: la API respondió %d", resp.StatusCode)
	}

	var out dto.PaymentStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return StateChecking, nil, fmt.Errorf("pixwatch: decodificar respuesta: %w", err)
	}
	return StateChecking, &out, nil
}
