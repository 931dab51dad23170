// pixwatch hace polling del estado de un pago Pix contra la API hasta que
// confirme, expire o falle la autenticación. Útil en operación cuando el
// webhook del gateway no llega y hay que verificar un pago a mano.
//
// Uso: pixwatch -payment 123456789 -base http://localhost:8080 -token <jwt>
// Exit codes: 0 confirmado, 1 expirado, 2 auth rechazada, 3 cancelado.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/conversahub/billing-api/pkg/logger"
	"github.com/conversahub/billing-api/pkg/pixwatch"
)

func main() {
	var (
		baseURL   = flag.String("base", "http://localhost:8080", "URL base de la API")
		token     = flag.String("token", os.Getenv("BILLING_API_TOKEN"), "Bearer token (o env BILLING_API_TOKEN)")
		paymentID = flag.String("payment", "", "ID del pago en el gateway (obligatorio)")
		interval  = flag.Duration("interval", pixwatch.DefaultInterval, "intervalo entre consultas")
		attempts  = flag.Int("attempts", pixwatch.DefaultMaxAttempts, "máximo de consultas antes de asumir expiración")
	)
	flag.Parse()

	if *paymentID == "" {
		fmt.Fprintln(os.Stderr, "falta -payment")
		flag.Usage()
		os.Exit(3)
	}

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	out, err := pixwatch.Watch(ctx, pixwatch.Config{
		BaseURL:     *baseURL,
		Token:       *token,
		PaymentID:   *paymentID,
		Interval:    *interval,
		MaxAttempts: *attempts,
		Log:         log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "interrumpido tras %d consultas: %v\n", out.Attempts, err)
		os.Exit(3)
	}

	switch out.State {
	case pixwatch.StateConfirmed:
		fmt.Printf("pago %s confirmado en %s (%d consultas)\n", *paymentID, time.Since(start).Round(time.Second), out.Attempts)
		if out.Company != nil {
			fmt.Printf("suscripción de %s válida hasta %s\n", out.Company.Name, out.Company.DueDate)
		}
	case pixwatch.StateAuthFailed:
		fmt.Fprintln(os.Stderr, "la API rechazó el token")
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "pago %s no confirmó (último estado: %q, %d consultas)\n", *paymentID, out.Status, out.Attempts)
		os.Exit(1)
	}
}
