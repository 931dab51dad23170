package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/internal/domain/repository"
)

var _ subscription.RenewalTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRenewal inicia una transacción, ejecuta fn con repos atados a la tx y
// hace Commit o Rollback. El marcado de la factura y la extensión del
// vencimiento quedan así en una unidad atómica.
func (r *TxRunner) RunRenewal(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx), NewCompanyRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
