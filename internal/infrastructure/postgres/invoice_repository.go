package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/conversahub/billing-api/internal/domain/entity"
	"github.com/conversahub/billing-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una factura de renovación. El ID lo asigna la secuencia.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (company_id, detail, value, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		invoice.CompanyID, invoice.Detail, invoice.Value, invoice.Status,
		invoice.DueDate, invoice.CreatedAt, invoice.UpdatedAt,
	).Scan(&invoice.ID)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `
		SELECT id, company_id, detail, value, status, due_date,
		       COALESCE(gateway_status, ''), paid_at, created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.Detail, &inv.Value, &inv.Status,
		&inv.DueDate, &inv.GatewayStatus, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// ListByCompany devuelve las facturas de una empresa, pendientes primero.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, company_id, detail, value, status, due_date,
		       COALESCE(gateway_status, ''), paid_at, created_at, updated_at
		FROM invoices
		WHERE company_id = $1
		ORDER BY (status = 'pending') DESC, due_date ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.Detail, &inv.Value, &inv.Status,
			&inv.DueDate, &inv.GatewayStatus, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// MarkPaidIfPending ejecuta la transición pending → paid como compare-and-set:
// el WHERE descarta facturas ya pagas, así dos confirmaciones concurrentes
// (polling + webhook) no aplican la extensión dos veces.
func (r *InvoiceRepo) MarkPaidIfPending(ctx context.Context, id int64, paidAt time.Time, gatewayStatus string) (bool, error) {
	query := `
		UPDATE invoices
		SET status = 'paid', paid_at = $2, gateway_status = $3, updated_at = now()
		WHERE id = $1 AND status <> 'paid'`
	cmd, err := r.q.Exec(ctx, query, id, paidAt, gatewayStatus)
	if err != nil {
		return false, fmt.Errorf("mark invoice paid: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
