package repository

import (
	"context"
	"time"

	"github.com/conversahub/billing-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas de suscripción.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
	// MarkPaidIfPending ejecuta la transición pending → paid como compare-and-set:
	// solo escribe si la factura aún no está en paid. Devuelve false si otra
	// confirmación concurrente ganó la carrera (o la factura ya estaba paga).
	MarkPaidIfPending(ctx context.Context, id int64, paidAt time.Time, gatewayStatus string) (bool, error)
}
