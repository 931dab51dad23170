package repository

import (
	"context"
	"time"

	"github.com/conversahub/billing-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// UpdateDueDate persiste solo la nueva fecha de vencimiento (update parcial).
	UpdateDueDate(ctx context.Context, id string, dueDate time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
