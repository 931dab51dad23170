package repository

import (
	"context"

	"github.com/conversahub/billing-api/internal/domain/entity"
)

// PlanRepository define el puerto de lectura de planes (solo lectura en este módulo).
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	List(ctx context.Context) ([]*entity.Plan, error)
}
