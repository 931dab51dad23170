package repository

import (
	"context"

	"github.com/conversahub/billing-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
}
