package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/conversahub/billing-api/internal/domain/entity"
	"github.com/conversahub/billing-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (id, company_id, email, password_hash, name, profile, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.Email, user.PasswordHash,
		user.Name, user.Profile, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user email already exists: %w", err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

const userColumns = `id, company_id, email, password_hash, name, profile, status, created_at, updated_at`

func (r *UserRepo) scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Name, &u.Profile, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindByEmail obtiene un usuario por email (login).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByEmailAndCompany obtiene un usuario por email dentro de una empresa.
func (r *UserRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	return r.scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 AND company_id = $2`, email, companyID))
}
