package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conversahub/billing-api/internal/domain/entity"
	"github.com/conversahub/billing-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL
// (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	query := `
		INSERT INTO companies (id, name, email, document, phone, plan_id, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Email, company.Document,
		nullIfEmpty(company.Phone), company.PlanID, company.DueDate, company.Status,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("company email already exists: %w", err)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id, name, email, document, COALESCE(phone, ''), plan_id, due_date, status, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Document, &c.Phone, &c.PlanID,
		&c.DueDate, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza una empresa existente (todos los campos editables).
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, email = $3, document = $4, phone = $5, plan_id = $6, status = $7, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Email, company.Document,
		nullIfEmpty(company.Phone), company.PlanID, company.Status,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// UpdateDueDate persiste solo la fecha de vencimiento (update parcial del
// camino de confirmación de pago).
func (r *CompanyRepo) UpdateDueDate(ctx context.Context, id string, dueDate time.Time) error {
	query := `UPDATE companies SET due_date = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, dueDate)
	if err != nil {
		return fmt.Errorf("update company due_date: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update company due_date: empresa %s no existe", id)
	}
	return nil
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT id, name, email, document, COALESCE(phone, ''), plan_id, due_date, status, created_at, updated_at
		FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Document, &c.Phone, &c.PlanID, &c.DueDate, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
