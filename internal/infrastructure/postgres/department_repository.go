package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo PostgreSQL adapter for the DepartmentRepository port.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository builds the adapter. Pass a pool or a tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

func (r *DepartmentRepo) Create(department *entity.Department) error {
	query := `
		INSERT INTO departments (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		department.ID, department.CompanyID, department.Name, department.CreatedAt, department.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

func (r *DepartmentRepo) GetByID(id string) (*entity.Department, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM departments WHERE id = $1`
	var d entity.Department
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.CompanyID, &d.Name, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

func (r *DepartmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Department, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM departments WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DepartmentRepo) Update(department *entity.Department) error {
	query := `UPDATE departments SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, department.ID, department.Name, department.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

func (r *DepartmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
