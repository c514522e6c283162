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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo PostgreSQL adapter for the EmployeeRepository port.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository builds the adapter. Pass a pool or a tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, company_id, department_id, name, email, phone, designation, base_pay, created_at, updated_at`

func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, company_id, department_id, name, email, phone, designation, base_pay, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.CompanyID, nullable(employee.DepartmentID), employee.Name,
		employee.Email, employee.Phone, employee.Designation, employee.BasePay,
		employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	var e entity.Employee
	var departmentID *string
	err := r.q.QueryRow(context.Background(),
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id).Scan(
		&e.ID, &e.CompanyID, &departmentID, &e.Name, &e.Email, &e.Phone,
		&e.Designation, &e.BasePay, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if departmentID != nil {
		e.DepartmentID = *departmentID
	}
	return &e, nil
}

func (r *EmployeeRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		var departmentID *string
		if err := rows.Scan(&e.ID, &e.CompanyID, &departmentID, &e.Name, &e.Email, &e.Phone,
			&e.Designation, &e.BasePay, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		if departmentID != nil {
			e.DepartmentID = *departmentID
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees SET department_id = $2, name = $3, email = $4, phone = $5, designation = $6, base_pay = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, nullable(employee.DepartmentID), employee.Name, employee.Email,
		employee.Phone, employee.Designation, employee.BasePay, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
