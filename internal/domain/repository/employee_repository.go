package repository

import "github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"

// EmployeeRepository persistence port for Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error)
	Update(employee *entity.Employee) error
	Delete(id string) error
}
