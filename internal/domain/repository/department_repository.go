package repository

import "github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"

// DepartmentRepository persistence port for Department.
type DepartmentRepository interface {
	Create(department *entity.Department) error
	GetByID(id string) (*entity.Department, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Department, error)
	Update(department *entity.Department) error
	Delete(id string) error
}
