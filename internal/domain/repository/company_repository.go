package repository

import "github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"

// CompanyRepository persistence port for Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
	Delete(id string) error
}
