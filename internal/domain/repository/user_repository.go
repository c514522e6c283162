package repository

import "github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"

// UserRepository persistence port for User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
}
