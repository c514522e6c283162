package repository

import (
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AccountRepository persistence port for cash/bank accounts.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Account, error)
	Update(account *entity.Account) error
	Delete(id string) error
	// AdjustBalance adds delta to the account balance (negative to withdraw).
	AdjustBalance(id string, delta decimal.Decimal) error
}
