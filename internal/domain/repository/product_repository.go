package repository

import (
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository persistence port for Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// AdjustStock adds delta to the product's stock counter and fails the
	// enclosing transaction when the result would go negative.
	AdjustStock(id string, delta decimal.Decimal) error
}
