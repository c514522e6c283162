package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item sold and purchased by the company.
// Stock is a product-level counter moved inside document transactions.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // unique per company
	Name        string
	Description string
	Price       decimal.Decimal // sale price, the catalog's canonical unit amount
	Cost        decimal.Decimal // purchase cost
	TaxRate     decimal.Decimal // percent
	Stock       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
