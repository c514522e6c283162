package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types.
const (
	AccountCash = "cash"
	AccountBank = "bank"
)

// Account is a cash or bank ledger account. Balance moves with payments and
// balance transfers, always inside the document transaction.
type Account struct {
	ID        string
	CompanyID string
	Name      string
	Type      string // cash | bank
	Number    string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
