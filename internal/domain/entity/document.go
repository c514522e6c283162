package entity

import (
	"time"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Document is the header of any business document: sale, purchase, quotation,
// return, voucher, salary run or balance transfer. One shape per kind, all
// structurally identical; ledger.Kind selects the total formula.
type Document struct {
	ID            string
	CompanyID     string
	Kind          ledger.Kind
	Number        string
	Date          time.Time
	PartyID       string // customer, supplier or employee depending on kind
	AccountID     string // settlement account for payments/transfers
	Subtotal      decimal.Decimal
	DiscountType  ledger.DiscountType
	DiscountValue decimal.Decimal
	Discount      decimal.Decimal
	TaxRate       decimal.Decimal
	Tax           decimal.Decimal
	BasePay       decimal.Decimal // salary only
	Overtime      decimal.Decimal // salary only
	Deductions    decimal.Decimal // salary only
	Total         decimal.Decimal
	Paid          decimal.Decimal
	Due           decimal.Decimal
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DocumentLine is one persisted row of a document. Position keeps the
// on-screen insertion order stable across reads.
type DocumentLine struct {
	ID          string
	DocumentID  string
	ReferenceID string
	Group       ledger.Group
	Position    int
	Quantity    decimal.Decimal
	UnitAmount  decimal.Decimal
	LineTotal   decimal.Decimal
}

// Payment records money applied to a document against an account. The initial
// paid amount and every later adjustment each get their own row.
type Payment struct {
	ID         string
	DocumentID string
	AccountID  string
	Amount     decimal.Decimal
	Date       time.Time
	Note       string
	CreatedAt  time.Time
}
