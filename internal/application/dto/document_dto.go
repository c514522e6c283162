package dto

import (
	"github.com/shopspring/decimal"
)

// DocumentLineRequest one form row: catalog reference plus quantity/amount.
// Group is only meaningful for salary documents (earning | deduction).
type DocumentLineRequest struct {
	ReferenceID string          `json:"reference_id" validate:"required"`
	Group       string          `json:"group,omitempty" validate:"omitempty,oneof=earning deduction"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gte=0"`
	UnitAmount  decimal.Decimal `json:"unit_amount" validate:"gte=0"`
}

// CreateDocumentRequest body for POST /api/documents/:kind.
// The whole document graph (header + lines + initial payment) travels in one
// request and commits in one transaction.
type CreateDocumentRequest struct {
	PartyID       string                `json:"party_id" validate:"required"`
	AccountID     string                `json:"account_id,omitempty"`
	Number        string                `json:"number,omitempty"`
	Date          string                `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	DiscountType  string                `json:"discount_type,omitempty" validate:"omitempty,oneof=fixed percent"`
	DiscountValue decimal.Decimal       `json:"discount_value" validate:"gte=0"`
	TaxRate       decimal.Decimal       `json:"tax_rate" validate:"gte=0,lte=100"`
	BasePay       decimal.Decimal       `json:"base_pay" validate:"gte=0"`
	Overtime      decimal.Decimal       `json:"overtime" validate:"gte=0"`
	Paid          decimal.Decimal       `json:"paid_amount" validate:"gte=0"`
	Note          string                `json:"note,omitempty"`
	Lines         []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateDocumentRequest body for PUT /api/documents/:kind/:id.
// PaidAmount is frozen on update; AdjustmentAmount is the incremental payment
// applied by this edit and is folded into the cumulative paid on commit.
type UpdateDocumentRequest struct {
	AccountID        string                 `json:"account_id,omitempty"`
	Date             string                 `json:"date,omitempty"`
	DiscountType     *string                `json:"discount_type,omitempty" validate:"omitempty,oneof=fixed percent"`
	DiscountValue    *decimal.Decimal       `json:"discount_value,omitempty"`
	TaxRate          *decimal.Decimal       `json:"tax_rate,omitempty"`
	BasePay          *decimal.Decimal       `json:"base_pay,omitempty"`
	Overtime         *decimal.Decimal       `json:"overtime,omitempty"`
	AdjustmentAmount decimal.Decimal        `json:"adjustment_amount" validate:"gte=0"`
	Note             *string                `json:"note,omitempty"`
	Lines            []DocumentLineRequest  `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
}

// DocumentLineResponse persisted line in responses.
type DocumentLineResponse struct {
	ID          string          `json:"id"`
	ReferenceID string          `json:"reference_id"`
	Group       string          `json:"group,omitempty"`
	Position    int             `json:"position"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitAmount  decimal.Decimal `json:"unit_amount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PaymentResponse one payment row of a document.
type PaymentResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Note      string          `json:"note,omitempty"`
}

// DocumentResponse full document with derived totals.
type DocumentResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	Kind          string                 `json:"kind"`
	Number        string                 `json:"number"`
	Date          string                 `json:"date"`
	PartyID       string                 `json:"party_id"`
	PartyName     string                 `json:"party_name,omitempty"`
	AccountID     string                 `json:"account_id,omitempty"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	DiscountType  string                 `json:"discount_type,omitempty"`
	DiscountValue decimal.Decimal        `json:"discount_value"`
	Discount      decimal.Decimal        `json:"discount_amount"`
	TaxRate       decimal.Decimal        `json:"tax_rate"`
	Tax           decimal.Decimal        `json:"tax_amount"`
	BasePay       decimal.Decimal        `json:"base_pay,omitempty"`
	Overtime      decimal.Decimal        `json:"overtime,omitempty"`
	Deductions    decimal.Decimal        `json:"deductions,omitempty"`
	Total         decimal.Decimal        `json:"total"`
	Paid          decimal.Decimal        `json:"paid_amount"`
	Due           decimal.Decimal        `json:"due_amount"`
	Note          string                 `json:"note,omitempty"`
	Lines         []DocumentLineResponse `json:"lines"`
	Payments      []PaymentResponse      `json:"payments,omitempty"`
}

// DocumentListResponse paged document listing.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
