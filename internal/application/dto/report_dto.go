package dto

import "github.com/shopspring/decimal"

// KindSummary dashboard card for one document kind.
type KindSummary struct {
	Kind  string          `json:"kind"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
	Due   decimal.Decimal `json:"due"`
}

// DashboardResponse summary cards computed from persisted documents.
type DashboardResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Kinds        []KindSummary   `json:"kinds"`
	CashBalance  decimal.Decimal `json:"cash_balance"`
	Receivables  decimal.Decimal `json:"receivables"`
	Payables     decimal.Decimal `json:"payables"`
	SalesTotal   decimal.Decimal `json:"sales_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
}

// CatalogItemResponse one dropdown entry served by GET /api/catalog/:type.
type CatalogItemResponse struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}
