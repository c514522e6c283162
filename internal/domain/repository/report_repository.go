package repository

import (
	"context"
	"time"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// KindTotalsResult raw aggregate per document kind produced by the DB;
// the use case turns it into a DTO.
type KindTotalsResult struct {
	Kind  ledger.Kind
	Count int
	Total decimal.Decimal
	Paid  decimal.Decimal
	Due   decimal.Decimal
}

// ReportRepository read-only aggregate queries for the dashboard. Aggregates
// always come from persisted documents, never from placeholder data.
type ReportRepository interface {
	// GetKindTotals sums total/paid/due per document kind in the date range.
	// Uses COALESCE so empty periods come back as zero rows, not errors.
	GetKindTotals(ctx context.Context, companyID string, from, to time.Time) ([]KindTotalsResult, error)

	// GetAccountBalances returns the summed balance of all accounts.
	GetAccountBalances(ctx context.Context, companyID string) (decimal.Decimal, error)
}
