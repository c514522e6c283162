package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo read-only aggregate queries for the dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the adapter.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetKindTotals sums count/total/paid/due per document kind in the range.
func (r *ReportRepo) GetKindTotals(ctx context.Context, companyID string, from, to time.Time) ([]repository.KindTotalsResult, error) {
	query := `
		SELECT kind,
			COUNT(*) AS count,
			COALESCE(SUM(total), 0) AS total,
			COALESCE(SUM(paid), 0) AS paid,
			COALESCE(SUM(due), 0) AS due
		FROM documents
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		GROUP BY kind
		ORDER BY kind`
	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("kind totals: %w", err)
	}
	defer rows.Close()

	var out []repository.KindTotalsResult
	for rows.Next() {
		var kt repository.KindTotalsResult
		var kind string
		if err := rows.Scan(&kind, &kt.Count, &kt.Total, &kt.Paid, &kt.Due); err != nil {
			return nil, fmt.Errorf("scan kind totals: %w", err)
		}
		kt.Kind = ledger.Kind(kind)
		out = append(out, kt)
	}
	return out, rows.Err()
}

// GetAccountBalances sums the balances of the company's accounts.
func (r *ReportRepo) GetAccountBalances(ctx context.Context, companyID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE company_id = $1`, companyID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account balances: %w", err)
	}
	return sum, nil
}
