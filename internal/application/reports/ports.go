// Package reports computes dashboard aggregates and renders document listings
// as CSV, PDF or XML downloads.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
)

// DocumentReport is the material a renderer turns into a download: the
// filtered rows plus the column sums for the footer.
type DocumentReport struct {
	CompanyName string
	Kind        ledger.Kind
	From        time.Time
	To          time.Time
	GeneratedAt time.Time
	Rows        []*entity.Document
	TotalSum    decimal.Decimal
	PaidSum     decimal.Decimal
	DueSum      decimal.Decimal
}

// Renderer produces one output format of a document report. Implementations
// live in infrastructure (CSV, PDF via maroto, XML via etree).
type Renderer interface {
	Render(ctx context.Context, report *DocumentReport) ([]byte, error)
}
