package pdf

import (
	"context"
	"testing"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/reports"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
)

// ────────────────────────── header formatting ──────────────────────────

func TestPeriodLabel(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want string
	}{
		{"closed range", from, to, "Period: 01/03/2024 - 31/03/2024"},
		{"open start", time.Time{}, to, "Period: - - 31/03/2024"},
		{"open end", from, time.Time{}, "Period: 01/03/2024 - -"},
		{"no range", time.Time{}, time.Time{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := periodLabel(&reports.DocumentReport{From: tc.from, To: tc.to})
			assert.Equal(t, tc.want, got)
			for _, r := range got {
				assert.True(t, r <= unicode.MaxASCII, "period label must stay ASCII, got %q", got)
			}
		})
	}
}

func TestFormatDate_ZeroUsesPlaceholder(t *testing.T) {
	assert.Equal(t, "-", formatDate(time.Time{}))
	assert.Equal(t, "15/06/2024", formatDate(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
}

// ────────────────────────── rendering ──────────────────────────

func TestRender_ProducesPDF(t *testing.T) {
	r := NewReportRenderer()
	out, err := r.Render(context.Background(), &reports.DocumentReport{
		Kind:        ledger.KindSale,
		CompanyName: "Acme Ltd",
		From:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Rows: []*entity.Document{
			{
				Number:  "SAL-0001",
				Date:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				PartyID: "cust-1",
				Total:   decimal.NewFromInt(190),
				Paid:    decimal.NewFromInt(100),
				Due:     decimal.NewFromInt(90),
			},
		},
		TotalSum:    decimal.NewFromInt(190),
		PaidSum:     decimal.NewFromInt(100),
		DueSum:      decimal.NewFromInt(90),
		GeneratedAt: time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "output must start with the PDF magic")
}
