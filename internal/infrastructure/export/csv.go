package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/reports"
)

var _ reports.Renderer = (*CSVRenderer)(nil)

// CSVRenderer renders a document report as CSV with a footer totals row.
type CSVRenderer struct{}

// NewCSVRenderer builds the renderer.
func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

// Render writes one record per document plus a TOTAL footer.
func (r *CSVRenderer) Render(_ context.Context, report *reports.DocumentReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"number", "date", "party_id", "total", "paid", "due"}); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	for _, doc := range report.Rows {
		record := []string{
			doc.Number,
			doc.Date.Format("2006-01-02"),
			doc.PartyID,
			FormatMoney(doc.Total),
			FormatMoney(doc.Paid),
			FormatMoney(doc.Due),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: write record: %w", err)
		}
	}
	footer := []string{
		"TOTAL", "", "",
		FormatMoney(report.TotalSum),
		FormatMoney(report.PaidSum),
		FormatMoney(report.DueSum),
	}
	if err := w.Write(footer); err != nil {
		return nil, fmt.Errorf("csv: write footer: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}
