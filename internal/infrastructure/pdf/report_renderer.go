// Package pdf renders document reports as printable A4 pages with Maroto v2.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name  │  Report title + period             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Number | Date | Party | Total | Paid | Due          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: column sums + generation timestamp                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/reports"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/infrastructure/export"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.Renderer = (*ReportRenderer)(nil)

// ReportRenderer implements reports.Renderer using Maroto v2.
type ReportRenderer struct{}

// NewReportRenderer builds the renderer.
func NewReportRenderer() *ReportRenderer { return &ReportRenderer{} }

// Render generates the PDF and returns its bytes.
func (g *ReportRenderer) Render(_ context.Context, report *reports.DocumentReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(reportTitle(report), true).
		WithAuthor(report.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Rows) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate report: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportTitle(report *reports.DocumentReport) string {
	kind := strings.ReplaceAll(string(report.Kind), "_", " ")
	return strings.ToUpper(kind) + " REPORT"
}

// headerRow: company (left), report title and period (right).
func headerRow(report *reports.DocumentReport) core.Row {
	period := periodLabel(report)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(reportTitle(report), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Number", 2, align.Left),
		h("Date", 2, align.Center),
		h("Party", 2, align.Left),
		h("Total", 2, align.Right),
		h("Paid", 2, align.Right),
		h("Due", 2, align.Right),
	)
}

func tableRows(docs []*entity.Document) []core.Row {
	result := make([]core.Row, 0, len(docs))
	for _, d := range docs {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(d.Number, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(d.Date.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(d.PartyID, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(export.FormatMoney(d.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(export.FormatMoney(d.Paid), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(export.FormatMoney(d.Due), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: the summed columns aligned under the table.
func totalsRow(report *reports.DocumentReport) core.Row {
	sum := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 1,
		})
	}
	return row.New(8).Add(
		col.New(4).Add(text.New(fmt.Sprintf("%d documents", len(report.Rows)), props.Text{
			Size: 8, Top: 1, Left: 1, Color: colorGray,
		})),
		col.New(2),
		col.New(2).Add(sum(export.FormatMoney(report.TotalSum))),
		col.New(2).Add(sum(export.FormatMoney(report.PaidSum))),
		col.New(2).Add(sum(export.FormatMoney(report.DueSum))),
	)
}

func footerRow(report *reports.DocumentReport) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Generated "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 6.5, Color: colorGray, Top: 3,
		}),
	))
}

func periodLabel(report *reports.DocumentReport) string {
	if report.From.IsZero() && report.To.IsZero() {
		return ""
	}
	return fmt.Sprintf("Period: %s - %s",
		formatDate(report.From), formatDate(report.To))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
