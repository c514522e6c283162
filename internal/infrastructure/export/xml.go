package export

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/reports"
)

var _ reports.Renderer = (*XMLRenderer)(nil)

// XMLRenderer renders a document report as an XML download.
type XMLRenderer struct{}

// NewXMLRenderer builds the renderer.
func NewXMLRenderer() *XMLRenderer { return &XMLRenderer{} }

// Render builds <report><document .../>...<totals/></report>.
func (r *XMLRenderer) Render(_ context.Context, report *reports.DocumentReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")
	root.CreateAttr("kind", string(report.Kind))
	root.CreateAttr("company", report.CompanyName)
	root.CreateAttr("generated_at", report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))
	if !report.From.IsZero() {
		root.CreateAttr("from", report.From.Format("2006-01-02"))
	}
	if !report.To.IsZero() {
		root.CreateAttr("to", report.To.Format("2006-01-02"))
	}

	docs := root.CreateElement("documents")
	for _, d := range report.Rows {
		el := docs.CreateElement("document")
		el.CreateAttr("id", d.ID)
		el.CreateAttr("number", d.Number)
		el.CreateAttr("date", d.Date.Format("2006-01-02"))
		el.CreateAttr("party_id", d.PartyID)
		el.CreateElement("subtotal").SetText(d.Subtotal.String())
		el.CreateElement("discount").SetText(d.Discount.String())
		el.CreateElement("tax").SetText(d.Tax.String())
		el.CreateElement("total").SetText(d.Total.String())
		el.CreateElement("paid").SetText(d.Paid.String())
		el.CreateElement("due").SetText(d.Due.String())
	}

	totals := root.CreateElement("totals")
	totals.CreateElement("total").SetText(report.TotalSum.String())
	totals.CreateElement("paid").SetText(report.PaidSum.String())
	totals.CreateElement("due").SetText(report.DueSum.String())

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serialize report: %w", err)
	}
	return out, nil
}
