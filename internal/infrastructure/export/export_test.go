package export_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/reports"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/ledgerdesk/ledgerdesk-api/internal/infrastructure/export"
)

func sampleReport() *reports.DocumentReport {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	return &reports.DocumentReport{
		CompanyName: "LedgerDesk Demo",
		Kind:        ledger.KindSale,
		From:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		GeneratedAt: date,
		Rows: []*entity.Document{
			{ID: "d1", Number: "INV-1", Date: date, PartyID: "cust-1",
				Total: decimal.NewFromFloat(1234.5), Paid: decimal.NewFromInt(1000), Due: decimal.NewFromFloat(234.5)},
			{ID: "d2", Number: "INV-2", Date: date, PartyID: "cust-2",
				Total: decimal.NewFromInt(500), Paid: decimal.NewFromInt(500)},
		},
		TotalSum: decimal.NewFromFloat(1734.5),
		PaidSum:  decimal.NewFromInt(1500),
		DueSum:   decimal.NewFromFloat(234.5),
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,234,567.50", export.FormatMoney(decimal.NewFromFloat(1234567.5)))
	assert.Equal(t, "0.00", export.FormatMoney(decimal.Zero))
}

func TestCSVRenderer_Render(t *testing.T) {
	out, err := export.NewCSVRenderer().Render(context.Background(), sampleReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4, "header + 2 rows + footer")
	assert.Equal(t, "number,date,party_id,total,paid,due", lines[0])
	assert.Contains(t, lines[1], "INV-1")
	assert.Contains(t, lines[1], `"1,234.50"`, "money keeps thousand separators")
	assert.True(t, strings.HasPrefix(lines[3], "TOTAL"), "last record is the footer")
	assert.Contains(t, lines[3], `"1,734.50"`)
}

func TestXMLRenderer_Render(t *testing.T) {
	out, err := export.NewXMLRenderer().Render(context.Background(), sampleReport())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("report")
	require.NotNil(t, root)
	assert.Equal(t, "sale", root.SelectAttrValue("kind", ""))
	assert.Equal(t, "LedgerDesk Demo", root.SelectAttrValue("company", ""))

	docs := root.SelectElement("documents").SelectElements("document")
	require.Len(t, docs, 2)
	assert.Equal(t, "INV-1", docs[0].SelectAttrValue("number", ""))
	assert.Equal(t, "1234.5", docs[0].SelectElement("total").Text())

	totals := root.SelectElement("totals")
	require.NotNil(t, totals)
	assert.Equal(t, "1734.5", totals.SelectElement("total").Text())
}
