// Package export renders document reports as CSV and XML downloads.
package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousand separators and two decimals,
// e.g. 1234567.5 -> "1,234,567.50".
func FormatMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return moneyPrinter.Sprintf("%.2f", f)
}
