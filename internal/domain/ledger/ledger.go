// Package ledger implements the derived-totals engine shared by every document
// form: an ordered list of line entries whose line totals, subtotal, discount,
// tax, grand total and due amount are recomputed in full after every mutation.
//
// All derived fields are pure functions of the draft's current state; the
// engine never keeps incremental accumulators, so any sequence of edits that
// ends in the same line set yields the same totals.
package ledger

import (
	"strings"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind selects the document-specific total formula.
type Kind string

const (
	KindSale           Kind = "sale"
	KindSaleReturn     Kind = "sale_return"
	KindPurchase       Kind = "purchase"
	KindPurchaseReturn Kind = "purchase_return"
	KindQuotation      Kind = "quotation"
	KindExpenseVoucher Kind = "expense_voucher"
	KindIncomeVoucher  Kind = "income_voucher"
	KindSalary         Kind = "salary"
	KindTransfer       Kind = "balance_transfer"
)

// Valid reports whether k is a known document kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSale, KindSaleReturn, KindPurchase, KindPurchaseReturn,
		KindQuotation, KindExpenseVoucher, KindIncomeVoucher, KindSalary, KindTransfer:
		return true
	}
	return false
}

// UsesQuantity reports whether lines of this kind carry a quantity.
// Vouchers, salaries and transfers are amount-only documents.
func (k Kind) UsesQuantity() bool {
	switch k {
	case KindSale, KindSaleReturn, KindPurchase, KindPurchaseReturn, KindQuotation:
		return true
	}
	return false
}

// AffectsStock reports whether committing a document of this kind moves product stock.
func (k Kind) AffectsStock() bool {
	switch k {
	case KindSale, KindSaleReturn, KindPurchase, KindPurchaseReturn:
		return true
	}
	return false
}

// StockDirection returns +1 for kinds that add stock, -1 for kinds that remove
// it and 0 for kinds that do not touch inventory.
func (k Kind) StockDirection() int {
	switch k {
	case KindPurchase, KindSaleReturn:
		return 1
	case KindSale, KindPurchaseReturn:
		return -1
	}
	return 0
}

// Group tags salary lines as earnings or deductions. Empty for every other kind.
type Group string

const (
	GroupNone      Group = ""
	GroupEarning   Group = "earning"
	GroupDeduction Group = "deduction"
)

// DiscountType selects how DiscountValue is interpreted.
type DiscountType string

const (
	DiscountNone    DiscountType = ""
	DiscountFixed   DiscountType = "fixed"
	DiscountPercent DiscountType = "percent"
)

// Line is one row of a document: a catalog reference plus quantity/amount.
// LineTotal is always derived, never edited directly.
type Line struct {
	ReferenceID string
	Quantity    decimal.Decimal
	UnitAmount  decimal.Decimal
	LineTotal   decimal.Decimal
	Group       Group
}

// Totals holds every derived document-level amount.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Deductions     decimal.Decimal
	Total          decimal.Decimal
	Due            decimal.Decimal
}

// Catalog resolves a line reference against preloaded master data
// (products, expense particulars, allowance/deduction types) and returns its
// canonical unit amount.
type Catalog interface {
	Resolve(referenceID string) (unitAmount decimal.Decimal, ok bool)
}

// Draft is an in-flight document: an ordered, mutable line set plus the
// adjustment inputs. Every mutating operation ends with a full Recompute, so
// Totals is never stale between edits.
type Draft struct {
	Kind          Kind
	Lines         []Line
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	TaxRate       decimal.Decimal // percent, e.g. 10 for 10%
	BasePay       decimal.Decimal // salary only
	Overtime      decimal.Decimal // salary only
	Paid          decimal.Decimal
	Adjustment    decimal.Decimal // incremental payment applied on update
	Totals        Totals
}

// NewDraft creates a draft with a single empty line. A document keeps at least
// one line at all times; validation separately requires that line to carry a
// reference before submit.
func NewDraft(kind Kind) *Draft {
	d := &Draft{Kind: kind}
	d.Lines = append(d.Lines, newLine(kind, GroupNone))
	d.Recompute()
	return d
}

func newLine(kind Kind, g Group) Line {
	l := Line{Group: g}
	if kind.UsesQuantity() {
		l.Quantity = decimal.NewFromInt(1)
	}
	return l
}

// AddLine appends a fresh line. The most recently added line must already have
// a reference selected; otherwise the operation is rejected so empty rows do
// not pile up.
func (d *Draft) AddLine() error {
	return d.AddGroupLine(GroupNone)
}

// AddGroupLine appends a line tagged with g (salary earnings/deductions).
func (d *Draft) AddGroupLine(g Group) error {
	if last := d.lastInGroup(g); last != nil && strings.TrimSpace(last.ReferenceID) == "" {
		return domain.ErrEmptyReference
	}
	d.Lines = append(d.Lines, newLine(d.Kind, g))
	d.Recompute()
	return nil
}

func (d *Draft) lastInGroup(g Group) *Line {
	for i := len(d.Lines) - 1; i >= 0; i-- {
		if d.Lines[i].Group == g {
			return &d.Lines[i]
		}
	}
	return nil
}

// SetLineReference assigns a catalog reference to the line at index i.
// A reference already used by another line of the same group is rejected and
// the field is reset to empty, leaving the rest of the line set untouched.
// When the catalog knows the reference, the line's unit amount is populated
// from its canonical amount.
func (d *Draft) SetLineReference(i int, referenceID string, cat Catalog) error {
	if i < 0 || i >= len(d.Lines) {
		return domain.ErrInvalidInput
	}
	referenceID = strings.TrimSpace(referenceID)
	for j := range d.Lines {
		if j != i && d.Lines[j].Group == d.Lines[i].Group && d.Lines[j].ReferenceID == referenceID && referenceID != "" {
			d.Lines[i].ReferenceID = ""
			d.Recompute()
			return domain.ErrDuplicateReference
		}
	}
	d.Lines[i].ReferenceID = referenceID
	if cat != nil && referenceID != "" {
		if amount, ok := cat.Resolve(referenceID); ok {
			d.Lines[i].UnitAmount = amount
		}
	}
	d.Recompute()
	return nil
}

// SetLineQuantity updates the quantity of line i. Negative quantities are
// rejected; zero is allowed (the line simply contributes nothing).
func (d *Draft) SetLineQuantity(i int, quantity decimal.Decimal) error {
	if i < 0 || i >= len(d.Lines) {
		return domain.ErrInvalidInput
	}
	if quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	d.Lines[i].Quantity = quantity
	d.Recompute()
	return nil
}

// SetLineUnitAmount updates the unit amount of line i. Negative amounts are rejected.
func (d *Draft) SetLineUnitAmount(i int, amount decimal.Decimal) error {
	if i < 0 || i >= len(d.Lines) {
		return domain.ErrInvalidInput
	}
	if amount.IsNegative() {
		return domain.ErrInvalidInput
	}
	d.Lines[i].UnitAmount = amount
	d.Recompute()
	return nil
}

// RemoveLine deletes line i. Removing the last remaining line is a no-op
// error: every document keeps at least one line.
func (d *Draft) RemoveLine(i int) error {
	if i < 0 || i >= len(d.Lines) {
		return domain.ErrInvalidInput
	}
	if len(d.Lines) == 1 {
		return domain.ErrLastLine
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
	d.Recompute()
	return nil
}

// SetDiscount sets the discount mode and value and recomputes.
func (d *Draft) SetDiscount(t DiscountType, value decimal.Decimal) {
	d.DiscountType = t
	d.DiscountValue = value
	d.Recompute()
}

// SetTaxRate sets the tax percentage and recomputes.
func (d *Draft) SetTaxRate(rate decimal.Decimal) {
	d.TaxRate = rate
	d.Recompute()
}

// SetPaid sets the user-entered paid amount and recomputes the due amount.
func (d *Draft) SetPaid(paid decimal.Decimal) {
	d.Paid = paid
	d.Recompute()
}

// SetAdjustment sets the edit-mode incremental payment and recomputes.
func (d *Draft) SetAdjustment(amount decimal.Decimal) {
	d.Adjustment = amount
	d.Recompute()
}

// Recompute derives every total from the current state. Full pass, no
// incremental bookkeeping: line totals first, then subtotal/deductions, then
// discount, tax, total and due. Safe to call any number of times.
func (d *Draft) Recompute() {
	var subtotal, deductions decimal.Decimal
	for i := range d.Lines {
		line := &d.Lines[i]
		if d.Kind.UsesQuantity() {
			line.LineTotal = line.Quantity.Mul(line.UnitAmount)
		} else {
			line.LineTotal = line.UnitAmount
		}
		if line.Group == GroupDeduction {
			deductions = deductions.Add(line.LineTotal)
		} else {
			subtotal = subtotal.Add(line.LineTotal)
		}
	}

	discount := decimal.Zero
	switch d.DiscountType {
	case DiscountFixed:
		discount = d.DiscountValue
	case DiscountPercent:
		discount = subtotal.Mul(d.DiscountValue).Div(decimal.NewFromInt(100))
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	// Tax applies to the discounted base.
	tax := subtotal.Sub(discount).Mul(d.TaxRate).Div(decimal.NewFromInt(100))

	var total decimal.Decimal
	switch d.Kind {
	case KindSale, KindSaleReturn:
		total = subtotal.Sub(discount).Add(tax)
	case KindSalary:
		total = d.BasePay.Add(d.Overtime).Add(subtotal).Sub(deductions)
	default:
		// Purchases, returns thereof, quotations, vouchers and transfers carry
		// the plain line sum; discount/tax stay informational.
		total = subtotal
	}

	d.Totals = Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Deductions:     deductions,
		Total:          total,
		Due:            total.Sub(d.Paid).Sub(d.Adjustment),
	}
}

// Validate gates submission. The due amount may display negative while
// editing, but an overpaid or structurally incomplete draft never submits.
func (d *Draft) Validate() error {
	if !d.Kind.Valid() {
		return domain.ErrInvalidInput
	}
	if len(d.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	seen := map[Group]map[string]bool{}
	for _, line := range d.Lines {
		ref := strings.TrimSpace(line.ReferenceID)
		if ref == "" {
			return domain.ErrInvalidInput
		}
		if line.UnitAmount.IsNegative() || line.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
		if seen[line.Group] == nil {
			seen[line.Group] = map[string]bool{}
		}
		if seen[line.Group][ref] {
			return domain.ErrDuplicateReference
		}
		seen[line.Group][ref] = true
	}
	if d.Paid.IsNegative() || d.Adjustment.IsNegative() {
		return domain.ErrInvalidInput
	}
	if d.Paid.Add(d.Adjustment).GreaterThan(d.Totals.Total) {
		return domain.ErrOverpayment
	}
	return nil
}

// ParseAmount converts free-form user input to a decimal, coercing anything
// non-numeric to zero so NaN can never reach the totals.
func ParseAmount(s string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return v
}
