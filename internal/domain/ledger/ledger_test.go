package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test catalog
// ──────────────────────────────────────────────────────────────────────────────

type mapCatalog map[string]decimal.Decimal

func (c mapCatalog) Resolve(referenceID string) (decimal.Decimal, bool) {
	amount, ok := c[referenceID]
	return amount, ok
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// saleDraftTwoLines builds the reference sale used across several tests:
// lines = [{qty:2, unit:999.99}, {qty:1, unit:899.99}] ⇒ subtotal 2899.97.
func saleDraftTwoLines(t *testing.T) *ledger.Draft {
	t.Helper()
	d := ledger.NewDraft(ledger.KindSale)
	cat := mapCatalog{"prod-a": dec("999.99"), "prod-b": dec("899.99")}

	require.NoError(t, d.SetLineReference(0, "prod-a", cat))
	require.NoError(t, d.SetLineQuantity(0, dec("2")))
	require.NoError(t, d.AddLine())
	require.NoError(t, d.SetLineReference(1, "prod-b", cat))
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Scenario: sale with two lines (fixed discount 50, tax 10%)
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_SaleWithTwoLines(t *testing.T) {
	d := saleDraftTwoLines(t)
	d.SetDiscount(ledger.DiscountFixed, dec("50"))
	d.SetTaxRate(dec("10"))

	assert.True(t, d.Totals.Subtotal.Equal(dec("2899.97")),
		"subtotal must be 2*999.99 + 1*899.99, got %s", d.Totals.Subtotal)
	assert.True(t, d.Totals.DiscountAmount.Equal(dec("50")),
		"fixed discount must pass through unchanged")
	assert.True(t, d.Totals.TaxAmount.Equal(dec("284.997")),
		"tax must be (2899.97-50)*0.10, got %s", d.Totals.TaxAmount)
	assert.True(t, d.Totals.Total.Equal(dec("3134.967")),
		"total must be subtotal - discount + tax, got %s", d.Totals.Total)
}

func TestRecompute_PercentDiscount(t *testing.T) {
	d := saleDraftTwoLines(t)
	d.SetDiscount(ledger.DiscountPercent, dec("10"))

	assert.True(t, d.Totals.DiscountAmount.Equal(dec("289.997")),
		"percent discount must be subtotal*rate/100, got %s", d.Totals.DiscountAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Property: idempotent recompute — totals depend only on the final line set
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_OrderOfEditsIrrelevant(t *testing.T) {
	cat := mapCatalog{"p1": dec("10"), "p2": dec("20"), "p3": dec("5")}

	// Path A: straight build.
	a := ledger.NewDraft(ledger.KindSale)
	require.NoError(t, a.SetLineReference(0, "p1", cat))
	require.NoError(t, a.SetLineQuantity(0, dec("3")))
	require.NoError(t, a.AddLine())
	require.NoError(t, a.SetLineReference(1, "p2", cat))

	// Path B: detours through reference swaps and quantity edits.
	b := ledger.NewDraft(ledger.KindSale)
	require.NoError(t, b.SetLineReference(0, "p3", cat))
	require.NoError(t, b.SetLineQuantity(0, dec("7")))
	require.NoError(t, b.AddLine())
	require.NoError(t, b.SetLineReference(1, "p2", cat))
	require.NoError(t, b.SetLineReference(0, "p1", cat))
	require.NoError(t, b.SetLineQuantity(0, dec("99")))
	require.NoError(t, b.SetLineQuantity(0, dec("3")))

	assert.True(t, a.Totals.Subtotal.Equal(b.Totals.Subtotal),
		"same final line set must yield the same subtotal regardless of edit order")
	assert.True(t, a.Totals.Total.Equal(b.Totals.Total))
	assert.True(t, a.Totals.Due.Equal(b.Totals.Due))
}

func TestRecompute_Repeatable(t *testing.T) {
	d := saleDraftTwoLines(t)
	first := d.Totals
	d.Recompute()
	d.Recompute()
	assert.Equal(t, first, d.Totals, "recompute must be a pure function of draft state")
}

// ──────────────────────────────────────────────────────────────────────────────
// Property: non-negativity
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_NonNegativeTotals(t *testing.T) {
	d := ledger.NewDraft(ledger.KindSale)
	require.NoError(t, d.SetLineReference(0, "x", nil))
	require.NoError(t, d.SetLineQuantity(0, decimal.Zero))
	require.NoError(t, d.SetLineUnitAmount(0, decimal.Zero))

	assert.False(t, d.Lines[0].LineTotal.IsNegative(), "line total must never be negative")
	assert.False(t, d.Totals.Subtotal.IsNegative(), "subtotal must never be negative")

	assert.ErrorIs(t, d.SetLineQuantity(0, dec("-1")), domain.ErrInvalidInput,
		"negative quantity must be rejected")
	assert.ErrorIs(t, d.SetLineUnitAmount(0, dec("-0.01")), domain.ErrInvalidInput,
		"negative unit amount must be rejected")
}

// ──────────────────────────────────────────────────────────────────────────────
// Property: reference uniqueness within a document
// ──────────────────────────────────────────────────────────────────────────────

func TestSetLineReference_DuplicateResetsField(t *testing.T) {
	cat := mapCatalog{"p1": dec("10"), "p2": dec("20")}
	d := ledger.NewDraft(ledger.KindSale)
	require.NoError(t, d.SetLineReference(0, "p1", cat))
	require.NoError(t, d.AddLine())

	before := d.Lines[0]
	err := d.SetLineReference(1, "p1", cat)

	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
	assert.Equal(t, "", d.Lines[1].ReferenceID,
		"the offending field must be reset to empty")
	assert.Equal(t, before, d.Lines[0],
		"the other lines must be left untouched by a rejected duplicate")
}

func TestSetLineReference_PopulatesCatalogAmount(t *testing.T) {
	cat := mapCatalog{"p1": dec("42.50")}
	d := ledger.NewDraft(ledger.KindSale)
	require.NoError(t, d.SetLineReference(0, "p1", cat))

	assert.True(t, d.Lines[0].UnitAmount.Equal(dec("42.50")),
		"unit amount must come from the catalog's canonical price")
	assert.True(t, d.Lines[0].LineTotal.Equal(dec("42.50")),
		"line total must be recomputed immediately (qty defaults to 1)")
}

func TestSetLineReference_SameGroupOnly(t *testing.T) {
	// Salary allows one allowance and one deduction with the same type code.
	d := ledger.NewDraft(ledger.KindSalary)
	require.NoError(t, d.SetLineReference(0, "bonus", nil))
	require.NoError(t, d.AddGroupLine(ledger.GroupDeduction))
	require.NoError(t, d.SetLineReference(1, "bonus", nil),
		"identical references in different groups must not collide")
}

// ──────────────────────────────────────────────────────────────────────────────
// Property: AddLine guard and minimum-line invariant
// ──────────────────────────────────────────────────────────────────────────────

func TestAddLine_RequiresReferenceOnLastLine(t *testing.T) {
	d := ledger.NewDraft(ledger.KindSale)
	err := d.AddLine()
	assert.ErrorIs(t, err, domain.ErrEmptyReference,
		"a new line must be rejected until the previous one has a reference")
	assert.Len(t, d.Lines, 1)

	require.NoError(t, d.SetLineReference(0, "p1", nil))
	require.NoError(t, d.AddLine())
	assert.Len(t, d.Lines, 2)
}

func TestRemoveLine_LastLineIsNoOp(t *testing.T) {
	d := ledger.NewDraft(ledger.KindSale)
	require.NoError(t, d.SetLineReference(0, "p1", nil))

	err := d.RemoveLine(0)
	assert.ErrorIs(t, err, domain.ErrLastLine)
	assert.Len(t, d.Lines, 1, "the only line must survive a remove attempt")
}

func TestRemoveLine_PreservesOrder(t *testing.T) {
	cat := mapCatalog{"p1": dec("1"), "p2": dec("2"), "p3": dec("3")}
	d := ledger.NewDraft(ledger.KindSale)
	require.NoError(t, d.SetLineReference(0, "p1", cat))
	require.NoError(t, d.AddLine())
	require.NoError(t, d.SetLineReference(1, "p2", cat))
	require.NoError(t, d.AddLine())
	require.NoError(t, d.SetLineReference(2, "p3", cat))

	require.NoError(t, d.RemoveLine(1))
	require.Len(t, d.Lines, 2)
	assert.Equal(t, "p1", d.Lines[0].ReferenceID)
	assert.Equal(t, "p3", d.Lines[1].ReferenceID)
	assert.True(t, d.Totals.Subtotal.Equal(dec("4")), "subtotal must drop the removed line")
}

// ──────────────────────────────────────────────────────────────────────────────
// Property: due-amount law and overpayment gate
// ──────────────────────────────────────────────────────────────────────────────

func TestDueAmount_Law(t *testing.T) {
	d := saleDraftTwoLines(t)
	d.SetPaid(dec("1000"))

	assert.True(t, d.Totals.Due.Equal(d.Totals.Total.Sub(dec("1000"))),
		"due must equal total - paid")

	d.SetAdjustment(dec("500"))
	assert.True(t, d.Totals.Due.Equal(d.Totals.Total.Sub(dec("1500"))),
		"edit-mode due must equal total - (paid + adjustment)")
}

func TestValidate_OverpaymentBlocksSubmit(t *testing.T) {
	// Purchase with total 500; attempting paid 600 shows due -100 but never submits.
	d := ledger.NewDraft(ledger.KindPurchase)
	require.NoError(t, d.SetLineReference(0, "p1", nil))
	require.NoError(t, d.SetLineUnitAmount(0, dec("500")))
	d.SetPaid(dec("600"))

	assert.True(t, d.Totals.Due.Equal(dec("-100")),
		"due display must show the negative balance, got %s", d.Totals.Due)
	assert.ErrorIs(t, d.Validate(), domain.ErrOverpayment,
		"an overpaid draft must not pass submit validation")

	d.SetPaid(dec("500"))
	assert.NoError(t, d.Validate(), "paid == total is allowed")
}

func TestValidate_RejectsEmptyReference(t *testing.T) {
	d := ledger.NewDraft(ledger.KindSale)
	assert.ErrorIs(t, d.Validate(), domain.ErrInvalidInput,
		"the initial empty line must not be submittable")
}

// ──────────────────────────────────────────────────────────────────────────────
// Scenario: quantity change cascade
// ──────────────────────────────────────────────────────────────────────────────

func TestSetLineQuantity_CascadesInOnePass(t *testing.T) {
	d := ledger.NewDraft(ledger.KindSale)
	require.NoError(t, d.SetLineReference(0, "p1", mapCatalog{"p1": dec("10")}))

	require.NoError(t, d.SetLineQuantity(0, dec("5")))

	assert.True(t, d.Lines[0].LineTotal.Equal(dec("50")), "line total must follow the quantity")
	assert.True(t, d.Totals.Subtotal.Equal(dec("50")), "subtotal must be fresh on the next read")
	assert.True(t, d.Totals.Total.Equal(dec("50")))
	assert.True(t, d.Totals.Due.Equal(dec("50")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Kind-specific formulas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_QuotationIgnoresDiscountAndTaxInTotal(t *testing.T) {
	d := ledger.NewDraft(ledger.KindQuotation)
	require.NoError(t, d.SetLineReference(0, "p1", nil))
	require.NoError(t, d.SetLineUnitAmount(0, dec("100")))
	d.SetDiscount(ledger.DiscountFixed, dec("10"))
	d.SetTaxRate(dec("19"))

	assert.True(t, d.Totals.Total.Equal(dec("100")),
		"quotation total is the plain subtotal")
}

func TestRecompute_VoucherLinesAreAmountOnly(t *testing.T) {
	d := ledger.NewDraft(ledger.KindExpenseVoucher)
	require.NoError(t, d.SetLineReference(0, "rent", nil))
	require.NoError(t, d.SetLineUnitAmount(0, dec("1200")))
	require.NoError(t, d.AddLine())
	require.NoError(t, d.SetLineReference(1, "utilities", nil))
	require.NoError(t, d.SetLineUnitAmount(1, dec("300")))

	assert.True(t, d.Totals.Total.Equal(dec("1500")),
		"voucher total is the sum of line amounts, no quantity involved")
}

func TestRecompute_SalaryFormula(t *testing.T) {
	d := ledger.NewDraft(ledger.KindSalary)
	d.BasePay = dec("3000")
	d.Overtime = dec("250")
	require.NoError(t, d.SetLineReference(0, "housing", nil))
	require.NoError(t, d.SetLineUnitAmount(0, dec("400")))
	require.NoError(t, d.AddGroupLine(ledger.GroupDeduction))
	require.NoError(t, d.SetLineReference(1, "tax", nil))
	require.NoError(t, d.SetLineUnitAmount(1, dec("150")))
	d.Recompute()

	assert.True(t, d.Totals.Total.Equal(dec("3500")),
		"salary total must be base + overtime + allowances - deductions, got %s", d.Totals.Total)
	assert.True(t, d.Totals.Deductions.Equal(dec("150")))
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseAmount
// ──────────────────────────────────────────────────────────────────────────────

func TestParseAmount_CoercesGarbageToZero(t *testing.T) {
	assert.True(t, ledger.ParseAmount("abc").IsZero(), "non-numeric input becomes 0")
	assert.True(t, ledger.ParseAmount("").IsZero())
	assert.True(t, ledger.ParseAmount(" 12.5 ").Equal(dec("12.5")), "whitespace is tolerated")
}
