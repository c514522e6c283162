package documents_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/catalog"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/documents"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

const (
	companyA = "company-a"
	companyB = "company-b"
	userA    = "user-a"
)

// ── in-memory fakes ───────────────────────────────────────────────────────────

type fakeDocumentRepo struct {
	docs     map[string]*entity.Document
	lines    map[string][]*entity.DocumentLine
	payments map[string][]*entity.Payment
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs:     make(map[string]*entity.Document),
		lines:    make(map[string][]*entity.DocumentLine),
		payments: make(map[string][]*entity.Payment),
	}
}

func (r *fakeDocumentRepo) Create(doc *entity.Document) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) CreateLine(line *entity.DocumentLine) error {
	cp := *line
	r.lines[line.DocumentID] = append(r.lines[line.DocumentID], &cp)
	return nil
}

func (r *fakeDocumentRepo) CreatePayment(p *entity.Payment) error {
	cp := *p
	r.payments[p.DocumentID] = append(r.payments[p.DocumentID], &cp)
	return nil
}

func (r *fakeDocumentRepo) Update(doc *entity.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) GetByID(id string) (*entity.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeDocumentRepo) GetLines(documentID string) ([]*entity.DocumentLine, error) {
	return r.lines[documentID], nil
}

func (r *fakeDocumentRepo) GetPayments(documentID string) ([]*entity.Payment, error) {
	return r.payments[documentID], nil
}

func (r *fakeDocumentRepo) ListByCompany(companyID string, f repository.DocumentFilter) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, doc := range r.docs {
		if doc.CompanyID == companyID && doc.Kind == f.Kind {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) DeleteLines(documentID string) error {
	delete(r.lines, documentID)
	return nil
}

func (r *fakeDocumentRepo) Delete(id string) error {
	delete(r.docs, id)
	delete(r.lines, id)
	delete(r.payments, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error         { delete(r.products, id); return nil }
func (r *fakeProductRepo) AdjustStock(id string, delta decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		return domain.ErrInsufficientStock
	}
	p.Stock = next
	return nil
}

type fakeAccountRepo struct {
	accounts map[string]*entity.Account
}

func (r *fakeAccountRepo) Create(a *entity.Account) error { r.accounts[a.ID] = a; return nil }
func (r *fakeAccountRepo) GetByID(id string) (*entity.Account, error) {
	return r.accounts[id], nil
}
func (r *fakeAccountRepo) ListByCompany(string, int, int) ([]*entity.Account, error) {
	return nil, nil
}
func (r *fakeAccountRepo) Update(a *entity.Account) error { r.accounts[a.ID] = a; return nil }
func (r *fakeAccountRepo) Delete(id string) error         { delete(r.accounts, id); return nil }
func (r *fakeAccountRepo) AdjustBalance(id string, delta decimal.Decimal) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

type fakeCustomerRepo struct{ customers map[string]*entity.Customer }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) ListByCompany(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) Delete(id string) error          { delete(r.customers, id); return nil }

type fakeSupplierRepo struct{ suppliers map[string]*entity.Supplier }

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *fakeSupplierRepo) ListByCompany(string, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) Delete(id string) error          { delete(r.suppliers, id); return nil }

type fakeEmployeeRepo struct{ employees map[string]*entity.Employee }

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error { r.employees[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	return r.employees[id], nil
}
func (r *fakeEmployeeRepo) ListByCompany(string, int, int) ([]*entity.Employee, error) {
	return nil, nil
}
func (r *fakeEmployeeRepo) Update(e *entity.Employee) error { r.employees[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) Delete(id string) error          { delete(r.employees, id); return nil }

type fakeTxRunner struct{ repos documents.TxRepos }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(r documents.TxRepos) error) error {
	return fn(t.repos)
}

// ── harness ───────────────────────────────────────────────────────────────────

type env struct {
	uc        *documents.UseCase
	docs      *fakeDocumentRepo
	products  *fakeProductRepo
	accounts  *fakeAccountRepo
	customers *fakeCustomerRepo
	suppliers *fakeSupplierRepo
	employees *fakeEmployeeRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		docs:      newFakeDocumentRepo(),
		products:  &fakeProductRepo{products: make(map[string]*entity.Product)},
		accounts:  &fakeAccountRepo{accounts: make(map[string]*entity.Account)},
		customers: &fakeCustomerRepo{customers: make(map[string]*entity.Customer)},
		suppliers: &fakeSupplierRepo{suppliers: make(map[string]*entity.Supplier)},
		employees: &fakeEmployeeRepo{employees: make(map[string]*entity.Employee)},
	}
	tx := &fakeTxRunner{repos: documents.TxRepos{
		Documents: e.docs,
		Products:  e.products,
		Accounts:  e.accounts,
	}}
	cache := catalog.New(nil, 0)
	cache.Register(catalog.TypeParticulars, func(_ context.Context, _ string) ([]catalog.Item, error) {
		return []catalog.Item{
			{ID: "rent", Label: "Rent", Amount: decimal.NewFromInt(1200)},
			{ID: "misc", Label: "Miscellaneous"},
		}, nil
	})
	e.uc = documents.NewUseCase(
		tx, e.docs, e.products, e.customers, e.suppliers, e.employees, e.accounts,
		cache, validate.New(),
	)

	e.customers.customers["cust-1"] = &entity.Customer{ID: "cust-1", CompanyID: companyA, Name: "ACME"}
	e.suppliers.suppliers["supp-1"] = &entity.Supplier{ID: "supp-1", CompanyID: companyA, Name: "Distribuidora Norte"}
	e.employees.employees["emp-1"] = &entity.Employee{ID: "emp-1", CompanyID: companyA, Name: "Ana Rivera", BasePay: decimal.NewFromInt(3000)}
	e.accounts.accounts["acc-cash"] = &entity.Account{ID: "acc-cash", CompanyID: companyA, Name: "Caja", Type: entity.AccountCash, Balance: decimal.NewFromInt(1000)}
	e.accounts.accounts["acc-bank"] = &entity.Account{ID: "acc-bank", CompanyID: companyA, Name: "Banco", Type: entity.AccountBank, Balance: decimal.NewFromInt(5000)}
	e.products.products["prod-1"] = &entity.Product{
		ID: "prod-1", CompanyID: companyA, SKU: "KB-01", Name: "Keyboard",
		Price: decimal.NewFromInt(50), Cost: decimal.NewFromInt(30), Stock: decimal.NewFromInt(20),
	}
	e.products.products["prod-2"] = &entity.Product{
		ID: "prod-2", CompanyID: companyA, SKU: "MS-01", Name: "Mouse",
		Price: decimal.NewFromFloat(19.99), Cost: decimal.NewFromInt(12), Stock: decimal.NewFromInt(5),
	}
	return e
}

func eq(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)),
		"want %s, got %s %v", want, got, msgAndArgs)
}

// ── create ────────────────────────────────────────────────────────────────────

func TestCreate_SaleDerivesTotalsAndMovesStock(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSale, dto.CreateDocumentRequest{
		PartyID:   "cust-1",
		AccountID: "acc-cash",
		TaxRate:   decimal.NewFromInt(10),
		Paid:      decimal.NewFromInt(100),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(3)}, // unit amount from catalog: 50
			{ReferenceID: "prod-2", Quantity: decimal.NewFromInt(2), UnitAmount: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)

	eq(t, "190", resp.Subtotal) // 3*50 + 2*20
	eq(t, "19", resp.Tax)
	eq(t, "209", resp.Total)
	eq(t, "100", resp.Paid)
	eq(t, "109", resp.Due)
	assert.Equal(t, "ACME", resp.PartyName)

	eq(t, "17", e.products.products["prod-1"].Stock, "sale must decrement stock")
	eq(t, "3", e.products.products["prod-2"].Stock)
	eq(t, "1100", e.accounts.accounts["acc-cash"].Balance, "collected payment lands on the account")

	require.Len(t, e.docs.payments[resp.ID], 1)
	eq(t, "100", e.docs.payments[resp.ID][0].Amount)
	require.Len(t, e.docs.lines[resp.ID], 2)
}

func TestCreate_PurchaseUsesCostAndIncreasesStock(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindPurchase, dto.CreateDocumentRequest{
		PartyID:   "supp-1",
		AccountID: "acc-bank",
		Paid:      decimal.NewFromInt(50),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(4)}, // cost 30
		},
	})
	require.NoError(t, err)

	eq(t, "120", resp.Total, "purchase total is the plain subtotal")
	eq(t, "70", resp.Due)
	eq(t, "24", e.products.products["prod-1"].Stock, "purchase must increment stock")
	eq(t, "4950", e.accounts.accounts["acc-bank"].Balance, "paying a supplier withdraws")
}

func TestCreate_QuotationLeavesStockAlone(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindQuotation, dto.CreateDocumentRequest{
		PartyID: "cust-1",
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	eq(t, "20", e.products.products["prod-1"].Stock, "quotations never move stock")
}

func TestCreate_ExpenseVoucherPrefillsParticularAmount(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindExpenseVoucher, dto.CreateDocumentRequest{
		PartyID:   "acc-bank",
		AccountID: "acc-bank",
		Paid:      decimal.NewFromInt(1250),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "rent"}, // no amount sent: the catalog knows 1200
			{ReferenceID: "misc", UnitAmount: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Lines, 2)
	eq(t, "1200", resp.Lines[0].UnitAmount, "catalog amount must prefill the line")
	eq(t, "50", resp.Lines[1].UnitAmount, "an explicit amount wins over the catalog")
	eq(t, "1250", resp.Total)
	eq(t, "3750", e.accounts.accounts["acc-bank"].Balance, "expense voucher pays out")
}

func TestCreate_OverpaymentRejected(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindPurchase, dto.CreateDocumentRequest{
		PartyID:   "supp-1",
		AccountID: "acc-bank",
		Paid:      decimal.NewFromInt(600),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(10), UnitAmount: decimal.NewFromInt(50)},
		},
	})
	require.ErrorIs(t, err, domain.ErrOverpayment)

	assert.Empty(t, e.docs.docs, "a rejected document must not be persisted")
	eq(t, "20", e.products.products["prod-1"].Stock)
	eq(t, "5000", e.accounts.accounts["acc-bank"].Balance)
}

func TestCreate_InsufficientStockRollsBack(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSale, dto.CreateDocumentRequest{
		PartyID: "cust-1",
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-2", Quantity: decimal.NewFromInt(6)}, // only 5 on hand
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreate_PartyFromAnotherCompanyForbidden(t *testing.T) {
	e := newEnv(t)
	e.customers.customers["cust-b"] = &entity.Customer{ID: "cust-b", CompanyID: companyB, Name: "Foreign"}

	_, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSale, dto.CreateDocumentRequest{
		PartyID: "cust-b",
		Lines:   []dto.DocumentLineRequest{{ReferenceID: "prod-1"}},
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_SalaryFormula(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSalary, dto.CreateDocumentRequest{
		PartyID:   "emp-1",
		AccountID: "acc-bank",
		BasePay:   decimal.NewFromInt(3000),
		Overtime:  decimal.NewFromInt(250),
		Paid:      decimal.NewFromInt(3500),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "bonus", Group: "earning", UnitAmount: decimal.NewFromInt(400)},
			{ReferenceID: "late-fine", Group: "deduction", UnitAmount: decimal.NewFromInt(150)},
		},
	})
	require.NoError(t, err)

	eq(t, "3500", resp.Total) // 3000 + 250 + 400 - 150
	eq(t, "0", resp.Due)
	eq(t, "1500", e.accounts.accounts["acc-bank"].Balance, "salary pays out of the account")
}

func TestCreate_TransferMovesBetweenAccounts(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindTransfer, dto.CreateDocumentRequest{
		PartyID:   "acc-cash", // destination
		AccountID: "acc-bank", // source
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "transfer", UnitAmount: decimal.NewFromInt(800)},
		},
	})
	require.NoError(t, err)

	eq(t, "800", resp.Total)
	eq(t, "4200", e.accounts.accounts["acc-bank"].Balance)
	eq(t, "1800", e.accounts.accounts["acc-cash"].Balance)
}

func TestCreate_TransferToSameAccountRejected(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindTransfer, dto.CreateDocumentRequest{
		PartyID:   "acc-bank",
		AccountID: "acc-bank",
		Lines:     []dto.DocumentLineRequest{{ReferenceID: "transfer", UnitAmount: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── update ────────────────────────────────────────────────────────────────────

func TestUpdate_AdjustmentFoldsIntoPaid(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindPurchase, dto.CreateDocumentRequest{
		PartyID:   "supp-1",
		AccountID: "acc-bank",
		Paid:      decimal.NewFromInt(200),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(10), UnitAmount: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	eq(t, "300", created.Due)

	updated, err := e.uc.Update(context.Background(), companyA, ledger.KindPurchase, created.ID, dto.UpdateDocumentRequest{
		AdjustmentAmount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	eq(t, "500", updated.Paid, "the adjustment folds into the cumulative paid")
	eq(t, "0", updated.Due)
	require.Len(t, e.docs.payments[created.ID], 2, "each adjustment gets its own payment row")
	eq(t, "300", e.docs.payments[created.ID][1].Amount)
	eq(t, "4500", e.accounts.accounts["acc-bank"].Balance)
}

func TestUpdate_OverAdjustmentRejected(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindPurchase, dto.CreateDocumentRequest{
		PartyID:   "supp-1",
		AccountID: "acc-bank",
		Paid:      decimal.NewFromInt(200),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(10), UnitAmount: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	_, err = e.uc.Update(context.Background(), companyA, ledger.KindPurchase, created.ID, dto.UpdateDocumentRequest{
		AdjustmentAmount: decimal.NewFromInt(400), // 200 already paid on a 500 total
	})
	require.ErrorIs(t, err, domain.ErrOverpayment)

	doc, _ := e.docs.GetByID(created.ID)
	eq(t, "200", doc.Paid, "a rejected edit leaves the document untouched")
}

func TestUpdate_LineEditRecomputesStockDelta(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSale, dto.CreateDocumentRequest{
		PartyID: "cust-1",
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	eq(t, "15", e.products.products["prod-1"].Stock)

	updated, err := e.uc.Update(context.Background(), companyA, ledger.KindSale, created.ID, dto.UpdateDocumentRequest{
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	eq(t, "100", updated.Total)
	eq(t, "18", e.products.products["prod-1"].Stock,
		"old quantity restored, new quantity applied")
}

func TestUpdate_WrongKindNotFound(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSale, dto.CreateDocumentRequest{
		PartyID: "cust-1",
		Lines:   []dto.DocumentLineRequest{{ReferenceID: "prod-1"}},
	})
	require.NoError(t, err)

	_, err = e.uc.Update(context.Background(), companyA, ledger.KindPurchase, created.ID, dto.UpdateDocumentRequest{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_TransferReappliedAtNewTotal(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindTransfer, dto.CreateDocumentRequest{
		PartyID:   "acc-cash", // destination
		AccountID: "acc-bank", // source
		Lines:     []dto.DocumentLineRequest{{ReferenceID: "transfer", UnitAmount: decimal.NewFromInt(500)}},
	})
	require.NoError(t, err)
	eq(t, "4500", e.accounts.accounts["acc-bank"].Balance)
	eq(t, "1500", e.accounts.accounts["acc-cash"].Balance)

	resp, err := e.uc.Update(context.Background(), companyA, ledger.KindTransfer, created.ID, dto.UpdateDocumentRequest{
		Lines: []dto.DocumentLineRequest{{ReferenceID: "transfer", UnitAmount: decimal.NewFromInt(800)}},
	})
	require.NoError(t, err)

	eq(t, "800", resp.Total)
	eq(t, "4200", e.accounts.accounts["acc-bank"].Balance, "update must re-run the transfer at the new total")
	eq(t, "1800", e.accounts.accounts["acc-cash"].Balance)

	// Deleting afterwards reverses the new total, restoring the originals.
	require.NoError(t, e.uc.Delete(context.Background(), companyA, ledger.KindTransfer, created.ID))
	eq(t, "5000", e.accounts.accounts["acc-bank"].Balance)
	eq(t, "1000", e.accounts.accounts["acc-cash"].Balance)
}

func TestUpdate_TransferSourceChangeMovesBalances(t *testing.T) {
	e := newEnv(t)
	e.accounts.accounts["acc-save"] = &entity.Account{
		ID: "acc-save", CompanyID: companyA, Name: "Ahorros", Type: entity.AccountBank,
		Balance: decimal.NewFromInt(2000),
	}

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindTransfer, dto.CreateDocumentRequest{
		PartyID:   "acc-cash",
		AccountID: "acc-bank",
		Lines:     []dto.DocumentLineRequest{{ReferenceID: "transfer", UnitAmount: decimal.NewFromInt(300)}},
	})
	require.NoError(t, err)

	_, err = e.uc.Update(context.Background(), companyA, ledger.KindTransfer, created.ID, dto.UpdateDocumentRequest{
		AccountID: "acc-save",
	})
	require.NoError(t, err)

	eq(t, "5000", e.accounts.accounts["acc-bank"].Balance, "old source must get the transfer back")
	eq(t, "1700", e.accounts.accounts["acc-save"].Balance, "new source funds the transfer")
	eq(t, "1300", e.accounts.accounts["acc-cash"].Balance, "destination keeps one transfer's worth")
}

func TestUpdate_TransferToSameAccountRejected(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindTransfer, dto.CreateDocumentRequest{
		PartyID:   "acc-cash",
		AccountID: "acc-bank",
		Lines:     []dto.DocumentLineRequest{{ReferenceID: "transfer", UnitAmount: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)

	_, err = e.uc.Update(context.Background(), companyA, ledger.KindTransfer, created.ID, dto.UpdateDocumentRequest{
		AccountID: "acc-cash", // equals the destination
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	eq(t, "4900", e.accounts.accounts["acc-bank"].Balance, "rejected update must leave balances alone")
	eq(t, "1100", e.accounts.accounts["acc-cash"].Balance)
}

// ── get / list / delete ───────────────────────────────────────────────────────

func TestGet_ReturnsLinesAndPayments(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSale, dto.CreateDocumentRequest{
		PartyID:   "cust-1",
		AccountID: "acc-cash",
		Paid:      decimal.NewFromInt(50),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	got, err := e.uc.Get(context.Background(), companyA, ledger.KindSale, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, "ACME", got.PartyName)
}

func TestGet_OtherCompanyForbidden(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSale, dto.CreateDocumentRequest{
		PartyID: "cust-1",
		Lines:   []dto.DocumentLineRequest{{ReferenceID: "prod-1"}},
	})
	require.NoError(t, err)

	_, err = e.uc.Get(context.Background(), companyB, ledger.KindSale, created.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_ReversesStockAndBalances(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindSale, dto.CreateDocumentRequest{
		PartyID:   "cust-1",
		AccountID: "acc-cash",
		Paid:      decimal.NewFromInt(100),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, e.uc.Delete(context.Background(), companyA, ledger.KindSale, created.ID))

	eq(t, "20", e.products.products["prod-1"].Stock, "deleting a sale returns the stock")
	eq(t, "1000", e.accounts.accounts["acc-cash"].Balance, "deleting a sale refunds the payment")
	doc, _ := e.docs.GetByID(created.ID)
	assert.Nil(t, doc)
}

func TestDelete_TransferReversed(t *testing.T) {
	e := newEnv(t)

	created, err := e.uc.Create(context.Background(), companyA, userA, ledger.KindTransfer, dto.CreateDocumentRequest{
		PartyID:   "acc-cash",
		AccountID: "acc-bank",
		Lines:     []dto.DocumentLineRequest{{ReferenceID: "transfer", UnitAmount: decimal.NewFromInt(500)}},
	})
	require.NoError(t, err)

	require.NoError(t, e.uc.Delete(context.Background(), companyA, ledger.KindTransfer, created.ID))
	eq(t, "5000", e.accounts.accounts["acc-bank"].Balance)
	eq(t, "1000", e.accounts.accounts["acc-cash"].Balance)
}
