package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/catalog"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase creates, reads, updates and deletes documents of every kind. The
// derived totals always come from a ledger.Draft recompute server-side; totals
// sent by the client are ignored.
type UseCase struct {
	tx           TxRunner
	docRepo      repository.DocumentRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	employeeRepo repository.EmployeeRepository
	accountRepo  repository.AccountRepository
	catalog      *catalog.Cache
	validator    *validate.Validator
}

// NewUseCase wires the use case.
func NewUseCase(
	tx TxRunner,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	employeeRepo repository.EmployeeRepository,
	accountRepo repository.AccountRepository,
	cache *catalog.Cache,
	validator *validate.Validator,
) *UseCase {
	return &UseCase{
		tx:           tx,
		docRepo:      docRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		employeeRepo: employeeRepo,
		accountRepo:  accountRepo,
		catalog:      cache,
		validator:    validator,
	}
}

// numberPrefixes per document kind, used when the client leaves Number empty.
var numberPrefixes = map[ledger.Kind]string{
	ledger.KindSale:           "INV",
	ledger.KindSaleReturn:     "SRT",
	ledger.KindPurchase:       "PUR",
	ledger.KindPurchaseReturn: "PRT",
	ledger.KindQuotation:      "QUO",
	ledger.KindExpenseVoucher: "EXP",
	ledger.KindIncomeVoucher:  "INC",
	ledger.KindSalary:         "PAY",
	ledger.KindTransfer:       "TRF",
}

// paymentSign maps a kind to the direction money moves on its settlement
// account: +1 collects, -1 pays out, 0 never records payments.
func paymentSign(kind ledger.Kind) int {
	switch kind {
	case ledger.KindSale, ledger.KindIncomeVoucher, ledger.KindPurchaseReturn:
		return 1
	case ledger.KindPurchase, ledger.KindExpenseVoucher, ledger.KindSalary, ledger.KindSaleReturn:
		return -1
	}
	return 0
}

// Create validates the request, derives all totals through the ledger and
// persists header, lines, payment and side effects in one transaction.
func (uc *UseCase) Create(ctx context.Context, companyID, userID string, kind ledger.Kind, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if kind == ledger.KindTransfer && in.PartyID == in.AccountID {
		return nil, domain.ErrInvalidInput
	}
	partyName, err := uc.checkParty(kind, companyID, in.PartyID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkAccount(companyID, in.AccountID, in.Paid, kind); err != nil {
		return nil, err
	}

	draft, err := uc.buildDraft(ctx, companyID, kind, in.Lines)
	if err != nil {
		return nil, err
	}
	draft.DiscountType = ledger.DiscountType(in.DiscountType)
	draft.DiscountValue = in.DiscountValue
	draft.TaxRate = in.TaxRate
	draft.BasePay = in.BasePay
	draft.Overtime = in.Overtime
	draft.Paid = in.Paid
	draft.Recompute()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	date, err := parseDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("%s-%d", numberPrefixes[kind], now.Unix())
	}

	doc := &entity.Document{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Kind:          kind,
		Number:        number,
		Date:          date,
		PartyID:       in.PartyID,
		AccountID:     in.AccountID,
		DiscountType:  draft.DiscountType,
		DiscountValue: draft.DiscountValue,
		TaxRate:       draft.TaxRate,
		BasePay:       draft.BasePay,
		Overtime:      draft.Overtime,
		Note:          in.Note,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyTotals(doc, draft)
	lines := linesFromDraft(doc.ID, draft)

	var payment *entity.Payment
	err = uc.tx.Run(ctx, func(r TxRepos) error {
		if err := r.Documents.Create(doc); err != nil {
			return err
		}
		for _, line := range lines {
			if err := r.Documents.CreateLine(line); err != nil {
				return err
			}
		}
		if err := applyStock(r, doc, lines, 1); err != nil {
			return err
		}
		if kind == ledger.KindTransfer {
			return applyTransfer(r, doc, 1)
		}
		if doc.Paid.IsPositive() && doc.AccountID != "" {
			payment = &entity.Payment{
				ID:         uuid.New().String(),
				DocumentID: doc.ID,
				AccountID:  doc.AccountID,
				Amount:     doc.Paid,
				Date:       date,
				CreatedAt:  now,
			}
			if err := r.Documents.CreatePayment(payment); err != nil {
				return err
			}
			delta := doc.Paid.Mul(decimal.NewFromInt(int64(paymentSign(kind))))
			if !delta.IsZero() {
				if err := r.Accounts.AdjustBalance(doc.AccountID, delta); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(doc, partyName, lines)
	if payment != nil {
		resp.Payments = append(resp.Payments, toPaymentResponse(payment))
	}
	return resp, nil
}

// Update applies an edit to an existing document. The cumulative paid amount
// is frozen; the request's adjustment amount is an incremental payment that is
// validated against the recomputed total, recorded as its own payment row and
// folded into the cumulative paid on commit.
func (uc *UseCase) Update(ctx context.Context, companyID string, kind ledger.Kind, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	doc, oldLines, err := uc.load(companyID, kind, id)
	if err != nil {
		return nil, err
	}

	lineReqs := in.Lines
	if lineReqs == nil {
		lineReqs = lineRequestsFromEntities(kind, oldLines)
	}
	draft, err := uc.buildDraft(ctx, companyID, kind, lineReqs)
	if err != nil {
		return nil, err
	}
	draft.DiscountType = doc.DiscountType
	draft.DiscountValue = doc.DiscountValue
	draft.TaxRate = doc.TaxRate
	draft.BasePay = doc.BasePay
	draft.Overtime = doc.Overtime
	if in.DiscountType != nil {
		draft.DiscountType = ledger.DiscountType(*in.DiscountType)
	}
	if in.DiscountValue != nil {
		draft.DiscountValue = *in.DiscountValue
	}
	if in.TaxRate != nil {
		draft.TaxRate = *in.TaxRate
	}
	if in.BasePay != nil {
		draft.BasePay = *in.BasePay
	}
	if in.Overtime != nil {
		draft.Overtime = *in.Overtime
	}
	draft.Paid = doc.Paid
	draft.Adjustment = in.AdjustmentAmount
	draft.Recompute()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	accountID := doc.AccountID
	if in.AccountID != "" {
		accountID = in.AccountID
	}
	if kind == ledger.KindTransfer && accountID == doc.PartyID {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkAccount(companyID, accountID, in.AdjustmentAmount, kind); err != nil {
		return nil, err
	}

	// Old transfer movement, captured before the header mutates below.
	oldTransfer := &entity.Document{AccountID: doc.AccountID, PartyID: doc.PartyID, Total: doc.Total}

	now := time.Now()
	if in.Date != "" {
		if doc.Date, err = parseDate(in.Date, now); err != nil {
			return nil, err
		}
	}
	if in.Note != nil {
		doc.Note = *in.Note
	}
	doc.AccountID = accountID
	doc.DiscountType = draft.DiscountType
	doc.DiscountValue = draft.DiscountValue
	doc.TaxRate = draft.TaxRate
	doc.BasePay = draft.BasePay
	doc.Overtime = draft.Overtime
	doc.UpdatedAt = now

	newLines := linesFromDraft(doc.ID, draft)
	adjustment := in.AdjustmentAmount
	var payment *entity.Payment

	err = uc.tx.Run(ctx, func(r TxRepos) error {
		// Reverse the old side effects, then apply the new set.
		if kind == ledger.KindTransfer {
			if err := applyTransfer(r, oldTransfer, -1); err != nil {
				return err
			}
		}
		if err := applyStock(r, doc, oldLines, -1); err != nil {
			return err
		}
		if err := r.Documents.DeleteLines(doc.ID); err != nil {
			return err
		}
		for _, line := range newLines {
			if err := r.Documents.CreateLine(line); err != nil {
				return err
			}
		}
		if err := applyStock(r, doc, newLines, 1); err != nil {
			return err
		}
		if kind != ledger.KindTransfer && adjustment.IsPositive() && doc.AccountID != "" {
			payment = &entity.Payment{
				ID:         uuid.New().String(),
				DocumentID: doc.ID,
				AccountID:  doc.AccountID,
				Amount:     adjustment,
				Date:       doc.Date,
				Note:       "adjustment",
				CreatedAt:  now,
			}
			if err := r.Documents.CreatePayment(payment); err != nil {
				return err
			}
			delta := adjustment.Mul(decimal.NewFromInt(int64(paymentSign(kind))))
			if !delta.IsZero() {
				if err := r.Accounts.AdjustBalance(doc.AccountID, delta); err != nil {
					return err
				}
			}
		}
		// Fold the adjustment into the cumulative paid before persisting.
		applyTotals(doc, draft)
		doc.Paid = draft.Paid.Add(adjustment)
		doc.Due = doc.Total.Sub(doc.Paid)
		if kind == ledger.KindTransfer {
			if err := applyTransfer(r, doc, 1); err != nil {
				return err
			}
		}
		return r.Documents.Update(doc)
	})
	if err != nil {
		return nil, err
	}

	partyName, _ := uc.partyName(kind, doc.PartyID)
	resp := toResponse(doc, partyName, newLines)
	if payment != nil {
		resp.Payments = append(resp.Payments, toPaymentResponse(payment))
	}
	return resp, nil
}

// Get returns one document with lines and payments.
func (uc *UseCase) Get(ctx context.Context, companyID string, kind ledger.Kind, id string) (*dto.DocumentResponse, error) {
	doc, lines, err := uc.load(companyID, kind, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.docRepo.GetPayments(id)
	if err != nil {
		return nil, err
	}
	partyName, _ := uc.partyName(kind, doc.PartyID)
	resp := toResponse(doc, partyName, lines)
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp, nil
}

// List returns a page of document headers (no lines).
func (uc *UseCase) List(ctx context.Context, companyID string, f repository.DocumentFilter) (*dto.DocumentListResponse, error) {
	if !f.Kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	docs, err := uc.docRepo.ListByCompany(companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *toResponse(doc, "", nil))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Delete removes a document after reversing its stock and account effects.
func (uc *UseCase) Delete(ctx context.Context, companyID string, kind ledger.Kind, id string) error {
	doc, lines, err := uc.load(companyID, kind, id)
	if err != nil {
		return err
	}
	payments, err := uc.docRepo.GetPayments(id)
	if err != nil {
		return err
	}
	sign := paymentSign(kind)
	return uc.tx.Run(ctx, func(r TxRepos) error {
		if err := applyStock(r, doc, lines, -1); err != nil {
			return err
		}
		if kind == ledger.KindTransfer {
			if err := applyTransfer(r, doc, -1); err != nil {
				return err
			}
		}
		for _, p := range payments {
			delta := p.Amount.Mul(decimal.NewFromInt(int64(-sign)))
			if !delta.IsZero() {
				if err := r.Accounts.AdjustBalance(p.AccountID, delta); err != nil {
					return err
				}
			}
		}
		// Lines and payments cascade with the header row.
		return r.Documents.Delete(doc.ID)
	})
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *UseCase) load(companyID string, kind ledger.Kind, id string) (*entity.Document, []*entity.DocumentLine, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil || doc.Kind != kind {
		return nil, nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	lines, err := uc.docRepo.GetLines(id)
	if err != nil {
		return nil, nil, err
	}
	return doc, lines, nil
}

// buildDraft replays the request lines through the ledger so every derived
// value is recomputed server-side. For product-backed kinds a zero unit amount
// falls back to the product's canonical price (sales side) or cost (purchase
// side), and the product's company is verified. Voucher lines resolve through
// the particulars catalog, which prefills the unit amount when it knows one.
func (uc *UseCase) buildDraft(ctx context.Context, companyID string, kind ledger.Kind, lineReqs []dto.DocumentLineRequest) (*ledger.Draft, error) {
	if len(lineReqs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var cat ledger.Catalog
	if uc.catalog != nil && (kind == ledger.KindExpenseVoucher || kind == ledger.KindIncomeVoucher) {
		cat, _ = uc.catalog.Resolver(ctx, companyID, catalog.TypeParticulars)
	}
	draft := ledger.NewDraft(kind)
	for i, ln := range lineReqs {
		group := ledger.GroupNone
		if kind == ledger.KindSalary {
			group = ledger.Group(ln.Group)
			if group == ledger.GroupNone {
				group = ledger.GroupEarning
			}
		}
		if i == 0 {
			draft.Lines[0].Group = group
		} else {
			if err := draft.AddGroupLine(group); err != nil {
				return nil, err
			}
		}
		if err := draft.SetLineReference(i, ln.ReferenceID, cat); err != nil {
			return nil, err
		}
		amount := ln.UnitAmount
		if kind.UsesQuantity() {
			product, err := uc.productRepo.GetByID(ln.ReferenceID)
			if err != nil || product == nil {
				return nil, domain.ErrNotFound
			}
			if product.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
			if amount.IsZero() {
				switch kind {
				case ledger.KindPurchase, ledger.KindPurchaseReturn:
					amount = product.Cost
				default:
					amount = product.Price
				}
			}
			qty := ln.Quantity
			if qty.IsZero() {
				qty = decimal.NewFromInt(1)
			}
			if err := draft.SetLineQuantity(i, qty); err != nil {
				return nil, err
			}
		}
		if !amount.IsZero() || cat == nil {
			if err := draft.SetLineUnitAmount(i, amount); err != nil {
				return nil, err
			}
		}
	}
	return draft, nil
}

// checkParty verifies the document's counterpart belongs to the company and
// returns its display name. Vouchers and transfers use an account as party.
func (uc *UseCase) checkParty(kind ledger.Kind, companyID, partyID string) (string, error) {
	name, err := uc.partyName(kind, partyID)
	if err != nil {
		return "", err
	}
	owner, err := uc.partyCompany(kind, partyID)
	if err != nil {
		return "", err
	}
	if owner != companyID {
		return "", domain.ErrForbidden
	}
	return name, nil
}

func (uc *UseCase) partyName(kind ledger.Kind, partyID string) (string, error) {
	switch kind {
	case ledger.KindSale, ledger.KindSaleReturn, ledger.KindQuotation:
		c, err := uc.customerRepo.GetByID(partyID)
		if err != nil || c == nil {
			return "", domain.ErrNotFound
		}
		return c.Name, nil
	case ledger.KindPurchase, ledger.KindPurchaseReturn:
		s, err := uc.supplierRepo.GetByID(partyID)
		if err != nil || s == nil {
			return "", domain.ErrNotFound
		}
		return s.Name, nil
	case ledger.KindSalary:
		e, err := uc.employeeRepo.GetByID(partyID)
		if err != nil || e == nil {
			return "", domain.ErrNotFound
		}
		return e.Name, nil
	default:
		a, err := uc.accountRepo.GetByID(partyID)
		if err != nil || a == nil {
			return "", domain.ErrNotFound
		}
		return a.Name, nil
	}
}

func (uc *UseCase) partyCompany(kind ledger.Kind, partyID string) (string, error) {
	switch kind {
	case ledger.KindSale, ledger.KindSaleReturn, ledger.KindQuotation:
		c, _ := uc.customerRepo.GetByID(partyID)
		if c == nil {
			return "", domain.ErrNotFound
		}
		return c.CompanyID, nil
	case ledger.KindPurchase, ledger.KindPurchaseReturn:
		s, _ := uc.supplierRepo.GetByID(partyID)
		if s == nil {
			return "", domain.ErrNotFound
		}
		return s.CompanyID, nil
	case ledger.KindSalary:
		e, _ := uc.employeeRepo.GetByID(partyID)
		if e == nil {
			return "", domain.ErrNotFound
		}
		return e.CompanyID, nil
	default:
		a, _ := uc.accountRepo.GetByID(partyID)
		if a == nil {
			return "", domain.ErrNotFound
		}
		return a.CompanyID, nil
	}
}

// checkAccount requires a valid settlement account whenever money moves.
func (uc *UseCase) checkAccount(companyID, accountID string, amount decimal.Decimal, kind ledger.Kind) error {
	needed := amount.IsPositive() || kind == ledger.KindTransfer
	if !needed {
		return nil
	}
	if accountID == "" {
		return domain.ErrInvalidInput
	}
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil || account == nil {
		return domain.ErrNotFound
	}
	if account.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

// applyStock moves product stock for the document's lines. sign +1 applies the
// kind's own direction, -1 reverses it (update/delete paths).
func applyStock(r TxRepos, doc *entity.Document, lines []*entity.DocumentLine, sign int) error {
	dir := doc.Kind.StockDirection() * sign
	if dir == 0 {
		return nil
	}
	for _, line := range lines {
		delta := line.Quantity.Mul(decimal.NewFromInt(int64(dir)))
		if err := r.Products.AdjustStock(line.ReferenceID, delta); err != nil {
			return err
		}
	}
	return nil
}

// applyTransfer moves the total from the source account (AccountID) to the
// destination account (PartyID). sign -1 reverses a previous transfer.
func applyTransfer(r TxRepos, doc *entity.Document, sign int) error {
	amount := doc.Total.Mul(decimal.NewFromInt(int64(sign)))
	if err := r.Accounts.AdjustBalance(doc.AccountID, amount.Neg()); err != nil {
		return err
	}
	return r.Accounts.AdjustBalance(doc.PartyID, amount)
}

func applyTotals(doc *entity.Document, draft *ledger.Draft) {
	doc.Subtotal = draft.Totals.Subtotal
	doc.Discount = draft.Totals.DiscountAmount
	doc.Tax = draft.Totals.TaxAmount
	doc.Deductions = draft.Totals.Deductions
	doc.Total = draft.Totals.Total
	doc.Paid = draft.Paid
	doc.Due = draft.Totals.Due
}

func linesFromDraft(documentID string, draft *ledger.Draft) []*entity.DocumentLine {
	lines := make([]*entity.DocumentLine, 0, len(draft.Lines))
	for i, l := range draft.Lines {
		lines = append(lines, &entity.DocumentLine{
			ID:          uuid.New().String(),
			DocumentID:  documentID,
			ReferenceID: l.ReferenceID,
			Group:       l.Group,
			Position:    i,
			Quantity:    l.Quantity,
			UnitAmount:  l.UnitAmount,
			LineTotal:   l.LineTotal,
		})
	}
	return lines
}

func lineRequestsFromEntities(kind ledger.Kind, lines []*entity.DocumentLine) []dto.DocumentLineRequest {
	reqs := make([]dto.DocumentLineRequest, 0, len(lines))
	for _, l := range lines {
		reqs = append(reqs, dto.DocumentLineRequest{
			ReferenceID: l.ReferenceID,
			Group:       string(l.Group),
			Quantity:    l.Quantity,
			UnitAmount:  l.UnitAmount,
		})
	}
	return reqs
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

func toResponse(doc *entity.Document, partyName string, lines []*entity.DocumentLine) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:            doc.ID,
		CompanyID:     doc.CompanyID,
		Kind:          string(doc.Kind),
		Number:        doc.Number,
		Date:          doc.Date.Format(dateLayout),
		PartyID:       doc.PartyID,
		PartyName:     partyName,
		AccountID:     doc.AccountID,
		Subtotal:      doc.Subtotal,
		DiscountType:  string(doc.DiscountType),
		DiscountValue: doc.DiscountValue,
		Discount:      doc.Discount,
		TaxRate:       doc.TaxRate,
		Tax:           doc.Tax,
		BasePay:       doc.BasePay,
		Overtime:      doc.Overtime,
		Deductions:    doc.Deductions,
		Total:         doc.Total,
		Paid:          doc.Paid,
		Due:           doc.Due,
		Note:          doc.Note,
		Lines:         make([]dto.DocumentLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.DocumentLineResponse{
			ID:          l.ID,
			ReferenceID: l.ReferenceID,
			Group:       string(l.Group),
			Position:    l.Position,
			Quantity:    l.Quantity,
			UnitAmount:  l.UnitAmount,
			LineTotal:   l.LineTotal,
		})
	}
	return resp
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        p.ID,
		AccountID: p.AccountID,
		Amount:    p.Amount,
		Date:      p.Date.Format(dateLayout),
		Note:      p.Note,
	}
}
