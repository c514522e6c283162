package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase dashboard aggregates and report exports.
type UseCase struct {
	reportRepo  repository.ReportRepository
	docRepo     repository.DocumentRepository
	companyRepo repository.CompanyRepository
	renderers   map[string]Renderer
}

// NewUseCase wires the report use case. renderers is keyed by format
// ("csv", "pdf", "xml").
func NewUseCase(
	reportRepo repository.ReportRepository,
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	renderers map[string]Renderer,
) *UseCase {
	return &UseCase{
		reportRepo:  reportRepo,
		docRepo:     docRepo,
		companyRepo: companyRepo,
		renderers:   renderers,
	}
}

// Dashboard aggregates persisted documents for the period. With no dates given
// the period is the current month to date.
func (uc *UseCase) Dashboard(ctx context.Context, companyID, fromStr, toStr string) (*dto.DashboardResponse, error) {
	now := time.Now()
	from, to, err := parseRange(fromStr, toStr, now)
	if err != nil {
		return nil, err
	}

	kindTotals, err := uc.reportRepo.GetKindTotals(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	cash, err := uc.reportRepo.GetAccountBalances(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		From:        from.Format(dateLayout),
		To:          to.Format(dateLayout),
		Kinds:       make([]dto.KindSummary, 0, len(kindTotals)),
		CashBalance: cash,
	}
	for _, kt := range kindTotals {
		resp.Kinds = append(resp.Kinds, dto.KindSummary{
			Kind:  string(kt.Kind),
			Count: kt.Count,
			Total: kt.Total,
			Paid:  kt.Paid,
			Due:   kt.Due,
		})
		switch kt.Kind {
		case ledger.KindSale:
			resp.SalesTotal = kt.Total
			resp.Receivables = kt.Due
		case ledger.KindPurchase:
			resp.Payables = kt.Due
		case ledger.KindExpenseVoucher, ledger.KindSalary:
			resp.ExpenseTotal = resp.ExpenseTotal.Add(kt.Total)
		}
	}
	return resp, nil
}

// Export renders the filtered document listing in the requested format and
// returns the bytes plus a download filename.
func (uc *UseCase) Export(ctx context.Context, companyID, format string, f repository.DocumentFilter) ([]byte, string, error) {
	renderer, ok := uc.renderers[strings.ToLower(format)]
	if !ok {
		return nil, "", domain.ErrInvalidInput
	}
	if !f.Kind.Valid() {
		return nil, "", domain.ErrInvalidInput
	}

	companyName := ""
	if company, err := uc.companyRepo.GetByID(companyID); err == nil && company != nil {
		companyName = company.Name
	}

	docs, err := uc.docRepo.ListByCompany(companyID, f)
	if err != nil {
		return nil, "", err
	}

	report := &DocumentReport{
		CompanyName: companyName,
		Kind:        f.Kind,
		From:        f.DateFrom,
		To:          f.DateTo,
		GeneratedAt: time.Now(),
		Rows:        docs,
		TotalSum:    decimal.Zero,
		PaidSum:     decimal.Zero,
		DueSum:      decimal.Zero,
	}
	for _, doc := range docs {
		report.TotalSum = report.TotalSum.Add(doc.Total)
		report.PaidSum = report.PaidSum.Add(doc.Paid)
		report.DueSum = report.DueSum.Add(doc.Due)
	}

	out, err := renderer.Render(ctx, report)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s-report-%s.%s", f.Kind, report.GeneratedAt.Format(dateLayout), strings.ToLower(format))
	return out, filename, nil
}

func parseRange(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	var err error
	if fromStr != "" {
		if from, err = time.Parse(dateLayout, fromStr); err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
	}
	if toStr != "" {
		if to, err = time.Parse(dateLayout, toStr); err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return from, to, nil
}
