package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo PostgreSQL adapter for documents, lines and payments. One table
// set serves every document kind; the kind column discriminates.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository builds the adapter. Pass a pool or a tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, company_id, kind, number, date, party_id, account_id,
	subtotal, discount_type, discount_value, discount, tax_rate, tax,
	base_pay, overtime, deductions, total, paid, due, note, created_by, created_at, updated_at`

func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, company_id, kind, number, date, party_id, account_id,
			subtotal, discount_type, discount_value, discount, tax_rate, tax,
			base_pay, overtime, deductions, total, paid, due, note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.CompanyID, string(doc.Kind), doc.Number, doc.Date, doc.PartyID, nullable(doc.AccountID),
		doc.Subtotal, string(doc.DiscountType), doc.DiscountValue, doc.Discount, doc.TaxRate, doc.Tax,
		doc.BasePay, doc.Overtime, doc.Deductions, doc.Total, doc.Paid, doc.Due,
		doc.Note, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) CreateLine(line *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (id, document_id, reference_id, line_group, position, quantity, unit_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.DocumentID, line.ReferenceID, string(line.Group), line.Position,
		line.Quantity, line.UnitAmount, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

func (r *DocumentRepo) CreatePayment(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, document_id, account_id, amount, date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.DocumentID, payment.AccountID, payment.Amount,
		payment.Date, payment.Note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *DocumentRepo) Update(doc *entity.Document) error {
	query := `
		UPDATE documents SET number = $2, date = $3, account_id = $4,
			subtotal = $5, discount_type = $6, discount_value = $7, discount = $8,
			tax_rate = $9, tax = $10, base_pay = $11, overtime = $12, deductions = $13,
			total = $14, paid = $15, due = $16, note = $17, updated_at = $18
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Number, doc.Date, nullable(doc.AccountID),
		doc.Subtotal, string(doc.DiscountType), doc.DiscountValue, doc.Discount,
		doc.TaxRate, doc.Tax, doc.BasePay, doc.Overtime, doc.Deductions,
		doc.Total, doc.Paid, doc.Due, doc.Note, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepo) GetLines(documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, reference_id, line_group, position, quantity, unit_amount, line_total
		FROM document_lines WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		var group string
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ReferenceID, &group, &l.Position,
			&l.Quantity, &l.UnitAmount, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		l.Group = ledger.Group(group)
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *DocumentRepo) GetPayments(documentID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, document_id, account_id, amount, date, note, created_at
		FROM payments WHERE document_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.AccountID, &p.Amount, &p.Date, &p.Note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ListByCompany returns document headers matching the filter, newest first.
func (r *DocumentRepo) ListByCompany(companyID string, f repository.DocumentFilter) ([]*entity.Document, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1 AND kind = $2`)
	args := []any{companyID, string(f.Kind)}

	if f.PartyID != "" {
		args = append(args, f.PartyID)
		fmt.Fprintf(&sb, " AND party_id = $%d", len(args))
	}
	if !f.DateFrom.IsZero() {
		args = append(args, f.DateFrom)
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if !f.DateTo.IsZero() {
		args = append(args, f.DateTo)
		fmt.Fprintf(&sb, " AND date <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY date DESC, created_at DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *DocumentRepo) DeleteLines(documentID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM document_lines WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete document lines: %w", err)
	}
	return nil
}

// Delete removes the header; lines and payments go with it (ON DELETE CASCADE).
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var kind, discountType string
	var accountID *string
	err := row.Scan(
		&d.ID, &d.CompanyID, &kind, &d.Number, &d.Date, &d.PartyID, &accountID,
		&d.Subtotal, &discountType, &d.DiscountValue, &d.Discount, &d.TaxRate, &d.Tax,
		&d.BasePay, &d.Overtime, &d.Deductions, &d.Total, &d.Paid, &d.Due,
		&d.Note, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Kind = ledger.Kind(kind)
	d.DiscountType = ledger.DiscountType(discountType)
	if accountID != nil {
		d.AccountID = *accountID
	}
	return &d, nil
}
