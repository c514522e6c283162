package repository

import (
	"time"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
)

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	Kind     ledger.Kind
	PartyID  string
	DateFrom time.Time
	DateTo   time.Time
	Limit    int
	Offset   int
}

// DocumentRepository persistence port for documents, their lines and payments.
// Header, lines and payments of one document are always written inside the
// same transaction (TxRunner hands out tx-bound instances).
type DocumentRepository interface {
	Create(doc *entity.Document) error
	CreateLine(line *entity.DocumentLine) error
	CreatePayment(payment *entity.Payment) error
	Update(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	GetLines(documentID string) ([]*entity.DocumentLine, error)
	GetPayments(documentID string) ([]*entity.Payment, error)
	ListByCompany(companyID string, f DocumentFilter) ([]*entity.Document, error)
	DeleteLines(documentID string) error
	Delete(id string) error
}
