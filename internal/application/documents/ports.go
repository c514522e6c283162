package documents

import (
	"context"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

// TxRepos are the repositories a document commit touches, bound to one
// transaction by the runner.
type TxRepos struct {
	Documents repository.DocumentRepository
	Products  repository.ProductRepository
	Accounts  repository.AccountRepository
}

// TxRunner executes fn inside a single database transaction. The document
// header, its lines, the payment row and every stock/balance side effect
// commit together or not at all.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
