package masterdata

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/catalog"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

// AccountUseCase CRUD for cash/bank accounts. The balance is set once at
// creation (opening balance); afterwards it only moves through payments and
// balance transfers.
type AccountUseCase struct {
	repo      repository.AccountRepository
	cache     *catalog.Cache
	validator *validate.Validator
}

func NewAccountUseCase(repo repository.AccountRepository, cache *catalog.Cache, validator *validate.Validator) *AccountUseCase {
	return &AccountUseCase{repo: repo, cache: cache, validator: validator}
}

func (uc *AccountUseCase) Create(ctx context.Context, companyID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.Account{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Type:      in.Type,
		Number:    in.Number,
		Balance:   in.Balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(account); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeAccounts)
	return toAccountResponse(account), nil
}

func (uc *AccountUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.AccountResponse, error) {
	account, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Update changes name/type/number. The balance is deliberately not editable.
func (uc *AccountUseCase) Update(ctx context.Context, companyID, id string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	account, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	account.Name = in.Name
	account.Type = in.Type
	account.Number = in.Number
	account.UpdatedAt = time.Now()
	if err := uc.repo.Update(account); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeAccounts)
	return toAccountResponse(account), nil
}

func (uc *AccountUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.AccountListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a))
	}
	return &dto.AccountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *AccountUseCase) Delete(ctx context.Context, companyID, id string) error {
	account, err := uc.load(companyID, id)
	if err != nil {
		return err
	}
	// Refuse to drop an account that still holds money.
	if !account.Balance.IsZero() {
		return domain.ErrConflict
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeAccounts)
	return nil
}

func (uc *AccountUseCase) load(companyID, id string) (*entity.Account, error) {
	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	if account.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return account, nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:        a.ID,
		CompanyID: a.CompanyID,
		Name:      a.Name,
		Type:      a.Type,
		Number:    a.Number,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
