// Package masterdata holds the CRUD use cases for the reference records the
// documents hang off: companies, departments, users, products, customers,
// suppliers, accounts and employees. Every write invalidates the company's
// cached catalog lists so the document forms never see stale dropdowns.
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

// CompanyUseCase CRUD for companies (tenants).
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	validator *validate.Validator
}

func NewCompanyUseCase(repo repository.CompanyRepository, validator *validate.Validator) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, validator: validator}
}

func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		TaxID:     in.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.Name = in.Name
	company.Email = in.Email
	company.Phone = in.Phone
	company.Address = in.Address
	company.TaxID = in.TaxID
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(id)
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// invalidate drops the company's cached lists, ignoring cache errors: a write
// must not fail because Redis hiccuped, the TTL bounds the staleness anyway.
func invalidate(ctx context.Context, cache *catalog.Cache, companyID string, types ...catalog.Type) {
	if cache == nil {
		return
	}
	_ = cache.Invalidate(ctx, companyID, types...)
}
