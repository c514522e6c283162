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

// CustomerUseCase CRUD for customers (the sales-side party).
type CustomerUseCase struct {
	repo      repository.CustomerRepository
	cache     *catalog.Cache
	validator *validate.Validator
}

func NewCustomerUseCase(repo repository.CustomerRepository, cache *catalog.Cache, validator *validate.Validator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, cache: cache, validator: validator}
}

func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeCustomers)
	return customerResponse(customer), nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PartyResponse, error) {
	customer, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	return customerResponse(customer), nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	customer.Name = in.Name
	customer.TaxID = in.TaxID
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeCustomers)
	return customerResponse(customer), nil
}

func (uc *CustomerUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.PartyListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *customerResponse(c))
	}
	return &dto.PartyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(companyID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeCustomers)
	return nil
}

func (uc *CustomerUseCase) load(companyID, id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func customerResponse(c *entity.Customer) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// SupplierUseCase CRUD for suppliers (the purchase-side party).
type SupplierUseCase struct {
	repo      repository.SupplierRepository
	cache     *catalog.Cache
	validator *validate.Validator
}

func NewSupplierUseCase(repo repository.SupplierRepository, cache *catalog.Cache, validator *validate.Validator) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, cache: cache, validator: validator}
}

func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeSuppliers)
	return supplierResponse(supplier), nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PartyResponse, error) {
	supplier, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	return supplierResponse(supplier), nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	supplier, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	supplier.Name = in.Name
	supplier.TaxID = in.TaxID
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	supplier.Address = in.Address
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeSuppliers)
	return supplierResponse(supplier), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.PartyListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *supplierResponse(s))
	}
	return &dto.PartyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(companyID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeSuppliers)
	return nil
}

func (uc *SupplierUseCase) load(companyID, id string) (*entity.Supplier, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return supplier, nil
}

func supplierResponse(s *entity.Supplier) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
