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

// DepartmentUseCase CRUD for departments inside a company.
type DepartmentUseCase struct {
	repo      repository.DepartmentRepository
	cache     *catalog.Cache
	validator *validate.Validator
}

func NewDepartmentUseCase(repo repository.DepartmentRepository, cache *catalog.Cache, validator *validate.Validator) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo, cache: cache, validator: validator}
}

func (uc *DepartmentUseCase) Create(ctx context.Context, companyID string, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	department := &entity.Department{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(department); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeDepartments)
	return toDepartmentResponse(department), nil
}

func (uc *DepartmentUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.DepartmentResponse, error) {
	department, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponse(department), nil
}

func (uc *DepartmentUseCase) Update(ctx context.Context, companyID, id string, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	department, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	department.Name = in.Name
	department.UpdatedAt = time.Now()
	if err := uc.repo.Update(department); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeDepartments)
	return toDepartmentResponse(department), nil
}

func (uc *DepartmentUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.DepartmentListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDepartmentResponse(d))
	}
	return &dto.DepartmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *DepartmentUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(companyID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeDepartments)
	return nil
}

func (uc *DepartmentUseCase) load(companyID, id string) (*entity.Department, error) {
	department, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.ErrNotFound
	}
	if department.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return department, nil
}

func toDepartmentResponse(d *entity.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
