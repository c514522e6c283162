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

// EmployeeUseCase CRUD for employees. BasePay seeds the salary document form.
type EmployeeUseCase struct {
	repo           repository.EmployeeRepository
	departmentRepo repository.DepartmentRepository
	cache          *catalog.Cache
	validator      *validate.Validator
}

func NewEmployeeUseCase(repo repository.EmployeeRepository, departmentRepo repository.DepartmentRepository, cache *catalog.Cache, validator *validate.Validator) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, departmentRepo: departmentRepo, cache: cache, validator: validator}
}

func (uc *EmployeeUseCase) Create(ctx context.Context, companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.checkDepartment(companyID, in.DepartmentID); err != nil {
		return nil, err
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		DepartmentID: in.DepartmentID,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Designation:  in.Designation,
		BasePay:      in.BasePay,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeEmployees)
	return toEmployeeResponse(employee), nil
}

func (uc *EmployeeUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func (uc *EmployeeUseCase) Update(ctx context.Context, companyID, id string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	employee, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkDepartment(companyID, in.DepartmentID); err != nil {
		return nil, err
	}
	employee.DepartmentID = in.DepartmentID
	employee.Name = in.Name
	employee.Email = in.Email
	employee.Phone = in.Phone
	employee.Designation = in.Designation
	employee.BasePay = in.BasePay
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeEmployees)
	return toEmployeeResponse(employee), nil
}

func (uc *EmployeeUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.EmployeeListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *EmployeeUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(companyID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, companyID, catalog.TypeEmployees)
	return nil
}

func (uc *EmployeeUseCase) checkDepartment(companyID, departmentID string) error {
	if departmentID == "" {
		return nil
	}
	department, err := uc.departmentRepo.GetByID(departmentID)
	if err != nil {
		return err
	}
	if department == nil {
		return domain.ErrNotFound
	}
	if department.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *EmployeeUseCase) load(companyID, id string) (*entity.Employee, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return employee, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:           e.ID,
		CompanyID:    e.CompanyID,
		DepartmentID: e.DepartmentID,
		Name:         e.Name,
		Email:        e.Email,
		Phone:        e.Phone,
		Designation:  e.Designation,
		BasePay:      e.BasePay,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
