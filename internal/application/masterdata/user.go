package masterdata

import (
	"context"
	"time"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

// UserUseCase admin operations on users. Creation goes through the auth
// package (password hashing); here only listing, role/status edits and removal.
type UserUseCase struct {
	repo      repository.UserRepository
	validator *validate.Validator
}

func NewUserUseCase(repo repository.UserRepository, validator *validate.Validator) *UserUseCase {
	return &UserUseCase{repo: repo, validator: validator}
}

func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *UserUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.DepartmentID != nil {
		user.DepartmentID = *in.DepartmentID
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *UserUseCase) load(companyID, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		DepartmentID: u.DepartmentID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
