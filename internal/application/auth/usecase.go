// Package auth covers registration, login and logout.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/catalog"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
	"github.com/ledgerdesk/ledgerdesk-api/pkg/jwt"
)

// JWTConfig token generation parameters.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase registration, login and logout.
type UseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	cache       *catalog.Cache
	jwtCfg      JWTConfig
	validator   *validate.Validator
}

// NewUseCase wires the auth use case. cache may be nil.
func NewUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, cache *catalog.Cache, jwtCfg JWTConfig, validator *validate.Validator) *UseCase {
	return &UseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		cache:       cache,
		jwtCfg:      jwtCfg,
		validator:   validator,
	}
}

// Register creates a user with a bcrypt-hashed password. Emails are unique
// across all companies because login resolves by email alone; returns
// ErrEmailAlreadyExists when the address is taken anywhere.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		DepartmentID: in.DepartmentID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies the credentials and returns a signed token plus the user.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Logout drops the company's cached catalog lists so the next session starts
// from the database. The token itself simply expires.
func (uc *UseCase) Logout(ctx context.Context, companyID string) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Invalidate(ctx, companyID)
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
