package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/auth"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/entity"
)

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) ListByCompany(string, int, int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                           { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Delete(id string) error                                { delete(r.users, id); return nil }

type fakeCompanyRepo struct{ companies map[string]*entity.Company }

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) List(int, int) ([]*entity.Company, error) { return nil, nil }
func (r *fakeCompanyRepo) Update(c *entity.Company) error           { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) Delete(id string) error                   { delete(r.companies, id); return nil }

func newAuthUseCase() (*auth.UseCase, *fakeUserRepo) {
	users := &fakeUserRepo{users: make(map[string]*entity.User)}
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"comp-1": {ID: "comp-1", Name: "LedgerDesk Demo"},
		"comp-2": {ID: "comp-2", Name: "LedgerDesk Branch"},
	}}
	cfg := auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "ledgerdesk-test"}
	return auth.NewUseCase(users, companies, nil, cfg, validate.New()), users
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	uc, users := newAuthUseCase()

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "comp-1",
		Email:     "ana@example.com",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, resp.Role)
	assert.Equal(t, "ana@example.com", resp.Name, "name defaults to the email")

	stored := users.users[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash, "password must never be stored in clear")
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	uc, _ := newAuthUseCase()

	in := dto.RegisterRequest{CompanyID: "comp-1", Email: "ana@example.com", Password: "s3cret-pass"}
	_, err := uc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EmailUniqueAcrossCompanies(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "comp-1", Email: "ana@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	// Login resolves by email alone, so a second account under another
	// company would make the credentials ambiguous.
	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "comp-2", Email: "ana@example.com", Password: "other-pass",
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_UnknownCompanyRejected(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "nope", Email: "ana@example.com", Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_RoundTrip(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "comp-1", Email: "ana@example.com", Password: "s3cret-pass", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "comp-1", Email: "ana@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@example.com", Password: "wrong-pass",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_DisabledUserForbidden(t *testing.T) {
	uc, users := newAuthUseCase()

	created, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "comp-1", Email: "ana@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	users.users[created.ID].Status = "disabled"

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@example.com", Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}
