package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/contable-pro/internal/application/auth"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/config"
	"github.com/tu-usuario/contable-pro/pkg/jwt"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, f repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID == f.CompanyID {
			out = append(out, u)
		}
	}
	return out, nil
}

var testJWT = config.JWTConfig{Secret: "secreto-de-pruebas", Expiration: 60, Issuer: "contable-pro"}

func newUseCase(repo *fakeUserRepo) *auth.UseCase {
	return auth.NewUseCase(repo, testJWT, logger.Nop())
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		CompanyID: "c-1",
		Email:     "ana@empresa.co",
		Password:  "clave-segura-123",
		Name:      "Ana",
		Role:      entity.RoleAdmin,
	}
}

func TestRegister_EmiteTokenConClaims(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{})

	resp, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@empresa.co", resp.User.Email)

	userID, companyID, role, err := jwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, "c-1", companyID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRegister_EmailDuplicadoEnLaEmpresa(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{})

	_, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolPorDefectoAuxiliar(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{})

	req := validRegister()
	req.Role = ""
	resp, err := uc.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAuxiliar, resp.User.Role)
}

func TestRegister_PasswordCorto(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{})

	req := validRegister()
	req.Password = "corta"

	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo)

	_, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@empresa.co",
		Password: "clave-segura-123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo)

	_, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@empresa.co",
		Password: "otra-clave",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Usuario inexistente y password incorrecto deben responder igual.
func TestLogin_UsuarioInexistenteMismoError(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{})

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@empresa.co",
		Password: "cualquiera",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo)

	_, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	repo.users[0].Status = "suspended"

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@empresa.co",
		Password: "clave-segura-123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_NuncaDevuelveHash(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := newUseCase(repo)

	_, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@empresa.co",
		Password: "clave-segura-123",
	})
	require.NoError(t, err)

	// la respuesta expone solo campos públicos del usuario
	assert.Equal(t, dto.UserResponse{
		ID:        resp.User.ID,
		CompanyID: "c-1",
		Email:     "ana@empresa.co",
		Name:      "Ana",
		Role:      entity.RoleAdmin,
		Status:    "active",
	}, resp.User)
}
