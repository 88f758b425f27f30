package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

type fakeUserStore struct {
	users []*entity.User
}

func (r *fakeUserStore) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserStore) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserStore) List(_ context.Context, f repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	var matched []*entity.User
	for _, u := range r.users {
		if u.CompanyID != f.CompanyID {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.IsActive != nil {
			status := "inactive"
			if *f.IsActive {
				status = "active"
			}
			if u.Status != status {
				continue
			}
		}
		matched = append(matched, u)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func validUserRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Email:    "ana@empresa.co",
		Password: "clave-segura-123",
		Name:     "Ana María",
		Role:     entity.RoleContador,
	}
}

func TestUserCreate_HasheaPasswordConBcrypt(t *testing.T) {
	repo := &fakeUserStore{}
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	resp, err := uc.Create(context.Background(), "c-1", validUserRequest())
	require.NoError(t, err)

	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, entity.RoleContador, resp.Role)

	require.Len(t, repo.users, 1)
	stored := repo.users[0]
	assert.NotEqual(t, "clave-segura-123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura-123")))
}

func TestUserCreate_PasswordCorto(t *testing.T) {
	uc := usecase.NewUserUseCase(&fakeUserStore{}, logger.Nop())

	req := validUserRequest()
	req.Password = "corto"

	_, err := uc.Create(context.Background(), "c-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_RolDesconocido(t *testing.T) {
	uc := usecase.NewUserUseCase(&fakeUserStore{}, logger.Nop())

	req := validUserRequest()
	req.Role = "gerente"

	_, err := uc.Create(context.Background(), "c-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_EmailDuplicadoEnLaMismaEmpresa(t *testing.T) {
	repo := &fakeUserStore{}
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	_, err := uc.Create(context.Background(), "c-1", validUserRequest())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "c-1", validUserRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// el mismo email en otra empresa es válido
	_, err = uc.Create(context.Background(), "c-2", validUserRequest())
	assert.NoError(t, err)
}

func TestUserList_NuncaIncluyeHashes(t *testing.T) {
	repo := &fakeUserStore{}
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	_, err := uc.Create(context.Background(), "c-1", validUserRequest())
	require.NoError(t, err)

	out, err := uc.List(context.Background(), "c-1", dto.UserListQuery{})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)

	// La respuesta es la estructura completa: si alguien añade el hash al
	// DTO este test lo delata.
	assert.Equal(t, dto.UserResponse{
		ID:        out.Data[0].ID,
		CompanyID: "c-1",
		Email:     "ana@empresa.co",
		Name:      "Ana María",
		Role:      entity.RoleContador,
		Status:    "active",
	}, out.Data[0])
}

func TestUserList_FiltroPorRol(t *testing.T) {
	repo := &fakeUserStore{}
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	_, err := uc.Create(context.Background(), "c-1", validUserRequest())
	require.NoError(t, err)

	admin := validUserRequest()
	admin.Email = "admin@empresa.co"
	admin.Role = entity.RoleAdmin
	_, err = uc.Create(context.Background(), "c-1", admin)
	require.NoError(t, err)

	out, err := uc.List(context.Background(), "c-1", dto.UserListQuery{Role: entity.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "admin@empresa.co", out.Data[0].Email)
}

func TestUserList_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(&fakeUserStore{}, logger.Nop())

	_, err := uc.List(context.Background(), "c-1", dto.UserListQuery{Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserGetByID_OtraEmpresaEsNotFound(t *testing.T) {
	repo := &fakeUserStore{}
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	created, err := uc.Create(context.Background(), "c-1", validUserRequest())
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "c-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
