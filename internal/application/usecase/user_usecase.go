// Package usecase casos de uso de administración de usuarios.
package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

var validRole = map[string]bool{
	entity.RoleAdmin:    true,
	entity.RoleContador: true,
	entity.RoleAuxiliar: true,
}

// UserUseCase casos de uso de usuarios del back office.
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// Create registra un usuario en la empresa del caller. El password se
// hashea con bcrypt; el email es único por empresa.
func (uc *UserUseCase) Create(ctx context.Context, companyID string, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: el password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	if !validRole[req.Role] {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, req.Role)
	}

	existing, err := uc.repo.GetByEmailAndCompany(ctx, req.Email, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		CompanyID:    companyID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("company_id", companyID).Str("role", user.Role).Msg("usuario creado")

	resp := toUserResponse(user)
	return &resp, nil
}

// List devuelve la página de usuarios de la empresa, sin hashes.
func (uc *UserUseCase) List(ctx context.Context, companyID string, q dto.UserListQuery) (*dto.UserListResponse, error) {
	q.DefaultPage()
	if q.Role != "" && !validRole[q.Role] {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, q.Role)
	}
	filter := repository.UserFilter{CompanyID: companyID, Role: q.Role}
	switch q.Active {
	case "":
	case "true":
		v := true
		filter.IsActive = &v
	case "false":
		v := false
		filter.IsActive = &v
	default:
		return nil, fmt.Errorf("%w: active debe ser true o false", domain.ErrInvalidInput)
	}

	users, err := uc.repo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Data: make([]dto.UserResponse, 0, len(users)),
		Meta: dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}
	for _, u := range users {
		out.Data = append(out.Data, toUserResponse(u))
	}
	return out, nil
}

// GetByID devuelve el usuario; fuera de la empresa del caller es inexistente.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
	}
}
