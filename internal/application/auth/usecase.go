// Package auth registro y login de usuarios con emisión de JWT.
package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/config"
	"github.com/tu-usuario/contable-pro/pkg/jwt"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

// UseCase autenticación: registro inicial y login.
type UseCase struct {
	users  repository.UserRepository
	jwtCfg config.JWTConfig
	log    *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg, log: log}
}

// Register crea el usuario y devuelve un token de sesión. El rol por
// defecto es auxiliar; el primer usuario de una empresa suele registrarse
// como admin desde el onboarding.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	if req.CompanyID == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: company_id, email y password son obligatorios", domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: el password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	role := req.Role
	if role == "" {
		role = entity.RoleAuxiliar
	}
	if role != entity.RoleAdmin && role != entity.RoleContador && role != entity.RoleAuxiliar {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}

	existing, err := uc.users.GetByEmailAndCompany(ctx, req.Email, req.CompanyID)
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
		CompanyID:    req.CompanyID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("company_id", user.CompanyID).Msg("usuario registrado")
	return uc.issueToken(user)
}

// Login valida credenciales y emite un JWT. Credenciales incorrectas y
// usuarios inexistentes responden igual para no filtrar qué emails existen.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return uc.issueToken(user)
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			CompanyID: user.CompanyID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			Status:    user.Status,
		},
	}, nil
}
