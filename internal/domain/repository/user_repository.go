package repository

import (
	"context"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// UserFilter predicados opcionales para listar usuarios.
type UserFilter struct {
	CompanyID string
	Role      string
	IsActive  *bool
}

// UserRepository persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.User, error)
}
