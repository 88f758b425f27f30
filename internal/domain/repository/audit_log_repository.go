package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// AuditLogFilter conjunción de predicados opcionales sobre el log de
// auditoría. CompanyID es obligatorio; el resto, si está en cero, no
// restringe. StartDate/EndDate acotan created_at (rango cerrado).
type AuditLogFilter struct {
	CompanyID  string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	StartDate  time.Time
	EndDate    time.Time
}

// AuditLogRepository persistencia del log de auditoría (append-only).
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter, limit, offset int) ([]*entity.AuditLog, error)
	Count(ctx context.Context, filter AuditLogFilter) (int64, error)
	// DeleteBefore elimina entradas con created_at < before. companyID vacío
	// barre todas las empresas (política de operación, no de tenant).
	DeleteBefore(ctx context.Context, before time.Time, companyID string) (int64, error)
}
