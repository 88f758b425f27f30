package audit

import (
	"context"
	"time"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

// Entry datos mínimos para registrar una acción auditable.
// UserID vacío significa acción del sistema (ej. webhook entrante).
type Entry struct {
	CompanyID  string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	IPAddress  string
}

// UseCase casos de uso del log de auditoría: registro, consulta filtrada,
// exportación CSV y barrido de retención.
type UseCase struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AuditLogRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// Record registra una entrada de auditoría. Es best-effort por contrato:
// un fallo de almacenamiento se loguea y se traga, nunca se propaga al
// caller para no bloquear la operación de negocio que lo originó.
func (uc *UseCase) Record(ctx context.Context, in Entry) {
	if in.CompanyID == "" || in.Action == "" || in.EntityType == "" {
		uc.log.Warn().
			Str("action", in.Action).
			Str("entity_type", in.EntityType).
			Msg("entrada de auditoría incompleta, descartada")
		return
	}
	var userID *string
	if in.UserID != "" {
		userID = &in.UserID
	}
	log := &entity.AuditLog{
		CompanyID:  in.CompanyID,
		UserID:     userID,
		Action:     in.Action,
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		IPAddress:  in.IPAddress,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, log); err != nil {
		uc.log.Error().Err(err).
			Str("company_id", in.CompanyID).
			Str("action", in.Action).
			Str("entity_type", in.EntityType).
			Msg("no se pudo registrar la entrada de auditoría")
	}
}

// Query consulta el log con filtros opcionales, más recientes primero.
// offset = (page-1)*limit; PageCount se deriva de Total.
func (uc *UseCase) Query(ctx context.Context, companyID string, q dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	q.DefaultPage()
	filter, err := buildFilter(companyID, q)
	if err != nil {
		return nil, err
	}

	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	offset := (q.Page - 1) * q.Limit
	logs, err := uc.repo.List(ctx, filter, q.Limit, offset)
	if err != nil {
		return nil, err
	}

	out := &dto.AuditLogListResponse{
		Logs:      make([]dto.AuditLogResponse, 0, len(logs)),
		Total:     total,
		Page:      q.Page,
		PageCount: pageCount(total, q.Limit),
	}
	for _, l := range logs {
		userID := ""
		if l.UserID != nil {
			userID = *l.UserID
		}
		out.Logs = append(out.Logs, dto.AuditLogResponse{
			ID:         l.ID,
			CompanyID:  l.CompanyID,
			UserID:     userID,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			IPAddress:  l.IPAddress,
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// QueryAll devuelve las entradas (sin paginar) que matchean el filtro, para
// la exportación CSV: el archivo refleja el conjunto filtrado completo.
func (uc *UseCase) QueryAll(ctx context.Context, companyID string, q dto.AuditLogQuery) ([]*entity.AuditLog, error) {
	filter, err := buildFilter(companyID, q)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, filter, int(total), 0)
}

// RetentionDelete elimina entradas con created_at < before. companyID vacío
// barre todas las empresas. Idempotente: la segunda pasada devuelve 0.
func (uc *UseCase) RetentionDelete(ctx context.Context, before time.Time, companyID string) (int64, error) {
	deleted, err := uc.repo.DeleteBefore(ctx, before, companyID)
	if err != nil {
		return 0, err
	}
	uc.log.Info().
		Time("before", before).
		Str("company_id", companyID).
		Int64("deleted", deleted).
		Msg("barrido de retención de auditoría")
	return deleted, nil
}

func buildFilter(companyID string, q dto.AuditLogQuery) (repository.AuditLogFilter, error) {
	filter := repository.AuditLogFilter{
		CompanyID:  companyID,
		UserID:     q.UserID,
		Action:     q.Action,
		EntityType: q.EntityType,
		EntityID:   q.EntityID,
	}
	var err error
	if filter.StartDate, err = ParseDate(q.StartDate, false); err != nil {
		return filter, domain.ErrInvalidInput
	}
	if filter.EndDate, err = ParseDate(q.EndDate, true); err != nil {
		return filter, domain.ErrInvalidInput
	}
	return filter, nil
}

// ParseDate acepta YYYY-MM-DD o RFC3339; cadena vacía devuelve cero.
// endOfDay hace inclusivo el límite superior cuando la fecha no trae hora.
func ParseDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
