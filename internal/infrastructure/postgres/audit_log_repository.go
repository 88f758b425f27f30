package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository (usable con pool o tx).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada del log. Las entradas son inmutables: no hay Update.
func (r *AuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, company_id, user_id, action, entity_type, entity_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.CompanyID, log.UserID, log.Action, log.EntityType, log.EntityID,
		log.IPAddress, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// auditWhere pliega el filtro en una cláusula WHERE (company_id siempre presente).
func auditWhere(f repository.AuditLogFilter) *whereBuilder {
	b := &whereBuilder{}
	b.Eq("company_id", f.CompanyID, true)
	b.Eq("user_id", f.UserID, f.UserID != "")
	b.Eq("action", f.Action, f.Action != "")
	b.Eq("entity_type", f.EntityType, f.EntityType != "")
	b.Eq("entity_id", f.EntityID, f.EntityID != "")
	b.Gte("created_at", f.StartDate, !f.StartDate.IsZero())
	b.Lte("created_at", f.EndDate, !f.EndDate.IsZero())
	return b
}

// List devuelve entradas del log más recientes primero, con desempate por id
// para que la paginación sea determinista.
func (r *AuditLogRepo) List(ctx context.Context, filter repository.AuditLogFilter, limit, offset int) ([]*entity.AuditLog, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	b := auditWhere(filter)
	query := `
		SELECT id, company_id, user_id, action, entity_type, entity_id, ip_address, created_at
		FROM audit_logs` + b.Clause() +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s", b.Bind(limit), b.Bind(offset))

	rows, err := r.q.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Count cuenta las entradas que matchean el mismo filtro de List.
func (r *AuditLogRepo) Count(ctx context.Context, filter repository.AuditLogFilter) (int64, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	b := auditWhere(filter)
	query := `SELECT COUNT(*) FROM audit_logs` + b.Clause()

	var total int64
	if err := r.q.QueryRow(ctx, query, b.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count audit logs: %w", err)
	}
	return total, nil
}

// DeleteBefore elimina entradas con created_at < before y devuelve cuántas
// borró. Es idempotente: una segunda pasada con la misma fecha devuelve 0.
// El DELETE usa lock a nivel de fila, no bloquea inserciones concurrentes.
func (r *AuditLogRepo) DeleteBefore(ctx context.Context, before time.Time, companyID string) (int64, error) {
	b := &whereBuilder{}
	b.Lt("created_at", before, true)
	b.Eq("company_id", companyID, companyID != "")

	tag, err := r.q.Exec(ctx, `DELETE FROM audit_logs`+b.Clause(), b.Args()...)
	if err != nil {
		return 0, fmt.Errorf("delete audit logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
