package dto

// AuditLogQuery filtros y paginación para GET /api/audit-logs.
// La paginación del log es por página (no limit/offset): offset = (page-1)*limit.
type AuditLogQuery struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	UserID     string `query:"userId"`
	Action     string `query:"action"`
	EntityType string `query:"entityType"`
	EntityID   string `query:"entityId"`
	StartDate  string `query:"startDate"` // YYYY-MM-DD o RFC3339
	EndDate    string `query:"endDate"`
}

// DefaultPage aplica valores por defecto de página.
func (q *AuditLogQuery) DefaultPage() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 500 {
		q.Limit = 500
	}
}

// AuditLogResponse entrada del log en respuestas.
type AuditLogResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	UserID     string `json:"user_id,omitempty"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	IPAddress  string `json:"ip_address"`
	CreatedAt  string `json:"created_at"` // RFC3339
}

// AuditLogListResponse página del log con totales.
type AuditLogListResponse struct {
	Logs      []AuditLogResponse `json:"logs"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageCount int                `json:"pageCount"`
}

// RetentionResponse resultado del barrido de retención.
type RetentionResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
