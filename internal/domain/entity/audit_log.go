package entity

import "time"

// Acciones auditables. Toda mutación de negocio registra una de estas.
const (
	AuditActionCreate    = "create"
	AuditActionUpdate    = "update"
	AuditActionDelete    = "delete"
	AuditActionLogin     = "login"
	AuditActionExport    = "export"
	AuditActionConfigure = "configure"
	AuditActionSync      = "sync"
)

// Tipos de entidad sobre los que se audita.
const (
	AuditEntityInvoice     = "invoice"
	AuditEntityBill        = "bill"
	AuditEntityCustomer    = "customer"
	AuditEntityVendor      = "vendor"
	AuditEntityBudget      = "budget"
	AuditEntityUser        = "user"
	AuditEntityIntegration = "integration"
	AuditEntityAuditLog    = "audit_log"
)

// AuditLog entrada inmutable del log de auditoría. Se crea en cada acción
// mutadora y nunca se actualiza; solo la elimina el barrido de retención.
// UserID es nil para acciones del sistema (ej. webhooks entrantes).
type AuditLog struct {
	ID         string
	CompanyID  string
	UserID     *string
	Action     string
	EntityType string
	EntityID   string
	IPAddress  string
	CreatedAt  time.Time
}
