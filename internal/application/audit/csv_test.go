package audit_test

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestExportCSV_CabeceraYOrdenDeColumnas(t *testing.T) {
	createdAt := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	logs := []*entity.AuditLog{
		{
			ID:         "log-1",
			CompanyID:  "c-1",
			UserID:     strPtr("u-1"),
			Action:     entity.AuditActionCreate,
			EntityType: entity.AuditEntityInvoice,
			EntityID:   "inv-1",
			IPAddress:  "10.0.0.1",
			CreatedAt:  createdAt,
		},
	}

	out, err := audit.ExportCSV(logs)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "cabecera + 1 fila")

	assert.Equal(t,
		[]string{"id", "user_id", "action", "entity_type", "entity_id", "ip_address", "created_at"},
		records[0])
	assert.Equal(t, "log-1", records[1][0])
	assert.Equal(t, "u-1", records[1][1])
	assert.Equal(t, "create", records[1][2])
	assert.Equal(t, "invoice", records[1][3])
	assert.Equal(t, strconv.FormatInt(createdAt.UnixMilli(), 10), records[1][6],
		"created_at debe ir en epoch millis")
}

// Ley de round-trip: un campo con coma o comillas debe quedar escapado de
// forma que re-parsear el CSV devuelva el valor original sin cambios.
func TestExportCSV_EscapaDelimitadoresYComillas(t *testing.T) {
	trickyIP := `10.0.0.1, via proxy "edge-1"`
	logs := []*entity.AuditLog{
		{
			ID:         "log-2",
			CompanyID:  "c-1",
			Action:     entity.AuditActionDelete,
			EntityType: entity.AuditEntityBudget,
			EntityID:   "b-1",
			IPAddress:  trickyIP,
			CreatedAt:  time.Now(),
		},
	}

	out, err := audit.ExportCSV(logs)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, trickyIP, records[1][5],
		"el campo con coma y comillas debe sobrevivir el round-trip")
}

func TestExportCSV_UserIDNulo(t *testing.T) {
	logs := []*entity.AuditLog{
		{
			ID:         "log-3",
			CompanyID:  "c-1",
			UserID:     nil, // acción del sistema
			Action:     entity.AuditActionSync,
			EntityType: entity.AuditEntityIntegration,
			EntityID:   "siigo",
			IPAddress:  "127.0.0.1",
			CreatedAt:  time.Now(),
		},
	}

	out, err := audit.ExportCSV(logs)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", records[1][1], "user_id nulo se exporta vacío")
}

func TestExportCSV_SinEntradas(t *testing.T) {
	out, err := audit.ExportCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "solo cabecera")
}

// La salida debe ser byte a byte idéntica para la misma entrada.
func TestExportCSV_Determinista(t *testing.T) {
	logs := []*entity.AuditLog{
		{ID: "a", CompanyID: "c-1", Action: "create", EntityType: "invoice", EntityID: "1", IPAddress: "1.1.1.1", CreatedAt: time.UnixMilli(1700000000000)},
		{ID: "b", CompanyID: "c-1", Action: "update", EntityType: "bill", EntityID: "2", IPAddress: "2.2.2.2", CreatedAt: time.UnixMilli(1700000001000)},
	}

	first, err := audit.ExportCSV(logs)
	require.NoError(t, err)
	second, err := audit.ExportCSV(logs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
