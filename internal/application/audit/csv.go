package audit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// csvHeader orden fijo de columnas del export. created_at va en epoch millis.
var csvHeader = []string{"id", "user_id", "action", "entity_type", "entity_id", "ip_address", "created_at"}

// ExportCSV serializa entradas del log como CSV con cabecera. El writer de
// encoding/csv aplica quoting RFC 4180: un valor con coma o comilla se
// escapa a nivel de campo y el round-trip de parseo devuelve el original.
// La salida es determinista dado el mismo orden de entrada.
func ExportCSV(logs []*entity.AuditLog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, l := range logs {
		userID := ""
		if l.UserID != nil {
			userID = *l.UserID
		}
		record := []string{
			l.ID,
			userID,
			l.Action,
			l.EntityType,
			l.EntityID,
			l.IPAddress,
			strconv.FormatInt(l.CreatedAt.UnixMilli(), 10),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
