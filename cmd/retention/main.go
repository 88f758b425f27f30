// Barrido de retención del log de auditoría. Pensado para ejecutarse como
// cron job: elimina las entradas anteriores a la ventana de retención
// configurada (AUDIT_RETENTION_DAYS) o a la indicada por --days.
//
//	retention --days 365
//	retention --days 90 --company 2e9b...   # solo una empresa
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tu-usuario/contable-pro/internal/application/audit"
	"github.com/tu-usuario/contable-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/contable-pro/pkg/config"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

func main() {
	var (
		days      int
		companyID string
	)

	root := &cobra.Command{
		Use:   "retention",
		Short: "Elimina entradas antiguas del log de auditoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}

			log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

			if days <= 0 {
				days = cfg.Audit.RetentionDays
			}
			if days <= 0 {
				return fmt.Errorf("ventana de retención inválida: %d días", days)
			}

			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			auditUC := audit.NewUseCase(postgres.NewAuditLogRepository(pool), log)

			before := time.Now().AddDate(0, 0, -days)
			deleted, err := auditUC.RetentionDelete(ctx, before, companyID)
			if err != nil {
				return fmt.Errorf("barrido de retención: %w", err)
			}

			log.Info().
				Int("days", days).
				Time("before", before).
				Str("company_id", companyID).
				Int64("deleted", deleted).
				Msg("barrido de retención completado")
			return nil
		},
	}

	root.Flags().IntVar(&days, "days", 0, "días a conservar (por defecto AUDIT_RETENTION_DAYS)")
	root.Flags().StringVar(&companyID, "company", "", "limitar el barrido a una empresa (vacío = todas)")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
