package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cattle-records/internal/platform/config"
	"cattle-records/internal/router"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema del driver SQL configurado",
		Long: `Aplica el esquema embebido (postgres o sqlite). Se puede correr más de una vez.

Ejemplo:
  cattle-records migrate --config ./cattle.yaml
  DB_DRIVER=postgres DB_DSN=postgres://... cattle-records migrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver == config.DriverMemory {
				return fmt.Errorf("migrate: storage.driver is %q, nothing to migrate", cfg.Storage.Driver)
			}

			repos, err := router.OpenStorage(cmd.Context(), cfg.Storage, true)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if repos.Close != nil {
				defer func() { _ = repos.Close() }()
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", cfg.Storage.Driver)
			return err
		},
	}
}
