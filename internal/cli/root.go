// Package cli arma los comandos de cattle-records: serve, migrate y version.
package cli

import (
	"github.com/spf13/cobra"
)

// Version se pisa con -ldflags "-X cattle-records/internal/cli.Version=..."
var Version = "dev"

// RootOptions son los flags globales.
type RootOptions struct {
	ConfigPath string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "cattle-records",
		Short:         "Registro de rodeo",
		Long:          "API HTTP para llevar animales, sanidad, vacunas, reproducción y reportes de un establecimiento ganadero.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "archivo YAML de configuración (o CONFIG_FILE)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte("cattle-records " + Version + "\n"))
			return err
		},
	}
}
