package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DheemanKumar/lead-manager/internal/infrastructure/postgres"
)

//nolint:gochecknoglobals // Cobra boilerplate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes del esquema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEnv(cmd, func(_ context.Context, e *env) error {
			if err := postgres.Migrate(e.pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "esquema actualizado")
			return nil
		})
	},
}
