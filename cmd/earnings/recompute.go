package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

//nolint:gochecknoglobals // Cobra boilerplate
var recomputeEmail string

//nolint:gochecknoglobals // Cobra boilerplate
var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recalcula las ganancias persistidas desde el ledger completo",
	Long: `Sin --email recalcula a todos los empleados standard y reporta cuántos
valores persistidos estaban desactualizados.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if recomputeEmail != "" {
				out, err := e.earnings.BreakdownByEmail(ctx, recomputeEmail)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), out.EarningSummary)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d créditos\n", out.Email, out.Final)
				return nil
			}
			// El CLI opera con privilegios de admin sobre la DB configurada.
			res, err := e.earnings.RecomputeAll(ctx, entity.Actor{UserID: "cli", IsAdmin: true})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuarios: %d  corregidos: %d\n", res.Users, res.Changed)
			return nil
		})
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	recomputeCmd.Flags().StringVar(&recomputeEmail, "email", "", "solo el empleado con este email")
}
