package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var promoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Asigna el rol admin a un usuario registrado",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			user, err := e.auth.Promote(ctx, args[0])
			if err != nil {
				return err
			}
			e.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("usuario promovido a admin")
			fmt.Fprintf(cmd.OutOrStdout(), "%s ahora es admin (debe volver a iniciar sesión)\n", user.Email)
			return nil
		})
	},
}
