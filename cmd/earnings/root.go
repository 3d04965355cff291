package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/DheemanKumar/lead-manager/internal/application/auth"
	"github.com/DheemanKumar/lead-manager/internal/application/leads"
	"github.com/DheemanKumar/lead-manager/internal/infrastructure/postgres"
	"github.com/DheemanKumar/lead-manager/pkg/config"
	"github.com/DheemanKumar/lead-manager/pkg/logger"
)

//nolint:gochecknoglobals // Cobra boilerplate
var jsonOutput bool

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "earnings",
	Short: "Operación del ledger de leads y ganancias",
	Long: `earnings consulta y recalcula las ganancias por referidos directamente contra la
base de datos configurada (mismas variables de entorno que el API).`,
	SilenceUsage: true,
}

// Execute corre el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "salida en JSON")
	rootCmd.AddCommand(breakdownCmd, recomputeCmd, migrateCmd, promoteCmd)
}

// env dependencias compartidas por los subcomandos.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	pool     *pgxpool.Pool
	earnings *leads.EarningsUseCase
	auth     *auth.AuthUseCase
}

func newEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	userRepo := postgres.NewUserRepository(pool)
	return &env{
		cfg:      cfg,
		log:      log,
		pool:     pool,
		earnings: leads.NewEarningsUseCase(postgres.NewTxRunner(pool), userRepo, cfg.Leads.CreditValue, nil, log),
		auth: auth.NewAuthUseCase(userRepo, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
	}, nil
}

func (e *env) Close() { e.pool.Close() }

// withEnv construye el env, ejecuta fn y cierra el pool.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(ctx, e)
}
