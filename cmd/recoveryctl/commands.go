package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/2beens/musclerecovery/internal"
	"github.com/2beens/musclerecovery/internal/config"
	"github.com/2beens/musclerecovery/internal/db"
	"github.com/2beens/musclerecovery/internal/logging"
	"github.com/2beens/musclerecovery/internal/recovery"
	"github.com/2beens/musclerecovery/internal/schema"
	"github.com/2beens/musclerecovery/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	logLevel   string

	reportFrom string
	reportTo   string
	reportDays int

	rootCmd = &cobra.Command{
		Use:           "recoveryctl",
		Short:         "Operate the muscle recovery database and compute reports offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.LoggerSetupParams{
				LogToStdout: true,
				LogLevel:    logLevel,
			})
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, _ *config.Config, pool *pgxpool.Pool) error {
				return schema.Migrate(ctx, pool)
			})
		},
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Insert muscle groups, the seed session and canonical exercise mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, _ *config.Config, pool *pgxpool.Pool) error {
				return schema.Seed(ctx, pool)
			})
		},
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Compute the recovery report and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := buildQuery(reportFrom, reportTo, reportDays)
			if err != nil {
				return err
			}
			return withPool(cmd.Context(), func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				repo := recovery.NewRepo(pool)
				params := internal.RecoveryParams(cfg.Recovery)
				engine := recovery.NewEngine(repo, params).
					WithRestHours(recovery.NewSettings(repo, params.RestHours))
				report, err := engine.Compute(ctx, query)
				if err != nil {
					return err
				}
				return printReport(cmd.OutOrStdout(), report)
			})
		},
	}

	hashTokenCmd = &cobra.Command{
		Use:   "hash-token <token>",
		Short: "Print the bcrypt hash to set as RECOVERY_INGEST_TOKEN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenHash, err := pkg.HashToken(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tokenHash)
			return err
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")

	reportCmd.Flags().StringVar(&reportFrom, "from", "", "window start, YYYY-MM-DD or RFC3339")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "window end, YYYY-MM-DD or RFC3339 (default now)")
	reportCmd.Flags().IntVar(&reportDays, "days", 0, "window length in days when --from is missing (default from config)")

	rootCmd.AddCommand(migrateCmd, seedCmd, reportCmd, hashTokenCmd)
}

func buildQuery(from, to string, days int) (recovery.Query, error) {
	var (
		q   recovery.Query
		err error
	)
	if q.From, err = recovery.ParseBound(from); err != nil {
		return recovery.Query{}, fmt.Errorf("--from: %w", err)
	}
	if q.To, err = recovery.ParseBound(to); err != nil {
		return recovery.Query{}, fmt.Errorf("--to: %w", err)
	}
	if days < 0 {
		return recovery.Query{}, fmt.Errorf("--days: %w", recovery.ErrInvalidDays)
	}
	q.Days = days
	return q, nil
}

func printReport(w io.Writer, report *recovery.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func withPool(
	ctx context.Context,
	fn func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return err
	}

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("RECOVERY_POSTGRES_PASS"),
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
