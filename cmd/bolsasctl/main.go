package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/core/services"
	"github.com/SscSPs/bolsas_app/internal/platform/config"
	"github.com/SscSPs/bolsas_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bolsas_app/pkg/database"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "bolsasctl",
		Short: "Operator commands for the bolsas ledger",
		Long: `bolsasctl runs maintenance jobs against the bolsas database:
balance reconciliation, monthly recurring generation and schema migrations.

Configuration is read from the environment (and .env) like the server.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(recurringCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	loaded, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if loaded.StorageBackend != config.StoragePostgres {
		return fmt.Errorf("bolsasctl needs the postgres backend, got %q", loaded.StorageBackend)
	}
	cfg = loaded
	return nil
}

// openServices connects to the database and builds the service container.
// The returned func closes the pool.
func openServices(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool)), dbPool.Close, nil
}
