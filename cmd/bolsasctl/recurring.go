package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/spf13/cobra"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring transactions",
	}
	cmd.AddCommand(recurringRunCmd())
	return cmd
}

func recurringRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a month's recurring transactions for every user",
		Long: `Post the drafts of every active recurring template not yet generated for the
month. Templates already generated are skipped, so the command is safe to rerun.`,
		RunE: runRecurring,
	}

	cmd.Flags().String("month", "", "month as YYYY-MM (default: current month, UTC)")
	cmd.Flags().Int("workers", 0, "users processed in parallel (default: RECURRING_WORKERS)")

	return cmd
}

func runRecurring(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	monthFlag, _ := cmd.Flags().GetString("month")
	workers, _ := cmd.Flags().GetInt("workers")

	month := domain.MonthYearOf(time.Now().UTC())
	if monthFlag != "" {
		parsed, err := domain.ParseMonthYear(monthFlag)
		if err != nil {
			return err
		}
		month = parsed
	}
	if workers <= 0 {
		workers = cfg.RecurringWorkers
	}

	svc, closeDB, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	count, err := svc.Recurring.GenerateForAllUsers(ctx, month, workers)
	if err != nil {
		return fmt.Errorf("failed to generate recurring transactions for %s: %w", month, err)
	}

	slog.Info("Recurring generation finished", "month", month.String(), "transactions", count)
	fmt.Printf("Generated %d transaction(s) for %s\n", count, month)
	return nil
}
