package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare cached account balances with the ledger",
		Long: `Recompute each account balance from its initial balance and every ledger row
touching it, and report accounts whose cached balance drifted.

With --repair the cached balance is rewritten from the ledger. Use this after a
write reported a partially applied change.`,
		RunE: runReconcile,
	}

	cmd.Flags().String("user", "", "user owning the accounts (required)")
	cmd.Flags().StringSlice("account", nil, "account id to check (repeatable, default: all accounts of the user)")
	cmd.Flags().Bool("repair", false, "rewrite drifted balances")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	accountIDs, _ := cmd.Flags().GetStringSlice("account")
	repair, _ := cmd.Flags().GetBool("repair")

	svc, closeDB, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if len(accountIDs) == 0 {
		for offset := 0; ; offset += 100 {
			page, err := svc.Account.ListAccounts(ctx, userID, 100, offset)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}
			for _, acc := range page {
				accountIDs = append(accountIDs, acc.AccountID)
			}
			if len(page) < 100 {
				break
			}
		}
	}

	results := make([]*domain.Reconciliation, 0, len(accountIDs))
	for _, id := range accountIDs {
		rec, err := svc.Account.ReconcileAccount(ctx, userID, id, repair)
		if err != nil {
			return fmt.Errorf("failed to reconcile account %s: %w", id, err)
		}
		results = append(results, rec)
	}

	drifted := printReconciliations(results)
	if drifted > 0 && !repair {
		return fmt.Errorf("%d account(s) out of sync; rerun with --repair", drifted)
	}
	return nil
}

func printReconciliations(results []*domain.Reconciliation) int {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ACCOUNT\tCACHED\tLEDGER\tDIFFERENCE\tSTATUS")
	drifted := 0
	for _, rec := range results {
		status := "ok"
		if !rec.InSync() {
			drifted++
			status = "drift"
			if rec.Repaired {
				status = "repaired"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.AccountID,
			rec.CachedBalance.StringFixed(2),
			rec.LedgerBalance.StringFixed(2),
			rec.Difference.StringFixed(2),
			status)
	}
	return drifted
}
