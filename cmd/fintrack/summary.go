package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/fintrack/internal/budget"
	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/prefs"
	"github.com/Veraticus/fintrack/internal/report"
	"github.com/Veraticus/fintrack/internal/storage"
)

func summaryCmd() *cobra.Command {
	var (
		monthFlag int
		yearFlag  int
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show monthly totals and the category breakdown",
		Long: `Aggregate a month's transactions into income and expense totals plus a
per-category expense breakdown, and evaluate spending against the month's
budget. With --watch the summary re-renders whenever the transaction set
changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			month, year, err := resolveMonthYear(monthFlag, yearFlag)
			if err != nil {
				return err
			}

			store, prefStore, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := renderSummary(cmd, store, prefStore, month, year); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			// Live mode: re-render on every committed transaction mutation.
			changes, cancel := store.Watch(storage.KindTransactions)
			defer cancel()
			for {
				select {
				case <-ctx.Done():
					return nil
				case _, ok := <-changes:
					if !ok {
						return nil
					}
					if err := renderSummary(cmd, store, prefStore, month, year); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().IntVar(&monthFlag, "month", 0, "month 1-12 (default: current)")
	cmd.Flags().IntVar(&yearFlag, "year", 0, "year (default: current)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-render when transactions change")

	return cmd
}

func renderSummary(cmd *cobra.Command, store *storage.SQLiteStorage, prefStore *prefs.Store, month, year int) error {
	ctx := cmd.Context()

	start, end := report.MonthRange(month, year, nil)
	transactions, err := store.GetTransactionsByDateRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	categories, err := store.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	currency, err := prefStore.Currency()
	if err != nil {
		return err
	}

	summary := report.Summarize(transactions, categories, start, end)
	fmt.Print(cli.RenderSummary(summary, currency, month, year))

	checker := budget.NewChecker(store, cli.NewNotifier(os.Stdout))
	result, err := checker.Check(ctx, month, year)
	if err != nil {
		return err
	}
	fmt.Print(cli.RenderBudgetStatus(result, currency, month, year))

	return nil
}
