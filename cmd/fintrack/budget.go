package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/fintrack/internal/budget"
	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly budgets",
		Long:  `Set a spending ceiling for a calendar month and check spending against it.`,
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(budgetStatusCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var (
		amount    string
		monthFlag int
		yearFlag  int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the budget for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			month, year, err := resolveMonthYear(monthFlag, yearFlag)
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			b := model.Budget{Amount: value, Month: month, Year: year}
			if err := store.SaveBudget(ctx, &b); err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget for %s set to %.2f",
				cli.MonthLabel(month, year), value)))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "budget amount")
	cmd.Flags().IntVar(&monthFlag, "month", 0, "month 1-12 (default: current)")
	cmd.Flags().IntVar(&yearFlag, "year", 0, "year (default: current)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func budgetStatusCmd() *cobra.Command {
	var (
		monthFlag int
		yearFlag  int
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show spending against the month's budget",
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

			checker := budget.NewChecker(store, cli.NewNotifier(os.Stdout))
			result, err := checker.Check(ctx, month, year)
			if err != nil {
				return err
			}

			currency, err := prefStore.Currency()
			if err != nil {
				return err
			}

			fmt.Print(cli.RenderBudgetStatus(result, currency, month, year))
			return nil
		},
	}

	cmd.Flags().IntVar(&monthFlag, "month", 0, "month 1-12 (default: current)")
	cmd.Flags().IntVar(&yearFlag, "year", 0, "year (default: current)")

	return cmd
}
