package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/model"
)

func addCmd() *cobra.Command {
	var (
		title    string
		amount   string
		category string
		date     string
		income   bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long:  `Record an expense (default) or income transaction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// Category existence is not enforced; unknown names are
			// tolerated and simply appear in no breakdown.
			if cat, catErr := store.GetCategoryByName(ctx, category); catErr == nil && cat == nil {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("category %q does not exist", category)))
			}

			txn := model.NewTransaction(title, value, category, when, !income)
			if err := store.SaveTransaction(ctx, &txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %q (%s)", txn.Title, txn.ID[:8])))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "transaction title")
	cmd.Flags().StringVar(&amount, "amount", "", "transaction amount")
	cmd.Flags().StringVar(&category, "category", "Other", "category name")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&income, "income", false, "record income instead of an expense")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listCmd() *cobra.Command {
	var (
		monthFlag int
		yearFlag  int
		category  string
		allTime   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `List transactions for a month (default: current), a category, or all time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, prefStore, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var transactions []model.Transaction
			switch {
			case category != "":
				transactions, err = store.GetTransactionsByCategory(ctx, category)
			case allTime:
				transactions, err = store.GetTransactions(ctx)
			default:
				month, year, mErr := resolveMonthYear(monthFlag, yearFlag)
				if mErr != nil {
					return mErr
				}
				start, end := monthBounds(month, year)
				transactions, err = store.GetTransactionsByDateRange(ctx, start, end)
			}
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			currency, err := prefStore.Currency()
			if err != nil {
				return err
			}

			fmt.Print(cli.RenderTransactions(transactions, currency))
			return nil
		},
	}

	cmd.Flags().IntVar(&monthFlag, "month", 0, "month 1-12 (default: current)")
	cmd.Flags().IntVar(&yearFlag, "year", 0, "year (default: current)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category name")
	cmd.Flags().BoolVar(&allTime, "all", false, "list every transaction")

	return cmd
}

func editCmd() *cobra.Command {
	var (
		title    string
		amount   string
		category string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			txn, err := store.GetTransactionByID(ctx, args[0])
			if err != nil {
				return err
			}

			if title != "" {
				txn.Title = title
			}
			if amount != "" {
				value, aErr := parseAmount(amount)
				if aErr != nil {
					return aErr
				}
				txn.Amount = value
			}
			if category != "" {
				txn.Category = category
			}
			if date != "" {
				when, dErr := parseDate(date)
				if dErr != nil {
					return dErr
				}
				txn.Date = when.UnixMilli()
			}

			if err := store.SaveTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %q", txn.Title)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&category, "category", "", "new category name")
	cmd.Flags().StringVar(&date, "date", "", "new date as YYYY-MM-DD")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted transaction " + args[0]))
			return nil
		},
	}
}
