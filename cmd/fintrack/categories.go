package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, and delete the named, colored categories used to group expenses.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Color"))
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t#%06X\n", cat.ID[:8], cat.Name, cat.Color)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rgb, err := strconv.ParseInt(color, 0, 32)
			if err != nil || rgb < 0 || rgb > 0xFFFFFF {
				return common.NewUserError(fmt.Sprintf("invalid color %q, want a 24-bit RGB value", color), common.ErrInvalidInput)
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if existing, exErr := store.GetCategoryByName(ctx, args[0]); exErr != nil {
				return exErr
			} else if existing != nil {
				return common.NewUserError(fmt.Sprintf("category %q already exists", args[0]), common.ErrDuplicateEntry)
			}

			cat := model.NewCategory(args[0], int(rgb))
			if err := store.SaveCategory(ctx, &cat); err != nil {
				return fmt.Errorf("failed to save category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "0xC0C0C0", "24-bit RGB color, e.g. 0xFF6666")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Long: `Delete a category by name. Transactions keep the category name; they
simply stop appearing in breakdowns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := store.GetCategoryByName(ctx, args[0])
			if err != nil {
				return err
			}
			if cat == nil {
				return common.NewUserError(fmt.Sprintf("category %q does not exist", args[0]), common.ErrNotFound)
			}

			if err := store.DeleteCategory(ctx, cat.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", cat.Name)))
			return nil
		},
	}
}
