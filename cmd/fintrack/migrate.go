package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/fintrack/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate legacy preference data into the database",
		Long: `Transfer transactions, categories, budgets, and users from the legacy
flat preference files into the SQLite store, clearing the files on success.
This also runs automatically on startup; the explicit command exists for
re-running after a reported failure. Running against empty preference files
is a no-op that still succeeds.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// initStorage runs the migration; reaching this point means it
			// completed.
			store, _, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			defer store.Close()

			fmt.Println(cli.FormatSuccess("Legacy preference data migrated"))
			return nil
		},
	}
}
