package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/fintrack/internal/cli"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, list, and restore backup snapshots",
		Long: `Manage timestamped JSON snapshots of the full data set. Restore has
replace-all semantics: the current store is cleared before the snapshot is
applied.`,
	}

	cmd.AddCommand(exportBackupCmd())
	cmd.AddCommand(listBackupsCmd())
	cmd.AddCommand(restoreBackupCmd())

	return cmd
}

func exportBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of the full data set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, prefStore, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			manager := newBackupManager(store, prefStore)
			fileName, err := manager.Export(ctx)
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Backup written to " + manager.FilePath(fileName)))
			return nil
		},
	}
}

func listBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backup snapshots, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, prefStore, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := newBackupManager(store, prefStore).List()
			if err != nil {
				return err
			}

			if len(names) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No backups found."))
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func restoreBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the store with a snapshot's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, prefStore, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := newBackupManager(store, prefStore).Restore(ctx, args[0]); err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Restored from " + args[0]))
			return nil
		},
	}
}
