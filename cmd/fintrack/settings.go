package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/prefs"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change user preferences",
		Long: `Show and change preferences kept outside the database: the currency
symbol used when rendering amounts, and the UI language.`,
	}

	cmd.AddCommand(currencySettingCmd())
	cmd.AddCommand(languageSettingCmd())

	return cmd
}

func currencySettingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currency [symbol]",
		Short: "Show or set the currency symbol",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefStore := prefs.NewStore(config.DataDir())

			if len(args) == 0 {
				currency, err := prefStore.Currency()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), currency)
				return nil
			}

			if args[0] == "" {
				return common.NewUserError("currency symbol cannot be empty", common.ErrInvalidInput)
			}
			if err := prefStore.SetCurrency(args[0]); err != nil {
				return fmt.Errorf("failed to save currency: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Currency set to "+args[0]))
			return nil
		},
	}
}

func languageSettingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "language [name]",
		Short: "Show or set the UI language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefStore := prefs.NewStore(config.DataDir())

			if len(args) == 0 {
				language, err := prefStore.Language()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), language)
				return nil
			}

			if args[0] == "" {
				return common.NewUserError("language cannot be empty", common.ErrInvalidInput)
			}
			if err := prefStore.SetLanguage(args[0]); err != nil {
				return fmt.Errorf("failed to save language: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Language set to "+args[0]))
			return nil
		},
	}
}
