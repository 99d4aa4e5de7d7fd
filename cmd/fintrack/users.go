package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
)

func registerCmd() *cobra.Command {
	var (
		email    string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a local user account",
		Long: `Register a local account. Passwords are stored in plaintext; accounts
exist to scope the UI, not to provide security.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			user := model.User{Email: email, Username: username, Password: password}
			if err := store.SaveUser(ctx, &user); err != nil {
				return fmt.Errorf("failed to register user: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registered %q", username)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (primary key)")
	cmd.Flags().StringVar(&username, "username", "", "display name used to log in")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func loginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a registered user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, prefStore, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			user, err := store.ValidateUser(ctx, username, password)
			if err != nil {
				return err
			}
			if user == nil {
				return common.NewUserError("login failed", common.ErrInvalidCredentials)
			}

			if err := prefStore.SaveLoginState(true, user.Username); err != nil {
				return fmt.Errorf("failed to save login state: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %q", user.Username)))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out the current user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, prefStore, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			state, err := prefStore.LoginState()
			if err != nil {
				return err
			}
			if !state.IsLoggedIn {
				return common.NewUserError("logout failed", common.ErrNotLoggedIn)
			}

			if err := prefStore.SaveLoginState(false, ""); err != nil {
				return fmt.Errorf("failed to save login state: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}
