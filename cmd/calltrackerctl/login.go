package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// PasswordEnv is read when --password is not given
const PasswordEnv = "CALLTRACKER_PASSWORD"

var (
	loginEmail    string
	loginPassword string
)

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (defaults to $"+PasswordEnv+")")
	_ = loginCmd.MarkFlagRequired("email")
}

// loginCmd exchanges credentials for a token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a bearer token",
	Long: `Log in with email and password and print the bearer token.

Examples:
  # Log in and export the token for later commands
  export CALLTRACKER_TOKEN=$(calltrackerctl login --email ola@example.com --password secret)`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	password := loginPassword
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	if password == "" {
		return errors.New("password is required (--password or $" + PasswordEnv + ")")
	}

	resp, err := newClient().Login(cmd.Context(), loginEmail, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
	return nil
}
