// Package main implements calltrackerctl, a command-line client for the call tracker API.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/straye-as/calltracker-api/pkg/client"
)

// TokenEnv is read when --token is not given
const TokenEnv = "CALLTRACKER_TOKEN"

var (
	// serverURL is the base URL of the API server
	serverURL string
	// token is the bearer token sent with authenticated requests
	token string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "calltrackerctl",
	Short: "CLI for the call tracker API",
	Long: `calltrackerctl is a command-line interface for the call tracker API.
It logs in, imports clients and calls from CSV files and shows today's calls.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5000", "call tracker server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token (defaults to $"+TokenEnv+")")
}

// newClient builds an API client from the global flags
func newClient() *client.Client {
	t := token
	if t == "" {
		t = os.Getenv(TokenEnv)
	}
	return client.New(serverURL, client.WithToken(t))
}
