package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/straye-as/calltracker-api/pkg/client"
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importClientsCmd)
	importCmd.AddCommand(importCallsCmd)
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import clients or calls from CSV",
	Long: `Import clients or calls from a CSV file with a header row.

Rows are uploaded in batches of 100. Common spreadsheet headers such as
"Company", "Phone" or "Call Date" are mapped onto API fields.

Examples:
  # Import clients
  calltrackerctl import clients clients.csv

  # Import calls from stdin
  cat calls.csv | calltrackerctl import calls -`,
}

var importClientsCmd = &cobra.Command{
	Use:   "clients [file]",
	Short: "Import clients from a CSV file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readRows(args[0], client.DefaultClientColumns)
		if err != nil {
			return err
		}
		result, err := newClient().ImportClients(cmd.Context(), client.ClientRecords(rows))
		printImportResult(cmd.OutOrStdout(), result)
		return err
	},
}

var importCallsCmd = &cobra.Command{
	Use:   "calls [file]",
	Short: "Import calls from a CSV file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readRows(args[0], client.DefaultCallColumns)
		if err != nil {
			return err
		}
		records, err := client.CallRecords(rows)
		if err != nil {
			return err
		}
		result, err := newClient().ImportCalls(cmd.Context(), records)
		printImportResult(cmd.OutOrStdout(), result)
		return err
	},
}

// readRows reads a CSV file, or stdin when path is "-"
func readRows(path string, mapping client.ColumnMapping) ([]map[string]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	return client.ReadCSV(r, mapping)
}

func printImportResult(w io.Writer, result *client.ImportResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(w, "imported: %d, updated: %d, skipped: %d, total: %d\n",
		result.Imported, result.Updated, result.Skipped, result.Total)
	for _, msg := range result.Errors {
		fmt.Fprintf(w, "  %s\n", msg)
	}
}
