package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/straye-as/calltracker-api/pkg/client"
)

var (
	todayWatch    bool
	todayInterval time.Duration
)

func init() {
	rootCmd.AddCommand(todayCmd)

	todayCmd.Flags().BoolVar(&todayWatch, "watch", false, "keep refreshing until interrupted")
	todayCmd.Flags().DurationVar(&todayInterval, "interval", client.DefaultPollInterval, "refresh interval with --watch")
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's calls",
	Long: `Show the calls due today. When none are due the next upcoming calls are shown.

Examples:
  # Show once
  calltrackerctl today

  # Refresh every 30 seconds
  calltrackerctl today --watch --interval 30s`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

func runToday(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	api := newClient()

	if !todayWatch {
		calls, err := api.Today(cmd.Context())
		if err != nil {
			return err
		}
		var upcoming []client.ScheduledCall
		if len(calls) == 0 {
			if upcoming, err = api.Upcoming(cmd.Context(), 0); err != nil {
				return err
			}
		}
		printSnapshot(out, client.Snapshot{At: time.Now(), Today: calls, Upcoming: upcoming})
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := client.NewTodayPoller(api, todayInterval, func(s client.Snapshot) {
		printSnapshot(out, s)
	})
	if err := poller.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	poller.Stop()
	return nil
}

func printSnapshot(w io.Writer, s client.Snapshot) {
	fmt.Fprintf(w, "== %s ==\n", s.At.Format("2006-01-02 15:04:05"))
	if s.Err != nil {
		fmt.Fprintf(w, "error: %v\n", s.Err)
		return
	}
	if len(s.Today) > 0 {
		printCalls(w, s.Today)
		return
	}
	fmt.Fprintln(w, "No calls today.")
	if len(s.Upcoming) > 0 {
		fmt.Fprintln(w, "Upcoming:")
		printCalls(w, s.Upcoming)
	}
}

func printCalls(w io.Writer, calls []client.ScheduledCall) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DUE\tCLIENT\tPHONE\tSTATUS\tSOON")
	for _, c := range calls {
		name, phone := "", ""
		if c.Client != nil {
			name, phone = c.Client.Name, c.Client.Phone
		}
		soon := ""
		if c.CallSoon {
			soon = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.DueAt, name, phone, c.Status, soon)
	}
	_ = tw.Flush()
}

// compile-time check that the API client can feed the poller
var _ client.CallSource = (*client.Client)(nil)
