package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mexus/memory-watcher/internal/discover"
)

var statusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show the matched processes and their memory usage",
	Long: `Status lists every live process whose command name matches the given
name, with its PID, resident set size and start time, plus the aggregate
RSS the watch command would compare against the threshold. Read-only; no
signal is sent.

Example:
  memwatch status plasmashell
  memwatch status plasmashell --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	name := args[0]

	statuses, err := discover.New().Snapshot(name)
	if err != nil {
		return err
	}

	var aggregate uint64
	for _, st := range statuses {
		aggregate += st.RSS
	}

	if IsJSONOutput() {
		result := struct {
			Name      string                   `json:"name"`
			Aggregate uint64                   `json:"aggregate_rss_bytes"`
			Processes []discover.ProcessStatus `json:"processes"`
		}{name, aggregate, statuses}

		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if len(statuses) == 0 {
		fmt.Printf("No process named %q is running\n", name)
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("PID", "RSS (bytes)", "Started")

	for _, st := range statuses {
		started := "unknown"
		if !st.StartedAt.IsZero() {
			started = st.StartedAt.Format("2006-01-02 15:04:05")
		}

		table.Append(
			strconv.Itoa(int(st.PID)),
			strconv.FormatUint(st.RSS, 10),
			started,
		)
	}
	table.Render()

	fmt.Printf("Aggregate RSS: %d bytes across %d process(es)\n", aggregate, len(statuses))
	return nil
}
