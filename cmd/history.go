package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded cycles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			records, err := a.orchestrator.History(cmd.Context())
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			// Stored oldest first.
			for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
				records[i], records[j] = records[j], records[i]
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}

			if len(records) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No cycles recorded yet.")
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("FINISHED", "TRIGGER", "MODE", "OUTCOME", "GENERATED", "PUBLISHED", "REASON")
			for _, record := range records {
				t.Row(
					record.FinishedAt.Local().Format(time.DateTime),
					string(record.Trigger),
					string(record.Mode),
					string(record.Outcome),
					strconv.Itoa(len(record.Generated)),
					strconv.Itoa(len(record.Published)),
					record.Reason,
				)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Show at most this many cycles (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
