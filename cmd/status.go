package cmd

import (
	"fmt"
	"time"

	statusadapter "github.com/bnema/astropost/internal/adapters/render/status"
	"github.com/spf13/cobra"
)

const defaultStaleAfter = 26 * time.Hour

func newStatusCmd(a *app) *cobra.Command {
	var asJSON bool
	var staleAfter time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the session, automation and last cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot := statusadapter.Snapshot{
				Session:    a.orchestrator.Status(),
				Automation: a.orchestrator.AutomationStatus(),
			}

			last, ok, err := a.orchestrator.LastCycle(cmd.Context())
			if err != nil {
				return fmt.Errorf("load last cycle: %w", err)
			}
			if ok {
				snapshot.LastCycle = &last
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), snapshot)
			}

			rendered, err := a.statusRender(snapshot, statusadapter.RenderOptions{
				Now:        a.now(),
				StaleAfter: staleAfter,
			})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", defaultStaleAfter, "Flag the last cycle when it is older than this (0 disables)")

	return cmd
}
