package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bnema/astropost/internal/application"
	"github.com/bnema/astropost/internal/domain"
	"github.com/spf13/cobra"
)

type cycleFlags struct {
	asJSON bool
	quiet  bool
}

func (f *cycleFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "Do not show the progress spinner")
}

func newGenerateCmd(a *app) *cobra.Command {
	flags := &cycleFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate today's posts without publishing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := runCycle(cmd, flags, "Generating posts...", func(ctx context.Context) application.CycleReport {
				return a.orchestrator.RunGenerationOnly(ctx)
			})
			if err != nil {
				return err
			}
			return writeCycleReport(cmd, report, flags.asJSON)
		},
	}

	flags.register(cmd)
	return cmd
}

func newPublishCmd(a *app) *cobra.Command {
	flags := &cycleFlags{}
	var mode string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Generate today's posts and publish them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			publishMode := domain.PublishMode(mode)
			if mode != "" && !publishMode.Valid() {
				return fmt.Errorf("unsupported publish mode %q (want carousel or sequential)", mode)
			}

			report, err := runCycle(cmd, flags, "Generating and publishing posts...", func(ctx context.Context) application.CycleReport {
				return a.orchestrator.RunGenerationAndPublish(ctx, publishMode)
			})
			if err != nil {
				return err
			}
			return writeCycleReport(cmd, report, flags.asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", "", "Publish mode: carousel or sequential (default: publish.mode)")

	return cmd
}

func runCycle(cmd *cobra.Command, flags *cycleFlags, label string, run func(context.Context) application.CycleReport) (application.CycleReport, error) {
	var output io.Writer
	if !flags.quiet {
		output = cmd.ErrOrStderr()
	}

	var report application.CycleReport
	err := runWithSpinner(cmd.Context(), output, label, func(ctx context.Context) error {
		report = run(ctx)
		return nil
	})
	if err != nil {
		return application.CycleReport{}, fmt.Errorf("run cycle: %w", err)
	}

	return report, nil
}

func writeCycleReport(cmd *cobra.Command, report application.CycleReport, asJSON bool) error {
	record := report.Record

	if asJSON {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else if err := printCycleReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if record.Outcome == domain.CycleOutcomeFailed {
		return fmt.Errorf("cycle failed: %s", record.Reason)
	}
	return nil
}

func printCycleReport(out io.Writer, report application.CycleReport) error {
	record := report.Record

	header := fmt.Sprintf("cycle %s (%s, %s): %s", record.ID, record.Trigger, record.Mode, record.Outcome)
	if report.Shared {
		header += " [joined running cycle]"
	}
	if _, err := fmt.Fprintln(out, header); err != nil {
		return err
	}

	for _, pkg := range report.Packages {
		if _, err := fmt.Fprintf(out, "  %-12s %s\n", pkg.Topic.Title(), filepath.Base(pkg.ImagePath)); err != nil {
			return err
		}
	}

	if record.Mode != domain.PublishModeNone {
		if _, err := fmt.Fprintf(out, "published %d of %d\n", len(record.Published), len(record.Generated)); err != nil {
			return err
		}
	}
	for _, failure := range record.Failures {
		if _, err := fmt.Fprintf(out, "  failed %s: %s\n", failure.Topic.Title(), failure.Reason); err != nil {
			return err
		}
	}
	if record.Reason != "" && record.Outcome != domain.CycleOutcomeFailed {
		if _, err := fmt.Fprintf(out, "warning: %s\n", record.Reason); err != nil {
			return err
		}
	}

	return nil
}
