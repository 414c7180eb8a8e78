package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const metricsShutdownTimeout = 5 * time.Second

func newAutomateCmd(a *app) *cobra.Command {
	var at string
	var metricsListen string

	cmd := &cobra.Command{
		Use:   "automate",
		Short: "Run the publish cycle daily at a fixed time until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if at == "" {
				at = a.config.Schedule.Time.String()
			}
			if metricsListen == "" {
				metricsListen = a.config.Metrics.Listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			started := a.orchestrator.StartAutomation(at)
			if !started.Success {
				return fmt.Errorf("start automation: %s", started.Reason)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Automation active: daily at %s, next run %s\n",
				started.State.At, started.State.NextRun.Format(time.RFC3339))

			var server *http.Server
			if metricsListen != "" {
				var err error
				server, err = serveMetrics(metricsListen, a)
				if err != nil {
					a.orchestrator.StopAutomation()
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving metrics on http://%s/metrics\n", server.Addr)
			}

			<-ctx.Done()

			stopped := a.orchestrator.StopAutomation()
			if server != nil {
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownTimeout)
				if err := server.Shutdown(shutdownCtx); err != nil {
					a.logger.WithError(err).Warn("metrics server shutdown")
				}
				cancel()
			}

			totals := a.metrics.Totals()
			a.logger.WithFields(logrus.Fields{
				"cycles":    totals.Cycles,
				"generated": totals.Generated,
				"skipped":   totals.Skipped,
			}).Info("automation stopped")

			if !stopped.Success {
				return fmt.Errorf("stop automation: %s", stopped.Reason)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Automation stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Local time of day as HH:MM (default: schedule.time)")
	cmd.Flags().StringVar(&metricsListen, "metrics-listen", "", "Serve /metrics on this address (default: metrics.listen)")

	return cmd
}

// serveMetrics binds listen before returning so address errors surface immediately.
func serveMetrics(listen string, a *app) (*http.Server, error) {
	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return nil, fmt.Errorf("listen for metrics on %s: %w", listen, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())

	server := &http.Server{
		Addr:              listener.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.WithError(err).Error("metrics server stopped")
		}
	}()

	return server, nil
}
