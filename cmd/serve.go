package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/monitoring"
)

func (a *app) newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve simulations over HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, _ := cmd.Flags().GetInt("port")
			open, _ := cmd.Flags().GetBool("open")
			cacheSize, _ := cmd.Flags().GetUint32("cache-size")

			m := monitoring.NewMonitor().
				WithLogger(a.logger).
				WithCacheSize(cacheSize)
			if port > 0 {
				m.WithPortNumber(port)
			}

			m.StartServer()
			defer m.StopServer()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s\n", m.URL())

			if open {
				if err := m.OpenBrowser(); err != nil {
					a.logger.Warn("cannot open browser", "error", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()

			a.logger.Info("server stopped")

			return nil
		},
	}

	serveCmd.Flags().Int("port", a.cfg.MonitorPort,
		"port to listen on, random if below 1000")
	serveCmd.Flags().Bool("open", false, "open the API in a browser")
	serveCmd.Flags().Uint32("cache-size", 256, "number of runs to keep")

	return serveCmd
}
