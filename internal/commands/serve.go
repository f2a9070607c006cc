package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/purplebook-dev/purplebook/internal/api"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var addr string
	var metrics bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the books over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			srv := api.NewServer(a.journal, a.reports, a.stock, a.logger)
			if metrics {
				srv.EnableMetrics()
			}

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      40 * time.Second,
				IdleTimeout:       60 * time.Second,
				MaxHeaderBytes:    1 << 16,
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				a.logger.Info("starting purplebook server", "addr", addr)
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				a.logger.Info("shutting down server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				return err
			}
			a.logger.Info("server stopped gracefully")
			return nil
		}),
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics on /metrics")

	return cmd
}
