package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mes/cmd"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the scheduled jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.close()

			root, err := cmd.NewCompositionRoot(a.cfg, a.db, a.logger)
			if err != nil {
				return err
			}

			e, err := root.CreateRouter(ctx)
			if err != nil {
				return err
			}

			jobManager := root.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			serveErr := make(chan error, 1)
			go func() {
				a.logger.InfoContext(ctx, "HTTP server started", "port", a.cfg.HTTPPort)
				serveErr <- e.Start("0.0.0.0:" + a.cfg.HTTPPort)
			}()

			select {
			case err = <-serveErr:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.InfoContext(context.Background(), "Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}
