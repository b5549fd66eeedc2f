package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-simulator/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(state *cliState) *cobra.Command {
	var (
		port    string
		origins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := api.DefaultOptions(port)
			if len(origins) > 0 {
				opts.AllowedOrigins = origins
			}
			return serve(cmd.Context(), state, api.NewServer(opts, state.log))
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", state.env.Port, "listen port (env PORT)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin, repeatable (default any)")
	return cmd
}

// serve runs srv until it fails or ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, state *cliState, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		state.log.Infof("Starting server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		state.log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
