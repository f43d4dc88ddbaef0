package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/seriestracker/seriestracker/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search and episode lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				address = a.cfg.Server.Address()
			}

			server := api.NewServer(a.client, a.cfg.Site.BaseURL, a.log.Logger)

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Start(address)
			}()

			select {
			case err := <-errChan:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				a.log.Info().Msg("received shutdown signal")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				a.log.Error().Err(err).Msg("server shutdown error")
				return err
			}

			a.log.Info().Msg("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "addr", "", "listen address (default from config)")

	return cmd
}
