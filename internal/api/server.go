// Package api exposes the scraper over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seriestracker/seriestracker/internal/tvrage"
)

// Scraper is the subset of the TVRage client served by the API.
type Scraper interface {
	SearchSeries(ctx context.Context, name string) ([]tvrage.SeriesRecord, error)
	GetEpisodes(ctx context.Context, series tvrage.SeriesRecord) ([]tvrage.EpisodeRecord, error)
}

// Server is the HTTP API server.
type Server struct {
	echo    *echo.Echo
	scraper Scraper
	baseURL string
	logger  zerolog.Logger
}

// NewServer creates a new API server. Episode lists are only fetched from
// URLs under baseURL.
func NewServer(scraper Scraper, baseURL string, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		scraper: scraper,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "api").Logger(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
