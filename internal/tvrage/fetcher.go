package tvrage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/seriestracker/seriestracker/internal/markup"
)

var (
	ErrFetch            = errors.New("page fetch failed")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// Fetcher retrieves and parses a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*markup.Document, error)
}

// HTTPFetcher fetches pages with one plain GET per call.
type HTTPFetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPFetcher creates a fetcher. A zero timeout never gives up on a
// stalled server.
func NewHTTPFetcher(timeout time.Duration, logger zerolog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch issues a GET for url and parses the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*markup.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("HTTP request failed")
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Error().Int("status", resp.StatusCode).Str("url", url).Msg("unexpected response status")
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	doc, err := markup.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	f.logger.Trace().
		Str("url", url).
		Dur("elapsed", time.Since(start)).
		Msg("fetched page")

	return doc, nil
}
