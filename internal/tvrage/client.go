package tvrage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrStructure = errors.New("unexpected page structure")

const (
	DefaultBaseURL        = "http://www.tvrage.com"
	DefaultSearchURL      = "http://www.tvrage.com/search.php?search="
	DefaultEpisodesSuffix = "/episode_list/all"

	searchResultSelector = "#show_search"
	episodeRowSelector   = "#brow"
	synopsisSelector     = "div.show_synopsis"
)

// Config controls where pages are fetched from and how much is fetched.
type Config struct {
	BaseURL        string
	SearchURL      string
	EpisodesSuffix string
	// FetchSynopsis fetches every episode's detail page for its synopsis.
	FetchSynopsis bool
	// Debug forces debug-level logging for this client.
	Debug   bool
	Timeout time.Duration
}

// DefaultConfig returns the TVRage URL scheme with synopsis fetching on.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		SearchURL:      DefaultSearchURL,
		EpisodesSuffix: DefaultEpisodesSuffix,
		FetchSynopsis:  true,
	}
}

// Client scrapes series and episode listings from TVRage pages.
type Client struct {
	config  Config
	fetcher Fetcher
	logger  zerolog.Logger
}

// NewClient creates a client that fetches pages over HTTP.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	return NewClientWithFetcher(cfg, NewHTTPFetcher(cfg.Timeout, logger.With().Str("component", "fetcher").Logger()), logger)
}

// NewClientWithFetcher creates a client that reads pages through fetcher.
func NewClientWithFetcher(cfg Config, fetcher Fetcher, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "tvrage").Logger()
	if cfg.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}
	return &Client{
		config:  cfg,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tvrage"
}

// SearchSeries runs a site search and returns every result in page order.
func (c *Client) SearchSeries(ctx context.Context, name string) ([]SeriesRecord, error) {
	url := c.config.SearchURL + strings.ReplaceAll(name, " ", "+")

	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	fragments := doc.FindAll(searchResultSelector)
	results := make([]SeriesRecord, 0, len(fragments))
	for _, fragment := range fragments {
		series, err := c.ExtractSeries(fragment)
		if err != nil {
			return nil, err
		}
		results = append(results, series)
	}

	c.logger.Debug().
		Str("query", name).
		Int("results", len(results)).
		Msg("series search completed")

	return results, nil
}

// GetEpisodes fetches the episode list of series. Continuation rows and
// rows whose season is not a single character are skipped.
func (c *Client) GetEpisodes(ctx context.Context, series SeriesRecord) ([]EpisodeRecord, error) {
	doc, err := c.fetcher.Fetch(ctx, series.EpisodesURL)
	if err != nil {
		return nil, err
	}

	rows := doc.FindAll(episodeRowSelector)
	episodes := make([]EpisodeRecord, 0, len(rows))
	for _, row := range rows {
		episode, err := c.ExtractEpisode(ctx, row)
		if err != nil {
			return nil, err
		}
		if episode != nil {
			episodes = append(episodes, *episode)
		}
	}

	c.logger.Debug().
		Str("url", series.EpisodesURL).
		Int("rows", len(rows)).
		Int("episodes", len(episodes)).
		Msg("episode list fetched")

	return episodes, nil
}
