package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/seriestracker/seriestracker/internal/markup"
	"github.com/seriestracker/seriestracker/internal/tvrage"
)

// Handlers provides HTTP handlers for series lookups.
type Handlers struct {
	scraper Scraper
	baseURL string
}

// NewHandlers creates new series handlers.
func NewHandlers(scraper Scraper, baseURL string) *Handlers {
	return &Handlers{
		scraper: scraper,
		baseURL: baseURL,
	}
}

// RegisterRoutes registers the series routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.SearchSeries)
	g.GET("/episodes", h.GetEpisodes)
}

// SearchSeries searches the listing site by show name.
// GET /api/v1/series/search?query=...
func (h *Handlers) SearchSeries(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter is required")
	}

	results, err := h.scraper.SearchSeries(c.Request().Context(), query)
	if err != nil {
		return upstreamError(err)
	}

	return c.JSON(http.StatusOK, results)
}

// GetEpisodes lists the episodes on a series' episode list page.
// GET /api/v1/series/episodes?url=...
func (h *Handlers) GetEpisodes(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url parameter is required")
	}
	if !strings.HasPrefix(url, h.baseURL+"/") {
		return echo.NewHTTPError(http.StatusBadRequest, "url must point to "+h.baseURL)
	}

	episodes, err := h.scraper.GetEpisodes(c.Request().Context(), tvrage.SeriesRecord{EpisodesURL: url})
	if err != nil {
		return upstreamError(err)
	}

	return c.JSON(http.StatusOK, episodes)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// upstreamError maps scrape failures to a gateway error, anything else to 500.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, tvrage.ErrFetch),
		errors.Is(err, tvrage.ErrUnexpectedStatus),
		errors.Is(err, tvrage.ErrStructure),
		errors.Is(err, markup.ErrParse):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error()).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}
