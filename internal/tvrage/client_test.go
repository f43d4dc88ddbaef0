package tvrage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body><div id="content">` +
	smashResult +
	`<div class=" clearfix" id="show_search"><dl>` +
	`<dt><h2><a href="/Smash_2011">Smash (UK)</a></h2></dt>` +
	`<dd class="img"><a href="/Smash_2011"><img/></a></dd>` +
	`<dd><strong>Genre:</strong> Drama</dd>` +
	`</dl></div>` +
	`</div></body></html>`

func episodeListPage() string {
	return `<html><body><div id="list"><table>` +
		`<tbody>` +
		episodeRow("1x01", "13/Sep/2005", "Pilot") +
		episodeRow("1x02", "20/Sep/2005", "Wendigo") +
		episodeRow("10x05", "05/Nov/2014", "Fan Fiction") +
		`</tbody>` +
		`<tbody>` + episodeRow("1x03", "27/Sep/2005", "Dead in the Water") + `</tbody>` +
		`</table></div></body></html>`
}

type testSite struct {
	server *httptest.Server
	mu     sync.Mutex
	paths  []string
}

func (s *testSite) requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	site := &testSite{}
	site.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.mu.Lock()
		site.paths = append(site.paths, r.URL.RequestURI())
		site.mu.Unlock()

		switch {
		case r.URL.Path == "/search.php":
			if r.URL.RawQuery != "search=Smash" && r.URL.RawQuery != "search=Game+of+Thrones" {
				_, _ = w.Write([]byte(`<html><body><p>No results</p></body></html>`))
				return
			}
			_, _ = w.Write([]byte(searchPage))
		case r.URL.Path == "/Smash/episode_list/all":
			_, _ = w.Write([]byte(episodeListPage()))
		case strings.HasPrefix(r.URL.Path, "/Supernatural/episodes/"):
			_, _ = w.Write([]byte(`<div class="show_synopsis">` + "\n  Sam and Dean.\n" + `</div>`))
		case r.URL.Path == "/Broken/episode_list/all":
			_, _ = w.Write([]byte(`<table><tr id="brow"><td><a href="/Broken/episodes/1">1x01</a></td></tr></table>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(site.server.Close)
	return site
}

func newSiteClient(site *testSite, fetchSynopsis bool) *Client {
	cfg := Config{
		BaseURL:        site.server.URL,
		SearchURL:      site.server.URL + "/search.php?search=",
		EpisodesSuffix: DefaultEpisodesSuffix,
		FetchSynopsis:  fetchSynopsis,
		Timeout:        5 * time.Second,
	}
	return NewClient(cfg, zerolog.Nop())
}

func TestClient_Name(t *testing.T) {
	client := NewClient(DefaultConfig(), zerolog.Nop())
	assert.Equal(t, "tvrage", client.Name())
}

func TestClient_SearchSeries(t *testing.T) {
	site := newTestSite(t)
	client := newSiteClient(site, false)

	results, err := client.SearchSeries(context.Background(), "Smash")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Smash", results[0].Title)
	assert.Equal(t, site.server.URL+"/Smash/episode_list/all", results[0].EpisodesURL)
	require.NotNil(t, results[0].Latest)
	assert.Equal(t, "May/14/2012", results[0].Latest.AirDate)
	assert.Equal(t, "Bombshell", results[0].Latest.Name)

	assert.Equal(t, "Smash (UK)", results[1].Title)
	assert.Equal(t, site.server.URL+"/Smash_2011/episode_list/all", results[1].EpisodesURL)
	assert.Nil(t, results[1].Latest)
}

func TestClient_SearchSeries_SpacesBecomePlus(t *testing.T) {
	site := newTestSite(t)
	client := newSiteClient(site, false)

	_, err := client.SearchSeries(context.Background(), "Game of Thrones")
	require.NoError(t, err)
	assert.Equal(t, []string{"/search.php?search=Game+of+Thrones"}, site.requests())
}

func TestClient_SearchSeries_NoResults(t *testing.T) {
	site := newTestSite(t)
	client := newSiteClient(site, false)

	results, err := client.SearchSeries(context.Background(), "Nothing Here")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestClient_SearchSeries_Idempotent(t *testing.T) {
	site := newTestSite(t)
	client := newSiteClient(site, false)

	first, err := client.SearchSeries(context.Background(), "Smash")
	require.NoError(t, err)
	second, err := client.SearchSeries(context.Background(), "Smash")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, site.requests(), 2)
}

func TestClient_SearchSeries_HTTPError(t *testing.T) {
	site := newTestSite(t)
	client := newSiteClient(site, false)
	client.config.SearchURL = site.server.URL + "/missing?search="

	results, err := client.SearchSeries(context.Background(), "Smash")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Nil(t, results)
}

func TestClient_GetEpisodes(t *testing.T) {
	site := newTestSite(t)
	client := newSiteClient(site, false)

	episodes, err := client.GetEpisodes(context.Background(), SeriesRecord{
		Title:       "Smash",
		EpisodesURL: site.server.URL + "/Smash/episode_list/all",
	})
	require.NoError(t, err)

	// 10x05 has a two-character season and 1x03 sits in a continuation tbody.
	require.Len(t, episodes, 2)
	assert.Equal(t, EpisodeRecord{Number: "1x01", Name: "Pilot", Season: "1", AirDate: "13/Sep/2005"}, episodes[0])
	assert.Equal(t, EpisodeRecord{Number: "1x02", Name: "Wendigo", Season: "1", AirDate: "20/Sep/2005"}, episodes[1])
	assert.Equal(t, []string{"/Smash/episode_list/all"}, site.requests())
}

func TestClient_GetEpisodes_WithSynopsis(t *testing.T) {
	site := newTestSite(t)
	client := newSiteClient(site, true)

	episodes, err := client.GetEpisodes(context.Background(), SeriesRecord{
		EpisodesURL: site.server.URL + "/Smash/episode_list/all",
	})
	require.NoError(t, err)
	require.Len(t, episodes, 2)

	for _, episode := range episodes {
		assert.Equal(t, "Sam and Dean.\n", episode.Synopsis)
	}
	// One list fetch plus one detail fetch per kept row.
	assert.Equal(t, []string{
		"/Smash/episode_list/all",
		"/Supernatural/episodes/166205/gallery",
		"/Supernatural/episodes/166205/gallery",
	}, site.requests())
}

func TestClient_GetEpisodes_StructuralFaultAborts(t *testing.T) {
	site := newTestSite(t)
	client := newSiteClient(site, false)

	episodes, err := client.GetEpisodes(context.Background(), SeriesRecord{
		EpisodesURL: site.server.URL + "/Broken/episode_list/all",
	})
	assert.ErrorIs(t, err, ErrStructure)
	assert.Nil(t, episodes)
}

func TestClient_GetEpisodes_SynopsisMissingAborts(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"http://www.tvrage.com/Show/episode_list/all": "<table>" + episodeRow("1x01", "13/Sep/2005", "Pilot") + "</table>",
		"http://www.tvrage.com/Supernatural/episodes/166205/gallery": `<div>no synopsis</div>`,
	}}
	client := newTestClient(fetcher, true)

	_, err := client.GetEpisodes(context.Background(), SeriesRecord{
		EpisodesURL: "http://www.tvrage.com/Show/episode_list/all",
	})
	assert.ErrorIs(t, err, ErrStructure)
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	site := newTestSite(t)
	fetcher := NewHTTPFetcher(5*time.Second, zerolog.Nop())

	doc, err := fetcher.Fetch(context.Background(), site.server.URL+"/search.php?search=Smash")
	require.NoError(t, err)
	assert.Len(t, doc.FindAll("#show_search"), 2)

	_, err = fetcher.Fetch(context.Background(), site.server.URL+"/nowhere")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	fetcher := NewHTTPFetcher(time.Second, zerolog.Nop())
	_, err := fetcher.Fetch(context.Background(), url)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestHTTPFetcher_ContextCanceled(t *testing.T) {
	site := newTestSite(t)
	fetcher := NewHTTPFetcher(0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, site.server.URL+"/search.php?search=Smash")
	assert.ErrorIs(t, err, context.Canceled)
}
