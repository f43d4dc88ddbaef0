package tvrage

import "fmt"

// SeriesRecord is one show found on the search results page.
type SeriesRecord struct {
	Title       string `json:"title" yaml:"title"`
	EpisodesURL string `json:"episodesUrl" yaml:"episodes_url"`
	// Latest is nil when the search result has no "Latest Episode" block.
	Latest *LatestEpisode `json:"latest,omitempty" yaml:"latest,omitempty"`
}

// LatestEpisode is the most recently aired episode listed with a search result.
type LatestEpisode struct {
	AirDate string `json:"airDate" yaml:"air_date"`
	Name    string `json:"name" yaml:"name"`
}

// HasLatest reports whether the record carries latest-episode info.
func (s SeriesRecord) HasLatest() bool {
	return s.Latest != nil
}

// EpisodeRecord is one row of a show's episode list.
type EpisodeRecord struct {
	Number   string `json:"number" yaml:"number"` // e.g. "1x01"
	Name     string `json:"name" yaml:"name"`
	Season   string `json:"season" yaml:"season"`
	AirDate  string `json:"airDate" yaml:"air_date"` // as rendered, e.g. "13/Sep/2005"
	Synopsis string `json:"synopsis" yaml:"synopsis"`
}

func (e EpisodeRecord) String() string {
	return fmt.Sprintf("(%q, %q, %q, %q, %q)", e.Number, e.Name, e.Season, e.AirDate, e.Synopsis)
}
