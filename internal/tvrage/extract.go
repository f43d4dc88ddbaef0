package tvrage

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seriestracker/seriestracker/internal/markup"
)

// ExtractSeries reads one search result block.
//
// The first anchor is the show title and detail link. A block with exactly
// three anchors (title, thumbnail, latest episode) also carries the latest
// episode: its air date is the third word of the second dd, its name is the
// third anchor's text. Any other anchor count yields a record without
// latest-episode info.
func (c *Client) ExtractSeries(fragment *markup.Element) (SeriesRecord, error) {
	anchors := fragment.FindAll("a")

	var title, path string
	if len(anchors) > 0 {
		title = anchors[0].Text()
		path = anchors[0].AttrOr("href", "")
	}

	series := SeriesRecord{
		Title:       title,
		EpisodesURL: c.config.BaseURL + path + c.config.EpisodesSuffix,
	}

	if len(anchors) != 3 {
		return series, nil
	}

	details := fragment.FindAll("dd")
	if len(details) < 2 {
		return SeriesRecord{}, fmt.Errorf("%w: search result %q has %d dd blocks, want at least 2", ErrStructure, title, len(details))
	}
	words := strings.Fields(details[1].Text())
	if len(words) < 3 {
		return SeriesRecord{}, fmt.Errorf("%w: latest episode block of %q has no air date", ErrStructure, title)
	}

	series.Latest = &LatestEpisode{
		AirDate: words[2],
		Name:    anchors[2].Text(),
	}
	return series, nil
}

// ExtractEpisode reads one episode list row. It returns nil without error
// for continuation rows and for rows whose season is not exactly one
// character.
//
// Cell layout: the first anchor holds "<season>x<episode>", the third cell
// holds the air date, and the last anchor of the fourth cell holds the name.
func (c *Client) ExtractEpisode(ctx context.Context, row *markup.Element) (*EpisodeRecord, error) {
	if parent := row.Parent(); parent != nil && parent.PrevSiblingIsElement() {
		return nil, nil
	}

	anchors := row.FindAll("a")
	cells := row.FindAll("td")
	if len(anchors) == 0 {
		return nil, fmt.Errorf("%w: episode row has no anchors", ErrStructure)
	}
	if len(cells) < 4 {
		return nil, fmt.Errorf("%w: episode row has %d cells, want at least 4", ErrStructure, len(cells))
	}
	nameAnchors := cells[3].FindAll("a")
	if len(nameAnchors) == 0 {
		return nil, fmt.Errorf("%w: episode row has no name anchor", ErrStructure)
	}

	number := anchors[0].Text()
	season, _, _ := strings.Cut(number, "x")

	// Seasons 10 and up are dropped along with malformed numbers.
	if utf8.RuneCountInString(season) != 1 {
		c.logger.Trace().Str("number", number).Msg("skipping episode row")
		return nil, nil
	}

	episode := &EpisodeRecord{
		Number:  number,
		Name:    nameAnchors[len(nameAnchors)-1].Text(),
		Season:  season,
		AirDate: cells[2].Text(),
	}

	if c.config.FetchSynopsis {
		detailURL := c.config.BaseURL + anchors[len(anchors)-1].AttrOr("href", "")
		synopsis, err := c.Synopsis(ctx, detailURL)
		if err != nil {
			return nil, err
		}
		episode.Synopsis = synopsis
		c.logger.Debug().Str("number", number).Msg("fetched synopsis")
	}

	return episode, nil
}

// Synopsis fetches an episode detail page and returns its synopsis text
// with leading whitespace removed.
func (c *Client) Synopsis(ctx context.Context, detailURL string) (string, error) {
	doc, err := c.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return "", err
	}

	containers := doc.FindAll(synopsisSelector)
	if len(containers) == 0 {
		return "", fmt.Errorf("%w: no synopsis on %s", ErrStructure, detailURL)
	}

	return strings.TrimLeftFunc(containers[0].Text(), unicode.IsSpace), nil
}
