// Package output renders scraped records for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/seriestracker/seriestracker/internal/tvrage"
)

// Format selects how records are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Series writes search results.
func Series(w io.Writer, format Format, series []tvrage.SeriesRecord) error {
	if format != FormatTable {
		return encode(w, format, series)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Title", "Latest Episode", "Aired", "Episode List"})
	for i, s := range series {
		var latest, aired string
		if s.HasLatest() {
			latest = s.Latest.Name
			aired = s.Latest.AirDate
		}
		t.AppendRow(table.Row{i, s.Title, latest, aired, s.EpisodesURL})
	}
	t.Render()
	return nil
}

// Episodes writes an episode list.
func Episodes(w io.Writer, format Format, episodes []tvrage.EpisodeRecord) error {
	if format != FormatTable {
		return encode(w, format, episodes)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Number", "Name", "Season", "Aired", "Synopsis"})
	for _, e := range episodes {
		t.AppendRow(table.Row{e.Number, e.Name, e.Season, e.AirDate, e.Synopsis})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Synopsis", WidthMax: 60},
	})
	t.Render()
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
