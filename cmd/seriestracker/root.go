package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seriestracker/seriestracker/internal/config"
	"github.com/seriestracker/seriestracker/internal/logger"
	"github.com/seriestracker/seriestracker/internal/output"
	"github.com/seriestracker/seriestracker/internal/tvrage"
)

const demoQuery = "Game of Thrones"

var errNoResults = errors.New("no series matched")

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	configPath string
	formatName string
	noSynopsis bool
	debug      bool

	cfg    *config.Config
	log    *logger.Logger
	client *tvrage.Client
	format output.Format
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var query string
	cmd := &cobra.Command{
		Use:   "seriestracker",
		Short: "Look up TV series and their episode lists on TVRage",
		Long: "Look up TV series and their episode lists on TVRage.\n\n" +
			"Run without a subcommand to search for a show, take the first\n" +
			"result and print its episodes.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printEpisodes(cmd, query, 0)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to config file")
	flags.StringVarP(&a.formatName, "format", "f", string(output.FormatTable), "output format: table, json or yaml")
	flags.BoolVar(&a.noSynopsis, "no-synopsis", false, "skip fetching each episode's synopsis page")
	flags.BoolVar(&a.debug, "debug", false, "log every page fetch and synopsis")

	cmd.Flags().StringVarP(&query, "query", "q", demoQuery, "show to look up")

	cmd.AddCommand(
		newSearchCmd(a),
		newEpisodesCmd(a),
		newServeCmd(a),
	)

	return cmd
}

func (a *app) init() error {
	format, err := output.ParseFormat(a.formatName)
	if err != nil {
		return err
	}
	a.format = format

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.noSynopsis {
		cfg.Scrape.FetchSynopsis = false
	}
	if a.debug {
		cfg.Scrape.Debug = true
		cfg.Logging.Level = "debug"
	}
	a.cfg = cfg

	a.log = logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})

	a.client = tvrage.NewClient(cfg.TVRage(), a.log.Logger)
	return nil
}

// printEpisodes searches for query and prints the episodes of the result at
// index.
func (a *app) printEpisodes(cmd *cobra.Command, query string, index int) error {
	results, err := a.client.SearchSeries(cmd.Context(), query)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(results) {
		if len(results) == 0 {
			return fmt.Errorf("%w %q", errNoResults, query)
		}
		return fmt.Errorf("result index %d out of range, %q has %d results", index, query, len(results))
	}

	series := results[index]
	a.log.Info().
		Str("title", series.Title).
		Str("url", series.EpisodesURL).
		Msg("fetching episode list")

	episodes, err := a.client.GetEpisodes(cmd.Context(), series)
	if err != nil {
		return err
	}

	return output.Episodes(cmd.OutOrStdout(), a.format, episodes)
}
