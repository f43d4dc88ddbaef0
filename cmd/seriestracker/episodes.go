package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newEpisodesCmd(a *app) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "episodes <name...>",
		Short: "Print the episode list of a series",
		Long: "Search for a series by name and print the episode list of one\n" +
			"of the results (the first by default).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printEpisodes(cmd, strings.Join(args, " "), index)
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "which search result to use")

	return cmd
}
