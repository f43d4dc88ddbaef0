package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/seriestracker/seriestracker/internal/output"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name...>",
		Short: "List the series matching a name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.client.SearchSeries(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return output.Series(cmd.OutOrStdout(), a.format, results)
		},
	}
}
