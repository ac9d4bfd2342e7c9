package commands

import (
	"fmt"
	"io"

	"overstats/internal/profile"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	tableCmd.AddCommand(tableComparisonCmd)
	tableCmd.AddCommand(tableStatsCmd)
	rootCmd.AddCommand(tableCmd)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Renders parts of a player's profile as tables.",
}

var tableComparisonCmd = &cobra.Command{
	Use:   "comparison <battletag> <mode> <comparison_type>",
	Short: "Renders how every hero compares in a comparison, e.g. \"Games Won\".",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProfile(args[0])
		if err != nil {
			return err
		}
		pairs, err := p.Comparisons(cmd.Context(), profile.ComparisonQuery{Mode: args[1], Type: args[2]})
		if err != nil {
			return err
		}
		renderPairs(cmd.OutOrStdout(), args[2], table.Row{"Hero", "Value"}, pairs.(profile.Pairs))
		return nil
	},
}

var tableStatsCmd = &cobra.Command{
	Use:   "stats <battletag> <mode> <hero>",
	Short: "Renders every stat card of a hero, e.g. \"All Heroes\".",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProfile(args[0])
		if err != nil {
			return err
		}
		cards, err := p.Stats(cmd.Context(), profile.StatQuery{Mode: args[1], Hero: args[2]})
		if err != nil {
			return err
		}
		for _, category := range cards.(profile.HeroStats).Keys() {
			pairs, _ := cards.(profile.HeroStats).Get(category)
			renderPairs(cmd.OutOrStdout(), category, table.Row{"Stat", "Value"}, pairs)
		}
		return nil
	},
}

func renderPairs(w io.Writer, title string, header table.Row, pairs profile.Pairs) {
	t := newTable(w)
	t.SetTitle(title)
	t.AppendHeader(header)
	pairs.Each(func(name string, value profile.Value) {
		t.AppendRow(table.Row{name, value.String()})
	})
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d entries", pairs.Len())})
	t.Render()
}
