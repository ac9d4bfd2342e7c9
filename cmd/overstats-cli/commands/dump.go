package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var dumpIndent bool

func init() {
	dumpCmd.Flags().BoolVar(&dumpIndent, "indent", true, "Indent the JSON output.")
	rootCmd.AddCommand(dumpCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump <battletag> [--indent]",
	Short: "Prints the whole profile of a player as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProfile(args[0])
		if err != nil {
			return err
		}
		model, err := p.Raw(cmd.Context())
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		if dumpIndent {
			encoder.SetIndent("", "  ")
		}
		return encoder.Encode(model)
	},
}
