package commands

import (
	"context"
	"fmt"
	"io"

	"overstats/internal/profile"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile <battletag> [--platform pc] [--decimal]",
	Short: "Walks every mode, comparison, stat and achievement of a player and prints them.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProfile(args[0])
		if err != nil {
			return err
		}
		if err := p.Load(cmd.Context(), false); err != nil {
			return err
		}
		return walkProfile(cmd.Context(), p, cmd.OutOrStdout())
	},
}

func walkProfile(ctx context.Context, p *profile.Profile, w io.Writer) error {
	modes, err := p.Modes(ctx)
	if err != nil {
		return err
	}
	for _, mode := range modes {
		fmt.Fprintf(w, "Game Mode: %s\n", mode)
		if err := walkComparisons(ctx, p, w, mode); err != nil {
			return err
		}
		if err := walkStats(ctx, p, w, mode); err != nil {
			return err
		}
	}
	return walkAchievements(ctx, p, w)
}

func walkComparisons(ctx context.Context, p *profile.Profile, w io.Writer, mode string) error {
	types, err := p.ComparisonTypes(ctx, mode)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Comparison Types Available: %v\n", types)
	for _, typ := range types {
		fmt.Fprintf(w, " - Comparison Type: %s\n", typ)
		heroes, err := p.ComparisonHeroes(ctx, mode, typ)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, " - Heroes available to compare: %v\n", heroes)
		for _, hero := range heroes {
			value, err := p.Comparison(ctx, mode, typ, hero)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "    - %s: %s\n", hero, value)
		}
	}
	return nil
}

func walkStats(ctx context.Context, p *profile.Profile, w io.Writer, mode string) error {
	heroes, err := p.StatHeroes(ctx, mode)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Heroes with Stats Available: %v\n", heroes)
	for _, hero := range heroes {
		fmt.Fprintf(w, " - Hero: %s\n", hero)
		categories, err := p.StatCategories(ctx, mode, hero)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, " - Categories available for stats: %v\n", categories)
		for _, category := range categories {
			fmt.Fprintf(w, "    - Category: %s\n", category)
			names, err := p.StatNames(ctx, mode, hero, category)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "    - Stats available: %v\n", names)
			for _, name := range names {
				value, err := p.Stat(ctx, mode, hero, category, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "       - %s: %s\n", name, value)
			}
		}
	}
	return nil
}

func walkAchievements(ctx context.Context, p *profile.Profile, w io.Writer) error {
	types, err := p.AchievementTypes(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Achievement Types Available: %v\n", types)
	for _, typ := range types {
		fmt.Fprintf(w, "Achievement Type: %s\n", typ)
		for _, list := range []string{profile.ListEarned, profile.ListMissing} {
			names, err := p.AchievementNames(ctx, typ, list)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, " - %s\n", list)
			for _, name := range names {
				fmt.Fprintf(w, "    - %s\n", name)
			}
		}
	}
	return nil
}
