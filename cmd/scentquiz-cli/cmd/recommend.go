package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scentquiz/internal/application"
	"scentquiz/internal/application/commands"
	"scentquiz/internal/matching"
)

var (
	recMood     string
	recOccasion string
	recNotes    []string
	recUser     string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend perfumes for a mood, an occasion and optional notes",
	Long: `Recommend up to five perfumes.

Matching words in the descriptions are marked with [brackets]. With --user
the run is added to that user's history; the user must be registered
(see "user add").

Examples:
  scentquiz-cli recommend --mood Fresh --occasion "Everyday Wear" --note Citrus
  scentquiz-cli recommend --mood cozy --occasion work --user alice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := application.ParseQuery(recMood, recOccasion, recNotes)
		if err != nil {
			return err
		}

		a, err := GetApp(cmd.Context())
		if err != nil {
			return err
		}

		if recUser != "" {
			if err := commands.NewCheckUserCommand(a.Users, recUser).Execute(cmd.Context()); err != nil {
				return err
			}
		}

		result, err := commands.NewRecommendCommand(a.Matcher, a.History, logger, recUser, query).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.NoMatch() {
			fmt.Fprintln(out, "No perfumes match these answers.")
		}
		mark := matching.Delimiters("[", "]")
		for _, r := range result.Results {
			fmt.Fprintf(out, "%d. %s  (%.3f)\n", r.Rank, r.Item.Ref(), r.Score)
			if text := r.Item.CombinedText(); text != "" {
				fmt.Fprintf(out, "   %s\n", a.Matcher.Highlight(text, result.Query, mark))
			}
		}
		if result.HistoryErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", result.HistoryErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVarP(&recMood, "mood", "m", "", "mood (see options)")
	recommendCmd.Flags().StringVarP(&recOccasion, "occasion", "o", "", "occasion (see options)")
	recommendCmd.Flags().StringArrayVarP(&recNotes, "note", "n", nil, "scent note, repeatable")
	recommendCmd.Flags().StringVarP(&recUser, "user", "u", "", "record the run in this user's history")
	_ = recommendCmd.MarkFlagRequired("mood")
	_ = recommendCmd.MarkFlagRequired("occasion")
}
