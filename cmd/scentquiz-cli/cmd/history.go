package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scentquiz/internal/application/commands"
	"scentquiz/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history <user>",
	Short: "Show a user's past recommendations, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp(cmd.Context())
		if err != nil {
			return err
		}

		if err := commands.NewCheckUserCommand(a.Users, args[0]).Execute(cmd.Context()); err != nil {
			return err
		}

		entries, err := commands.NewHistoryCommand(a.History, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No history.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), formatQuery(e.Query))
			if len(e.Recommended) == 0 {
				fmt.Fprintln(out, "    no match")
			}
			for i, ref := range e.Recommended {
				fmt.Fprintf(out, "    %d. %s\n", i+1, ref)
			}
		}
		return nil
	},
}

func formatQuery(q domain.PreferenceQuery) string {
	notes := "any notes"
	if len(q.Notes) > 0 {
		ns := make([]string, len(q.Notes))
		for i, n := range q.Notes {
			ns[i] = string(n)
		}
		notes = strings.Join(ns, ", ")
	}
	return fmt.Sprintf("%s / %s / %s", q.Mood, q.Occasion, notes)
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
