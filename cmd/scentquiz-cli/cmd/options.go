package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scentquiz/internal/application"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the accepted moods, occasions and notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := application.Options()
		for _, k := range []string{"mood", "occasion", "notes"} {
			fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", k+":", strings.Join(opts[k], ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
