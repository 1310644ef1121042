package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scentquiz/internal/application/commands"
)

var userPassword string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage quiz users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a user",
	Long: `Register a user who can log in to the quiz and keep a history.

Examples:
  scentquiz-cli user add testuser --password testpassword`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userPassword == "" {
			return errors.New("--password is required")
		}
		a, err := GetApp(cmd.Context())
		if err != nil {
			return err
		}

		user, err := commands.NewRegisterCommand(a.Identity, args[0], userPassword).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", user.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "password (at least 6 characters)")
}
