package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/rallyctl/rally"
)

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user := rallyClient.CurrentUser()
		fmt.Fprintln(cmd.OutOrStdout(), rallyClient.Me())
		logger.Info().
			Str("user", user.GetDisplayName()).
			Str("host", rallyClient.Host()).
			Msg("Connected to Rally")
		return nil
	},
}

// refCmd represents the ref command
var refCmd = &cobra.Command{
	Use:   "ref <type> [id]",
	Short: "Print the reference path for a type or object",
	Long: `Print the reference path for a type or object without contacting Rally.

Example:
  rallyctl ref story 42   # /hierarchicalrequirement/42.js`,
	Args:        cobra.RangeArgs(1, 2),
	Annotations: map[string]string{skipClientAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) > 1 {
			id = args[1]
		}
		fmt.Fprintln(cmd.OutOrStdout(), rally.BuildRef(args[0], id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(refCmd)
}
