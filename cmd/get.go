package cmd

import (
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <type> <id>...",
	Short: "Get objects by id",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	typeName, ids := args[0], args[1:]

	if len(ids) == 1 {
		obj, err := rallyClient.Get(cmd.Context(), typeName, ids[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), currentFormat(), obj)
	}

	objects, err := rallyClient.GetMany(cmd.Context(), typeName, ids)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), currentFormat(), objects)
}
