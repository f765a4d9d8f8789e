package cmd

import (
	"github.com/spf13/cobra"
)

var (
	setFields []string
	dataJSON  string
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create <type>",
	Short: "Create an object",
	Long: `Create a Rally object and print the result.

Example:
  rallyctl create story --set Name="Login page" --set PlanEstimate=3`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <type> <id>",
	Short: "Update fields on an object",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)

	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringArrayVarP(&setFields, "set", "s", nil, "field to set as Key=Value (repeatable)")
		c.Flags().StringVar(&dataJSON, "data", "", "fields as a JSON object")
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	fields, err := parseFields(dataJSON, setFields)
	if err != nil {
		return err
	}

	obj, err := rallyClient.Create(cmd.Context(), args[0], fields)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), currentFormat(), obj)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	fields, err := parseFields(dataJSON, setFields)
	if err != nil {
		return err
	}

	obj, err := rallyClient.Update(cmd.Context(), args[0], args[1], fields)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), currentFormat(), obj)
}
