package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/rallyctl/filter"
	"github.com/s0up4200/rallyctl/rally"
)

var (
	order     string
	noFetch   bool
	whereExpr string
	countOnly bool
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <type> [query]",
	Short: "Find objects with a Rally query",
	Long: `Run a Rally query and print every matching object. Results are paged
through automatically.

Examples:
  rallyctl find story '(ScheduleState = "Defined")' --order "Rank"
  rallyctl find defect '(State = "Open")' --where 'icontains(Name, "login")'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringVar(&order, "order", "", "sort order passed to Rally, e.g. \"FormattedID desc\"")
	findCmd.Flags().BoolVar(&noFetch, "no-fetch", false, "return references only instead of full objects")
	findCmd.Flags().StringVar(&whereExpr, "where", "", "client-side filter expression")
	findCmd.Flags().BoolVar(&countOnly, "count", false, "print only the number of matches")
}

func runFind(cmd *cobra.Command, args []string) error {
	typeName := args[0]
	var query string
	if len(args) > 1 {
		query = args[1]
	}

	// Compile the filter before hitting the API
	var where *filter.Filter
	if whereExpr != "" {
		var err error
		where, err = filter.Compile(whereExpr, logger)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	logger.Debug().Str("type", rally.Translate(typeName)).Str("query", query).Msg("Searching Rally")

	objects, err := rallyClient.Find(cmd.Context(), typeName, query,
		rally.WithOrder(order),
		rally.WithFetch(!noFetch),
	)
	if err != nil {
		return err
	}

	if where != nil {
		objects = where.Apply(objects)
	}
	if objects == nil {
		objects = []rally.Object{}
	}

	if countOnly {
		fmt.Fprintln(cmd.OutOrStdout(), len(objects))
		return nil
	}

	return render(cmd.OutOrStdout(), currentFormat(), objects)
}
