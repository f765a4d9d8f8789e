package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/s0up4200/rallyctl/rally"
)

var noConfirm bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <type> <id>...",
	Short: "Delete objects by id",
	Long: `Delete one or more Rally objects. You are asked to confirm when running
on a terminal; use --no-confirm in scripts.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	typeName, ids := args[0], args[1:]

	if !noConfirm && isInteractive() {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %d %s object(s) (%s)?", len(ids), rally.Translate(typeName), strings.Join(ids, ", ")))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info().Msg("Deletion cancelled")
			return nil
		}
	}

	result := rallyClient.DeleteMany(cmd.Context(), typeName, ids)
	for _, id := range result.Successful {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", rallyClient.Ref(typeName, id))
	}

	if result.Failed() {
		return fmt.Errorf("failed to delete %d of %d objects: %w", result.Requested-len(result.Successful), result.Requested, result.Err)
	}
	return nil
}

// isInteractive reports whether stdin is a terminal
func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirm asks a yes/no question; anything but y or yes is a no
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read input: %w", err)
		}
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}
