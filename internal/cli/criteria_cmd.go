package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/evaluador/internal/cli/formatter"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/spf13/cobra"
)

func newCriteriaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "criteria",
		Short: "Show the criterion catalog with allowed scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(domain.Catalog()))
			return nil
		},
	}
}

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier TOTAL",
		Short: "Show the tier a total score resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid total %q: %w", args[0], err)
			}
			if total < 0 || total > domain.MaxTotalScore() {
				return fmt.Errorf("total must be between 0 and %d", domain.MaxTotalScore())
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTierPreview(total))
			return nil
		},
	}
}
