package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnav/pkg/search"
)

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Fuzzy-search database objects",
		Long: `Search tables, views, columns and functions by subsequence match.

Exact names rank first, then prefix matches, then substring matches, then
scattered subsequences. Results are capped at the 50 best hits.`,
		Example: `  # Find anything resembling "usr"
  pgnav search usr -d app

  # Machine-readable results
  pgnav search order_total -d app --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0])
		},
	}

	return cmd
}

func runSearch(cmd *cobra.Command, pattern string) error {
	cmdCtx := NewCommandContext(cmd)

	snap, err := cmdCtx.LoadSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	results := search.Search(snap, pattern)
	return renderSearchResults(cmd.OutOrStdout(), cmdCtx.Cfg.OutputFormat, results)
}
