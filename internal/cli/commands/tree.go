package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnav/pkg/tree"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the schema tree",
		Long: `Introspect the database and print the full object tree: schemas,
tables with columns, indexes, foreign keys, triggers and policies, plus
views, functions, sequences and types.`,
		Example: `  # Full tree for the configured database
  pgnav tree -d app

  # Only the public schema, as JSON
  pgnav tree -d app --schema public --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTree(cmd)
		},
	}

	return cmd
}

func runTree(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)

	snap, err := cmdCtx.LoadSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	root := tree.Build(cmdCtx.Cfg.Database, snap)

	if cmdCtx.Cfg.OutputFormat == "json" {
		return renderJSON(cmd.OutOrStdout(), &root)
	}
	renderTree(cmd.OutOrStdout(), &root, 0)
	return nil
}
