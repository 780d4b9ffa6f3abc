package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnav/pkg/complete"
)

// NewCompleteCommand creates the complete command.
func NewCompleteCommand() *cobra.Command {
	var cursor int

	cmd := &cobra.Command{
		Use:   "complete <sql>",
		Short: "Suggest completions for a SQL fragment",
		Long: `Analyze a SQL fragment and list completion candidates for the
cursor position: schemas after a qualifier, columns after an alias,
tables after FROM, and keywords or functions elsewhere.

The cursor defaults to the end of the fragment.`,
		Example: `  # What fits after the alias qualifier?
  pgnav complete 'SELECT o. FROM orders o' --cursor 9 -d app

  # Tables after FROM
  pgnav complete 'SELECT * FROM ord' -d app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, args[0], cursor)
		},
	}

	cmd.Flags().IntVar(&cursor, "cursor", -1, "Cursor position in bytes (default: end of fragment)")

	return cmd
}

func runComplete(cmd *cobra.Command, text string, cursor int) error {
	if cursor < 0 || cursor > len(text) {
		cursor = len(text)
	}
	text = text[:cursor]

	cmdCtx := NewCommandContext(cmd)

	snap, err := cmdCtx.LoadSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	sctx := complete.Analyze(text, snap)
	prefix := complete.ExtractPrefix(text)
	cands := complete.Candidates(snap, sctx, prefix)

	return renderCandidates(cmd.OutOrStdout(), cmdCtx.Cfg.OutputFormat, sctx, cands)
}
