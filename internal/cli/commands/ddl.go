package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnav/pkg/ddl"
	"github.com/leapstack-labs/pgnav/pkg/schema"
)

// NewDDLCommand creates the ddl command group.
func NewDDLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Generate DDL for database objects",
		Long: `Reconstruct executable DDL from catalog metadata.

Statements are generated from the introspected snapshot, never from
pg_dump, so they reflect exactly what the navigator sees.`,
	}

	cmd.AddCommand(newDDLCreateCommand())
	cmd.AddCommand(newDDLDropCommand())
	cmd.AddCommand(newDDLTruncateCommand())
	cmd.AddCommand(newDDLReindexCommand())
	cmd.AddCommand(newDDLRefreshCommand())

	return cmd
}

func newDDLCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <table>",
		Short: "Generate CREATE TABLE and companion statements",
		Example: `  # Table plus secondary indexes and comments
  pgnav ddl create public.orders -d app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			snap, err := cmdCtx.LoadSnapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			t, ok := snap.FindTable(args[0])
			if !ok {
				return fmt.Errorf("table not found: %s", args[0])
			}

			stmts := ddl.CreateTable(t)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(stmts, "\n\n"))
			return nil
		},
	}
}

func newDDLDropCommand() *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "drop <object>",
		Short: "Generate a DROP statement for a table, view, sequence, or index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			snap, err := cmdCtx.LoadSnapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			stmt, err := dropStatementFor(snap, args[0], cascade)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), stmt)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Drop dependent objects too")

	return cmd
}

// dropStatementFor resolves name against every droppable object family,
// tables first.
func dropStatementFor(snap schema.Snapshot, name string, cascade bool) (string, error) {
	if t, ok := snap.FindTable(name); ok {
		return ddl.DropTable(t, cascade), nil
	}

	schemaName, bare := splitQualified(name)
	for i := range snap {
		s := &snap[i]
		if schemaName != "" && !strings.EqualFold(s.Name, schemaName) {
			continue
		}
		for j := range s.Views {
			if strings.EqualFold(s.Views[j].Name, bare) {
				return ddl.DropView(&s.Views[j], cascade), nil
			}
		}
		for j := range s.MaterializedViews {
			if strings.EqualFold(s.MaterializedViews[j].Name, bare) {
				return ddl.DropView(&s.MaterializedViews[j], cascade), nil
			}
		}
		for j := range s.Sequences {
			if strings.EqualFold(s.Sequences[j].Name, bare) {
				return ddl.DropSequence(&s.Sequences[j], cascade), nil
			}
		}
		for j := range s.Tables {
			t := &s.Tables[j]
			for k := range t.Indexes {
				if strings.EqualFold(t.Indexes[k].Name, bare) {
					return ddl.DropIndex(t.Schema, &t.Indexes[k], cascade), nil
				}
			}
		}
	}
	return "", fmt.Errorf("object not found: %s", name)
}

func splitQualified(name string) (schemaName, bare string) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func newDDLTruncateCommand() *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "truncate <table>",
		Short: "Generate a TRUNCATE statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			snap, err := cmdCtx.LoadSnapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			t, ok := snap.FindTable(args[0])
			if !ok {
				return fmt.Errorf("table not found: %s", args[0])
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), ddl.TruncateTable(t, cascade))
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Truncate referencing tables too")

	return cmd
}

func newDDLReindexCommand() *cobra.Command {
	var concurrently bool

	cmd := &cobra.Command{
		Use:   "reindex <table>",
		Short: "Generate a REINDEX statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			snap, err := cmdCtx.LoadSnapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			t, ok := snap.FindTable(args[0])
			if !ok {
				return fmt.Errorf("table not found: %s", args[0])
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), ddl.ReindexTable(t, concurrently))
			return nil
		},
	}

	cmd.Flags().BoolVar(&concurrently, "concurrently", false, "Rebuild without blocking writes")

	return cmd
}

func newDDLRefreshCommand() *cobra.Command {
	var concurrently bool

	cmd := &cobra.Command{
		Use:   "refresh <materialized-view>",
		Short: "Generate a REFRESH MATERIALIZED VIEW statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			snap, err := cmdCtx.LoadSnapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			schemaName, bare := splitQualified(args[0])
			for i := range snap {
				s := &snap[i]
				if schemaName != "" && !strings.EqualFold(s.Name, schemaName) {
					continue
				}
				for j := range s.MaterializedViews {
					if strings.EqualFold(s.MaterializedViews[j].Name, bare) {
						stmt := ddl.RefreshMaterializedView(&s.MaterializedViews[j], concurrently)
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), stmt)
						return nil
					}
				}
			}
			return fmt.Errorf("materialized view not found: %s", args[0])
		},
	}

	cmd.Flags().BoolVar(&concurrently, "concurrently", false, "Refresh without blocking readers")

	return cmd
}
