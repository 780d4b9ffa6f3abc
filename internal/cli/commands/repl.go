package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnav/internal/introspect"
	"github.com/leapstack-labs/pgnav/pkg/complete"
	"github.com/leapstack-labs/pgnav/pkg/ddl"
	"github.com/leapstack-labs/pgnav/pkg/schema"
	"github.com/leapstack-labs/pgnav/pkg/search"
	"github.com/leapstack-labs/pgnav/pkg/tree"
)

var dotCommands = []string{
	".help", ".schemas", ".tables", ".ddl", ".search", ".refresh", ".clear", ".quit", ".exit",
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL shell with schema-aware completion",
		Long: `Start an interactive shell against the configured database.

Tab completion is driven by the introspected snapshot: schemas after a
qualifier, columns after a table alias, tables after FROM. Dot-commands
expose the navigator (.tables, .search, .ddl) without leaving the shell.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

// replSession holds the snapshot shared between the command loop and the
// completer. Refresh swaps the snapshot wholesale; readers never see a
// partially loaded one.
type replSession struct {
	mu     sync.RWMutex
	snap   schema.Snapshot
	loader *introspect.Loader
}

func (s *replSession) snapshot() schema.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *replSession) refresh(ctx context.Context) error {
	snap, err := s.loader.Snapshot(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

func runREPL(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cmdCtx := NewCommandContext(cmd)

	loader, err := cmdCtx.OpenLoader(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = loader.Close() }()

	session := &replSession{loader: loader}
	if err := session.refresh(ctx); err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	// History lives in the home directory so it survives across projects
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".pgnav_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pgnav> ",
		HistoryFile:     historyFile,
		AutoComplete:    &sqlCompleter{session: session},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pgnav REPL (database: %s)\n", cmdCtx.Cfg.Database)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	format := cmdCtx.Cfg.OutputFormat

	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt("pgnav> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(line, ".") {
			if handleDotCommand(ctx, cmd, session, line, format) {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("   ...> ")
			continue
		}
		rl.SetPrompt("pgnav> ")

		query := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		if err := executeAndRenderQuery(ctx, cmd, session, query, format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// executeAndRenderQuery runs a query and renders results, properly closing
// rows with defer.
func executeAndRenderQuery(ctx context.Context, cmd *cobra.Command, session *replSession, query, format string) error {
	rows, err := session.loader.DB().QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return renderRows(cmd.OutOrStdout(), rows, format)
}

func handleDotCommand(ctx context.Context, cmd *cobra.Command, session *replSession, line, format string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	snap := session.snapshot()

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)
		return true

	case ".schemas":
		for i := range snap {
			_, _ = fmt.Fprintln(out, snap[i].Name)
		}
		return true

	case ".tables":
		printTables(out, snap, parts[1:])
		return true

	case ".ddl":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .ddl <table>")
			return true
		}
		t, ok := snap.FindTable(parts[1])
		if !ok {
			_, _ = fmt.Fprintf(errOut, "Error: table not found: %s\n", parts[1])
			return true
		}
		_, _ = fmt.Fprintln(out, strings.Join(ddl.CreateTable(t), "\n\n"))
		return true

	case ".search":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .search <pattern>")
			return true
		}
		if err := renderSearchResults(out, format, search.Search(snap, parts[1])); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return true

	case ".refresh":
		if err := session.refresh(ctx); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return true
		}
		_, _ = fmt.Fprintln(out, "Snapshot refreshed")
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

// printTables lists tables and views, optionally limited to one schema.
func printTables(w io.Writer, snap schema.Snapshot, args []string) {
	only := ""
	if len(args) > 0 {
		only = args[0]
	}
	for i := range snap {
		s := &snap[i]
		if only != "" && !strings.EqualFold(s.Name, only) {
			continue
		}
		for j := range s.Tables {
			t := &s.Tables[j]
			rows := "?"
			if t.RowCount >= 0 {
				rows = tree.FormatCount(t.RowCount)
			}
			_, _ = fmt.Fprintf(w, "%s.%s  (%s rows)\n", s.Name, t.Name, rows)
		}
		for j := range s.Views {
			_, _ = fmt.Fprintf(w, "%s.%s  (view)\n", s.Name, s.Views[j].Name)
		}
		for j := range s.MaterializedViews {
			_, _ = fmt.Fprintf(w, "%s.%s  (materialized view)\n", s.Name, s.MaterializedViews[j].Name)
		}
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help              Show this help message
  .schemas           List introspected schemas
  .tables [schema]   List tables and views
  .ddl <table>       Show CREATE TABLE for a table
  .search <pattern>  Fuzzy-search database objects
  .refresh           Re-introspect the database
  .clear             Clear the screen
  .quit / .exit      Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion follows the SQL context (tables after FROM,
    columns after an alias qualifier)
`
	_, _ = fmt.Fprintln(w, help)
}

// sqlCompleter adapts the context analyzer to readline's completion
// interface.
type sqlCompleter struct {
	session *replSession
}

func (c *sqlCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	if strings.HasPrefix(strings.TrimSpace(text), ".") {
		return completeDotCommand(strings.TrimSpace(text))
	}

	snap := c.session.snapshot()
	sctx := complete.Analyze(text, snap)
	prefix := complete.ExtractPrefix(text)
	plen := len([]rune(prefix))

	var out [][]rune
	for _, cand := range complete.Candidates(snap, sctx, prefix) {
		lr := []rune(cand.Label)
		if len(lr) < plen {
			continue
		}
		out = append(out, lr[plen:])
	}
	return out, plen
}

func completeDotCommand(text string) ([][]rune, int) {
	var out [][]rune
	for _, dc := range dotCommands {
		if strings.HasPrefix(dc, text) {
			out = append(out, []rune(dc[len(text):]))
		}
	}
	return out, len([]rune(text))
}
