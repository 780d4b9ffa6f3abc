package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/pgnav/pkg/complete"
	"github.com/leapstack-labs/pgnav/pkg/search"
	"github.com/leapstack-labs/pgnav/pkg/tree"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTableWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// renderTree prints the node hierarchy with two-space indentation per
// level. Folder badges ride along in parentheses.
func renderTree(w io.Writer, n *tree.Node, depth int) {
	label := n.Label()
	if n.Badge != "" {
		label += " (" + n.Badge + ")"
	}
	if n.Tooltip != "" {
		label += "  -- " + n.Tooltip
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label)
	for i := range n.Children {
		renderTree(w, &n.Children[i], depth+1)
	}
}

func renderSearchResults(w io.Writer, format string, results []search.Result) error {
	if format == "json" {
		return renderJSON(w, results)
	}
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(no matches)")
		return nil
	}

	t := newTableWriter(w)
	t.AppendHeader(table.Row{"Score", "Kind", "Object"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Score, r.Kind, qualifiedResult(r)})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d matches)\n", len(results))
	return nil
}

// qualifiedResult renders "schema.name", with the parent table spliced
// in for columns.
func qualifiedResult(r search.Result) string {
	if r.ParentName != "" {
		return r.Schema + "." + r.ParentName + "." + r.Name
	}
	return r.Schema + "." + r.Name
}

func renderCandidates(w io.Writer, format string, ctx complete.Context, cands []complete.Candidate) error {
	if format == "json" {
		return renderJSON(w, struct {
			Context    string               `json:"context"`
			Schema     string               `json:"schema,omitempty"`
			Tables     []string             `json:"tables,omitempty"`
			Candidates []complete.Candidate `json:"candidates"`
		}{ctx.Kind.String(), ctx.Schema, ctx.Tables, cands})
	}

	_, _ = fmt.Fprintf(w, "Context: %s\n", ctx.Kind)
	if len(cands) == 0 {
		_, _ = fmt.Fprintln(w, "(no candidates)")
		return nil
	}

	t := newTableWriter(w)
	t.AppendHeader(table.Row{"Candidate", "Kind", "Detail"})
	for _, c := range cands {
		t.AppendRow(table.Row{c.Label, c.Kind, c.Detail})
	}
	t.Render()
	return nil
}

// renderRows renders a live query result set.
func renderRows(w io.Writer, rows *sql.Rows, format string) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return err
		}

		row := make(map[string]any)
		for i, col := range cols {
			val := values[i]
			// Convert []byte to string for readability
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if format == "json" {
		return renderJSON(w, results)
	}

	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := newTableWriter(w)
	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)
	for _, result := range results {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = formatValue(result[col])
		}
		t.AppendRow(row)
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(results))
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
