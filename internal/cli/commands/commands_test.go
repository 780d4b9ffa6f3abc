// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

func TestNewTreeCommand(t *testing.T) {
	cmd := NewTreeCommand()

	assert.Equal(t, "tree", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewSearchCommand(t *testing.T) {
	cmd := NewSearchCommand()

	assert.Equal(t, "search <pattern>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewCompleteCommand(t *testing.T) {
	cmd := NewCompleteCommand()

	assert.Equal(t, "complete <sql>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("cursor"), "flag %q should exist", "cursor")
}

func TestNewDDLCommand(t *testing.T) {
	cmd := NewDDLCommand()

	assert.Equal(t, "ddl", cmd.Use)

	subs := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subs[strings.Fields(sub.Use)[0]] = true
	}
	for _, want := range []string{"create", "drop", "truncate", "reindex", "refresh"} {
		assert.True(t, subs[want], "subcommand %q should exist", want)
	}
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestVersionCommandOutput(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "pgnav v1.2.3")
}

func testDropSnapshot() schema.Snapshot {
	return schema.Snapshot{
		{
			Name: "public",
			Tables: []schema.Table{
				{
					Schema: "public", Name: "orders",
					Indexes: []schema.Index{
						{Name: "orders_total_idx", Method: "btree", Columns: []string{"total"}},
					},
				},
			},
			Views: []schema.View{
				{Schema: "public", Name: "order_totals"},
			},
			MaterializedViews: []schema.View{
				{Schema: "public", Name: "order_stats", Materialized: true},
			},
			Sequences: []schema.Sequence{
				{Schema: "public", Name: "orders_id_seq"},
			},
		},
	}
}

func TestDropStatementFor(t *testing.T) {
	snap := testDropSnapshot()

	tests := []struct {
		name     string
		object   string
		cascade  bool
		expected string
	}{
		{"table", "public.orders", false, "DROP TABLE IF EXISTS public.orders;"},
		{"table cascade", "orders", true, "DROP TABLE IF EXISTS public.orders CASCADE;"},
		{"view", "order_totals", false, "DROP VIEW IF EXISTS public.order_totals;"},
		{"materialized view", "public.order_stats", false, "DROP MATERIALIZED VIEW IF EXISTS public.order_stats;"},
		{"sequence", "orders_id_seq", false, "DROP SEQUENCE IF EXISTS public.orders_id_seq;"},
		{"index", "orders_total_idx", false, "DROP INDEX IF EXISTS public.orders_total_idx;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := dropStatementFor(snap, tt.object, tt.cascade)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stmt)
		})
	}

	_, err := dropStatementFor(snap, "missing", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object not found")
}

func TestSQLCompleterSuffixes(t *testing.T) {
	session := &replSession{snap: testDropSnapshot()}
	c := &sqlCompleter{session: session}

	line := []rune("SELECT * FROM ord")
	suggestions, plen := c.Do(line, len(line))

	assert.Equal(t, 3, plen)
	var labels []string
	for _, s := range suggestions {
		labels = append(labels, "ord"+string(s))
	}
	assert.Contains(t, labels, "orders")
	assert.Contains(t, labels, "order_totals")
}

func TestSQLCompleterDotCommands(t *testing.T) {
	c := &sqlCompleter{session: &replSession{}}

	line := []rune(".ta")
	suggestions, plen := c.Do(line, len(line))

	require.Len(t, suggestions, 1)
	assert.Equal(t, "bles", string(suggestions[0]))
	assert.Equal(t, 3, plen)
}
