package ddl

import (
	"strings"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

// CreateIndex renders a CREATE INDEX statement with access method,
// INCLUDE columns, and a partial-index predicate when present.
func CreateIndex(t *schema.Table, idx *schema.Index) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	b.WriteString(QuoteIdent(idx.Name))
	b.WriteString(" ON ")
	b.WriteString(QuoteQualified(t.Schema, t.Name))

	if idx.Method != "" && !strings.EqualFold(idx.Method, "btree") {
		b.WriteString(" USING ")
		b.WriteString(strings.ToLower(idx.Method))
	}

	b.WriteString(" (")
	b.WriteString(strings.Join(idx.Columns, ", "))
	b.WriteString(")")

	if len(idx.Include) > 0 {
		b.WriteString(" INCLUDE (")
		b.WriteString(quoteIdentList(idx.Include))
		b.WriteString(")")
	}
	if idx.Predicate != "" {
		b.WriteString(" WHERE ")
		b.WriteString(idx.Predicate)
	}
	b.WriteString(";")
	return b.String()
}
