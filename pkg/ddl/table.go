package ddl

import (
	"strings"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

// CreateTable renders the full creation sequence for a table: the
// CREATE TABLE statement, one CREATE INDEX per index not already backed
// by a constraint, the table comment, and one comment per commented
// column. Statements are returned in execution order.
func CreateTable(t *schema.Table) []string {
	var stmts []string
	stmts = append(stmts, createTableStatement(t))

	for i := range t.Indexes {
		idx := &t.Indexes[i]
		if idx.IsPrimary || idx.BacksConstraint {
			continue
		}
		stmts = append(stmts, CreateIndex(t, idx))
	}

	if t.Comment != "" {
		stmts = append(stmts, "COMMENT ON TABLE "+QuoteQualified(t.Schema, t.Name)+
			" IS "+QuoteLiteral(t.Comment)+";")
	}
	for i := range t.Columns {
		col := &t.Columns[i]
		if col.Comment != "" {
			stmts = append(stmts, "COMMENT ON COLUMN "+QuoteQualified(t.Schema, t.Name)+
				"."+QuoteIdent(col.Name)+" IS "+QuoteLiteral(col.Comment)+";")
		}
	}
	return stmts
}

func createTableStatement(t *schema.Table) string {
	var lines []string
	for i := range t.Columns {
		lines = append(lines, "    "+ColumnDefinition(&t.Columns[i]))
	}
	if t.PrimaryKey != nil {
		lines = append(lines, "    "+primaryKeyClause(t.PrimaryKey))
	}
	for i := range t.Uniques {
		u := &t.Uniques[i]
		lines = append(lines, "    CONSTRAINT "+QuoteIdent(u.Name)+" UNIQUE ("+quoteIdentList(u.Columns)+")")
	}
	for i := range t.Checks {
		c := &t.Checks[i]
		lines = append(lines, "    CONSTRAINT "+QuoteIdent(c.Name)+" CHECK ("+c.Expression+")")
	}
	for i := range t.ForeignKeys {
		lines = append(lines, "    "+foreignKeyClause(t, &t.ForeignKeys[i]))
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(QuoteQualified(t.Schema, t.Name))
	b.WriteString(" (\n")
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);")
	return b.String()
}

// ColumnDefinition renders one column clause. Generated-column and
// identity clauses take precedence over a plain default.
func ColumnDefinition(c *schema.Column) string {
	var b strings.Builder
	b.WriteString(QuoteIdent(c.Name))
	b.WriteString(" ")
	b.WriteString(c.DataType)

	switch {
	case c.Generated != "":
		b.WriteString(" GENERATED ALWAYS AS (")
		b.WriteString(c.Generated)
		b.WriteString(") STORED")
	case c.Identity != schema.IdentityNone:
		// Unrecognized generation modes are rendered verbatim; semantic
		// rejection belongs to the server.
		b.WriteString(" GENERATED ")
		b.WriteString(string(c.Identity))
		b.WriteString(" AS IDENTITY")
	case c.Default != "":
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}

	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	return b.String()
}

func primaryKeyClause(pk *schema.PrimaryKey) string {
	clause := "PRIMARY KEY (" + quoteIdentList(pk.Columns) + ")"
	if pk.Name != "" {
		return "CONSTRAINT " + QuoteIdent(pk.Name) + " " + clause
	}
	return clause
}

func foreignKeyClause(t *schema.Table, fk *schema.ForeignKey) string {
	var b strings.Builder
	if fk.Name != "" {
		b.WriteString("CONSTRAINT ")
		b.WriteString(QuoteIdent(fk.Name))
		b.WriteString(" ")
	}
	b.WriteString("FOREIGN KEY (")
	b.WriteString(quoteIdentList(fk.Columns))
	b.WriteString(") REFERENCES ")

	refSchema := fk.RefSchema
	if refSchema == "" {
		refSchema = t.Schema
	}
	b.WriteString(QuoteQualified(refSchema, fk.RefTable))
	b.WriteString(" (")
	b.WriteString(quoteIdentList(fk.RefColumns))
	b.WriteString(")")

	if fk.OnDelete != "" {
		b.WriteString(" ON DELETE ")
		b.WriteString(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		b.WriteString(" ON UPDATE ")
		b.WriteString(fk.OnUpdate)
	}
	if fk.Deferrable {
		b.WriteString(" DEFERRABLE")
		if fk.InitiallyDeferred {
			b.WriteString(" INITIALLY DEFERRED")
		}
	}
	return b.String()
}
