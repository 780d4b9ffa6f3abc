// Package complete classifies the SQL text before a cursor and produces
// completion candidates from a schema snapshot.
//
// Classification is deliberately heuristic: regular expressions over the
// literal text, not a SQL parser. Completion has to work on the broken,
// partially-typed statements a real parser would reject, so absence of a
// confident classification always degrades to a General context, never
// to an error.
package complete

// ContextKind describes what kind of completion is appropriate at the
// cursor.
type ContextKind int

// Completion context kinds.
const (
	// ContextGeneral offers keywords, schemas, tables, and functions.
	ContextGeneral ContextKind = iota
	// ContextSchema offers schema names.
	ContextSchema
	// ContextTable offers table names, optionally scoped to one schema.
	ContextTable
	// ContextColumn offers columns of the resolved tables.
	ContextColumn
	// ContextFunction offers function names, optionally scoped to one schema.
	ContextFunction
)

// String returns the kind name for logging and tests.
func (k ContextKind) String() string {
	switch k {
	case ContextSchema:
		return "schema"
	case ContextTable:
		return "table"
	case ContextColumn:
		return "column"
	case ContextFunction:
		return "function"
	default:
		return "general"
	}
}

// Context is the classified completion intent for one request. It is
// produced fresh per call and carries no persistent state.
type Context struct {
	Kind ContextKind
	// Schema scopes Table and Function contexts when non-empty.
	Schema string
	// Tables lists resolvable table references for Column contexts, in
	// order of first appearance. Schema-qualified names stay qualified.
	Tables []string
	// Aliases maps alias names to their target table references for
	// Column contexts.
	Aliases map[string]string
}

// General is the fallback context.
func General() Context {
	return Context{Kind: ContextGeneral}
}
