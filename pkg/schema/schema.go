// Package schema defines the immutable snapshot model for a Postgres
// database: schemas, tables, columns, constraints, indexes, views,
// functions, sequences, and types.
//
// A Snapshot is produced whole by an introspection collaborator (see
// internal/introspect) and treated as read-only by every consumer. The
// tree builder, fuzzy search, and completion analyzer are all pure
// functions over these value types.
package schema

// IdentityMode describes how an identity column generates values.
// The zero value means the column is not an identity column.
type IdentityMode string

// Identity generation modes as reported by information_schema.
const (
	IdentityNone      IdentityMode = ""
	IdentityAlways    IdentityMode = "ALWAYS"
	IdentityByDefault IdentityMode = "BY DEFAULT"
)

// Volatility classifies a function's side-effect contract.
type Volatility string

// Function volatility levels.
const (
	VolatilityImmutable Volatility = "IMMUTABLE"
	VolatilityStable    Volatility = "STABLE"
	VolatilityVolatile  Volatility = "VOLATILE"
)

// Schema is one namespace in the database, fully populated with the
// objects it owns.
type Schema struct {
	Name              string
	Comment           string
	Tables            []Table
	Views             []View
	MaterializedViews []View
	Functions         []Function
	Sequences         []Sequence
	Types             []TypeDef
}

// Table describes one base table with everything DDL generation and
// tree building need.
type Table struct {
	Schema  string
	Name    string
	Comment string

	// RowCount is the planner's row estimate; -1 when unknown.
	RowCount int64
	// SizeBytes is the total relation size including indexes and toast.
	SizeBytes int64

	Columns     []Column
	PrimaryKey  *PrimaryKey
	Uniques     []UniqueConstraint
	Checks      []CheckConstraint
	ForeignKeys []ForeignKey
	Indexes     []Index
	Triggers    []Trigger
	Policies    []Policy
}

// QualifiedName returns the schema-qualified table name.
func (t Table) QualifiedName() string {
	return t.Schema + "." + t.Name
}

// Column describes one table column.
type Column struct {
	Name     string
	DataType string
	NotNull  bool
	// Default is the default expression, empty when none.
	Default string
	// Identity is non-empty for identity columns.
	Identity IdentityMode
	// Generated is the generation expression for generated columns,
	// empty otherwise. Takes precedence over Default when rendering.
	Generated string
	Comment   string
}

// PrimaryKey is the table's primary key constraint.
type PrimaryKey struct {
	Name    string
	Columns []string
}

// UniqueConstraint is a table-level UNIQUE constraint.
type UniqueConstraint struct {
	Name    string
	Columns []string
}

// CheckConstraint is a table-level CHECK constraint.
type CheckConstraint struct {
	Name string
	// Expression is the check predicate without surrounding parens.
	Expression string
}

// ForeignKey references columns in another table.
type ForeignKey struct {
	Name       string
	Columns    []string
	RefSchema  string
	RefTable   string
	RefColumns []string
	// OnDelete/OnUpdate are referential actions ("CASCADE", "SET NULL",
	// ...); empty means NO ACTION.
	OnDelete          string
	OnUpdate          string
	Deferrable        bool
	InitiallyDeferred bool
}

// Index describes one index on a table.
type Index struct {
	Name   string
	Method string
	Unique bool
	// Columns are the key columns or expressions, in index order.
	Columns []string
	// Include lists non-key INCLUDE columns.
	Include []string
	// Predicate is the partial-index WHERE clause, empty for full indexes.
	Predicate string
	// IsPrimary marks the index backing the primary key.
	IsPrimary bool
	// BacksConstraint marks indexes created implicitly for a unique
	// constraint; those are not emitted as separate CREATE INDEX statements.
	BacksConstraint bool
}

// Trigger describes one trigger on a table.
type Trigger struct {
	Name string
	// Timing is BEFORE, AFTER, or INSTEAD OF.
	Timing string
	// Events are the firing events (INSERT, UPDATE, ...).
	Events   []string
	Function string
	Enabled  bool
}

// Policy is a row-level security policy.
type Policy struct {
	Name string
	// Command is the policy command: ALL, SELECT, INSERT, UPDATE, DELETE.
	Command    string
	Roles      []string
	Permissive bool
	// Using and WithCheck are the policy expressions, empty when absent.
	Using     string
	WithCheck string
}

// View describes a view or materialized view.
type View struct {
	Schema       string
	Name         string
	Comment      string
	Definition   string
	Materialized bool
	Columns      []Column
}

// QualifiedName returns the schema-qualified view name.
func (v View) QualifiedName() string {
	return v.Schema + "." + v.Name
}

// Function describes a stored function or procedure.
type Function struct {
	Schema string
	Name   string
	// Arguments is the argument list as rendered by
	// pg_get_function_arguments.
	Arguments string
	Returns   string
	Language  string
	// Volatility is empty when not introspected.
	Volatility      Volatility
	Strict          bool
	SecurityDefiner bool
	Body            string
	Comment         string
}

// Sequence describes a sequence.
type Sequence struct {
	Schema    string
	Name      string
	DataType  string
	StartWith int64
	Increment int64
	MinValue  int64
	MaxValue  int64
	Cycle     bool
	// OwnedBy is "table.column" when the sequence is owned, empty otherwise.
	OwnedBy string
}

// TypeKind classifies user-defined types.
type TypeKind string

// User-defined type kinds.
const (
	TypeKindEnum      TypeKind = "enum"
	TypeKindComposite TypeKind = "composite"
	TypeKindDomain    TypeKind = "domain"
	TypeKindRange     TypeKind = "range"
)

// TypeDef describes a user-defined type.
type TypeDef struct {
	Schema string
	Name   string
	Kind   TypeKind
	// Labels holds enum labels in declaration order (enum kind only).
	Labels []string
	// Attributes holds composite attributes (composite kind only).
	Attributes []Column
	Comment    string
}
