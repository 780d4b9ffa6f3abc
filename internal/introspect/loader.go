// Package introspect materializes a schema.Snapshot from a live
// Postgres database.
//
// The loader runs one catalog query per object family and assembles the
// results into the immutable snapshot consumed by the tree builder,
// fuzzy search, and completion analyzer. Connections go through
// database/sql with the pgx stdlib driver.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

// Params holds the connection settings for one database.
type Params struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	// Schemas limits introspection to the named schemas. Empty means
	// every non-system schema.
	Schemas []string
}

// DSN renders the key=value connection string.
func (p Params) DSN() string {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = 5432
	}
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "prefer"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, p.Database, sslmode)
	if p.User != "" {
		dsn += " user=" + p.User
	}
	if p.Password != "" {
		dsn += " password=" + p.Password
	}
	return dsn
}

// Loader reads catalog metadata over one connection pool.
type Loader struct {
	db     *sql.DB
	params Params
	logger *slog.Logger
}

// Open connects and pings the database. If logger is nil, a discard
// logger is used.
func Open(ctx context.Context, params Params, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	logger.Debug("connecting to postgres",
		slog.String("host", params.Host), slog.String("database", params.Database))

	db, err := sql.Open("pgx", params.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return &Loader{db: db, params: params, logger: logger}, nil
}

// NewLoader wraps an existing connection, mainly for tests.
func NewLoader(db *sql.DB, params Params, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{db: db, params: params, logger: logger}
}

// DB exposes the underlying pool for ad-hoc queries.
func (l *Loader) DB() *sql.DB {
	return l.db
}

// Close releases the connection pool.
func (l *Loader) Close() error {
	return l.db.Close()
}

// Snapshot loads every requested schema with all of its objects.
func (l *Loader) Snapshot(ctx context.Context) (schema.Snapshot, error) {
	names, comments, err := l.schemaNames(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return schema.Snapshot{}, nil
	}

	snap := make(schema.Snapshot, 0, len(names))
	index := make(map[string]*schema.Schema, len(names))
	for i, name := range names {
		snap = append(snap, schema.Schema{Name: name, Comment: comments[i]})
		index[name] = &snap[len(snap)-1]
	}

	// Catalog queries take the schema list as one comma-joined string so
	// the same statements run against both pgx and test drivers.
	arg := strings.Join(names, ",")

	tables := make(map[string]*schema.Table)
	if err := l.loadTables(ctx, arg, index, tables); err != nil {
		return nil, err
	}
	if err := l.loadColumns(ctx, arg, tables); err != nil {
		return nil, err
	}
	if err := l.loadConstraints(ctx, arg, tables); err != nil {
		return nil, err
	}
	if err := l.loadIndexes(ctx, arg, tables); err != nil {
		return nil, err
	}
	if err := l.loadTriggers(ctx, arg, tables); err != nil {
		return nil, err
	}
	if err := l.loadPolicies(ctx, arg, tables); err != nil {
		return nil, err
	}
	if err := l.loadViews(ctx, arg, index); err != nil {
		return nil, err
	}
	if err := l.loadFunctions(ctx, arg, index); err != nil {
		return nil, err
	}
	if err := l.loadSequences(ctx, arg, index); err != nil {
		return nil, err
	}
	if err := l.loadTypes(ctx, arg, index); err != nil {
		return nil, err
	}

	l.logger.Debug("snapshot loaded", slog.Int("schemas", len(snap)))
	return snap, nil
}

// schemaNames returns the schemas to introspect, honoring the include
// list when configured.
func (l *Loader) schemaNames(ctx context.Context) ([]string, []string, error) {
	rows, err := l.db.QueryContext(ctx, querySchemas)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer func() { _ = rows.Close() }()

	include := make(map[string]bool, len(l.params.Schemas))
	for _, s := range l.params.Schemas {
		include[s] = true
	}

	var names, comments []string
	for rows.Next() {
		var name, comment string
		if err := rows.Scan(&name, &comment); err != nil {
			return nil, nil, fmt.Errorf("failed to scan schema row: %w", err)
		}
		if len(include) > 0 && !include[name] {
			continue
		}
		names = append(names, name)
		comments = append(comments, comment)
	}
	return names, comments, rows.Err()
}

func (l *Loader) loadTables(ctx context.Context, schemas string, index map[string]*schema.Schema, tables map[string]*schema.Table) error {
	rows, err := l.db.QueryContext(ctx, queryTables, schemas)
	if err != nil {
		return fmt.Errorf("failed to query tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var t schema.Table
		if err := rows.Scan(&t.Schema, &t.Name, &t.Comment, &t.RowCount, &t.SizeBytes); err != nil {
			return fmt.Errorf("failed to scan table row: %w", err)
		}
		if s, ok := index[t.Schema]; ok {
			s.Tables = append(s.Tables, t)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Index after every append so the pointers stay valid.
	for _, s := range index {
		for i := range s.Tables {
			tables[s.Tables[i].QualifiedName()] = &s.Tables[i]
		}
	}
	return nil
}

func (l *Loader) loadColumns(ctx context.Context, schemas string, tables map[string]*schema.Table) error {
	rows, err := l.db.QueryContext(ctx, queryColumns, schemas)
	if err != nil {
		return fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			schemaName, tableName string
			col                   schema.Column
			identity, generated   string
		)
		if err := rows.Scan(&schemaName, &tableName, &col.Name, &col.DataType,
			&col.NotNull, &col.Default, &identity, &generated, &col.Comment); err != nil {
			return fmt.Errorf("failed to scan column row: %w", err)
		}
		switch identity {
		case "a":
			col.Identity = schema.IdentityAlways
		case "d":
			col.Identity = schema.IdentityByDefault
		}
		if generated == "s" {
			// The default expression slot holds the generation expression
			// for generated columns.
			col.Generated = col.Default
			col.Default = ""
		}
		if t, ok := tables[schemaName+"."+tableName]; ok {
			t.Columns = append(t.Columns, col)
		}
	}
	return rows.Err()
}

func (l *Loader) loadConstraints(ctx context.Context, schemas string, tables map[string]*schema.Table) error {
	rows, err := l.db.QueryContext(ctx, queryConstraints, schemas)
	if err != nil {
		return fmt.Errorf("failed to query constraints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			schemaName, tableName, name, contype string
			cols, refSchema, refTable, refCols   string
			delAction, updAction                 string
			deferrable, deferred                 bool
			expr                                 string
		)
		if err := rows.Scan(&schemaName, &tableName, &name, &contype, &cols,
			&refSchema, &refTable, &refCols, &delAction, &updAction,
			&deferrable, &deferred, &expr); err != nil {
			return fmt.Errorf("failed to scan constraint row: %w", err)
		}
		t, ok := tables[schemaName+"."+tableName]
		if !ok {
			continue
		}
		switch contype {
		case "p":
			t.PrimaryKey = &schema.PrimaryKey{Name: name, Columns: splitList(cols)}
		case "u":
			t.Uniques = append(t.Uniques, schema.UniqueConstraint{Name: name, Columns: splitList(cols)})
		case "c":
			t.Checks = append(t.Checks, schema.CheckConstraint{Name: name, Expression: expr})
		case "f":
			t.ForeignKeys = append(t.ForeignKeys, schema.ForeignKey{
				Name:              name,
				Columns:           splitList(cols),
				RefSchema:         refSchema,
				RefTable:          refTable,
				RefColumns:        splitList(refCols),
				OnDelete:          refAction(delAction),
				OnUpdate:          refAction(updAction),
				Deferrable:        deferrable,
				InitiallyDeferred: deferred,
			})
		}
	}
	return rows.Err()
}

// refAction maps pg_constraint action codes to keywords; NO ACTION maps
// to empty so the generator can omit the clause.
func refAction(code string) string {
	switch code {
	case "c":
		return "CASCADE"
	case "r":
		return "RESTRICT"
	case "n":
		return "SET NULL"
	case "d":
		return "SET DEFAULT"
	default:
		return ""
	}
}

func (l *Loader) loadIndexes(ctx context.Context, schemas string, tables map[string]*schema.Table) error {
	rows, err := l.db.QueryContext(ctx, queryIndexes, schemas)
	if err != nil {
		return fmt.Errorf("failed to query indexes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			schemaName, tableName string
			idx                   schema.Index
			keyCount              int
			allCols               string
		)
		if err := rows.Scan(&schemaName, &tableName, &idx.Name, &idx.Method,
			&idx.Unique, &idx.IsPrimary, &keyCount, &allCols,
			&idx.Predicate, &idx.BacksConstraint); err != nil {
			return fmt.Errorf("failed to scan index row: %w", err)
		}
		cols := splitTabs(allCols)
		if keyCount < len(cols) {
			idx.Columns = cols[:keyCount]
			idx.Include = cols[keyCount:]
		} else {
			idx.Columns = cols
		}
		if t, ok := tables[schemaName+"."+tableName]; ok {
			t.Indexes = append(t.Indexes, idx)
		}
	}
	return rows.Err()
}

func (l *Loader) loadTriggers(ctx context.Context, schemas string, tables map[string]*schema.Table) error {
	rows, err := l.db.QueryContext(ctx, queryTriggers, schemas)
	if err != nil {
		return fmt.Errorf("failed to query triggers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			schemaName, tableName, events string
			trg                           schema.Trigger
		)
		if err := rows.Scan(&schemaName, &tableName, &trg.Name, &trg.Timing,
			&events, &trg.Function, &trg.Enabled); err != nil {
			return fmt.Errorf("failed to scan trigger row: %w", err)
		}
		trg.Events = splitList(events)
		if t, ok := tables[schemaName+"."+tableName]; ok {
			t.Triggers = append(t.Triggers, trg)
		}
	}
	return rows.Err()
}

func (l *Loader) loadPolicies(ctx context.Context, schemas string, tables map[string]*schema.Table) error {
	rows, err := l.db.QueryContext(ctx, queryPolicies, schemas)
	if err != nil {
		return fmt.Errorf("failed to query policies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			schemaName, tableName, roles string
			pol                          schema.Policy
		)
		if err := rows.Scan(&schemaName, &tableName, &pol.Name, &pol.Permissive,
			&roles, &pol.Command, &pol.Using, &pol.WithCheck); err != nil {
			return fmt.Errorf("failed to scan policy row: %w", err)
		}
		pol.Roles = splitList(roles)
		if t, ok := tables[schemaName+"."+tableName]; ok {
			t.Policies = append(t.Policies, pol)
		}
	}
	return rows.Err()
}

func (l *Loader) loadViews(ctx context.Context, schemas string, index map[string]*schema.Schema) error {
	rows, err := l.db.QueryContext(ctx, queryViews, schemas)
	if err != nil {
		return fmt.Errorf("failed to query views: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var v schema.View
		if err := rows.Scan(&v.Schema, &v.Name, &v.Comment, &v.Definition, &v.Materialized); err != nil {
			return fmt.Errorf("failed to scan view row: %w", err)
		}
		s, ok := index[v.Schema]
		if !ok {
			continue
		}
		if v.Materialized {
			s.MaterializedViews = append(s.MaterializedViews, v)
		} else {
			s.Views = append(s.Views, v)
		}
	}
	return rows.Err()
}

func (l *Loader) loadFunctions(ctx context.Context, schemas string, index map[string]*schema.Schema) error {
	rows, err := l.db.QueryContext(ctx, queryFunctions, schemas)
	if err != nil {
		return fmt.Errorf("failed to query functions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var fn schema.Function
		var volatility string
		if err := rows.Scan(&fn.Schema, &fn.Name, &fn.Arguments, &fn.Returns,
			&fn.Language, &volatility, &fn.Strict, &fn.SecurityDefiner,
			&fn.Body, &fn.Comment); err != nil {
			return fmt.Errorf("failed to scan function row: %w", err)
		}
		fn.Volatility = schema.Volatility(volatility)
		if s, ok := index[fn.Schema]; ok {
			s.Functions = append(s.Functions, fn)
		}
	}
	return rows.Err()
}

func (l *Loader) loadSequences(ctx context.Context, schemas string, index map[string]*schema.Schema) error {
	rows, err := l.db.QueryContext(ctx, querySequences, schemas)
	if err != nil {
		return fmt.Errorf("failed to query sequences: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var seq schema.Sequence
		if err := rows.Scan(&seq.Schema, &seq.Name, &seq.DataType, &seq.StartWith,
			&seq.Increment, &seq.MinValue, &seq.MaxValue, &seq.Cycle, &seq.OwnedBy); err != nil {
			return fmt.Errorf("failed to scan sequence row: %w", err)
		}
		if s, ok := index[seq.Schema]; ok {
			s.Sequences = append(s.Sequences, seq)
		}
	}
	return rows.Err()
}

func (l *Loader) loadTypes(ctx context.Context, schemas string, index map[string]*schema.Schema) error {
	rows, err := l.db.QueryContext(ctx, queryTypes, schemas)
	if err != nil {
		return fmt.Errorf("failed to query types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var td schema.TypeDef
		var kind, labels string
		if err := rows.Scan(&td.Schema, &td.Name, &kind, &labels, &td.Comment); err != nil {
			return fmt.Errorf("failed to scan type row: %w", err)
		}
		switch kind {
		case "e":
			td.Kind = schema.TypeKindEnum
			td.Labels = splitList(labels)
		case "c":
			td.Kind = schema.TypeKindComposite
		case "d":
			td.Kind = schema.TypeKindDomain
		case "r":
			td.Kind = schema.TypeKindRange
		}
		if s, ok := index[td.Schema]; ok {
			s.Types = append(s.Types, td)
		}
	}
	return rows.Err()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func splitTabs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\t")
}
