package schema

import "strings"

// Resolver is the name-lookup capability the completion analyzer
// consults. A Snapshot implements it; callers with their own caching
// layer can substitute anything else.
type Resolver interface {
	// HasSchema reports whether a schema with the given name exists.
	HasSchema(name string) bool
	// FindTable resolves a bare or schema-qualified table name.
	FindTable(name string) (*Table, bool)
}

// Snapshot is an ordered list of schemas, the unit handed over by the
// introspection collaborator. The order is display order.
type Snapshot []Schema

// HasSchema reports whether the snapshot contains the named schema.
// Matching is case-insensitive, following Postgres's folding of
// unquoted identifiers.
func (s Snapshot) HasSchema(name string) bool {
	for i := range s {
		if strings.EqualFold(s[i].Name, name) {
			return true
		}
	}
	return false
}

// FindTable resolves name as either "table" or "schema.table". Bare
// names match the first table with that name in snapshot order; views
// and materialized views are not considered.
func (s Snapshot) FindTable(name string) (*Table, bool) {
	schemaName := ""
	tableName := name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		schemaName = name[:i]
		tableName = name[i+1:]
	}

	for si := range s {
		if schemaName != "" && !strings.EqualFold(s[si].Name, schemaName) {
			continue
		}
		for ti := range s[si].Tables {
			if strings.EqualFold(s[si].Tables[ti].Name, tableName) {
				return &s[si].Tables[ti], true
			}
		}
	}
	return nil, false
}
