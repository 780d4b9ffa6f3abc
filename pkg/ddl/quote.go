// Package ddl renders canonical SQL statements for schema objects:
// create, drop, truncate, reindex, and refresh operations.
//
// Everything here is pure string construction. The generator never
// validates semantics (it will happily render a table with zero
// columns); rejecting bad statements is the server's job when they are
// actually executed.
package ddl

import "strings"

// QuoteIdent returns the identifier quoted for Postgres. Identifiers
// made of lowercase ASCII letters, digits, and underscores that do not
// start with a digit stay bare; anything else is wrapped in double
// quotes with embedded double quotes doubled.
func QuoteIdent(name string) string {
	if isBareIdent(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isBareIdent(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// QuoteQualified renders "schema"."name", quoting each part
// independently. A missing schema yields the bare object name.
func QuoteQualified(schemaName, name string) string {
	if schemaName == "" {
		return QuoteIdent(name)
	}
	return QuoteIdent(schemaName) + "." + QuoteIdent(name)
}

// QuoteLiteral renders a single-quoted string literal with embedded
// single quotes doubled.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdentList quotes each name and joins with ", ".
func quoteIdentList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = QuoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}
