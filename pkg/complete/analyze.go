package complete

import (
	"regexp"
	"sort"
	"strings"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

var (
	// <ident>.<partial> at the end of the text.
	qualifierRe = regexp.MustCompile(`([A-Za-z_][\w$]*)\.([\w$]*)$`)

	// FROM or JOIN followed by an optional partial identifier.
	fromJoinTailRe = regexp.MustCompile(`(?i)\b(?:FROM|JOIN)\s+[\w$"]*$`)

	// WHERE/ON/AND/OR followed by optional identifier characters.
	clauseTailRe = regexp.MustCompile(`(?i)\b(?:WHERE|ON|AND|OR)\s+[\w$]*$`)

	selectRe     = regexp.MustCompile(`(?i)\bSELECT\b`)
	fromWordRe   = regexp.MustCompile(`(?i)\bFROM\b`)
	projectionRe = regexp.MustCompile(`^\s*[\w\s,*"$]*$`)

	// FROM clause up to the next clause keyword, statement end, or
	// closing paren.
	fromClauseRe = regexp.MustCompile(`(?is)\bFROM\s+(.*?)(?:\b(?:WHERE|GROUP|ORDER|HAVING|LIMIT|OFFSET|UNION|EXCEPT|INTERSECT|JOIN|LEFT|RIGHT|INNER|OUTER|FULL|CROSS|ON|RETURNING)\b|[;)]|$)`)

	joinRefRe = regexp.MustCompile(`(?i)\bJOIN\s+([A-Za-z_][\w$]*(?:\.[A-Za-z_][\w$]*)?)`)

	tableRefTokenRe = regexp.MustCompile(`^[A-Za-z_][\w$]*(?:\.[A-Za-z_][\w$]*)?`)

	// <table-ref> [AS] <alias> followed by a clause boundary.
	aliasRe = regexp.MustCompile(`(?i)([A-Za-z_][\w$]*(?:\.[A-Za-z_][\w$]*)?)\s+(?:AS\s+)?([A-Za-z_][\w$]*)\s*(?:,|\bWHERE\b|\bJOIN\b|\bON\b|$)`)
)

// reservedTokens are tokens that can never be a table reference or an
// alias during heuristic extraction.
var reservedTokens = map[string]bool{
	"AS": true, "SELECT": true, "FROM": true, "WHERE": true, "JOIN": true,
	"ON": true, "AND": true, "OR": true, "NOT": true, "IN": true,
	"LEFT": true, "RIGHT": true, "INNER": true, "OUTER": true, "FULL": true,
	"CROSS": true, "LATERAL": true, "GROUP": true, "ORDER": true, "BY": true,
	"HAVING": true, "LIMIT": true, "OFFSET": true, "UNION": true,
	"EXCEPT": true, "INTERSECT": true, "SET": true, "VALUES": true,
	"INTO": true, "RETURNING": true, "USING": true, "WITH": true,
	"DISTINCT": true, "ALL": true, "IS": true, "NULL": true, "LIKE": true,
	"BETWEEN": true, "CASE": true, "WHEN": true, "THEN": true, "ELSE": true,
	"END": true, "ASC": true, "DESC": true,
}

// Analyze classifies the text immediately preceding the cursor. The
// resolver (usually a schema.Snapshot) settles whether a dotted
// qualifier names a schema, a table, or an alias.
//
// Rules apply in a fixed priority order; the first match wins, and no
// confident match degrades to General. Known gap: names introduced by a
// WITH clause are not tracked as resolvable tables, so completion after
// a CTE alias falls back to General.
func Analyze(text string, r schema.Resolver) Context {
	// 1-2. Dotted qualifier: schema, then table, then alias.
	if m := qualifierRe.FindStringSubmatch(text); m != nil {
		ident := m[1]
		if r != nil && r.HasSchema(ident) {
			return Context{Kind: ContextTable, Schema: ident}
		}
		if r != nil {
			if _, ok := r.FindTable(ident); ok {
				return Context{
					Kind:    ContextColumn,
					Tables:  []string{ident},
					Aliases: map[string]string{ident: ident},
				}
			}
		}
		aliases := ExtractAliases(text)
		if target, ok := aliases[ident]; ok {
			return Context{
				Kind:    ContextColumn,
				Tables:  []string{target},
				Aliases: aliases,
			}
		}
	}

	// 3. Projection list with no FROM typed yet, but table references
	// discoverable elsewhere in the text.
	if ctx, ok := projectionContext(text); ok {
		return ctx
	}

	// 4. After FROM or JOIN.
	if fromJoinTailRe.MatchString(text) {
		return Context{Kind: ContextTable}
	}

	// 5. After WHERE/ON/AND/OR.
	if clauseTailRe.MatchString(text) {
		return Context{
			Kind:    ContextColumn,
			Tables:  ExtractTableRefs(text),
			Aliases: ExtractAliases(text),
		}
	}

	return General()
}

func projectionContext(text string) (Context, bool) {
	locs := selectRe.FindAllStringIndex(text, -1)
	if locs == nil {
		return Context{}, false
	}
	tail := text[locs[len(locs)-1][1]:]
	if fromWordRe.MatchString(tail) || !projectionRe.MatchString(tail) {
		return Context{}, false
	}

	tables := ExtractTableRefs(text)
	if len(tables) == 0 {
		return Context{}, false
	}
	return Context{
		Kind:    ContextColumn,
		Tables:  tables,
		Aliases: ExtractAliases(text),
	}, true
}

// ExtractTableRefs returns every table referenced in FROM clauses
// (comma-separated) and after JOIN keywords, deduplicated in order of
// first appearance. Schema-qualified names stay as single tokens.
func ExtractTableRefs(text string) []string {
	type ref struct {
		pos  int
		name string
	}
	var refs []ref

	for _, m := range fromClauseRe.FindAllStringSubmatchIndex(text, -1) {
		clause := text[m[2]:m[3]]
		offset := m[2]
		for _, part := range strings.Split(clause, ",") {
			trimmed := strings.TrimLeft(part, " \t\r\n")
			if tok := tableRefTokenRe.FindString(trimmed); tok != "" && !reservedTokens[strings.ToUpper(tok)] {
				refs = append(refs, ref{pos: offset + (len(part) - len(trimmed)), name: tok})
			}
			offset += len(part) + 1
		}
	}
	for _, m := range joinRefRe.FindAllStringSubmatchIndex(text, -1) {
		tok := text[m[2]:m[3]]
		if !reservedTokens[strings.ToUpper(tok)] {
			refs = append(refs, ref{pos: m[2], name: tok})
		}
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].pos < refs[j].pos })

	var out []string
	seen := map[string]bool{}
	for _, r := range refs {
		key := strings.ToLower(r.name)
		if !seen[key] {
			seen[key] = true
			out = append(out, r.name)
		}
	}
	return out
}

// ExtractAliases scans for "<table-ref> [AS] <alias>" immediately
// followed by a clause boundary and returns alias -> table reference.
// Reserved words never count as a reference or an alias; in particular
// the AS token itself is never an alias.
func ExtractAliases(text string) map[string]string {
	aliases := make(map[string]string)
	for _, m := range aliasRe.FindAllStringSubmatch(text, -1) {
		target, alias := m[1], m[2]
		if reservedTokens[strings.ToUpper(alias)] {
			continue
		}
		base := target
		if i := strings.LastIndexByte(base, '.'); i >= 0 {
			base = base[i+1:]
		}
		if reservedTokens[strings.ToUpper(base)] || reservedTokens[strings.ToUpper(target)] {
			continue
		}
		aliases[alias] = target
	}
	return aliases
}

// ExtractPrefix returns the partial identifier being typed at the end
// of the text, for case-insensitive candidate filtering.
func ExtractPrefix(text string) string {
	end := len(text)
	start := end
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return text[start:end]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
