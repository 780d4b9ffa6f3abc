package complete

import (
	"strings"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

// CandidateKind identifies what a completion candidate inserts.
type CandidateKind string

// Candidate kinds.
const (
	CandidateKeyword  CandidateKind = "keyword"
	CandidateSchema   CandidateKind = "schema"
	CandidateTable    CandidateKind = "table"
	CandidateColumn   CandidateKind = "column"
	CandidateFunction CandidateKind = "function"
)

// Candidate is one completion suggestion.
type Candidate struct {
	Label string
	Kind  CandidateKind
	// Detail is a short annotation: a column type, a function signature,
	// or the owning schema.
	Detail string
}

// Candidates expands a classified context into suggestions from the
// snapshot, filtered by the partial word being typed. The prefix filter
// is case-insensitive; an empty prefix keeps everything.
func Candidates(snap schema.Snapshot, ctx Context, prefix string) []Candidate {
	switch ctx.Kind {
	case ContextSchema:
		return schemaCandidates(snap, prefix)
	case ContextTable:
		return tableCandidates(snap, ctx.Schema, prefix)
	case ContextColumn:
		return columnCandidates(snap, ctx, prefix)
	case ContextFunction:
		return functionCandidates(snap, ctx.Schema, prefix)
	default:
		return generalCandidates(snap, prefix)
	}
}

func hasFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func schemaCandidates(snap schema.Snapshot, prefix string) []Candidate {
	var out []Candidate
	for i := range snap {
		if hasFold(snap[i].Name, prefix) {
			out = append(out, Candidate{Label: snap[i].Name, Kind: CandidateSchema})
		}
	}
	return out
}

func tableCandidates(snap schema.Snapshot, schemaName, prefix string) []Candidate {
	var out []Candidate
	for si := range snap {
		s := &snap[si]
		if schemaName != "" && !strings.EqualFold(s.Name, schemaName) {
			continue
		}
		for ti := range s.Tables {
			if hasFold(s.Tables[ti].Name, prefix) {
				out = append(out, Candidate{Label: s.Tables[ti].Name, Kind: CandidateTable, Detail: s.Name})
			}
		}
		for vi := range s.Views {
			if hasFold(s.Views[vi].Name, prefix) {
				out = append(out, Candidate{Label: s.Views[vi].Name, Kind: CandidateTable, Detail: s.Name})
			}
		}
		for vi := range s.MaterializedViews {
			if hasFold(s.MaterializedViews[vi].Name, prefix) {
				out = append(out, Candidate{Label: s.MaterializedViews[vi].Name, Kind: CandidateTable, Detail: s.Name})
			}
		}
	}
	return out
}

func columnCandidates(snap schema.Snapshot, ctx Context, prefix string) []Candidate {
	var out []Candidate
	seen := map[string]bool{}
	for _, ref := range ctx.Tables {
		t, ok := snap.FindTable(ref)
		if !ok {
			continue
		}
		for ci := range t.Columns {
			col := &t.Columns[ci]
			if !hasFold(col.Name, prefix) {
				continue
			}
			key := t.Name + "." + col.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Candidate{Label: col.Name, Kind: CandidateColumn, Detail: col.DataType})
		}
	}
	return out
}

func functionCandidates(snap schema.Snapshot, schemaName, prefix string) []Candidate {
	var out []Candidate
	for si := range snap {
		s := &snap[si]
		if schemaName != "" && !strings.EqualFold(s.Name, schemaName) {
			continue
		}
		for fi := range s.Functions {
			fn := &s.Functions[fi]
			if hasFold(fn.Name, prefix) {
				out = append(out, Candidate{
					Label:  fn.Name,
					Kind:   CandidateFunction,
					Detail: fn.Name + "(" + fn.Arguments + ")",
				})
			}
		}
	}
	return out
}

// generalCandidates builds each candidate set independently: keywords,
// schemas, tables, then built-in and snapshot functions.
func generalCandidates(snap schema.Snapshot, prefix string) []Candidate {
	var out []Candidate
	for _, kw := range sqlKeywords {
		if hasFold(kw, prefix) {
			out = append(out, Candidate{Label: kw, Kind: CandidateKeyword})
		}
	}
	out = append(out, schemaCandidates(snap, prefix)...)
	out = append(out, tableCandidates(snap, "", prefix)...)
	for _, fn := range SearchFunctions(prefix) {
		out = append(out, Candidate{Label: fn.Name, Kind: CandidateFunction, Detail: fn.Signature})
	}
	out = append(out, functionCandidates(snap, "", prefix)...)
	return out
}
