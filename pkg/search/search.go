// Package search implements fuzzy matching over every object name in a
// schema snapshot.
//
// Matching is subsequence-based: every pattern character must occur in
// the candidate in order, case-insensitively. Qualifying candidates are
// scored so that exact, prefix, and substring matches outrank scattered
// subsequence hits, and long contiguous runs outrank short ones.
package search

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

// ResultKind identifies what kind of object a search result names.
type ResultKind string

// Search result kinds.
const (
	KindTable            ResultKind = "table"
	KindView             ResultKind = "view"
	KindMaterializedView ResultKind = "materialized-view"
	KindFunction         ResultKind = "function"
	KindColumn           ResultKind = "column"
	KindSequence         ResultKind = "sequence"
	KindType             ResultKind = "type"
)

// Result is one ranked match.
type Result struct {
	Kind   ResultKind
	Schema string
	Name   string
	// ParentName is the owning object for nested results, e.g. the table
	// of a column. Empty for top-level objects.
	ParentName string
	// Score is non-negative; higher is better.
	Score int
}

// MaxResults caps the result list.
const MaxResults = 50

// Search scores every object name in the snapshot against query and
// returns the top matches, best first. An empty query returns nothing:
// search is opt-in, never a browse-everything listing.
func Search(schemas []schema.Schema, query string) []Result {
	if query == "" {
		return nil
	}

	var results []Result
	add := func(kind ResultKind, schemaName, name, parent string) {
		if !IsSubsequenceMatch(name, query) {
			return
		}
		results = append(results, Result{
			Kind:       kind,
			Schema:     schemaName,
			Name:       name,
			ParentName: parent,
			Score:      Score(name, query),
		})
	}

	for si := range schemas {
		s := &schemas[si]
		for ti := range s.Tables {
			t := &s.Tables[ti]
			add(KindTable, s.Name, t.Name, "")
			for ci := range t.Columns {
				add(KindColumn, s.Name, t.Columns[ci].Name, t.Name)
			}
		}
		for vi := range s.Views {
			add(KindView, s.Name, s.Views[vi].Name, "")
		}
		for vi := range s.MaterializedViews {
			add(KindMaterializedView, s.Name, s.MaterializedViews[vi].Name, "")
		}
		for fi := range s.Functions {
			add(KindFunction, s.Name, s.Functions[fi].Name, "")
		}
	}

	// Stable keeps snapshot order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// IsSubsequenceMatch reports whether every character of pattern occurs
// in candidate in order, case-insensitively. This is the admission gate
// before scoring; it is a subsequence test, not a substring test.
func IsSubsequenceMatch(candidate, pattern string) bool {
	if pattern == "" {
		return true
	}
	want := []rune(strings.ToLower(pattern))
	i := 0
	for _, r := range strings.ToLower(candidate) {
		if r == want[i] {
			i++
			if i == len(want) {
				return true
			}
		}
	}
	return false
}

// Score ranks candidate against pattern. Exact matches score 100,
// prefix matches 90, other substring matches 80. Anything else gets a
// run-length score: each character continuing an in-order match adds
// the length of the current run, so contiguous runs accumulate
// super-linearly over scattered single-character hits.
func Score(candidate, pattern string) int {
	c := strings.ToLower(candidate)
	p := strings.ToLower(pattern)

	switch {
	case c == p:
		return 100
	case strings.HasPrefix(c, p):
		return 90
	case strings.Contains(c, p):
		return 80
	}

	want := []rune(p)
	score := 0
	consecutive := 0
	i := 0
	for _, r := range c {
		if i < len(want) && r == want[i] {
			consecutive++
			score += consecutive
			i++
		} else {
			consecutive = 0
		}
	}
	return score
}
