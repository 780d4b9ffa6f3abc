package search

import (
	"fmt"
	"testing"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

func TestIsSubsequenceMatch(t *testing.T) {
	tests := []struct {
		candidate string
		pattern   string
		expected  bool
	}{
		{"user_accounts", "usac", true},
		{"products", "usr", false},
		{"users", "users", true},
		{"users", "USERS", true},
		{"Users", "users", true},
		{"users", "userss", false},
		{"anything", "", true},
		{"", "a", false},
		{"héllo_wörld", "hw", true},
		{"héllo", "é", true},
	}
	for _, tt := range tests {
		if got := IsSubsequenceMatch(tt.candidate, tt.pattern); got != tt.expected {
			t.Errorf("IsSubsequenceMatch(%q, %q): expected %v, got %v",
				tt.candidate, tt.pattern, tt.expected, got)
		}
	}
}

func TestScoreTiers(t *testing.T) {
	exact := Score("users", "users")
	prefix := Score("users", "user")
	substr := Score("all_users", "user")
	subseq := Score("user_accounts", "usac")

	if exact != 100 {
		t.Errorf("exact match: expected 100, got %d", exact)
	}
	if prefix != 90 {
		t.Errorf("prefix match: expected 90, got %d", prefix)
	}
	if substr != 80 {
		t.Errorf("substring match: expected 80, got %d", substr)
	}
	if subseq >= 80 {
		t.Errorf("subsequence score must stay below substring tier, got %d", subseq)
	}
	if subseq <= 0 {
		t.Errorf("subsequence score must be positive, got %d", subseq)
	}
}

func TestScoreRewardsContiguousRuns(t *testing.T) {
	// Same matched characters, but one candidate keeps them contiguous.
	contiguous := Score("xx_abc_yy", "abc")
	if contiguous != 80 {
		t.Fatalf("sanity: contiguous is a substring match, got %d", contiguous)
	}
	run := Score("zabzcz", "abc") // ab run then c
	scattered := Score("zazbzcz", "abc")
	if run <= scattered {
		t.Errorf("run score %d should beat scattered score %d", run, scattered)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	if got := Score("Users", "USERS"); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	snap := []schema.Schema{{Name: "public", Tables: []schema.Table{{Name: "users"}}}}
	if got := Search(snap, ""); got != nil {
		t.Errorf("empty query: expected no results, got %d", len(got))
	}
}

func TestSearchOrderAndFields(t *testing.T) {
	snap := []schema.Schema{
		{
			Name: "public",
			Tables: []schema.Table{
				{Name: "users", Columns: []schema.Column{{Name: "user_name"}}},
				{Name: "user_accounts"},
			},
			Views:             []schema.View{{Name: "user_view"}},
			MaterializedViews: []schema.View{{Name: "users_mat", Materialized: true}},
			Functions:         []schema.Function{{Name: "user_total"}},
		},
	}

	results := Search(snap, "users")
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Kind != KindTable || results[0].Name != "users" || results[0].Score != 100 {
		t.Errorf("expected exact table match first, got %+v", results[0])
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted at %d: %d > %d", i, results[i].Score, results[i-1].Score)
		}
	}

	// The column result carries its owning table.
	found := false
	for _, r := range Search(snap, "user_name") {
		if r.Kind == KindColumn && r.Name == "user_name" {
			found = true
			if r.ParentName != "users" {
				t.Errorf("column parent: expected %q, got %q", "users", r.ParentName)
			}
		}
	}
	if !found {
		t.Error("expected a column result for user_name")
	}
}

func TestSearchCap(t *testing.T) {
	s := schema.Schema{Name: "public"}
	for i := 0; i < 200; i++ {
		s.Tables = append(s.Tables, schema.Table{Name: fmt.Sprintf("match_%03d", i)})
	}

	results := Search([]schema.Schema{s}, "match")
	if len(results) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted at %d", i)
		}
	}
}

func TestSearchStableTies(t *testing.T) {
	snap := []schema.Schema{
		{Name: "a", Tables: []schema.Table{{Name: "orders_one"}}},
		{Name: "b", Tables: []schema.Table{{Name: "orders_two"}}},
	}
	results := Search(snap, "orders")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Schema != "a" || results[1].Schema != "b" {
		t.Errorf("equal scores must keep snapshot order, got %q then %q",
			results[0].Schema, results[1].Schema)
	}
}
