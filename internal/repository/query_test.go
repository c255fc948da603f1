package repository

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilter_BuildsNumberedClauses(t *testing.T) {
	var f filter
	f.add("status = ?", "open")
	f.matchAny([]searchColumn{{expr: "j.title"}, {expr: "j.location"}}, []string{"dev", " ", "50%"})
	f.add("category = ?", "IT")
	pageSQL := f.page(500, -3)

	title, location := folded("j.title"), folded("j.location")
	wantWhere := " WHERE status = $1 AND (" +
		title + " ILIKE $2 OR " + location + " ILIKE $2 OR " +
		title + " ILIKE $3 OR " + location + " ILIKE $3) AND category = $4"
	if got := f.where(); got != wantWhere {
		t.Fatalf("where:\n got %q\nwant %q", got, wantWhere)
	}
	if pageSQL != " LIMIT $5 OFFSET $6" {
		t.Fatalf("unexpected page clause %q", pageSQL)
	}

	wantArgs := []any{"open", "%dev%", `%50\%%`, "IT", 100, 0}
	if diff := cmp.Diff(wantArgs, f.args); diff != "" {
		t.Fatalf("args (-want +got):\n%s", diff)
	}

	// Unweighted columns filter without reordering.
	if got := f.orderBy("j.created_at DESC, j.id"); got != " ORDER BY j.created_at DESC, j.id" {
		t.Fatalf("unexpected order clause %q", got)
	}
}

func TestFilter_FoldsAccentsOnColumns(t *testing.T) {
	got := folded("c.specialty")
	if !strings.HasPrefix(got, "translate(c.specialty, '") {
		t.Fatalf("unexpected folded expression %q", got)
	}
	for _, r := range "éÉèçÇ" {
		if !strings.ContainsRune(foldFrom, r) {
			t.Fatalf("fold table misses %q", r)
		}
	}
	if len([]rune(foldFrom)) != len([]rune(foldTo)) {
		t.Fatalf("fold table is not rune aligned")
	}
}

func TestFilter_OrderByRelevanceAcrossTerms(t *testing.T) {
	var f filter
	f.matchAny([]searchColumn{{expr: "c.specialty", weight: 5}, {expr: "c.full_name", weight: 3}}, []string{"nurse", "infirmier"})
	f.add("c.active = ?", true)

	spec, name := folded("c.specialty"), folded("c.full_name")
	want := " ORDER BY (" +
		"CASE WHEN " + spec + " ILIKE $1 THEN 5 ELSE 0 END + " +
		"CASE WHEN " + name + " ILIKE $1 THEN 3 ELSE 0 END + " +
		"CASE WHEN " + spec + " ILIKE $2 THEN 5 ELSE 0 END + " +
		"CASE WHEN " + name + " ILIKE $2 THEN 3 ELSE 0 END" +
		") DESC, c.created_at DESC, c.id"
	if got := f.orderBy("c.created_at DESC, c.id"); got != want {
		t.Fatalf("order:\n got %q\nwant %q", got, want)
	}
}

func TestFilter_EmptyWhere(t *testing.T) {
	var f filter
	f.matchAny([]searchColumn{{expr: "name", weight: 1}}, nil)
	if f.where() != "" {
		t.Fatalf("expected empty where, got %q", f.where())
	}
	if got := f.orderBy("created_at DESC"); got != " ORDER BY created_at DESC" {
		t.Fatalf("expected fallback order, got %q", got)
	}
}
