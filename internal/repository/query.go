package repository

import (
	"strconv"
	"strings"

	"fsti-hub/internal/search"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// filter accumulates AND-ed WHERE clauses with positional arguments. Clauses use
// '?' placeholders which are renumbered to $n as they are added.
type filter struct {
	clauses   []string
	args      []any
	relevance []string
}

// searchColumn is a text expression matched by free-text search. Weight is its
// contribution to the relevance score of a row.
type searchColumn struct {
	expr   string
	weight int
}

var foldFrom, foldTo = search.FoldTable()

// folded wraps expr so it compares without accents, matching search.Fold on the
// query side.
func folded(expr string) string {
	return "translate(" + expr + ", '" + foldFrom + "', '" + foldTo + "')"
}

func (f *filter) add(clause string, vals ...any) {
	var b strings.Builder
	i := 0
	for _, r := range clause {
		if r == '?' && i < len(vals) {
			f.args = append(f.args, vals[i])
			i++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(len(f.args)))
			continue
		}
		b.WriteRune(r)
	}
	f.clauses = append(f.clauses, b.String())
}

// matchAny adds one clause matching any term against any column, ignoring case
// and accents. It also records the relevance score used by orderBy.
func (f *filter) matchAny(columns []searchColumn, terms []string) {
	parts := make([]string, 0, len(columns)*len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		f.args = append(f.args, "%"+escapeLike(t)+"%")
		ph := "$" + strconv.Itoa(len(f.args))
		for _, c := range columns {
			cond := folded(c.expr) + " ILIKE " + ph
			parts = append(parts, cond)
			if c.weight > 0 {
				f.relevance = append(f.relevance, "CASE WHEN "+cond+" THEN "+strconv.Itoa(c.weight)+" ELSE 0 END")
			}
		}
	}
	if len(parts) == 0 {
		return
	}
	f.clauses = append(f.clauses, "("+strings.Join(parts, " OR ")+")")
}

// orderBy sorts by relevance when a search term was given, then by fallback.
func (f *filter) orderBy(fallback string) string {
	if len(f.relevance) == 0 {
		return " ORDER BY " + fallback
	}
	return " ORDER BY (" + strings.Join(f.relevance, " + ") + ") DESC, " + fallback
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// page appends LIMIT/OFFSET arguments and returns the clause.
func (f *filter) page(limit, offset int) string {
	limit, offset = clampPage(limit, offset)
	f.args = append(f.args, limit, offset)
	n := len(f.args)
	return " LIMIT $" + strconv.Itoa(n-1) + " OFFSET $" + strconv.Itoa(n)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
