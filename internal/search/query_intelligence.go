package search

import (
	"strings"
	"unicode"
)

const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
	// Terms are matched against accent-folded columns: the variants plus the
	// folded input with its punctuation kept, so "node.js" still finds "Node.js".
	Terms []string
}

// foldFrom and foldTo pair rune by rune.
const (
	foldFrom = "àâäçéèêëîïôöùûüÿ"
	foldTo   = "aaaceeeeiioouuuy"
)

var accentFolder = newFolder(foldFrom, foldTo)

func newFolder(from, to string) *strings.Replacer {
	src, dst := []rune(from), []rune(to)
	pairs := make([]string, 0, 2*len(src))
	for i := range src {
		pairs = append(pairs, string(src[i]), string(dst[i]))
	}
	return strings.NewReplacer(pairs...)
}

// FoldTable returns the accent folding as two rune-aligned strings covering
// both cases, in the form SQL translate() takes.
func FoldTable() (from, to string) {
	return foldFrom + strings.ToUpper(foldFrom), foldTo + strings.ToUpper(foldTo)
}

// Fold lower-cases s, folds French accents and collapses spaces. Punctuation
// is kept.
func Fold(s string) string {
	return strings.Join(strings.Fields(accentFolder.Replace(strings.ToLower(s))), " ")
}

// NormalizeQuery lower-cases, folds French accents and keeps only letters, digits
// and single spaces.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	input = accentFolder.Replace(strings.ToLower(input))

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false

	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns the normalized query followed by synonym variants, capped at ten.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)

	// Replace a leading term that has synonyms, keeping the rest: "comptable gitega"
	// also searches "accountant gitega".
	tryPrefix := func(phrase string, rest []string) {
		syns := GetSynonyms(phrase)
		if len(syns) == 0 {
			return
		}
		restStr := strings.Join(rest, " ")
		for _, syn := range syns {
			add(strings.TrimSpace(syn + " " + restStr))
		}
	}
	if len(words) >= 2 {
		tryPrefix(words[0], words[1:])
	}
	if len(words) >= 3 {
		tryPrefix(words[0]+" "+words[1], words[2:])
	}

	// A compact form of a spaced key ("webdeveloper") expands like the key itself.
	if len(words) == 1 {
		for k, syns := range Synonyms {
			if !strings.Contains(k, " ") || strings.ReplaceAll(k, " ", "") != words[0] {
				continue
			}
			add(k)
			for _, syn := range syns {
				add(syn)
			}
			break
		}
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	ctx.Variants = ExpandQuery(ctx.Normalized)

	ctx.Terms = append(make([]string, 0, len(ctx.Variants)+1), ctx.Variants...)
	if raw := Fold(input); raw != "" && raw != ctx.Normalized {
		ctx.Terms = append(ctx.Terms, raw)
	}
	return ctx
}
