package search

// Synonyms maps a normalized phrase to alternatives searched alongside it. Entries
// cover the English and French terms people use for the same trade.
var Synonyms = map[string][]string{
	"developer":     {"developpeur", "programmer", "software engineer"},
	"developpeur":   {"developer", "programmer"},
	"accountant":    {"comptable", "accounting"},
	"comptable":     {"accountant", "accounting"},
	"nurse":         {"infirmier", "infirmiere"},
	"infirmier":     {"nurse"},
	"driver":        {"chauffeur"},
	"chauffeur":     {"driver"},
	"teacher":       {"enseignant", "professeur", "tutor"},
	"enseignant":    {"teacher", "professeur"},
	"designer":      {"graphic designer", "ui designer", "graphiste"},
	"graphiste":     {"graphic designer", "designer"},
	"frontend":      {"front end", "frontend developer", "ui developer"},
	"backend":       {"back end", "server developer"},
	"agronomist":    {"agronome", "agriculture"},
	"agronome":      {"agronomist", "agriculture"},
	"it":            {"informatique", "technology"},
	"web developer": {"developpeur web", "frontend", "backend"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
