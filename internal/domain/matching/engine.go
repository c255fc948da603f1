package matching

import (
	"math"
	"strings"
	"unicode"
)

// Profile is the talent side of a fit computation.
type Profile struct {
	Category  string
	RoleTitle string
	Skills    []string
}

// Posting is the job side of a fit computation.
type Posting struct {
	Category    string
	Title       string
	Description string
}

type Result struct {
	Score         int
	CategoryMatch bool
	MatchedSkills []string
}

const (
	categoryWeight = 50.0
	skillsWeight   = 40.0
	titleWeight    = 10.0
)

// Calculate scores how well a talent fits a posting on a 0..100 scale. The score is
// advisory and never gates an application.
func Calculate(p Profile, j Posting) Result {
	res := Result{MatchedSkills: []string{}}

	total := 0.0
	if c := normalize(p.Category); c != "" && c == normalize(j.Category) {
		res.CategoryMatch = true
		total += categoryWeight
	}

	text := " " + normalize(j.Title+" "+j.Description) + " "

	skills := uniqueNormalized(p.Skills)
	if len(skills) > 0 {
		for _, s := range skills {
			if strings.Contains(text, " "+s.norm+" ") {
				res.MatchedSkills = append(res.MatchedSkills, s.raw)
			}
		}
		// Saturates at three matched skills so long skill lists are not penalised.
		denom := len(skills)
		if denom > 3 {
			denom = 3
		}
		ratio := float64(len(res.MatchedSkills)) / float64(denom)
		if ratio > 1 {
			ratio = 1
		}
		total += skillsWeight * ratio
	}

	titleWords := strings.Fields(normalize(p.RoleTitle))
	if len(titleWords) > 0 {
		hits := 0
		for _, w := range titleWords {
			if len(w) < 3 {
				continue
			}
			if strings.Contains(text, " "+w+" ") {
				hits++
			}
		}
		if hits > 0 {
			total += titleWeight
		}
	}

	res.Score = clampInt(int(math.Round(total)), 0, 100)
	return res
}

type normalizedSkill struct {
	raw  string
	norm string
}

func uniqueNormalized(in []string) []normalizedSkill {
	out := make([]normalizedSkill, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		n := normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, normalizedSkill{raw: strings.TrimSpace(s), norm: n})
	}
	return out
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	b := strings.Builder{}
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
