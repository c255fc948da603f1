package matching

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		name      string
		profile   Profile
		posting   Posting
		wantScore int
		wantSkill []string
	}{
		{
			name:      "nothing in common",
			profile:   Profile{Category: "Health", Skills: []string{"Nursing"}},
			posting:   Posting{Category: "IT", Title: "Backend developer", Description: "Go and PostgreSQL"},
			wantScore: 0,
			wantSkill: []string{},
		},
		{
			name:      "category only",
			profile:   Profile{Category: "it "},
			posting:   Posting{Category: "IT", Title: "Backend developer"},
			wantScore: 50,
			wantSkill: []string{},
		},
		{
			name:      "full match",
			profile:   Profile{Category: "IT", RoleTitle: "Backend Developer", Skills: []string{"Go", "PostgreSQL", "Docker"}},
			posting:   Posting{Category: "IT", Title: "Backend developer", Description: "We use Go, PostgreSQL and Docker daily."},
			wantScore: 100,
			wantSkill: []string{"Go", "PostgreSQL", "Docker"},
		},
		{
			name:      "partial skills saturate at three",
			profile:   Profile{Category: "Design", Skills: []string{"Figma", "Photoshop", "Illustrator", "Blender", "InDesign", "Canva"}},
			posting:   Posting{Category: "Marketing", Title: "Graphic designer", Description: "figma and canva"},
			wantScore: 27,
			wantSkill: []string{"Figma", "Canva"},
		},
		{
			name:      "skill must match whole words",
			profile:   Profile{Skills: []string{"Go"}},
			posting:   Posting{Title: "Google Ads manager"},
			wantScore: 0,
			wantSkill: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.profile, tc.posting)
			if got.Score != tc.wantScore {
				t.Fatalf("score: got %d want %d", got.Score, tc.wantScore)
			}
			if diff := cmp.Diff(tc.wantSkill, got.MatchedSkills); diff != "" {
				t.Fatalf("matched skills (-want +got):\n%s", diff)
			}
		})
	}
}
