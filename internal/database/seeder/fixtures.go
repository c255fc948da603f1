package seeder

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"fsti-hub/internal/domain/community"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var embedded embed.FS

// Embedded returns the fixtures shipped with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}

type TrafficFixture struct {
	Road        string             `yaml:"road"`
	Type        string             `yaml:"type"`
	Status      string             `yaml:"status"`
	Severity    community.Severity `yaml:"severity"`
	Location    string             `yaml:"location"`
	Description string             `yaml:"description"`
	Reporter    string             `yaml:"reporter"`
}

type EventFixture struct {
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Organizer   string                 `yaml:"organizer"`
	Type        string                 `yaml:"type"`
	Date        string                 `yaml:"date"`
	Venue       string                 `yaml:"venue"`
	Province    string                 `yaml:"province"`
	Image       string                 `yaml:"image"`
	Tiers       []community.TicketTier `yaml:"tiers"`
}

type NewsFixture struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Content   string `yaml:"content"`
	Category  string `yaml:"category"`
	Author    string `yaml:"author"`
	Source    string `yaml:"source"`
	URL       string `yaml:"url"`
	Image     string `yaml:"image"`
	Published bool   `yaml:"published"`
}

type Fixtures struct {
	Traffic []TrafficFixture
	Events  []EventFixture
	News    []NewsFixture
}

// LoadFixtures reads traffic.yaml, events.yaml and news.yaml from fsys. Missing
// files are treated as empty.
func LoadFixtures(fsys fs.FS) (Fixtures, error) {
	var out Fixtures

	var traffic struct {
		Reports []TrafficFixture `yaml:"reports"`
	}
	if err := decodeFile(fsys, "traffic.yaml", &traffic); err != nil {
		return Fixtures{}, err
	}
	for i, r := range traffic.Reports {
		if strings.TrimSpace(r.Road) == "" || !r.Severity.Valid() {
			return Fixtures{}, fmt.Errorf("traffic.yaml: report %d: road and a valid severity are required", i)
		}
	}
	out.Traffic = traffic.Reports

	var events struct {
		Events []EventFixture `yaml:"events"`
	}
	if err := decodeFile(fsys, "events.yaml", &events); err != nil {
		return Fixtures{}, err
	}
	for i, e := range events.Events {
		if strings.TrimSpace(e.Title) == "" {
			return Fixtures{}, fmt.Errorf("events.yaml: event %d: title is required", i)
		}
		if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
			return Fixtures{}, fmt.Errorf("events.yaml: event %q: %w", e.Title, err)
		}
	}
	out.Events = events.Events

	var articles struct {
		Articles []NewsFixture `yaml:"articles"`
	}
	if err := decodeFile(fsys, "news.yaml", &articles); err != nil {
		return Fixtures{}, err
	}
	for i, a := range articles.Articles {
		if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.URL) == "" {
			return Fixtures{}, fmt.Errorf("news.yaml: article %d: title and url are required", i)
		}
	}
	out.News = articles.Articles

	return out, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
