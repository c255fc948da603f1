package seeder

import (
	"context"
	"testing"
	"testing/fstest"

	"fsti-hub/internal/domain/community"
	"fsti-hub/internal/domain/news"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
)

type fakeTraffic struct {
	repository.TrafficRepository
	seen map[string]bool
}

func (f *fakeTraffic) SeedIfAbsent(_ context.Context, tr community.TrafficReport) (bool, error) {
	key := tr.Road + "|" + tr.LocationName + "|" + tr.Description
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

type fakeEvents struct {
	repository.EventRepository
	got []community.Event
}

func (f *fakeEvents) SeedIfAbsent(_ context.Context, e community.Event) (bool, error) {
	f.got = append(f.got, e)
	return true, nil
}

type fakeNews struct {
	repository.NewsRepository
	byURL     map[string]uuid.UUID
	published map[uuid.UUID]bool
}

func (f *fakeNews) InsertDraft(_ context.Context, a news.Article) (bool, error) {
	if _, ok := f.byURL[*a.SourceURL]; ok {
		return false, nil
	}
	f.byURL[*a.SourceURL] = a.ID
	return true, nil
}

func (f *fakeNews) SetPublished(_ context.Context, id uuid.UUID, published bool) (news.Article, error) {
	f.published[id] = published
	return news.Article{ID: id, IsPublished: published}, nil
}

func TestEmbeddedFixturesLoad(t *testing.T) {
	fx, err := LoadFixtures(Embedded())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(fx.Traffic) == 0 || len(fx.Events) == 0 || len(fx.News) == 0 {
		t.Fatalf("expected every fixture set to be non-empty: %+v", fx)
	}
	if got := fx.Events[0].Tiers; len(got) != 1 || got[0].Price != 5000 {
		t.Fatalf("unexpected tiers %+v", got)
	}
}

func TestLoadFixtures_RejectsBadSeverity(t *testing.T) {
	fsys := fstest.MapFS{
		"traffic.yaml": {Data: []byte("reports:\n  - road: RN7\n    severity: Extreme\n")},
	}
	if _, err := LoadFixtures(fsys); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadFixtures_MissingFilesAreEmpty(t *testing.T) {
	fx, err := LoadFixtures(fstest.MapFS{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(fx.Traffic)+len(fx.Events)+len(fx.News) != 0 {
		t.Fatalf("expected empty fixtures, got %+v", fx)
	}
}

func TestRunner_IsIdempotent(t *testing.T) {
	fx, err := LoadFixtures(Embedded())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	traffic := &fakeTraffic{seen: map[string]bool{}}
	events := &fakeEvents{}
	nws := &fakeNews{byURL: map[string]uuid.UUID{}, published: map[uuid.UUID]bool{}}

	r := Runner{Seeders: Defaults(Repositories{Traffic: traffic, Events: events, News: nws}, fx)}

	first, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	want := len(fx.Traffic) + len(fx.Events) + len(fx.News)
	if first != want {
		t.Fatalf("first run inserted %d, want %d", first, want)
	}
	if len(nws.published) != len(fx.News) {
		t.Fatalf("expected every seeded article published, got %d", len(nws.published))
	}
	if got := events.got[0].StartsOn.Format("2006-01-02"); got != fx.Events[0].Date {
		t.Fatalf("event date %s, want %s", got, fx.Events[0].Date)
	}

	second, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	// the event fake accepts duplicates; traffic and news must not.
	if second != len(fx.Events) {
		t.Fatalf("second run inserted %d, want %d", second, len(fx.Events))
	}
}
