package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fsti-hub/internal/domain/news"
	"fsti-hub/internal/infrastructure/newsimport"

	"github.com/google/uuid"
)

func TestNews_Import_DedupesAndSanitizes(t *testing.T) {
	repo := &fakeNews{sources: map[string]bool{"https://news.example.bi/old": true}}
	crawler := stubCrawler{drafts: []news.Draft{
		{Title: "<b>Gitega</b> tech week", Summary: "<script>x()</script>Startups gather", SourceURL: "https://news.example.bi/a"},
		{Title: "Already imported", SourceURL: "https://news.example.bi/old"},
		{Title: "", SourceURL: "https://news.example.bi/empty"},
		{Title: "Same page twice", SourceURL: "https://news.example.bi/a"},
		{Title: "L'économie & l'emploi au Burundi", Summary: "Prix <em>&amp;</em> salaires", SourceURL: "https://news.example.bi/b"},
	}}
	cfg := NewsConfig{Source: newsimport.Source{Name: "Example", ListURL: "https://news.example.bi"}}
	uc := NewNewsUsecase(repo, nil, nil, nil, nil, crawler, cfg, nil)

	res, err := uc.Import(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Found != 5 || res.Inserted != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}

	d := repo.drafts[0]
	if d.Title != "Gitega tech week" || strings.Contains(d.Summary, "script") {
		t.Fatalf("draft not sanitized: %+v", d)
	}
	if d.IsPublished || d.Category != "General" || d.SourceName != "Example" {
		t.Fatalf("unexpected draft fields: %+v", d)
	}

	d = repo.drafts[1]
	if d.Title != "L'économie & l'emploi au Burundi" || d.Summary != "Prix & salaires" {
		t.Fatalf("draft text kept HTML entities: %q / %q", d.Title, d.Summary)
	}
}

func TestNews_Import_Disabled(t *testing.T) {
	uc := NewNewsUsecase(&fakeNews{}, nil, nil, nil, nil, nil, NewsConfig{}, nil)
	if _, err := uc.Import(context.Background()); !errors.Is(err, ErrNewsImportDisabled) {
		t.Fatalf("expected ErrNewsImportDisabled, got %v", err)
	}
}

func TestNews_Summarize_Cached(t *testing.T) {
	id := uuid.New()
	repo := &fakeNews{byID: map[uuid.UUID]news.Article{
		id: {ID: id, Title: "Fibre reaches Gitega", Summary: "New backbone", IsPublished: true, UpdatedAt: time.Unix(1700000000, 0)},
	}}
	provider := &stubProvider{reply: "  A short take.  "}
	uc := NewNewsUsecase(repo, nil, nil, newMemCache(), provider, nil, NewsConfig{}, nil)

	for i := 0; i < 2; i++ {
		got, err := uc.Summarize(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got != "A short take." {
			t.Fatalf("unexpected summary %q", got)
		}
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
	if !strings.Contains(provider.last.Prompt, "Fibre reaches Gitega") {
		t.Fatalf("prompt must carry the title: %q", provider.last.Prompt)
	}
}

func TestNews_Summarize_Errors(t *testing.T) {
	id := uuid.New()
	repo := &fakeNews{byID: map[uuid.UUID]news.Article{id: {ID: id, Title: "Draft"}}}

	uc := NewNewsUsecase(repo, nil, nil, nil, nil, nil, NewsConfig{}, nil)
	if _, err := uc.Summarize(context.Background(), id); !errors.Is(err, ErrAssistantDisabled) {
		t.Fatalf("expected ErrAssistantDisabled, got %v", err)
	}

	uc = NewNewsUsecase(repo, nil, nil, nil, &stubProvider{err: errBoom}, nil, NewsConfig{}, nil)
	if _, err := uc.Summarize(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("drafts have no public summary, got %v", err)
	}

	a := repo.byID[id]
	a.IsPublished = true
	repo.byID[id] = a
	if _, err := uc.Summarize(context.Background(), id); !errors.Is(err, ErrAssistantFailed) {
		t.Fatalf("expected ErrAssistantFailed, got %v", err)
	}
}

func TestNews_Get_RendersAndShares(t *testing.T) {
	id := uuid.New()
	repo := &fakeNews{byID: map[uuid.UUID]news.Article{
		id: {ID: id, Title: "Hub opens", Content: "# Hello\n\n<script>alert(1)</script>", IsPublished: true},
	}}
	uc := NewNewsUsecase(repo, nil, nil, nil, nil, nil, NewsConfig{SiteURL: "https://fsti.bi/"}, nil)

	v, err := uc.Get(context.Background(), id, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(v.HTML, "<h1") || strings.Contains(v.HTML, "<script") {
		t.Fatalf("unexpected html %q", v.HTML)
	}
	if v.Share.URL != "https://fsti.bi/news/"+id.String() {
		t.Fatalf("unexpected share url %q", v.Share.URL)
	}
	if !strings.HasPrefix(v.Share.WhatsApp, "https://api.whatsapp.com/send?text=") {
		t.Fatalf("unexpected whatsapp link %q", v.Share.WhatsApp)
	}
}

func TestNews_Update_PersistsSource(t *testing.T) {
	id := uuid.New()
	imported := "https://news.example.bi/a"
	repo := &fakeNews{byID: map[uuid.UUID]news.Article{
		id: {ID: id, Title: "Draft", Category: "General", SourceName: "Example", SourceURL: &imported},
	}}
	uc := NewNewsUsecase(repo, nil, nil, nil, nil, nil, NewsConfig{}, nil)

	got, err := uc.Update(context.Background(), id, ArticleInput{Title: "Edited", Category: "Tech"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.SourceName != "Example" || got.SourceURL == nil || *got.SourceURL != imported {
		t.Fatalf("stored source lost on edit: %+v", got)
	}

	got, err = uc.Update(context.Background(), id, ArticleInput{Title: "Edited", Category: "Tech", SourceName: "Iwacu", SourceURL: " https://iwacu.bi/x "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.SourceName != "Iwacu" || got.SourceURL == nil || *got.SourceURL != "https://iwacu.bi/x" {
		t.Fatalf("new source not saved: %+v", got)
	}
	if stored := repo.byID[id]; stored.SourceName != "Iwacu" {
		t.Fatalf("repository not updated: %+v", stored)
	}

	if _, err := uc.Update(context.Background(), id, ArticleInput{Title: "Edited", Category: "Tech", SourceURL: "not a url"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
