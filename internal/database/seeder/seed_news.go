package seeder

import (
	"context"

	"fsti-hub/internal/domain/news"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
)

// NewsSeeder inserts articles keyed by source url, publishing the ones marked
// published. Existing articles are left untouched.
type NewsSeeder struct {
	Repo  repository.NewsRepository
	Items []NewsFixture
}

func (NewsSeeder) Name() string { return "news_articles" }

func (NewsSeeder) Table() (string, []string) {
	return "news_articles", []string{"id", "title", "summary", "content", "source_url", "is_published", "published_at"}
}

func (s NewsSeeder) Run(ctx context.Context) (int, error) {
	inserted := 0
	for _, it := range s.Items {
		src := it.URL
		a := news.Article{
			ID:         uuid.New(),
			Title:      it.Title,
			Summary:    it.Summary,
			Content:    it.Content,
			Category:   it.Category,
			Author:     it.Author,
			ImageURL:   it.Image,
			SourceName: it.Source,
			SourceURL:  &src,
		}
		ok, err := s.Repo.InsertDraft(ctx, a)
		if err != nil {
			return inserted, err
		}
		if !ok {
			continue
		}
		inserted++
		if it.Published {
			if _, err := s.Repo.SetPublished(ctx, a.ID, true); err != nil {
				return inserted, err
			}
		}
	}
	return inserted, nil
}
