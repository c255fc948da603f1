package repository

import (
	"context"
	"strings"
	"time"

	"fsti-hub/internal/database"
	"fsti-hub/internal/domain/news"

	"github.com/google/uuid"
)

type NewsRepository interface {
	Create(ctx context.Context, a news.Article) (news.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (news.Article, error)
	List(ctx context.Context, f news.Filter) ([]news.Article, int, error)
	Update(ctx context.Context, a news.Article) (news.Article, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (news.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// InsertDraft stores an unpublished article unless one with the same source url
	// exists. It reports whether a row was inserted.
	InsertDraft(ctx context.Context, a news.Article) (bool, error)
}

type PostgresNewsRepository struct {
	db database.DB
}

func NewPostgresNewsRepository(db database.DB) *PostgresNewsRepository {
	return &PostgresNewsRepository{db: db}
}

const newsColumns = `n.id, n.title, n.summary, n.content, n.category, n.author, n.image_url,
	n.source_name, n.source_url, n.is_published, n.published_at, n.created_at, n.updated_at`

func scanArticle(row database.Row, extra ...any) (news.Article, error) {
	var a news.Article
	dest := []any{
		&a.ID, &a.Title, &a.Summary, &a.Content, &a.Category, &a.Author, &a.ImageURL,
		&a.SourceName, &a.SourceURL, &a.IsPublished, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return news.Article{}, err
	}
	return a, nil
}

func nullableURL(u *string) *string {
	if u == nil || strings.TrimSpace(*u) == "" {
		return nil
	}
	v := strings.TrimSpace(*u)
	return &v
}

func (r *PostgresNewsRepository) Create(ctx context.Context, a news.Article) (news.Article, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	var publishedAt *time.Time
	if a.IsPublished {
		now := time.Now().UTC()
		publishedAt = &now
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO news_articles AS n (id, title, summary, content, category, author, image_url,
			source_name, source_url, is_published, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+newsColumns,
		a.ID, a.Title, a.Summary, a.Content, a.Category, a.Author, a.ImageURL,
		a.SourceName, nullableURL(a.SourceURL), a.IsPublished, publishedAt,
	)
	created, err := scanArticle(row)
	if err != nil {
		return news.Article{}, mapWriteError(err)
	}
	return created, nil
}

func (r *PostgresNewsRepository) GetByID(ctx context.Context, id uuid.UUID) (news.Article, error) {
	row := r.db.QueryRow(ctx, `SELECT `+newsColumns+` FROM news_articles n WHERE n.id = $1`, id)
	a, err := scanArticle(row)
	if err != nil {
		return news.Article{}, mapReadError(err)
	}
	return a, nil
}

func (r *PostgresNewsRepository) List(ctx context.Context, f news.Filter) ([]news.Article, int, error) {
	var q filter
	if f.PublishedOnly {
		q.add("n.is_published = ?", true)
	}
	if f.Category != "" {
		q.add("n.category = ?", f.Category)
	}
	where := q.where()
	pageSQL := q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+newsColumns+`, COUNT(1) OVER ()
		 FROM news_articles n`+where+`
		 ORDER BY COALESCE(n.published_at, n.created_at) DESC, n.id`+pageSQL,
		q.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]news.Article, 0)
	total := 0
	for rows.Next() {
		a, err := scanArticle(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresNewsRepository) Update(ctx context.Context, a news.Article) (news.Article, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE news_articles AS n
		 SET title = $2, summary = $3, content = $4, category = $5, author = $6, image_url = $7,
			source_name = $8, source_url = $9, updated_at = now()
		 WHERE n.id = $1
		 RETURNING `+newsColumns,
		a.ID, a.Title, a.Summary, a.Content, a.Category, a.Author, a.ImageURL, a.SourceName, nullableURL(a.SourceURL),
	)
	updated, err := scanArticle(row)
	if err != nil {
		return news.Article{}, mapWriteError(mapReadError(err))
	}
	return updated, nil
}

func (r *PostgresNewsRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) (news.Article, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE news_articles AS n
		 SET is_published = $2,
			published_at = CASE WHEN $2 THEN COALESCE(n.published_at, now()) ELSE NULL END,
			updated_at = now()
		 WHERE n.id = $1
		 RETURNING `+newsColumns,
		id, published,
	)
	a, err := scanArticle(row)
	if err != nil {
		return news.Article{}, mapReadError(err)
	}
	return a, nil
}

func (r *PostgresNewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM news_articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresNewsRepository) InsertDraft(ctx context.Context, a news.Article) (bool, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	n, err := r.db.Exec(ctx,
		`INSERT INTO news_articles (id, title, summary, content, category, author, image_url, source_name, source_url, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE)
		 ON CONFLICT (source_url) DO NOTHING`,
		a.ID, a.Title, a.Summary, a.Content, a.Category, a.Author, a.ImageURL, a.SourceName, nullableURL(a.SourceURL),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
