package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fsti-hub/internal/domain/news"
	"fsti-hub/internal/infrastructure/assistant"
	"fsti-hub/internal/infrastructure/newsimport"
	"fsti-hub/internal/infrastructure/storage"
	"fsti-hub/internal/pkg/markdown"
	"fsti-hub/internal/pkg/whatsapp"
	"fsti-hub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const summaryCacheTTL = 24 * time.Hour

type ArticleInput struct {
	Title      string
	Summary    string
	Content    string
	Category   string
	Author     string
	ImageURL   string
	SourceName string
	SourceURL  string
	Image      *Upload
}

type ShareLinks struct {
	WhatsApp string
	Facebook string
	X        string
	URL      string
}

// ArticleView is an article ready for display: content rendered to safe HTML.
type ArticleView struct {
	news.Article
	HTML  string
	Share ShareLinks
}

type ImportResult struct {
	Found    int
	Inserted int
}

type NewsCrawler interface {
	Crawl(ctx context.Context, src newsimport.Source) ([]news.Draft, error)
}

type NewsUsecase interface {
	List(ctx context.Context, category string, includeDrafts bool, limit, offset int) ([]news.Article, int, error)
	Get(ctx context.Context, id uuid.UUID, includeDrafts bool) (ArticleView, error)
	Create(ctx context.Context, in ArticleInput) (news.Article, error)
	Update(ctx context.Context, id uuid.UUID, in ArticleInput) (news.Article, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (news.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summarize(ctx context.Context, id uuid.UUID) (string, error)
	Import(ctx context.Context) (ImportResult, error)
}

type NewsConfig struct {
	SiteURL         string
	Source          newsimport.Source
	DefaultCategory string
}

type News struct {
	repo      repository.NewsRepository
	renderer  *markdown.Renderer
	files     FileStore
	cache     Cache
	assistant assistant.Provider
	crawler   NewsCrawler
	cfg       NewsConfig
	logger    *zap.Logger
}

func NewNewsUsecase(repo repository.NewsRepository, renderer *markdown.Renderer, files FileStore, cache Cache, provider assistant.Provider, crawler NewsCrawler, cfg NewsConfig, logger *zap.Logger) *News {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = markdown.NewRenderer()
	}
	return &News{
		repo:      repo,
		renderer:  renderer,
		files:     files,
		cache:     cache,
		assistant: provider,
		crawler:   crawler,
		cfg:       cfg,
		logger:    logger.With(zap.String("component", "news")),
	}
}

func (u *News) List(ctx context.Context, category string, includeDrafts bool, limit, offset int) ([]news.Article, int, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := u.repo.List(ctx, news.Filter{
		Category:      strings.TrimSpace(category),
		PublishedOnly: !includeDrafts,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		u.logger.Error("news list failed", zap.Error(err))
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *News) Get(ctx context.Context, id uuid.UUID, includeDrafts bool) (ArticleView, error) {
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return ArticleView{}, mapReadError(err)
	}
	if !a.IsPublished && !includeDrafts {
		return ArticleView{}, ErrNotFound
	}

	html, err := u.renderer.ToHTML(a.Content)
	if err != nil {
		u.logger.Warn("article render failed", zap.String("article_id", id.String()), zap.Error(err))
		html = ""
	}
	return ArticleView{Article: a, HTML: html, Share: u.shareLinks(a)}, nil
}

func (u *News) shareLinks(a news.Article) ShareLinks {
	link := strings.TrimRight(u.cfg.SiteURL, "/") + "/news/" + a.ID.String()
	text := a.Title
	return ShareLinks{
		URL:      link,
		WhatsApp: whatsapp.ShareLink(text + " " + link),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(link),
		X:        "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text) + "&url=" + url.QueryEscape(link),
	}
}

func (in ArticleInput) article() (news.Article, error) {
	if !required(in.Title, in.Category) {
		return news.Article{}, ErrInvalidInput
	}
	a := news.Article{
		Title:      strings.TrimSpace(in.Title),
		Summary:    strings.TrimSpace(in.Summary),
		Content:    in.Content,
		Category:   strings.TrimSpace(in.Category),
		Author:     strings.TrimSpace(in.Author),
		ImageURL:   strings.TrimSpace(in.ImageURL),
		SourceName: strings.TrimSpace(in.SourceName),
	}
	if src := strings.TrimSpace(in.SourceURL); src != "" {
		if u, err := url.Parse(src); err != nil || u.Host == "" {
			return news.Article{}, ErrInvalidInput
		}
		a.SourceURL = &src
	}
	return a, nil
}

func (u *News) Create(ctx context.Context, in ArticleInput) (news.Article, error) {
	a, err := in.article()
	if err != nil {
		return news.Article{}, err
	}
	if in.Image != nil {
		obj, err := u.storeImage(ctx, in.Image)
		if err != nil {
			return news.Article{}, err
		}
		a.ImageURL = obj.URL
	}
	created, err := u.repo.Create(ctx, a)
	if err != nil {
		return news.Article{}, mapReadError(err)
	}
	return created, nil
}

func (u *News) Update(ctx context.Context, id uuid.UUID, in ArticleInput) (news.Article, error) {
	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return news.Article{}, mapReadError(err)
	}
	a, err := in.article()
	if err != nil {
		return news.Article{}, err
	}
	a.ID = current.ID
	if a.ImageURL == "" {
		a.ImageURL = current.ImageURL
	}
	// Empty source fields keep the stored origin.
	if a.SourceName == "" {
		a.SourceName = current.SourceName
	}
	if a.SourceURL == nil {
		a.SourceURL = current.SourceURL
	}
	if in.Image != nil {
		obj, err := u.storeImage(ctx, in.Image)
		if err != nil {
			return news.Article{}, err
		}
		a.ImageURL = obj.URL
	}
	updated, err := u.repo.Update(ctx, a)
	if err != nil {
		return news.Article{}, mapReadError(err)
	}
	return updated, nil
}

func (u *News) SetPublished(ctx context.Context, id uuid.UUID, published bool) (news.Article, error) {
	a, err := u.repo.SetPublished(ctx, id, published)
	if err != nil {
		return news.Article{}, mapReadError(err)
	}
	return a, nil
}

func (u *News) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return mapReadError(err)
	}
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, summaryCachePrefix(id)+"*")
	}
	return nil
}

func (u *News) storeImage(ctx context.Context, up *Upload) (storage.Object, error) {
	if u.files == nil {
		return storage.Object{}, ErrInternal
	}
	obj, err := u.files.Put(ctx, storage.FolderNews, up.Filename, up.Reader)
	if err != nil {
		return storage.Object{}, mapStorageError(err)
	}
	return obj, nil
}

func summaryCachePrefix(id uuid.UUID) string {
	return "news:summary:" + id.String() + ":"
}

// Summarize asks the assistant for a short take on a published article. The
// answer is cached until the article changes.
func (u *News) Summarize(ctx context.Context, id uuid.UUID) (string, error) {
	if u.assistant == nil {
		return "", ErrAssistantDisabled
	}
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return "", mapReadError(err)
	}
	if !a.IsPublished {
		return "", ErrNotFound
	}

	key := fmt.Sprintf("%s%d", summaryCachePrefix(id), a.UpdatedAt.Unix())
	if u.cache != nil {
		var cached string
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit && cached != "" {
			return cached, nil
		}
	}

	text, err := u.assistant.Generate(ctx, assistant.Request{
		System: "You summarise news for the FSTI Hub. Answer in two or three sentences, in the language of the article.",
		Prompt: "Explain its significance for the nation's 2025 digital transformation. Article: " + a.Title + " - " + a.Summary,
	})
	if err != nil {
		u.logger.Warn("article summary failed", zap.String("article_id", id.String()), zap.String("provider", u.assistant.Name()), zap.Error(err))
		return "", ErrAssistantFailed
	}
	text = strings.TrimSpace(text)

	if u.cache != nil && text != "" {
		_ = u.cache.SetJSON(ctx, key, text, summaryCacheTTL)
	}
	return text, nil
}

// Import crawls the configured source and stores new articles as drafts.
func (u *News) Import(ctx context.Context) (ImportResult, error) {
	if u.crawler == nil || strings.TrimSpace(u.cfg.Source.ListURL) == "" {
		return ImportResult{}, ErrNewsImportDisabled
	}

	drafts, err := u.crawler.Crawl(ctx, u.cfg.Source)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ImportResult{}, err
		}
		u.logger.Error("news crawl failed", zap.String("source", u.cfg.Source.Name), zap.Error(err))
		return ImportResult{}, ErrInternal
	}

	res := ImportResult{Found: len(drafts)}
	category := u.cfg.DefaultCategory
	if category == "" {
		category = "General"
	}
	for _, d := range drafts {
		title := u.renderer.PlainText(d.Title)
		src := strings.TrimSpace(d.SourceURL)
		if title == "" || src == "" {
			continue
		}
		summary := u.renderer.PlainText(d.Summary)
		inserted, err := u.repo.InsertDraft(ctx, news.Article{
			Title:      title,
			Summary:    summary,
			Content:    summary,
			Category:   category,
			Author:     u.cfg.Source.Name,
			ImageURL:   strings.TrimSpace(d.ImageURL),
			SourceName: u.cfg.Source.Name,
			SourceURL:  &src,
		})
		if err != nil {
			u.logger.Warn("draft not stored", zap.String("url", src), zap.Error(err))
			continue
		}
		if inserted {
			res.Inserted++
		}
	}

	u.logger.Info("news import finished", zap.String("source", u.cfg.Source.Name), zap.Int("found", res.Found), zap.Int("inserted", res.Inserted))
	return res, nil
}
