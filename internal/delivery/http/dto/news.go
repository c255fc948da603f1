package dto

import (
	"time"

	"fsti-hub/internal/domain/news"
	"fsti-hub/internal/usecase"

	"github.com/google/uuid"
)

type ArticleResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content,omitempty"`
	Category    string     `json:"category"`
	Author      string     `json:"author"`
	ImageURL    string     `json:"image_url"`
	SourceName  string     `json:"source_name"`
	SourceURL   *string    `json:"source_url"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ShareLinksResponse struct {
	URL      string `json:"url"`
	WhatsApp string `json:"whatsapp"`
	Facebook string `json:"facebook"`
	X        string `json:"x"`
}

type ArticleDetailResponse struct {
	ArticleResponse
	HTML  string             `json:"html"`
	Share ShareLinksResponse `json:"share"`
}

func NewArticleResponse(a news.Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Summary:     a.Summary,
		Content:     a.Content,
		Category:    a.Category,
		Author:      a.Author,
		ImageURL:    a.ImageURL,
		SourceName:  a.SourceName,
		SourceURL:   a.SourceURL,
		IsPublished: a.IsPublished,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// NewArticleList leaves out the body; the feed only needs the summary.
func NewArticleList(items []news.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(items))
	for _, a := range items {
		r := NewArticleResponse(a)
		r.Content = ""
		out = append(out, r)
	}
	return out
}

func NewArticleDetailResponse(v usecase.ArticleView) ArticleDetailResponse {
	return ArticleDetailResponse{
		ArticleResponse: NewArticleResponse(v.Article),
		HTML:            v.HTML,
		Share: ShareLinksResponse{
			URL:      v.Share.URL,
			WhatsApp: v.Share.WhatsApp,
			Facebook: v.Share.Facebook,
			X:        v.Share.X,
		},
	}
}
