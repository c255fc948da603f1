package news

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	ID          uuid.UUID
	Title       string
	Summary     string
	Content     string
	Category    string
	Author      string
	ImageURL    string
	SourceName  string
	SourceURL   *string
	IsPublished bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	Category string
	// PublishedOnly is false only for the admin listing.
	PublishedOnly bool
	Limit         int
	Offset        int
}

// Draft is an article extracted from an external source page.
type Draft struct {
	Title     string
	Summary   string
	ImageURL  string
	SourceURL string
}
