package database

import (
	"time"
)

// Topic statuses
const (
	TopicPending    = "pending"
	TopicInProgress = "in_progress"
	TopicCompleted  = "completed"
	TopicSkipped    = "skipped"
)

// Article statuses
const (
	ArticleDraft     = "draft"
	ArticlePublished = "published"
	ArticleArchived  = "archived"
)

type Topic struct {
	ID           int64
	Keyword      string
	SearchVolume int
	TrendScore   float64
	Status       string
	DiscoveredAt time.Time
	ClaimedAt    *time.Time
	ProcessedAt  *time.Time
}

type Article struct {
	ID               int64
	Title            string
	Slug             string
	Content          string
	Excerpt          string
	MetaDescription  string
	MetaKeywords     string
	FeaturedImageURL string
	Status           string
	PublishedAt      *time.Time
	WordCount        int
	ViewCount        int
	TopicID          *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type AffiliateLink struct {
	ID         int64
	Keyword    string
	URL        string
	Platform   string
	Active     bool
	ClickCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
