package database

import (
	"time"
)

// NewArticle carries the fields of a not-yet-persisted article. The
// repository derives timestamps and the view counter itself.
type NewArticle struct {
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
	TopicID          *int64
}

type ArticleRepository interface {
	Insert(article NewArticle) (*Article, error)
	GetBySlug(slug string) (*Article, error)
	GetByID(id int64) (*Article, error)
	GetAll() ([]Article, error)
	GetPublished(limit, offset int) ([]Article, error)
	GetPublishedCount() (int, error)
	SlugExists(slug string) (bool, error)
	IncrementViewCount(id int64) error
	UpdateFeaturedImage(id int64, url string) error
	ClearFeaturedImagesBefore(cutoff time.Time) (int, error)
	Delete(id int64) error
	DeleteEmpty() (int, error)
	GetStats() (total, published, draft, views int, err error)
}

type TopicRepository interface {
	Insert(keyword string, searchVolume int, trendScore float64) (*Topic, error)
	GetByID(id int64) (*Topic, error)
	GetActiveByKeyword(keyword string) (*Topic, error)
	GetRecent(limit int) ([]Topic, error)
	NextPending() (*Topic, error)
	SetStatus(id int64, status string) error
	MarkProcessed(id int64, status string) error
	ReleaseStale(olderThan time.Duration) (int, error)
	GetStats() (total, pending, completed int, err error)
}

type AffiliateLinkRepository interface {
	Upsert(keyword, url, platform string, active bool) (*AffiliateLink, error)
	GetAll() ([]AffiliateLink, error)
	GetActive() ([]AffiliateLink, error)
	SetActive(id int64, active bool) error
	TrackClick(id int64) error
}

// JobLockRepository guards scheduled runs against overlapping executions.
type JobLockRepository interface {
	Acquire(name string, ttl time.Duration) (bool, error)
	Release(name string) error
}
