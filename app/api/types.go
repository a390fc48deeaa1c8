package api

import (
	"context"
	"time"

	"github.com/rpate/blog-wire/app/database"
	"github.com/rpate/blog-wire/app/pipeline"
	"github.com/rpate/blog-wire/app/seo"
	"github.com/rpate/blog-wire/app/tasks"
)

// PipelineInterface is the generation and maintenance surface the handlers
// drive.
type PipelineInterface interface {
	GenerateSingle(ctx context.Context, keyword string) (*database.Article, error)
	RunDaily(ctx context.Context, count int) (pipeline.Result, error)
	RefreshImages(ctx context.Context) (int, error)
	RemoveOldImages(cutoff time.Time) (int, error)
	GetStats() (*pipeline.Stats, error)
}

var _ PipelineInterface = (*pipeline.Pipeline)(nil)

type Handler struct {
	articleRepo database.ArticleRepository
	topicRepo   database.TopicRepository
	linkRepo    database.AffiliateLinkRepository
	lockRepo    database.JobLockRepository
	pipeline    PipelineInterface
	scheduler   tasks.TaskSchedulerInterface
	schema      *seo.Schema
	sitemap     *seo.Sitemap
	markdown    *MarkdownRenderer
	postsPerDay int
	version     string
}
