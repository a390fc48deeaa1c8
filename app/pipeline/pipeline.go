package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpate/blog-wire/app/cfg"
	"github.com/rpate/blog-wire/app/database"
	"github.com/rpate/blog-wire/app/generator"
	"github.com/rpate/blog-wire/app/trends"
)

// Topics stuck in_progress longer than this are assumed abandoned by a
// crashed run and returned to the pending pool.
const staleAfter = 2 * time.Hour

// ErrDuplicate reports that a generated article was rejected because it is
// too close to content already in the database.
var ErrDuplicate = errors.New("too similar to an existing article")

// TopicSource is the topic discovery and lifecycle contract.
type TopicSource interface {
	Fetch(ctx context.Context, count int) []trends.TrendingSearch
	Save(searches []trends.TrendingSearch) ([]database.Topic, error)
	NextPending() (*database.Topic, error)
	MarkInProgress(id int64) error
	MarkProcessed(id int64, outcome string) error
	ReleaseStale(olderThan time.Duration)
}

// DuplicateFilter screens keywords and generated titles against stored
// articles.
type DuplicateFilter interface {
	IsTopicCovered(keyword string) (bool, *database.Article, error)
	IsTitleTooSimilar(title string) (bool, *database.Article, error)
}

// ArticleGenerator drafts and persists articles.
type ArticleGenerator interface {
	Generate(ctx context.Context, ref generator.TopicRef, minWords, maxWords int) (*generator.Draft, error)
	Persist(draft *generator.Draft, topicID *int64, status string) (*database.Article, error)
}

// LinkInjector rewrites article content with affiliate hyperlinks.
type LinkInjector interface {
	Run(content string, maxLinks int) string
}

// ImageFetcher re-resolves featured images during maintenance.
type ImageFetcher interface {
	GetFeaturedImage(ctx context.Context, title, keywords string) string
}

// Result summarizes a batch run and carries the articles it published.
type Result struct {
	Requested int                `json:"requested"`
	Generated int                `json:"generated"`
	Skipped   int                `json:"skipped"`
	Failed    int                `json:"failed"`
	Articles  []database.Article `json:"articles"`
}

// Stats is the aggregate health snapshot served by the stats endpoint.
type Stats struct {
	TotalArticles     int `json:"total_articles"`
	PublishedArticles int `json:"published_articles"`
	DraftArticles     int `json:"draft_articles"`
	TotalViews        int `json:"total_views"`
	TotalTopics       int `json:"total_topics"`
	PendingTopics     int `json:"pending_topics"`
	CompletedTopics   int `json:"completed_topics"`
}

// Pipeline runs the full publishing flow: discover trending topics, screen out
// duplicates, generate content, inject affiliate links and persist.
type Pipeline struct {
	config      *cfg.Cfg
	source      TopicSource
	filter      DuplicateFilter
	generator   ArticleGenerator
	injector    LinkInjector
	images      ImageFetcher
	articleRepo database.ArticleRepository
	topicRepo   database.TopicRepository
}

func NewPipeline(config *cfg.Cfg, source TopicSource, filter DuplicateFilter,
	gen ArticleGenerator, injector LinkInjector, images ImageFetcher,
	articleRepo database.ArticleRepository, topicRepo database.TopicRepository) *Pipeline {
	return &Pipeline{
		config:      config,
		source:      source,
		filter:      filter,
		generator:   gen,
		injector:    injector,
		images:      images,
		articleRepo: articleRepo,
		topicRepo:   topicRepo,
	}
}

// RunDaily generates up to count articles from trending topics. Topics are
// over-fetched two to one so duplicate-screened candidates still leave enough
// material. When the trend feed yields nothing, keywords sampled from the
// local fallback file are used instead. A shortfall is not an error; the
// result carries the published articles alongside the counters.
func (p *Pipeline) RunDaily(ctx context.Context, count int) (Result, error) {
	result := Result{Requested: count}

	slog.Info("Starting daily generation run", "count", count)

	p.source.ReleaseStale(staleAfter)

	searches := p.source.Fetch(ctx, count*2)
	if len(searches) == 0 {
		slog.Warn("No trending topics available, using fallback topics")
		return p.runFromFallback(ctx, count)
	}

	if _, err := p.source.Save(searches); err != nil {
		return result, fmt.Errorf("failed to queue topics: %w", err)
	}

	for result.Generated < count {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		topic, err := p.source.NextPending()
		if err != nil {
			return result, fmt.Errorf("failed to pick next topic: %w", err)
		}
		if topic == nil {
			slog.Info("Topic pool exhausted", "generated", result.Generated, "requested", count)
			break
		}

		if err := p.source.MarkInProgress(topic.ID); err != nil {
			return result, fmt.Errorf("failed to claim topic %d: %w", topic.ID, err)
		}

		article, err := p.processTopic(ctx, *topic)
		switch {
		case err != nil:
			result.Failed++
		case article != nil:
			result.Generated++
			result.Articles = append(result.Articles, *article)
		default:
			result.Skipped++
		}
	}

	slog.Info("Daily generation run finished",
		"generated", result.Generated, "skipped", result.Skipped, "failed", result.Failed)

	return result, nil
}

// processTopic takes one claimed topic to a terminal status. It returns the
// published article, or nil when the topic was skipped as a duplicate, or an
// error when generation or persistence broke. Either way the topic ends up in
// a terminal status and the run moves on.
func (p *Pipeline) processTopic(ctx context.Context, topic database.Topic) (*database.Article, error) {
	covered, existing, err := p.filter.IsTopicCovered(topic.Keyword)
	if err != nil {
		slog.Error("Duplicate check failed", "keyword", topic.Keyword, "error", err)
		p.finishTopic(topic.ID, database.TopicSkipped)
		return nil, err
	}
	if covered {
		slog.Info("Skipping covered topic", "keyword", topic.Keyword, "existing", existing.Title)
		p.finishTopic(topic.ID, database.TopicSkipped)
		return nil, nil
	}

	draft, err := p.generator.Generate(ctx, generator.ResolvedTopic(topic), p.config.MinWordCount, p.config.MaxWordCount)
	if err != nil {
		slog.Error("Generation failed", "keyword", topic.Keyword, "error", err)
		p.finishTopic(topic.ID, database.TopicSkipped)
		return nil, err
	}

	similar, existing, err := p.filter.IsTitleTooSimilar(draft.Title)
	if err != nil {
		slog.Error("Duplicate check failed", "title", draft.Title, "error", err)
		p.finishTopic(topic.ID, database.TopicSkipped)
		return nil, err
	}
	if similar {
		slog.Info("Discarding duplicate draft", "title", draft.Title, "existing", existing.Title)
		p.finishTopic(topic.ID, database.TopicSkipped)
		return nil, nil
	}

	draft.Content = p.injector.Run(draft.Content, p.config.MaxAffiliates)

	article, err := p.generator.Persist(draft, &topic.ID, database.ArticlePublished)
	if err != nil {
		slog.Error("Failed to persist article", "keyword", topic.Keyword, "error", err)
		p.finishTopic(topic.ID, database.TopicSkipped)
		return nil, err
	}

	p.finishTopic(topic.ID, database.TopicCompleted)
	return article, nil
}

func (p *Pipeline) finishTopic(id int64, outcome string) {
	if err := p.source.MarkProcessed(id, outcome); err != nil {
		slog.Warn("Failed to mark topic processed", "topic_id", id, "outcome", outcome, "error", err)
	}
}

// runFromFallback generates from randomly sampled local keywords. These never
// touch the topic queue.
func (p *Pipeline) runFromFallback(ctx context.Context, count int) (Result, error) {
	result := Result{Requested: count}

	topics, err := trends.LoadFallbackTopics(p.config.TopicsFile)
	if err != nil {
		return result, fmt.Errorf("failed to load fallback topics: %w", err)
	}
	if len(topics) == 0 {
		return result, fmt.Errorf("fallback topics file %s is empty", p.config.TopicsFile)
	}

	for _, keyword := range trends.SampleTopics(topics, count) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		article, err := p.GenerateSingle(ctx, keyword)
		if err != nil {
			if errors.Is(err, ErrDuplicate) {
				slog.Info("Skipping fallback keyword", "keyword", keyword, "reason", err)
				result.Skipped++
			} else {
				slog.Error("Fallback generation failed", "keyword", keyword, "error", err)
				result.Failed++
			}
			continue
		}
		result.Generated++
		result.Articles = append(result.Articles, *article)
	}

	return result, nil
}

// GenerateSingle produces one published article for an ad-hoc keyword,
// bypassing the topic queue. Duplicate keywords and duplicate generated
// titles are rejected with ErrDuplicate.
func (p *Pipeline) GenerateSingle(ctx context.Context, keyword string) (*database.Article, error) {
	covered, existing, err := p.filter.IsTopicCovered(keyword)
	if err != nil {
		return nil, err
	}
	if covered {
		return nil, fmt.Errorf("keyword %q already covered by %q: %w", keyword, existing.Title, ErrDuplicate)
	}

	draft, err := p.generator.Generate(ctx, generator.RawKeyword(keyword), p.config.MinWordCount, p.config.MaxWordCount)
	if err != nil {
		return nil, err
	}

	similar, existing, err := p.filter.IsTitleTooSimilar(draft.Title)
	if err != nil {
		return nil, err
	}
	if similar {
		return nil, fmt.Errorf("title %q matches %q: %w", draft.Title, existing.Title, ErrDuplicate)
	}

	draft.Content = p.injector.Run(draft.Content, p.config.MaxAffiliates)

	return p.generator.Persist(draft, nil, database.ArticlePublished)
}

// imageNeedsRefresh reports whether a featured image URL is missing, a
// placeholder, or an expired ephemeral DALL-E blob link.
func imageNeedsRefresh(url string) bool {
	if url == "" {
		return true
	}
	lower := strings.ToLower(url)
	return strings.Contains(lower, "placeholder") ||
		strings.Contains(lower, "oaidalleapiprodscus.blob.core.windows.net")
}

// RefreshImages re-resolves the featured image of every published article
// whose current URL is missing, a placeholder, or expired. Returns how many
// articles were updated.
func (p *Pipeline) RefreshImages(ctx context.Context) (int, error) {
	if p.images == nil {
		return 0, fmt.Errorf("image service not configured")
	}

	articles, err := p.articleRepo.GetPublished(50000, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to load published articles: %w", err)
	}

	refreshed := 0
	for i := range articles {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}

		article := &articles[i]
		if !imageNeedsRefresh(article.FeaturedImageURL) {
			continue
		}

		url := p.images.GetFeaturedImage(ctx, article.Title, article.MetaKeywords)
		if imageNeedsRefresh(url) {
			slog.Warn("No better image found", "slug", article.Slug)
			continue
		}

		if err := p.articleRepo.UpdateFeaturedImage(article.ID, url); err != nil {
			slog.Error("Failed to update featured image", "slug", article.Slug, "error", err)
			continue
		}
		slog.Info("Featured image refreshed", "slug", article.Slug, "url", url)
		refreshed++
	}

	return refreshed, nil
}

// RemoveOldImages clears the featured image from published articles published
// before the cutoff. Returns how many articles were touched.
func (p *Pipeline) RemoveOldImages(cutoff time.Time) (int, error) {
	removed, err := p.articleRepo.ClearFeaturedImagesBefore(cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		slog.Info("Old featured images removed", "count", removed, "cutoff", cutoff)
	}
	return removed, nil
}

// GetStats aggregates article and topic counters.
func (p *Pipeline) GetStats() (*Stats, error) {
	total, published, draft, views, err := p.articleRepo.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to load article stats: %w", err)
	}

	topicsTotal, pending, completed, err := p.topicRepo.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to load topic stats: %w", err)
	}

	return &Stats{
		TotalArticles:     total,
		PublishedArticles: published,
		DraftArticles:     draft,
		TotalViews:        views,
		TotalTopics:       topicsTotal,
		PendingTopics:     pending,
		CompletedTopics:   completed,
	}, nil
}
