package trends

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpate/blog-wire/app/database"
)

// FeedClient is the upstream trend feed contract.
type FeedClient interface {
	Fetch(ctx context.Context, count int, region string) ([]TrendingSearch, error)
}

var _ FeedClient = (*Client)(nil)

// Source combines the trend feed with topic persistence. It is the pipeline's
// only view of topic discovery and lifecycle.
type Source struct {
	client    FeedClient
	topicRepo database.TopicRepository
	region    string
}

func NewSource(client FeedClient, topicRepo database.TopicRepository, region string) *Source {
	return &Source{
		client:    client,
		topicRepo: topicRepo,
		region:    region,
	}
}

// Fetch pulls candidate keywords from the trend feed. An unreachable feed is
// logged and reported as an empty batch.
func (s *Source) Fetch(ctx context.Context, count int) []TrendingSearch {
	searches, err := s.client.Fetch(ctx, count, s.region)
	if err != nil {
		slog.Warn("Trend feed unavailable", "region", s.region, "error", err)
		return nil
	}
	return searches
}

// Save persists candidates as pending topics. A keyword with an existing
// pending or in_progress topic is skipped so the same work is never queued
// twice. Returns only the newly inserted topics.
func (s *Source) Save(searches []TrendingSearch) ([]database.Topic, error) {
	var saved []database.Topic

	for _, search := range searches {
		existing, err := s.topicRepo.GetActiveByKeyword(search.Keyword)
		if err != nil {
			return saved, fmt.Errorf("failed to check existing topic: %w", err)
		}
		if existing != nil {
			slog.Debug("Topic already queued, skipping", "keyword", search.Keyword, "status", existing.Status)
			continue
		}

		topic, err := s.topicRepo.Insert(search.Keyword, search.SearchVolume, search.Score)
		if err != nil {
			return saved, fmt.Errorf("failed to save topic: %w", err)
		}
		saved = append(saved, *topic)
	}

	slog.Info("Trending topics saved", "candidates", len(searches), "new", len(saved))

	return saved, nil
}

// NextPending returns the highest-scored pending topic, or nil when the pool
// is exhausted.
func (s *Source) NextPending() (*database.Topic, error) {
	return s.topicRepo.NextPending()
}

// MarkInProgress records that the pipeline picked the topic up.
func (s *Source) MarkInProgress(id int64) error {
	return s.topicRepo.SetStatus(id, database.TopicInProgress)
}

// MarkProcessed stamps a terminal outcome (completed or skipped).
func (s *Source) MarkProcessed(id int64, outcome string) error {
	return s.topicRepo.MarkProcessed(id, outcome)
}

// ReleaseStale returns topics stuck in_progress (e.g. after a crash) to the
// pending pool so their keywords are not blocked forever.
func (s *Source) ReleaseStale(olderThan time.Duration) {
	released, err := s.topicRepo.ReleaseStale(olderThan)
	if err != nil {
		slog.Warn("Failed to release stale topics", "error", err)
		return
	}
	if released > 0 {
		slog.Info("Released stale in-progress topics", "count", released)
	}
}
