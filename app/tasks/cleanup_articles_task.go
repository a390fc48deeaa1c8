package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpate/blog-wire/app/database"
)

// CleanupArticlesTask removes articles that were persisted without content,
// usually leftovers from interrupted generation runs.
type CleanupArticlesTask struct {
	Task
	articleRepo database.ArticleRepository
}

func NewCleanupArticlesTask(articleRepo database.ArticleRepository) *CleanupArticlesTask {
	return &CleanupArticlesTask{
		Task:        NewTask(TaskTypeCleanupArticles),
		articleRepo: articleRepo,
	}
}

func (t *CleanupArticlesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	removed, err := t.articleRepo.DeleteEmpty()
	if err != nil {
		return fmt.Errorf("failed to delete empty articles: %w", err)
	}

	slog.Info("Task completed",
		"type", "CleanupArticles",
		"duration", t.GetDuration(),
		"removed", removed)

	return nil
}
