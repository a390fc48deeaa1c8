package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpate/blog-wire/app/database"
)

// dailyLockName identifies the database lock guarding scheduled generation
// runs against overlapping executions.
const dailyLockName = "daily_generation"

// dailyLockTTL bounds how long a crashed run can hold the lock.
const dailyLockTTL = 1 * time.Hour

type GeneratePostsTask struct {
	Task
	runner   PostRunner
	lockRepo database.JobLockRepository
	count    int
}

func NewGeneratePostsTask(runner PostRunner, lockRepo database.JobLockRepository, count int) *GeneratePostsTask {
	return &GeneratePostsTask{
		Task:     NewTask(TaskTypeGeneratePosts),
		runner:   runner,
		lockRepo: lockRepo,
		count:    count,
	}
}

func (t *GeneratePostsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	acquired, err := t.lockRepo.Acquire(dailyLockName, dailyLockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	if !acquired {
		slog.Info("Generation run already in progress, skipping", "lock", dailyLockName)
		return nil
	}
	defer func() {
		if err := t.lockRepo.Release(dailyLockName); err != nil {
			slog.Warn("Failed to release generation lock", "lock", dailyLockName, "error", err)
		}
	}()

	result, err := t.runner.RunDaily(ctx, t.count)
	if err != nil {
		return fmt.Errorf("generation run failed: %w", err)
	}

	slugs := make([]string, 0, len(result.Articles))
	for i := range result.Articles {
		slugs = append(slugs, result.Articles[i].Slug)
	}

	slog.Info("Task completed",
		"type", "GeneratePosts",
		"duration", t.GetDuration(),
		"requested", result.Requested,
		"generated", result.Generated,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"slugs", strings.Join(slugs, ", "))

	return nil
}
