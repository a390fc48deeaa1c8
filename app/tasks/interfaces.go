package tasks

import (
	"context"

	"github.com/rpate/blog-wire/app/pipeline"
)

// TaskSchedulerInterface defines the interface for background task scheduling.
// Used by the main application to manage the worker pool and the cron-driven
// generation schedule.
// Example usage:
//
//	scheduler := NewScheduler(config, runner, articleRepo, lockRepo)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start() error
	Stop()
	EnqueueTask(task TaskInterface) error
}

// PostRunner is the generation pipeline contract the scheduler depends on.
type PostRunner interface {
	RunDaily(ctx context.Context, count int) (pipeline.Result, error)
}
