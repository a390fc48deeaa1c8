package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpate/blog-wire/app/affiliate"
	"github.com/rpate/blog-wire/app/api"
	"github.com/rpate/blog-wire/app/cfg"
	"github.com/rpate/blog-wire/app/database"
	"github.com/rpate/blog-wire/app/dedup"
	"github.com/rpate/blog-wire/app/generator"
	"github.com/rpate/blog-wire/app/images"
	"github.com/rpate/blog-wire/app/pipeline"
	"github.com/rpate/blog-wire/app/seo"
	"github.com/rpate/blog-wire/app/tasks"
	"github.com/rpate/blog-wire/app/trends"
)

func main() {
	config, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if config == nil {
		// Help was requested
		return
	}

	logLevel := slog.LevelInfo
	if config.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Blog Wire", "version", config.Version)

	db, err := database.NewConnection(config.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", config.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	schemaVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", config.DBPath, "schema_version", schemaVersion, "dirty", dirty)

	articleRepo := database.NewArticleRepository(db)
	topicRepo := database.NewTopicRepository(db)
	linkRepo := database.NewAffiliateLinkRepository(db)
	lockRepo := database.NewJobLockRepository(db)

	registered, err := affiliate.RegisterFromFile(config.LinksFile, linkRepo)
	if err != nil {
		slog.Error("Failed to register affiliate links", "file", config.LinksFile, "error", err)
		os.Exit(1)
	}
	if registered > 0 {
		slog.Info("Affiliate links registered", "file", config.LinksFile, "count", registered)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	trendsClient := trends.NewClient(config.TrendsBaseUrl, config.UserAgent, httpClient)
	source := trends.NewSource(trendsClient, topicRepo, config.TrendsRegion)

	filter := dedup.NewFilter(articleRepo)

	var chat generator.ChatClient
	if config.OpenAIAPIKey != "" {
		chat = generator.NewOpenAIChatClient(config.OpenAIAPIKey, config.OpenAIModel)
	} else {
		slog.Warn("OPENAI_API_KEY not set, content generation disabled")
	}

	var searcher images.Searcher
	if config.UnsplashAccessKey != "" {
		searcher = images.NewUnsplashClient(images.DefaultUnsplashURL, config.UnsplashAccessKey, httpClient)
	}
	var imageGenerator images.ImageGenerator
	if config.DalleEnabled && config.OpenAIAPIKey != "" {
		imageGenerator = images.NewDalleClient(config.OpenAIAPIKey, config.DalleQuality)
	}
	imageService := images.NewService(searcher, imageGenerator, config.PlaceholderURL)

	gen := generator.NewGenerator(chat, imageService, articleRepo, config.SiteAuthor)
	injector := affiliate.NewInjector(linkRepo)

	pl := pipeline.NewPipeline(config, source, filter, gen, injector, imageService, articleRepo, topicRepo)

	scheduler := tasks.NewScheduler(config, pl, articleRepo, lockRepo)
	if err := scheduler.Start(); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	schema := seo.NewSchema(config.BlogName, config.BlogDomain, config.SiteAuthor)
	sitemap := seo.NewSitemap(config.BlogDomain, articleRepo)

	handler := api.NewHandler(config, articleRepo, topicRepo, linkRepo, lockRepo, pl, scheduler, schema, sitemap)
	server := api.NewServer(handler, config.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", config.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
