package database

import (
	"testing"
	"time"
)

func insertTestArticle(t *testing.T, repo ArticleRepository, title, slug, status string, wordCount int) *Article {
	t.Helper()

	var publishedAt *time.Time
	if status == ArticlePublished {
		now := time.Now().UTC()
		publishedAt = &now
	}

	article, err := repo.Insert(NewArticle{
		Title:       title,
		Slug:        slug,
		Content:     "Some content.",
		Excerpt:     "Some excerpt.",
		Status:      status,
		PublishedAt: publishedAt,
		WordCount:   wordCount,
	})
	if err != nil {
		t.Fatalf("Failed to insert article: %v", err)
	}
	return article
}

func TestArticleInsertAndGet(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	inserted := insertTestArticle(t, repo, "Test Article", "test-article", ArticlePublished, 100)

	if inserted.ID == 0 {
		t.Error("Expected a non-zero article ID")
	}
	if inserted.ViewCount != 0 {
		t.Errorf("Expected view count 0, got %d", inserted.ViewCount)
	}
	if inserted.PublishedAt == nil {
		t.Error("Expected published_at to be set")
	}

	bySlug, err := repo.GetBySlug("test-article")
	if err != nil {
		t.Fatal(err)
	}
	if bySlug == nil || bySlug.ID != inserted.ID {
		t.Error("Expected to find article by slug")
	}
	if bySlug.FeaturedImageURL != "" {
		t.Errorf("Expected empty image URL, got '%s'", bySlug.FeaturedImageURL)
	}
}

func TestArticleGetBySlugMissing(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article, err := repo.GetBySlug("does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	if article != nil {
		t.Error("Expected nil for missing slug")
	}
}

func TestArticleSlugUniqueness(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	insertTestArticle(t, repo, "First", "shared-slug", ArticleDraft, 10)

	_, err := repo.Insert(NewArticle{
		Title:   "Second",
		Slug:    "shared-slug",
		Content: "Other content.",
		Status:  ArticleDraft,
	})
	if err == nil {
		t.Error("Expected unique constraint violation on duplicate slug")
	}
}

func TestArticleSlugExists(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	insertTestArticle(t, repo, "First", "taken", ArticleDraft, 10)

	exists, err := repo.SlugExists("taken")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("Expected slug 'taken' to exist")
	}

	exists, err = repo.SlugExists("free")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("Expected slug 'free' to be available")
	}
}

func TestArticleGetPublishedOrderingAndPaging(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	older := time.Now().UTC().Add(-2 * time.Hour)
	newer := time.Now().UTC()

	if _, err := repo.Insert(NewArticle{Title: "Older", Slug: "older", Content: "c",
		Status: ArticlePublished, PublishedAt: &older, WordCount: 5}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Insert(NewArticle{Title: "Newer", Slug: "newer", Content: "c",
		Status: ArticlePublished, PublishedAt: &newer, WordCount: 5}); err != nil {
		t.Fatal(err)
	}
	insertTestArticle(t, repo, "Draft", "draft", ArticleDraft, 5)

	published, err := repo.GetPublished(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 2 {
		t.Fatalf("Expected 2 published articles, got %d", len(published))
	}
	if published[0].Title != "Newer" {
		t.Errorf("Expected newest first, got '%s'", published[0].Title)
	}

	page2, err := repo.GetPublished(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page2) != 1 || page2[0].Title != "Older" {
		t.Errorf("Expected second page to hold 'Older', got %v", page2)
	}

	count, err := repo.GetPublishedCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Expected published count 2, got %d", count)
	}
}

func TestArticleIncrementViewCount(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article := insertTestArticle(t, repo, "Viewed", "viewed", ArticlePublished, 5)

	if err := repo.IncrementViewCount(article.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.IncrementViewCount(article.ID); err != nil {
		t.Fatal(err)
	}

	reloaded, err := repo.GetByID(article.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.ViewCount != 2 {
		t.Errorf("Expected view count 2, got %d", reloaded.ViewCount)
	}
}

func TestArticleUpdateFeaturedImage(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article := insertTestArticle(t, repo, "Test Article", "test-article", ArticlePublished, 100)

	if err := repo.UpdateFeaturedImage(article.ID, "https://cdn.example.com/new.png"); err != nil {
		t.Fatal(err)
	}

	reloaded, err := repo.GetByID(article.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.FeaturedImageURL != "https://cdn.example.com/new.png" {
		t.Errorf("Expected updated image URL, got '%s'", reloaded.FeaturedImageURL)
	}

	// An empty URL clears the field.
	if err := repo.UpdateFeaturedImage(article.ID, ""); err != nil {
		t.Fatal(err)
	}
	reloaded, err = repo.GetByID(article.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.FeaturedImageURL != "" {
		t.Errorf("Expected cleared image URL, got '%s'", reloaded.FeaturedImageURL)
	}
}

func TestArticleClearFeaturedImagesBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	old := insertTestArticle(t, repo, "Old Post", "old-post", ArticlePublished, 100)
	recent := insertTestArticle(t, repo, "Recent Post", "recent-post", ArticlePublished, 100)
	draft := insertTestArticle(t, repo, "Draft Post", "draft-post", ArticleDraft, 100)

	for _, article := range []*Article{old, recent, draft} {
		if err := repo.UpdateFeaturedImage(article.ID, "https://cdn.example.com/img.png"); err != nil {
			t.Fatal(err)
		}
	}

	// Backdate the old post past the cutoff.
	yesterday := time.Now().UTC().Add(-48 * time.Hour)
	if _, err := db.Exec(`UPDATE articles SET published_at = ? WHERE id = ?`, yesterday, old.ID); err != nil {
		t.Fatal(err)
	}

	removed, err := repo.ClearFeaturedImagesBefore(time.Now().UTC().Add(-24 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 cleared image, got %d", removed)
	}

	reloaded, err := repo.GetByID(old.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.FeaturedImageURL != "" {
		t.Errorf("Expected old post image cleared, got '%s'", reloaded.FeaturedImageURL)
	}

	for _, article := range []*Article{recent, draft} {
		reloaded, err := repo.GetByID(article.ID)
		if err != nil {
			t.Fatal(err)
		}
		if reloaded.FeaturedImageURL == "" {
			t.Errorf("Expected image kept on '%s'", reloaded.Slug)
		}
	}
}

func TestArticleDeleteEmpty(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	insertTestArticle(t, repo, "Kept", "kept", ArticlePublished, 100)
	insertTestArticle(t, repo, "Empty", "empty", ArticleDraft, 0)

	removed, err := repo.DeleteEmpty()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removed article, got %d", removed)
	}

	remaining, err := repo.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || remaining[0].Slug != "kept" {
		t.Errorf("Expected only 'kept' to remain, got %v", remaining)
	}
}

func TestArticleStats(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	// Empty database yields zeroes, not an error.
	total, published, draft, views, err := repo.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || published != 0 || draft != 0 || views != 0 {
		t.Errorf("Expected all-zero stats on empty database, got %d/%d/%d/%d", total, published, draft, views)
	}

	article := insertTestArticle(t, repo, "One", "one", ArticlePublished, 10)
	insertTestArticle(t, repo, "Two", "two", ArticleDraft, 10)
	if err := repo.IncrementViewCount(article.ID); err != nil {
		t.Fatal(err)
	}

	total, published, draft, views, err = repo.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || published != 1 || draft != 1 || views != 1 {
		t.Errorf("Unexpected stats %d/%d/%d/%d", total, published, draft, views)
	}
}
