package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rpate/blog-wire/app/cfg"
	"github.com/rpate/blog-wire/app/database"
	"github.com/rpate/blog-wire/app/pipeline"
	"github.com/rpate/blog-wire/app/seo"
	"github.com/rpate/blog-wire/app/tasks"
)

const defaultPageSize = 10
const maxPageSize = 50

func NewHandler(config *cfg.Cfg, articleRepo database.ArticleRepository,
	topicRepo database.TopicRepository, linkRepo database.AffiliateLinkRepository,
	lockRepo database.JobLockRepository, pl PipelineInterface,
	scheduler tasks.TaskSchedulerInterface, schema *seo.Schema, sitemap *seo.Sitemap) *Handler {
	return &Handler{
		articleRepo: articleRepo,
		topicRepo:   topicRepo,
		linkRepo:    linkRepo,
		lockRepo:    lockRepo,
		pipeline:    pl,
		scheduler:   scheduler,
		schema:      schema,
		sitemap:     sitemap,
		markdown:    NewMarkdownRenderer(),
		postsPerDay: config.PostsPerDay,
		version:     config.Version,
	}
}

// ListPosts serves the paginated published article index.
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPageSize)))
	if perPage < 1 || perPage > maxPageSize {
		perPage = defaultPageSize
	}

	articles, err := h.articleRepo.GetPublished(perPage, (page-1)*perPage)
	if err != nil {
		slog.Error("Database error", "operation", "get_published", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.articleRepo.GetPublishedCount()
	if err != nil {
		slog.Error("Database error", "operation", "count_published", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	posts := make([]map[string]interface{}, 0, len(articles))
	for i := range articles {
		posts = append(posts, summarizeArticle(&articles[i]))
	}

	totalPages := (total + perPage - 1) / perPage

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"pagination": gin.H{
			"page":        page,
			"per_page":    perPage,
			"total":       total,
			"total_pages": totalPages,
			"has_next":    page < totalPages,
			"has_prev":    page > 1,
		},
		"schema": h.schema.WebSite(),
	})
}

// GetPost serves one published article with rendered HTML and its structured
// data. Each request counts as a view.
func (h *Handler) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	article, err := h.articleRepo.GetBySlug(slug)
	if err != nil {
		slog.Error("Database error", "operation", "get_by_slug", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if article == nil || article.Status != database.ArticlePublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := h.articleRepo.IncrementViewCount(article.ID); err != nil {
		slog.Warn("Failed to increment view count", "slug", slug, "error", err)
	}

	contentHTML, err := h.markdown.Run(article.Content)
	if err != nil {
		slog.Error("Markdown rendering failed", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rendering error"})
		return
	}

	post := summarizeArticle(article)
	post["content_markdown"] = article.Content
	post["content_html"] = contentHTML
	post["meta_description"] = article.MetaDescription
	post["meta_keywords"] = article.MetaKeywords
	post["view_count"] = article.ViewCount + 1

	c.JSON(http.StatusOK, gin.H{
		"post": post,
		"schema": gin.H{
			"article":     h.schema.BlogPosting(article),
			"breadcrumbs": h.schema.Breadcrumbs(article),
		},
	})
}

func (h *Handler) GetSitemap(c *gin.Context) {
	xml, err := h.sitemap.Generate()
	if err != nil {
		slog.Error("Sitemap generation failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, xml)
}

func (h *Handler) GetRobots(c *gin.Context) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, h.sitemap.Robots())
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.articleRepo.GetPublishedCount(); err == nil {
		health["published_posts"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.pipeline.GetStats()
	if err != nil {
		slog.Error("Failed to load stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// APIGenerate triggers content generation. With a keyword the article is
// generated synchronously; without one a full daily batch is queued on the
// scheduler.
func (h *Handler) APIGenerate(c *gin.Context) {
	var req struct {
		Keyword string `json:"keyword"`
		Count   int    `json:"count"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	if req.Keyword != "" {
		article, err := h.pipeline.GenerateSingle(c.Request.Context(), req.Keyword)
		if err != nil {
			if errors.Is(err, pipeline.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			slog.Error("Single post generation failed", "keyword", req.Keyword, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Post generated",
			"post":    summarizeArticle(article),
		})
		return
	}

	count := req.Count
	if count <= 0 {
		count = h.postsPerDay
	}

	task := tasks.NewGeneratePostsTask(h.pipeline, h.lockRepo, count)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue generation task", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Task queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Generation run queued",
		"task_id": task.GetID(),
		"count":   count,
	})
}

func (h *Handler) APIListPosts(c *gin.Context) {
	articles, err := h.articleRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_all_posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	posts := make([]map[string]interface{}, 0, len(articles))
	for i := range articles {
		post := summarizeArticle(&articles[i])
		post["status"] = articles[i].Status
		post["view_count"] = articles[i].ViewCount
		post["created_at"] = articles[i].CreatedAt
		posts = append(posts, post)
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

func (h *Handler) APIDeletePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if err := h.articleRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		slog.Error("Failed to delete post", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted", "id": id})
}

// APICleanupPosts deletes articles with no content.
func (h *Handler) APICleanupPosts(c *gin.Context) {
	removed, err := h.articleRepo.DeleteEmpty()
	if err != nil {
		slog.Error("Failed to delete empty posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Empty posts deleted", "removed": removed})
}

// APIRefreshImages re-resolves featured images that are missing, placeholders
// or expired ephemeral links.
func (h *Handler) APIRefreshImages(c *gin.Context) {
	refreshed, err := h.pipeline.RefreshImages(c.Request.Context())
	if err != nil {
		slog.Error("Image refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Featured images refreshed", "refreshed": refreshed})
}

// APIRemoveOldImages clears featured images from posts published before
// today, so stale posts render without broken image links.
func (h *Handler) APIRemoveOldImages(c *gin.Context) {
	cutoff := time.Now().UTC().Truncate(24 * time.Hour)

	removed, err := h.pipeline.RemoveOldImages(cutoff)
	if err != nil {
		slog.Error("Failed to remove old images", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Old featured images removed", "removed": removed})
}

func (h *Handler) APIListTopics(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	topics, err := h.topicRepo.GetRecent(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_topics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]map[string]interface{}, 0, len(topics))
	for _, topic := range topics {
		out = append(out, map[string]interface{}{
			"id":            topic.ID,
			"keyword":       topic.Keyword,
			"search_volume": topic.SearchVolume,
			"trend_score":   topic.TrendScore,
			"status":        topic.Status,
			"discovered_at": topic.DiscoveredAt,
			"processed_at":  topic.ProcessedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"topics": out,
		"total":  len(out),
	})
}

func (h *Handler) APIListAffiliateLinks(c *gin.Context) {
	links, err := h.linkRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_links", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]map[string]interface{}, 0, len(links))
	for _, link := range links {
		out = append(out, map[string]interface{}{
			"id":          link.ID,
			"keyword":     link.Keyword,
			"url":         link.URL,
			"platform":    link.Platform,
			"active":      link.Active,
			"click_count": link.ClickCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"links": out,
		"total": len(out),
	})
}

func (h *Handler) APIUpsertAffiliateLink(c *gin.Context) {
	var req struct {
		Keyword  string `json:"keyword" binding:"required"`
		URL      string `json:"url" binding:"required"`
		Platform string `json:"platform"`
		Active   *bool  `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword and url are required"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	link, err := h.linkRepo.Upsert(req.Keyword, req.URL, req.Platform, active)
	if err != nil {
		slog.Error("Failed to save affiliate link", "keyword", req.Keyword, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Affiliate link saved",
		"link": map[string]interface{}{
			"id":       link.ID,
			"keyword":  link.Keyword,
			"url":      link.URL,
			"platform": link.Platform,
			"active":   link.Active,
		},
	})
}

func (h *Handler) APITrackClick(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	if err := h.linkRepo.TrackClick(id); err != nil {
		slog.Error("Failed to track click", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Click tracked", "id": id})
}

func summarizeArticle(article *database.Article) map[string]interface{} {
	return map[string]interface{}{
		"id":                 article.ID,
		"title":              article.Title,
		"slug":               article.Slug,
		"excerpt":            article.Excerpt,
		"featured_image_url": article.FeaturedImageURL,
		"word_count":         article.WordCount,
		"published_at":       article.PublishedAt,
	}
}
