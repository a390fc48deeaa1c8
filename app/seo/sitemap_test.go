package seo

import (
	"strings"
	"testing"
	"time"

	"github.com/rpate/blog-wire/app/database"
)

type stubArticleRepo struct {
	database.ArticleRepository
	published []database.Article
	err       error
}

func (s *stubArticleRepo) GetPublished(limit, offset int) ([]database.Article, error) {
	return s.published, s.err
}

func TestSitemapGenerate(t *testing.T) {
	published := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	repo := &stubArticleRepo{published: []database.Article{
		{
			Slug:        "first-post",
			PublishedAt: &published,
			UpdatedAt:   published,
		},
	}}

	sitemap := NewSitemap("blog-wire.com", repo)

	xml, err := sitemap.Generate()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Expected XML declaration at the start")
	}
	if !strings.Contains(xml, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Error("Expected sitemap urlset namespace")
	}
	if !strings.Contains(xml, "<loc>https://blog-wire.com/</loc>") {
		t.Error("Expected homepage entry")
	}
	if !strings.Contains(xml, "<loc>https://blog-wire.com/blog/first-post</loc>") {
		t.Error("Expected article entry")
	}
	if !strings.Contains(xml, "<lastmod>2025-08-15</lastmod>") {
		t.Error("Expected article lastmod date")
	}
	if !strings.HasSuffix(strings.TrimSpace(xml), "</urlset>") {
		t.Error("Expected closing urlset tag")
	}
}

func TestSitemapEscapesSlugs(t *testing.T) {
	published := time.Now().UTC()
	repo := &stubArticleRepo{published: []database.Article{
		{Slug: "cats&dogs", PublishedAt: &published, UpdatedAt: published},
	}}

	sitemap := NewSitemap("blog-wire.com", repo)

	xml, err := sitemap.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(xml, "cats&amp;dogs") {
		t.Error("Expected ampersand to be XML-escaped")
	}
}

func TestRobots(t *testing.T) {
	sitemap := NewSitemap("blog-wire.com", &stubArticleRepo{})

	robots := sitemap.Robots()

	if !strings.Contains(robots, "User-agent: *") {
		t.Error("Expected wildcard user-agent")
	}
	if !strings.Contains(robots, "Disallow: /api/") {
		t.Error("Expected /api/ to be disallowed")
	}
	if !strings.Contains(robots, "Sitemap: https://blog-wire.com/sitemap.xml") {
		t.Error("Expected sitemap reference")
	}
}
