package seo

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/rpate/blog-wire/app/database"
)

// Sitemap renders the XML sitemap and robots.txt for published articles.
type Sitemap struct {
	blogDomain  string
	articleRepo database.ArticleRepository
}

func NewSitemap(blogDomain string, articleRepo database.ArticleRepository) *Sitemap {
	return &Sitemap{
		blogDomain:  blogDomain,
		articleRepo: articleRepo,
	}
}

func (s *Sitemap) baseURL() string {
	return "https://" + s.blogDomain
}

// Generate returns the sitemap XML document as a string.
func (s *Sitemap) Generate() (string, error) {
	articles, err := s.articleRepo.GetPublished(50000, 0)
	if err != nil {
		return "", fmt.Errorf("failed to load published articles: %w", err)
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	s.writeURL(&b, s.baseURL()+"/", time.Now().UTC(), "daily", "1.0")

	for _, article := range articles {
		lastMod := article.UpdatedAt
		if article.PublishedAt != nil && article.PublishedAt.After(lastMod) {
			lastMod = *article.PublishedAt
		}
		s.writeURL(&b, s.baseURL()+"/blog/"+article.Slug, lastMod, "monthly", "0.8")
	}

	b.WriteString("</urlset>\n")
	return b.String(), nil
}

func (s *Sitemap) writeURL(b *strings.Builder, loc string, lastMod time.Time, changeFreq, priority string) {
	b.WriteString("  <url>\n")
	b.WriteString("    <loc>" + escapeXML(loc) + "</loc>\n")
	b.WriteString("    <lastmod>" + lastMod.Format("2006-01-02") + "</lastmod>\n")
	b.WriteString("    <changefreq>" + changeFreq + "</changefreq>\n")
	b.WriteString("    <priority>" + priority + "</priority>\n")
	b.WriteString("  </url>\n")
}

// Robots returns the robots.txt body pointing crawlers at the sitemap.
func (s *Sitemap) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + s.baseURL() + "/sitemap.xml\n")
	return b.String()
}

func escapeXML(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
