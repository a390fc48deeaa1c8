package seo

import (
	"strings"
	"time"

	"github.com/rpate/blog-wire/app/database"
)

// Schema builds schema.org JSON-LD markup for blog pages.
type Schema struct {
	blogName   string
	blogDomain string
	siteAuthor string
}

func NewSchema(blogName, blogDomain, siteAuthor string) *Schema {
	return &Schema{
		blogName:   blogName,
		blogDomain: blogDomain,
		siteAuthor: siteAuthor,
	}
}

func (s *Schema) baseURL() string {
	return "https://" + s.blogDomain
}

// BlogPosting returns Article markup for a single post.
func (s *Schema) BlogPosting(article *database.Article) map[string]any {
	schema := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    article.Title,
		"description": firstNonEmpty(article.MetaDescription, article.Excerpt),
		"author": map[string]any{
			"@type": "Person",
			"name":  s.siteAuthor,
			"url":   s.baseURL(),
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  s.blogName,
			"url":   s.baseURL(),
			"logo": map[string]any{
				"@type": "ImageObject",
				"url":   s.baseURL() + "/static/logo.png",
			},
		},
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   s.baseURL() + "/blog/" + article.Slug,
		},
		"wordCount":           article.WordCount,
		"inLanguage":          "en-US",
		"isAccessibleForFree": true,
	}

	if article.PublishedAt != nil {
		schema["datePublished"] = article.PublishedAt.Format(time.RFC3339)
		schema["dateModified"] = article.UpdatedAt.Format(time.RFC3339)
	}

	if article.FeaturedImageURL != "" {
		schema["image"] = map[string]any{
			"@type":   "ImageObject",
			"url":     article.FeaturedImageURL,
			"width":   1200,
			"height":  630,
			"caption": article.Title,
		}
	}

	if article.MetaKeywords != "" {
		var keywords []string
		for _, k := range strings.Split(article.MetaKeywords, ",") {
			if trimmed := strings.TrimSpace(k); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
		schema["keywords"] = keywords
	}

	return schema
}

// Breadcrumbs returns BreadcrumbList markup for a post page.
func (s *Schema) Breadcrumbs(article *database.Article) map[string]any {
	return map[string]any{
		"@context": "https://schema.org",
		"@type":    "BreadcrumbList",
		"itemListElement": []map[string]any{
			{
				"@type":    "ListItem",
				"position": 1,
				"name":     "Home",
				"item":     s.baseURL() + "/",
			},
			{
				"@type":    "ListItem",
				"position": 2,
				"name":     article.Title,
				"item":     s.baseURL() + "/blog/" + article.Slug,
			},
		},
	}
}

// WebSite returns site-level markup for the homepage.
func (s *Schema) WebSite() map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        s.blogName,
		"url":         s.baseURL(),
		"description": "Trending topics and insights from around the web",
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  s.blogName,
			"logo": map[string]any{
				"@type": "ImageObject",
				"url":   s.baseURL() + "/static/logo.png",
			},
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
