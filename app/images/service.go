package images

import (
	"context"
	"log/slog"
	"strings"
)

// Searcher finds an existing photo for a query; empty result means no match.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// ImageGenerator produces a new image for a title.
type ImageGenerator interface {
	Generate(ctx context.Context, title string) (string, error)
}

// Service resolves a featured image for an article, in priority order:
// photo search, generation, configured placeholder. Image resolution is
// decoration; it never fails outward and never blocks publication.
type Service struct {
	searcher       Searcher
	imageGenerator ImageGenerator
	placeholderURL string
}

// NewService builds the image service. searcher and imageGenerator may be nil
// when the corresponding credentials are not configured.
func NewService(searcher Searcher, imageGenerator ImageGenerator, placeholderURL string) *Service {
	return &Service{
		searcher:       searcher,
		imageGenerator: imageGenerator,
		placeholderURL: placeholderURL,
	}
}

func (s *Service) GetFeaturedImage(ctx context.Context, title, keywords string) string {
	if s.searcher != nil {
		query := buildSearchQuery(title, keywords)
		imageURL, err := s.searcher.Search(ctx, query)
		if err != nil {
			slog.Warn("Image search failed", "title", title, "error", err)
		} else if imageURL != "" {
			return imageURL
		}
	}

	if s.imageGenerator != nil {
		imageURL, err := s.imageGenerator.Generate(ctx, title)
		if err != nil {
			slog.Warn("Image generation failed", "title", title, "error", err)
		} else if imageURL != "" {
			return imageURL
		}
	}

	if s.placeholderURL != "" {
		slog.Debug("Using placeholder image", "title", title)
	} else {
		slog.Debug("No image resolved", "title", title)
	}

	return s.placeholderURL
}

// stopWords are dropped from titles when building the photo search query.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "about": {}, "how": {}, "what": {}, "why": {}, "when": {},
	"where": {}, "which": {}, "who": {}, "best": {}, "guide": {}, "tips": {},
	"everything": {}, "complete": {}, "ultimate": {}, "your": {}, "you": {},
	"need": {}, "know": {},
}

// buildSearchQuery extracts significant title words and up to two meta
// keywords into a short photo search query.
func buildSearchQuery(title, keywords string) string {
	var queryWords []string

	for _, word := range strings.Fields(title) {
		lower := strings.ToLower(word)
		if _, ok := stopWords[lower]; ok {
			continue
		}
		if len(lower) <= 3 {
			continue
		}
		queryWords = append(queryWords, lower)
		if len(queryWords) >= 5 {
			break
		}
	}

	if keywords != "" {
		parts := strings.Split(keywords, ",")
		if len(parts) > 2 {
			parts = parts[:2]
		}
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				queryWords = append(queryWords, trimmed)
			}
		}
	}

	query := strings.Join(queryWords, " ")
	if len(query) > 100 {
		query = query[:100]
	}

	return query
}
