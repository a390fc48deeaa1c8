package dedup

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/rpate/blog-wire/app/database"
)

const (
	// TitleSimilarityThreshold marks a candidate title as a duplicate of an
	// existing article.
	TitleSimilarityThreshold = 0.75
	// TopicSimilarityThreshold marks a keyword as already covered by an
	// existing title.
	TopicSimilarityThreshold = 0.70
	// WordOverlapThreshold marks a keyword as covered when enough of its
	// words appear in an existing title.
	WordOverlapThreshold = 0.60
)

// ArticleSource provides the stored articles the filter compares against.
type ArticleSource interface {
	GetAll() ([]database.Article, error)
}

// Filter decides whether a candidate keyword or generated title is too close
// to already-published content. Both checks are linear scans over the stored
// articles, which is fine at the scale of a single blog.
type Filter struct {
	articles ArticleSource
}

func NewFilter(articles ArticleSource) *Filter {
	return &Filter{articles: articles}
}

// IsTitleTooSimilar reports whether the candidate title's character-sequence
// similarity to any stored title reaches the duplicate threshold. The
// matching article is returned as evidence.
func (f *Filter) IsTitleTooSimilar(title string) (bool, *database.Article, error) {
	existing, err := f.articles.GetAll()
	if err != nil {
		return false, nil, fmt.Errorf("failed to load articles: %w", err)
	}

	candidate := strings.ToLower(title)
	for i := range existing {
		similarity := SimilarityRatio(candidate, strings.ToLower(existing[i].Title))
		if similarity >= TitleSimilarityThreshold {
			slog.Warn("Title too similar to existing article",
				"title", title, "existing", existing[i].Title, "similarity", similarity)
			return true, &existing[i], nil
		}
	}

	return false, nil, nil
}

// IsTopicCovered reports whether the keyword is redundant against existing
// titles, by character similarity or by word overlap.
func (f *Filter) IsTopicCovered(keyword string) (bool, *database.Article, error) {
	existing, err := f.articles.GetAll()
	if err != nil {
		return false, nil, fmt.Errorf("failed to load articles: %w", err)
	}

	keywordLower := strings.ToLower(keyword)
	keywordWords := splitWords(keywordLower)

	for i := range existing {
		titleLower := strings.ToLower(existing[i].Title)

		similarity := SimilarityRatio(keywordLower, titleLower)
		overlap := wordOverlap(keywordWords, splitWords(titleLower))

		if similarity >= TopicSimilarityThreshold || overlap >= WordOverlapThreshold {
			slog.Info("Topic already covered",
				"keyword", keyword, "existing", existing[i].Title,
				"similarity", similarity, "overlap", overlap)
			return true, &existing[i], nil
		}
	}

	return false, nil, nil
}

// SimilarityRatio computes the Ratcliff/Obershelp character-sequence ratio
// between two strings: 2*M / T where M is the number of matching characters
// and T the total length of both strings. Range [0, 1].
func SimilarityRatio(a, b string) float64 {
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}

func splitWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		words[w] = struct{}{}
	}
	return words
}

// wordOverlap is |keyword words ∩ title words| / |keyword words|.
func wordOverlap(keywordWords, titleWords map[string]struct{}) float64 {
	if len(keywordWords) == 0 || len(titleWords) == 0 {
		return 0
	}

	common := 0
	for w := range keywordWords {
		if _, ok := titleWords[w]; ok {
			common++
		}
	}

	return float64(common) / float64(len(keywordWords))
}
