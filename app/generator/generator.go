package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpate/blog-wire/app/database"
)

const (
	temperature = 0.8
	// Large enough for a 2000-3500 word article in one completion.
	maxTokens = 16384
)

// Generator turns a keyword into a fully-populated draft article and persists
// accepted drafts.
type Generator struct {
	chat        ChatClient
	images      ImageFetcher
	articleRepo database.ArticleRepository
	author      string
}

func NewGenerator(chat ChatClient, images ImageFetcher, articleRepo database.ArticleRepository, author string) *Generator {
	return &Generator{
		chat:        chat,
		images:      images,
		articleRepo: articleRepo,
		author:      author,
	}
}

// Generate drafts an article for the referenced topic. Any transport or API
// failure is returned as an error; there is no retry. A nil ChatClient means
// generation is disabled by configuration.
func (g *Generator) Generate(ctx context.Context, ref TopicRef, minWords, maxWords int) (*Draft, error) {
	if g.chat == nil {
		return nil, fmt.Errorf("content generation disabled: no API key configured")
	}

	keyword := ref.Keyword()

	systemPrompt := buildSystemPrompt(g.author)
	userPrompt := buildUserPrompt(keyword, g.author, minWords, maxWords)

	response, err := g.chat.Complete(ctx, systemPrompt, userPrompt, temperature, maxTokens)
	if err != nil {
		return nil, fmt.Errorf("generation failed for %q: %w", keyword, err)
	}

	draft := ParseResponse(response, keyword)

	slog.Info("Draft generated",
		"keyword", keyword, "title", draft.Title, "word_count", draft.WordCount)

	if g.images != nil {
		draft.FeaturedImageURL = g.images.GetFeaturedImage(ctx, draft.Title, draft.MetaKeywords)
	}

	return draft, nil
}

// Persist stores a draft as an article. A slug collision is resolved by
// appending the current Unix timestamp. The insert runs in a transaction; on
// failure nothing is written and the error is returned.
func (g *Generator) Persist(draft *Draft, topicID *int64, status string) (*database.Article, error) {
	slug := Slugify(draft.Title)

	exists, err := g.articleRepo.SlugExists(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
	}

	var publishedAt *time.Time
	if status == database.ArticlePublished {
		now := time.Now().UTC()
		publishedAt = &now
	}

	article, err := g.articleRepo.Insert(database.NewArticle{
		Title:            draft.Title,
		Slug:             slug,
		Content:          draft.Content,
		Excerpt:          draft.Excerpt,
		MetaDescription:  draft.MetaDescription,
		MetaKeywords:     draft.MetaKeywords,
		FeaturedImageURL: draft.FeaturedImageURL,
		Status:           status,
		PublishedAt:      publishedAt,
		WordCount:        draft.WordCount,
		TopicID:          topicID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist article: %w", err)
	}

	slog.Info("Article saved", "id", article.ID, "title", article.Title, "slug", article.Slug)

	return article, nil
}
