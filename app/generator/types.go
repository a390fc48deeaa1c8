package generator

import (
	"context"

	"github.com/rpate/blog-wire/app/database"
)

// Draft is the in-memory output of content generation, not yet persisted.
type Draft struct {
	Keyword          string
	Title            string
	Content          string
	Excerpt          string
	MetaDescription  string
	MetaKeywords     string
	FeaturedImageURL string
	WordCount        int
}

// TopicRef names the subject of a generation request: either a raw keyword or
// a persisted topic. The two variants replace the original's duck-typed
// "string or topic" parameter.
type TopicRef struct {
	keyword  string
	topicID  int64
	score    float64
	resolved bool
}

func RawKeyword(keyword string) TopicRef {
	return TopicRef{keyword: keyword}
}

func ResolvedTopic(topic database.Topic) TopicRef {
	return TopicRef{
		keyword:  topic.Keyword,
		topicID:  topic.ID,
		score:    topic.TrendScore,
		resolved: true,
	}
}

// Keyword returns the subject keyword regardless of variant.
func (r TopicRef) Keyword() string {
	return r.keyword
}

// TopicID returns the backing topic's ID when the reference is resolved.
func (r TopicRef) TopicID() (int64, bool) {
	return r.topicID, r.resolved
}

// ChatClient is the text-generation service contract.
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
}

// ImageFetcher resolves a featured image URL for an article. Implementations
// never fail; they fall back to a placeholder.
type ImageFetcher interface {
	GetFeaturedImage(ctx context.Context, title, keywords string) string
}
