package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./blog_wire.db" description:"Path to the SQLite database file"`

	// HTTP server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for the blog (e.g., https://blog-wire.com)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for management endpoints (optional)"`

	// OpenAI
	OpenAIAPIKey string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key (content generation disabled when empty)"`
	OpenAIModel  string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o" description:"OpenAI model used for article generation"`

	// Trends
	TrendsBaseUrl string `long:"trends-base-url" env:"TRENDS_BASE_URL" default:"https://trends.google.com/trending/rss" description:"Google Trends RSS endpoint"`
	TrendsRegion  string `long:"trends-region" env:"TRENDS_REGION" default:"US" description:"Geographic region for trending searches"`

	// Generation settings
	PostsPerDay   int    `long:"posts-per-day" env:"POSTS_PER_DAY" default:"1" description:"Number of articles to publish per scheduled run"`
	MinWordCount  int    `long:"min-word-count" env:"MIN_WORD_COUNT" default:"2000" description:"Lower bound of the requested article word count"`
	MaxWordCount  int    `long:"max-word-count" env:"MAX_WORD_COUNT" default:"3500" description:"Upper bound of the requested article word count"`
	MaxAffiliates int    `long:"max-affiliate-links" env:"MAX_AFFILIATE_LINKS" default:"3" description:"Maximum affiliate links injected per article"`
	ScheduleCron  string `long:"schedule-cron" env:"SCHEDULE_CRON" default:"0 8 * * *" description:"Cron expression for the daily generation run"`
	TopicsFile    string `long:"topics-file" env:"TOPICS_FILE" default:"./custom_topics.txt" description:"Fallback topics file used when the trend feed is empty"`
	LinksFile     string `long:"links-file" env:"LINKS_FILE" default:"./affiliate_links.yml" description:"YAML file with affiliate links registered at startup"`

	// Images
	UnsplashAccessKey string `long:"unsplash-access-key" env:"UNSPLASH_ACCESS_KEY" description:"Unsplash API access key (image search skipped when empty)"`
	DalleEnabled      bool   `long:"dalle-enabled" env:"DALLE_ENABLED" description:"Enable DALL-E image generation fallback"`
	DalleQuality      string `long:"dalle-quality" env:"DALLE_QUALITY" default:"standard" description:"DALL-E image quality (standard or hd)"`
	PlaceholderURL    string `long:"placeholder-url" env:"IMAGE_PLACEHOLDER_URL" description:"Placeholder image URL used when no image can be resolved"`

	// Blog identity
	BlogName   string `long:"blog-name" env:"BLOG_NAME" default:"Blog Wire" description:"Blog display name"`
	BlogDomain string `long:"blog-domain" env:"BLOG_DOMAIN" default:"blog-wire.com" description:"Blog domain used in SEO markup and sitemap"`
	SiteAuthor string `long:"site-author" env:"SITE_AUTHOR" default:"Ryan Pate" description:"Article author name used in schema markup"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Blog Wire/1.0" description:"User agent string for outbound HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		APIAccessKey:      raw.APIAccessKey,
		OpenAIAPIKey:      raw.OpenAIAPIKey,
		OpenAIModel:       raw.OpenAIModel,
		TrendsBaseUrl:     raw.TrendsBaseUrl,
		TrendsRegion:      raw.TrendsRegion,
		PostsPerDay:       raw.PostsPerDay,
		MinWordCount:      raw.MinWordCount,
		MaxWordCount:      raw.MaxWordCount,
		MaxAffiliates:     raw.MaxAffiliates,
		ScheduleCron:      raw.ScheduleCron,
		TopicsFile:        raw.TopicsFile,
		LinksFile:         raw.LinksFile,
		UnsplashAccessKey: raw.UnsplashAccessKey,
		DalleEnabled:      raw.DalleEnabled,
		DalleQuality:      raw.DalleQuality,
		PlaceholderURL:    raw.PlaceholderURL,
		BlogName:          raw.BlogName,
		BlogDomain:        raw.BlogDomain,
		SiteAuthor:        raw.SiteAuthor,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}
