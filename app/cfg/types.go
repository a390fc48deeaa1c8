package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// HTTP server
	Port         string
	BaseUrl      string
	APIAccessKey string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string

	// Trends
	TrendsBaseUrl string
	TrendsRegion  string

	// Generation settings
	PostsPerDay   int
	MinWordCount  int
	MaxWordCount  int
	MaxAffiliates int
	ScheduleCron  string
	TopicsFile    string
	LinksFile     string

	// Images
	UnsplashAccessKey string
	DalleEnabled      bool
	DalleQuality      string
	PlaceholderURL    string

	// Blog identity
	BlogName   string
	BlogDomain string
	SiteAuthor string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
