package trends

// TrendingSearch is a candidate keyword from the trend feed. Score is an
// opaque non-negative number used only for ordering; the feed guarantees no
// particular scale.
type TrendingSearch struct {
	Keyword      string
	Score        float64
	SearchVolume int
}
