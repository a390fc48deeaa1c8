package trends

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Client fetches trending searches from the Google Trends RSS feed.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	parser     *gofeed.Parser
}

func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
	}
}

// Fetch returns up to count trending searches for the given region. An empty
// result means the upstream feed had nothing usable; callers treat that as
// "no topics", not an error.
func (c *Client) Fetch(ctx context.Context, count int, region string) ([]TrendingSearch, error) {
	data, err := c.fetchFeed(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trend feed: %w", err)
	}

	feed, err := c.parser.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse trend feed: %w", err)
	}

	searches := make([]TrendingSearch, 0, count)
	for _, item := range feed.Items {
		if len(searches) >= count {
			break
		}

		keyword := strings.TrimSpace(item.Title)
		if keyword == "" {
			continue
		}

		score := approxTraffic(item)
		searches = append(searches, TrendingSearch{
			Keyword:      keyword,
			Score:        score,
			SearchVolume: int(score),
		})
	}

	slog.Debug("Trend feed fetched", "region", region, "items", len(feed.Items), "selected", len(searches))

	return searches, nil
}

func (c *Client) fetchFeed(ctx context.Context, region string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	feedURL := c.baseURL + "?geo=" + url.QueryEscape(region)

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// approxTraffic extracts the ht:approx_traffic extension value ("200,000+")
// as a number. Missing or malformed values yield 0.
func approxTraffic(item *gofeed.Item) float64 {
	ns, ok := item.Extensions["ht"]
	if !ok {
		return 0
	}

	exts, ok := ns["approx_traffic"]
	if !ok || len(exts) == 0 {
		return 0
	}

	digits := strings.Builder{}
	for _, r := range exts[0].Value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	value, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0
	}
	return value
}
