package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultUnsplashURL is the Unsplash photo search endpoint.
const DefaultUnsplashURL = "https://api.unsplash.com/search/photos"

// UnsplashClient searches Unsplash for article header photos.
type UnsplashClient struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

func NewUnsplashClient(baseURL, accessKey string, httpClient *http.Client) *UnsplashClient {
	return &UnsplashClient{
		baseURL:    baseURL,
		accessKey:  accessKey,
		httpClient: httpClient,
	}
}

type unsplashResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// Search returns the first landscape photo URL matching the query, or an
// empty string when nothing was found.
func (c *UnsplashClient) Search(ctx context.Context, query string) (string, error) {
	if c.accessKey == "" {
		return "", fmt.Errorf("unsplash access key not configured")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")
	params.Set("content_filter", "high")

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("unsplash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read unsplash response: %w", err)
	}

	var result unsplashResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode unsplash response: %w", err)
	}

	if len(result.Results) == 0 {
		return "", nil
	}

	photo := result.Results[0]

	// Photographer credit is an Unsplash attribution requirement.
	slog.Info("Unsplash photo selected",
		"photographer", photo.User.Name, "profile", photo.User.Links.HTML)

	return photo.URLs.Regular, nil
}
