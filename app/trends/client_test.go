package trends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const trendFeedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:ht="https://trends.google.com/trending/rss">
  <channel>
    <title>Daily Search Trends</title>
    <item>
      <title>solar eclipse 2025</title>
      <ht:approx_traffic>200,000+</ht:approx_traffic>
      <pubDate>Mon, 01 Sep 2025 08:00:00 -0700</pubDate>
    </item>
    <item>
      <title>electric bikes</title>
      <ht:approx_traffic>50,000+</ht:approx_traffic>
      <pubDate>Mon, 01 Sep 2025 07:00:00 -0700</pubDate>
    </item>
    <item>
      <title>quiet luxury</title>
      <pubDate>Mon, 01 Sep 2025 06:00:00 -0700</pubDate>
    </item>
  </channel>
</rss>`

func TestFetchTrendingSearches(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.String()
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(trendFeedFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Test Agent", server.Client())

	searches, err := client.Fetch(context.Background(), 10, "US")
	if err != nil {
		t.Fatal(err)
	}

	if requestedPath != "/?geo=US" {
		t.Errorf("Expected request path '/?geo=US', got '%s'", requestedPath)
	}

	if len(searches) != 3 {
		t.Fatalf("Expected 3 searches, got %d", len(searches))
	}

	if searches[0].Keyword != "solar eclipse 2025" {
		t.Errorf("Expected keyword 'solar eclipse 2025', got '%s'", searches[0].Keyword)
	}
	if searches[0].Score != 200000 {
		t.Errorf("Expected score 200000, got %f", searches[0].Score)
	}
	if searches[0].SearchVolume != 200000 {
		t.Errorf("Expected search volume 200000, got %d", searches[0].SearchVolume)
	}

	if searches[1].Score != 50000 {
		t.Errorf("Expected score 50000, got %f", searches[1].Score)
	}

	// No traffic extension on the third item
	if searches[2].Score != 0 {
		t.Errorf("Expected score 0 for item without traffic data, got %f", searches[2].Score)
	}
}

func TestFetchHonorsCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trendFeedFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Test Agent", server.Client())

	searches, err := client.Fetch(context.Background(), 2, "US")
	if err != nil {
		t.Fatal(err)
	}

	if len(searches) != 2 {
		t.Errorf("Expected 2 searches, got %d", len(searches))
	}
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "Test Agent", server.Client())

	if _, err := client.Fetch(context.Background(), 5, "US"); err == nil {
		t.Error("Expected error on upstream failure")
	}
}
