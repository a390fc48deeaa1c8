package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUnsplashSearch(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"urls":{"regular":"https://images.unsplash.com/photo-1"},"user":{"name":"Jane Doe","links":{"html":"https://unsplash.com/@janedoe"}}}]}`))
	}))
	defer server.Close()

	client := NewUnsplashClient(server.URL, "test-key", server.Client())

	url, err := client.Search(context.Background(), "remote work")
	if err != nil {
		t.Fatal(err)
	}

	if url != "https://images.unsplash.com/photo-1" {
		t.Errorf("Expected photo URL, got '%s'", url)
	}
	if gotAuth != "Client-ID test-key" {
		t.Errorf("Expected Client-ID authorization header, got '%s'", gotAuth)
	}
	if gotQuery != "remote work" {
		t.Errorf("Expected query 'remote work', got '%s'", gotQuery)
	}
}

func TestUnsplashSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := NewUnsplashClient(server.URL, "test-key", server.Client())

	url, err := client.Search(context.Background(), "nothing")
	if err != nil {
		t.Fatal(err)
	}
	if url != "" {
		t.Errorf("Expected empty URL when no photos match, got '%s'", url)
	}
}

func TestUnsplashSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewUnsplashClient(server.URL, "test-key", server.Client())

	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Error("Expected error on HTTP failure")
	}
}

func TestUnsplashSearchMissingKey(t *testing.T) {
	client := NewUnsplashClient(DefaultUnsplashURL, "", http.DefaultClient)

	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Error("Expected error when access key is not configured")
	}
}
