package api

import (
	"strings"
	"testing"
)

func TestMarkdownRender(t *testing.T) {
	renderer := NewMarkdownRenderer()

	html, err := renderer.Run("## Heading\n\nSome **bold** text and a [link](https://example.com).")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(html, "<h2") {
		t.Errorf("Expected rendered heading, got '%s'", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("Expected bold text, got '%s'", html)
	}
	if !strings.Contains(html, `<a href="https://example.com">link</a>`) {
		t.Errorf("Expected hyperlink, got '%s'", html)
	}
}

func TestMarkdownRenderGFMTable(t *testing.T) {
	renderer := NewMarkdownRenderer()

	html, err := renderer.Run("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(html, "<table>") {
		t.Errorf("Expected GFM table support, got '%s'", html)
	}
}
