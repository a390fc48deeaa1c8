package generator

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"3 Things Nobody Tells You About AI!", "3-things-nobody-tells-you-about-ai"},
		{"Hello, World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-hyphenated title", "already-hyphenated-title"},
		{"Under_scores become hyphens", "underscores-become-hyphens"},
		{"Café au Lait Recipes", "cafe-au-lait-recipes"},
		{"What's Next for 5G?", "whats-next-for-5g"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.expected {
			t.Errorf("Slugify(%q): expected %q, got %q", tt.title, tt.expected, got)
		}
	}
}

func TestSlugifyEmpty(t *testing.T) {
	if got := Slugify(""); got != "" {
		t.Errorf("Expected empty slug for empty title, got %q", got)
	}
}
