package cfg

import (
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestApplyTimezone(t *testing.T) {
	original := time.Local
	defer func() { time.Local = original }()

	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected UTC to be accepted, got %v", err)
	}
	if time.Local.String() != "UTC" {
		t.Errorf("Expected local timezone UTC, got %s", time.Local.String())
	}

	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}

	if err := applyTimezone(""); err != nil {
		t.Errorf("Expected empty timezone to be a no-op, got %v", err)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:        "./test.db",
		Port:          "8080",
		APIAccessKey:  "test-key",
		OpenAIModel:   "gpt-4o",
		TrendsRegion:  "US",
		PostsPerDay:   2,
		MinWordCount:  2000,
		MaxWordCount:  3500,
		MaxAffiliates: 3,
		ScheduleCron:  "0 8 * * *",
		BlogName:      "Blog Wire",
		BlogDomain:    "blog-wire.com",
		SiteAuthor:    "Ryan Pate",
		Debug:         true,
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.PostsPerDay != 2 {
		t.Errorf("Expected posts per day 2, got %d", cfg.PostsPerDay)
	}
	if cfg.MinWordCount != 2000 || cfg.MaxWordCount != 3500 {
		t.Errorf("Unexpected word count bounds %d-%d", cfg.MinWordCount, cfg.MaxWordCount)
	}
	if cfg.ScheduleCron != "0 8 * * *" {
		t.Errorf("Unexpected schedule '%s'", cfg.ScheduleCron)
	}
	if cfg.SiteAuthor != "Ryan Pate" {
		t.Errorf("Unexpected site author '%s'", cfg.SiteAuthor)
	}
}
