package affiliate

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpate/blog-wire/app/database"
)

// LinkConfig is one affiliate link entry in the links file.
type LinkConfig struct {
	Keyword  string `yaml:"keyword"`
	URL      string `yaml:"url"`
	Platform string `yaml:"platform"`
	Active   *bool  `yaml:"active"`
}

type linksFile struct {
	Links []LinkConfig `yaml:"links"`
}

// RegisterFromFile loads the YAML links file and upserts each entry into the
// database. A missing file is not an error; the blog simply runs without
// affiliate links. Returns the number of registered links.
func RegisterFromFile(path string, linkRepo database.AffiliateLinkRepository) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("Affiliate links file not found, skipping", "path", path)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read links file: %w", err)
	}

	var file linksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse links file: %w", err)
	}

	registered := 0
	for i, link := range file.Links {
		if link.Keyword == "" || link.URL == "" {
			return registered, fmt.Errorf("link at index %d: keyword and url are required", i)
		}

		active := true
		if link.Active != nil {
			active = *link.Active
		}

		if _, err := linkRepo.Upsert(link.Keyword, link.URL, link.Platform, active); err != nil {
			return registered, fmt.Errorf("failed to register link %q: %w", link.Keyword, err)
		}
		registered++
	}

	return registered, nil
}
