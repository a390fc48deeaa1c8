package affiliate

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/rpate/blog-wire/app/database"
)

// Injector substitutes affiliate hyperlinks into article content.
type Injector struct {
	linkRepo database.AffiliateLinkRepository
}

func NewInjector(linkRepo database.AffiliateLinkRepository) *Injector {
	return &Injector{linkRepo: linkRepo}
}

// Run replaces the first case-insensitive whole-word occurrence of each
// active link's keyword with a markdown hyperlink, injecting at most maxLinks
// per article. Failures are best-effort: the content is returned unmodified.
func (i *Injector) Run(content string, maxLinks int) string {
	links, err := i.linkRepo.GetActive()
	if err != nil {
		slog.Warn("Failed to load affiliate links", "error", err)
		return content
	}

	if len(links) == 0 {
		slog.Debug("No active affiliate links to inject")
		return content
	}

	modified := content
	injected := 0

	for _, link := range links {
		if injected >= maxLinks {
			break
		}

		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(link.Keyword) + `\b`)
		if err != nil {
			slog.Warn("Invalid affiliate keyword pattern", "keyword", link.Keyword, "error", err)
			continue
		}

		loc := pattern.FindStringIndex(modified)
		if loc == nil {
			continue
		}

		// Keep the matched text's original casing inside the link.
		matched := modified[loc[0]:loc[1]]
		markdown := fmt.Sprintf("[%s](%s)", matched, link.URL)
		modified = modified[:loc[0]] + markdown + modified[loc[1]:]

		injected++
		slog.Info("Injected affiliate link", "keyword", link.Keyword)
	}

	return modified
}
