package generator

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Each labeled section may appear either plain (LABEL:) or emphasized
// (**LABEL:**); accept both.
var (
	titleBoldRe    = regexp.MustCompile(`\*\*TITLE:\*\*\s*(.+)`)
	titlePlainRe   = regexp.MustCompile(`TITLE:\s*(.+)`)
	metaDescBoldRe = regexp.MustCompile(`\*\*META_DESCRIPTION:\*\*\s*(.+)`)
	metaDescRe     = regexp.MustCompile(`META_DESCRIPTION:\s*(.+)`)
	metaKeysBoldRe = regexp.MustCompile(`\*\*META_KEYWORDS:\*\*\s*(.+)`)
	metaKeysRe     = regexp.MustCompile(`META_KEYWORDS:\s*(.+)`)
	excerptBoldRe  = regexp.MustCompile(`(?s)\*\*EXCERPT:\*\*\s*(.+?)(?:\n\n|---|\*\*CONTENT)`)
	excerptRe      = regexp.MustCompile(`(?s)EXCERPT:\s*(.+?)(?:\n\n|CONTENT:|---)`)
	contentBoldRe  = regexp.MustCompile(`(?s)\*\*CONTENT:\*\*\s*(.+)`)
	contentRe      = regexp.MustCompile(`(?s)CONTENT:\s*(.+)`)
	separatorRe    = regexp.MustCompile(`(?s)---\s*\n\n(.+)`)
)

var titleCaser = cases.Title(language.English)

// ParseResponse extracts the five labeled sections from a raw generation
// response. Missing fields degrade to deterministic fallbacks; the result is
// always a usable draft, possibly with empty content.
func ParseResponse(response, keyword string) *Draft {
	draft := &Draft{Keyword: keyword}

	draft.Title = matchFirst(response, titleBoldRe, titlePlainRe)
	draft.MetaDescription = matchFirst(response, metaDescBoldRe, metaDescRe)
	draft.MetaKeywords = matchFirst(response, metaKeysBoldRe, metaKeysRe)
	draft.Excerpt = matchFirst(response, excerptBoldRe, excerptRe)
	draft.Content = extractContent(response, draft.Excerpt)
	draft.WordCount = len(strings.Fields(draft.Content))

	applyFallbacks(draft, keyword)

	return draft
}

func matchFirst(text string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// extractContent tries, in order: the CONTENT label, a "---" separator line,
// and everything after the excerpt. When all three fail, content is empty.
func extractContent(response, excerpt string) string {
	if content := matchFirst(response, contentBoldRe, contentRe); content != "" {
		return content
	}

	if m := separatorRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}

	if excerpt != "" {
		if idx := strings.Index(response, excerpt); idx >= 0 {
			remaining := response[idx+len(excerpt):]
			if m := separatorRe.FindStringSubmatch(remaining); m != nil {
				return strings.TrimSpace(m[1])
			}
		}
	}

	return ""
}

func applyFallbacks(draft *Draft, keyword string) {
	if draft.Title == "" {
		draft.Title = "Everything You Need to Know About " + titleCaser.String(keyword)
	}
	if draft.Excerpt == "" {
		draft.Excerpt = truncate(draft.Content, 200) + "..."
	}
	if draft.MetaDescription == "" {
		draft.MetaDescription = truncate(draft.Excerpt, 160)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
