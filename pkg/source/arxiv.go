package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ArXiv collects recent AI papers from the arXiv Atom feed.
//
// The feed is treated as semi-structured text: entries are located by their
// <entry> boundary and the interesting sub-fields are matched individually.
// A malformed entry only costs that entry, not the whole batch, which a
// strict schema-validating decode could not guarantee.
type ArXiv struct {
	client     *http.Client
	baseURL    string
	categories []string
	maxResults int
	maxItems   int
	now        func() time.Time
	log        zerolog.Logger
}

// NewArXiv creates a new arXiv adapter.
func NewArXiv(categories []string, maxResults, maxItems int, log zerolog.Logger) *ArXiv {
	if len(categories) == 0 {
		categories = []string{"cs.AI", "cs.LG", "cs.CL"}
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	if maxItems <= 0 {
		maxItems = 8
	}
	return &ArXiv{
		client:     &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://export.arxiv.org/api/query",
		categories: categories,
		maxResults: maxResults,
		maxItems:   maxItems,
		now:        time.Now,
		log:        log.With().Str("source", "arxiv").Logger(),
	}
}

func (a *ArXiv) Name() string { return "arxiv" }

// Fetch queries the configured subject categories, most recent first.
func (a *ArXiv) Fetch(ctx context.Context) []Candidate {
	var parts []string
	for _, cat := range a.categories {
		parts = append(parts, "cat:"+cat)
	}
	query := strings.Join(parts, " OR ")

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		a.baseURL, url.QueryEscape(query), a.maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		a.log.Error().Err(err).Msg("create arxiv request")
		return nil
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.log.Error().Err(err).Msg("fetch arxiv feed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.log.Error().Int("status", resp.StatusCode).Msg("arxiv feed status")
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.log.Error().Err(err).Msg("read arxiv feed")
		return nil
	}

	items := a.parseFeed(string(body))
	if len(items) > a.maxItems {
		items = items[:a.maxItems]
	}
	return items
}

var (
	arxivTitleRe     = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	arxivSummaryRe   = regexp.MustCompile(`(?s)<summary>(.*?)</summary>`)
	arxivPublishedRe = regexp.MustCompile(`<published>(.*?)</published>`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

func (a *ArXiv) parseFeed(feed string) []Candidate {
	entries := strings.Split(feed, "<entry>")
	if len(entries) < 2 {
		return nil
	}

	var items []Candidate
	for _, entry := range entries[1:] {
		title := extractField(arxivTitleRe, entry)
		summary := extractField(arxivSummaryRe, entry)
		if title == "" || summary == "" {
			continue
		}

		published := a.now().UTC()
		if m := arxivPublishedRe.FindStringSubmatch(entry); m != nil {
			if t, err := time.Parse(time.RFC3339, m[1]); err == nil {
				published = t.UTC()
			}
		}

		items = append(items, Candidate{
			Title:       title,
			Description: truncate(summary, 200),
			Category:    CategoryResearch,
			ImageURL:    stockResearchImage,
			PublishedAt: published,
		})
	}
	return items
}

// extractField pulls one sub-field out of an entry, collapsing internal
// whitespace runs to single spaces.
func extractField(re *regexp.Regexp, entry string) string {
	m := re.FindStringSubmatch(entry)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(m[1], " "))
}
