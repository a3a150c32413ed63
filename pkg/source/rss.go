package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// Feed is a named RSS/Atom feed URL.
type Feed struct {
	Name string
	URL  string
}

// RSS collects AI news from RSS/Atom feeds. It is an optional extra
// source on top of the stock adapter set.
type RSS struct {
	client   *http.Client
	parser   *gofeed.Parser
	feeds    []Feed
	maxItems int
	filter   *Filter
	log      zerolog.Logger
}

// NewRSS creates a new RSS adapter.
func NewRSS(feeds []Feed, maxItems int, filter *Filter, log zerolog.Logger) *RSS {
	if maxItems <= 0 {
		maxItems = 10
	}
	return &RSS{
		client:   &http.Client{Timeout: 15 * time.Second},
		parser:   gofeed.NewParser(),
		feeds:    feeds,
		maxItems: maxItems,
		filter:   filter,
		log:      log.With().Str("source", "rss").Logger(),
	}
}

func (r *RSS) Name() string { return "rss" }

// Fetch walks the configured feeds in order; a failing feed is logged and
// skipped.
func (r *RSS) Fetch(ctx context.Context) []Candidate {
	var items []Candidate

	for _, feed := range r.feeds {
		feedItems, err := r.fetchFeed(ctx, feed)
		if err != nil {
			r.log.Warn().Err(err).Str("feed", feed.Name).Msg("fetch feed")
			continue
		}
		items = append(items, feedItems...)
	}

	if len(items) > r.maxItems {
		items = items[:r.maxItems]
	}
	return items
}

func (r *RSS) fetchFeed(ctx context.Context, feed Feed) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create rss request %s: %w", feed.Name, err)
	}
	req.Header.Set("User-Agent", clientUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rss %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss %s status %d", feed.Name, resp.StatusCode)
	}

	parsed, err := r.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse rss %s: %w", feed.Name, err)
	}

	var items []Candidate
	for _, entry := range parsed.Items {
		if r.filter != nil && !r.filter.Matches(entry.Title+" "+entry.Description) {
			continue
		}

		published := time.Time{}
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			published = entry.UpdatedParsed.UTC()
		}

		imageURL := stockNewsImage
		if entry.Image != nil && entry.Image.URL != "" {
			imageURL = entry.Image.URL
		}

		items = append(items, Candidate{
			Title:       entry.Title,
			Description: truncate(entry.Description, 500),
			Category:    CategoryNews,
			ImageURL:    imageURL,
			SourceURL:   entry.Link,
			PublishedAt: published,
		})
	}
	return items, nil
}
