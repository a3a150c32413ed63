package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultHNBaseURL = "https://hacker-news.firebaseio.com/v0"

// HackerNews collects AI-related stories from the Hacker News front page.
type HackerNews struct {
	client    *http.Client
	baseURL   string
	scanLimit int // how many ranked stories to inspect
	maxItems  int // how many qualifying stories to keep
	filter    *Filter
	log       zerolog.Logger
}

// NewHackerNews creates a new Hacker News adapter.
func NewHackerNews(scanLimit, maxItems int, filter *Filter, log zerolog.Logger) *HackerNews {
	if scanLimit <= 0 {
		scanLimit = 50
	}
	if maxItems <= 0 {
		maxItems = 10
	}
	return &HackerNews{
		client:    &http.Client{Timeout: 15 * time.Second},
		baseURL:   defaultHNBaseURL,
		scanLimit: scanLimit,
		maxItems:  maxItems,
		filter:    filter,
		log:       log.With().Str("source", "hackernews").Logger(),
	}
}

func (h *HackerNews) Name() string { return "hackernews" }

// Fetch retrieves the ranked story list, resolves the first scanLimit
// stories concurrently and keeps AI-related ones with an external URL.
// Ranking order is preserved; individual story failures are dropped
// silently rather than aborting the batch.
func (h *HackerNews) Fetch(ctx context.Context) []Candidate {
	ids, err := h.fetchTopStories(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("fetch top stories")
		return nil
	}

	if len(ids) > h.scanLimit {
		ids = ids[:h.scanLimit]
	}

	// Indexed result slice keeps the source ranking stable even though
	// per-story fetches complete in arbitrary order.
	results := make([]*Candidate, len(ids))
	var wg sync.WaitGroup
	sem := make(chan struct{}, 10)

	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			story, err := h.fetchStory(ctx, id)
			if err != nil || story == nil {
				return
			}
			if story.Title == "" || story.URL == "" {
				return
			}
			if h.filter != nil && !h.filter.Matches(story.Title) {
				return
			}

			results[i] = &Candidate{
				Title:       story.Title,
				Description: story.Title + " - Discussion and insights from the tech community.",
				Category:    CategoryNews,
				ImageURL:    stockNewsImage,
				SourceURL:   story.URL,
				PublishedAt: time.Unix(story.Time, 0).UTC(),
			}
		}(i, id)
	}

	wg.Wait()

	var items []Candidate
	for _, c := range results {
		if c == nil {
			continue
		}
		items = append(items, *c)
		if len(items) >= h.maxItems {
			break
		}
	}
	return items
}

type hnStory struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	By    string `json:"by"`
	Time  int64  `json:"time"`
	Type  string `json:"type"`
}

func (h *HackerNews) fetchTopStories(ctx context.Context) ([]int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/topstories.json", nil)
	if err != nil {
		return nil, fmt.Errorf("create hn request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch hn top stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hn top stories status %d", resp.StatusCode)
	}

	var ids []int
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("decode hn top stories: %w", err)
	}
	return ids, nil
}

func (h *HackerNews) fetchStory(ctx context.Context, id int) (*hnStory, error) {
	url := fmt.Sprintf("%s/item/%d.json", h.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create hn item request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch hn item %d: %w", id, err)
	}
	defer resp.Body.Close()

	var story hnStory
	if err := json.NewDecoder(resp.Body).Decode(&story); err != nil {
		return nil, fmt.Errorf("decode hn item %d: %w", id, err)
	}

	if story.Type != "story" {
		return nil, nil
	}
	return &story, nil
}
