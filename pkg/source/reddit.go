package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const clientUserAgent = "aihub-content-fetcher/1.0"

// Reddit collects posts from the hot listings of AI subreddits using the
// public JSON endpoints. No OAuth is required for read-only listing access,
// only a descriptive User-Agent.
type Reddit struct {
	client      *http.Client
	baseURL     string
	subreddits  []string
	perSubLimit int
	maxItems    int
	log         zerolog.Logger
}

// NewReddit creates a new Reddit adapter.
func NewReddit(subreddits []string, perSubLimit, maxItems int, log zerolog.Logger) *Reddit {
	if len(subreddits) == 0 {
		subreddits = []string{"MachineLearning", "artificial", "singularity", "ChatGPT"}
	}
	if perSubLimit <= 0 {
		perSubLimit = 10
	}
	if maxItems <= 0 {
		maxItems = 15
	}
	return &Reddit{
		client:      &http.Client{Timeout: 15 * time.Second},
		baseURL:     "https://www.reddit.com",
		subreddits:  subreddits,
		perSubLimit: perSubLimit,
		maxItems:    maxItems,
		log:         log.With().Str("source", "reddit").Logger(),
	}
}

func (r *Reddit) Name() string { return "reddit" }

// Fetch walks the configured subreddits in order. A failing subreddit is
// logged and skipped; the remaining ones still contribute. Self posts
// (no external link) are excluded.
func (r *Reddit) Fetch(ctx context.Context) []Candidate {
	var items []Candidate

	for _, sub := range r.subreddits {
		posts, err := r.fetchSubreddit(ctx, sub)
		if err != nil {
			r.log.Warn().Err(err).Str("subreddit", sub).Msg("fetch subreddit")
			continue
		}

		for _, post := range posts {
			if post.Title == "" || post.IsSelf {
				continue
			}

			imageURL := stockForumImage
			if strings.HasPrefix(post.Thumbnail, "http") {
				imageURL = post.Thumbnail
			}

			description := post.Selftext
			if description == "" {
				description = fmt.Sprintf("%s - From r/%s", post.Title, sub)
			}

			items = append(items, Candidate{
				Title:       post.Title,
				Description: description,
				Category:    CategoryNews,
				ImageURL:    imageURL,
				SourceURL:   post.URL,
				PublishedAt: time.Unix(int64(post.CreatedUTC), 0).UTC(),
			})
		}
	}

	if len(items) > r.maxItems {
		items = items[:r.maxItems]
	}
	return items
}

func (r *Reddit) fetchSubreddit(ctx context.Context, subreddit string) ([]redditPost, error) {
	reqURL := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", r.baseURL, subreddit, r.perSubLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create r/%s request: %w", subreddit, err)
	}
	req.Header.Set("User-Agent", clientUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("r/%s status %d", subreddit, resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode r/%s: %w", subreddit, err)
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Selftext   string  `json:"selftext"`
	Thumbnail  string  `json:"thumbnail"`
	IsSelf     bool    `json:"is_self"`
	CreatedUTC float64 `json:"created_utc"`
}
