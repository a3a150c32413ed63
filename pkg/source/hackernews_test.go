package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHNTestServer(t *testing.T, ids []int, stories map[int]hnStory) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/topstories.json" {
			json.NewEncoder(w).Encode(ids)
			return
		}
		var id int
		if _, err := fmt.Sscanf(r.URL.Path, "/item/%d.json", &id); err != nil {
			http.NotFound(w, r)
			return
		}
		story, ok := stories[id]
		if !ok {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(story)
	}))
}

func TestHackerNewsKeepsAIStoriesWithURL(t *testing.T) {
	srv := newHNTestServer(t, []int{1, 2, 3},
		map[int]hnStory{
			1: {ID: 1, Title: "New GPT-5 architecture revealed", URL: "https://example.com/gpt5", Time: 1700000300, Type: "story"},
			2: {ID: 2, Title: "Local bakery wins award", URL: "https://example.com/bakery", Time: 1700000200, Type: "story"},
			3: {ID: 3, Title: "Ask HN: neural nets for audio?", Time: 1700000100, Type: "story"}, // no URL
		})
	defer srv.Close()

	hn := NewHackerNews(50, 10, NewFilter(nil), zerolog.Nop())
	hn.baseURL = srv.URL

	items := hn.Fetch(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "New GPT-5 architecture revealed", items[0].Title)
	assert.Equal(t, "https://example.com/gpt5", items[0].SourceURL)
	assert.Equal(t, CategoryNews, items[0].Category)
	assert.NotEmpty(t, items[0].ImageURL)
	assert.Contains(t, items[0].Description, "Discussion and insights")
}

func TestHackerNewsPreservesRankingOrder(t *testing.T) {
	ids := []int{10, 20, 30, 40}
	stories := make(map[int]hnStory)
	for i, id := range ids {
		stories[id] = hnStory{
			ID:    id,
			Title: fmt.Sprintf("AI story %d", i),
			URL:   fmt.Sprintf("https://example.com/%d", id),
			Time:  1700000000,
			Type:  "story",
		}
	}
	srv := newHNTestServer(t, ids, stories)
	defer srv.Close()

	hn := NewHackerNews(50, 10, NewFilter(nil), zerolog.Nop())
	hn.baseURL = srv.URL

	items := hn.Fetch(context.Background())
	require.Len(t, items, 4)
	for i, item := range items {
		assert.True(t, strings.HasSuffix(item.Title, fmt.Sprint(i)), "ranking order lost at %d: %s", i, item.Title)
	}
}

func TestHackerNewsPerStoryFailureIsDropped(t *testing.T) {
	srv := newHNTestServer(t, []int{1, 2},
		map[int]hnStory{
			// id 1 missing: detail fetch returns 500 with a non-JSON body
			2: {ID: 2, Title: "OpenAI ships a new model", URL: "https://example.com/2", Time: 1700000000, Type: "story"},
		})
	defer srv.Close()

	hn := NewHackerNews(50, 10, NewFilter(nil), zerolog.Nop())
	hn.baseURL = srv.URL

	items := hn.Fetch(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "OpenAI ships a new model", items[0].Title)
}

func TestHackerNewsTruncatesToMaxItems(t *testing.T) {
	var ids []int
	stories := make(map[int]hnStory)
	for id := 1; id <= 20; id++ {
		ids = append(ids, id)
		stories[id] = hnStory{
			ID:    id,
			Title: fmt.Sprintf("LLM benchmark %d", id),
			URL:   fmt.Sprintf("https://example.com/%d", id),
			Time:  1700000000,
			Type:  "story",
		}
	}
	srv := newHNTestServer(t, ids, stories)
	defer srv.Close()

	hn := NewHackerNews(50, 10, NewFilter(nil), zerolog.Nop())
	hn.baseURL = srv.URL

	items := hn.Fetch(context.Background())
	assert.Len(t, items, 10)
}

func TestHackerNewsNetworkFailureYieldsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	hn := NewHackerNews(50, 10, NewFilter(nil), zerolog.Nop())
	hn.baseURL = srv.URL

	assert.Empty(t, hn.Fetch(context.Background()))
}
