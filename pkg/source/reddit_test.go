package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redditFixture map[string][]redditPost

func newRedditTestServer(t *testing.T, fixture redditFixture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/") // /r/<sub>/hot.json
		if len(parts) < 4 {
			http.NotFound(w, r)
			return
		}
		posts, ok := fixture[parts[2]]
		if !ok {
			http.Error(w, "nope", http.StatusServiceUnavailable)
			return
		}

		var listing redditListing
		for _, p := range posts {
			listing.Data.Children = append(listing.Data.Children, struct {
				Data redditPost `json:"data"`
			}{Data: p})
		}
		json.NewEncoder(w).Encode(listing)
	}))
}

func newRedditForTest(baseURL string, subs []string) *Reddit {
	r := NewReddit(subs, 10, 15, zerolog.Nop())
	r.baseURL = baseURL
	return r
}

func TestRedditExcludesSelfPosts(t *testing.T) {
	srv := newRedditTestServer(t, redditFixture{
		"MachineLearning": {
			{Title: "A new optimizer", URL: "https://example.com/opt", Thumbnail: "http://img/1.png", CreatedUTC: 1700000000},
			{Title: "Weekly discussion thread", IsSelf: true, CreatedUTC: 1700000001},
		},
	})
	defer srv.Close()

	r := newRedditForTest(srv.URL, []string{"MachineLearning"})
	items := r.Fetch(context.Background())

	require.Len(t, items, 1)
	assert.Equal(t, "A new optimizer", items[0].Title)
	assert.Equal(t, "http://img/1.png", items[0].ImageURL)
}

func TestRedditFallbacks(t *testing.T) {
	srv := newRedditTestServer(t, redditFixture{
		"artificial": {
			// "self" is reddit's placeholder thumbnail value, not a URL
			{Title: "Robots everywhere", URL: "https://example.com/robots", Thumbnail: "self", CreatedUTC: 1700000000},
		},
	})
	defer srv.Close()

	r := newRedditForTest(srv.URL, []string{"artificial"})
	items := r.Fetch(context.Background())

	require.Len(t, items, 1)
	assert.Equal(t, stockForumImage, items[0].ImageURL)
	assert.Equal(t, "Robots everywhere - From r/artificial", items[0].Description)
}

func TestRedditContinuesPastFailingSubreddit(t *testing.T) {
	srv := newRedditTestServer(t, redditFixture{
		// "singularity" is absent, so it returns 503
		"ChatGPT": {
			{Title: "Prompting guide", URL: "https://example.com/guide", Selftext: "A short guide.", CreatedUTC: 1700000000},
		},
	})
	defer srv.Close()

	r := newRedditForTest(srv.URL, []string{"singularity", "ChatGPT"})
	items := r.Fetch(context.Background())

	require.Len(t, items, 1)
	assert.Equal(t, "Prompting guide", items[0].Title)
	assert.Equal(t, "A short guide.", items[0].Description)
}

func TestRedditCapsCombinedOutput(t *testing.T) {
	var posts []redditPost
	for i := 0; i < 10; i++ {
		posts = append(posts, redditPost{Title: "Post", URL: "https://example.com", CreatedUTC: 1700000000})
	}
	srv := newRedditTestServer(t, redditFixture{
		"MachineLearning": posts,
		"artificial":      posts,
	})
	defer srv.Close()

	r := newRedditForTest(srv.URL, []string{"MachineLearning", "artificial"})
	items := r.Fetch(context.Background())

	assert.Len(t, items, 15)
}
