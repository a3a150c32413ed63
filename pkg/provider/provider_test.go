package provider

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/aihub/pkg/aggregate"
	"github.com/elonfeng/aihub/pkg/source"
)

type fakeSource struct {
	items []source.Candidate
}

func (f *fakeSource) Name() string                                 { return "fake" }
func (f *fakeSource) Fetch(ctx context.Context) []source.Candidate { return f.items }

func TestLiveConversionMapsFields(t *testing.T) {
	published := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	agg := aggregate.New(zerolog.Nop(), &fakeSource{items: []source.Candidate{
		{
			Title:       "A story",
			Description: "About AI.",
			Category:    source.CategoryNews,
			ImageURL:    "https://img.example.com/a.png",
			SourceURL:   "https://example.com/a",
			PublishedAt: published,
		},
	}})

	live := NewLive(agg, rand.New(rand.NewSource(1)))
	records := live.Fetch(context.Background())

	require.Len(t, records, 1)
	assert.Equal(t, "A story", records[0].Title)
	assert.Equal(t, "About AI.", records[0].Description)
	assert.Equal(t, source.CategoryNews, records[0].Category)
	assert.Equal(t, "https://img.example.com/a.png", records[0].ImageURL)
	assert.Empty(t, records[0].Duration, "live sources carry no curated duration")
}

func TestLivePremiumMarkingIsRoughlyThirtyPercent(t *testing.T) {
	items := make([]source.Candidate, 1000)
	for i := range items {
		items[i] = source.Candidate{
			Title:    "x",
			Category: source.CategoryNews,
			ImageURL: "y",
		}
	}
	agg := aggregate.New(zerolog.Nop(), &fakeSource{items: items})
	live := NewLive(agg, rand.New(rand.NewSource(42)))

	premium := 0
	for _, rec := range live.Fetch(context.Background()) {
		if rec.IsPremium {
			premium++
		}
	}
	assert.InDelta(t, 300, premium, 60)
}

func TestCannedSetShape(t *testing.T) {
	c := NewCanned(nil)

	assert.Equal(t, 18, c.Len())

	counts := c.CategoryCounts()
	assert.Equal(t, 5, counts[source.CategoryNews])
	assert.Equal(t, 4, counts[source.CategoryResearch])
	assert.Equal(t, 5, counts[source.CategoryTools])
	assert.Equal(t, 4, counts[source.CategoryTutorial])
}

func TestCannedFetchCarriesCuratedPremiumAndDuration(t *testing.T) {
	c := NewCanned(nil)
	records := c.Fetch(context.Background())

	require.Len(t, records, 18)

	byTitle := make(map[string]int)
	for i, rec := range records {
		byTitle[rec.Title] = i
	}

	i, ok := byTitle["Building AI Agents with Gemini 2.0: Complete Guide"]
	require.True(t, ok)
	assert.Equal(t, source.CategoryTutorial, records[i].Category)
	assert.Equal(t, "45 min", records[i].Duration)
	assert.False(t, records[i].IsPremium)

	i, ok = byTitle["Sora Video Model: Text-to-Video Generation"]
	require.True(t, ok)
	assert.True(t, records[i].IsPremium)
	assert.Empty(t, records[i].Duration, "duration only applies to tutorials")
}

func TestCannedFetchIsDeterministic(t *testing.T) {
	c := NewCanned(nil)

	first := c.Fetch(context.Background())
	second := c.Fetch(context.Background())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestCannedLatestPublished(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	c := NewCanned(func() time.Time { return now })

	// The freshest curated item is one hour old.
	assert.Equal(t, now.Add(-time.Hour), c.LatestPublished())
}

func TestCannedItemsSortedNewestFirst(t *testing.T) {
	c := NewCanned(nil)
	items := c.Items()

	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Age, items[i].Age)
	}
}
