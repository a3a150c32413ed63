package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/aihub/internal/store"
	"github.com/elonfeng/aihub/pkg/provider"
	"github.com/elonfeng/aihub/pkg/source"
)

// stubProvider is a live-provider stand-in with fixed output.
type stubProvider struct {
	sources []string
	records []store.ContentRecord
}

func (p *stubProvider) Name() string          { return "stub" }
func (p *stubProvider) SourceNames() []string { return p.sources }
func (p *stubProvider) Fetch(ctx context.Context) []store.ContentRecord {
	return p.records
}

// flakyStore wraps a real store and injects failures.
type flakyStore struct {
	store.Store
	createCalls int
	failCreates map[int]bool // 1-based call index
	pingErr     error
	clearErr    error
}

func (f *flakyStore) CreateContent(ctx context.Context, rec store.ContentRecord) (*store.Content, error) {
	f.createCalls++
	if f.failCreates[f.createCalls] {
		return nil, errors.New("injected insert failure")
	}
	return f.Store.CreateContent(ctx, rec)
}

func (f *flakyStore) Ping(ctx context.Context) error {
	if f.pingErr != nil {
		return f.pingErr
	}
	return f.Store.Ping(ctx)
}

func (f *flakyStore) ClearAllContent(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.Store.ClearAllContent(ctx)
}

func record(title string, cat source.Category) store.ContentRecord {
	return store.ContentRecord{
		Title:       title,
		Description: title,
		Category:    cat,
		ImageURL:    "https://img.example.com/x.png",
	}
}

func newOrchestrator(s store.Store, live provider.Provider) *Orchestrator {
	return New(s, live, provider.NewCanned(nil), time.Minute, zerolog.Nop())
}

func TestAdditiveRefreshIsolatesInsertFailures(t *testing.T) {
	mem := store.NewMem()
	flaky := &flakyStore{Store: mem, failCreates: map[int]bool{2: true}}
	live := &stubProvider{
		sources: []string{"hackernews", "reddit"},
		records: []store.ContentRecord{
			record("one", source.CategoryNews),
			record("two", source.CategoryNews),
			record("three", source.CategoryResearch),
		},
	}

	orch := newOrchestrator(flaky, live)
	summary, err := orch.Refresh(context.Background())

	require.NoError(t, err, "a rejected record must not fail the batch")
	assert.Equal(t, 2, summary.Added)
	assert.Equal(t, []string{"hackernews", "reddit"}, summary.Sources)

	total, err := mem.CountContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestAdditiveRefreshWithNoCandidates(t *testing.T) {
	orch := newOrchestrator(store.NewMem(), &stubProvider{sources: []string{"hackernews"}})

	summary, err := orch.Refresh(context.Background())
	require.NoError(t, err, "total outage means no new content, not an error")
	assert.Equal(t, 0, summary.Added)
}

func TestAdditiveRefreshFailsWhenStoreUnreachable(t *testing.T) {
	flaky := &flakyStore{Store: store.NewMem(), pingErr: errors.New("connection refused")}
	orch := newOrchestrator(flaky, &stubProvider{})

	_, err := orch.Refresh(context.Background())
	assert.ErrorContains(t, err, "catalog store unavailable")
}

func TestReplaceRefreshSwapsCatalog(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMem()

	// Pre-existing item that is not part of the canned set.
	_, err := mem.CreateContent(ctx, record("stale entry", source.CategoryNews))
	require.NoError(t, err)

	canned := provider.NewCanned(nil)
	orch := New(mem, &stubProvider{}, canned, time.Minute, zerolog.Nop())

	summary, err := orch.RefreshReplace(ctx)
	require.NoError(t, err)
	assert.Equal(t, canned.Len(), summary.Added)
	assert.Equal(t, 5, summary.Categories.News)
	assert.Equal(t, 4, summary.Categories.Research)
	assert.Equal(t, 5, summary.Categories.Tools)
	assert.Equal(t, 4, summary.Categories.Tutorials)
	assert.False(t, summary.LastUpdate.IsZero())

	total, err := mem.CountContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, canned.Len(), total)

	all, err := mem.ListContent(ctx, store.ListOpts{})
	require.NoError(t, err)
	for _, c := range all {
		assert.NotEqual(t, "stale entry", c.Title)
	}
}

func TestReplaceRefreshIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMem()
	orch := newOrchestrator(mem, &stubProvider{})

	titles := func() map[string]bool {
		all, err := mem.ListContent(ctx, store.ListOpts{})
		require.NoError(t, err)
		set := make(map[string]bool)
		for _, c := range all {
			set[c.Title] = true
		}
		return set
	}

	_, err := orch.RefreshReplace(ctx)
	require.NoError(t, err)
	first := titles()

	_, err = orch.RefreshReplace(ctx)
	require.NoError(t, err)
	second := titles()

	assert.Equal(t, first, second)
}

func TestReplaceRefreshFailsWhenClearFails(t *testing.T) {
	flaky := &flakyStore{Store: store.NewMem(), clearErr: errors.New("disk gone")}
	orch := newOrchestrator(flaky, &stubProvider{})

	_, err := orch.RefreshReplace(context.Background())
	assert.ErrorContains(t, err, "clear catalog")
}

func TestStatusFromStoreAfterAdditiveRefresh(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMem()
	live := &stubProvider{
		sources: []string{"hackernews", "arxiv"},
		records: []store.ContentRecord{
			record("one", source.CategoryNews),
			record("two", source.CategoryResearch),
		},
	}
	orch := newOrchestrator(mem, live)

	_, err := orch.Refresh(ctx)
	require.NoError(t, err)

	status, err := orch.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalItems)
	assert.Equal(t, 1, status.Categories.News)
	assert.Equal(t, 1, status.Categories.Research)
	assert.Equal(t, []string{"hackernews", "arxiv"}, status.Sources)
	require.NotNil(t, status.LatestUpdate)
}

func TestStatusFromCannedSetAfterReplaceRefresh(t *testing.T) {
	ctx := context.Background()
	canned := provider.NewCanned(nil)
	orch := New(store.NewMem(), &stubProvider{}, canned, time.Minute, zerolog.Nop())

	_, err := orch.RefreshReplace(ctx)
	require.NoError(t, err)

	status, err := orch.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, canned.Len(), status.TotalItems)
	assert.Equal(t, []string{"curated"}, status.Sources)
	require.NotNil(t, status.LatestUpdate)
}

func TestStatusOnEmptyCatalog(t *testing.T) {
	orch := newOrchestrator(store.NewMem(), &stubProvider{sources: []string{"hackernews"}})

	status, err := orch.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalItems)
	assert.Nil(t, status.LatestUpdate)
}
