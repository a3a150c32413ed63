// Package refresh drives catalog refresh cycles. A refresh is always
// caller-initiated; there is no internal scheduler.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/elonfeng/aihub/internal/store"
	"github.com/elonfeng/aihub/pkg/provider"
	"github.com/elonfeng/aihub/pkg/source"
)

// Mode records which kind of refresh ran last.
type Mode string

const (
	ModeNone    Mode = ""
	ModeLive    Mode = "live"
	ModeReplace Mode = "replace"
)

// CategoryCounts is a per-category item breakdown.
type CategoryCounts struct {
	News      int `json:"news"`
	Research  int `json:"research"`
	Tools     int `json:"tools"`
	Tutorials int `json:"tutorials"`
}

// Summary reports an additive refresh.
type Summary struct {
	Message string   `json:"message"`
	Added   int      `json:"added"`
	Sources []string `json:"sources"`
}

// ReplaceSummary reports a replace refresh.
type ReplaceSummary struct {
	Message    string         `json:"message"`
	Added      int            `json:"added"`
	Categories CategoryCounts `json:"categories"`
	LastUpdate time.Time      `json:"lastUpdate"`
}

// Status is the read-only catalog projection.
type Status struct {
	TotalItems   int            `json:"totalItems"`
	Categories   CategoryCounts `json:"categories"`
	LatestUpdate *time.Time     `json:"latestUpdate,omitempty"`
	Sources      []string       `json:"sources"`
}

// Orchestrator owns refresh execution and the last-refresh state. It is
// constructed once at startup; there are no package-level singletons.
type Orchestrator struct {
	store   store.Store
	live    provider.Provider
	canned  *provider.Canned
	timeout time.Duration
	log     zerolog.Logger

	// Concurrent identical requests share one execution; the mutex
	// additionally excludes an additive and a replace refresh from
	// interleaving.
	group     singleflight.Group
	refreshMu sync.Mutex

	stateMu    sync.Mutex
	lastMode   Mode
	lastUpdate time.Time
}

// New creates an orchestrator. A zero timeout defaults to one minute per
// refresh cycle.
func New(s store.Store, live provider.Provider, canned *provider.Canned, timeout time.Duration, log zerolog.Logger) *Orchestrator {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Orchestrator{
		store:   s,
		live:    live,
		canned:  canned,
		timeout: timeout,
		log:     log.With().Str("component", "refresh").Logger(),
	}
}

// Refresh runs an additive refresh: live-aggregated records are appended
// to the catalog. Individual insert failures are logged and skipped; the
// operation only fails when the store itself is unreachable.
func (o *Orchestrator) Refresh(ctx context.Context) (*Summary, error) {
	v, err, _ := o.group.Do("additive", func() (any, error) {
		return o.refreshAdditive(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Summary), nil
}

func (o *Orchestrator) refreshAdditive(ctx context.Context) (*Summary, error) {
	o.refreshMu.Lock()
	defer o.refreshMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := o.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("catalog store unavailable: %w", err)
	}

	records := o.live.Fetch(ctx)

	added := 0
	for _, rec := range records {
		if _, err := o.store.CreateContent(ctx, rec); err != nil {
			o.log.Warn().Err(err).Str("title", rec.Title).Msg("skipping record")
			continue
		}
		added++
	}

	o.setState(ModeLive)
	o.log.Info().Int("added", added).Int("fetched", len(records)).Msg("additive refresh done")

	return &Summary{
		Message: fmt.Sprintf("Added %d items from live sources", added),
		Added:   added,
		Sources: o.live.SourceNames(),
	}, nil
}

// RefreshReplace clears the catalog and loads the canned content set.
// A failed clear is fatal; per-record insert failures are isolated.
func (o *Orchestrator) RefreshReplace(ctx context.Context) (*ReplaceSummary, error) {
	v, err, _ := o.group.Do("replace", func() (any, error) {
		return o.refreshReplace(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ReplaceSummary), nil
}

func (o *Orchestrator) refreshReplace(ctx context.Context) (*ReplaceSummary, error) {
	o.refreshMu.Lock()
	defer o.refreshMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	records := o.canned.Fetch(ctx)

	if err := o.store.ClearAllContent(ctx); err != nil {
		return nil, fmt.Errorf("clear catalog: %w", err)
	}

	added := 0
	var counts CategoryCounts
	for _, rec := range records {
		if _, err := o.store.CreateContent(ctx, rec); err != nil {
			o.log.Warn().Err(err).Str("title", rec.Title).Msg("skipping record")
			continue
		}
		added++
		counts.add(rec.Category)
	}

	lastUpdate := o.setState(ModeReplace)
	o.log.Info().Int("added", added).Msg("replace refresh done")

	return &ReplaceSummary{
		Message:    "Refreshed with current AI content",
		Added:      added,
		Categories: counts,
		LastUpdate: lastUpdate,
	}, nil
}

// Status projects the catalog state. After a replace refresh the
// projection comes from the canned set directly; otherwise it is computed
// from the store.
func (o *Orchestrator) Status(ctx context.Context) (*Status, error) {
	o.stateMu.Lock()
	mode := o.lastMode
	o.stateMu.Unlock()

	if mode == ModeReplace {
		var counts CategoryCounts
		for cat, n := range o.canned.CategoryCounts() {
			counts.set(cat, n)
		}
		latest := o.canned.LatestPublished()
		return &Status{
			TotalItems:   o.canned.Len(),
			Categories:   counts,
			LatestUpdate: &latest,
			Sources:      o.canned.SourceNames(),
		}, nil
	}

	total, err := o.store.CountContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("count content: %w", err)
	}

	byCategory, err := o.store.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	var counts CategoryCounts
	for cat, n := range byCategory {
		counts.set(cat, n)
	}

	latest, err := o.store.LatestCreatedAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest update: %w", err)
	}
	var latestPtr *time.Time
	if !latest.IsZero() {
		latestPtr = &latest
	}

	return &Status{
		TotalItems:   total,
		Categories:   counts,
		LatestUpdate: latestPtr,
		Sources:      o.live.SourceNames(),
	}, nil
}

// LastUpdate returns when the last refresh finished, zero if none ran.
func (o *Orchestrator) LastUpdate() (Mode, time.Time) {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.lastMode, o.lastUpdate
}

func (o *Orchestrator) setState(mode Mode) time.Time {
	now := time.Now().UTC()
	o.stateMu.Lock()
	o.lastMode = mode
	o.lastUpdate = now
	o.stateMu.Unlock()
	return now
}

func (c *CategoryCounts) add(cat source.Category) {
	switch cat {
	case source.CategoryNews:
		c.News++
	case source.CategoryResearch:
		c.Research++
	case source.CategoryTools:
		c.Tools++
	case source.CategoryTutorial:
		c.Tutorials++
	}
}

func (c *CategoryCounts) set(cat source.Category, n int) {
	switch cat {
	case source.CategoryNews:
		c.News = n
	case source.CategoryResearch:
		c.Research = n
	case source.CategoryTools:
		c.Tools = n
	case source.CategoryTutorial:
		c.Tutorials = n
	}
}
