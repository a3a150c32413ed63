// Package provider defines the content providers the refresh orchestrator
// selects between: live aggregation over external sources, or the curated
// canned set. Both normalize to the store insertion shape but with
// distinct premium/duration policies.
package provider

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/elonfeng/aihub/internal/store"
	"github.com/elonfeng/aihub/pkg/aggregate"
	"github.com/elonfeng/aihub/pkg/source"
)

// Provider produces ready-to-insert catalog records.
type Provider interface {
	Name() string
	SourceNames() []string
	Fetch(ctx context.Context) []store.ContentRecord
}

// Live aggregates external sources. Its premium marking is an arbitrary
// ~30% random assignment; live sources carry no curated duration, so the
// duration stays empty.
type Live struct {
	agg *aggregate.Aggregator

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLive creates the live-aggregation provider. A nil rng gets a
// time-seeded one; tests pass a fixed seed.
func NewLive(agg *aggregate.Aggregator, rng *rand.Rand) *Live {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Live{agg: agg, rng: rng}
}

func (l *Live) Name() string { return "live" }

func (l *Live) SourceNames() []string { return l.agg.SourceNames() }

func (l *Live) Fetch(ctx context.Context) []store.ContentRecord {
	candidates := l.agg.Aggregate(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	return lo.Map(candidates, func(c source.Candidate, _ int) store.ContentRecord {
		return store.ContentRecord{
			Title:       c.Title,
			Description: c.Description,
			Category:    c.Category,
			IsPremium:   l.rng.Float64() > 0.7,
			ImageURL:    c.ImageURL,
		}
	})
}
