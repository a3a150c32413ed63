// Package aggregate merges candidate content from every configured source
// adapter into one recency-ordered list.
package aggregate

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/elonfeng/aihub/pkg/source"
)

// Aggregator fans out over a fixed sequence of source adapters.
type Aggregator struct {
	sources []source.Source
	log     zerolog.Logger
}

// New creates an aggregator. The source order given here fixes the
// concatenation order of the merged output.
func New(log zerolog.Logger, sources ...source.Source) *Aggregator {
	return &Aggregator{
		sources: sources,
		log:     log.With().Str("component", "aggregator").Logger(),
	}
}

// SourceNames returns the configured adapter names in their fixed order.
func (a *Aggregator) SourceNames() []string {
	names := make([]string, len(a.sources))
	for i, src := range a.sources {
		names[i] = src.Name()
	}
	return names
}

// Aggregate fetches all sources concurrently, concatenates their outputs
// in the fixed adapter order and sorts by published time, newest first.
// Undated items carry the zero time and therefore sort last. No
// de-duplication is applied; the sources are editorially distinct.
//
// Aggregate itself never fails: a total outage simply yields an empty
// list, which callers treat as "no new content".
func (a *Aggregator) Aggregate(ctx context.Context) []source.Candidate {
	results := make([][]source.Candidate, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			results[i] = src.Fetch(ctx)
			a.log.Debug().Str("source", src.Name()).Int("items", len(results[i])).Msg("source fetched")
		}(i, src)
	}
	wg.Wait()

	var merged []source.Candidate
	for _, items := range results {
		merged = append(merged, items...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	a.log.Info().Int("total", len(merged)).Msg("aggregated candidate content")
	return merged
}
