package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/elonfeng/aihub/pkg/source"
)

// MemStore is a map-backed Store used in tests and as a zero-setup
// fallback when no database path is configured. Identifiers are handed
// out from a counter that is never reset, so a cleared id is not reused
// within the process lifetime.
type MemStore struct {
	mu          sync.RWMutex
	content     map[int64]Content
	topics      map[int64]Topic
	nextContent int64
	nextTopic   int64
}

// NewMem creates an in-memory store with the topic list pre-seeded.
func NewMem() *MemStore {
	s := &MemStore{
		content:     make(map[int64]Content),
		topics:      make(map[int64]Topic),
		nextContent: 1,
		nextTopic:   1,
	}
	for _, t := range seedTopics {
		s.topics[s.nextTopic] = Topic{
			ID:           s.nextTopic,
			Name:         t.name,
			Icon:         t.icon,
			ArticleCount: t.articleCount,
		}
		s.nextTopic++
	}
	return s
}

func (s *MemStore) Close() error                   { return nil }
func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) CreateContent(ctx context.Context, rec ContentRecord) (*Content, error) {
	if !rec.Category.Valid() {
		return nil, fmt.Errorf("invalid category %q", rec.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := Content{
		ID:          s.nextContent,
		Title:       rec.Title,
		Description: rec.Description,
		Category:    rec.Category,
		IsPremium:   rec.IsPremium,
		ImageURL:    rec.ImageURL,
		Duration:    rec.Duration,
		AuthorID:    rec.AuthorID,
		CreatedAt:   time.Now().UTC(),
	}
	s.content[c.ID] = c
	s.nextContent++
	return &c, nil
}

func (s *MemStore) GetContent(ctx context.Context, id int64) (*Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.content[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemStore) ListContent(ctx context.Context, opts ListOpts) ([]Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []Content
	search := strings.ToLower(opts.Search)
	for _, c := range s.content {
		if opts.Category != "" && opts.Category != "all" && c.Category != opts.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		items = append(items, c)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (s *MemStore) IncrementViewCount(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.content[id]
	if !ok {
		return ErrNotFound
	}
	c.ViewCount++
	s.content[id] = c
	return nil
}

func (s *MemStore) ClearAllContent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content = make(map[int64]Content)
	return nil
}

func (s *MemStore) CountContent(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.content), nil
}

func (s *MemStore) CountByCategory(ctx context.Context) (map[source.Category]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[source.Category]int)
	for _, c := range s.content {
		counts[c.Category]++
	}
	return counts, nil
}

func (s *MemStore) LatestCreatedAt(ctx context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest time.Time
	for _, c := range s.content {
		if c.CreatedAt.After(latest) {
			latest = c.CreatedAt
		}
	}
	return latest, nil
}

func (s *MemStore) ListTopics(ctx context.Context) ([]Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topics := make([]Topic, 0, len(s.topics))
	for _, t := range s.topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].ArticleCount > topics[j].ArticleCount
	})
	return topics, nil
}

func (s *MemStore) CreateTopic(ctx context.Context, t Topic) (*Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextTopic
	s.nextTopic++
	s.topics[t.ID] = t
	return &t, nil
}
