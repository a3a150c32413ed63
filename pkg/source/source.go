package source

import (
	"context"
	"time"
)

// Category classifies a piece of catalog content.
type Category string

const (
	CategoryNews     Category = "news"
	CategoryTutorial Category = "tutorial"
	CategoryTools    Category = "tools"
	CategoryResearch Category = "research"
)

// AllCategories returns every known category.
func AllCategories() []Category {
	return []Category{CategoryNews, CategoryTutorial, CategoryTools, CategoryResearch}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryNews, CategoryTutorial, CategoryTools, CategoryResearch:
		return true
	}
	return false
}

// Candidate is the normalized, not-yet-persisted representation of one
// external item. Adapters produce Candidates; the aggregator consumes them
// immediately and they are never stored as-is.
type Candidate struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	ImageURL    string    `json:"image_url"`
	SourceURL   string    `json:"source_url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"` // zero = source had no date
}

// Source is the interface every content adapter implements.
//
// Fetch never fails past its boundary: network or parse errors are logged
// inside the adapter and yield an empty (or partial) slice, so a joint
// fetch over all sources degrades gracefully when one of them is down.
type Source interface {
	Name() string
	Fetch(ctx context.Context) []Candidate
}

// Stock images used when a source carries no artwork of its own.
const (
	stockNewsImage     = "https://images.unsplash.com/photo-1677442136019-21780ecad995?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400"
	stockForumImage    = "https://images.unsplash.com/photo-1551288049-bebda4e38f71?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400"
	stockResearchImage = "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
