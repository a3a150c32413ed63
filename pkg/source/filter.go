package source

import "strings"

// DefaultAIKeywords is the base set used to decide whether a title is
// AI-related. Matching is a case-insensitive substring test, so short
// entries like "ai" deliberately cast a wide net.
var DefaultAIKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "ml",
	"neural", "gpt", "llm", "deep learning", "chatgpt", "openai",
}

// Filter is a keyword classifier for AI-related content.
type Filter struct {
	keywords []string
}

// NewFilter creates a filter from the default keyword set plus extras.
func NewFilter(extraKeywords []string) *Filter {
	keywords := make([]string, 0, len(DefaultAIKeywords)+len(extraKeywords))
	keywords = append(keywords, DefaultAIKeywords...)
	keywords = append(keywords, extraKeywords...)

	for i, kw := range keywords {
		keywords[i] = strings.ToLower(kw)
	}

	return &Filter{keywords: keywords}
}

// Matches returns true if text contains any of the configured keywords.
func (f *Filter) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
