package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatchesAITitles(t *testing.T) {
	f := NewFilter(nil)

	assert.True(t, f.Matches("New GPT-5 architecture revealed"))
	assert.True(t, f.Matches("Why Machine Learning needs better data"))
	assert.True(t, f.Matches("CHATGPT passes another exam"))
	assert.True(t, f.Matches("Running an LLM on a laptop"))
}

func TestFilterRejectsUnrelatedTitles(t *testing.T) {
	f := NewFilter(nil)

	assert.False(t, f.Matches("Local bakery wins award"))
	assert.False(t, f.Matches("New kernel scheduler merged"))
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	f := NewFilter(nil)

	// Substring semantics are deliberate, even when they over-match.
	assert.True(t, f.Matches("HTML5 parsing tricks")) // "ml" inside "HTML5"
	assert.True(t, f.Matches("openai releases new model"))
}

func TestFilterExtraKeywords(t *testing.T) {
	f := NewFilter([]string{"transformer"})

	assert.True(t, f.Matches("Transformer inference at scale"))
}
