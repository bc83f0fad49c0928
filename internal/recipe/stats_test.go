package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	recipes := append(SampleRecipes(), Recipe{ID: 3, Name: "Mystery", Language: "english"})

	stats := Summarize(recipes)
	assert.Equal(t, 3, stats.TotalRecipes)
	assert.Equal(t, map[string]int{"english": 2, "telugu": 1}, stats.Languages)
	assert.Equal(t, map[string]int{"Indian": 1, "తెలుగు వంటకాలు": 1, "unknown": 1}, stats.Cuisines)
	assert.Equal(t, 1, stats.Difficulties["unknown"])
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)
	assert.Zero(t, stats.TotalRecipes)
	assert.Empty(t, stats.Languages)
}
