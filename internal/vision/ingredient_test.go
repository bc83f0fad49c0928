package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFoodRelated(t *testing.T) {
	assert.True(t, IsFoodRelated("Vegetable"))
	assert.True(t, IsFoodRelated("Bell pepper"))
	assert.True(t, IsFoodRelated("Natural foods"))
	assert.False(t, IsFoodRelated("Table"))
	assert.False(t, IsFoodRelated("Kitchen utensil"))
}

func TestRank_DedupesCaseInsensitivelyAndSorts(t *testing.T) {
	in := []Ingredient{
		{Name: "Tomato", Confidence: 0.7, Source: "label"},
		{Name: "Onion", Confidence: 0.9, Source: "label"},
		{Name: "tomato", Confidence: 0.95, Source: "object"},
		{Name: "Garlic", Confidence: 0.7, Source: "object"},
	}

	got := Rank(in)

	assert.Equal(t, []Ingredient{
		{Name: "Onion", Confidence: 0.9, Source: "label"},
		{Name: "Tomato", Confidence: 0.7, Source: "label"},
		{Name: "Garlic", Confidence: 0.7, Source: "object"},
	}, got, "first occurrence wins; ties keep input order")
}

func TestRank_Empty(t *testing.T) {
	got := Rank(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLookupNutrition(t *testing.T) {
	n := LookupNutrition(" Tomato ")
	assert.True(t, n.Known)
	assert.Equal(t, "tomato", n.Ingredient)
	assert.Equal(t, 18, n.Calories)
	assert.Equal(t, "high", n.Highlights["lycopene"])

	n.Highlights["lycopene"] = "mutated"
	assert.Equal(t, "high", LookupNutrition("tomato").Highlights["lycopene"])

	unknown := LookupNutrition("dragonfruit")
	assert.False(t, unknown.Known)
	assert.Equal(t, "Nutrition data not available", unknown.Notes)
}
