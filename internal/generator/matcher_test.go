package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTemplate_SubstitutesMatchedAndKeepsLiterals(t *testing.T) {
	curry := Templates()[0]

	r := FromTemplate(curry, []string{"tomato", "onion", "rice", "garlic"})

	assert.Equal(t, "vegetables, onion, tomato, spices, garlic", r.Ingredients)
	assert.Equal(t, "Vegetable Curry", r.Name)
	assert.Equal(t, "traditional", r.Type)
	assert.Equal(t, "30 minutes", r.CookingTime)
	assert.Equal(t, "medium", r.Difficulty)
	assert.Equal(t, "4", r.Servings)
	assert.Equal(t, "Generated", r.Source)
	assert.Equal(t, curry.Instructions, r.Instructions)
}

func TestFromTemplate_UsesAvailableName(t *testing.T) {
	curry := Templates()[0]

	r := FromTemplate(curry, []string{"Red Onions", "mixed vegetables", "Fresh Ginger root", "tomato"})

	assert.Equal(t, "mixed vegetables, Red Onions, tomato, spices, Fresh Ginger root", r.Ingredients)
}

func TestMatcher_Generate(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name      string
		available []string
		want      []string
	}{
		{
			name:      "three of four required fragments",
			available: []string{"tomato", "onion", "mixed vegetables", "garlic"},
			want:      []string{"Vegetable Curry"},
		},
		{
			name:      "two of four is below the threshold",
			available: []string{"tomato", "onion", "rice", "garlic"},
			want:      []string{},
		},
		{
			name:      "contained-by direction counts",
			available: []string{"veg", "onion", "tomato"},
			want:      []string{"Vegetable Curry"},
		},
		{
			name:      "both templates in catalog order",
			available: []string{"rice", "vegetables", "tofu protein", "onion", "tomato"},
			want:      []string{"Vegetable Curry", "Rice Bowl"},
		},
		{
			name:      "nothing available",
			available: nil,
			want:      []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Generate(tt.available)
			names := []string{}
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestMatcher_ThresholdIsCeiling(t *testing.T) {
	m := &Matcher{
		Templates: []DishTemplate{{Name: "Five", Required: []string{"a1", "b2", "c3", "d4", "e5"}}},
		Coverage:  0.6,
		Limit:     3,
	}

	assert.Empty(t, m.Generate([]string{"a1", "b2"}))
	assert.Len(t, m.Generate([]string{"a1", "b2", "c3"}), 1, "ceil(0.6*5) is 3")
}

func TestMatcher_LimitsResults(t *testing.T) {
	tmpl := DishTemplate{Name: "Rice", Required: []string{"rice"}}
	m := &Matcher{Templates: []DishTemplate{tmpl, tmpl, tmpl, tmpl}, Coverage: 0.6, Limit: 3}

	assert.Len(t, m.Generate([]string{"rice"}), 3)
}

func TestMatcher_IsDeterministic(t *testing.T) {
	m := NewMatcher()
	in := []string{"rice", "vegetables", "chicken protein", "peanut sauce", "nuts"}

	first := m.Generate(in)
	require.Len(t, first, 1)
	assert.Equal(t, "rice, vegetables, chicken protein, peanut sauce, nuts", first[0].Ingredients)
	assert.Equal(t, first, m.Generate(in))
}
