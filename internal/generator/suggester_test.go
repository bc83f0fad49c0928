package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggester_Suggest(t *testing.T) {
	s := NewSuggester()

	tests := []struct {
		name      string
		available []string
		want      []string
	}{
		{
			name:      "three of seven is below half",
			available: []string{"lentils", "onion", "tomato"},
			want:      []string{},
		},
		{
			name:      "four of seven",
			available: []string{"lentils", "onion", "tomato", "cumin"},
			want:      []string{"Dal Tadka"},
		},
		{
			name:      "partial names match inside fragments",
			available: []string{"rice", "vegetables", "yogurt"},
			want:      []string{"Vegetable Biryani"},
		},
		{
			name:      "fragment inside ingredient does not count",
			available: []string{"basmati rice grains", "mixed vegetables medley", "greek yogurt"},
			want:      []string{},
		},
		{
			name:      "case-insensitive",
			available: []string{"LENTILS", "Onion", "Tomato", "Garlic"},
			want:      []string{"Dal Tadka"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Suggest(tt.available))
		})
	}
}

func TestSuggester_HalfIsEnough(t *testing.T) {
	s := &Suggester{
		Dishes: []TraditionalDish{{Name: "Four", Ingredients: []string{"a", "b", "c", "d"}}},
		Ratio:  0.5,
		Limit:  5,
	}

	assert.Equal(t, []string{"Four"}, s.Suggest([]string{"a", "b"}))
}

func TestSuggester_Limit(t *testing.T) {
	dish := TraditionalDish{Name: "Rice", Ingredients: []string{"rice"}}
	s := &Suggester{Dishes: []TraditionalDish{dish, dish, dish, dish, dish, dish, dish}, Ratio: 0.5, Limit: 5}

	assert.Len(t, s.Suggest([]string{"rice"}), 5)
}
