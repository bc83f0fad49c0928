package vision

import "strings"

// Nutrition is a rough per-100 g profile of a common ingredient.
type Nutrition struct {
	Ingredient string            `json:"ingredient"`
	Known      bool              `json:"known"`
	Calories   int               `json:"calories,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
	Notes      string            `json:"notes,omitempty"`
}

var nutritionTable = map[string]Nutrition{
	"tomato":  {Calories: 18, Highlights: map[string]string{"vitamin_c": "high", "lycopene": "high"}},
	"onion":   {Calories: 40, Highlights: map[string]string{"vitamin_c": "medium", "quercetin": "high"}},
	"carrot":  {Calories: 41, Highlights: map[string]string{"vitamin_a": "very_high", "beta_carotene": "high"}},
	"potato":  {Calories: 77, Highlights: map[string]string{"potassium": "high", "vitamin_c": "medium"}},
	"rice":    {Calories: 130, Highlights: map[string]string{"carbohydrates": "high", "protein": "medium"}},
	"chicken": {Calories: 165, Highlights: map[string]string{"protein": "very_high", "vitamin_b6": "high"}},
}

// LookupNutrition returns the profile for name, or an entry with Known false.
func LookupNutrition(name string) Nutrition {
	key := strings.ToLower(strings.TrimSpace(name))
	n, ok := nutritionTable[key]
	if !ok {
		return Nutrition{Ingredient: key, Notes: "Nutrition data not available"}
	}

	highlights := make(map[string]string, len(n.Highlights))
	for k, v := range n.Highlights {
		highlights[k] = v
	}
	return Nutrition{Ingredient: key, Known: true, Calories: n.Calories, Highlights: highlights}
}
