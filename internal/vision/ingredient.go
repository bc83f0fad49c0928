package vision

import (
	"sort"
	"strings"
)

// Ingredient is one identified item. Source says which signal produced it
// (label, object, tag, model, color_analysis).
type Ingredient struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"type"`
}

var foodKeywords = []string{
	"food", "ingredient", "vegetable", "fruit", "meat", "spice", "grain",
	"dairy", "herb", "oil", "rice", "wheat", "tomato", "onion", "potato",
	"carrot", "pepper", "garlic", "ginger", "chicken", "fish", "egg",
	"milk", "cheese", "yogurt", "bread", "flour", "sugar", "salt",
}

// IsFoodRelated reports whether a provider label mentions a food keyword.
func IsFoodRelated(label string) bool {
	l := strings.ToLower(label)
	for _, k := range foodKeywords {
		if strings.Contains(l, k) {
			return true
		}
	}
	return false
}

// Dedupe drops later ingredients whose name repeats an earlier one, ignoring case.
func Dedupe(in []Ingredient) []Ingredient {
	seen := make(map[string]bool, len(in))
	out := make([]Ingredient, 0, len(in))
	for _, ing := range in {
		key := strings.ToLower(ing.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ing)
	}
	return out
}

// Rank dedupes and orders by descending confidence. Equal confidences keep
// their input order.
func Rank(in []Ingredient) []Ingredient {
	out := Dedupe(in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}
