package generator

import "strings"

// Suggester names catalog dishes that can mostly be made from what is on hand.
type Suggester struct {
	Dishes []TraditionalDish
	Ratio  float64
	Limit  int
}

// NewSuggester returns a Suggester over the built-in dish catalog.
func NewSuggester() *Suggester {
	return &Suggester{
		Dishes: TraditionalDishes(),
		Ratio:  0.5,
		Limit:  5,
	}
}

// Suggest returns dish names in catalog order. An available ingredient counts
// toward a dish when it occurs inside one of the dish's ingredient fragments;
// the reverse containment does not count.
func (s *Suggester) Suggest(available []string) []string {
	names := []string{}
	for _, dish := range s.Dishes {
		if len(names) >= s.Limit {
			break
		}

		matches := 0
		for _, a := range available {
			if occursIn(strings.ToLower(a), dish.Ingredients) {
				matches++
			}
		}
		if float64(matches) >= float64(len(dish.Ingredients))*s.Ratio {
			names = append(names, dish.Name)
		}
	}
	return names
}

func occursIn(ingredient string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(strings.ToLower(f), ingredient) {
			return true
		}
	}
	return false
}
