package generator

import (
	"math"
	"strings"

	"sahachari/internal/recipe"
)

const (
	defaultCoverage  = 0.6
	defaultMaxDrafts = 3
)

// Matcher turns a set of available ingredients into recipes by filling in
// every template whose required ingredients are sufficiently covered.
type Matcher struct {
	Templates []DishTemplate
	// Coverage is the fraction of required fragments that must be on hand.
	Coverage float64
	Limit    int
}

// NewMatcher returns a Matcher over the built-in templates.
func NewMatcher() *Matcher {
	return &Matcher{
		Templates: Templates(),
		Coverage:  defaultCoverage,
		Limit:     defaultMaxDrafts,
	}
}

// Generate returns at most m.Limit recipes, one per suitable template in
// catalog order. The result is never nil.
func (m *Matcher) Generate(available []string) []recipe.Recipe {
	recipes := []recipe.Recipe{}
	for _, t := range m.Templates {
		if len(recipes) >= m.Limit {
			break
		}
		if m.suitable(t, available) {
			recipes = append(recipes, FromTemplate(t, available))
		}
	}
	return recipes
}

func (m *Matcher) suitable(t DishTemplate, available []string) bool {
	covered := 0
	for _, fragment := range t.Required {
		if _, ok := firstOverlap(fragment, available); ok {
			covered++
		}
	}
	// The epsilon keeps 0.6*5 from rounding up to 4.
	need := int(math.Ceil(m.Coverage*float64(len(t.Required)) - 1e-9))
	return covered >= need
}

// FromTemplate builds a recipe from t. Each required fragment is replaced by
// the first available ingredient overlapping it, or kept literally; optional
// fragments are appended only when an available ingredient contains them.
func FromTemplate(t DishTemplate, available []string) recipe.Recipe {
	ingredients := make([]string, 0, len(t.Required)+len(t.Optional))
	for _, fragment := range t.Required {
		if name, ok := firstOverlap(fragment, available); ok {
			ingredients = append(ingredients, name)
		} else {
			ingredients = append(ingredients, fragment)
		}
	}
	for _, fragment := range t.Optional {
		f := strings.ToLower(fragment)
		for _, a := range available {
			if strings.Contains(strings.ToLower(a), f) {
				ingredients = append(ingredients, a)
				break
			}
		}
	}

	return recipe.Recipe{
		Name:         t.Name,
		Type:         t.Type,
		Ingredients:  strings.Join(ingredients, ", "),
		Instructions: t.Instructions,
		CookingTime:  t.CookingTime,
		Difficulty:   t.Difficulty,
		Servings:     t.Servings,
		Language:     "english",
		Source:       "Generated",
	}
}

// firstOverlap returns the first available ingredient that contains fragment
// or is contained in it, ignoring case.
func firstOverlap(fragment string, available []string) (string, bool) {
	f := strings.ToLower(fragment)
	for _, a := range available {
		l := strings.ToLower(a)
		if l == "" {
			continue
		}
		if strings.Contains(l, f) || strings.Contains(f, l) {
			return a, true
		}
	}
	return "", false
}
