package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"sahachari/internal/recipe"
)

// Category names accepted by Generator.Generate.
const (
	Traditional = "traditional"
	Modern      = "modern"
	Fusion      = "fusion"
	Healthy     = "healthy"
	Quick       = "quick"
	Random      = "random"
)

// Categories lists the concrete categories in display order.
var Categories = []string{Traditional, Modern, Fusion, Healthy, Quick}

// Generator produces one randomized recipe per call for a category. The
// shape of each category's recipe is fixed; only sampled words vary.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	dishes []TraditionalDish
}

// NewGenerator seeds the generator from src. A nil src uses a time-seeded PCG.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), 0x5a4ac4a21)
	}
	return &Generator{rng: rand.New(src), dishes: TraditionalDishes()}
}

// Generate returns a recipe for category, matched case-insensitively.
// "random" picks one of Categories.
func (g *Generator) Generate(category string) (*recipe.Recipe, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	name := strings.ToLower(strings.TrimSpace(category))
	if name == Random {
		name = g.pick(Categories)
	}

	var r recipe.Recipe
	switch name {
	case Traditional:
		r = g.traditional()
	case Modern:
		r = g.modern()
	case Fusion:
		r = g.fusion()
	case Healthy:
		r = g.healthy()
	case Quick:
		r = g.quick()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCategory, category)
	}
	r.Language = "english"
	return &r, nil
}

func (g *Generator) traditional() recipe.Recipe {
	d := g.dishes[g.rng.IntN(len(g.dishes))]
	return recipe.Recipe{
		Name:                 d.Name,
		Type:                 "Traditional",
		Ingredients:          strings.Join(d.Ingredients, ", "),
		Instructions:         d.Instructions,
		CookingTime:          d.CookingTime,
		Difficulty:           d.Difficulty,
		CulturalSignificance: d.CulturalSignificance,
		Source:               "Traditional Recipe Database",
	}
}

func (g *Generator) modern() recipe.Recipe {
	return recipe.Recipe{
		Name:           "Modern " + g.pick(modernDishes),
		Type:           "Modern",
		Ingredients:    strings.Join(g.sample(modernIngredients, 5), ", "),
		Instructions:   fmt.Sprintf("1. Prepare ingredients using %s. 2. Combine in a modern style. 3. Season and serve fresh.", g.pick(modernTechniques)),
		CookingTime:    "20 minutes",
		Difficulty:     "easy",
		HealthBenefits: "High in nutrients and antioxidants",
		Source:         "Modern Recipe Generator",
	}
}

func (g *Generator) fusion() recipe.Recipe {
	pair := g.sample(fusionCuisines, 2)
	return recipe.Recipe{
		Name:         fmt.Sprintf("%s-%s Fusion Dish", pair[0], pair[1]),
		Type:         "Fusion",
		Ingredients:  "Mix of traditional ingredients from both cuisines",
		Instructions: fmt.Sprintf("Combine cooking techniques and flavors from %s and %s cuisines.", pair[0], pair[1]),
		CookingTime:  "35 minutes",
		Difficulty:   "medium",
		Cuisine:      pair[0] + "-" + pair[1],
		FusionStyle:  fmt.Sprintf("%s meets %s", pair[0], pair[1]),
		Source:       "Fusion Recipe Generator",
	}
}

func (g *Generator) healthy() recipe.Recipe {
	return recipe.Recipe{
		Name:           "Healthy " + g.pick(healthyDishes),
		Type:           "Healthy",
		Ingredients:    strings.Join(g.sample(healthyIngredients, 4), ", "),
		Instructions:   "1. Choose fresh, organic ingredients. 2. Use minimal oil and healthy cooking methods. 3. Balance proteins, carbs, and healthy fats.",
		CookingTime:    "25 minutes",
		Difficulty:     "easy",
		Calories:       "Low to moderate",
		HealthBenefits: "High in vitamins, minerals, and antioxidants",
		Source:         "Healthy Recipe Generator",
	}
}

func (g *Generator) quick() recipe.Recipe {
	return recipe.Recipe{
		Name:         "Quick " + g.pick(quickDishes),
		Type:         "Quick",
		Ingredients:  "Ready-to-use ingredients, pre-cooked items",
		Instructions: fmt.Sprintf("Use %s method for fastest preparation.", g.pick(quickMethods)),
		CookingTime:  "10 minutes",
		Difficulty:   "very easy",
		PrepTime:     "5 minutes",
		Source:       "Quick Recipe Generator",
	}
}

func (g *Generator) pick(words []string) string {
	return words[g.rng.IntN(len(words))]
}

// sample returns k distinct words in random order.
func (g *Generator) sample(words []string, k int) []string {
	out := make([]string, 0, k)
	for _, i := range g.rng.Perm(len(words))[:k] {
		out = append(out, words[i])
	}
	return out
}
