package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"sahachari/internal/provider"
	"sahachari/internal/recipe"
)

const recipePrompt = "I need up to 3 recipes that mainly use these ingredients: %s. Please return a single, clean JSON object " +
	"with the key 'recipes', an array of objects with the following keys and data types: 'title' (string), 'cuisine' (string), " +
	"'cooking_time' (string), 'difficulty' (string), 'servings' (string), 'ingredients' (map of ingredient names to quantities), " +
	"and 'instructions' (array of strings). The JSON response should be clean and not contain any markdown formatting (e.g., ```json)."

type generatedRecipe struct {
	Title        string            `json:"title"`
	Cuisine      string            `json:"cuisine"`
	CookingTime  string            `json:"cooking_time"`
	Difficulty   string            `json:"difficulty"`
	Servings     string            `json:"servings"`
	Ingredients  map[string]string `json:"ingredients"`
	Instructions []string          `json:"instructions"`
}

// FindByIngredients asks Gemini for recipes built around the ingredients.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string) ([]recipe.Recipe, error) {
	reply, err := c.generate(ctx, genai.Text(fmt.Sprintf(recipePrompt, strings.Join(ingredients, ", "))))
	if err != nil {
		return nil, err
	}
	return parseRecipes(reply)
}

func parseRecipes(reply string) ([]recipe.Recipe, error) {
	cleanJSON, err := extractJSON(reply)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Recipes []generatedRecipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(cleanJSON), &parsed); err != nil {
		return nil, provider.TransportError(name, fmt.Errorf("failed to unmarshal recipe JSON: %w", err))
	}

	recipes := make([]recipe.Recipe, 0, len(parsed.Recipes))
	for _, g := range parsed.Recipes {
		if strings.TrimSpace(g.Title) == "" {
			continue
		}
		recipes = append(recipes, recipe.Recipe{
			Name:         g.Title,
			Ingredients:  joinIngredients(g.Ingredients),
			Instructions: numberSteps(g.Instructions),
			CookingTime:  g.CookingTime,
			Difficulty:   g.Difficulty,
			Servings:     g.Servings,
			Cuisine:      g.Cuisine,
			Language:     "english",
			Source:       "Gemini",
		})
	}
	return recipes, nil
}

// joinIngredients renders "quantity name" pairs sorted by name so output is stable.
func joinIngredients(m map[string]string) string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, n := range names {
		if q := strings.TrimSpace(m[n]); q != "" {
			parts = append(parts, q+" "+n)
		} else {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, ", ")
}

func numberSteps(steps []string) string {
	out := make([]string, 0, len(steps))
	for i, s := range steps {
		out = append(out, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(s)))
	}
	return strings.Join(out, " ")
}
