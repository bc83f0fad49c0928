package openai

import (
	"context"
	"fmt"
	"strings"

	"sahachari/internal/recipe"
)

const recipePrompt = "Suggest up to 3 recipes that mainly use these ingredients: %s. " +
	"Return a single, clean JSON object with the key 'recipes', an array of objects with the keys " +
	"'name' (string), 'ingredients' (array of strings), 'instructions' (string), 'cooking_time' (string, including units), " +
	"'difficulty' (string), 'servings' (string) and 'cuisine' (string). " +
	"The JSON response should be clean and not contain any markdown formatting."

type suggestedRecipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	CookingTime  string   `json:"cooking_time"`
	Difficulty   string   `json:"difficulty"`
	Servings     string   `json:"servings"`
	Cuisine      string   `json:"cuisine"`
}

// FindByIngredients asks the model for recipes using the ingredients.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string) ([]recipe.Recipe, error) {
	reply, err := c.GenerateContent(ctx, fmt.Sprintf(recipePrompt, strings.Join(ingredients, ", ")), nil)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Recipes []suggestedRecipe `json:"recipes"`
	}
	if err := decodeJSON(reply, &parsed); err != nil {
		return nil, err
	}

	recipes := make([]recipe.Recipe, 0, len(parsed.Recipes))
	for _, s := range parsed.Recipes {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		recipes = append(recipes, recipe.Recipe{
			Name:         s.Name,
			Ingredients:  strings.Join(s.Ingredients, ", "),
			Instructions: s.Instructions,
			CookingTime:  s.CookingTime,
			Difficulty:   s.Difficulty,
			Servings:     s.Servings,
			Cuisine:      s.Cuisine,
			Language:     "english",
			Source:       "OpenAI",
		})
	}
	return recipes, nil
}
