package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"sahachari/internal/provider"
	"sahachari/internal/vision"
)

const identifyPrompt = "List the food ingredients visible in this image. Return a single, clean JSON object with the key " +
	"'ingredients', an array of objects with the keys 'name' (string) and 'confidence' (number between 0 and 1). " +
	"The JSON response should be clean and not contain any markdown formatting (e.g., ```json)."

// Identify returns the ingredients Gemini sees in img. Images that do not
// show food yield no ingredients.
func (c *Client) Identify(ctx context.Context, img *vision.Image) ([]vision.Ingredient, error) {
	isFood, _, err := c.IsFoodImage(ctx, img.JPEG)
	if err != nil {
		return nil, fmt.Errorf("failed to check if image is food: %w", err)
	}
	if !isFood {
		return []vision.Ingredient{}, nil
	}

	reply, err := c.generate(ctx, genai.ImageData("jpeg", img.JPEG), genai.Text(identifyPrompt))
	if err != nil {
		return nil, err
	}
	return parseIngredients(reply)
}

func parseIngredients(reply string) ([]vision.Ingredient, error) {
	cleanJSON, err := extractJSON(reply)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Ingredients []struct {
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
		} `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(cleanJSON), &parsed); err != nil {
		return nil, provider.TransportError(name, fmt.Errorf("failed to unmarshal ingredients JSON: %w", err))
	}

	found := make([]vision.Ingredient, 0, len(parsed.Ingredients))
	for _, ing := range parsed.Ingredients {
		if ing.Name == "" {
			continue
		}
		conf := ing.Confidence
		if conf > 1 {
			conf = 1
		} else if conf < 0 {
			conf = 0
		}
		found = append(found, vision.Ingredient{Name: ing.Name, Confidence: conf, Source: "model"})
	}
	return found, nil
}
