package openai

import (
	"context"

	"sahachari/internal/vision"
)

const identifyPrompt = "List the food ingredients visible in this image. " +
	"Return a single, clean JSON object with the key 'ingredients', an array of objects with the keys " +
	"'name' (string) and 'confidence' (number between 0 and 1). If there is no food, return an empty array. " +
	"The JSON response should be clean and not contain any markdown formatting."

// Identify asks the model which ingredients the image shows.
func (c *Client) Identify(ctx context.Context, img *vision.Image) ([]vision.Ingredient, error) {
	reply, err := c.GenerateContent(ctx, identifyPrompt, img.JPEG)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Ingredients []struct {
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
		} `json:"ingredients"`
	}
	if err := decodeJSON(reply, &parsed); err != nil {
		return nil, err
	}

	found := make([]vision.Ingredient, 0, len(parsed.Ingredients))
	for _, ing := range parsed.Ingredients {
		if ing.Name == "" {
			continue
		}
		found = append(found, vision.Ingredient{Name: ing.Name, Confidence: clamp(ing.Confidence), Source: "model"})
	}
	return found, nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
