// Package spoonacular finds recipes by ingredient with the Spoonacular API.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sahachari/internal/provider"
	"sahachari/internal/recipe"
)

const (
	name           = "spoonacular"
	defaultBaseURL = "https://api.spoonacular.com"
	maxRecipes     = 3
)

// Client is a client for the Spoonacular recipes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// NewClient creates a client; an empty apiKey leaves it unconfigured.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string     { return name }
func (c *Client) Configured() bool { return c.apiKey != "" }

type match struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type information struct {
	Title               string `json:"title"`
	ReadyInMinutes      int    `json:"readyInMinutes"`
	Servings            int    `json:"servings"`
	ExtendedIngredients []struct {
		Original string `json:"original"`
	} `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Number int    `json:"number"`
			Step   string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
}

// FindByIngredients returns up to three recipes that use the most of the
// given ingredients. Recipes whose details cannot be fetched are skipped.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string) ([]recipe.Recipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("ingredients", strings.Join(ingredients, ","))
	params.Set("number", strconv.Itoa(maxRecipes))
	params.Set("ranking", "1")
	params.Set("ignorePantry", "true")

	var matches []match
	if err := c.get(ctx, "/recipes/findByIngredients", params, &matches); err != nil {
		return nil, err
	}

	recipes := make([]recipe.Recipe, 0, len(matches))
	for _, m := range matches {
		r, err := c.information(ctx, m.ID)
		if err != nil {
			slog.Warn("Failed to get recipe details", "provider", name, "id", m.ID, "error", err)
			continue
		}
		recipes = append(recipes, *r)
	}
	return recipes, nil
}

func (c *Client) information(ctx context.Context, id int) (*recipe.Recipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("includeNutrition", "false")

	var info information
	if err := c.get(ctx, fmt.Sprintf("/recipes/%d/information", id), params, &info); err != nil {
		return nil, err
	}

	ingredients := make([]string, 0, len(info.ExtendedIngredients))
	for _, ing := range info.ExtendedIngredients {
		ingredients = append(ingredients, ing.Original)
	}

	var steps []string
	for _, group := range info.AnalyzedInstructions {
		for _, s := range group.Steps {
			steps = append(steps, fmt.Sprintf("%d. %s", s.Number, s.Step))
		}
	}

	r := &recipe.Recipe{
		Name:         info.Title,
		Ingredients:  strings.Join(ingredients, ", "),
		Instructions: strings.Join(steps, " "),
		Language:     "english",
		Source:       "Spoonacular",
	}
	if r.Name == "" {
		r.Name = "Unknown Recipe"
	}
	if info.ReadyInMinutes > 0 {
		r.CookingTime = fmt.Sprintf("%d minutes", info.ReadyInMinutes)
	}
	if info.Servings > 0 {
		r.Servings = strconv.Itoa(info.Servings)
	}
	return r, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return provider.TransportError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return provider.StatusError(name, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return provider.TransportError(name, fmt.Errorf("failed to decode response body: %w", err))
	}
	return nil
}
