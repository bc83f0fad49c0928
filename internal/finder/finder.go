// Package finder finds recipes for a list of on-hand ingredients, using a
// remote recipe source when one is configured and local templates otherwise.
package finder

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"sahachari/internal/generator"
	"sahachari/internal/metrics"
	"sahachari/internal/provider"
	"sahachari/internal/recipe"
	"sahachari/internal/session"
)

const (
	capability = "find_recipes"
	// LocalName is reported when the template matcher produced the result.
	LocalName = "templates"
)

// Provider is a remote recipe search backend.
type Provider interface {
	provider.Provider
	FindByIngredients(ctx context.Context, ingredients []string) ([]recipe.Recipe, error)
}

// Result holds found recipes and where they came from. Notice is set when a
// remote failure forced the local templates.
type Result struct {
	Recipes  []recipe.Recipe `json:"recipes"`
	Provider string          `json:"provider"`
	Notice   session.Notice  `json:"-"`
}

// Service searches through the provider selected at construction.
type Service struct {
	active     Provider
	ok         bool
	candidates []Provider
	matcher    *generator.Matcher
}

// NewService selects the first configured candidate; matcher serves requests
// when none is configured or the selected one fails.
func NewService(matcher *generator.Matcher, candidates ...Provider) *Service {
	s := &Service{candidates: candidates, matcher: matcher}
	s.active, s.ok = provider.Select(candidates...)
	if s.ok {
		slog.Info("Recipe search provider selected", "provider", s.active.Name())
	} else {
		slog.Info("No recipe search provider configured; using local templates")
	}
	return s
}

// ProviderName returns the active provider's name, or LocalName.
func (s *Service) ProviderName() string {
	if !s.ok {
		return LocalName
	}
	return s.active.Name()
}

// Providers reports every candidate with its configuration state.
func (s *Service) Providers() map[string]bool {
	names := provider.Names(s.candidates...)
	names[LocalName] = true
	return names
}

// Find never fails: remote errors are logged and answered from the local
// templates. Blank ingredient names are ignored.
func (s *Service) Find(ctx context.Context, ingredients []string) *Result {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}

	if !s.ok {
		return &Result{Recipes: s.matcher.Generate(cleaned), Provider: LocalName}
	}

	start := time.Now()
	recipes, err := s.active.FindByIngredients(ctx, cleaned)
	metrics.RecordProviderCall(capability, s.active.Name(), err, time.Since(start).Seconds())
	if err != nil {
		metrics.RecordFallback(capability, "provider_error")
		slog.Warn("Recipe search failed, using local templates",
			"provider", s.active.Name(), "capability", capability, "error", err)
		return &Result{
			Recipes:  s.matcher.Generate(cleaned),
			Provider: LocalName,
			Notice:   session.NoticeLocalRecipes,
		}
	}

	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	return &Result{Recipes: recipes, Provider: s.active.Name()}
}
