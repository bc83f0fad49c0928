package recipe

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Store defines the interface for recipe and article data operations.
type Store interface {
	ListRecipes(ctx context.Context) ([]Recipe, error)
	FindRecipe(ctx context.Context, id int) (*Recipe, error)
	SearchRecipes(ctx context.Context, query, language string) ([]Recipe, error)
	AddRecipe(ctx context.Context, r Recipe) (*Recipe, error)
	UpdateRecipe(ctx context.Context, id int, patch RecipePatch) (*Recipe, error)
	DeleteRecipe(ctx context.Context, id int) error
	ListArticles(ctx context.Context) ([]Article, error)
	SearchArticles(ctx context.Context, query, language string) ([]Article, error)
	Close() error
}

// fold prepares text for case-insensitive substring matching. Telugu input
// arrives in both composed and decomposed forms, so it is NFC-normalized first.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// matches reports whether the folded query occurs in any field.
func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold(f), q) {
			return true
		}
	}
	return false
}

// FilterRecipes applies the search policy: an empty query returns every
// recipe unfiltered; otherwise a recipe is kept when the query occurs in its
// name, ingredients, instructions or cuisine and, if language is set, its
// language tag equals language ignoring case.
func FilterRecipes(recipes []Recipe, query, language string) []Recipe {
	if query == "" {
		return append([]Recipe{}, recipes...)
	}

	q := fold(query)
	results := []Recipe{}
	for _, r := range recipes {
		if language != "" && !strings.EqualFold(r.Language, language) {
			continue
		}
		if matches(q, r.Name, r.Ingredients, r.Instructions, r.Cuisine) {
			results = append(results, r)
		}
	}
	return results
}

// FilterArticles is FilterRecipes for articles over title, content and category.
func FilterArticles(articles []Article, query, language string) []Article {
	if query == "" {
		return append([]Article{}, articles...)
	}

	q := fold(query)
	results := []Article{}
	for _, a := range articles {
		if language != "" && !strings.EqualFold(a.Language, language) {
			continue
		}
		if matches(q, a.Title, a.Content, a.Category) {
			results = append(results, a)
		}
	}
	return results
}

// nextID returns max(existing ids, 0) + 1.
func nextID(recipes []Recipe) int {
	maxID := 0
	for _, r := range recipes {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}
