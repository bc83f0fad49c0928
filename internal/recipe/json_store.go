package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"sahachari/internal/metrics"
)

// JSONStore keeps recipes and articles in memory and rewrites the whole
// backing document after every mutation. Mutation and write happen under one
// lock, so concurrent writers cannot interleave partial documents.
type JSONStore struct {
	mu       sync.RWMutex
	path     string
	recipes  []Recipe
	articles []Article
	// extra holds top-level document keys the store does not use.
	extra map[string]json.RawMessage
}

// OpenJSONStore loads the document at path. A missing document starts the
// store with sample data; nothing is written until the first mutation.
func OpenJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("No data file found. Using minimal sample data.", "path", path)
		s.recipes = SampleRecipes()
		s.articles = SampleArticles()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}

	s.recipes = doc.Recipes
	s.articles = doc.Newspapers
	s.extra = doc.Extra
	if len(s.articles) == 0 {
		s.articles = doc.Articles
	}
	if s.recipes == nil {
		s.recipes = []Recipe{}
	}
	if s.articles == nil {
		s.articles = []Article{}
	}

	return s, nil
}

// Path returns the backing document path.
func (s *JSONStore) Path() string {
	return s.path
}

// ListRecipes returns every recipe in insertion order.
func (s *JSONStore) ListRecipes(ctx context.Context) ([]Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Recipe{}, s.recipes...), nil
}

// FindRecipe returns the recipe with the given id or ErrNotFound.
func (s *JSONStore) FindRecipe(ctx context.Context, id int) (*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// SearchRecipes filters recipes with FilterRecipes.
func (s *JSONStore) SearchRecipes(ctx context.Context, query, language string) ([]Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FilterRecipes(s.recipes, query, language), nil
}

// AddRecipe assigns the next id, appends and persists. On a write failure the
// recipe stays in memory and is returned together with a *PersistenceError.
func (s *JSONStore) AddRecipe(ctx context.Context, r Recipe) (*Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = nextID(s.recipes)
	s.recipes = append(s.recipes, r)

	added := r
	return &added, s.persist("add recipe")
}

// UpdateRecipe merges patch into the recipe with the given id and persists.
func (s *JSONStore) UpdateRecipe(ctx context.Context, id int, patch RecipePatch) (*Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == id {
			patch.Apply(&s.recipes[i])
			updated := s.recipes[i]
			return &updated, s.persist("update recipe")
		}
	}
	return nil, ErrNotFound
}

// DeleteRecipe removes the recipe with the given id. Deleting an unknown id
// returns ErrNotFound and does not touch the document.
func (s *JSONStore) DeleteRecipe(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(s.recipes) {
		return ErrNotFound
	}

	s.recipes = kept
	return s.persist("delete recipe")
}

// ListArticles returns every article in insertion order.
func (s *JSONStore) ListArticles(ctx context.Context) ([]Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Article{}, s.articles...), nil
}

// SearchArticles filters articles with FilterArticles.
func (s *JSONStore) SearchArticles(ctx context.Context, query, language string) ([]Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FilterArticles(s.articles, query, language), nil
}

// Close is a no-op; every mutation is already on disk.
func (s *JSONStore) Close() error {
	return nil
}

// persist writes both collections to the document. Callers hold s.mu.
func (s *JSONStore) persist(op string) error {
	err := s.write()
	metrics.RecordStoreWrite("json", err)
	if err != nil {
		slog.Error("Failed to save data", "op", op, "path", s.path, "error", err)
		return &PersistenceError{Op: op, Path: s.path, Err: err}
	}
	return nil
}

func (s *JSONStore) write() error {
	doc := Document{Recipes: s.recipes, Newspapers: s.articles, Extra: s.extra}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".sample_data-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), s.path)
}
