package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"sahachari/internal/metrics"
)

const recipeColumns = "id, name, ingredients, instructions, cooking_time, difficulty, language, cuisine, " +
	"type, servings, source, cultural_significance, health_benefits, fusion_style, calories, prep_time"

const articleColumns = "id, title, content, date, source, language, category"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		ingredients TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		cooking_time TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		cuisine TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		servings TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		cultural_significance TEXT NOT NULL DEFAULT '',
		health_benefits TEXT NOT NULL DEFAULT '',
		fusion_style TEXT NOT NULL DEFAULT '',
		calories TEXT NOT NULL DEFAULT '',
		prep_time TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT ''
	)`,
}

// SQLStore implements Store on PostgreSQL or SQLite. Search loads the rows
// and filters them with FilterRecipes/FilterArticles so both stores match
// identically.
type SQLStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new SQLStore backed by PostgreSQL.
func NewPostgresStore(dataSourceName string) (*SQLStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return newSQLStore(db)
}

// NewSQLiteStore creates a new SQLStore backed by the SQLite file at path.
func NewSQLiteStore(path string) (*SQLStore, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection serializes writers the same way the JSON store does.
	db.SetMaxOpenConns(1)
	return newSQLStore(db)
}

func newSQLStore(db *sqlx.DB) (*SQLStore, error) {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	s := &SQLStore{db: db}
	if err := s.seed(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// seed inserts the sample data into an empty database.
func (s *SQLStore) seed(ctx context.Context) error {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT (SELECT COUNT(*) FROM recipes) + (SELECT COUNT(*) FROM articles)"); err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, r := range SampleRecipes() {
		if err := insertRecipe(ctx, tx, r); err != nil {
			return err
		}
	}
	for _, a := range SampleArticles() {
		_, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO articles ("+articleColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)"),
			a.ID, a.Title, a.Content, a.Date, a.Source, a.Language, a.Category)
		if err != nil {
			return fmt.Errorf("failed to seed article: %w", err)
		}
	}
	return tx.Commit()
}

// ListRecipes returns every recipe ordered by id, which is insertion order.
func (s *SQLStore) ListRecipes(ctx context.Context) ([]Recipe, error) {
	recipes := []Recipe{}
	if err := s.db.SelectContext(ctx, &recipes, "SELECT "+recipeColumns+" FROM recipes ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}
	return recipes, nil
}

// FindRecipe retrieves a recipe by id.
func (s *SQLStore) FindRecipe(ctx context.Context, id int) (*Recipe, error) {
	var r Recipe
	err := s.db.GetContext(ctx, &r, s.db.Rebind("SELECT "+recipeColumns+" FROM recipes WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by id: %w", err)
	}
	return &r, nil
}

// SearchRecipes filters recipes with FilterRecipes.
func (s *SQLStore) SearchRecipes(ctx context.Context, query, language string) ([]Recipe, error) {
	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRecipes(recipes, query, language), nil
}

// recipeLockStatement returns the statement that serializes id assignment
// for driver, or "" when the store already allows a single writer.
func recipeLockStatement(driver string) string {
	if driver == "postgres" {
		// Blocks other writers until commit; plain reads still proceed.
		return "LOCK TABLE recipes IN EXCLUSIVE MODE"
	}
	return ""
}

// AddRecipe assigns max(id)+1 and inserts inside one transaction. Unlike the
// JSON store nothing is kept when the write fails.
func (s *SQLStore) AddRecipe(ctx context.Context, r Recipe) (*Recipe, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, s.persistErr("add recipe", err)
	}
	defer tx.Rollback()

	if stmt := recipeLockStatement(s.db.DriverName()); stmt != "" {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, s.persistErr("add recipe", err)
		}
	}

	if err := tx.GetContext(ctx, &r.ID, "SELECT COALESCE(MAX(id), 0) + 1 FROM recipes"); err != nil {
		return nil, s.persistErr("add recipe", err)
	}
	if err := insertRecipe(ctx, tx, r); err != nil {
		return nil, s.persistErr("add recipe", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.persistErr("add recipe", err)
	}

	metrics.RecordStoreWrite("sql", nil)
	return &r, nil
}

// UpdateRecipe merges patch into the stored recipe.
func (s *SQLStore) UpdateRecipe(ctx context.Context, id int, patch RecipePatch) (*Recipe, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, s.persistErr("update recipe", err)
	}
	defer tx.Rollback()

	var r Recipe
	err = tx.GetContext(ctx, &r, tx.Rebind("SELECT "+recipeColumns+" FROM recipes WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	patch.Apply(&r)

	assignments := make([]string, 0, 15)
	for _, col := range strings.Split(recipeColumns, ", ")[1:] {
		assignments = append(assignments, col+" = ?")
	}
	_, err = tx.ExecContext(ctx, tx.Rebind("UPDATE recipes SET "+strings.Join(assignments, ", ")+" WHERE id = ?"),
		append(recipeValues(r)[1:], r.ID)...)
	if err != nil {
		return nil, s.persistErr("update recipe", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.persistErr("update recipe", err)
	}

	metrics.RecordStoreWrite("sql", nil)
	return &r, nil
}

// DeleteRecipe removes a recipe; an unknown id returns ErrNotFound.
func (s *SQLStore) DeleteRecipe(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM recipes WHERE id = ?"), id)
	if err != nil {
		return s.persistErr("delete recipe", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.persistErr("delete recipe", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	metrics.RecordStoreWrite("sql", nil)
	return nil
}

// ListArticles returns every article ordered by id.
func (s *SQLStore) ListArticles(ctx context.Context) ([]Article, error) {
	articles := []Article{}
	if err := s.db.SelectContext(ctx, &articles, "SELECT "+articleColumns+" FROM articles ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	return articles, nil
}

// SearchArticles filters articles with FilterArticles.
func (s *SQLStore) SearchArticles(ctx context.Context, query, language string) ([]Article, error) {
	articles, err := s.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	return FilterArticles(articles, query, language), nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) persistErr(op string, err error) error {
	metrics.RecordStoreWrite("sql", err)
	return &PersistenceError{Op: op, Err: err}
}

func insertRecipe(ctx context.Context, tx *sqlx.Tx, r Recipe) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 16), ", ")
	_, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO recipes ("+recipeColumns+") VALUES ("+placeholders+")"),
		recipeValues(r)...)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// recipeValues lists r's fields in recipeColumns order.
func recipeValues(r Recipe) []any {
	return []any{
		r.ID, r.Name, r.Ingredients, r.Instructions, r.CookingTime, r.Difficulty, r.Language, r.Cuisine,
		r.Type, r.Servings, r.Source, r.CulturalSignificance, r.HealthBenefits, r.FusionStyle, r.Calories, r.PrepTime,
	}
}
