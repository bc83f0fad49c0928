package recipe

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvColumns = []string{"id", "name", "ingredients", "instructions", "cooking_time", "difficulty", "language", "cuisine"}

// Adder is the part of Store that ImportCSV needs.
type Adder interface {
	AddRecipe(ctx context.Context, r Recipe) (*Recipe, error)
}

// ImportCSV adds one recipe per row of r through store.AddRecipe. The first
// row is a header; unknown columns are ignored and a missing language
// defaults to "english". It returns how many rows were added. A persistence
// failure stops the import after the row it happened on.
func ImportCSV(ctx context.Context, store Adder, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}

	imported := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("failed to read CSV row %d: %w", imported+2, err)
		}

		get := func(col string) string {
			if i, ok := index[col]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		rec := Recipe{
			Name:         get("name"),
			Ingredients:  get("ingredients"),
			Instructions: get("instructions"),
			CookingTime:  get("cooking_time"),
			Difficulty:   get("difficulty"),
			Language:     strings.ToLower(get("language")),
			Cuisine:      get("cuisine"),
		}
		if rec.Language == "" {
			rec.Language = "english"
		}

		if _, err := store.AddRecipe(ctx, rec); err != nil {
			var perr *PersistenceError
			if errors.As(err, &perr) {
				imported++
			}
			return imported, err
		}
		imported++
	}

	return imported, nil
}

// ExportCSV writes a header and one row per recipe.
func ExportCSV(w io.Writer, recipes []Recipe) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range recipes {
		row := []string{
			strconv.Itoa(r.ID),
			r.Name,
			r.Ingredients,
			r.Instructions,
			r.CookingTime,
			r.Difficulty,
			r.Language,
			r.Cuisine,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
