package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no record has the requested identifier.
var ErrNotFound = errors.New("recipe not found")

// ValidationError lists every problem found in a recipe.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid recipe: " + strings.Join(e.Problems, "; ")
}

// PersistenceError reports that a mutation was applied but the backing
// store could not be written.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
