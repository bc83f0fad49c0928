package recipe

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newSQLiteTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sahachari.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLStore_SeedsEmptyDatabase(t *testing.T) {
	store := newSQLiteTestStore(t)
	ctx := context.Background()

	recipes, err := store.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, SampleRecipes(), recipes)

	articles, err := store.ListArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, SampleArticles(), articles)
}

func TestSQLStore_ReopenDoesNotReseed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sahachari.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.DeleteRecipe(context.Background(), 1))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	recipes, err := store.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestSQLStore_CRUD(t *testing.T) {
	store := newSQLiteTestStore(t)
	ctx := context.Background()

	added, err := store.AddRecipe(ctx, Recipe{
		Name:         "Bendakaya Fry",
		Ingredients:  "Okra, Chili powder, Oil",
		Instructions: "Slice okra and fry until crisp.",
		CookingTime:  "20 minutes",
		Language:     "english",
		Type:         "traditional",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, added.ID)

	found, err := store.FindRecipe(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, *added, *found)

	difficulty := "Easy"
	updated, err := store.UpdateRecipe(ctx, 3, RecipePatch{Difficulty: &difficulty})
	require.NoError(t, err)
	assert.Equal(t, "Easy", updated.Difficulty)
	assert.Equal(t, "Bendakaya Fry", updated.Name)
	assert.Equal(t, "traditional", updated.Type)

	require.NoError(t, store.DeleteRecipe(ctx, 3))
	_, err = store.FindRecipe(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.DeleteRecipe(ctx, 3), ErrNotFound)
	_, err = store.UpdateRecipe(ctx, 3, RecipePatch{Difficulty: &difficulty})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_SearchMatchesJSONStore(t *testing.T) {
	sqlStore := newSQLiteTestStore(t)
	jsonStore := newTestStore(t)
	ctx := context.Background()

	for _, q := range []string{"", "dal", "పప్పు", "ONION", "clay"} {
		want, err := jsonStore.SearchRecipes(ctx, q, "")
		require.NoError(t, err)
		got, err := sqlStore.SearchRecipes(ctx, q, "")
		require.NoError(t, err)
		assert.Equal(t, want, got, q)

		wantArticles, _ := jsonStore.SearchArticles(ctx, q, "english")
		gotArticles, err := sqlStore.SearchArticles(ctx, q, "english")
		require.NoError(t, err)
		assert.Equal(t, wantArticles, gotArticles, q)
	}
}

func TestSQLStore_TeluguRoundTrip(t *testing.T) {
	store := newSQLiteTestStore(t)
	ctx := context.Background()

	in := Recipe{Name: "పులిహోర", Ingredients: "బియ్యం, చింతపండు", Instructions: "అన్నంలో పులుసు కలపాలి.", Language: "telugu"}
	added, err := store.AddRecipe(ctx, in)
	require.NoError(t, err)

	got, err := store.FindRecipe(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "పులిహోర", got.Name)
	assert.Equal(t, "బియ్యం, చింతపండు", got.Ingredients)
}

func TestRecipeLockStatement(t *testing.T) {
	assert.Equal(t, "LOCK TABLE recipes IN EXCLUSIVE MODE", recipeLockStatement("postgres"))
	assert.Empty(t, recipeLockStatement("sqlite"))
}

func TestSQLStore_ConcurrentAddsGetDistinctIDs(t *testing.T) {
	store := newSQLiteTestStore(t)
	ctx := context.Background()

	var (
		mu  sync.Mutex
		ids = map[int]bool{}
	)
	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			added, err := store.AddRecipe(ctx, Recipe{Name: fmt.Sprintf("Dish %d", i), Language: "english"})
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			ids[added.ID] = true
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, ids, 20)
	for id := 3; id <= 22; id++ {
		assert.True(t, ids[id], "id %d assigned", id)
	}

	recipes, err := store.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 22)
}
