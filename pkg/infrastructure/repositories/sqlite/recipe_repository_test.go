package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/grocer/pkg/domain/entities"
)

func openTestRepository(t *testing.T) (*RecipeRepository, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRecipeRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation should be idempotent")
	return repo, db
}

func exec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

func TestRecipeRepository_GetRecipe(t *testing.T) {
	repo, db := openTestRepository(t)
	ctx := context.Background()

	exec(t, db, `INSERT INTO recipes (id, name) VALUES (1, 'Pancakes')`)
	exec(t, db, `INSERT INTO ingredients (recipe_id, name, quantity, unit, sort_order) VALUES
		(1, 'milk', 1.25, 'cups', 2),
		(1, 'flour', 1.5, 'cups', 0),
		(1, 'sugar', 0.3333333333, 'cup', 1),
		(1, 'salt', NULL, NULL, 3),
		(1, 'eggs', 2, '', 4),
		(1, 'vanilla', 0.2, 'tsp', 5),
		(1, 'thyme', 'a few', 'sprigs', 6)`)

	recipe, err := repo.GetRecipe(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, entities.RecipeID("1"), recipe.ID)
	assert.Equal(t, "Pancakes", recipe.Name)

	expected := []entities.RawIngredient{
		{Name: "flour", Quantity: "3/2", Unit: "cups", SortOrder: 0},
		{Name: "sugar", Quantity: "1/3", Unit: "cup", SortOrder: 1},
		{Name: "milk", Quantity: "5/4", Unit: "cups", SortOrder: 2},
		{Name: "salt", Quantity: "", Unit: "", SortOrder: 3},
		{Name: "eggs", Quantity: "2", Unit: "", SortOrder: 4},
		{Name: "vanilla", Quantity: "1/5", Unit: "tsp", SortOrder: 5},
		{Name: "thyme", Quantity: "a few", Unit: "sprigs", SortOrder: 6},
	}
	assert.Equal(t, expected, recipe.Ingredients)
}

func TestRecipeRepository_NotFound(t *testing.T) {
	repo, _ := openTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetRecipe(ctx, "42")
	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)

	_, err = repo.GetRecipe(ctx, "pancakes")
	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}

func TestRecipeRepository_GetAllRecipesAndSelections(t *testing.T) {
	repo, db := openTestRepository(t)
	ctx := context.Background()

	exec(t, db, `INSERT INTO recipes (id, name) VALUES (1, 'Pancakes'), (2, 'Tacos'), (3, 'Soup')`)
	exec(t, db, `INSERT INTO ingredients (recipe_id, name, quantity, unit) VALUES (2, 'tortillas', 1, 'package')`)
	exec(t, db, `INSERT INTO shopping_selections (recipe_id) VALUES (3), (1), (3)`)

	all, err := repo.GetAllRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Pancakes", all[0].Name)
	assert.Empty(t, all[0].Ingredients)
	assert.Equal(t, "tortillas", all[1].Ingredients[0].Name)

	selected, err := repo.SelectedRecipeIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.RecipeID{"3", "1"}, selected)

	recipes, err := repo.GetRecipes(ctx, selected)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Soup", recipes[0].Name)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "recipes.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, NewRecipeRepository(db).EnsureSchema(context.Background()))
}

func TestQuantityText(t *testing.T) {
	testCases := []struct {
		value    any
		expected string
	}{
		{nil, ""},
		{int64(3), "3"},
		{float64(2), "2"},
		{0.5, "1/2"},
		{0.6666666667, "2/3"},
		{0.375, "3/8"},
		{0.1, "1/10"},
		{2.2, "11/5"},
		{-0.3, "-0.3"},
		{[]byte(" 1 1/2 "), "1 1/2"},
		{"pinch", "pinch"},
	}

	repo := NewRecipeRepository(nil)
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, repo.quantityText(tc.value), "value %v", tc.value)
	}
}
