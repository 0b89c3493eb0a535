package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/grocer/pkg/domain/entities"
)

func newRecipe(t *testing.T, id entities.RecipeID, name string, ingredients ...entities.RawIngredient) *entities.Recipe {
	t.Helper()
	recipe, err := entities.NewRecipe(id, name, ingredients)
	require.NoError(t, err)
	return recipe
}

func TestRecipeRepository_SaveRecipe(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository(2)

	recipe := newRecipe(t, "pancakes", "Pancakes",
		entities.RawIngredient{Name: "flour", Quantity: "1 1/2", Unit: "cups"},
		entities.RawIngredient{Name: "milk", Quantity: "1 1/4", Unit: "cups"},
	)
	require.NoError(t, repo.SaveRecipe(recipe))

	retrieved, err := repo.GetRecipe(ctx, "pancakes")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", retrieved.Name)
	assert.Len(t, retrieved.Ingredients, 2)

	retrieved.Ingredients[0].Name = "changed"
	again, err := repo.GetRecipe(ctx, "pancakes")
	require.NoError(t, err)
	assert.Equal(t, "flour", again.Ingredients[0].Name)
}

func TestRecipeRepository_SaveRecipe_Replaces(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository(1)

	require.NoError(t, repo.SaveRecipe(newRecipe(t, "r1", "First")))
	require.NoError(t, repo.SaveRecipe(newRecipe(t, "r1", "Second")))

	all, err := repo.GetAllRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Second", all[0].Name)
}

func TestRecipeRepository_SaveRecipe_Invalid(t *testing.T) {
	repo := NewRecipeRepository(1)

	assert.Error(t, repo.SaveRecipe(nil))
	assert.Error(t, repo.SaveRecipe(&entities.Recipe{ID: "r1"}))
}

func TestRecipeRepository_GetRecipes(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository(3)
	require.NoError(t, repo.LoadRecipes([]*entities.Recipe{
		newRecipe(t, "a", "A"),
		newRecipe(t, "b", "B"),
		newRecipe(t, "c", "C"),
	}))

	recipes, err := repo.GetRecipes(ctx, []entities.RecipeID{"c", "a"})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, entities.RecipeID("c"), recipes[0].ID)
	assert.Equal(t, entities.RecipeID("a"), recipes[1].ID)

	_, err = repo.GetRecipes(ctx, []entities.RecipeID{"a", "missing"})
	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}

func TestRecipeRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository(10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := entities.RecipeID(string(rune('a' + i)))
			assert.NoError(t, repo.SaveRecipe(&entities.Recipe{ID: id, Name: "Recipe"}))
			_, err := repo.GetAllRecipes(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := repo.GetAllRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}
