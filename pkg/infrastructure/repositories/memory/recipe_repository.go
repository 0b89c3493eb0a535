package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/grocer/pkg/domain/entities"
	"github.com/vsinha/grocer/pkg/domain/repositories"
)

// RecipeRepository provides in-memory recipe storage
type RecipeRepository struct {
	mu         sync.RWMutex
	recipes    []entities.Recipe
	recipesMap map[entities.RecipeID]int
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository(expectedRecipes int) *RecipeRepository {
	return &RecipeRepository{
		recipes:    make([]entities.Recipe, 0, expectedRecipes),
		recipesMap: make(map[entities.RecipeID]int, expectedRecipes),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes loads recipes into the repository
func (r *RecipeRepository) LoadRecipes(recipes []*entities.Recipe) error {
	for _, recipe := range recipes {
		if err := r.SaveRecipe(recipe); err != nil {
			return err
		}
	}
	return nil
}

// SaveRecipe adds a recipe, replacing any recipe with the same id
func (r *RecipeRepository) SaveRecipe(recipe *entities.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("recipe cannot be nil")
	}
	stored, err := entities.NewRecipe(recipe.ID, recipe.Name, recipe.Ingredients)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.recipesMap[recipe.ID]; exists {
		r.recipes[index] = *stored
		return nil
	}
	r.recipesMap[recipe.ID] = len(r.recipes)
	r.recipes = append(r.recipes, *stored)
	return nil
}

// GetRecipe returns a recipe by id
func (r *RecipeRepository) GetRecipe(_ context.Context, id entities.RecipeID) (*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.recipesMap[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrRecipeNotFound, id)
	}
	return cloneRecipe(r.recipes[index]), nil
}

// GetAllRecipes returns all recipes in insertion order
func (r *RecipeRepository) GetAllRecipes(_ context.Context) ([]*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := make([]*entities.Recipe, 0, len(r.recipes))
	for i := range r.recipes {
		recipes = append(recipes, cloneRecipe(r.recipes[i]))
	}
	return recipes, nil
}

// GetRecipes returns the recipes for ids in the order given
func (r *RecipeRepository) GetRecipes(ctx context.Context, ids []entities.RecipeID) ([]*entities.Recipe, error) {
	recipes := make([]*entities.Recipe, 0, len(ids))
	for _, id := range ids {
		recipe, err := r.GetRecipe(ctx, id)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// Callers get their own ingredient slice so stored recipes stay untouched
func cloneRecipe(recipe entities.Recipe) *entities.Recipe {
	recipe.Ingredients = append([]entities.RawIngredient(nil), recipe.Ingredients...)
	return &recipe
}
