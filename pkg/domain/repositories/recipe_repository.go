package repositories

import (
	"context"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

// RecipeRepository provides access to stored recipes
type RecipeRepository interface {
	GetRecipe(ctx context.Context, id entities.RecipeID) (*entities.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]*entities.Recipe, error)
	// GetRecipes returns recipes in the order of ids and fails on the first
	// id that does not exist
	GetRecipes(ctx context.Context, ids []entities.RecipeID) ([]*entities.Recipe, error)
}
