package entities

import (
	"fmt"
	"strings"
)

// RecipeID represents a unique recipe identifier
type RecipeID string

// RawIngredient is an ingredient exactly as it was authored in a recipe
type RawIngredient struct {
	Name      string
	Quantity  string
	Unit      string
	SortOrder int
}

// Recipe represents a stored recipe with its ordered ingredients
type Recipe struct {
	ID          RecipeID
	Name        string
	Ingredients []RawIngredient
}

// NewRecipe creates a validated Recipe
func NewRecipe(id RecipeID, name string, ingredients []RawIngredient) (*Recipe, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, fmt.Errorf("recipe id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("recipe name cannot be empty")
	}
	for i, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return nil, fmt.Errorf("ingredient %d of recipe %s has no name", i+1, id)
		}
	}

	copied := make([]RawIngredient, len(ingredients))
	copy(copied, ingredients)

	return &Recipe{
		ID:          id,
		Name:        name,
		Ingredients: copied,
	}, nil
}

// OnHand is a user-supplied amount already in the pantry, expressed in the
// display unit of the matching shopping line
type OnHand struct {
	Ingredient string
	Quantity   string
}
