package dto

import (
	"time"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

// ShoppingListResult contains the complete output of a shopping list run
type ShoppingListResult struct {
	RunID       string                  `json:"run_id"`
	RecipeIDs   []entities.RecipeID     `json:"recipe_ids"`
	Needed      []entities.ShoppingLine `json:"needed"`
	Buy         []entities.ShoppingLine `json:"buy"`
	Warnings    []Warning               `json:"warnings"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// Warning flags an ingredient that could not be converted or merged
type Warning struct {
	Ingredient string              `json:"ingredient"`
	RecipeIDs  []entities.RecipeID `json:"recipe_ids,omitempty"`
	Kind       entities.LineKind   `json:"kind"`
	Message    string              `json:"message"`
}
