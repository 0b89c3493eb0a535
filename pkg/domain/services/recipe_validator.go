package services

import (
	"errors"
	"fmt"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

// UnitWarning describes an ingredient that will not aggregate
type UnitWarning struct {
	Ingredient string
	Unit       string
	Quantity   string
	Reason     string
}

// ValidationResult contains advisory findings for a recipe. Nothing in it
// blocks saving the recipe.
type ValidationResult struct {
	UnsupportedUnits      []UnitWarning
	UnparseableQuantities []UnitWarning
	DuplicateIngredients  []entities.RawIngredient
	Warnings              []string
}

// HasWarnings reports whether the author should be asked to confirm the save
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// RecipeValidator checks authored ingredients against the unit table
type RecipeValidator struct {
	units  *UnitTable
	parser *QuantityParser
}

// NewRecipeValidator creates a new recipe validator
func NewRecipeValidator(units *UnitTable) *RecipeValidator {
	return &RecipeValidator{
		units:  units,
		parser: NewQuantityParser(units),
	}
}

// ValidateRecipeUnits reports unsupported units, unparseable quantities and
// repeated ingredient lines
func (v *RecipeValidator) ValidateRecipeUnits(recipe *entities.Recipe) *ValidationResult {
	result := &ValidationResult{
		UnsupportedUnits:      make([]UnitWarning, 0),
		UnparseableQuantities: make([]UnitWarning, 0),
		DuplicateIngredients:  make([]entities.RawIngredient, 0),
		Warnings:              make([]string, 0),
	}

	for _, ing := range recipe.Ingredients {
		key := NormalizeIngredientName(ing.Name)

		if _, err := v.parser.Parse(ing.Quantity, ing.Unit); err != nil {
			reason := "quantity is not a number"
			if errors.Is(err, entities.ErrDivisionByZero) {
				reason = "fraction has a zero denominator"
			}
			result.UnparseableQuantities = append(result.UnparseableQuantities, UnitWarning{
				Ingredient: ing.Name,
				Unit:       ing.Unit,
				Quantity:   ing.Quantity,
				Reason:     reason,
			})
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: %s (%q); it will be listed as written", ing.Name, reason, ing.Quantity))
			continue
		}

		if !v.units.IsSupported(ing.Unit, key) {
			result.UnsupportedUnits = append(result.UnsupportedUnits, UnitWarning{
				Ingredient: ing.Name,
				Unit:       ing.Unit,
				Quantity:   ing.Quantity,
				Reason:     entities.ErrUnsupportedUnit.Error(),
			})
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: unit %q is not supported and will not aggregate", ing.Name, ing.Unit))
		}
	}

	result.DuplicateIngredients = v.detectDuplicateLines(recipe.Ingredients)
	if len(result.DuplicateIngredients) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d repeated ingredient lines", len(result.DuplicateIngredients)))
	}

	return result
}

// detectDuplicateLines finds ingredient lines with the same name, quantity and unit
func (v *RecipeValidator) detectDuplicateLines(ingredients []entities.RawIngredient) []entities.RawIngredient {
	seen := make(map[string]bool)
	duplicates := make([]entities.RawIngredient, 0)

	for _, ing := range ingredients {
		key := fmt.Sprintf("%s|%s|%s", NormalizeIngredientName(ing.Name), ing.Quantity, NormalizeUnit(ing.Unit))
		if seen[key] {
			duplicates = append(duplicates, ing)
		} else {
			seen[key] = true
		}
	}

	return duplicates
}
