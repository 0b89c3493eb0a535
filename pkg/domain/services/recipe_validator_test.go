package services

import (
	"testing"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

func TestRecipeValidator_ValidateRecipeUnits(t *testing.T) {
	recipe, err := entities.NewRecipe("tacos", "Tacos", []entities.RawIngredient{
		raw("1", "package", "tortillas"),
		raw("a few", "sprigs", "cilantro"),
		raw("1", "lb", "ground beef"),
		raw("1", "lb", "Ground Beef"),
		raw("1", "stick", "celery"),
		raw("1", "stick", "butter"),
		raw("", "", "salt"),
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	result := NewRecipeValidator(DefaultUnitTable()).ValidateRecipeUnits(recipe)

	if len(result.UnsupportedUnits) != 2 {
		t.Errorf("Expected 2 unsupported units, got %d", len(result.UnsupportedUnits))
	} else {
		if result.UnsupportedUnits[0].Ingredient != "tortillas" {
			t.Errorf("Expected tortillas first, got %s", result.UnsupportedUnits[0].Ingredient)
		}
		if result.UnsupportedUnits[1].Ingredient != "celery" {
			t.Errorf("Expected celery second, got %s", result.UnsupportedUnits[1].Ingredient)
		}
	}

	if len(result.UnparseableQuantities) != 1 || result.UnparseableQuantities[0].Quantity != "a few" {
		t.Errorf("Expected one unparseable quantity, got %+v", result.UnparseableQuantities)
	}

	if len(result.DuplicateIngredients) != 1 || result.DuplicateIngredients[0].Name != "Ground Beef" {
		t.Errorf("Expected the second beef line as a duplicate, got %+v", result.DuplicateIngredients)
	}

	if !result.HasWarnings() || len(result.Warnings) != 4 {
		t.Errorf("Expected 4 warnings, got %d: %v", len(result.Warnings), result.Warnings)
	}
}

func TestRecipeValidator_ZeroDenominator(t *testing.T) {
	recipe, err := entities.NewRecipe("r1", "Broken", []entities.RawIngredient{raw("1/0", "cup", "sugar")})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	result := NewRecipeValidator(DefaultUnitTable()).ValidateRecipeUnits(recipe)
	if len(result.UnparseableQuantities) != 1 {
		t.Fatalf("Expected 1 unparseable quantity, got %d", len(result.UnparseableQuantities))
	}
	if result.UnparseableQuantities[0].Reason != "fraction has a zero denominator" {
		t.Errorf("Expected zero denominator reason, got %q", result.UnparseableQuantities[0].Reason)
	}
}

func TestRecipeValidator_CleanRecipe(t *testing.T) {
	recipe, err := entities.NewRecipe("r1", "Pancakes", []entities.RawIngredient{
		raw("1 1/2", "cups", "flour"),
		raw("2", "", "eggs"),
		raw("1 1/4", "cups", "milk"),
		raw("3", "tbsp", "butter, melted"),
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	result := NewRecipeValidator(DefaultUnitTable()).ValidateRecipeUnits(recipe)
	if result.HasWarnings() {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}
}
