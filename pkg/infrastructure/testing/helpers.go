package testing

import (
	"github.com/vsinha/grocer/pkg/domain/entities"
	"github.com/vsinha/grocer/pkg/infrastructure/repositories/memory"
)

// mustCreateRecipe is a helper for fixtures - panics on validation error
func mustCreateRecipe(id, name string, lines ...[3]string) *entities.Recipe {
	ingredients := make([]entities.RawIngredient, 0, len(lines))
	for i, line := range lines {
		ingredients = append(ingredients, entities.RawIngredient{
			Quantity:  line[0],
			Unit:      line[1],
			Name:      line[2],
			SortOrder: i,
		})
	}
	recipe, err := entities.NewRecipe(entities.RecipeID(id), name, ingredients)
	if err != nil {
		panic(err)
	}
	return recipe
}

// BuildWeekendBakingTestData builds three recipes that overlap on butter,
// flour, eggs, milk and sugar, plus a pantry with some of them on hand
func BuildWeekendBakingTestData() (*memory.RecipeRepository, *memory.InventoryRepository) {
	recipeRepo := memory.NewRecipeRepository(3)
	inventoryRepo := memory.NewInventoryRepository()

	recipes := []*entities.Recipe{
		mustCreateRecipe("pancakes", "Buttermilk Pancakes",
			[3]string{"1 1/2", "cups", "all-purpose flour"},
			[3]string{"2", "tbsp", "sugar"},
			[3]string{"2", "", "large eggs"},
			[3]string{"1 1/4", "cups", "milk"},
			[3]string{"3", "tbsp", "butter, melted"},
			[3]string{"", "", "salt"},
		),
		mustCreateRecipe("cookies", "Chocolate Chip Cookies",
			[3]string{"2 1/4", "cups", "flour"},
			[3]string{"1", "cup", "unsalted butter"},
			[3]string{"3/4", "cup", "sugar"},
			[3]string{"2", "", "eggs"},
			[3]string{"1", "package", "chocolate chips"},
			[3]string{"1", "tsp", "vanilla extract"},
		),
		mustCreateRecipe("custard", "Baked Custard",
			[3]string{"3", "cups", "whole milk"},
			[3]string{"4", "", "eggs"},
			[3]string{"1/2", "cup", "sugar"},
			[3]string{"a pinch", "", "nutmeg"},
		),
	}
	if err := recipeRepo.LoadRecipes(recipes); err != nil {
		panic(err)
	}

	if err := inventoryRepo.LoadOnHand([]entities.OnHand{
		{Ingredient: "butter", Quantity: "1"},
		{Ingredient: "sugar", Quantity: "1/2"},
		{Ingredient: "vanilla extract", Quantity: "5"},
	}); err != nil {
		panic(err)
	}

	return recipeRepo, inventoryRepo
}
