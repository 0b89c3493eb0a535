package main

import (
	"context"
	"fmt"

	"github.com/vsinha/grocer/pkg/application/services"
	domain "github.com/vsinha/grocer/pkg/domain/services"
	"github.com/vsinha/grocer/pkg/infrastructure/logging"
	testdata "github.com/vsinha/grocer/pkg/infrastructure/testing"
)

func main() {
	ctx := context.Background()

	logger, err := logging.New("development", false)
	if err != nil {
		fmt.Printf("❌ Logger failed: %v\n", err)
		return
	}
	defer logger.Sync()

	// Three baking recipes sharing butter, flour, eggs, milk and sugar
	recipeRepo, inventoryRepo := testdata.BuildWeekendBakingTestData()

	shoppingService := services.NewShoppingService(domain.DefaultRollUpConfig(), logger)

	fmt.Println("🧁 Building a shopping list for weekend baking...")
	fmt.Println()

	result, err := shoppingService.BuildShoppingList(ctx, nil, recipeRepo, inventoryRepo)
	if err != nil {
		fmt.Printf("❌ Shopping list failed: %v\n", err)
		return
	}

	fmt.Printf("📖 Recipes: %d\n", len(result.RecipeIDs))
	fmt.Println()

	fmt.Println("🍳 Needed:")
	for _, line := range result.Needed {
		fmt.Printf("  %s\n", line.String())
	}
	fmt.Println()

	fmt.Println("🛒 To buy:")
	for _, line := range result.Buy {
		fmt.Printf("  %s\n", line.BuyText())
	}
	fmt.Println()

	if len(result.Warnings) > 0 {
		fmt.Println("⚠️  Check these by hand:")
		for _, w := range result.Warnings {
			fmt.Printf("  %s: %s\n", w.Ingredient, w.Message)
		}
	}
}
