package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vsinha/grocer/pkg/domain/entities"
	"github.com/vsinha/grocer/pkg/domain/services"
)

var (
	recipeHeader     = []string{"recipe_id", "recipe_name", "quantity", "unit", "ingredient"}
	recipeLineHeader = []string{"recipe_id", "recipe_name", "line"}
	onHandHeader     = []string{"ingredient", "quantity"}
)

// Loader handles loading recipes and on-hand amounts from CSV files
type Loader struct {
	lines *services.LineParser
}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{
		lines: services.NewLineParser(services.DefaultUnitTable()),
	}
}

// LoadRecipes loads recipes from a CSV file. Two layouts are accepted: one
// ingredient per row with separate quantity, unit and ingredient columns, or
// one authored line per row ("1 1/2 cups flour"). Rows for the same recipe
// may be spread through the file; ingredient order is row order.
func (l *Loader) LoadRecipes(filename string) ([]*entities.Recipe, error) {
	records, err := readRecords(filename, "recipes")
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("recipes CSV must have header and at least one data row")
	}

	header := records[0]
	var parseRow func(record []string) entities.RawIngredient
	var expectedHeader []string
	switch {
	case validateHeader(header, recipeHeader):
		expectedHeader = recipeHeader
		parseRow = parseIngredientRow
	case validateHeader(header, recipeLineHeader):
		expectedHeader = recipeLineHeader
		parseRow = func(record []string) entities.RawIngredient {
			return l.lines.ParseLine(record[2])
		}
	default:
		return nil, fmt.Errorf("recipes CSV header mismatch. Expected: %v or %v, Got: %v", recipeHeader, recipeLineHeader, header)
	}

	var order []entities.RecipeID
	names := make(map[entities.RecipeID]string)
	ingredients := make(map[entities.RecipeID][]entities.RawIngredient)

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("recipes CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		id := entities.RecipeID(strings.TrimSpace(record[0]))
		if id == "" {
			return nil, fmt.Errorf("recipes CSV row %d: recipe_id cannot be empty", i+2)
		}
		name := strings.TrimSpace(record[1])
		if existing, seen := names[id]; !seen {
			order = append(order, id)
			names[id] = name
		} else if name != "" && existing != name {
			return nil, fmt.Errorf("recipes CSV row %d: recipe %s is named both %q and %q", i+2, id, existing, name)
		}

		ingredient := parseRow(record)
		if strings.TrimSpace(ingredient.Name) == "" {
			return nil, fmt.Errorf("recipes CSV row %d: ingredient cannot be empty", i+2)
		}
		ingredient.SortOrder = len(ingredients[id])
		ingredients[id] = append(ingredients[id], ingredient)
	}

	recipes := make([]*entities.Recipe, 0, len(order))
	for _, id := range order {
		recipe, err := entities.NewRecipe(id, names[id], ingredients[id])
		if err != nil {
			return nil, fmt.Errorf("recipes CSV: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// LoadRecipeFiles loads several recipe files concurrently. Results keep the
// order of filenames; the first failure cancels the rest.
func (l *Loader) LoadRecipeFiles(ctx context.Context, filenames []string) ([]*entities.Recipe, error) {
	results := make([][]*entities.Recipe, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recipes, err := l.LoadRecipes(filename)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
			results[i] = recipes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var recipes []*entities.Recipe
	for _, batch := range results {
		recipes = append(recipes, batch...)
	}
	return recipes, nil
}

// LoadOnHand loads on-hand amounts from a CSV file. A header with no rows is
// an empty pantry.
func (l *Loader) LoadOnHand(filename string) ([]entities.OnHand, error) {
	records, err := readRecords(filename, "on-hand")
	if err != nil {
		return nil, err
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("on-hand CSV must have a header")
	}

	header := records[0]
	if !validateHeader(header, onHandHeader) {
		return nil, fmt.Errorf("on-hand CSV header mismatch. Expected: %v, Got: %v", onHandHeader, header)
	}

	onHand := make([]entities.OnHand, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(onHandHeader) {
			return nil, fmt.Errorf("on-hand CSV row %d: expected %d columns, got %d", i+2, len(onHandHeader), len(record))
		}

		ingredient := strings.TrimSpace(record[0])
		if ingredient == "" {
			return nil, fmt.Errorf("on-hand CSV row %d: ingredient cannot be empty", i+2)
		}
		onHand = append(onHand, entities.OnHand{
			Ingredient: ingredient,
			Quantity:   strings.TrimSpace(record[1]),
		})
	}

	return onHand, nil
}

func readRecords(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	return records, nil
}

func parseIngredientRow(record []string) entities.RawIngredient {
	return entities.RawIngredient{
		Quantity: strings.TrimSpace(record[2]),
		Unit:     strings.TrimSpace(record[3]),
		Name:     strings.TrimSpace(record[4]),
	}
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}
