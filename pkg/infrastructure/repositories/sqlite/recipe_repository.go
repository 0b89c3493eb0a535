package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/vsinha/grocer/pkg/domain/entities"
	"github.com/vsinha/grocer/pkg/domain/repositories"
	"github.com/vsinha/grocer/pkg/domain/services"
)

const memoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    instructions TEXT,
    source_url TEXT,
    complexity TEXT DEFAULT 'medium',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ingredients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    quantity REAL,
    unit TEXT,
    sort_order INTEGER DEFAULT 0,
    FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS shopping_selections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL,
    selected_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_ingredients_recipe ON ingredients(recipe_id);
CREATE INDEX IF NOT EXISTS idx_shopping_selections_recipe ON shopping_selections(recipe_id);
`

// Open opens the recipe database at path, creating its directory if needed
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == memoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// RecipeRepository reads recipes stored by the recipe manager
type RecipeRepository struct {
	db     *sql.DB
	parser *services.QuantityParser
}

// NewRecipeRepository creates a repository over an open database
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{
		db:     db,
		parser: services.NewQuantityParser(services.DefaultUnitTable()),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// EnsureSchema creates the recipe tables if they do not exist
func (r *RecipeRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetRecipe returns a recipe and its ingredients in sort order
func (r *RecipeRepository) GetRecipe(ctx context.Context, id entities.RecipeID) (*entities.Recipe, error) {
	rowID, err := strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrRecipeNotFound, id)
	}

	var name string
	err = r.db.QueryRowContext(ctx, `SELECT name FROM recipes WHERE id = ?`, rowID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", entities.ErrRecipeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe %s: %w", id, err)
	}

	ingredients, err := r.ingredients(ctx, rowID)
	if err != nil {
		return nil, err
	}
	return entities.NewRecipe(entities.RecipeID(strconv.FormatInt(rowID, 10)), name, ingredients)
}

// GetAllRecipes returns every recipe ordered by id
func (r *RecipeRepository) GetAllRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	ids, err := r.queryIDs(ctx, `SELECT id FROM recipes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return r.GetRecipes(ctx, ids)
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

// SelectedRecipeIDs returns the recipes currently selected for shopping,
// oldest selection first, without duplicates
func (r *RecipeRepository) SelectedRecipeIDs(ctx context.Context) ([]entities.RecipeID, error) {
	return r.queryIDs(ctx, `SELECT recipe_id FROM shopping_selections GROUP BY recipe_id ORDER BY MIN(id)`)
}

func (r *RecipeRepository) queryIDs(ctx context.Context, query string) ([]entities.RecipeID, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ids: %w", err)
	}
	defer rows.Close()

	var ids []entities.RecipeID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan recipe id: %w", err)
		}
		ids = append(ids, entities.RecipeID(strconv.FormatInt(id, 10)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe ids: %w", err)
	}
	return ids, nil
}

func (r *RecipeRepository) ingredients(ctx context.Context, recipeID int64) ([]entities.RawIngredient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, quantity, unit, sort_order FROM ingredients WHERE recipe_id = ? ORDER BY sort_order, id`,
		recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients for recipe %d: %w", recipeID, err)
	}
	defer rows.Close()

	var ingredients []entities.RawIngredient
	for rows.Next() {
		var (
			name      string
			quantity  any
			unit      sql.NullString
			sortOrder sql.NullInt64
		)
		if err := rows.Scan(&name, &quantity, &unit, &sortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient for recipe %d: %w", recipeID, err)
		}
		ingredients = append(ingredients, entities.RawIngredient{
			Name:      name,
			Quantity:  r.quantityText(quantity),
			Unit:      unit.String,
			SortOrder: int(sortOrder.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ingredients for recipe %d: %w", recipeID, err)
	}
	return ingredients, nil
}

var snapDenominators = []float64{1, 2, 3, 4, 8}

// quantityText turns a stored quantity back into authored text. REAL values
// within a hair of a half, third, quarter or eighth become exact fractions so
// that 0.333... adds up like 1/3; other REAL values are written as the exact
// fraction of their shortest decimal form. Negative values are left as the
// decimal so they surface as unparseable.
func (r *RecipeRepository) quantityText(v any) string {
	switch q := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(q, 10)
	case float64:
		for _, den := range snapDenominators {
			num := math.Round(q * den)
			if math.Abs(q*den-num) < 1e-6 {
				if den == 1 {
					return strconv.FormatFloat(num, 'f', 0, 64)
				}
				return fmt.Sprintf("%.0f/%.0f", num, den)
			}
		}
		d := decimal.NewFromFloat(q)
		parsed, err := r.parser.ParseDecimal(d, "")
		if err != nil {
			return d.String()
		}
		return parsed.Quantity.String()
	case []byte:
		return strings.TrimSpace(string(q))
	case string:
		return strings.TrimSpace(q)
	default:
		return fmt.Sprint(q)
	}
}
