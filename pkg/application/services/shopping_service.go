package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/grocer/pkg/application/dto"
	"github.com/vsinha/grocer/pkg/domain/entities"
	"github.com/vsinha/grocer/pkg/domain/repositories"
	domain "github.com/vsinha/grocer/pkg/domain/services"
	"github.com/vsinha/grocer/pkg/infrastructure/logging"
)

// ShoppingService turns selected recipes into a shopping list
type ShoppingService struct {
	parser     *domain.QuantityParser
	aggregator *domain.Aggregator
	rollup     *domain.RollUp
	differ     *domain.InventoryDiffer
	logger     *logging.Logger
	now        func() time.Time
}

// NewShoppingService creates a shopping service using the default unit table
func NewShoppingService(cfg domain.RollUpConfig, logger *logging.Logger) *ShoppingService {
	if logger == nil {
		logger = logging.Nop()
	}
	units := domain.DefaultUnitTable()
	rollup := domain.NewRollUp(units, cfg)
	return &ShoppingService{
		parser:     domain.NewQuantityParser(units),
		aggregator: domain.NewAggregator(units),
		rollup:     rollup,
		differ:     domain.NewInventoryDiffer(rollup),
		logger:     logger,
		now:        time.Now,
	}
}

// BuildShoppingList aggregates the ingredients of recipeIDs (every stored
// recipe when empty), formats them for shopping and subtracts what
// inventoryRepo reports on hand. inventoryRepo may be nil.
//
// Only repository failures are returned as errors. Ingredients that cannot
// be parsed or converted are kept on the list and reported as warnings.
func (s *ShoppingService) BuildShoppingList(
	ctx context.Context,
	recipeIDs []entities.RecipeID,
	recipeRepo repositories.RecipeRepository,
	inventoryRepo repositories.InventoryRepository,
) (*dto.ShoppingListResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	recipes, err := s.loadRecipes(ctx, recipeIDs, recipeRepo)
	if err != nil {
		return nil, err
	}

	result := &dto.ShoppingListResult{
		RunID:       runID,
		RecipeIDs:   make([]entities.RecipeID, 0, len(recipes)),
		Needed:      make([]entities.ShoppingLine, 0),
		Buy:         make([]entities.ShoppingLine, 0),
		Warnings:    make([]dto.Warning, 0),
		GeneratedAt: s.now(),
	}

	var entries []entities.IngredientEntry
	for _, recipe := range recipes {
		result.RecipeIDs = append(result.RecipeIDs, recipe.ID)
		for _, ing := range recipe.Ingredients {
			entries = append(entries, s.parser.ParseEntry(recipe.ID, ing))
		}
	}

	lines := s.aggregator.Aggregate(entries)
	logger.Debug("aggregated ingredients", "entries", len(entries), "lines", len(lines))

	onHandUsed := make(map[string]bool)
	for _, line := range lines {
		if w, ok := lineWarning(line); ok {
			logger.Warn("ingredient not merged", "ingredient", w.Ingredient, "kind", w.Kind.String(), "reason", w.Message)
			result.Warnings = append(result.Warnings, w)
		}

		needed := s.rollup.FormatForShopping(line)
		result.Needed = append(result.Needed, needed)

		// On-hand amounts are in the display unit of the ingredient's first
		// measured line and apply to that line only.
		var onHand entities.Quantity
		if needed.Measured && !onHandUsed[line.Key] {
			onHandUsed[line.Key] = true
			q, w, err := s.onHand(ctx, inventoryRepo, line)
			if err != nil {
				return nil, err
			}
			if w != nil {
				logger.Warn("on-hand quantity ignored", "ingredient", w.Ingredient, "reason", w.Message)
				result.Warnings = append(result.Warnings, *w)
			}
			onHand = q
		}

		if buy, ok := s.differ.Diff(needed, onHand); ok {
			result.Buy = append(result.Buy, buy)
		}
	}

	logger.Info("shopping list built",
		"recipes", len(result.RecipeIDs),
		"needed", len(result.Needed),
		"buy", len(result.Buy),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

func (s *ShoppingService) loadRecipes(
	ctx context.Context,
	recipeIDs []entities.RecipeID,
	recipeRepo repositories.RecipeRepository,
) ([]*entities.Recipe, error) {
	if len(recipeIDs) == 0 {
		recipes, err := recipeRepo.GetAllRecipes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load recipes: %w", err)
		}
		return recipes, nil
	}

	recipes, err := recipeRepo.GetRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return recipes, nil
}

func (s *ShoppingService) onHand(
	ctx context.Context,
	inventoryRepo repositories.InventoryRepository,
	line entities.AggregatedLine,
) (entities.Quantity, *dto.Warning, error) {
	if inventoryRepo == nil {
		return entities.Quantity{}, nil, nil
	}

	text, found, err := inventoryRepo.GetOnHand(ctx, line.Key)
	if err != nil {
		return entities.Quantity{}, nil, fmt.Errorf("failed to load on-hand amount for %s: %w", line.Key, err)
	}
	if !found {
		return entities.Quantity{}, nil, nil
	}

	parsed, err := s.parser.Parse(text, "")
	if err != nil {
		return entities.Quantity{}, &dto.Warning{
			Ingredient: line.Name,
			Kind:       line.Kind,
			Message:    fmt.Sprintf("on-hand amount %q not understood: %v", text, err),
		}, nil
	}
	return parsed.Quantity, nil, nil
}

func lineWarning(line entities.AggregatedLine) (dto.Warning, bool) {
	var message string
	switch line.Kind {
	case entities.Unsupported:
		message = fmt.Sprintf("unit %q is not supported; listed as written", line.Unit)
	case entities.Unparseable:
		message = fmt.Sprintf("quantity %q is not a number; listed as written", line.RawQuantity)
	case entities.Separate:
		message = fmt.Sprintf("measured by %s unlike the rest of this ingredient; listed separately", line.Category)
	default:
		return dto.Warning{}, false
	}

	return dto.Warning{
		Ingredient: line.Name,
		RecipeIDs:  sourceRecipes(line.Sources),
		Kind:       line.Kind,
		Message:    message,
	}, true
}

func sourceRecipes(sources []entities.IngredientEntry) []entities.RecipeID {
	seen := make(map[entities.RecipeID]bool)
	var ids []entities.RecipeID
	for _, src := range sources {
		if !seen[src.RecipeID] {
			seen[src.RecipeID] = true
			ids = append(ids, src.RecipeID)
		}
	}
	return ids
}
