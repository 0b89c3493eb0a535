package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vsinha/grocer/pkg/application/services"
	"github.com/vsinha/grocer/pkg/domain/entities"
	"github.com/vsinha/grocer/pkg/domain/repositories"
	domain "github.com/vsinha/grocer/pkg/domain/services"
	"github.com/vsinha/grocer/pkg/infrastructure/config"
	"github.com/vsinha/grocer/pkg/infrastructure/logging"
	"github.com/vsinha/grocer/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/grocer/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/grocer/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/grocer/pkg/interfaces/cli/output"
)

// Config holds configuration for the shop command. Empty fields fall back to
// the config file and then to the defaults.
type Config struct {
	ConfigFile  string
	RecipeFiles []string
	Database    string
	Selected    bool
	RecipeIDs   []string
	OnHandFile  string
	OutputDir   string
	Format      string
	LogMode     string
	Verbose     bool
	Check       bool
	Help        bool
}

// ShopCommand builds a shopping list from recipes and pantry contents
type ShopCommand struct {
	config Config
	out    io.Writer
}

// NewShopCommand creates a new shop command with the given configuration
func NewShopCommand(config Config) *ShopCommand {
	return &ShopCommand{
		config: config,
		out:    os.Stdout,
	}
}

// Execute runs the shop command
func (c *ShopCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cfg, err := c.resolveConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogMode, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	rollUpConfig, err := cfg.RollUpConfig()
	if err != nil {
		return fmt.Errorf("invalid roll-up settings: %w", err)
	}

	if cfg.Verbose {
		c.printHeader(cfg)
	}

	recipeRepo, recipeIDs, closeRepo, err := c.openRecipes(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	if c.config.Check {
		return c.checkRecipes(ctx, recipeIDs, recipeRepo)
	}

	inventoryRepo := memory.NewInventoryRepository()
	if c.config.OnHandFile != "" {
		onHand, err := csv.NewLoader().LoadOnHand(c.config.OnHandFile)
		if err != nil {
			return fmt.Errorf("error loading on-hand quantities: %w", err)
		}
		if err := inventoryRepo.LoadOnHand(onHand); err != nil {
			return fmt.Errorf("failed to load on-hand quantities into repository: %w", err)
		}
		logger.Info("loaded on-hand quantities", "file", c.config.OnHandFile, "count", len(onHand))
	}

	shoppingService := services.NewShoppingService(rollUpConfig, logger)

	startTime := time.Now()
	result, err := shoppingService.BuildShoppingList(ctx, recipeIDs, recipeRepo, inventoryRepo)
	buildTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error building shopping list: %w", err)
	}

	outputConfig := output.Config{
		Format:    strings.ToLower(cfg.Format),
		OutputDir: cfg.OutputDir,
		Verbose:   cfg.Verbose,
		BuildTime: buildTime,
	}
	if err := output.Generate(c.out, result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// validateInputs validates the command configuration
func (c *ShopCommand) validateInputs() error {
	if len(c.config.RecipeFiles) > 0 && c.config.Database != "" {
		return fmt.Errorf("specify either -recipes or -db, not both")
	}
	if c.config.Selected && len(c.config.RecipeIDs) > 0 {
		return fmt.Errorf("specify either -selected or -ids, not both")
	}
	for _, path := range append(append([]string{}, c.config.RecipeFiles...), c.config.OnHandFile) {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
	}
	return nil
}

// resolveConfig layers command-line values over the config file
func (c *ShopCommand) resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return nil, err
	}

	if c.config.Format != "" {
		cfg.Format = c.config.Format
	}
	if c.config.OutputDir != "" {
		cfg.OutputDir = c.config.OutputDir
	}
	if c.config.Database != "" {
		cfg.Database = c.config.Database
	}
	if c.config.LogMode != "" {
		cfg.LogMode = c.config.LogMode
	}
	if c.config.Verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(c.config.RecipeFiles) == 0 && cfg.Database == "" {
		return nil, fmt.Errorf("must specify -recipes files or a -db database")
	}
	return cfg, nil
}

// openRecipes returns the recipe source and the ids to shop for. An empty id
// list selects every stored recipe.
func (c *ShopCommand) openRecipes(
	ctx context.Context,
	cfg *config.Config,
	logger *logging.Logger,
) (repositories.RecipeRepository, []entities.RecipeID, func(), error) {
	ids := make([]entities.RecipeID, 0, len(c.config.RecipeIDs))
	for _, id := range c.config.RecipeIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, entities.RecipeID(id))
		}
	}

	if len(c.config.RecipeFiles) > 0 {
		recipes, err := csv.NewLoader().LoadRecipeFiles(ctx, c.config.RecipeFiles)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error loading recipes: %w", err)
		}
		repo := memory.NewRecipeRepository(len(recipes))
		if err := repo.LoadRecipes(recipes); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load recipes into repository: %w", err)
		}
		logger.Info("loaded recipes", "files", len(c.config.RecipeFiles), "count", len(recipes))
		return repo, ids, func() {}, nil
	}

	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}

	repo := sqlite.NewRecipeRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	if c.config.Selected {
		ids, err = repo.SelectedRecipeIDs(ctx)
		if err != nil {
			closeDB()
			return nil, nil, nil, err
		}
		if len(ids) == 0 {
			closeDB()
			return nil, nil, nil, fmt.Errorf("no recipes are selected for shopping")
		}
	}
	logger.Info("opened recipe database", "path", cfg.Database, "recipes", len(ids))
	return repo, ids, closeDB, nil
}

// checkRecipes reports unit and quantity problems without building a list
func (c *ShopCommand) checkRecipes(
	ctx context.Context,
	ids []entities.RecipeID,
	repo repositories.RecipeRepository,
) error {
	var recipes []*entities.Recipe
	var err error
	if len(ids) == 0 {
		recipes, err = repo.GetAllRecipes(ctx)
	} else {
		recipes, err = repo.GetRecipes(ctx, ids)
	}
	if err != nil {
		return fmt.Errorf("failed to load recipes: %w", err)
	}

	validator := domain.NewRecipeValidator(domain.DefaultUnitTable())
	flagged := 0
	for _, recipe := range recipes {
		result := validator.ValidateRecipeUnits(recipe)
		if !result.HasWarnings() {
			continue
		}
		flagged++
		fmt.Fprintf(c.out, "⚠️  %s (%s):\n", recipe.Name, recipe.ID)
		for _, warning := range result.Warnings {
			fmt.Fprintf(c.out, "  %s\n", warning)
		}
	}

	if flagged == 0 {
		fmt.Fprintf(c.out, "✅ %d recipes checked, no problems found\n", len(recipes))
		return nil
	}
	fmt.Fprintf(c.out, "%d of %d recipes have ingredients that will not aggregate\n", flagged, len(recipes))
	return nil
}

// printHeader prints the command header information
func (c *ShopCommand) printHeader(cfg *config.Config) {
	fmt.Fprintf(c.out, "🚀 Grocer\n")
	if len(c.config.RecipeFiles) > 0 {
		fmt.Fprintf(c.out, "Recipe files: %s\n", strings.Join(c.config.RecipeFiles, ", "))
	} else {
		fmt.Fprintf(c.out, "Database: %s\n", cfg.Database)
	}
	if c.config.OnHandFile != "" {
		fmt.Fprintf(c.out, "On hand: %s\n", c.config.OnHandFile)
	}
	fmt.Fprintf(c.out, "Output format: %s\n", cfg.Format)
	if cfg.OutputDir != "" {
		fmt.Fprintf(c.out, "Output directory: %s\n", cfg.OutputDir)
	}
	fmt.Fprintln(c.out)
}

// showHelp displays the help message
func (c *ShopCommand) showHelp() {
	fmt.Fprintf(c.out, `Grocer - combine recipe ingredients into a shopping list

USAGE:
    grocer -recipes <file>[,<file>...] [options]
    grocer -db <file> [-selected | -ids <id,...>] [options]

OPTIONS:
    -recipes <files>    Comma-separated recipe CSV files
    -db <file>          SQLite recipe database
    -selected           Shop for the recipes selected in the database
    -ids <ids>          Comma-separated recipe ids (default: all recipes)
    -onhand <file>      CSV of quantities already in the pantry
    -config <file>      TOML or YAML configuration file
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -log-mode <mode>    Log mode: production, development
    -check              Report ingredients that will not aggregate and exit
    -verbose            Enable verbose output
    -help               Show this help message

CSV FILE FORMATS:

recipes.csv (one row per ingredient):
    recipe_id,recipe_name,quantity,unit,ingredient
    pancakes,Pancakes,1 1/2,cups,all-purpose flour

or, with whole ingredient lines:
    recipe_id,recipe_name,line
    pancakes,Pancakes,1 1/2 cups all-purpose flour

onhand.csv (quantities in the shopping list's unit for that ingredient):
    ingredient,quantity
    butter,1
    sugar,1/2

ENVIRONMENT:
    %s     Overrides the configured log mode

EXAMPLES:
    grocer -recipes pancakes.csv,cookies.csv -onhand pantry.csv
    grocer -db recipes.db -selected -format json -output results/
    grocer -recipes recipes.csv -check
`, config.EnvLogMode)
}
