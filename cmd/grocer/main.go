package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vsinha/grocer/pkg/interfaces/cli/commands"
)

func main() {
	// A missing .env file is fine; the environment is used as is
	_ = godotenv.Load()

	// Command line flags
	var (
		recipeFiles = flag.String("recipes", "", "Comma-separated recipe CSV files")
		database    = flag.String("db", "", "Path to SQLite recipe database")
		selected    = flag.Bool("selected", false, "Shop for the recipes selected in the database")
		recipeIDs   = flag.String("ids", "", "Comma-separated recipe ids (default: all recipes)")
		onHandFile  = flag.String("onhand", "", "Path to on-hand quantities CSV file")
		configFile  = flag.String("config", "", "Path to TOML or YAML configuration file")
		outputDir   = flag.String("output", "", "Output directory for results (optional)")
		format      = flag.String("format", "", "Output format: text, json, csv")
		logMode     = flag.String("log-mode", "", "Log mode: production, development")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
		check       = flag.Bool("check", false, "Report ingredients that will not aggregate and exit")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ConfigFile:  *configFile,
		RecipeFiles: splitList(*recipeFiles),
		Database:    *database,
		Selected:    *selected,
		RecipeIDs:   splitList(*recipeIDs),
		OnHandFile:  *onHandFile,
		OutputDir:   *outputDir,
		Format:      *format,
		LogMode:     *logMode,
		Verbose:     *verbose,
		Check:       *check,
		Help:        *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create and execute command
	cmd := commands.NewShopCommand(config)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
