package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/grocer/pkg/domain/services"
)

// EnvLogMode overrides the configured log mode
const EnvLogMode = "GROCER_LOG_MODE"

// RollUpSettings holds the large-quantity thresholds as quantity text in cups
type RollUpSettings struct {
	FlourBagThreshold   string `toml:"flour_bag_threshold" yaml:"flour_bag_threshold"`
	FlourBagCups        string `toml:"flour_bag_cups" yaml:"flour_bag_cups"`
	SugarBagThreshold   string `toml:"sugar_bag_threshold" yaml:"sugar_bag_threshold"`
	SugarBagCups        string `toml:"sugar_bag_cups" yaml:"sugar_bag_cups"`
	MilkGallonThreshold string `toml:"milk_gallon_threshold" yaml:"milk_gallon_threshold"`
}

// Config holds the settings for a shopping list run
type Config struct {
	Format    string         `toml:"format" yaml:"format"`
	OutputDir string         `toml:"output_dir" yaml:"output_dir"`
	Database  string         `toml:"database" yaml:"database"`
	Verbose   bool           `toml:"verbose" yaml:"verbose"`
	LogMode   string         `toml:"log_mode" yaml:"log_mode"`
	RollUp    RollUpSettings `toml:"rollup" yaml:"rollup"`
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		Format:  "text",
		LogMode: "production",
		RollUp: RollUpSettings{
			FlourBagThreshold:   "5",
			FlourBagCups:        "18",
			SugarBagThreshold:   "9",
			SugarBagCups:        "9",
			MilkGallonThreshold: "4",
		},
	}
}

// Load reads a TOML or YAML file over the defaults, applies environment
// overrides and validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case ".yaml", ".yml":
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", filepath.Ext(path))
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable settings
func (c *Config) ApplyEnvOverrides() {
	if mode := os.Getenv(EnvLogMode); mode != "" {
		c.LogMode = mode
	}
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	var errs ValidateErrors

	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[strings.ToLower(c.Format)] {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json, csv", c.Format),
		})
	}

	validModes := map[string]bool{"production": true, "development": true}
	if !validModes[strings.ToLower(c.LogMode)] {
		errs = append(errs, ValidationError{
			Field:   "log_mode",
			Message: fmt.Sprintf("invalid log mode '%s', must be one of: production, development", c.LogMode),
		})
	}

	thresholds := []struct {
		field string
		value string
	}{
		{"rollup.flour_bag_threshold", c.RollUp.FlourBagThreshold},
		{"rollup.flour_bag_cups", c.RollUp.FlourBagCups},
		{"rollup.sugar_bag_threshold", c.RollUp.SugarBagThreshold},
		{"rollup.sugar_bag_cups", c.RollUp.SugarBagCups},
		{"rollup.milk_gallon_threshold", c.RollUp.MilkGallonThreshold},
	}
	parser := services.NewQuantityParser(services.DefaultUnitTable())
	for _, th := range thresholds {
		parsed, err := parser.Parse(th.value, "cup")
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Field: th.field, Message: err.Error()})
		case parsed.FreeText || parsed.Quantity.IsZero():
			errs = append(errs, ValidationError{Field: th.field, Message: "must be a positive quantity of cups"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RollUpConfig converts the threshold settings for the roll-up formatter.
// The config must have passed Validate.
func (c *Config) RollUpConfig() (services.RollUpConfig, error) {
	parser := services.NewQuantityParser(services.DefaultUnitTable())
	rc := services.DefaultRollUpConfig()

	flourThreshold, err := parser.Parse(c.RollUp.FlourBagThreshold, "cup")
	if err != nil {
		return rc, fmt.Errorf("rollup.flour_bag_threshold: %w", err)
	}
	flourBag, err := parser.Parse(c.RollUp.FlourBagCups, "cup")
	if err != nil {
		return rc, fmt.Errorf("rollup.flour_bag_cups: %w", err)
	}
	sugarThreshold, err := parser.Parse(c.RollUp.SugarBagThreshold, "cup")
	if err != nil {
		return rc, fmt.Errorf("rollup.sugar_bag_threshold: %w", err)
	}
	sugarBag, err := parser.Parse(c.RollUp.SugarBagCups, "cup")
	if err != nil {
		return rc, fmt.Errorf("rollup.sugar_bag_cups: %w", err)
	}
	milkThreshold, err := parser.Parse(c.RollUp.MilkGallonThreshold, "cup")
	if err != nil {
		return rc, fmt.Errorf("rollup.milk_gallon_threshold: %w", err)
	}

	rc.FlourBagThreshold = flourThreshold.Quantity
	rc.FlourBagSize = flourBag.Quantity
	rc.SugarBagThreshold = sugarThreshold.Quantity
	rc.SugarBagSize = sugarBag.Quantity
	rc.MilkGallonThreshold = milkThreshold.Quantity
	return rc, nil
}
