package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/grocer/pkg/application/dto"
	"github.com/vsinha/grocer/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	BuildTime time.Duration
}

// Generate writes the result in the configured format. Text and JSON go to w
// and are also saved when an output directory is set; CSV is written to w
// unless an output directory is set, in which case one file per list is saved.
func Generate(w io.Writer, result *dto.ShoppingListResult, config Config) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(w, result, config)
	case "json":
		return generateJSONOutput(w, result, config)
	case "csv":
		return generateCSVOutput(w, result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(w io.Writer, result *dto.ShoppingListResult, config Config) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "🛒 Shopping List\n")
	fmt.Fprintf(&buf, "================\n\n")

	fmt.Fprintf(&buf, "Recipes: %d\n", len(result.RecipeIDs))
	fmt.Fprintf(&buf, "Needed: %d\n", len(result.Needed))
	fmt.Fprintf(&buf, "To Buy: %d\n", len(result.Buy))
	fmt.Fprintf(&buf, "Warnings: %d\n", len(result.Warnings))
	if config.Verbose {
		fmt.Fprintf(&buf, "Run: %s\n", result.RunID)
		fmt.Fprintf(&buf, "Build Time: %v\n", config.BuildTime)
	}
	fmt.Fprintln(&buf)

	if len(result.Buy) > 0 {
		fmt.Fprintf(&buf, "📋 To Buy:\n")
		fmt.Fprintf(&buf, "%-10s %-14s %-30s\n", "Qty", "Unit", "Ingredient")
		fmt.Fprintf(&buf, "%-10s %-14s %-30s\n", "----------", "--------------", "------------------------------")

		for _, line := range result.Buy {
			name := line.Name
			if line.Warning {
				name += " ⚠️"
			}
			fmt.Fprintf(&buf, "%-10s %-14s %-30s\n", line.Quantity, line.Unit, name)
		}
		fmt.Fprintln(&buf)
	} else {
		fmt.Fprintf(&buf, "✅ Everything is on hand.\n\n")
	}

	if config.Verbose && len(result.Needed) > 0 {
		fmt.Fprintf(&buf, "🍳 Needed Before Pantry:\n")
		for _, line := range result.Needed {
			fmt.Fprintf(&buf, "  %s\n", line.String())
		}
		fmt.Fprintln(&buf)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&buf, "⚠️  Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&buf, "  %s: %s\n", warning.Ingredient, warning.Message)
		}
		fmt.Fprintln(&buf)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write text output: %w", err)
	}

	if config.OutputDir != "" {
		filename, err := saveFile(config.OutputDir, "shopping_list.txt", buf.Bytes())
		if err != nil {
			return err
		}
		if config.Verbose {
			fmt.Fprintf(w, "💾 Results saved to: %s\n", filename)
		}
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(w io.Writer, result *dto.ShoppingListResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		return nil
	}

	filename, err := saveFile(config.OutputDir, "shopping_list.json", jsonData)
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(w, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(w io.Writer, result *dto.ShoppingListResult, config Config) error {
	if config.OutputDir == "" {
		return writeLinesCSV(w, result.Buy)
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	buyFile := filepath.Join(config.OutputDir, "buy.csv")
	if err := writeCSVFile(buyFile, func(fw io.Writer) error { return writeLinesCSV(fw, result.Buy) }); err != nil {
		return fmt.Errorf("failed to write buy CSV: %w", err)
	}

	neededFile := filepath.Join(config.OutputDir, "needed.csv")
	if err := writeCSVFile(neededFile, func(fw io.Writer) error { return writeLinesCSV(fw, result.Needed) }); err != nil {
		return fmt.Errorf("failed to write needed CSV: %w", err)
	}

	warningsFile := filepath.Join(config.OutputDir, "warnings.csv")
	if err := writeCSVFile(warningsFile, func(fw io.Writer) error { return writeWarningsCSV(fw, result.Warnings) }); err != nil {
		return fmt.Errorf("failed to write warnings CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "💾 CSV results saved to:\n")
		fmt.Fprintf(w, "  Buy: %s\n", buyFile)
		fmt.Fprintf(w, "  Needed: %s\n", neededFile)
		fmt.Fprintf(w, "  Warnings: %s\n", warningsFile)
	}

	return nil
}

func writeLinesCSV(w io.Writer, lines []entities.ShoppingLine) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ingredient", "quantity", "unit", "kind", "warning"}); err != nil {
		return err
	}
	for _, line := range lines {
		record := []string{
			line.Name,
			line.Quantity,
			line.Unit,
			line.Kind.String(),
			fmt.Sprintf("%t", line.Warning),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeWarningsCSV(w io.Writer, warnings []dto.Warning) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ingredient", "kind", "message"}); err != nil {
		return err
	}
	for _, warning := range warnings {
		if err := writer.Write([]string{warning.Ingredient, warning.Kind.String(), warning.Message}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCSVFile(filename string, write func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func saveFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
