package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCommand(config Config) (*ShopCommand, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := NewShopCommand(config)
	cmd.out = &buf
	return cmd, &buf
}

const recipesCSV = `recipe_id,recipe_name,quantity,unit,ingredient
pancakes,Pancakes,1/2,cup,butter
pancakes,Pancakes,2,,eggs
cookies,Cookies,4,tbsp,butter
cookies,Cookies,1,package,chocolate chips
`

func TestShopCommand_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	recipes := writeFile(t, dir, "recipes.csv", recipesCSV)
	onHand := writeFile(t, dir, "onhand.csv", "ingredient,quantity\nbutter,1\n")

	cmd, buf := newTestCommand(Config{
		RecipeFiles: []string{recipes},
		OnHandFile:  onHand,
		Format:      "json",
	})
	require.NoError(t, cmd.Execute(context.Background()))

	var result struct {
		Buy []struct {
			Name     string `json:"name"`
			Quantity string `json:"quantity"`
			Unit     string `json:"unit"`
		} `json:"buy"`
		Warnings []struct {
			Ingredient string `json:"ingredient"`
		} `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	require.Len(t, result.Buy, 3)
	// 1/2 cup + 4 tbsp = 1 1/2 sticks, one stick on hand
	assert.Equal(t, "butter", result.Buy[0].Name)
	assert.Equal(t, "1", result.Buy[0].Quantity)
	assert.Equal(t, "pack", result.Buy[0].Unit)
	assert.Equal(t, "eggs", result.Buy[1].Name)
	assert.Equal(t, "half-dozen", result.Buy[1].Unit)
	assert.Equal(t, "chocolate chips", result.Buy[2].Name)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "chocolate chips", result.Warnings[0].Ingredient)
}

func TestShopCommand_SelectedIDs(t *testing.T) {
	dir := t.TempDir()
	recipes := writeFile(t, dir, "recipes.csv", recipesCSV)

	cmd, buf := newTestCommand(Config{
		RecipeFiles: []string{recipes},
		RecipeIDs:   []string{"pancakes"},
		Format:      "csv",
	})
	require.NoError(t, cmd.Execute(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "butter,1,stick,merged,false")
	assert.NotContains(t, out, "chocolate chips")
}

func TestShopCommand_Check(t *testing.T) {
	dir := t.TempDir()
	recipes := writeFile(t, dir, "recipes.csv", recipesCSV)

	cmd, buf := newTestCommand(Config{RecipeFiles: []string{recipes}, Check: true})
	require.NoError(t, cmd.Execute(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Cookies (cookies)")
	assert.Contains(t, out, `unit "package" is not supported`)
	assert.Contains(t, out, "1 of 2 recipes")
}

func TestShopCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	recipes := writeFile(t, dir, "recipes.csv", "recipe_id,recipe_name,line\nbread,Bread,6 cups flour\n")
	cfgFile := writeFile(t, dir, "grocer.toml", "format = \"csv\"\n\n[rollup]\nflour_bag_threshold = \"10\"\n")

	cmd, buf := newTestCommand(Config{RecipeFiles: []string{recipes}, ConfigFile: cfgFile})
	require.NoError(t, cmd.Execute(context.Background()))

	assert.Contains(t, buf.String(), "flour,6,cups,merged,false")
}

func TestShopCommand_InvalidInputs(t *testing.T) {
	dir := t.TempDir()
	recipes := writeFile(t, dir, "recipes.csv", recipesCSV)

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "no recipe source",
			config:  Config{},
			wantErr: "must specify -recipes files or a -db database",
		},
		{
			name:    "both sources",
			config:  Config{RecipeFiles: []string{recipes}, Database: filepath.Join(dir, "r.db")},
			wantErr: "not both",
		},
		{
			name:    "missing file",
			config:  Config{RecipeFiles: []string{filepath.Join(dir, "missing.csv")}},
			wantErr: "file not found",
		},
		{
			name:    "bad format",
			config:  Config{RecipeFiles: []string{recipes}, Format: "xml"},
			wantErr: "format",
		},
		{
			name:    "unknown recipe",
			config:  Config{RecipeFiles: []string{recipes}, RecipeIDs: []string{"soup"}},
			wantErr: "recipe not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := newTestCommand(tt.config)
			err := cmd.Execute(context.Background())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestShopCommand_Help(t *testing.T) {
	cmd, buf := newTestCommand(Config{Help: true})
	require.NoError(t, cmd.Execute(context.Background()))
	assert.Contains(t, buf.String(), "USAGE:")
	assert.Contains(t, buf.String(), "GROCER_LOG_MODE")
}
