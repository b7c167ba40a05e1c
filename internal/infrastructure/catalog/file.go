package catalog

import (
	"context"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/instadish/backend/internal/domain"
)

//go:embed data/recipes.json
var embeddedRecipes []byte

// EmbeddedSource serves the recipe dataset compiled into the binary
type EmbeddedSource struct{}

// LoadRecipes decodes the embedded dataset
func (EmbeddedSource) LoadRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return decodeJSON(embeddedRecipes)
}

// JSONSource reads a JSON array of recipes from disk
type JSONSource struct {
	Path string
}

// LoadRecipes reads and decodes the file
func (s JSONSource) LoadRecipes(ctx context.Context) ([]domain.Recipe, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}
	return decodeJSON(raw)
}

func decodeJSON(raw []byte) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}
	// recipes without an id are numbered after the highest explicit one, in file order
	next := 1
	for _, r := range recipes {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	for i, r := range recipes {
		if r.ID == 0 {
			r.ID = next
			next++
		}
		recipes[i] = complete(r)
	}
	return recipes, nil
}

// CSVSource reads headerless rows of name, ingredients, instructions and an optional tag list.
// Row n (1-based) gets id n. A leading "Recipe Name" header row is skipped.
type CSVSource struct {
	Path string
}

// LoadRecipes reads and parses the file
func (s CSVSource) LoadRecipes(ctx context.Context) ([]domain.Recipe, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe file: %w", err)
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]domain.Recipe, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var recipes []domain.Recipe
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse recipe row %d: %w", row+1, err)
		}
		if row == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "recipe name") {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("recipe row %d has %d columns, want at least 3", row+1, len(record))
		}

		id := len(recipes) + 1
		name := strings.TrimSpace(record[0])
		if name == "" {
			name = fmt.Sprintf("Recipe %d", id)
		}
		recipes = append(recipes, complete(domain.Recipe{
			ID:           id,
			Name:         name,
			Ingredients:  parseList(record[1]),
			Instructions: parseList(record[2]),
		}))
	}
	return recipes, nil
}
