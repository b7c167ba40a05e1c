package domain

import (
	"fmt"
	"sort"
)

// Catalog is the read-only recipe collection shared by all requests.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	recipes []Recipe
	byID    map[int]int
}

// NewCatalog builds a catalog, keeping the given order as catalog order
func NewCatalog(recipes []Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make([]Recipe, 0, len(recipes)),
		byID:    make(map[int]int, len(recipes)),
	}

	for _, r := range recipes {
		if r.ID <= 0 {
			return nil, fmt.Errorf("%w: recipe %q has id %d", ErrInvalidRequest, r.Name, r.ID)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRecipe, r.ID)
		}
		c.byID[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r.Clone())
	}

	return c, nil
}

// All returns the recipes in catalog order. The returned recipes must be treated as read-only.
func (c *Catalog) All() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Get returns a copy of the recipe with the given id
func (c *Catalog) Get(id int) (Recipe, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Recipe{}, ErrRecipeNotFound
	}
	return c.recipes[idx].Clone(), nil
}

// Len returns the number of recipes
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Categories returns the sorted set of categories
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.recipes {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	sort.Strings(out)
	return out
}
