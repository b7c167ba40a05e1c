package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		c, err := NewCatalog([]Recipe{
			{ID: 3, Name: "C", Category: "Soup"},
			{ID: 1, Name: "A", Category: "Main Course"},
			{ID: 2, Name: "B", Category: "Soup"},
		})
		require.NoError(t, err)

		all := c.All()
		require.Len(t, all, 3)
		assert.Equal(t, "C", all[0].Name)
		assert.Equal(t, "A", all[1].Name)
		assert.Equal(t, "B", all[2].Name)
		assert.Equal(t, 3, c.Len())
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := NewCatalog([]Recipe{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}})
		assert.ErrorIs(t, err, ErrDuplicateRecipe)
	})

	t.Run("rejects non-positive ids", func(t *testing.T) {
		_, err := NewCatalog([]Recipe{{ID: 0, Name: "A"}})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("empty catalog is valid", func(t *testing.T) {
		c, err := NewCatalog(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.Categories())
	})
}

func TestCatalogGet(t *testing.T) {
	c, err := NewCatalog([]Recipe{{ID: 7, Name: "Toast", Ingredients: []string{"bread", "butter"}}})
	require.NoError(t, err)

	t.Run("returns a copy", func(t *testing.T) {
		r, err := c.Get(7)
		require.NoError(t, err)
		r.Ingredients[0] = "changed"

		again, err := c.Get(7)
		require.NoError(t, err)
		assert.Equal(t, "bread", again.Ingredients[0])
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := c.Get(99)
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})
}

func TestCatalogCategories(t *testing.T) {
	c, err := NewCatalog([]Recipe{
		{ID: 1, Category: "Soup"},
		{ID: 2, Category: "Dessert"},
		{ID: 3, Category: "Soup"},
		{ID: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Dessert", "Soup"}, c.Categories())
}
