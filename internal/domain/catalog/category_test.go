package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates root category", func(t *testing.T) {
		cat, err := NewCategory("tops", "Tops")
		require.NoError(t, err)
		assert.Equal(t, "tops", cat.Slug)
		assert.Equal(t, 0, cat.Level)
		assert.True(t, cat.IsRoot())
		assert.Equal(t, cat.ID.String(), cat.Path)
	})

	t.Run("derives slug from name", func(t *testing.T) {
		cat, err := NewCategory("", "T-Shirts & Polos")
		require.NoError(t, err)
		assert.Equal(t, "t-shirts-polos", cat.Slug)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCategory("tops", "")
		assert.Error(t, err)
	})
}

func TestNewChildCategory(t *testing.T) {
	root, err := NewCategory("clothing", "Clothing")
	require.NoError(t, err)

	t.Run("builds materialized path from parent", func(t *testing.T) {
		child, err := NewChildCategory("tops", "Tops", root)
		require.NoError(t, err)
		assert.Equal(t, 1, child.Level)
		assert.Equal(t, root.Path+"/"+child.ID.String(), child.Path)
		assert.Equal(t, []string{root.ID.String()}, func() []string {
			ids := child.GetAncestorIDs()
			out := make([]string, len(ids))
			for i, id := range ids {
				out[i] = id.String()
			}
			return out
		}())
	})

	t.Run("rejects nil parent", func(t *testing.T) {
		_, err := NewChildCategory("tops", "Tops", nil)
		assert.Error(t, err)
	})

	t.Run("enforces maximum depth", func(t *testing.T) {
		parent := root
		for i := 1; i < MaxCategoryDepth; i++ {
			child, err := NewChildCategory(fmt.Sprintf("level-%d", i), fmt.Sprintf("Level %d", i), parent)
			require.NoError(t, err)
			parent = child
		}
		_, err := NewChildCategory("too-deep", "Too Deep", parent)
		assert.Error(t, err)
	})
}

func TestCategoryMoveTo(t *testing.T) {
	root, _ := NewCategory("clothing", "Clothing")
	other, _ := NewCategory("accessories", "Accessories")
	child, err := NewChildCategory("tops", "Tops", root)
	require.NoError(t, err)

	t.Run("moves under a new parent", func(t *testing.T) {
		require.NoError(t, child.MoveTo(other))
		assert.Equal(t, other.Path+"/"+child.ID.String(), child.Path)
		assert.Equal(t, 1, child.Level)
		assert.True(t, child.IsDescendantOf(other))
	})

	t.Run("moves to root", func(t *testing.T) {
		require.NoError(t, child.MoveTo(nil))
		assert.True(t, child.IsRoot())
		assert.Equal(t, child.ID.String(), child.Path)
	})

	t.Run("rejects itself as parent", func(t *testing.T) {
		assert.Error(t, child.MoveTo(child))
	})

	t.Run("rejects a descendant as parent", func(t *testing.T) {
		grandchild, err := NewChildCategory("tees", "Tees", child)
		require.NoError(t, err)
		assert.Error(t, child.MoveTo(grandchild))
	})
}

func TestCategoryAncestry(t *testing.T) {
	root, _ := NewCategory("clothing", "Clothing")
	child, _ := NewChildCategory("tops", "Tops", root)
	grandchild, _ := NewChildCategory("tees", "Tees", child)

	assert.True(t, root.IsAncestorOf(grandchild))
	assert.True(t, grandchild.IsDescendantOf(root))
	assert.False(t, grandchild.IsAncestorOf(root))
	assert.False(t, root.IsAncestorOf(nil))
	assert.Len(t, grandchild.GetAncestorIDs(), 2)
}

func TestCategoryStatus(t *testing.T) {
	cat, _ := NewCategory("tops", "Tops")

	t.Run("starts active", func(t *testing.T) {
		assert.True(t, cat.IsActive())
		assert.Error(t, cat.Activate())
	})

	t.Run("deactivate emits status change", func(t *testing.T) {
		cat.ClearDomainEvents()
		require.NoError(t, cat.Deactivate())
		events := cat.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryStatusChanged, events[0].EventType())
	})
}
