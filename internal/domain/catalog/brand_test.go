package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrand(t *testing.T) {
	t.Run("creates brand with explicit slug", func(t *testing.T) {
		brand, err := NewBrand("Acme Apparel", "acme-apparel")
		require.NoError(t, err)
		assert.Equal(t, "Acme Apparel", brand.Name)
		assert.Equal(t, "acme-apparel", brand.Slug)
		assert.True(t, brand.IsActive)
		assert.Nil(t, brand.ParentID)
		assert.Len(t, brand.GetDomainEvents(), 1)
	})

	t.Run("derives slug from name when omitted", func(t *testing.T) {
		brand, err := NewBrand("Maison Été", "")
		require.NoError(t, err)
		assert.Equal(t, "maison-ete", brand.Slug)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBrand("", "slug")
		assert.Error(t, err)
	})

	t.Run("rejects invalid slug", func(t *testing.T) {
		for _, slug := range []string{"Has-Upper", "-leading", "trailing-", "double--hyphen", "under_score"} {
			_, err := NewBrand("Acme", slug)
			assert.Error(t, err, "slug %q", slug)
		}
	})

	t.Run("emits created event", func(t *testing.T) {
		brand, err := NewBrand("Acme", "acme")
		require.NoError(t, err)
		events := brand.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeBrandCreated, events[0].EventType())
	})
}

func TestNewSubBrand(t *testing.T) {
	parent, err := NewBrand("Acme", "acme")
	require.NoError(t, err)

	t.Run("nests under a top-level brand", func(t *testing.T) {
		sub, err := NewSubBrand("Acme Kids", "acme-kids", parent)
		require.NoError(t, err)
		require.NotNil(t, sub.ParentID)
		assert.Equal(t, parent.ID, *sub.ParentID)
		assert.True(t, sub.IsSubBrand())
	})

	t.Run("rejects nil parent", func(t *testing.T) {
		_, err := NewSubBrand("Acme Kids", "acme-kids", nil)
		assert.Error(t, err)
	})

	t.Run("rejects nesting below one level", func(t *testing.T) {
		sub, err := NewSubBrand("Acme Kids", "acme-kids", parent)
		require.NoError(t, err)
		_, err = NewSubBrand("Acme Toddler", "acme-toddler", sub)
		assert.Error(t, err)
	})
}

func TestBrandUpdate(t *testing.T) {
	brand, err := NewBrand("Acme", "acme")
	require.NoError(t, err)
	brand.ClearDomainEvents()

	t.Run("updates display fields", func(t *testing.T) {
		err := brand.Update("Acme Apparel", "Workwear since 1949", "https://cdn.example.com/acme.png", "https://acme.example.com")
		require.NoError(t, err)
		assert.Equal(t, "Acme Apparel", brand.Name)
		assert.Equal(t, "Workwear since 1949", brand.Description)
		assert.Equal(t, 2, brand.GetVersion())
	})

	t.Run("rejects non-http logo URL", func(t *testing.T) {
		err := brand.Update("Acme", "", "ftp://cdn.example.com/acme.png", "")
		assert.Error(t, err)
	})

	t.Run("updates slug", func(t *testing.T) {
		require.NoError(t, brand.UpdateSlug("acme-workwear"))
		assert.Equal(t, "acme-workwear", brand.Slug)
	})
}

func TestBrandActivation(t *testing.T) {
	brand, err := NewBrand("Acme", "acme")
	require.NoError(t, err)

	t.Run("cannot activate an active brand", func(t *testing.T) {
		assert.Error(t, brand.Activate())
	})

	t.Run("deactivate then activate", func(t *testing.T) {
		require.NoError(t, brand.Deactivate())
		assert.False(t, brand.IsActive)
		require.NoError(t, brand.Activate())
		assert.True(t, brand.IsActive)
	})

	t.Run("cannot deactivate an inactive brand", func(t *testing.T) {
		require.NoError(t, brand.Deactivate())
		assert.Error(t, brand.Deactivate())
	})
}
