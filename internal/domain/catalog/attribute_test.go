package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttribute(t *testing.T) {
	t.Run("creates text attribute", func(t *testing.T) {
		attr, err := NewAttribute("Material", "Material", AttributeInputText)
		require.NoError(t, err)
		assert.Equal(t, "material", attr.Code)
		assert.Equal(t, AttributeInputText, attr.InputType)
		assert.True(t, attr.IsActive)
		assert.Equal(t, "[]", attr.Options)
	})

	t.Run("rejects unknown input type", func(t *testing.T) {
		_, err := NewAttribute("material", "Material", "dropdown")
		assert.Error(t, err)
	})

	t.Run("rejects invalid code", func(t *testing.T) {
		for _, code := range []string{"", "has space", "has-hyphen"} {
			_, err := NewAttribute(code, "Material", AttributeInputText)
			assert.Error(t, err, "code %q", code)
		}
	})
}

func TestAttributeOptions(t *testing.T) {
	t.Run("select attributes carry options", func(t *testing.T) {
		attr, err := NewAttribute("sleeve", "Sleeve Length", AttributeInputSelect)
		require.NoError(t, err)
		require.NoError(t, attr.SetOptions(`["short","long","three-quarter"]`))
		assert.Equal(t, `["short","long","three-quarter"]`, attr.Options)
	})

	t.Run("options must be a JSON array", func(t *testing.T) {
		attr, _ := NewAttribute("sleeve", "Sleeve Length", AttributeInputSelect)
		assert.Error(t, attr.SetOptions(`{"short":true}`))
	})

	t.Run("text attributes reject options", func(t *testing.T) {
		attr, _ := NewAttribute("material", "Material", AttributeInputText)
		assert.Error(t, attr.SetOptions(`["cotton"]`))
	})
}

func TestAttributeLifecycle(t *testing.T) {
	attr, err := NewAttribute("fit", "Fit", AttributeInputSelect)
	require.NoError(t, err)

	require.NoError(t, attr.Update("Garment Fit"))
	assert.Equal(t, "Garment Fit", attr.Name)

	assert.Error(t, attr.Activate())
	require.NoError(t, attr.Deactivate())
	assert.False(t, attr.IsActive)
	require.NoError(t, attr.Activate())
}
