package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMasterDataEntry(t *testing.T) {
	t.Run("creates entry for each managed kind", func(t *testing.T) {
		for _, kind := range MasterDataKinds {
			entry, err := NewMasterDataEntry(kind, "sample", "Sample")
			require.NoError(t, err, "kind %s", kind)
			assert.Equal(t, kind, entry.Kind)
			assert.True(t, entry.IsActive)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewMasterDataEntry("color", "red", "Red")
		assert.Error(t, err)
	})

	t.Run("normalizes code to lowercase", func(t *testing.T) {
		entry, err := NewMasterDataEntry(MasterDataFit, "SLIM", "Slim")
		require.NoError(t, err)
		assert.Equal(t, "slim", entry.Code)
	})

	t.Run("rejects empty label", func(t *testing.T) {
		_, err := NewMasterDataEntry(MasterDataFit, "slim", "")
		assert.Error(t, err)
	})
}

func TestMasterDataEntryLifecycle(t *testing.T) {
	entry, err := NewMasterDataEntry(MasterDataAgeGroup, "kids", "Kids")
	require.NoError(t, err)

	require.NoError(t, entry.Update("Children"))
	assert.Equal(t, "Children", entry.Label)

	entry.SetSortOrder(3)
	assert.Equal(t, 3, entry.SortOrder)

	require.NoError(t, entry.Deactivate())
	assert.Error(t, entry.Deactivate())
	require.NoError(t, entry.Activate())
	assert.Error(t, entry.Activate())
}
