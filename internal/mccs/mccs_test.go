package mccs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcpctl/internal/doc"
	"github.com/roach88/vcpctl/internal/vcp"
)

func TestBootstrapBuildsFullTable(t *testing.T) {
	spec, err := Bootstrap(nil)
	require.NoError(t, err)

	assert.Equal(t, 148+31, spec.Len())

	input, err := spec.Code("input")
	require.NoError(t, err)
	assert.Equal(t, vcp.Key(0x60), input.Key())
	assert.Equal(t, vcp.NonContinuous, input.Type())
	assert.Equal(t, CategoryMiscellaneous, input.Category())

	dp, err := input.Value("display port 1")
	require.NoError(t, err)
	assert.Equal(t, vcp.Key(0x0F), dp.Key())
	hdmi, err := input.Value("digital 3")
	require.NoError(t, err)
	assert.Equal(t, vcp.Key(0x11), hdmi.Key())

	power, err := spec.Code("power")
	require.NoError(t, err)
	assert.Equal(t, vcp.Key(0xD6), power.Key())
	assert.Equal(t, []vcp.Key{1, 2, 3, 4, 5}, power.ValueKeys())

	vendor, err := spec.Code("0xE0")
	require.NoError(t, err)
	assert.Equal(t, "Manufacturer Specific 0xE0", vendor.Name())
	assert.Equal(t, CategoryManufacturer, vendor.Category())

	assert.True(t, spec.Contains("0xFE"))
	assert.False(t, spec.Contains("0xFF"))
}

func TestDictionaryCategories(t *testing.T) {
	seen := make(map[vcp.Key]string)
	for _, e := range Dictionary() {
		require.NotEmpty(t, e.Category, "code %s", e.Key)
		_, dup := seen[e.Key]
		require.False(t, dup, "duplicate code %s", e.Key)
		seen[e.Key] = e.Category
	}
	assert.Equal(t, CategoryImageAdjustment, seen[0x10])
	assert.Equal(t, CategoryPreset, seen[0x04])
	assert.Equal(t, CategoryDPVL, seen[0xBD])
}

func TestBootstrapAppliesCustomCodes(t *testing.T) {
	custom, err := doc.Unmarshal([]byte(`"0xE0":
  name: Picture Mode
  type: NC
  values:
    "0x01": Eco
    "0x02":
      name: Vivid
      aliases: [Bright]
`))
	require.NoError(t, err)

	spec, err := Bootstrap(custom)
	require.NoError(t, err)

	mode, err := spec.Code("picture mode")
	require.NoError(t, err)
	assert.Equal(t, vcp.Key(0xE0), mode.Key())
	assert.Equal(t, vcp.NonContinuous, mode.Type())

	vivid, err := mode.Value("bright")
	require.NoError(t, err)
	assert.Equal(t, vcp.Key(2), vivid.Key())

	assert.False(t, spec.Contains("Manufacturer Specific 0xE0"))
	assert.True(t, spec.Contains("Manufacturer Specific 0xE1"))
}

func TestBootstrapRejectsInvalidCustomCodes(t *testing.T) {
	custom, err := doc.Unmarshal([]byte("\"0xE0\":\n  type: Z\n"))
	require.NoError(t, err)

	_, err = Bootstrap(custom)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom codes")
}
