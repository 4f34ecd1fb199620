package vcp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestSpec builds a small code table shaped like the MCCS one.
func newTestSpec(t *testing.T) *CodeStorage {
	t.Helper()

	spec := NewCodeStorage()
	err := spec.AddDictionary([]DictionaryEntry{
		{Key: 0x10, Name: "Luminance", Aliases: []string{"Brightness"}, Type: Continuous, Category: "Image Adjustment"},
		{Key: 0x12, Name: "Contrast", Type: Continuous, Category: "Image Adjustment"},
		{
			Key:      0x60,
			Name:     "Input Select",
			Aliases:  []string{"Input"},
			Type:     NonContinuous,
			Category: "Miscellaneous",
			Values: []DictionaryValue{
				{Key: 0x0F, Names: []string{"DP 1", "DisplayPort 1"}},
				{Key: 0x11, Names: []string{"HDMI 1", "Digital 3"}},
			},
		},
	})
	require.NoError(t, err)
	return spec
}

func mustCode(t *testing.T, s *CodeStorage, id string) CodeEntry {
	t.Helper()
	c, err := s.Code(id)
	require.NoError(t, err, "code %q", id)
	return c
}

func mustValue(t *testing.T, c CodeEntry, id string) ValueEntry {
	t.Helper()
	v, err := c.Value(id)
	require.NoError(t, err, "value %q", id)
	return v
}
