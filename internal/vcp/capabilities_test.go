package vcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCapabilities(t *testing.T) {
	spec := newTestSpec(t)
	overlay := NewOverlay(spec)

	err := overlay.LoadCapabilities([]Capability{
		{Code: 0x10},
		{Code: 0x60, Values: []Key{0x0F, 0x12}},
		{Code: 0xF1},
	})
	require.NoError(t, err)

	assert.Equal(t, []Key{0x10, 0x60, 0xF1}, overlay.Keys())
	assert.False(t, overlay.Contains("contrast"))
	assert.Equal(t, "Unknown Code 0xF1", mustCode(t, overlay, "0xF1").Name())

	input := mustCode(t, overlay, "input")
	require.IsType(t, &Code{}, input, "codes with a value list are materialized")
	assert.Equal(t, []Key{0x0F}, input.ValueKeys())
	assert.False(t, input.HasValue("hdmi1"))

	assert.Equal(t, []Key{0x10, 0x12, 0x60}, spec.Keys())
	assert.Equal(t, []Key{0x0F, 0x11}, mustCode(t, spec, "input").ValueKeys())
	assert.False(t, overlay.ContainsLocal("0x10"), "unrestricted codes stay in the fallback")
}

func TestLoadCapabilitiesWithoutFallback(t *testing.T) {
	s := newTestSpec(t)

	require.NoError(t, s.LoadCapabilities([]Capability{{Code: 0x12}}))
	assert.Equal(t, []Key{0x12}, s.Keys())
	assert.False(t, s.Contains("input"))
}

func TestAddDictionary(t *testing.T) {
	spec := newTestSpec(t)

	input := mustCode(t, spec, "Input Select")
	assert.Equal(t, NonContinuous, input.Type())
	assert.Equal(t, "Miscellaneous", input.Category())
	assert.Equal(t, []string{"Input Select", "Input"}, input.Names())
	assert.Equal(t, []string{"HDMI 1", "Digital 3"}, mustValue(t, input, "0x11").Names())

	err := spec.AddDictionary([]DictionaryEntry{{Key: 0x20, Name: "Position", Type: "Q"}})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "0x20")

	err = spec.AddDictionary([]DictionaryEntry{{Key: 0x21, Name: "Odd", Aliases: []string{"33"}}})
	assert.True(t, IsInvalidArgument(err))
}

func TestAddDictionaryUnnamedValues(t *testing.T) {
	s := NewCodeStorage()
	require.NoError(t, s.AddDictionary([]DictionaryEntry{{
		Key:    0xD6,
		Name:   "Power Mode",
		Values: []DictionaryValue{{Key: 0x01}, {Key: 0x04, Names: []string{"Off"}}},
	}}))

	power := mustCode(t, s, "power mode")
	assert.Equal(t, []Key{0x01, 0x04}, power.ValueKeys())
	assert.Equal(t, "0x1", mustValue(t, power, "1").Name())
}
