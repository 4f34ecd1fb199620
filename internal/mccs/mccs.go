// Package mccs holds the built-in table of VCP codes defined by the VESA
// Monitor Control Command Set, and builds the registry every monitor reads
// through to.
package mccs

import (
	"fmt"

	"github.com/roach88/vcpctl/internal/doc"
	"github.com/roach88/vcpctl/internal/schema"
	"github.com/roach88/vcpctl/internal/vcp"
)

// Category names used in the table.
const (
	CategoryPreset          = "Preset"
	CategoryImageAdjustment = "Image Adjustment"
	CategoryDisplayControl  = "Display Control"
	CategoryGeometry        = "Geometry"
	CategoryMiscellaneous   = "Miscellaneous"
	CategoryAudio           = "Audio"
	CategoryDPVL            = "DPVL"
	CategoryManufacturer    = "Manufacturer"
)

// Manufacturer-specific codes occupy 0xE0 through 0xFE.
const (
	firstManufacturerCode = 0xE0
	lastManufacturerCode  = 0xFE
)

// Dictionary returns the full table in category order, with each entry's
// category filled in.
func Dictionary() []vcp.DictionaryEntry {
	groups := []struct {
		category string
		entries  []vcp.DictionaryEntry
	}{
		{CategoryPreset, preset},
		{CategoryImageAdjustment, imageAdjustment},
		{CategoryDisplayControl, displayControl},
		{CategoryGeometry, geometry},
		{CategoryMiscellaneous, miscellaneous},
		{CategoryAudio, audio},
		{CategoryDPVL, dpvl},
		{CategoryManufacturer, manufacturer()},
	}

	var out []vcp.DictionaryEntry
	for _, g := range groups {
		for _, e := range g.entries {
			e.Category = g.category
			out = append(out, e)
		}
	}
	return out
}

func manufacturer() []vcp.DictionaryEntry {
	out := make([]vcp.DictionaryEntry, 0, lastManufacturerCode-firstManufacturerCode+1)
	for k := vcp.Key(firstManufacturerCode); k <= lastManufacturerCode; k++ {
		out = append(out, vcp.DictionaryEntry{
			Key:  k,
			Name: fmt.Sprintf("Manufacturer Specific 0x%X", uint32(k)),
		})
	}
	return out
}

// Bootstrap builds the code registry from the built-in table and applies
// the user's custom codes on top. Custom codes use the override document
// format and are validated before they are applied.
func Bootstrap(custom doc.Value) (*vcp.CodeStorage, error) {
	spec := vcp.NewCodeStorage()
	if err := spec.AddDictionary(Dictionary()); err != nil {
		return nil, fmt.Errorf("load mccs table: %w", err)
	}
	if custom == nil {
		return spec, nil
	}
	if err := schema.Validate(custom); err != nil {
		return nil, fmt.Errorf("custom codes: %w", err)
	}
	if err := spec.Deserialize(custom, nil); err != nil {
		return nil, fmt.Errorf("apply custom codes: %w", err)
	}
	return spec, nil
}
