package vcp

import "fmt"

// Capability is one code a monitor reports as supported. A nil Values
// slice means the monitor did not restrict the code's values.
type Capability struct {
	Code   Key
	Values []Key
}

// LoadCapabilities reshapes the storage to what a monitor reports: codes
// it does not report are removed, reported codes missing from the table
// are added under a placeholder name, and for codes that come with a value
// list every other value is removed. Entries that only exist in the
// fallback are tombstoned or materialized as needed; the fallback itself is
// never changed.
func (s *CodeStorage) LoadCapabilities(caps []Capability) error {
	reported := make(map[Key]struct{}, len(caps))
	for _, c := range caps {
		reported[c.Code] = struct{}{}
	}
	for _, k := range s.Keys() {
		if _, ok := reported[k]; !ok {
			s.t.remove(KeyRef(k))
		}
	}

	for _, reportedCode := range caps {
		ref := KeyRef(reportedCode.Code)
		if !s.t.contains(ref) {
			c := s.t.add(reportedCode.Code)
			if err := c.AddName(fmt.Sprintf("Unknown Code 0x%X", uint32(reportedCode.Code))); err != nil {
				return err
			}
			debugLog().Debug("added unknown code", "code", reportedCode.Code.String())
		}
		if reportedCode.Values == nil {
			continue
		}
		c, err := s.t.materialize("load capabilities", ref)
		if err != nil {
			return err
		}
		allowed := make(map[Key]struct{}, len(reportedCode.Values))
		for _, v := range reportedCode.Values {
			allowed[v] = struct{}{}
		}
		for _, k := range c.values.t.keys() {
			if _, ok := allowed[k]; !ok {
				c.values.t.remove(KeyRef(k))
			}
		}
	}
	return nil
}
