package vcp

import "fmt"

// DictionaryEntry describes one code of a static code table.
type DictionaryEntry struct {
	Key         Key
	Name        string
	Aliases     []string
	Type        ControlType
	Description string
	Category    string
	Values      []DictionaryValue
}

// DictionaryValue names one value of a code. The first name is primary.
type DictionaryValue struct {
	Key   Key
	Names []string
}

// AddDictionary adds every entry of a static table. Entries are added in
// order, so a later alias wins over an earlier one.
func (s *CodeStorage) AddDictionary(entries []DictionaryEntry) error {
	for _, d := range entries {
		if err := s.addDictionaryEntry(d); err != nil {
			return fmt.Errorf("dictionary entry %s (%s): %w", d.Key, d.Name, err)
		}
	}
	return nil
}

func (s *CodeStorage) addDictionaryEntry(d DictionaryEntry) error {
	typ, err := ParseControlType(string(d.Type))
	if err != nil {
		return err
	}
	c := s.Add(d.Key)
	if d.Name != "" {
		if err := c.AddName(d.Name); err != nil {
			return err
		}
	}
	c.typ = typ
	c.description = d.Description
	c.category = d.Category
	for _, alias := range d.Aliases {
		if _, err := s.Set(alias, d.Key); err != nil {
			return err
		}
	}
	for _, v := range d.Values {
		if len(v.Names) == 0 {
			c.values.t.add(v.Key)
			continue
		}
		for _, name := range v.Names {
			if _, err := c.SetValue(name, v.Key); err != nil {
				return err
			}
		}
	}
	return nil
}
