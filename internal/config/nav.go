package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NavEntry is one element of the nav list. In YAML it is either a bare
// string key or a single-key mapping from key to display title:
//
//	nav:
//	  - guide.md
//	  - reference: API Reference
//	  - https://example.com/repo: Source
//
// The key names a Markdown file, a directory, or an external URL; a missing
// title means the entry's title is derived from the target document.
type NavEntry struct {
	Key   string
	Title string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *NavEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var key string
		if err := value.Decode(&key); err != nil {
			return err
		}
		e.Key = key
		e.Title = ""
		return nil
	case yaml.MappingNode:
		var m map[string]string
		if err := value.Decode(&m); err != nil {
			return err
		}
		if len(m) != 1 {
			return fmt.Errorf("nav entry mapping must have exactly one key, got %d", len(m))
		}
		for k, v := range m {
			e.Key = k
			e.Title = v
		}
		return nil
	default:
		return fmt.Errorf("nav entry must be a string or a single-key mapping (line %d)", value.Line)
	}
}

// MarshalYAML implements yaml.Marshaler, producing the same compact forms
// UnmarshalYAML accepts.
func (e NavEntry) MarshalYAML() (any, error) {
	if e.Title == "" {
		return e.Key, nil
	}
	return map[string]string{e.Key: e.Title}, nil
}
