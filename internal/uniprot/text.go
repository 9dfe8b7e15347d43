package uniprot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Text is an element that carries character data and possibly attributes.
// Without attributes the document holds it as a bare string; with attributes
// it is an object whose text sits under "#text" and attributes under "@name".
type Text struct {
	Value string
	Attrs map[string]string
}

// Attr returns the named attribute, or nil when it is absent.
func (t Text) Attr(name string) *string {
	v, ok := t.Attrs[name]
	if !ok {
		return nil
	}
	return &v
}

func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &t.Value)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		for key, val := range raw {
			switch {
			case key == "#text":
				if err := json.Unmarshal(val, &t.Value); err != nil {
					return fmt.Errorf("text content: %w", err)
				}
			case strings.HasPrefix(key, "@"):
				var s string
				if err := json.Unmarshal(val, &s); err != nil {
					return fmt.Errorf("attribute %s: %w", key, err)
				}
				if t.Attrs == nil {
					t.Attrs = make(map[string]string)
				}
				t.Attrs[key[1:]] = s
			}
		}
		return nil
	case 'n':
		return nil
	default:
		return fmt.Errorf("expected text element, got %s", trimmed)
	}
}

func (t Text) MarshalJSON() ([]byte, error) {
	if len(t.Attrs) == 0 {
		return json.Marshal(t.Value)
	}
	out := make(map[string]string, len(t.Attrs)+1)
	for k, v := range t.Attrs {
		out["@"+k] = v
	}
	if t.Value != "" {
		out["#text"] = t.Value
	}
	return json.Marshal(out)
}
