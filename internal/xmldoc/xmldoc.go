// Package xmldoc converts an XML document into the nested key/value form the
// UniProt parser consumes. The conventions are the usual XML-to-dict ones:
//
//   - attributes are stored under "@name"
//   - character data of an element that also has attributes or children is
//     stored under "#text"
//   - an element without attributes or children becomes its (trimmed) text,
//     or nil when it is empty
//   - a child element that occurs once is a bare value; one that occurs more
//     than once becomes an ordered list
package xmldoc

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	AttrPrefix = "@"
	TextKey    = "#text"
)

var ErrEmptyDocument = errors.New("xml document has no root element")

type element struct {
	name     string
	fields   map[string]any
	hasChild bool
	text     strings.Builder
}

// Parse reads one XML document and returns {rootName: value}.
func Parse(r io.Reader) (map[string]any, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var stack []*element
	var root map[string]any

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, fields: make(map[string]any)}
			for _, a := range t.Attr {
				el.fields[attrKey(a.Name)] = a.Value
			}
			if n := len(stack); n > 0 {
				stack[n-1].hasChild = true
			}
			stack = append(stack, el)

		case xml.CharData:
			if n := len(stack); n > 0 {
				stack[n-1].text.Write(t)
			}

		case xml.EndElement:
			n := len(stack)
			if n == 0 {
				return nil, fmt.Errorf("unexpected end element %q", t.Name.Local)
			}
			el := stack[n-1]
			stack = stack[:n-1]
			value := el.value()

			if len(stack) == 0 {
				root = map[string]any{el.name: value}
				continue
			}
			appendChild(stack[len(stack)-1].fields, el.name, value)
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// ConvertToJSON parses XML and re-encodes the nested form as JSON.
func ConvertToJSON(r io.Reader) ([]byte, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func (el *element) value() any {
	text := strings.TrimSpace(el.text.String())
	if len(el.fields) == 0 && !el.hasChild {
		if text == "" {
			return nil
		}
		return text
	}
	if text != "" {
		el.fields[TextKey] = text
	}
	return el.fields
}

func appendChild(fields map[string]any, name string, value any) {
	existing, ok := fields[name]
	if !ok {
		fields[name] = value
		return
	}
	if list, ok := existing.([]any); ok {
		fields[name] = append(list, value)
		return
	}
	fields[name] = []any{existing, value}
}

func attrKey(name xml.Name) string {
	if name.Space == "xmlns" {
		return AttrPrefix + "xmlns:" + name.Local
	}
	return AttrPrefix + name.Local
}
