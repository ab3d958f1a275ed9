package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// parse reads document text into a node tree. YAML is tried first; text
// that is not valid YAML is retried as JSON.
func parse(text string) (*node, error) {
	root, yamlErr := parseYAML(text)
	if yamlErr == nil {
		return root, nil
	}
	root, jsonErr := parseJSON(text)
	if jsonErr == nil {
		return root, nil
	}
	return nil, yamlErr
}

func parseYAML(text string) (*node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, errors.New("document is empty")
	}
	root := fromYAML(doc.Content[0], 0)
	if root.kind != mappingNode {
		return nil, errors.New("document root is not a mapping")
	}
	return root, nil
}

const maxAliasDepth = 64

func fromYAML(y *yaml.Node, depth int) *node {
	switch y.Kind {
	case yaml.AliasNode:
		if y.Alias == nil || depth > maxAliasDepth {
			return scalar("")
		}
		return fromYAML(y.Alias, depth+1)
	case yaml.MappingNode:
		m := mapping()
		for i := 0; i+1 < len(y.Content); i += 2 {
			m.set(y.Content[i].Value, fromYAML(y.Content[i+1], depth))
		}
		return m
	case yaml.SequenceNode:
		s := sequence()
		for _, c := range y.Content {
			s.append(fromYAML(c, depth))
		}
		return s
	case yaml.DocumentNode:
		if len(y.Content) > 0 {
			return fromYAML(y.Content[0], depth)
		}
		return mapping()
	}
	if y.Tag == "!!null" && y.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) == 0 {
		return scalar("")
	}
	return scalar(y.Value)
}

func parseJSON(text string) (*node, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON document")
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("document root is not an object")
	}
	return fromJSON(root), nil
}

func fromJSON(v any) *node {
	switch t := v.(type) {
	case map[string]any:
		m := mapping()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			m.set(k, fromJSON(t[k]))
		}
		return m
	case []any:
		s := sequence()
		for _, it := range t {
			s.append(fromJSON(it))
		}
		return s
	case nil:
		return scalar("")
	case string:
		return scalar(t)
	case json.Number:
		return scalar(t.String())
	}
	return scalar(fmt.Sprint(v))
}
