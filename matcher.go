// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// matcher is compiled representation of one template.
type matcher struct {
	// re matches paths against expanded pattern.
	re *regexp.Regexp
	// accessor resolves dotted keys during format.
	accessor FieldAccessor
	// captures maps placeholder occurrence order to placeholder key.
	captures []string
	// groups maps placeholder occurrence order to regexp submatch index.
	groups []int
	// keys are sorted unique placeholder keys.
	keys []string
	// tree is syntax tree with references spliced.
	tree []node
	// mode is duplicate placeholder policy.
	mode DuplicateMode
}

// parse extracts structured data from path.
func (m *matcher) parse(path string) (Data, error) {
	loc := m.re.FindStringSubmatchIndex(path)
	if loc == nil {
		return nil, fmt.Errorf("%w: path %q does not match %q", ErrParse, path, m.re.String())
	}

	values := make(map[string]string, len(m.keys))
	for i, key := range m.captures {
		start, end := loc[2*m.groups[i]], loc[2*m.groups[i]+1]
		if start < 0 {
			// Capture inside absent optional segment.
			continue
		}

		value := path[start:end]
		if prev, ok := values[key]; ok && m.mode == ModeStrict && prev != value {
			return nil, fmt.Errorf("%w: path %q binds %q to both %q and %q", ErrParse, path, key, prev, value)
		}

		values[key] = value
	}

	data := make(Data, len(values))
	for key, value := range values {
		data.set(key, value)
	}

	return data, nil
}

// format renders data through expanded syntax tree.
func (m *matcher) format(data any) (string, error) {
	var b strings.Builder
	if missing, ok := m.formatNodes(m.tree, data, &b); !ok {
		return "", fmt.Errorf("%w: missing key %q", ErrFormat, missing)
	}

	return b.String(), nil
}

// formatNodes writes nodes to b and reports first unresolved mandatory key.
func (m *matcher) formatNodes(nodes []node, data any, b *strings.Builder) (string, bool) {
	for i := range nodes {
		n := &nodes[i]
		switch n.kind {
		case nodeLiteral:
			b.WriteString(n.text)

		case nodePlaceholder:
			value, ok := m.accessor.Field(data, n.text)
			if !ok {
				return n.text, false
			}

			s, ok := scalarString(value)
			if !ok {
				return n.text, false
			}

			b.WriteString(s)

		case nodeReference:
			// Same as formatting the referenced template against the same data.
			if missing, ok := m.formatNodes(n.children, data, b); !ok {
				return missing, false
			}

		case nodeOptional:
			var region strings.Builder
			if _, ok := m.formatNodes(n.children, data, &region); ok {
				b.WriteString(region.String())
			}
		}
	}

	return "", true
}

// scalarString renders resolved placeholder value.
//
// Mappings and nil values are not scalars and count as missing.
func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	}

	rv := reflect.ValueOf(value)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		// Typed nil, String() on it may dereference.
		return "", false
	}

	if s, ok := value.(fmt.Stringer); ok {
		return s.String(), true
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array, reflect.Func, reflect.Chan:
		return "", false
	default:
		return fmt.Sprint(rv.Interface()), true
	}
}
