// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"reflect"
	"strings"
)

// fieldTag is struct tag consulted before field names.
const fieldTag = "pathtemplate"

// FieldAccessor resolves dotted key path against root value during Format.
type FieldAccessor interface {
	// Field returns value stored under dotted path, false when any segment is missing.
	Field(root any, path string) (any, bool)
}

// FieldAccessorFunc adapts plain function to FieldAccessor.
type FieldAccessorFunc func(root any, path string) (any, bool)

// Field implements FieldAccessor.
func (f FieldAccessorFunc) Field(root any, path string) (any, bool) {
	return f(root, path)
}

// DefaultFieldAccessor tries mapping lookup first and falls back to struct
// fields only for non-mapping values.
//
// Struct fields match `pathtemplate:"name"` tag, then field name ignoring case.
var DefaultFieldAccessor FieldAccessor = FieldAccessorFunc(lookupField)

// lookupField walks dotted path segment by segment.
func lookupField(root any, path string) (any, bool) {
	cur := root
	for seg := range strings.SplitSeq(path, ".") {
		next, ok := lookupSegment(cur, seg)
		if !ok {
			return nil, false
		}

		cur = next
	}

	if cur == nil {
		return nil, false
	}

	return cur, true
}

// lookupSegment resolves one path segment against value.
func lookupSegment(value any, seg string) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case Data:
		out, ok := v[seg]
		return out, ok
	case map[string]any:
		out, ok := v[seg]
		return out, ok
	case map[string]string:
		out, ok := v[seg]
		return out, ok
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		out := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !out.IsValid() {
			return nil, false
		}

		return out.Interface(), true

	case reflect.Struct:
		return lookupStructField(rv, seg)

	default:
		return nil, false
	}
}

// lookupStructField resolves exported struct field by tag or name.
func lookupStructField(rv reflect.Value, seg string) (any, bool) {
	rt := rv.Type()
	match := -1
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}

		if tag, _, _ := strings.Cut(f.Tag.Get(fieldTag), ","); tag != "" {
			if tag == seg {
				return rv.Field(i).Interface(), true
			}

			continue
		}

		if match < 0 && strings.EqualFold(f.Name, seg) {
			match = i
		}
	}

	if match < 0 {
		return nil, false
	}

	return rv.Field(match).Interface(), true
}
