// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"errors"
	"fmt"
	"iter"
	"sync"
)

// Schema is a named ordered collection of templates plus reference-only templates.
//
// Templates are matched in insertion order. References are never matched
// directly, they only serve "{@name}" markers. Zero value is an empty schema.
type Schema struct {
	// templates stores matchable templates by name.
	templates map[string]*Template
	// references stores reference-only templates by name.
	references map[string]*Template
	// order is template insertion order.
	order []string
	// refOrder is reference insertion order.
	refOrder []string

	// mu guards maps and order slices.
	mu sync.RWMutex
}

// NewSchema creates schema pre-populated with templates in order.
func NewSchema(templates ...*Template) (*Schema, error) {
	s := &Schema{
		templates:  make(map[string]*Template, len(templates)),
		references: make(map[string]*Template),
	}

	for _, t := range templates {
		if err := s.AddTemplate(t); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Resolver returns resolver backed by this schema.
func (s *Schema) Resolver() Resolver {
	return schemaResolver{schema: s}
}

// AddTemplate registers t under its name.
//
// Name collision fails with ErrDuplicateName, use ReplaceTemplate to replace.
func (s *Schema) AddTemplate(t *Template) error {
	return s.register(t, false, false)
}

// ReplaceTemplate registers t replacing same-named template in place.
//
// Unknown names are appended like AddTemplate.
func (s *Schema) ReplaceTemplate(t *Template) error {
	return s.register(t, false, true)
}

// AddReference registers t as reference-only template.
func (s *Schema) AddReference(t *Template) error {
	return s.register(t, true, false)
}

// ReplaceReference registers t as reference-only template replacing same-named one.
func (s *Schema) ReplaceReference(t *Template) error {
	return s.register(t, true, true)
}

// register stores template and invalidates compiled matchers of all owned templates.
func (s *Schema) register(t *Template, reference bool, replace bool) error {
	if t == nil {
		return fmt.Errorf("%w: nil", ErrInvalidTemplate)
	}

	s.mu.Lock()
	if s.templates == nil {
		s.templates = make(map[string]*Template)
	}

	if s.references == nil {
		s.references = make(map[string]*Template)
	}

	kind := "template"
	m, order := s.templates, &s.order
	if reference {
		kind = "reference"
		m, order = s.references, &s.refOrder
	}

	if _, exists := m[t.name]; exists {
		if !replace {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s %q", ErrDuplicateName, kind, t.name)
		}
	} else {
		*order = append(*order, t.name)
	}

	m[t.name] = t
	owned := s.ownedLocked()
	s.mu.Unlock()

	// Bind and invalidate outside of schema lock: compilation takes template
	// lock first and schema read lock second.
	t.SetResolver(s.Resolver())
	for _, o := range owned {
		o.invalidate()
	}

	return nil
}

// ownedLocked returns all templates and references, s.mu must be held.
func (s *Schema) ownedLocked() []*Template {
	out := make([]*Template, 0, len(s.order)+len(s.refOrder))
	for _, name := range s.order {
		out = append(out, s.templates[name])
	}

	for _, name := range s.refOrder {
		out = append(out, s.references[name])
	}

	return out
}

// Templates returns matchable templates in insertion order.
func (s *Schema) Templates() []*Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Template, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.templates[name])
	}

	return out
}

// References returns reference-only templates in insertion order.
func (s *Schema) References() []*Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Template, 0, len(s.refOrder))
	for _, name := range s.refOrder {
		out = append(out, s.references[name])
	}

	return out
}

// Len returns number of matchable templates.
func (s *Schema) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// GetTemplate returns matchable template by exact name.
func (s *Schema) GetTemplate(name string) (*Template, error) {
	s.mu.RLock()
	t, ok := s.templates[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q in schema", ErrNotFound, name)
	}

	return t, nil
}

// Compile compiles every template and reference eagerly.
//
// It removes the first-use compilation race for schemas shared across goroutines.
func (s *Schema) Compile() error {
	s.mu.RLock()
	owned := s.ownedLocked()
	s.mu.RUnlock()

	for _, t := range owned {
		if err := t.Compile(); err != nil {
			return err
		}
	}

	return nil
}

// Parse returns first successful parse in insertion order.
func (s *Schema) Parse(path string) (Data, *Template, error) {
	return Parse(path, s.Templates())
}

// ParseAll returns every successful parse in insertion order.
func (s *Schema) ParseAll(path string) ([]ParseResult, error) {
	return collectParse(s.ParseIter(path))
}

// ParseIter yields every successful parse in insertion order.
func (s *Schema) ParseIter(path string) iter.Seq2[ParseResult, error] {
	return ParseIter(path, s.Templates())
}

// Format returns first successful format in insertion order.
func (s *Schema) Format(data any) (string, *Template, error) {
	return Format(data, s.Templates())
}

// FormatAll returns every successful format in insertion order.
func (s *Schema) FormatAll(data any) ([]FormatResult, error) {
	return collectFormat(s.FormatIter(data))
}

// FormatIter yields every successful format in insertion order.
func (s *Schema) FormatIter(data any) iter.Seq2[FormatResult, error] {
	return FormatIter(data, s.Templates())
}

// Map converts paths into other schema naming convention.
//
// See MapIter for semantics.
func (s *Schema) Map(paths []string, other *Schema) ([]Mapping, error) {
	var out []Mapping
	for m, err := range s.MapIter(paths, other) {
		if err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	return out, nil
}

// MapIter yields one Mapping per path match that reformats through the
// same-named template of other.
//
// Matches without a same-named template, or whose data does not format
// through it, are skipped. Pattern errors abort iteration.
func (s *Schema) MapIter(paths []string, other *Schema) iter.Seq2[Mapping, error] {
	return func(yield func(Mapping, error) bool) {
		if other == nil {
			return
		}

		for _, original := range paths {
			for res, err := range s.ParseIter(original) {
				if err != nil {
					yield(Mapping{}, err)
					return
				}

				target, err := other.GetTemplate(res.Template.name)
				if err != nil {
					continue
				}

				otherPath, err := target.Format(res.Data)
				if err != nil {
					if errors.Is(err, ErrFormat) {
						continue
					}

					yield(Mapping{}, err)
					return
				}

				if !yield(Mapping{
					Data:             res.Data,
					OriginalPath:     original,
					OriginalTemplate: res.Template,
					OtherPath:        otherPath,
					OtherTemplate:    target,
				}, nil) {
					return
				}
			}
		}
	}
}
