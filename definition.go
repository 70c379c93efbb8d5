// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SchemaDefinition is declarative schema data produced by configuration loaders.
type SchemaDefinition struct {
	// Defaults apply to templates without explicit overrides.
	Defaults DefinitionDefaults `json:"defaults" yaml:"defaults"`
	// Paths are matchable templates in definition order.
	Paths TemplateDefinitions `json:"paths,omitempty" yaml:"paths,omitempty"`
	// References are reference-only patterns in definition order.
	References ReferenceDefinitions `json:"references,omitempty" yaml:"references,omitempty"`
}

// DefinitionDefaults are schema-wide template options.
type DefinitionDefaults struct {
	// Anchor is default match alignment, zero value means AnchorStart.
	Anchor Anchor `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	// Mode is default duplicate placeholder policy, zero value means ModeRelaxed.
	Mode DuplicateMode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// TemplateDefinition is one named template entry.
type TemplateDefinition struct {
	// Name is template name, taken from mapping key in YAML.
	Name string `json:"-" yaml:"-"`
	// Pattern is template pattern source.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Anchor overrides default anchor when set.
	Anchor Anchor `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	// Mode overrides default duplicate mode when set.
	Mode DuplicateMode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// ReferenceDefinition is one named reference-only pattern.
type ReferenceDefinition struct {
	// Name is reference name used by "{@name}".
	Name string `json:"name" yaml:"name"`
	// Pattern is reference pattern source.
	Pattern string `json:"pattern" yaml:"pattern"`
}

// TemplateDefinitions is ordered "name: {pattern, anchor, mode}" mapping.
type TemplateDefinitions []TemplateDefinition

// ReferenceDefinitions is ordered "name: pattern" mapping.
type ReferenceDefinitions []ReferenceDefinition

// UnmarshalYAML decodes mapping preserving key order.
func (d *TemplateDefinitions) UnmarshalYAML(value *yaml.Node) error {
	out := make(TemplateDefinitions, 0, len(value.Content)/2)
	err := walkMapping(value, "paths", func(name string, item *yaml.Node) error {
		var def TemplateDefinition
		if item.Kind == yaml.ScalarNode {
			// Shorthand "name: pattern".
			def.Pattern = item.Value
		} else if err := item.Decode(&def); err != nil {
			return fmt.Errorf("%w: paths.%s: %v", ErrInvalidDefinition, name, err)
		}

		def.Name = name
		out = append(out, def)
		return nil
	})
	if err != nil {
		return err
	}

	*d = out
	return nil
}

// UnmarshalYAML decodes mapping preserving key order.
func (d *ReferenceDefinitions) UnmarshalYAML(value *yaml.Node) error {
	out := make(ReferenceDefinitions, 0, len(value.Content)/2)
	err := walkMapping(value, "references", func(name string, item *yaml.Node) error {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: references.%s: pattern must be a string", ErrInvalidDefinition, name)
		}

		out = append(out, ReferenceDefinition{Name: name, Pattern: item.Value})
		return nil
	})
	if err != nil {
		return err
	}

	*d = out
	return nil
}

// walkMapping calls fn for every key/value pair of mapping node in source order.
func walkMapping(value *yaml.Node, field string, fn func(name string, item *yaml.Node) error) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}

	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %s must be a mapping (line %d)", ErrInvalidDefinition, field, value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return fmt.Errorf("%w: %s has invalid key at line %d", ErrInvalidDefinition, field, key.Line)
		}

		if err := fn(key.Value, value.Content[i+1]); err != nil {
			return err
		}
	}

	return nil
}

// NewSchemaFromDefinition builds schema from declarative definition.
func NewSchemaFromDefinition(def SchemaDefinition) (*Schema, error) {
	schema, err := NewSchema()
	if err != nil {
		return nil, err
	}

	if err := schema.AddDefinition(def); err != nil {
		return nil, err
	}

	return schema, nil
}

// AddDefinition registers templates and references of def in definition order.
//
// Definition defaults apply only to templates of def.
func (s *Schema) AddDefinition(def SchemaDefinition) error {
	for _, p := range def.Paths {
		opts := TemplateOptions{
			Anchor:        def.Defaults.Anchor,
			DuplicateMode: def.Defaults.Mode,
		}

		if p.Anchor.valid() {
			opts.Anchor = p.Anchor
		}

		if p.Mode.valid() {
			opts.DuplicateMode = p.Mode
		}

		t, err := NewTemplate(p.Name, p.Pattern, opts)
		if err != nil {
			return err
		}

		if err := s.AddTemplate(t); err != nil {
			return err
		}
	}

	for _, r := range def.References {
		t, err := NewTemplate(r.Name, r.Pattern, TemplateOptions{})
		if err != nil {
			return err
		}

		if err := s.AddReference(t); err != nil {
			return err
		}
	}

	return nil
}
