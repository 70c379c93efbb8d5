// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// hclSchemaFile is HCL form of SchemaDefinition.
//
// Blocks keep source order, so templates match in file order.
type hclSchemaFile struct {
	Defaults   *hclDefaults   `hcl:"defaults,block"`
	Templates  []hclTemplate  `hcl:"template,block"`
	References []hclReference `hcl:"reference,block"`
}

type hclDefaults struct {
	Anchor string `hcl:"anchor,optional"`
	Mode   string `hcl:"mode,optional"`
}

type hclTemplate struct {
	Name    string `hcl:"name,label"`
	Pattern string `hcl:"pattern"`
	Anchor  string `hcl:"anchor,optional"`
	Mode    string `hcl:"mode,optional"`
}

type hclReference struct {
	Name    string `hcl:"name,label"`
	Pattern string `hcl:"pattern"`
}

// ParseSchemaYAML decodes YAML (or JSON) schema definition from reader.
func ParseSchemaYAML(r io.Reader) (SchemaDefinition, error) {
	var def SchemaDefinition

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document is an empty schema.
			return SchemaDefinition{}, nil
		}

		if errors.Is(err, ErrInvalidDefinition) {
			return SchemaDefinition{}, err
		}

		return SchemaDefinition{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	return def, nil
}

// ParseSchemaHCL decodes HCL native syntax schema definition.
//
// filename is used only in diagnostics, its extension is not inspected.
func ParseSchemaHCL(filename string, src []byte) (SchemaDefinition, error) {
	parsed, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return SchemaDefinition{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, diags)
	}

	var file hclSchemaFile
	if diags := gohcl.DecodeBody(parsed.Body, nil, &file); diags.HasErrors() {
		return SchemaDefinition{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, diags)
	}

	var def SchemaDefinition
	if file.Defaults != nil {
		if err := parseOptionalEnums(file.Defaults.Anchor, file.Defaults.Mode, &def.Defaults.Anchor, &def.Defaults.Mode); err != nil {
			return SchemaDefinition{}, fmt.Errorf("defaults: %w", err)
		}
	}

	def.Paths = make(TemplateDefinitions, 0, len(file.Templates))
	for _, t := range file.Templates {
		p := TemplateDefinition{Name: t.Name, Pattern: t.Pattern}
		if err := parseOptionalEnums(t.Anchor, t.Mode, &p.Anchor, &p.Mode); err != nil {
			return SchemaDefinition{}, fmt.Errorf("template %q: %w", t.Name, err)
		}

		def.Paths = append(def.Paths, p)
	}

	def.References = make(ReferenceDefinitions, 0, len(file.References))
	for _, r := range file.References {
		def.References = append(def.References, ReferenceDefinition(r))
	}

	return def, nil
}

// ParseSchemaDefinition decodes definition choosing format by filename extension.
//
// ".hcl" is decoded as HCL, ".yaml", ".yml" and ".json" as YAML.
func ParseSchemaDefinition(filename string, src []byte) (SchemaDefinition, error) {
	switch ext := asciiLower(filepath.Ext(filename)); ext {
	case ".hcl":
		return ParseSchemaHCL(filename, src)
	case ".yaml", ".yml", ".json":
		return ParseSchemaYAML(bytes.NewReader(src))
	default:
		return SchemaDefinition{}, fmt.Errorf("%w: unsupported definition format %q", ErrInvalidDefinition, ext)
	}
}

// LoadSchemaFile reads definition file and builds schema.
func LoadSchemaFile(path string) (*Schema, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	def, err := ParseSchemaDefinition(path, src)
	if err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}

	schema, err := NewSchemaFromDefinition(def)
	if err != nil {
		return nil, fmt.Errorf("build schema %s: %w", path, err)
	}

	return schema, nil
}

// LoadSchemaFiles reads definition files into one schema in the given order.
//
// Templates keep file order and order inside each file. A name defined in two
// files fails with ErrDuplicateName.
func LoadSchemaFiles(paths ...string) (*Schema, error) {
	schema, err := NewSchema()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema file: %w", err)
		}

		def, err := ParseSchemaDefinition(path, src)
		if err != nil {
			return nil, fmt.Errorf("parse schema file %s: %w", path, err)
		}

		if err := schema.AddDefinition(def); err != nil {
			return nil, fmt.Errorf("build schema %s: %w", path, err)
		}
	}

	return schema, nil
}

// parseOptionalEnums converts non-empty anchor and mode strings.
func parseOptionalEnums(anchor string, mode string, outAnchor *Anchor, outMode *DuplicateMode) error {
	if anchor != "" {
		v, err := ParseAnchor(anchor)
		if err != nil {
			return err
		}

		*outAnchor = v
	}

	if mode != "" {
		v, err := ParseDuplicateMode(mode)
		if err != nil {
			return err
		}

		*outMode = v
	}

	return nil
}
