// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import "fmt"

// TemplateSource is a host-provided unit that registers templates.
//
// Discovery of sources is explicit: the core never scans anything itself.
type TemplateSource interface {
	// Register returns templates in the order they should be tried.
	Register() ([]*Template, error)
}

// TemplateSourceFunc adapts plain function to TemplateSource.
type TemplateSourceFunc func() ([]*Template, error)

// Register implements TemplateSource.
func (f TemplateSourceFunc) Register() ([]*Template, error) {
	return f()
}

// StaticSource returns source registering the given templates.
func StaticSource(templates ...*Template) TemplateSource {
	return TemplateSourceFunc(func() ([]*Template, error) {
		return templates, nil
	})
}

// DiscoverTemplates registers every source in order and aggregates results.
func DiscoverTemplates(sources ...TemplateSource) ([]*Template, error) {
	sets := make([][]*Template, 0, len(sources))
	for i, src := range sources {
		if src == nil {
			continue
		}

		registered, err := src.Register()
		if err != nil {
			return nil, fmt.Errorf("register source %d: %w", i, err)
		}

		sets = append(sets, registered)
	}

	return MergeTemplates(sets...), nil
}
