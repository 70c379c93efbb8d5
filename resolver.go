// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

// Resolver maps reference name to another named template.
//
// It is consulted only during compilation of "{@name}" markers.
type Resolver interface {
	// Get returns template registered under name.
	Get(name string) (*Template, bool)
}

// ResolverFunc adapts plain function to Resolver.
type ResolverFunc func(name string) (*Template, bool)

// Get implements Resolver.
func (f ResolverFunc) Get(name string) (*Template, bool) {
	return f(name)
}

// TemplatesResolver returns resolver serving templates by name, first match wins.
func TemplatesResolver(templates ...*Template) Resolver {
	return ResolverFunc(func(name string) (*Template, bool) {
		for _, t := range templates {
			if t != nil && t.name == name {
				return t, true
			}
		}

		return nil, false
	})
}

// schemaResolver resolves references against schema templates then references.
type schemaResolver struct {
	schema *Schema
}

// Get implements Resolver.
func (r schemaResolver) Get(name string) (*Template, bool) {
	r.schema.mu.RLock()
	defer r.schema.mu.RUnlock()

	if t, ok := r.schema.templates[name]; ok {
		return t, true
	}

	if t, ok := r.schema.references[name]; ok {
		return t, true
	}

	return nil, false
}
