// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Template is a named pattern bound to anchor and duplicate placeholder policy.
//
// Name, pattern, anchor and mode are immutable. The compiled matcher is built on
// first use (or by Compile) and cached until the resolver binding changes.
type Template struct {
	// resolver serves references during compilation.
	resolver Resolver
	// accessor resolves dotted keys during format.
	accessor FieldAccessor
	// compiled is cached matcher, nil until first successful or failed compile.
	compiled *matcher
	// compileErr is cached compile error for deterministic repeated calls.
	compileErr error
	// name identifies template inside schema.
	name string
	// pattern is original pattern source.
	pattern string
	// syntax is parsed pattern with unresolved references.
	syntax []node

	// mu guards resolver and compile cache.
	mu sync.Mutex
	// anchor is match alignment.
	anchor Anchor
	// mode is duplicate placeholder policy.
	mode DuplicateMode
	// compiledOnce reports whether compiled/compileErr are populated.
	compiledOnce bool
}

// NewTemplate parses pattern and creates named template.
//
// Syntax errors are reported immediately, reference errors on first use.
func NewTemplate(name string, pattern string, opts TemplateOptions) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidTemplate)
	}

	if pattern == "" {
		return nil, fmt.Errorf("%w: template %q: empty", ErrPattern, name)
	}

	syntax, err := parsePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}

	opts.applyDefaults()

	return &Template{
		name:     name,
		pattern:  pattern,
		syntax:   syntax,
		anchor:   opts.Anchor,
		mode:     opts.DuplicateMode,
		resolver: opts.Resolver,
		accessor: opts.Accessor,
	}, nil
}

// MustNewTemplate is like NewTemplate but panics on error.
func MustNewTemplate(name string, pattern string, opts TemplateOptions) *Template {
	t, err := NewTemplate(name, pattern, opts)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns template name.
func (t *Template) Name() string {
	return t.name
}

// Pattern returns original pattern source.
func (t *Template) Pattern() string {
	return t.pattern
}

// Anchor returns match alignment.
func (t *Template) Anchor() Anchor {
	return t.anchor
}

// DuplicateMode returns duplicate placeholder policy.
func (t *Template) DuplicateMode() DuplicateMode {
	return t.mode
}

// String implements fmt.Stringer.
func (t *Template) String() string {
	return fmt.Sprintf("Template(%q, %q)", t.name, t.pattern)
}

// Equal reports whether both templates are the same logical entity.
//
// Identity is the name only, pattern content is not compared.
func (t *Template) Equal(other *Template) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.name == other.name
}

// Parse extracts structured data from path.
func (t *Template) Parse(path string) (Data, error) {
	m, err := t.matcher()
	if err != nil {
		return nil, err
	}

	data, err := m.parse(path)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.name, err)
	}

	return data, nil
}

// Format produces path from data.
//
// data may be Data, any map with string keys or a struct, see FieldAccessor.
//
// Values are written verbatim and are not checked against the capture of
// their placeholder. A default capture stops before "/" and before the first
// character of the literal that follows it, so a value containing that
// character formats fine but is split differently by Parse: "{name}.tar.gz"
// formats name "foo.bar" as "foo.bar.tar.gz", which Parse does not read back.
func (t *Template) Format(data any) (string, error) {
	m, err := t.matcher()
	if err != nil {
		return "", err
	}

	path, err := m.format(data)
	if err != nil {
		return "", fmt.Errorf("template %q: %w", t.name, err)
	}

	return path, nil
}

// Compile builds and caches matcher eagerly.
func (t *Template) Compile() error {
	_, err := t.matcher()
	return err
}

// Keys returns sorted unique placeholder keys including referenced patterns.
func (t *Template) Keys() ([]string, error) {
	m, err := t.matcher()
	if err != nil {
		return nil, err
	}

	return slices.Clone(m.keys), nil
}

// References returns names referenced directly by pattern in order of appearance.
func (t *Template) References() []string {
	return directReferences(t.syntax, nil)
}

// ExpandedPattern returns pattern with every reference replaced by its expansion.
func (t *Template) ExpandedPattern() (string, error) {
	m, err := t.matcher()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writePattern(m.tree, &b)
	return b.String(), nil
}

// Resolver returns currently bound reference resolver.
func (t *Template) Resolver() Resolver {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.resolver
}

// SetResolver binds reference resolver and drops compiled matcher.
func (t *Template) SetResolver(r Resolver) {
	t.mu.Lock()
	t.resolver = r
	t.resetLocked()
	t.mu.Unlock()
}

// invalidate drops compiled matcher so next use sees current resolver state.
func (t *Template) invalidate() {
	t.mu.Lock()
	t.resetLocked()
	t.mu.Unlock()
}

// resetLocked clears compile cache, t.mu must be held.
func (t *Template) resetLocked() {
	t.compiled = nil
	t.compileErr = nil
	t.compiledOnce = false
}

// matcher returns cached or newly compiled matcher.
func (t *Template) matcher() (*matcher, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.compiledOnce {
		t.compiled, t.compileErr = compile(t, t.resolver)
		t.compiledOnce = true
	}

	return t.compiled, t.compileErr
}
