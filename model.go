// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"fmt"
	"strings"
)

// Anchor controls where a template match must align inside the input path.
type Anchor uint8

const (
	// AnchorUnknown is unset anchor placeholder, replaced by AnchorStart.
	AnchorUnknown Anchor = iota
	// AnchorStart requires match at offset 0, trailing text is permitted.
	AnchorStart
	// AnchorEnd requires match ending at final character, leading text is permitted.
	AnchorEnd
	// AnchorBoth requires match spanning the entire input.
	AnchorBoth
)

// DuplicateMode controls how repeated placeholders of one key are reconciled.
type DuplicateMode uint8

const (
	// ModeUnknown is unset mode placeholder, replaced by ModeRelaxed.
	ModeUnknown DuplicateMode = iota
	// ModeRelaxed keeps the last matched occurrence.
	ModeRelaxed
	// ModeStrict requires all matched occurrences to be identical.
	//
	// Agreement is checked on the single leftmost match chosen by the regexp
	// engine. Other alignments are not searched, so custom expressions such as
	// "{x:.+}-{x:.+}" may reject input that some split would satisfy.
	// Default captures followed by a literal stop at its first character and
	// are not affected.
	ModeStrict
)

// Data is a structured data record shared between Parse output and Format input.
//
// Leaf values are strings, nested levels are map[string]any.
type Data map[string]any

// TemplateOptions controls template behavior.
type TemplateOptions struct {
	// Resolver serves "{@name}" references. Schema replaces it on registration.
	Resolver Resolver `json:"-" yaml:"-"`
	// Accessor resolves dotted keys during Format. Nil uses DefaultFieldAccessor.
	Accessor FieldAccessor `json:"-" yaml:"-"`
	// Anchor is match alignment. Zero value defaults to AnchorStart.
	Anchor Anchor `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	// DuplicateMode is repeated placeholder policy. Zero value defaults to ModeRelaxed.
	DuplicateMode DuplicateMode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// ParseResult is one successful parse produced by ordered matching.
type ParseResult struct {
	// Data is extracted structured data.
	Data Data
	// Template is the template that matched.
	Template *Template
}

// FormatResult is one successful format produced by ordered formatting.
type FormatResult struct {
	// Path is the formatted path.
	Path string
	// Template is the template that formatted data.
	Template *Template
}

// Mapping is one path converted between two schemas.
type Mapping struct {
	// Data is structured data shared by both paths.
	Data Data
	// OriginalPath is the input path.
	OriginalPath string
	// OriginalTemplate parsed OriginalPath in the source schema.
	OriginalTemplate *Template
	// OtherPath is Data formatted by OtherTemplate.
	OtherPath string
	// OtherTemplate is the same-named template in the target schema.
	OtherTemplate *Template
}

// Lookup returns the string leaf stored under dotted key path.
func (d Data) Lookup(key string) (string, bool) {
	v, ok := DefaultFieldAccessor.Field(d, key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)
	return s, ok
}

// set stores value under dotted key path creating intermediate maps.
func (d Data) set(key string, value string) {
	var cur map[string]any = d
	for {
		head, rest, nested := strings.Cut(key, ".")
		if !nested {
			cur[head] = value
			return
		}

		next, ok := cur[head].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[head] = next
		}

		cur = next
		key = rest
	}
}

// applyDefaults fills zero-valued options with defaults.
func (opts *TemplateOptions) applyDefaults() {
	if !opts.Anchor.valid() {
		opts.Anchor = AnchorStart
	}

	if !opts.DuplicateMode.valid() {
		opts.DuplicateMode = ModeRelaxed
	}

	if opts.Accessor == nil {
		opts.Accessor = DefaultFieldAccessor
	}
}

// valid reports whether anchor value is supported.
func (a Anchor) valid() bool {
	return a == AnchorStart || a == AnchorEnd || a == AnchorBoth
}

// String returns anchor name as used in schema definitions.
func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorEnd:
		return "end"
	case AnchorBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseAnchor converts "start", "end" or "both" to Anchor.
func ParseAnchor(s string) (Anchor, error) {
	switch asciiLower(strings.TrimSpace(s)) {
	case "start":
		return AnchorStart, nil
	case "end":
		return AnchorEnd, nil
	case "both":
		return AnchorBoth, nil
	default:
		return AnchorUnknown, fmt.Errorf("%w: unknown anchor %q", ErrInvalidDefinition, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("%w: unsupported anchor %d", ErrInvalidDefinition, a)
	}

	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(text []byte) error {
	v, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}

	*a = v
	return nil
}

// valid reports whether mode value is supported.
func (m DuplicateMode) valid() bool {
	return m == ModeRelaxed || m == ModeStrict
}

// String returns mode name as used in schema definitions.
func (m DuplicateMode) String() string {
	switch m {
	case ModeRelaxed:
		return "relaxed"
	case ModeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseDuplicateMode converts "relaxed" or "strict" to DuplicateMode.
func ParseDuplicateMode(s string) (DuplicateMode, error) {
	switch asciiLower(strings.TrimSpace(s)) {
	case "relaxed":
		return ModeRelaxed, nil
	case "strict":
		return ModeStrict, nil
	default:
		return ModeUnknown, fmt.Errorf("%w: unknown duplicate mode %q", ErrInvalidDefinition, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m DuplicateMode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: unsupported duplicate mode %d", ErrInvalidDefinition, m)
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DuplicateMode) UnmarshalText(text []byte) error {
	v, err := ParseDuplicateMode(string(text))
	if err != nil {
		return err
	}

	*m = v
	return nil
}
