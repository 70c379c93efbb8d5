// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"errors"
	"fmt"
	"iter"
)

// Parse parses path against templates in order and returns first success.
//
// Templates that do not match are skipped. Any other error, notably ErrPattern,
// aborts immediately.
func Parse(path string, templates []*Template) (Data, *Template, error) {
	for res, err := range ParseIter(path, templates) {
		if err != nil {
			return nil, nil, err
		}

		return res.Data, res.Template, nil
	}

	return nil, nil, fmt.Errorf("%w: %w: path %q did not match any of %d templates", ErrParse, ErrNoMatch, path, len(templates))
}

// ParseIter parses path against templates in order and yields every success.
//
// A non-parse error is yielded once with zero result and iteration stops.
func ParseIter(path string, templates []*Template) iter.Seq2[ParseResult, error] {
	return func(yield func(ParseResult, error) bool) {
		for _, t := range templates {
			if t == nil {
				continue
			}

			data, err := t.Parse(path)
			if err != nil {
				if errors.Is(err, ErrParse) {
					continue
				}

				yield(ParseResult{}, err)
				return
			}

			if !yield(ParseResult{Data: data, Template: t}, nil) {
				return
			}
		}
	}
}

// Format formats data with templates in order and returns first success.
func Format(data any, templates []*Template) (string, *Template, error) {
	for res, err := range FormatIter(data, templates) {
		if err != nil {
			return "", nil, err
		}

		return res.Path, res.Template, nil
	}

	return "", nil, fmt.Errorf("%w: %w: data %v was not formattable by any of %d templates", ErrFormat, ErrNoMatch, data, len(templates))
}

// FormatIter formats data with templates in order and yields every success.
//
// A non-format error is yielded once with zero result and iteration stops.
func FormatIter(data any, templates []*Template) iter.Seq2[FormatResult, error] {
	return func(yield func(FormatResult, error) bool) {
		for _, t := range templates {
			if t == nil {
				continue
			}

			path, err := t.Format(data)
			if err != nil {
				if errors.Is(err, ErrFormat) {
					continue
				}

				yield(FormatResult{}, err)
				return
			}

			if !yield(FormatResult{Path: path, Template: t}, nil) {
				return
			}
		}
	}
}

// GetTemplate returns first template named name.
func GetTemplate(name string, templates []*Template) (*Template, error) {
	for _, t := range templates {
		if t != nil && t.name == name {
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// collectParse drains ParseIter into slice.
func collectParse(seq iter.Seq2[ParseResult, error]) ([]ParseResult, error) {
	var out []ParseResult
	for res, err := range seq {
		if err != nil {
			return nil, err
		}

		out = append(out, res)
	}

	return out, nil
}

// collectFormat drains FormatIter into slice.
func collectFormat(seq iter.Seq2[FormatResult, error]) ([]FormatResult, error) {
	var out []FormatResult
	for res, err := range seq {
		if err != nil {
			return nil, err
		}

		out = append(out, res)
	}

	return out, nil
}
