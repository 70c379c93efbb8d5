// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// tokenKind is flattened pattern token type used for regexp generation.
type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenPlaceholder
	tokenOpen
	tokenClose
)

// token is one flattened pattern element.
type token struct {
	// text is literal text or placeholder key.
	text string
	// expr is custom placeholder expression.
	expr string
	// close is index of matching tokenClose for tokenOpen.
	close int
	kind  tokenKind
}

// compile resolves references of syntax tree and builds matcher.
func compile(t *Template, resolver Resolver) (*matcher, error) {
	tree, err := expandReferences(t.syntax, resolver, []string{t.name})
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.name, err)
	}

	toks := flattenTree(tree, nil)
	keys, err := collectKeys(toks)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.name, err)
	}

	source, captures := buildRegex(toks, t.anchor)
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: template %q: compile %q: %v", ErrPattern, t.name, source, err)
	}

	// Custom expressions may carry own groups, so look up indexes by name.
	groups := make([]int, len(captures))
	for i := range captures {
		groups[i] = re.SubexpIndex(captureName(i))
	}

	return &matcher{
		re:       re,
		tree:     tree,
		captures: captures,
		groups:   groups,
		keys:     keys,
		mode:     t.mode,
		accessor: t.accessor,
	}, nil
}

// expandReferences returns copy of nodes with reference children spliced in.
//
// path holds names on the current expansion chain, revisiting one is a cycle.
func expandReferences(nodes []node, resolver Resolver, path []string) ([]node, error) {
	out := make([]node, len(nodes))
	for i := range nodes {
		n := nodes[i]
		switch n.kind {
		case nodeOptional:
			children, err := expandReferences(n.children, resolver, path)
			if err != nil {
				return nil, err
			}

			n.children = children

		case nodeReference:
			if slices.Contains(path, n.text) {
				return nil, fmt.Errorf("%w: cyclic reference %s", ErrPattern, strings.Join(append(path, n.text), " -> "))
			}

			if resolver == nil {
				return nil, fmt.Errorf("%w: reference %q without resolver", ErrPattern, n.text)
			}

			ref, ok := resolver.Get(n.text)
			if !ok || ref == nil {
				return nil, fmt.Errorf("%w: unresolved reference %q", ErrPattern, n.text)
			}

			children, err := expandReferences(ref.syntax, resolver, append(slices.Clip(path), n.text))
			if err != nil {
				return nil, err
			}

			n.children = children
		}

		out[i] = n
	}

	return out, nil
}

// flattenTree converts expanded tree into linear tokens with optional markers.
func flattenTree(nodes []node, toks []token) []token {
	for i := range nodes {
		n := &nodes[i]
		switch n.kind {
		case nodeLiteral:
			toks = append(toks, token{kind: tokenLiteral, text: n.text})
		case nodePlaceholder:
			toks = append(toks, token{kind: tokenPlaceholder, text: n.text, expr: n.expr})
		case nodeReference:
			toks = flattenTree(n.children, toks)
		case nodeOptional:
			open := len(toks)
			toks = append(toks, token{kind: tokenOpen})
			toks = flattenTree(n.children, toks)
			toks[open].close = len(toks)
			toks = append(toks, token{kind: tokenClose})
		}
	}

	return toks
}

// collectKeys returns sorted unique placeholder keys and rejects scalar/mapping conflicts.
func collectKeys(toks []token) ([]string, error) {
	seen := make(map[string]struct{})
	keys := make([]string, 0, len(toks))
	for i := range toks {
		if toks[i].kind != tokenPlaceholder {
			continue
		}

		if _, ok := seen[toks[i].text]; ok {
			continue
		}

		seen[toks[i].text] = struct{}{}
		keys = append(keys, toks[i].text)
	}

	sort.Strings(keys)
	for _, key := range keys {
		for i := 0; i < len(key); i++ {
			if key[i] != '.' {
				continue
			}

			if _, ok := seen[key[:i]]; ok {
				return nil, fmt.Errorf("%w: placeholder %q conflicts with %q", ErrPattern, key[:i], key)
			}
		}
	}

	return keys, nil
}

// buildRegex generates anchored regexp source and capture group key table.
func buildRegex(toks []token, anchor Anchor) (string, []string) {
	var b strings.Builder
	captures := make([]string, 0, len(toks))

	if anchor == AnchorStart || anchor == AnchorBoth {
		b.WriteByte('^')
	}

	for i := range toks {
		switch toks[i].kind {
		case tokenLiteral:
			b.WriteString(regexp.QuoteMeta(toks[i].text))
		case tokenPlaceholder:
			b.WriteString("(?P<")
			b.WriteString(captureName(len(captures)))
			b.WriteByte('>')
			if toks[i].expr != "" {
				b.WriteString("(?:")
				b.WriteString(toks[i].expr)
				b.WriteByte(')')
			} else {
				b.WriteString(defaultCaptureClass(followDelimiters(toks, i+1, len(toks), nil)))
			}
			b.WriteByte(')')
			captures = append(captures, toks[i].text)
		case tokenOpen:
			b.WriteString("(?:")
		case tokenClose:
			b.WriteString(")?")
		}
	}

	if anchor == AnchorEnd || anchor == AnchorBoth {
		b.WriteByte('$')
	}

	return b.String(), captures
}

// followDelimiters collects first runes of literals that may follow position from.
//
// Optional regions may be skipped, so their first literal is added and scanning
// continues past them. A placeholder or literal stops the scan.
func followDelimiters(toks []token, from int, to int, set []rune) []rune {
	for j := from; j < to; {
		switch toks[j].kind {
		case tokenLiteral:
			r, _ := utf8.DecodeRuneInString(toks[j].text)
			return appendRune(set, r)
		case tokenPlaceholder:
			return set
		case tokenOpen:
			set = followDelimiters(toks, j+1, toks[j].close, set)
			j = toks[j].close + 1
		case tokenClose:
			// Leaving an enclosing optional region, text after it follows too.
			j++
		}
	}

	return set
}

// appendRune appends r to set when not already present.
func appendRune(set []rune, r rune) []rune {
	if slices.Contains(set, r) {
		return set
	}

	return append(set, r)
}

// defaultCaptureClass builds non-empty capture that never crosses "/" or delimiters.
func defaultCaptureClass(delims []rune) string {
	var b strings.Builder
	b.WriteString(`[^/`)
	for _, r := range delims {
		if r == '/' {
			continue
		}

		if r < utf8.RuneSelf && isClassMeta(byte(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteString(`]+`)

	return b.String()
}

// isClassMeta reports whether byte must be escaped inside regexp character class.
func isClassMeta(c byte) bool {
	switch c {
	case '\\', ']', '[', '^', '-':
		return true
	default:
		return false
	}
}

// captureName returns regexp group name for capture index.
func captureName(i int) string {
	return "p" + strconv.Itoa(i)
}
