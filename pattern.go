// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"fmt"
	"strings"
)

// nodeKind is a syntax tree node type.
type nodeKind uint8

const (
	// nodeLiteral is verbatim text.
	nodeLiteral nodeKind = iota
	// nodePlaceholder is "{key}" or "{key:expression}".
	nodePlaceholder
	// nodeOptional is "[...]" with children.
	nodeOptional
	// nodeReference is "{@name}", children are filled when spliced.
	nodeReference
)

// node is one pattern syntax tree element.
type node struct {
	// text is literal text, placeholder key or reference name.
	text string
	// expr is custom placeholder expression, empty for default capture.
	expr string
	// children are optional region body or spliced reference body.
	children []node
	// kind is node type.
	kind nodeKind
}

// parsePattern parses pattern source into syntax tree.
//
// References stay unresolved, compile splices them later.
func parsePattern(pattern string) ([]node, error) {
	// stack[0] is top level, every "[" pushes one frame.
	stack := [][]node{nil}
	var lit strings.Builder

	flush := func() {
		if lit.Len() == 0 {
			return
		}

		top := len(stack) - 1
		stack[top] = append(stack[top], node{kind: nodeLiteral, text: lit.String()})
		lit.Reset()
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '\\':
			if i+1 >= len(pattern) {
				return nil, fmt.Errorf("%w: trailing escape in %q", ErrPattern, pattern)
			}

			i++
			lit.WriteByte(pattern[i])

		case '{':
			end, err := findPlaceholderEnd(pattern, i)
			if err != nil {
				return nil, err
			}

			n, err := parsePlaceholder(pattern[i+1 : end])
			if err != nil {
				return nil, fmt.Errorf("%w (pattern %q)", err, pattern)
			}

			flush()
			top := len(stack) - 1
			stack[top] = append(stack[top], n)
			i = end

		case '}':
			return nil, fmt.Errorf("%w: unexpected \"}\" at offset %d in %q", ErrPattern, i, pattern)

		case '[':
			flush()
			stack = append(stack, nil)

		case ']':
			if len(stack) == 1 {
				return nil, fmt.Errorf("%w: unexpected \"]\" at offset %d in %q", ErrPattern, i, pattern)
			}

			flush()
			body := stack[len(stack)-1]
			if len(body) == 0 {
				return nil, fmt.Errorf("%w: empty optional segment at offset %d in %q", ErrPattern, i, pattern)
			}

			stack = stack[:len(stack)-1]
			top := len(stack) - 1
			stack[top] = append(stack[top], node{kind: nodeOptional, children: body})

		default:
			lit.WriteByte(c)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: unclosed \"[\" in %q", ErrPattern, pattern)
	}

	flush()
	return stack[0], nil
}

// findPlaceholderEnd locates "}" closing placeholder opened at start.
//
// Braces inside custom expressions nest, so "{year:\d{4}}" is one placeholder.
func findPlaceholderEnd(pattern string, start int) (int, error) {
	depth := 0
	for i := start; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return -1, fmt.Errorf("%w: unclosed \"{\" at offset %d in %q", ErrPattern, start, pattern)
}

// parsePlaceholder parses text between "{" and "}".
func parsePlaceholder(body string) (node, error) {
	if name, ok := strings.CutPrefix(body, "@"); ok {
		if !validReferenceName(name) {
			return node{}, fmt.Errorf("%w: malformed reference name %q", ErrPattern, name)
		}

		return node{kind: nodeReference, text: name}, nil
	}

	key, expr, hasExpr := strings.Cut(body, ":")
	if !validKey(key) {
		return node{}, fmt.Errorf("%w: malformed placeholder key %q", ErrPattern, key)
	}

	if hasExpr && expr == "" {
		return node{}, fmt.Errorf("%w: empty expression for placeholder %q", ErrPattern, key)
	}

	return node{kind: nodePlaceholder, text: key, expr: expr}, nil
}

// validKey reports whether key is a dotted path of word segments.
func validKey(key string) bool {
	if key == "" {
		return false
	}

	for seg := range strings.SplitSeq(key, ".") {
		if seg == "" {
			return false
		}

		for i := 0; i < len(seg); i++ {
			if !isKeyByte(seg[i]) {
				return false
			}
		}
	}

	return true
}

// validReferenceName reports whether reference name is non-empty and uses allowed bytes.
func validReferenceName(name string) bool {
	if name == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		if !isKeyByte(name[i]) && name[i] != '.' {
			return false
		}
	}

	return true
}

// isKeyByte reports whether c is allowed inside one key segment.
func isKeyByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// directReferences collects reference names from syntax tree in pattern order.
func directReferences(nodes []node, out []string) []string {
	for i := range nodes {
		switch nodes[i].kind {
		case nodeReference:
			out = append(out, nodes[i].text)
		case nodeOptional:
			out = directReferences(nodes[i].children, out)
		}
	}

	return out
}

// writePattern renders syntax tree back to pattern source with references expanded.
func writePattern(nodes []node, b *strings.Builder) {
	for i := range nodes {
		n := &nodes[i]
		switch n.kind {
		case nodeLiteral:
			b.WriteString(escapeLiteral(n.text))
		case nodePlaceholder:
			b.WriteByte('{')
			b.WriteString(n.text)
			if n.expr != "" {
				b.WriteByte(':')
				b.WriteString(n.expr)
			}
			b.WriteByte('}')
		case nodeOptional:
			b.WriteByte('[')
			writePattern(n.children, b)
			b.WriteByte(']')
		case nodeReference:
			writePattern(n.children, b)
		}
	}
}

// escapeLiteral escapes pattern meta characters in literal text.
func escapeLiteral(s string) string {
	if !strings.ContainsAny(s, `\{}[]`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '{', '}', '[', ']':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}

	return b.String()
}
