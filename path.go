// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SearchPathEnv lists discovery roots separated by os.PathListSeparator.
const SearchPathEnv = "PATHTEMPLATE_PATH"

// SearchPathsFromEnv returns non-empty discovery roots from SearchPathEnv.
func SearchPathsFromEnv() []string {
	raw := os.Getenv(SearchPathEnv)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, p := range filepath.SplitList(raw) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		out = append(out, p)
	}

	return out
}

// normalizeRoot normalizes discovery root to slash-separated clean form.
func normalizeRoot(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}

	if raw == "" {
		return "."
	}

	return path.Clean(raw)
}

// asciiLower converts only ASCII A-Z to a-z and leaves all other bytes unchanged.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}

			return string(b)
		}
	}

	return s
}
