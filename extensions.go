// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import "strings"

// defaultExtensions are schema definition file extensions picked by discovery.
var defaultExtensions = []string{".yaml", ".yml", ".json", ".hcl"}

// ParseExtensions normalizes definition file extension list.
//
// Accepted extension forms:
//   - "yaml"
//   - ".yaml"
//   - "*.yaml"
//
// Empty values and duplicates are skipped. Returned extensions are normalized
// to lower-case ".ext" form and preserve input order.
func ParseExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		ext = asciiLower(ext)
		if ext == "" {
			continue
		}

		ext = "." + ext
		if hasExtension(out, ext) {
			continue
		}

		out = append(out, ext)
	}

	return out
}

// hasExtension reports whether normalized ext is in list.
func hasExtension(list []string, ext string) bool {
	for _, v := range list {
		if v == ext {
			return true
		}
	}

	return false
}
