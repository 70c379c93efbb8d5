// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

// MergeTemplates merges template slices preserving input order.
//
// Nil entries are dropped. Same-named templates are kept, first one wins in
// ordered lookups.
func MergeTemplates(sets ...[]*Template) []*Template {
	total := 0
	for _, set := range sets {
		total += len(set)
	}

	out := make([]*Template, 0, total)
	for _, set := range sets {
		for _, t := range set {
			if t == nil {
				continue
			}

			out = append(out, t)
		}
	}

	return out
}
