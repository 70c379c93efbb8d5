// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/woozymasta/pathtemplate"
)

var (
	nameColor = color.New(color.FgCyan, color.Bold)
	pathColor = color.New(color.FgGreen)
	dimColor  = color.New(color.Faint)
)

// writeParsed prints one parse result line.
func writeParsed(w io.Writer, path string, name string, data pathtemplate.Data) {
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", dimColor.Sprint(path), nameColor.Sprint(name), toJSON(map[string]any(data)))
}

// writeFormatted prints one format result line.
func writeFormatted(w io.Writer, name string, path string) {
	_, _ = fmt.Fprintf(w, "%s\t%s\n", nameColor.Sprint(name), pathColor.Sprint(path))
}

// toJSON renders value as compact JSON with sorted keys.
func toJSON(v any) string {
	return oj.JSON(v, &ojg.Options{Sort: true})
}
