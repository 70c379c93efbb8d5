// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchPathsFromEnv(t *testing.T) {
	sep := string(os.PathListSeparator)

	t.Setenv(SearchPathEnv, strings.Join([]string{"/a", " ", "", " /b/c "}, sep))
	assert.Equal(t, []string{"/a", "/b/c"}, SearchPathsFromEnv())

	t.Setenv(SearchPathEnv, "  ")
	assert.Nil(t, SearchPathsFromEnv())
}

func TestNormalizeRoot(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                 ".",
		"  ":               ".",
		"templates/":       "templates",
		`templates\nested`: "templates/nested",
		"./a/../b":         "b",
		"/abs//path/":      "/abs/path",
	}

	for in, want := range tests {
		assert.Equal(t, want, normalizeRoot(in), in)
	}
}

func TestASCIILower(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".yaml", asciiLower(".YAML"))
	assert.Equal(t, "ßtraße", asciiLower("ßtraße"))
	assert.Equal(t, "mixéd", asciiLower("MIXéd"))
}
