// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExtensions(t *testing.T) {
	t.Parallel()

	got := ParseExtensions([]string{"yaml", ".HCL", "*.Json", " ..yml  ", "", "   ", ".yaml", "YAML"})
	assert.Equal(t, []string{".yaml", ".hcl", ".json", ".yml"}, got)

	assert.Empty(t, ParseExtensions([]string{"", " . ", "*."}))
	assert.Empty(t, ParseExtensions(nil))
}

func TestHasExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, hasExtension(defaultExtensions, ".hcl"))
	assert.False(t, hasExtension(defaultExtensions, ".toml"))
	assert.False(t, hasExtension(nil, ".yaml"))
}
