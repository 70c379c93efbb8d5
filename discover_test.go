// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscoveryFS(t *testing.T) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	files := map[string]string{
		"templates/b.yaml":          "paths:\n  b_shot: \"{code}/shots/{shot}\"\n",
		"templates/a.yaml":          "paths:\n  a_job: \"{code}\"\n  a_asset: \"{code}/assets/{asset}\"\n",
		"templates/nested/c.hcl":    "template \"c_model\" {\n  pattern = \"{code}/models/{lod}\"\n}\n",
		"templates/readme.txt":      "not a schema",
		"templates/nested/d.backup": "paths: {}\n",
		"extra/e.yml":               "paths:\n  e_any: \"{x}\"\n",
	}

	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}

	return fs
}

func templateNames(templates []*Template) []string {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name())
	}

	return names
}

func TestDiscovererDiscover(t *testing.T) {
	t.Parallel()

	d, err := NewDiscoverer(newDiscoveryFS(t), DiscoveryOptions{})
	require.NoError(t, err)

	templates, err := d.Discover("templates", "missing", "extra")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_job", "a_asset", "b_shot", "c_model", "e_any"}, templateNames(templates))

	data, tpl, err := Parse("abc/shots/sh010", templates)
	require.NoError(t, err)
	assert.Equal(t, "a_job", tpl.Name())
	assert.Equal(t, Data{"code": "abc"}, data)
}

func TestDiscovererNonRecursive(t *testing.T) {
	t.Parallel()

	d, err := NewDiscoverer(newDiscoveryFS(t), DiscoveryOptions{NonRecursive: true})
	require.NoError(t, err)

	templates, err := d.Discover("templates")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_job", "a_asset", "b_shot"}, templateNames(templates))
}

func TestDiscovererExtensions(t *testing.T) {
	t.Parallel()

	d, err := NewDiscoverer(newDiscoveryFS(t), DiscoveryOptions{Extensions: []string{"HCL"}})
	require.NoError(t, err)

	templates, err := d.Discover("templates", "extra")
	require.NoError(t, err)
	assert.Equal(t, []string{"c_model"}, templateNames(templates))

	_, err = NewDiscoverer(memfs.New(), DiscoveryOptions{Extensions: []string{" ", "*."}})
	require.ErrorIs(t, err, ErrInvalidExtension)

	_, err = NewDiscoverer(nil, DiscoveryOptions{})
	require.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestDiscovererSchemaCache(t *testing.T) {
	t.Parallel()

	fs := newDiscoveryFS(t)
	require.NoError(t, util.WriteFile(fs, "broken/x.yaml", []byte("paths:\n  - a\n"), 0o644))

	d, err := NewDiscoverer(fs, DiscoveryOptions{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	schemas := make([]*Schema, 8)
	for i := range schemas {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := d.Schema("templates/a.yaml")
			if err == nil {
				schemas[i] = s
			}
		}(i)
	}
	wg.Wait()

	for _, s := range schemas {
		require.NotNil(t, s)
		assert.Same(t, schemas[0], s)
	}

	_, err1 := d.Schema("broken/x.yaml")
	_, err2 := d.Schema("broken/x.yaml")
	require.ErrorIs(t, err1, ErrInvalidDefinition)
	assert.Same(t, err1, err2)

	_, err = d.Discover("broken")
	require.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestDiscovererSameNamesAcrossFiles(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	src := "paths:\n  a: \"{x}\"\nreferences:\n  r: \"x\"\n"
	require.NoError(t, util.WriteFile(fs, "one/a.yaml", []byte(src), 0o644))
	require.NoError(t, util.WriteFile(fs, "two/a.yaml", []byte(src), 0o644))

	d, err := NewDiscoverer(fs, DiscoveryOptions{})
	require.NoError(t, err)

	// Each file is its own schema, so same names across files are kept in order.
	templates, err := d.Discover("one", "two")
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.NotSame(t, templates[0], templates[1])
	assert.True(t, templates[0].Equal(templates[1]))
}
