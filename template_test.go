// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateAnchors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		input   string
		want    Data
		anchor  Anchor
		wantErr bool
	}{
		{name: "start allows trailing text", pattern: "a/{x}", input: "a/1/b", anchor: AnchorStart, want: Data{"x": "1"}},
		{name: "both rejects trailing text", pattern: "a/{x}", input: "a/1/b", anchor: AnchorBoth, wantErr: true},
		{name: "both spans input", pattern: "a/{x}", input: "a/1", anchor: AnchorBoth, want: Data{"x": "1"}},
		{name: "end allows leading text", pattern: "{x}/b", input: "a/c/b", anchor: AnchorEnd, want: Data{"x": "c"}},
		{name: "end rejects trailing text", pattern: "a/{x}", input: "a/1/b", anchor: AnchorEnd, wantErr: true},
		{name: "start rejects leading text", pattern: "a/{x}", input: "z/a/1", anchor: AnchorStart, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tpl := MustNewTemplate("test", tt.pattern, TemplateOptions{Anchor: tt.anchor})
			got, err := tpl.Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrParse)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateDefaults(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", "{x}", TemplateOptions{})
	assert.Equal(t, AnchorStart, tpl.Anchor())
	assert.Equal(t, ModeRelaxed, tpl.DuplicateMode())
	assert.Equal(t, "test", tpl.Name())
	assert.Equal(t, "{x}", tpl.Pattern())
}

func TestTemplateOptionalSegment(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", "{name}[_{suffix}]", TemplateOptions{Anchor: AnchorBoth})

	path, err := tpl.Format(Data{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, "a", path)

	path, err = tpl.Format(Data{"name": "a", "suffix": "b"})
	require.NoError(t, err)
	assert.Equal(t, "a_b", path)

	data, err := tpl.Parse("a")
	require.NoError(t, err)
	assert.Equal(t, Data{"name": "a"}, data)

	data, err = tpl.Parse("a_b")
	require.NoError(t, err)
	assert.Equal(t, Data{"name": "a", "suffix": "b"}, data)
}

func TestTemplateNestedOptionalSegments(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", "{a}[.{b}[.{c}]]", TemplateOptions{Anchor: AnchorBoth})

	path, err := tpl.Format(Data{"a": "1", "b": "2"})
	require.NoError(t, err)
	assert.Equal(t, "1.2", path)

	// Outer region needs b, so c alone is dropped together with it.
	path, err = tpl.Format(Data{"a": "1", "c": "3"})
	require.NoError(t, err)
	assert.Equal(t, "1", path)

	data, err := tpl.Parse("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, Data{"a": "1", "b": "2", "c": "3"}, data)

	data, err = tpl.Parse("1.2")
	require.NoError(t, err)
	assert.Equal(t, Data{"a": "1", "b": "2"}, data)
}

func TestTemplateDuplicatePlaceholders(t *testing.T) {
	t.Parallel()

	strict := MustNewTemplate("strict", "{x}/{x}", TemplateOptions{DuplicateMode: ModeStrict})
	relaxed := MustNewTemplate("relaxed", "{x}/{x}", TemplateOptions{DuplicateMode: ModeRelaxed})

	data, err := strict.Parse("1/1")
	require.NoError(t, err)
	assert.Equal(t, Data{"x": "1"}, data)

	_, err = strict.Parse("1/2")
	require.ErrorIs(t, err, ErrParse)

	data, err = relaxed.Parse("1/2")
	require.NoError(t, err)
	assert.Equal(t, Data{"x": "2"}, data)
}

func TestTemplateStrictIgnoresAbsentOptional(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", "{x}[/{x}]", TemplateOptions{Anchor: AnchorBoth, DuplicateMode: ModeStrict})

	data, err := tpl.Parse("1")
	require.NoError(t, err)
	assert.Equal(t, Data{"x": "1"}, data)

	_, err = tpl.Parse("1/2")
	require.ErrorIs(t, err, ErrParse)
}

func TestTemplateRoundTrip(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("model", "/jobs/{job.code}/assets/model/{lod}", TemplateOptions{Anchor: AnchorBoth})
	inputs := []Data{
		{"job": map[string]any{"code": "abc"}, "lod": "hi"},
		{"job": map[string]any{"code": "x-1_2"}, "lod": "lo.v2"},
	}

	for _, in := range inputs {
		path, err := tpl.Format(in)
		require.NoError(t, err)

		out, err := tpl.Parse(path)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestTemplateFormatMissingKey(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", "{a}/{project.name}", TemplateOptions{})

	_, err := tpl.Format(Data{"a": "1"})
	require.ErrorIs(t, err, ErrFormat)
	assert.ErrorContains(t, err, `missing key "project.name"`)

	// Mapping at placeholder is not a scalar.
	_, err = tpl.Format(Data{"a": "1", "project": map[string]any{"name": map[string]any{}}})
	require.ErrorIs(t, err, ErrFormat)
}

func TestTemplateFormatStruct(t *testing.T) {
	t.Parallel()

	type project struct {
		Title string `pathtemplate:"name"`
	}

	type shot struct {
		Project *project
		Code    string
		Version int
	}

	tpl := MustNewTemplate("test", "{code}/{project.name}/v{version}", TemplateOptions{})
	path, err := tpl.Format(shot{Code: "sh010", Project: &project{Title: "swag"}, Version: 3})
	require.NoError(t, err)
	assert.Equal(t, "sh010/swag/v3", path)

	_, err = tpl.Format(shot{Code: "sh010", Version: 3})
	require.ErrorIs(t, err, ErrFormat)
}

func TestTemplateFormatNilPointerIsMissing(t *testing.T) {
	t.Parallel()

	type shot struct {
		Date *time.Time
		Code string
	}

	optional := MustNewTemplate("optional", "{code}[_{date}]", TemplateOptions{})
	path, err := optional.Format(shot{Code: "sh010"})
	require.NoError(t, err)
	assert.Equal(t, "sh010", path)

	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	path, err = optional.Format(shot{Code: "sh010", Date: &date})
	require.NoError(t, err)
	assert.Equal(t, "sh010_"+date.String(), path)

	mandatory := MustNewTemplate("mandatory", "{code}/{date}", TemplateOptions{})
	_, err = mandatory.Format(shot{Code: "sh010"})
	require.ErrorIs(t, err, ErrFormat)
	assert.ErrorContains(t, err, `missing key "date"`)
}

func TestTemplateFormatValueCrossingDelimiter(t *testing.T) {
	t.Parallel()

	// Format writes values verbatim, Parse splits at the first delimiter.
	tpl := MustNewTemplate("archive", "{name}.tar.gz", TemplateOptions{Anchor: AnchorBoth})

	path, err := tpl.Format(Data{"name": "foo.bar"})
	require.NoError(t, err)
	assert.Equal(t, "foo.bar.tar.gz", path)

	_, err = tpl.Parse(path)
	require.ErrorIs(t, err, ErrParse)

	data, err := tpl.Parse("foo.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, Data{"name": "foo"}, data)
}

func TestTemplateStrictChecksLeftmostMatchOnly(t *testing.T) {
	t.Parallel()

	// x=a-b would agree, but the engine picks x=a-b-a for the first capture.
	tpl := MustNewTemplate("test", "{x:.+}-{x:.+}", TemplateOptions{Anchor: AnchorBoth, DuplicateMode: ModeStrict})
	_, err := tpl.Parse("a-b-a-b")
	require.ErrorIs(t, err, ErrParse)

	data, err := tpl.Parse("a-a")
	require.NoError(t, err)
	assert.Equal(t, Data{"x": "a"}, data)
}

func TestTemplateEscapes(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", `\{literal\}/\[{x}\]`, TemplateOptions{Anchor: AnchorBoth})

	path, err := tpl.Format(Data{"x": "y"})
	require.NoError(t, err)
	assert.Equal(t, "{literal}/[y]", path)

	data, err := tpl.Parse("{literal}/[y]")
	require.NoError(t, err)
	assert.Equal(t, Data{"x": "y"}, data)
}

func TestTemplateCustomExpression(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", `{shot:[a-z]+\d+}_v{version:\d+}`, TemplateOptions{})

	data, err := tpl.Parse("sh010_v003.exr")
	require.NoError(t, err)
	assert.Equal(t, Data{"shot": "sh010", "version": "003"}, data)

	_, err = tpl.Parse("sh010_vXYZ")
	require.ErrorIs(t, err, ErrParse)

	// Groups inside expressions must not shift placeholder captures.
	grouped := MustNewTemplate("grouped", "{kind:(img|tex)}/{name}", TemplateOptions{Anchor: AnchorBoth})
	data, err = grouped.Parse("tex/wood")
	require.NoError(t, err)
	assert.Equal(t, Data{"kind": "tex", "name": "wood"}, data)
}

func TestTemplateInvalidExpression(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", "{x:[a-}", TemplateOptions{})
	err := tpl.Compile()
	require.ErrorIs(t, err, ErrPattern)
}

func TestTemplateKeysAndReferences(t *testing.T) {
	t.Parallel()

	contracts := MustNewTemplate("contracts", "documents/{dept}", TemplateOptions{})
	tpl := MustNewTemplate("test", "{code}/{project.name}/{@contracts}[/{@contracts}]", TemplateOptions{
		Resolver: TemplatesResolver(contracts),
	})

	keys, err := tpl.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "dept", "project.name"}, keys)
	assert.Equal(t, []string{"contracts", "contracts"}, tpl.References())

	expanded, err := tpl.ExpandedPattern()
	require.NoError(t, err)
	assert.Equal(t, "{code}/{project.name}/documents/{dept}[/documents/{dept}]", expanded)
}

func TestTemplateKeyConflict(t *testing.T) {
	t.Parallel()

	tpl := MustNewTemplate("test", "{a}/{a.b}", TemplateOptions{})
	_, err := tpl.Parse("1/2")
	require.ErrorIs(t, err, ErrPattern)
}

func TestTemplateEqualByName(t *testing.T) {
	t.Parallel()

	a := MustNewTemplate("same", "{x}", TemplateOptions{})
	b := MustNewTemplate("same", "{y}/{z}", TemplateOptions{Anchor: AnchorBoth})
	c := MustNewTemplate("other", "{x}", TemplateOptions{})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestTemplateSetResolverInvalidates(t *testing.T) {
	t.Parallel()

	v1 := MustNewTemplate("root", "v1", TemplateOptions{})
	v2 := MustNewTemplate("root", "v2", TemplateOptions{})
	tpl := MustNewTemplate("test", "{@root}/{x}", TemplateOptions{Resolver: TemplatesResolver(v1)})

	path, err := tpl.Format(Data{"x": "a"})
	require.NoError(t, err)
	assert.Equal(t, "v1/a", path)

	tpl.SetResolver(TemplatesResolver(v2))
	path, err = tpl.Format(Data{"x": "a"})
	require.NoError(t, err)
	assert.Equal(t, "v2/a", path)
}

func TestNewTemplateErrors(t *testing.T) {
	t.Parallel()

	_, err := NewTemplate("", "{x}", TemplateOptions{})
	require.ErrorIs(t, err, ErrInvalidTemplate)

	_, err = NewTemplate("test", "", TemplateOptions{})
	require.ErrorIs(t, err, ErrPattern)

	_, err = NewTemplate("test", "{x", TemplateOptions{})
	require.ErrorIs(t, err, ErrPattern)

	assert.Panics(t, func() {
		MustNewTemplate("test", "[x", TemplateOptions{})
	})
}
