// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"log/slog"
	"testing"

	"go.yaml.in/yamlstream/internal/testutil/assert"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 2, o.Indent)
	assert.Equal(t, 80, o.LineWidth)
	assert.True(t, o.Unicode)
	assert.Equal(t, QuoteDouble, o.QuotePreference)
	assert.Equal(t, "core", o.Schema.String())
	assert.Equal(t, Unlimited, o.MaxDepth)
	assert.False(t, o.MergeKeys)
	assert.IsNil(t, o.Logger)
}

func TestApplyOptions(t *testing.T) {
	logger := slog.Default()
	o, err := ApplyOptions(
		WithIndent(4),
		WithLineWidth(-20),
		WithUnicode(false),
		WithCanonical(),
		WithLineBreak(CRLN_BREAK),
		WithExplicitStart(),
		WithExplicitEnd(true),
		WithCompact(),
		WithCompactSeqIndent(),
		WithQuotePreference(QuoteSingle),
		WithMaxSimpleKeyLength(10),
		WithSchemaName("json"),
		WithMaxDepth(3),
		WithMaxLength(100),
		WithMergeKeys(),
		WithLogger(logger),
		nil,
	)
	assert.NoError(t, err)
	assert.Equal(t, 4, o.Indent)
	assert.Equal(t, -1, o.LineWidth)
	assert.False(t, o.Unicode)
	assert.True(t, o.Canonical)
	assert.Equal(t, CRLN_BREAK, o.LineBreak)
	assert.True(t, o.ExplicitStart)
	assert.True(t, o.ExplicitEnd)
	assert.True(t, o.Compact)
	assert.True(t, o.CompactSeqIndent)
	assert.Equal(t, QuoteSingle, o.QuotePreference)
	assert.Equal(t, 10, o.MaxSimpleKeyLength)
	assert.Equal(t, "json", o.Schema.String())
	assert.Equal(t, 3, o.MaxDepth)
	assert.Equal(t, 100, o.MaxLength)
	assert.True(t, o.MergeKeys)
	assert.Equal(t, logger, o.Logger)
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name   string
		option Option
		want   string
	}{
		{"indent too small", WithIndent(1), "indent must be between 2 and 9, got 1"},
		{"indent too large", WithIndent(10), "indent must be between 2 and 9, got 10"},
		{"bool arguments", WithCanonical(true, false), "WithCanonical accepts at most one argument"},
		{"line break", WithLineBreak(LineBreak(42)), "unknown line break 42"},
		{"quote style", WithQuotePreference(QuoteStyle(9)), "invalid QuoteStyle value: 9"},
		{"simple key length", WithMaxSimpleKeyLength(0), "max simple key length must be positive"},
		{"nil schema", WithSchema(nil), "schema must not be nil"},
		{"schema name", WithSchemaName("xml"), `unknown schema "xml"`},
		{"zero depth", WithMaxDepth(0), "max depth must be positive or -1, got 0"},
		{"negative length", WithMaxLength(-2), "max length must be positive or -1, got -2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ApplyOptions(tt.option)
			assert.IsNil(t, o)
			assert.ErrorMatches(t, tt.want, err)
		})
	}
}

func TestCombineOptions(t *testing.T) {
	o, err := ApplyOptions(CombineOptions(WithIndent(4), nil, WithIndent(6)))
	assert.NoError(t, err)
	assert.Equal(t, 6, o.Indent)

	_, err = ApplyOptions(CombineOptions(WithIndent(4), WithIndent(0)))
	assert.ErrorMatches(t, "indent must be between", err)
}

func TestOptsYAML(t *testing.T) {
	opt, err := OptsYAML(`
indent: 4
line-width: -1
unicode: false
explicit-start: true
compact-seq-indent: true
merge-keys: true
line-break: crln
quote: single
schema: core-strict
max-depth: 8
max-length: 500
max-simple-key-length: 64
`)
	assert.NoError(t, err)
	o, err := ApplyOptions(opt)
	assert.NoError(t, err)
	assert.Equal(t, 4, o.Indent)
	assert.Equal(t, -1, o.LineWidth)
	assert.False(t, o.Unicode)
	assert.True(t, o.ExplicitStart)
	assert.True(t, o.CompactSeqIndent)
	assert.True(t, o.MergeKeys)
	assert.Equal(t, CRLN_BREAK, o.LineBreak)
	assert.Equal(t, QuoteSingle, o.QuotePreference)
	assert.True(t, o.Schema.Strict())
	assert.Equal(t, 8, o.MaxDepth)
	assert.Equal(t, 500, o.MaxLength)
	assert.Equal(t, 64, o.MaxSimpleKeyLength)
}

func TestOptsYAMLLayersOverPreset(t *testing.T) {
	opt, err := OptsYAML("indent: 3\n")
	assert.NoError(t, err)
	o, err := ApplyOptions(WithCompact(), WithIndent(8), opt)
	assert.NoError(t, err)
	assert.True(t, o.Compact)
	assert.Equal(t, 3, o.Indent)

	empty, err := OptsYAML("")
	assert.NoError(t, err)
	o, err = ApplyOptions(empty)
	assert.NoError(t, err)
	assert.Equal(t, 2, o.Indent)
}

func TestOptsYAMLErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"- a\n", "options must be a mapping, got \\[\\]interface"},
		{"colour: red\n", `unknown option "colour"`},
		{"indent: four\n", "option indent must be an int, got string"},
		{"compact: 1\n", "option compact must be a bool, got int64"},
		{"quote: 1\n", "option quote must be a string, got int64"},
		{"quote: backtick\n", `unknown quote style "backtick"`},
		{"line-break: nl\n", `unknown line break "nl"`},
		{"[a, b\n", "did not find expected ',' or ']'"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := OptsYAML(tt.input)
			assert.ErrorMatches(t, tt.want, err)
		})
	}

	// Option values are checked when applied.
	opt, err := OptsYAML("indent: 12\n")
	assert.NoError(t, err)
	_, err = ApplyOptions(opt)
	assert.ErrorMatches(t, "indent must be between 2 and 9, got 12", err)
}

func TestParseLineBreak(t *testing.T) {
	for in, want := range map[string]LineBreak{
		"ln": LN_BREAK, "LF": LN_BREAK, "cr": CR_BREAK, "crln": CRLN_BREAK, "CRLF": CRLN_BREAK,
	} {
		got, err := ParseLineBreak(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLineBreak("")
	assert.ErrorMatches(t, `unknown line break ""`, err)
}

func TestParseQuoteStyle(t *testing.T) {
	q, err := ParseQuoteStyle("Single")
	assert.NoError(t, err)
	assert.Equal(t, QuoteSingle, q)
	q, err = ParseQuoteStyle(`"`)
	assert.NoError(t, err)
	assert.Equal(t, QuoteDouble, q)
	assert.Equal(t, SINGLE_QUOTED_SCALAR_STYLE, QuoteSingle.ScalarStyle())
	assert.Equal(t, DOUBLE_QUOTED_SCALAR_STYLE, QuoteDouble.ScalarStyle())
}
