// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"strings"
	"testing"

	"go.yaml.in/yamlstream/internal/testutil/assert"
)

func loadMerged(input string) (any, error) {
	opts, err := ApplyOptions(WithMergeKeys())
	if err != nil {
		return nil, err
	}
	return LoadYAMLWithOptions([]byte(input), opts)
}

func TestMergeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{{
		name:  "explicit key wins",
		input: "base: &b {x: 1, y: 2}\nd:\n  <<: *b\n  y: 3\n",
		want:  map[string]any{"x": int64(1), "y": int64(3)},
	}, {
		name:  "explicit key before merge wins",
		input: "base: &b {x: 1, y: 2}\nd:\n  y: 3\n  <<: *b\n",
		want:  map[string]any{"x": int64(1), "y": int64(3)},
	}, {
		name:  "first merged mapping wins",
		input: "a: &a {k: 1}\nb: &b {k: 2, j: 2}\nd: {<<: [*a, *b]}\n",
		want:  map[string]any{"k": int64(1), "j": int64(2)},
	}, {
		name:  "nested values are copied",
		input: "a: &a {k: [1, 2], m: {n: o}}\nd: {<<: *a}\n",
		want:  map[string]any{"k": []any{int64(1), int64(2)}, "m": map[string]any{"n": "o"}},
	}, {
		name:  "merge keeps aliases inside the source",
		input: "v: &v 5\na: &a {k: *v}\nd: {<<: *a}\n",
		want:  map[string]any{"k": int64(5)},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadMerged(tt.input)
			assert.NoError(t, err)
			assert.DeepEqual(t, tt.want, v.(map[string]any)["d"])
		})
	}
}

func TestMergeKeysDisabled(t *testing.T) {
	v, err := LoadYAML([]byte("a: &a {k: 1}\nd: {<<: *a}\n"))
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"<<": map[string]any{"k": int64(1)}}, v.(map[string]any)["d"])
}

func TestMergeQuotedKeyIsNotMerged(t *testing.T) {
	v, err := loadMerged("a: &a {k: 1}\nd: {'<<': *a}\n")
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"<<": map[string]any{"k": int64(1)}}, v.(map[string]any)["d"])
}

func TestMergeKeyInValuePosition(t *testing.T) {
	v, err := loadMerged("a: <<\n")
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"a": "<<"}, v)
}

func TestMergeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  int
	}{
		{"unknown anchor", "d: {<<: *zz}\n", ErrUnknownAnchor, 1},
		{"scalar source", "s: &s str\nd: {<<: *s}\n", ErrMergePattern, 2},
		{"inline mapping", "d: {<<: {a: 1}}\n", ErrMergePattern, 1},
		{"sequence of scalars", "d: {<<: [a]}\n", ErrMergePattern, 1},
		{"self reference", "d: &d {<<: *d}\n", ErrMergePattern, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadMerged(tt.input)
			assert.ErrorIs(t, err, tt.want)
			var serr *SemanticError
			assert.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.line, serr.Mark.Line)
		})
	}
}

func TestMergeAnchorsArePerDocument(t *testing.T) {
	src := NewMergeParser(NewParserWithOptions([]byte("--- &a {x: 1}\n--- {<<: *a}\n"), nil))
	_, err := ComposeAll(src)
	assert.ErrorIs(t, err, ErrUnknownAnchor)
}

func TestMergeCopiesDropAnchors(t *testing.T) {
	src := NewMergeParser(NewParserWithOptions([]byte("b: &b {x: &v 1}\nd: {<<: *b}\n"), nil))
	got := strings.Join(formatEvents(parseAll(t, src)), "\n")
	assert.Equal(t, 1, strings.Count(got, "&v"))
	assert.Equal(t, 2, strings.Count(got, "=VAL :x"))
}

func TestMergeErrorIsSticky(t *testing.T) {
	src := NewMergeParser(NewParserWithOptions([]byte("d: {<<: *zz}\n"), nil))
	var event Event
	assert.NoError(t, src.Parse(&event))
	err := src.Parse(&event)
	assert.ErrorIs(t, err, ErrUnknownAnchor)
	_, perr := src.Peek()
	assert.Equal(t, err, perr)
}
