// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"go.yaml.in/yamlstream/internal/testutil/assert"
)

func TestLoadYAML(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", nil},
		{"# nothing\n", nil},
		{"~", nil},
		{"a: 1\nb: [true, null, 1.5, str]\n", map[string]any{
			"a": int64(1),
			"b": []any{true, nil, 1.5, "str"},
		}},
		{"first\n---\nsecond\n", "first"},
		{"{1: a, ~: b, true: c, 1.5: d}", map[string]any{"1": "a", "null": "b", "true": "c", "1.5": "d"}},
		{"!custom x", "x"},
		{"!!binary aGVsbG8=", []byte("hello")},
		{"'0x1F'", "0x1F"},
		{"[0x1F, 0o17]", []any{int64(31), int64(15)}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := LoadYAML([]byte(tt.input))
			assert.NoError(t, err)
			assert.DeepEqual(t, tt.want, v)
		})
	}
}

func TestLoadYAMLWithSchema(t *testing.T) {
	opts, err := ApplyOptions(WithSchemaName("yaml1.1"))
	assert.NoError(t, err)
	v, err := LoadYAMLWithOptions([]byte("a: yes\nb: 0b11\nc: 1_000\n"), opts)
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"a": true, "b": int64(3), "c": int64(1000)}, v)

	opts, err = ApplyOptions(WithSchemaName("failsafe"))
	assert.NoError(t, err)
	v, err = LoadYAMLWithOptions([]byte("[1, true, ~]"), opts)
	assert.NoError(t, err)
	assert.DeepEqual(t, []any{"1", "true", "~"}, v)
}

func TestLoadYAMLStrict(t *testing.T) {
	opts, err := ApplyOptions(WithSchemaName("core-strict"))
	assert.NoError(t, err)

	v, err := LoadYAMLWithOptions([]byte("'a': 1\n"), opts)
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"a": int64(1)}, v)

	_, err = LoadYAMLWithOptions([]byte("a: 1\n"), opts)
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestLoadYAMLValueError(t *testing.T) {
	_, err := LoadYAML([]byte("a: 1\nb: !!int nope\n"))
	assert.ErrorIs(t, err, ErrNoMatch)
	var serr *SemanticError
	assert.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Mark.Line)
	assert.Equal(t, "nope", serr.Value)
	assert.ErrorMatches(t, `^yaml: line 2, column \d+: cannot decode "nope" as !!int`, err)
}

func TestLoadYAMLParseError(t *testing.T) {
	_, err := LoadYAML([]byte("a: [1, 2\n"))
	var perr ParserError
	assert.ErrorAs(t, err, &perr)
}

func TestLoadYAMLLimits(t *testing.T) {
	opts, err := ApplyOptions(WithMaxLength(3))
	assert.NoError(t, err)
	_, err = LoadYAMLWithOptions([]byte("&a [1, 2, 3, 4]"), opts)
	var lerr *ResourceLimitError
	assert.ErrorAs(t, err, &lerr)
	assert.Equal(t, "length", lerr.Limit)
}

func TestDocumentValueUnresolved(t *testing.T) {
	// Documents composed from a raw parser resolve their tags on demand.
	doc := composeString(t, "- 12\n- '12'\n- word\n")
	v, err := doc.Value(nil)
	assert.NoError(t, err)
	assert.DeepEqual(t, []any{int64(12), "12", "word"}, v)

	_, err = doc.Value(CoreSchema(true))
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestDocumentMarshalJSON(t *testing.T) {
	doc := composeString(t, "b: [1, 2.5, null]\na: {c: true}\n")
	data, err := doc.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `{"a":{"c":true},"b":[1,2.5,null]}`, string(data))

	doc = composeString(t, "!!int x")
	_, err = doc.MarshalJSON()
	assert.ErrorIs(t, err, ErrNoMatch)
}
