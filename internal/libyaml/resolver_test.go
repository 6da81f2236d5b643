// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"go.yaml.in/yamlstream/internal/testutil/assert"
)

func resolvedLines(t *testing.T, input string, schema *Schema) []string {
	t.Helper()
	r := NewSchemaResolver(NewParserWithOptions([]byte(input), nil), schema)
	return formatEvents(parseAll(t, r))
}

func TestSchemaResolverTags(t *testing.T) {
	got := resolvedLines(t, "a: [1, 'x', !local y, ~]\n", nil)
	want := []string{
		"+STR",
		"+DOC",
		"+MAP <tag:yaml.org,2002:map>",
		"=VAL <tag:yaml.org,2002:str> :a",
		"+SEQ [] <tag:yaml.org,2002:seq>",
		"=VAL <tag:yaml.org,2002:int> :1",
		"=VAL <tag:yaml.org,2002:str> 'x",
		"=VAL <!local> :y",
		"=VAL <tag:yaml.org,2002:null> :~",
		"-SEQ",
		"-MAP",
		"-DOC",
		"-STR",
	}
	assert.DeepEqual(t, want, got)
}

func TestSchemaResolverKeepsFlags(t *testing.T) {
	r := NewSchemaResolver(NewParserWithOptions([]byte("- a\n- 'b'\n"), nil), nil)
	events := parseAll(t, r)
	assert.True(t, events[3].Implicit)
	assert.True(t, events[4].QuotedImplicit)
	assert.False(t, events[4].Implicit)
}

func TestSchemaResolverStrict(t *testing.T) {
	r := NewSchemaResolver(NewParserWithOptions([]byte("ok: 1\nbad: word\n"), nil), CoreSchema(true))
	var event Event
	var err error
	for err == nil {
		err = r.Parse(&event)
	}
	var serr *SemanticError
	assert.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.Equal(t, 1, serr.Mark.Line)
	assert.Equal(t, "ok", serr.Value)

	// The error is sticky.
	assert.Equal(t, err, r.Parse(&event))
	_, perr := r.Peek()
	assert.Equal(t, err, perr)
}

func TestSchemaResolverStrictQuoted(t *testing.T) {
	got := resolvedLines(t, "'ok': \"word\"\n", CoreSchema(true))
	assert.Equal(t, "=VAL <tag:yaml.org,2002:str> 'ok", got[3])
	assert.Equal(t, `=VAL <tag:yaml.org,2002:str> "word`, got[4])
}

func TestSchemaResolverPeek(t *testing.T) {
	r := NewSchemaResolver(NewParserWithOptions([]byte("0x1F"), nil), nil)
	var event Event
	assert.NoError(t, Expect(r, STREAM_START_EVENT, nil))
	assert.NoError(t, Expect(r, DOCUMENT_START_EVENT, nil))
	peeked, err := r.Peek()
	assert.NoError(t, err)
	assert.Equal(t, INT_TAG, peeked.Tag)
	assert.NoError(t, r.Parse(&event))
	assert.Equal(t, INT_TAG, event.Tag)

	v, err := r.ValueOf(&event)
	assert.NoError(t, err)
	assert.Equal(t, int64(31), v)
	assert.Equal(t, "core", r.Schema().String())

	parseAll(t, r)
	_, err = r.Peek()
	assert.Equal(t, io.EOF, err)
}

func TestSchemaResolverValueOfMark(t *testing.T) {
	r := NewSchemaResolver(NewParserWithOptions([]byte("\n!!int nope"), nil), nil)
	events := parseAll(t, r)
	_, err := r.ValueOf(&events[2])
	var serr *SemanticError
	assert.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Mark.Line)
}

func TestSchemaResolverJSON(t *testing.T) {
	got := resolvedLines(t, "[0x1F, 31]", JSONSchema(false))
	assert.Equal(t, "=VAL <tag:yaml.org,2002:str> :0x1F", got[3])
	assert.Equal(t, "=VAL <tag:yaml.org,2002:int> :31", got[4])

	r := NewSchemaResolver(NewParserWithOptions([]byte("[0x1F]"), nil), JSONSchema(true))
	var event Event
	var err error
	for err == nil {
		err = r.Parse(&event)
	}
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestSchemaResolverLogger(t *testing.T) {
	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewSchemaResolverWithOptions(NewParserWithOptions([]byte("a: 1"), nil), opts)
	parseAll(t, r)
	assert.Contains(t, logs.String(), "component=resolver")
	assert.Contains(t, logs.String(), "schema=core")
	assert.Contains(t, logs.String(), "tag=!!int")
}

func TestEventSourcePipeline(t *testing.T) {
	opts, err := ApplyOptions(WithMergeKeys(), WithSchemaName("yaml1.1"))
	assert.NoError(t, err)
	src := NewEventSourceWithOptions([]byte("base: &b {x: yes}\nd: {<<: *b}\n"), opts)
	got := formatEvents(parseAll(t, src))
	assert.Equal(t, "=VAL <tag:yaml.org,2002:str> :d", got[len(got)-8])
	assert.Equal(t, "+MAP {} <tag:yaml.org,2002:map>", got[len(got)-7])
	assert.Equal(t, "=VAL <tag:yaml.org,2002:str> :x", got[len(got)-6])
	assert.Equal(t, "=VAL <tag:yaml.org,2002:bool> :yes", got[len(got)-5])
	assert.Equal(t, "-MAP", got[len(got)-4])
}
