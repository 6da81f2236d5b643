// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"go.yaml.in/yamlstream/internal/testutil/assert"
)

func scalarStream(events ...Event) []Event {
	stream := []Event{NewStreamStartEvent(), NewDocumentStartEvent(nil, nil, true)}
	stream = append(stream, events...)
	return append(stream, NewDocumentEndEvent(true), NewStreamEndEvent())
}

func TestEmitMissingTag(t *testing.T) {
	_, err := emitAll(scalarStream(NewScalarEvent("", "", "x", false, false, PLAIN_SCALAR_STYLE)), nil)
	var eerr EmitterError
	assert.ErrorAs(t, err, &eerr)
	assert.Equal(t, "neither tag nor implicit flags are specified", eerr.Message)
}

func TestEmitVersionDirective(t *testing.T) {
	events := []Event{
		NewStreamStartEvent(),
		NewDocumentStartEvent(&VersionDirective{Major: 1, Minor: 2}, nil, true),
		NewScalarEvent("", "", "x", true, true, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}
	out, err := emitAll(events, nil)
	assert.NoError(t, err)
	assert.Equal(t, "%YAML 1.2\n---\nx\n", out)

	events[1] = NewDocumentStartEvent(&VersionDirective{Major: 2, Minor: 0}, nil, true)
	_, err = emitAll(events, nil)
	assert.ErrorMatches(t, "incompatible %YAML directive", err)
}

func TestEmitTagDirective(t *testing.T) {
	events := []Event{
		NewStreamStartEvent(),
		NewDocumentStartEvent(nil, []TagDirective{{Handle: "!e!", Prefix: "tag:example.com,2000:"}}, true),
		NewScalarEvent("", "tag:example.com,2000:x", "v", false, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}
	out, err := emitAll(events, nil)
	assert.NoError(t, err)
	assert.Equal(t, "%TAG !e! tag:example.com,2000:\n---\n!e!x v\n", out)

	events[1] = NewDocumentStartEvent(nil, []TagDirective{{Handle: "e", Prefix: "p"}}, true)
	_, err = emitAll(events, nil)
	assert.ErrorMatches(t, "tag handle must start with '!'", err)
}

func TestEmitInvalidUTF8(t *testing.T) {
	styles := []ScalarStyle{
		PLAIN_SCALAR_STYLE,
		SINGLE_QUOTED_SCALAR_STYLE,
		DOUBLE_QUOTED_SCALAR_STYLE,
		LITERAL_SCALAR_STYLE,
		FOLDED_SCALAR_STYLE,
	}
	for _, value := range []string{"\xff", "a\xc3", "ok\n\xfe\n"} {
		for _, style := range styles {
			_, err := emitAll(scalarStream(NewScalarEvent("", "", value, true, true, style)), nil)
			var eerr EmitterError
			assert.ErrorAs(t, err, &eerr)
			assert.Equal(t, "invalid UTF-8 in scalar event", eerr.Message)
		}
	}

	_, err := emitAll(scalarStream(NewScalarEvent("a\xff", "", "x", true, true, PLAIN_SCALAR_STYLE)), nil)
	assert.ErrorMatches(t, "invalid UTF-8 in scalar event", err)
	_, err = emitAll(scalarStream(NewScalarEvent("", "!\xff", "x", false, false, PLAIN_SCALAR_STYLE)), nil)
	assert.ErrorMatches(t, "invalid UTF-8 in scalar event", err)
}

func TestEmitBlockStyleNeedsMultipleLines(t *testing.T) {
	tests := []struct {
		value string
		style ScalarStyle
		want  string
	}{
		{"abc", LITERAL_SCALAR_STYLE, "abc\n"},
		{"abc", FOLDED_SCALAR_STYLE, "abc\n"},
		{"\t", LITERAL_SCALAR_STYLE, "\"\\t\"\n"},
		{"a\nb\n", LITERAL_SCALAR_STYLE, "|\n  a\n  b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			out, err := emitAll(scalarStream(NewScalarEvent("", "", tt.value, true, true, tt.style)), nil)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEmitBlockScalarIndentHint(t *testing.T) {
	tests := []struct {
		events string
		indent int
		want   string
	}{
		{"+SEQ\n=VAL | lead\\n\n-SEQ\n", 2, "- |2\n   lead\n"},
		{"+SEQ\n=VAL | lead\\n\n-SEQ\n", 4, "- |2\n   lead\n"},
		{"+MAP\n=VAL :k\n=VAL | lead\\n\n-MAP\n", 4, "k: |4\n     lead\n"},
		{"+MAP\n=VAL :k\n=VAL | lead\\n\n-MAP\n", 2, "k: |2\n   lead\n"},
		{"=VAL | lead\\n\n", 3, "|3\n    lead\n"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			opts, err := ApplyOptions(WithIndent(tt.indent))
			assert.NoError(t, err)
			events, err := eventsFromNotation("+STR\n+DOC\n" + tt.events + "-DOC\n-STR\n")
			assert.NoError(t, err)
			out, err := emitAll(events, opts)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, out)

			docs, err := ComposeAll(NewParserWithOptions([]byte(out), nil))
			assert.NoError(t, err)
			assert.Equal(t, 1, len(docs))
		})
	}
}

func TestEmitErrorIsSticky(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewEmitterWithOptions(&buf, nil)
	scalar := NewScalarEvent("", "", "x", true, true, PLAIN_SCALAR_STYLE)
	err := emitter.Emit(&scalar)
	assert.ErrorMatches(t, "expected STREAM-START", err)

	start := NewStreamStartEvent()
	assert.Equal(t, err, emitter.Emit(&start))
	assert.Equal(t, err, emitter.Flush())
}

type errorWriter struct{ err error }

func (w errorWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEmitWriterError(t *testing.T) {
	diskFull := errors.New("disk full")
	emitter := NewEmitterWithOptions(errorWriter{diskFull}, nil)
	var emitErr error
	for _, event := range scalarStream(NewScalarEvent("", "", "x", true, true, PLAIN_SCALAR_STYLE)) {
		if emitErr = emitter.Emit(&event); emitErr != nil {
			break
		}
	}
	var werr WriterError
	assert.ErrorAs(t, emitErr, &werr)
	assert.ErrorIs(t, emitErr, diskFull)
	assert.ErrorMatches(t, "^yaml: disk full$", emitErr)
}

func TestEmitOutputString(t *testing.T) {
	emitter := NewEmitter()
	var out []byte
	emitter.SetOutputString(&out)
	events := scalarStream(NewScalarEvent("", "", "x", true, true, PLAIN_SCALAR_STYLE))
	for i := 0; i < 3; i++ {
		assert.NoError(t, emitter.Emit(&events[i]))
	}
	assert.Equal(t, "", string(out))
	assert.NoError(t, emitter.Flush())
	assert.Equal(t, "x", string(out))

	for i := 3; i < len(events); i++ {
		assert.NoError(t, emitter.Emit(&events[i]))
	}
	assert.Equal(t, "x\n", string(out))

	assert.PanicMatches(t, "must set the output target only once", func() {
		emitter.SetOutputWriter(&bytes.Buffer{})
	})
}

func TestEmitLineBreakAndUnicode(t *testing.T) {
	opts, err := ApplyOptions(WithLineBreak(CRLN_BREAK))
	assert.NoError(t, err)
	events, err := eventsFromNotation("+STR\n+DOC\n+MAP\n=VAL :a\n=VAL :b\n-MAP\n-DOC\n-STR\n")
	assert.NoError(t, err)
	out, err := emitAll(events, opts)
	assert.NoError(t, err)
	assert.Equal(t, "a: b\r\n", out)

	opts, err = ApplyOptions(WithUnicode(false))
	assert.NoError(t, err)
	out, err = emitAll(scalarStream(NewScalarEvent("", "", "é", true, true, PLAIN_SCALAR_STYLE)), opts)
	assert.NoError(t, err)
	assert.Equal(t, "\"\\xE9\"\n", out)

	out, err = emitAll(scalarStream(NewScalarEvent("", "", "é", true, true, PLAIN_SCALAR_STYLE)), DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, "é\n", out)
}

func TestEmitComposedDocuments(t *testing.T) {
	inputs := []string{
		"a: &x [1, 'two']\nb: *x\n",
		"- |\n  literal\n- \"dq\"\n",
		"---\n!!str a\n---\n!local {k: v}\n",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			docs, err := ComposeAll(NewParserWithOptions([]byte(input), nil))
			assert.NoError(t, err)
			out, err := emitAll(StreamEvents(docs), nil)
			assert.NoError(t, err)
			assert.Equal(t, input, out)
		})
	}
}

func TestEmitResolvedEvents(t *testing.T) {
	// Resolved tags that match the schema are not written back.
	src := NewSchemaResolver(NewParserWithOptions([]byte("a: [1, '1', true, x]\n"), nil), nil)
	out, err := emitAll(parseAll(t, src), DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, "a: [1, '1', true, x]\n", out)
}

func TestEmitterLogger(t *testing.T) {
	var logs bytes.Buffer
	opts, err := ApplyOptions(WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	assert.NoError(t, err)
	_, err = emitAll(scalarStream(NewScalarEvent("", "", "x", true, true, PLAIN_SCALAR_STYLE)), opts)
	assert.NoError(t, err)
	assert.Contains(t, logs.String(), "component=emitter")
	assert.Contains(t, logs.String(), "document start")
}
