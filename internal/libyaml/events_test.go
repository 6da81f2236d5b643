// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"io"
	"testing"

	"go.yaml.in/yamlstream/internal/testutil/assert"
)

// sliceSource replays a fixed list of events.
type sliceSource struct {
	events []Event
	pos    int
}

func (s *sliceSource) Peek() (*Event, error) {
	if s.pos >= len(s.events) {
		return nil, io.EOF
	}
	return &s.events[s.pos], nil
}

func (s *sliceSource) Parse(event *Event) error {
	if s.pos >= len(s.events) {
		return io.EOF
	}
	*event = s.events[s.pos]
	s.pos++
	return nil
}

func notationSource(t *testing.T, text string) *sliceSource {
	t.Helper()
	events, err := eventsFromNotation(text)
	assert.NoError(t, err)
	return &sliceSource{events: events}
}

func TestExpect(t *testing.T) {
	src := notationSource(t, "+STR\n=VAL :a\n")
	var event Event
	assert.NoError(t, Expect(src, STREAM_START_EVENT, &event))
	assert.Equal(t, STREAM_START_EVENT, event.Type)

	err := Expect(src, MAPPING_START_EVENT, &event)
	var uerr *UnexpectedEventError
	assert.ErrorAs(t, err, &uerr)
	assert.Equal(t, MAPPING_START_EVENT, uerr.Expected)
	assert.Equal(t, SCALAR_EVENT, uerr.Got)
	assert.ErrorMatches(t, "expected mapping start, but got scalar", err)

	// A failed Expect leaves the event in place.
	assert.NoError(t, Expect(src, SCALAR_EVENT, nil))
	err = Expect(src, SCALAR_EVENT, nil)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestAcceptAndTryConsume(t *testing.T) {
	src := notationSource(t, "+SEQ\n-SEQ\n")
	ok, err := Accept(src, SEQUENCE_START_EVENT)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = TryConsume(src, SEQUENCE_END_EVENT, nil)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, src.pos)

	ok, err = TryConsume(src, SEQUENCE_START_EVENT, nil)
	assert.NoError(t, err)
	assert.True(t, ok)
	var end Event
	ok, err = TryConsume(src, SEQUENCE_END_EVENT, &end)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, SEQUENCE_END_EVENT, end.Type)

	ok, err = Accept(src, SCALAR_EVENT)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSkipSubtree(t *testing.T) {
	src := notationSource(t, "+MAP\n=VAL :a\n+SEQ\n=VAL :b\n-SEQ\n-MAP\n=VAL :next\n")
	assert.NoError(t, SkipSubtree(src))
	next, err := src.Peek()
	assert.NoError(t, err)
	assert.Equal(t, "next", next.Value)
	assert.NoError(t, SkipSubtree(src))
	assert.ErrorIs(t, SkipSubtree(src), io.ErrUnexpectedEOF)
}

func TestSkipSubtreeErrors(t *testing.T) {
	var uerr *UnexpectedEventError
	assert.ErrorAs(t, SkipSubtree(notationSource(t, "-SEQ\n")), &uerr)
	assert.ErrorIs(t, SkipSubtree(notationSource(t, "+SEQ\n=VAL :a\n")), io.ErrUnexpectedEOF)
}

func TestSkipSubtreeOnParser(t *testing.T) {
	parser := NewParserWithOptions([]byte("- {a: [1, 2]}\n- b\n"), nil)
	for i := 0; i < 3; i++ {
		assert.NoError(t, parser.Parse(&Event{}))
	}
	assert.NoError(t, SkipSubtree(parser))
	var event Event
	assert.NoError(t, Expect(parser, SCALAR_EVENT, &event))
	assert.Equal(t, "b", event.Value)
}
