// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Replayable captures of a single node.

package libyaml

import (
	"fmt"
	"io"
	"log/slog"
)

// Unlimited disables a buffer limit.
const Unlimited = -1

// ParserBuffer holds every event of one node, read eagerly from a source,
// and replays them through the EventSource contract. Reset rewinds to the
// node's first event.
type ParserBuffer struct {
	events []Event
	pos    int
}

// NewParserBuffer reads the next node of src. The node may be at most
// maxDepth collections deep and maxLength events long; -1 disables a limit.
// When a limit is exceeded a *ResourceLimitError is returned and nothing
// is buffered.
func NewParserBuffer(src EventSource, maxDepth, maxLength int) (*ParserBuffer, error) {
	events, _, err := capture(src, maxDepth, maxLength, nil)
	if err != nil {
		return nil, err
	}
	return &ParserBuffer{events: events}, nil
}

// NewParserBufferWithOptions reads the next node of src with the limits and
// logger from opts.
func NewParserBufferWithOptions(src EventSource, opts *Options) (*ParserBuffer, error) {
	events, _, err := capture(src, opts.MaxDepth, opts.MaxLength, bufferLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	return &ParserBuffer{events: events}, nil
}

// Peek returns the next buffered event.
func (b *ParserBuffer) Peek() (*Event, error) {
	if b.pos >= len(b.events) {
		return nil, io.EOF
	}
	return &b.events[b.pos], nil
}

// Parse copies the next buffered event into event.
func (b *ParserBuffer) Parse(event *Event) error {
	if b.pos >= len(b.events) {
		*event = Event{}
		return io.EOF
	}
	*event = b.events[b.pos]
	b.pos++
	return nil
}

// Reset rewinds the buffer to the first event.
func (b *ParserBuffer) Reset() {
	b.pos = 0
}

// Len returns the number of buffered events.
func (b *ParserBuffer) Len() int {
	return len(b.events)
}

// Events returns the buffered events. The slice must not be modified.
func (b *ParserBuffer) Events() []Event {
	return b.events
}

// AnchorBuffer is a ParserBuffer for an anchored node that also records
// whether the node refers to itself through an alias.
type AnchorBuffer struct {
	ParserBuffer
	anchor AnchorName
	cyclic bool
}

// NewAnchorBuffer reads the next node of src like NewParserBuffer.
func NewAnchorBuffer(src EventSource, maxDepth, maxLength int) (*AnchorBuffer, error) {
	return newAnchorBuffer(src, maxDepth, maxLength, nil)
}

// NewAnchorBufferWithOptions reads the next node of src with the limits and
// logger from opts.
func NewAnchorBufferWithOptions(src EventSource, opts *Options) (*AnchorBuffer, error) {
	return newAnchorBuffer(src, opts.MaxDepth, opts.MaxLength, bufferLogger(opts.Logger))
}

func newAnchorBuffer(src EventSource, maxDepth, maxLength int, logger *slog.Logger) (*AnchorBuffer, error) {
	events, cyclic, err := capture(src, maxDepth, maxLength, logger)
	if err != nil {
		return nil, err
	}
	return &AnchorBuffer{
		ParserBuffer: ParserBuffer{events: events},
		anchor:       events[0].Anchor,
		cyclic:       cyclic,
	}, nil
}

// Anchor returns the anchor of the captured node, or "" if it has none.
func (b *AnchorBuffer) Anchor() AnchorName {
	return b.anchor
}

// Cyclic reports whether the captured node contains an alias to its own
// anchor.
func (b *AnchorBuffer) Cyclic() bool {
	return b.cyclic
}

func bufferLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", "buffer"))
}

// capture reads one node from src. It also reports whether the node holds
// an alias to the anchor of its first event.
func capture(src EventSource, maxDepth, maxLength int, logger *slog.Logger) ([]Event, bool, error) {
	first, err := src.Peek()
	if err != nil {
		return nil, false, unexpectedEOF(err, SCALAR_EVENT)
	}
	if !first.IsNodeStart() {
		return nil, false, &UnexpectedEventError{Mark: first.StartMark, Expected: SCALAR_EVENT, Got: first.Type}
	}
	anchor := first.Anchor
	start := first.StartMark

	var events []Event
	var cyclic, shadowed bool
	depth := 0
	for {
		var event Event
		if err := src.Parse(&event); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, false, err
		}
		if maxLength >= 0 && len(events)+1 > maxLength {
			return nil, false, limitExceeded(logger, event.StartMark, "length", maxLength,
				fmt.Sprintf("node starting at %s exceeds the maximum length of %d events", start, maxLength))
		}
		depth += event.NestingIncrease()
		if maxDepth >= 0 && depth > maxDepth {
			return nil, false, limitExceeded(logger, event.StartMark, "depth", maxDepth,
				fmt.Sprintf("node starting at %s exceeds the maximum depth of %d", start, maxDepth))
		}
		if !anchor.IsEmpty() && !shadowed {
			switch {
			case event.Type == ALIAS_EVENT && event.Anchor == anchor:
				cyclic = true
			case len(events) > 0 && event.Type != ALIAS_EVENT && event.Anchor == anchor:
				// A nested node redefines the anchor; later aliases refer to it.
				shadowed = true
			}
		}
		events = append(events, event)
		if depth == 0 {
			break
		}
	}
	if logger != nil {
		logger.Debug("captured node",
			slog.Int("events", len(events)),
			slog.String("anchor", string(anchor)),
			slog.Bool("cyclic", cyclic),
			slog.String("start", start.String()))
	}
	return events, cyclic, nil
}

func limitExceeded(logger *slog.Logger, mark Mark, limit string, max int, msg string) error {
	if logger != nil {
		logger.Debug("buffer limit exceeded", slog.String("limit", limit), slog.Int("max", max), slog.String("mark", mark.String()))
	}
	return &ResourceLimitError{Mark: mark, Limit: limit, Max: max, Message: msg}
}
