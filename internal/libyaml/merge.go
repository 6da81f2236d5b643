// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Merge key expansion.
//
// A "<<" key whose value is an alias to a mapping, or a sequence of such
// aliases, is replaced by the key/value pairs of the referenced mappings.
// Keys written explicitly in the merging mapping take precedence, and among
// several merged mappings the first one listed wins.

package libyaml

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Errors reported by merge key expansion.
var (
	ErrMergePattern  = errors.New("unrecognized merge key pattern")
	ErrUnknownAnchor = errors.New("unknown anchor")
)

// MergeParser decorates an EventSource and expands merge keys. Each
// document is read whole before its first event is returned; anchors are
// scoped to their document.
type MergeParser struct {
	src    EventSource
	logger *slog.Logger

	queue []Event
	pos   int
	err   error
}

// NewMergeParser returns a MergeParser reading from src.
func NewMergeParser(src EventSource) *MergeParser {
	return &MergeParser{src: src}
}

// SetLogger sets the logger for merge traces.
func (m *MergeParser) SetLogger(logger *slog.Logger) {
	if logger != nil {
		logger = logger.With(slog.String("component", "merge"))
	}
	m.logger = logger
}

// Peek returns the next event without consuming it.
func (m *MergeParser) Peek() (*Event, error) {
	if err := m.fill(); err != nil {
		return nil, err
	}
	return &m.queue[m.pos], nil
}

// Parse consumes the next event into event.
func (m *MergeParser) Parse(event *Event) error {
	if err := m.fill(); err != nil {
		*event = Event{}
		return err
	}
	*event = m.queue[m.pos]
	m.queue[m.pos] = Event{}
	m.pos++
	return nil
}

func (m *MergeParser) fill() error {
	if m.pos < len(m.queue) {
		return nil
	}
	if m.err != nil {
		return m.err
	}
	m.queue = m.queue[:0]
	m.pos = 0

	var event Event
	if err := m.src.Parse(&event); err != nil {
		if err != io.EOF {
			m.err = err
		}
		return err
	}
	if event.Type != DOCUMENT_START_EVENT {
		m.queue = append(m.queue, event)
		return nil
	}

	var body []Event
	for {
		var next Event
		if err := m.src.Parse(&next); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			m.err = err
			return err
		}
		if next.Type == DOCUMENT_END_EVENT {
			merged, err := m.expand(body)
			if err != nil {
				m.err = err
				return err
			}
			m.queue = append(m.queue, event)
			m.queue = append(m.queue, merged...)
			m.queue = append(m.queue, next)
			return nil
		}
		body = append(body, next)
	}
}

// mergeFrame tracks an open collection of the output.
type mergeFrame struct {
	mapping bool
	nodes   int // direct children started so far
	start   int // index of the start event in the input
	keys    map[string]bool
}

// isMergeKey reports whether event is a plain "<<" key.
func isMergeKey(event *Event) bool {
	if event.Type != SCALAR_EVENT || event.Value != "<<" {
		return false
	}
	style := event.ScalarStyle()
	if style != PLAIN_SCALAR_STYLE && style != ANY_SCALAR_STYLE {
		return false
	}
	return event.Implicit || event.Tag == MERGE_TAG
}

// expand returns the events of one document body with merge keys replaced.
func (m *MergeParser) expand(in []Event) ([]Event, error) {
	out := make([]Event, 0, len(in))
	// Output index of each anchored mapping start; -1 for other nodes.
	anchors := make(map[AnchorName]int)
	var stack []*mergeFrame

	for i := 0; i < len(in); i++ {
		ev := in[i]
		var top *mergeFrame
		if len(stack) > 0 {
			top = stack[len(stack)-1]
		}

		if top != nil && top.mapping && top.nodes%2 == 0 && isMergeKey(&ev) {
			if i+1 >= len(in) {
				return nil, &SemanticError{Mark: ev.StartMark, Err: ErrMergePattern}
			}
			if top.keys == nil {
				top.keys = explicitKeys(in, top.start)
			}
			i++
			value := in[i]
			switch value.Type {
			case ALIAS_EVENT:
				merged, err := mergedPairs(out, anchors, &value, top.keys)
				if err != nil {
					return nil, err
				}
				out = append(out, merged...)
			case SEQUENCE_START_EVENT:
				for i++; i < len(in) && in[i].Type != SEQUENCE_END_EVENT; i++ {
					if in[i].Type != ALIAS_EVENT {
						return nil, &SemanticError{Mark: in[i].StartMark, Err: ErrMergePattern}
					}
					merged, err := mergedPairs(out, anchors, &in[i], top.keys)
					if err != nil {
						return nil, err
					}
					out = append(out, merged...)
				}
				if i >= len(in) {
					return nil, &SemanticError{Mark: value.StartMark, Err: ErrMergePattern}
				}
			default:
				return nil, &SemanticError{Mark: value.StartMark, Err: ErrMergePattern}
			}
			if m.logger != nil {
				m.logger.Debug("merged keys", slog.String("mark", ev.StartMark.String()))
			}
			continue
		}

		if ev.IsNodeStart() && top != nil {
			top.nodes++
		}
		if !ev.Anchor.IsEmpty() && ev.Type != ALIAS_EVENT {
			if ev.Type == MAPPING_START_EVENT {
				anchors[ev.Anchor] = len(out)
			} else {
				anchors[ev.Anchor] = -1
			}
		}
		switch ev.Type {
		case MAPPING_START_EVENT:
			stack = append(stack, &mergeFrame{mapping: true, start: i})
		case SEQUENCE_START_EVENT:
			stack = append(stack, &mergeFrame{start: i})
		case MAPPING_END_EVENT, SEQUENCE_END_EVENT:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
		out = append(out, ev)
	}
	return out, nil
}

// explicitKeys returns the plain and quoted scalar keys written directly
// in the mapping starting at in[start], excluding merge keys.
func explicitKeys(in []Event, start int) map[string]bool {
	keys := make(map[string]bool)
	i := start + 1
	for i < len(in) && in[i].Type != MAPPING_END_EVENT {
		key := &in[i]
		if key.Type == SCALAR_EVENT && !isMergeKey(key) {
			keys[key.Value] = true
		}
		i, _ = nodeEnd(in, i)
		i, _ = nodeEnd(in, i)
	}
	return keys
}

// nodeEnd returns the index just past the node starting at events[i]. It
// reports false when the node is not closed within events.
func nodeEnd(events []Event, i int) (int, bool) {
	depth := 0
	for ; i < len(events); i++ {
		depth += events[i].NestingIncrease()
		if depth <= 0 {
			return i + 1, true
		}
	}
	return i, false
}

// mergedPairs copies the key/value pairs of the mapping anchored by alias,
// skipping scalar keys already in keys, and adds the copied keys to keys.
func mergedPairs(out []Event, anchors map[AnchorName]int, alias *Event, keys map[string]bool) ([]Event, error) {
	start, ok := anchors[alias.Anchor]
	if !ok {
		return nil, &SemanticError{Mark: alias.StartMark, Value: string(alias.Anchor),
			Err: fmt.Errorf("%w %q", ErrUnknownAnchor, alias.Anchor)}
	}
	if start < 0 {
		return nil, &SemanticError{Mark: alias.StartMark, Err: ErrMergePattern}
	}
	end, closed := nodeEnd(out, start)
	if !closed {
		// The alias sits inside the mapping it refers to.
		return nil, &SemanticError{Mark: alias.StartMark, Err: ErrMergePattern}
	}

	var merged []Event
	for i := start + 1; i < end-1; {
		keyEnd, _ := nodeEnd(out, i)
		valueEnd, _ := nodeEnd(out, keyEnd)
		key := &out[i]
		if key.Type == SCALAR_EVENT {
			if keys[key.Value] {
				i = valueEnd
				continue
			}
			keys[key.Value] = true
		}
		for _, ev := range out[i:valueEnd] {
			if ev.Type != ALIAS_EVENT {
				ev.Anchor = ""
			}
			merged = append(merged, ev)
		}
		i = valueEnd
	}
	return merged, nil
}
