// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Pull helpers over event sources.

package libyaml

import (
	"fmt"
	"io"
)

// EventSource is a pull iterator over events. Parser, the buffers and the
// decorating resolvers all implement it.
type EventSource interface {
	// Peek returns the next event without consuming it. The event is only
	// valid until the next call on the source.
	Peek() (*Event, error)
	// Parse consumes the next event into event. It returns io.EOF once the
	// source is exhausted.
	Parse(event *Event) error
}

// UnexpectedEventError is returned by Expect when the next event has the
// wrong type.
type UnexpectedEventError struct {
	Mark     Mark
	Expected EventType
	Got      EventType
}

func (e *UnexpectedEventError) Error() string {
	return fmt.Sprintf("yaml: %s: expected %s, but got %s", e.Mark, e.Expected, e.Got)
}

// Expect consumes the next event into event and fails unless it has type typ.
func Expect(src EventSource, typ EventType, event *Event) error {
	next, err := src.Peek()
	if err != nil {
		return unexpectedEOF(err, typ)
	}
	if next.Type != typ {
		return &UnexpectedEventError{Mark: next.StartMark, Expected: typ, Got: next.Type}
	}
	if event == nil {
		event = &Event{}
	}
	return src.Parse(event)
}

// Accept reports whether the next event has type typ, without consuming it.
// An exhausted source accepts nothing.
func Accept(src EventSource, typ EventType) (bool, error) {
	next, err := src.Peek()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return next.Type == typ, nil
}

// TryConsume consumes the next event into event if it has type typ.
func TryConsume(src EventSource, typ EventType, event *Event) (bool, error) {
	ok, err := Accept(src, typ)
	if err != nil || !ok {
		return false, err
	}
	if event == nil {
		event = &Event{}
	}
	if err := src.Parse(event); err != nil {
		return false, err
	}
	return true, nil
}

// SkipSubtree discards the next node: a scalar or alias, or a collection
// start and everything through its matching end. Nothing is retained.
func SkipSubtree(src EventSource) error {
	next, err := src.Peek()
	if err != nil {
		return unexpectedEOF(err, SCALAR_EVENT)
	}
	if !next.IsNodeStart() {
		return &UnexpectedEventError{Mark: next.StartMark, Expected: SCALAR_EVENT, Got: next.Type}
	}
	var event Event
	depth := 0
	for {
		if err := src.Parse(&event); err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		depth += event.NestingIncrease()
		if depth == 0 {
			return nil
		}
	}
}

func unexpectedEOF(err error, typ EventType) error {
	if err == io.EOF {
		return fmt.Errorf("yaml: expected %s, but the event stream ended: %w", typ, io.ErrUnexpectedEOF)
	}
	return err
}
