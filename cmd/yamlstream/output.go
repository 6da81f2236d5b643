// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Record output shared by the token, event and node modes. Records are
// written as a YAML sequence of mappings through the module's own emitter.

package main

import (
	"fmt"
	"io"
	"strconv"

	"go.yaml.in/yamlstream"
)

// field is one key of a record. Its value is a string, a bool, an int or
// a []record for nested content.
type field struct {
	key   string
	value any
}

// record is an ordered mapping.
type record []field

// add appends a field, dropping empty strings and nil content.
func (r record) add(key string, value any) record {
	switch v := value.(type) {
	case string:
		if v == "" {
			return r
		}
	case []record:
		if v == nil {
			return r
		}
	}
	return append(r, field{key, value})
}

func (r record) nested() bool {
	for _, f := range r {
		if _, ok := f.value.([]record); ok {
			return true
		}
	}
	return false
}

// recordWriter writes records as the items of one block sequence.
type recordWriter struct {
	emitter *yamlstream.Emitter
	flow    bool
}

// newRecordWriter starts the output. With flow set, records without
// nested content are written on one line each.
func newRecordWriter(w io.Writer, flow bool) (*recordWriter, error) {
	emitter, err := yamlstream.NewEmitter(w)
	if err != nil {
		return nil, err
	}
	rw := &recordWriter{emitter: emitter, flow: flow}
	err = rw.emit(
		yamlstream.NewStreamStartEvent(),
		yamlstream.NewDocumentStartEvent(nil, nil, true),
		yamlstream.NewSequenceStartEvent("", "", true, yamlstream.BlockSequenceStyle),
	)
	if err != nil {
		return nil, err
	}
	return rw, nil
}

func (rw *recordWriter) emit(events ...yamlstream.Event) error {
	for i := range events {
		if err := rw.emitter.Emit(&events[i]); err != nil {
			return err
		}
	}
	return nil
}

func (rw *recordWriter) write(r record) error {
	style := yamlstream.BlockMappingStyle
	if rw.flow && !r.nested() {
		style = yamlstream.FlowMappingStyle
	}
	if err := rw.emit(yamlstream.NewMappingStartEvent("", "", true, style)); err != nil {
		return err
	}
	for _, f := range r {
		if err := rw.emit(strScalar(f.key)); err != nil {
			return err
		}
		if err := rw.value(f.value); err != nil {
			return err
		}
	}
	return rw.emit(yamlstream.NewMappingEndEvent())
}

func (rw *recordWriter) value(value any) error {
	switch v := value.(type) {
	case string:
		return rw.emit(strScalar(v))
	case bool:
		return rw.emit(yamlstream.NewScalarEvent("", yamlstream.BoolTag, strconv.FormatBool(v), true, false, yamlstream.PlainStyle))
	case int:
		return rw.emit(yamlstream.NewScalarEvent("", yamlstream.IntTag, strconv.Itoa(v), true, false, yamlstream.PlainStyle))
	case []record:
		if err := rw.emit(yamlstream.NewSequenceStartEvent("", "", true, yamlstream.BlockSequenceStyle)); err != nil {
			return err
		}
		for _, r := range v {
			if err := rw.write(r); err != nil {
				return err
			}
		}
		return rw.emit(yamlstream.NewSequenceEndEvent())
	}
	return fmt.Errorf("unsupported record value %T", value)
}

// close ends the sequence and flushes the output.
func (rw *recordWriter) close() error {
	err := rw.emit(
		yamlstream.NewSequenceEndEvent(),
		yamlstream.NewDocumentEndEvent(true),
		yamlstream.NewStreamEndEvent(),
	)
	if err != nil {
		return err
	}
	return rw.emitter.Flush()
}

// strScalar is a string scalar. The emitter quotes it when the plain text
// would read back as another type.
func strScalar(s string) yamlstream.Event {
	return yamlstream.NewScalarEvent("", yamlstream.StrTag, s, true, true, yamlstream.PlainStyle)
}

// formatPos renders a start and end mark with 1-based columns.
func formatPos(start, end yamlstream.Mark) string {
	switch {
	case start == end:
		return fmt.Sprintf("%d:%d", start.Line, start.Column+1)
	case start.Line == end.Line:
		return fmt.Sprintf("%d:%d-%d", start.Line, start.Column+1, end.Column+1)
	}
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Column+1, end.Line, end.Column+1)
}
