// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Schema-driven tag resolution over an event stream.

package libyaml

import (
	"io"
	"log/slog"
)

// SchemaResolver decorates an EventSource and fills in the tag of every
// scalar, sequence and mapping event whose tag is empty or "!". Specific
// tags pass through unchanged.
type SchemaResolver struct {
	src    EventSource
	schema *Schema
	logger *slog.Logger

	// Start events of the open collections, outermost first.
	path []*Event

	peeked     Event
	has_peeked bool
	err        error
}

// NewSchemaResolver returns a resolver reading from src. A nil schema means
// the non-strict core schema.
func NewSchemaResolver(src EventSource, schema *Schema) *SchemaResolver {
	if schema == nil {
		schema = CoreSchema(false)
	}
	return &SchemaResolver{src: src, schema: schema}
}

// NewSchemaResolverWithOptions returns a resolver using the schema and
// logger from opts.
func NewSchemaResolverWithOptions(src EventSource, opts *Options) *SchemaResolver {
	r := NewSchemaResolver(src, opts.Schema)
	r.SetLogger(opts.Logger)
	return r
}

// SetLogger sets the logger for resolution traces.
func (r *SchemaResolver) SetLogger(logger *slog.Logger) {
	if logger == nil {
		r.logger = nil
		return
	}
	r.logger = logger.With(slog.String("component", "resolver"), slog.String("schema", r.schema.String()))
}

// Schema returns the schema in use.
func (r *SchemaResolver) Schema() *Schema {
	return r.schema
}

// Peek returns the next resolved event without consuming it.
func (r *SchemaResolver) Peek() (*Event, error) {
	if r.has_peeked {
		return &r.peeked, nil
	}
	if r.err != nil {
		return nil, r.err
	}
	if err := r.next(&r.peeked); err != nil {
		return nil, err
	}
	r.has_peeked = true
	return &r.peeked, nil
}

// Parse consumes the next resolved event into event.
func (r *SchemaResolver) Parse(event *Event) error {
	if r.has_peeked {
		*event = r.peeked
		r.has_peeked = false
		r.peeked = Event{}
	} else {
		if r.err != nil {
			return r.err
		}
		if err := r.next(event); err != nil {
			return err
		}
	}
	r.track(event)
	return nil
}

func (r *SchemaResolver) next(event *Event) error {
	if err := r.src.Parse(event); err != nil {
		if err != io.EOF {
			r.err = err
		}
		return err
	}
	switch event.Type {
	case SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT:
	default:
		return nil
	}
	if !event.Tag.IsNonSpecific() {
		return nil
	}
	tag, ok := r.schema.ResolveNonSpecific(event, r.path)
	if !ok {
		r.err = &SemanticError{Mark: event.StartMark, Value: event.Value, Err: ErrUnresolved}
		if r.logger != nil {
			r.logger.Debug("unresolved scalar", slog.String("value", event.Value), slog.String("mark", event.StartMark.String()))
		}
		return r.err
	}
	if r.logger != nil {
		r.logger.Debug("resolved",
			slog.String("event", event.Type.String()),
			slog.String("tag", tag.Short()),
			slog.String("mark", event.StartMark.String()))
	}
	event.Tag = tag
	return nil
}

// track maintains the collection path as events are consumed.
func (r *SchemaResolver) track(event *Event) {
	switch event.Type {
	case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		start := *event
		r.path = append(r.path, &start)
	case SEQUENCE_END_EVENT, MAPPING_END_EVENT:
		if len(r.path) > 0 {
			r.path = r.path[:len(r.path)-1]
		}
	}
}

// ValueOf converts a resolved scalar event to its Go value.
func (r *SchemaResolver) ValueOf(event *Event) (any, error) {
	v, err := r.schema.Value(event.Tag, event.Value)
	if err != nil {
		if serr, ok := err.(*SemanticError); ok {
			serr.Mark = event.StartMark
		}
		return nil, err
	}
	return v, nil
}
