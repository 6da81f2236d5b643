// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// High-level API helpers for parser and emitter initialization and
// configuration.
// Provides the event constructors used by producers of emitter input.

package libyaml

import (
	"io"
)

// NewParserWithOptions creates a parser over a byte slice and applies the
// logger from opts.
func NewParserWithOptions(input []byte, opts *Options) *Parser {
	parser := NewParser()
	parser.SetInputString(input)
	if opts != nil {
		parser.SetLogger(opts.Logger)
	}
	return &parser
}

// NewEventSourceWithOptions returns the reading pipeline for input: a
// parser, followed by merge key expansion when opts.MergeKeys is set, and
// schema tag resolution.
func NewEventSourceWithOptions(input []byte, opts *Options) EventSource {
	return newPipeline(NewParserWithOptions(input, opts), opts)
}

// NewReaderEventSourceWithOptions is NewEventSourceWithOptions reading its
// input from r.
func NewReaderEventSourceWithOptions(r io.Reader, opts *Options) EventSource {
	parser := NewParser()
	parser.SetInputReader(r)
	if opts != nil {
		parser.SetLogger(opts.Logger)
	}
	return newPipeline(&parser, opts)
}

func newPipeline(src EventSource, opts *Options) EventSource {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MergeKeys {
		merge := NewMergeParser(src)
		merge.SetLogger(opts.Logger)
		src = merge
	}
	return NewSchemaResolverWithOptions(src, opts)
}

// Delete a parser object.
func (parser *Parser) Delete() {
	*parser = Parser{}
}

// NewEmitter creates a new emitter object.
func NewEmitter() Emitter {
	return Emitter{
		buffer:         make([]byte, output_buffer_size),
		states:         make([]EmitterState, 0, initial_stack_size),
		events:         make([]Event, 0, initial_queue_size),
		best_width:     -1,
		max_simple_key: default_max_simple_key_length,
	}
}

// NewEmitterWithOptions creates an emitter writing to w, configured from
// opts. A nil opts leaves the libyaml defaults in place.
func NewEmitterWithOptions(w io.Writer, opts *Options) *Emitter {
	emitter := NewEmitter()
	emitter.SetOutputWriter(w)
	if opts != nil {
		emitter.Configure(opts)
	}
	return &emitter
}

// Delete an emitter object.
func (emitter *Emitter) Delete() {
	*emitter = Emitter{}
}

// Configure copies the emitter settings out of opts.
func (emitter *Emitter) Configure(opts *Options) {
	emitter.SetIndent(opts.Indent)
	emitter.SetWidth(opts.LineWidth)
	emitter.SetUnicode(opts.Unicode)
	emitter.SetCanonical(opts.Canonical)
	emitter.SetLineBreak(opts.LineBreak)
	emitter.compact = opts.Compact
	emitter.CompactSequenceIndent = opts.CompactSeqIndent
	emitter.explicit_start = opts.ExplicitStart
	emitter.explicit_end = opts.ExplicitEnd
	emitter.quote_preference = opts.QuotePreference
	emitter.schema = opts.Schema
	if opts.MaxSimpleKeyLength > 0 {
		emitter.max_simple_key = opts.MaxSimpleKeyLength
	}
	emitter.SetLogger(opts.Logger)
}

// SetCanonical sets the canonical output style.
func (emitter *Emitter) SetCanonical(canonical bool) {
	emitter.canonical = canonical
}

// SetIndent sets the indentation increment.
func (emitter *Emitter) SetIndent(indent int) {
	if indent < 2 || indent > 9 {
		indent = 2
	}
	emitter.BestIndent = indent
}

// SetWidth sets the preferred line width.
func (emitter *Emitter) SetWidth(width int) {
	if width < 0 {
		width = -1
	}
	emitter.best_width = width
}

// SetUnicode sets if unescaped non-ASCII characters are allowed.
func (emitter *Emitter) SetUnicode(unicode bool) {
	emitter.unicode = unicode
}

// SetLineBreak sets the preferred line break character.
func (emitter *Emitter) SetLineBreak(line_break LineBreak) {
	emitter.line_break = line_break
}

// SetSchema sets the schema used to decide when a plain scalar would be
// read back as a different type.
func (emitter *Emitter) SetSchema(schema *Schema) {
	emitter.schema = schema
}

// NewStreamStartEvent creates a new STREAM-START event.
func NewStreamStartEvent() Event {
	return Event{
		Type: STREAM_START_EVENT,
	}
}

// NewStreamEndEvent creates a new STREAM-END event.
func NewStreamEndEvent() Event {
	return Event{
		Type: STREAM_END_EVENT,
	}
}

// NewDocumentStartEvent creates a new DOCUMENT-START event.
func NewDocumentStartEvent(version_directive *VersionDirective, tag_directives []TagDirective, implicit bool) Event {
	return Event{
		Type:          DOCUMENT_START_EVENT,
		Version:       version_directive,
		TagDirectives: tag_directives,
		Implicit:      implicit,
	}
}

// NewDocumentEndEvent creates a new DOCUMENT-END event.
func NewDocumentEndEvent(implicit bool) Event {
	return Event{
		Type:     DOCUMENT_END_EVENT,
		Implicit: implicit,
	}
}

// NewAliasEvent creates a new ALIAS event.
func NewAliasEvent(anchor AnchorName) Event {
	return Event{
		Type:   ALIAS_EVENT,
		Anchor: anchor,
	}
}

// NewScalarEvent creates a new SCALAR event.
func NewScalarEvent(anchor AnchorName, tag TagName, value string, plain_implicit, quoted_implicit bool, style ScalarStyle) Event {
	return Event{
		Type:           SCALAR_EVENT,
		Anchor:         anchor,
		Tag:            tag,
		Value:          value,
		Implicit:       plain_implicit,
		QuotedImplicit: quoted_implicit,
		Style:          Style(style),
	}
}

// NewSequenceStartEvent creates a new SEQUENCE-START event.
func NewSequenceStartEvent(anchor AnchorName, tag TagName, implicit bool, style SequenceStyle) Event {
	return Event{
		Type:     SEQUENCE_START_EVENT,
		Anchor:   anchor,
		Tag:      tag,
		Implicit: implicit,
		Style:    Style(style),
	}
}

// NewSequenceEndEvent creates a new SEQUENCE-END event.
func NewSequenceEndEvent() Event {
	return Event{
		Type: SEQUENCE_END_EVENT,
	}
}

// NewMappingStartEvent creates a new MAPPING-START event.
func NewMappingStartEvent(anchor AnchorName, tag TagName, implicit bool, style MappingStyle) Event {
	return Event{
		Type:     MAPPING_START_EVENT,
		Anchor:   anchor,
		Tag:      tag,
		Implicit: implicit,
		Style:    Style(style),
	}
}

// NewMappingEndEvent creates a new MAPPING-END event.
func NewMappingEndEvent() Event {
	return Event{
		Type: MAPPING_END_EVENT,
	}
}

// Delete an event object.
func (e *Event) Delete() {
	*e = Event{}
}
