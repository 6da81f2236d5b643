// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package yamlstream implements a streaming YAML 1.2 pipeline for the Go
// language: a scanner, a parser producing events, schema based tag
// resolution, node buffering and an emitter turning events back into text.
//
// The package works on events rather than on Go structs. A caller that
// needs generic values can use [Load], or [Compose] to get the node graph
// of every document.
//
// This file contains:
// - Option presets (Compact, Pretty, Canonical)
// - Options API (WithIndent, WithSchema, etc.)
// - Type and constant re-exports from internal/libyaml

package yamlstream

import (
	"go.yaml.in/yamlstream/internal/libyaml"
)

//-----------------------------------------------------------------------------
// Option presets
//-----------------------------------------------------------------------------

// Usage:
//	yamlstream.Format(data, yamlstream.Compact)
//	yamlstream.Format(data, yamlstream.Pretty, yamlstream.WithIndent(2))

// Compact writes every collection in flow style on a single line.
var Compact = Options(
	WithCompact(),
	WithLineWidth(-1),
)

// Pretty writes block collections with four space indentation, an explicit
// document start and single quotes where quoting is needed.
var Pretty = Options(
	WithIndent(4),
	WithCompactSeqIndent(false),
	WithLineWidth(80),
	WithUnicode(true),
	WithExplicitStart(),
	WithQuotePreference(QuoteSingle),
)

// Canonical writes the canonical form: explicit tags on every node, flow
// collections, double quoted scalars and ASCII only output.
var Canonical = Options(
	WithCanonical(),
	WithUnicode(false),
)

//-----------------------------------------------------------------------------
// Options
//-----------------------------------------------------------------------------

// Option configures the scanner, parser, resolver, buffers and emitter.
type Option = libyaml.Option

// Option configuration functions
var (
	// WithIndent sets the number of spaces used for each indentation level.
	// Valid values are 2-9.
	WithIndent = libyaml.WithIndent

	// WithLineWidth sets the preferred line width. -1 means unlimited.
	WithLineWidth = libyaml.WithLineWidth

	// WithUnicode controls whether non-ASCII characters are written as is
	// or escaped in double quoted scalars.
	// When called without arguments, defaults to true.
	WithUnicode = libyaml.WithUnicode

	// WithCanonical enables the canonical output form.
	// When called without arguments, defaults to true.
	WithCanonical = libyaml.WithCanonical

	// WithLineBreak sets the line ending style.
	WithLineBreak = libyaml.WithLineBreak

	// WithExplicitStart writes "---" before every document.
	// When called without arguments, defaults to true.
	WithExplicitStart = libyaml.WithExplicitStart

	// WithExplicitEnd writes "..." after every document.
	// When called without arguments, defaults to true.
	WithExplicitEnd = libyaml.WithExplicitEnd

	// WithCompact renders every collection in flow style.
	// When called without arguments, defaults to true.
	WithCompact = libyaml.WithCompact

	// WithCompactSeqIndent configures whether the sequence indicator '- ' is
	// considered part of the indentation of a sequence inside a mapping.
	//
	// If compact is true, '- ' is treated as part of the indentation.
	// If compact is false, '- ' is not treated as part of the indentation.
	// When called without arguments, defaults to true.
	WithCompactSeqIndent = libyaml.WithCompactSeqIndent

	// WithQuotePreference selects the quote style used when a scalar that
	// was requested plain must be quoted:
	//   - QuoteDouble: use double quotes (the default)
	//   - QuoteSingle: use single quotes
	WithQuotePreference = libyaml.WithQuotePreference

	// WithMaxSimpleKeyLength sets how long a mapping key may be before it
	// is written in the explicit "? key" form. The default is 128.
	WithMaxSimpleKeyLength = libyaml.WithMaxSimpleKeyLength

	// WithSchema sets the schema used to resolve tags while reading and to
	// decide quoting while writing.
	WithSchema = libyaml.WithSchema

	// WithSchemaName selects a built-in schema: failsafe, json, core or
	// yaml1.1, each optionally followed by "-strict".
	WithSchemaName = libyaml.WithSchemaName

	// WithMaxDepth limits the nesting depth of buffered nodes. -1 means
	// unlimited.
	WithMaxDepth = libyaml.WithMaxDepth

	// WithMaxLength limits the number of events of a buffered node. -1
	// means unlimited.
	WithMaxLength = libyaml.WithMaxLength

	// WithMergeKeys enables "<<" merge key expansion while reading.
	// When called without arguments, defaults to true.
	WithMergeKeys = libyaml.WithMergeKeys

	// WithLogger sets the slog logger receiving debug traces. A nil logger
	// disables them.
	WithLogger = libyaml.WithLogger
)

// Options combines multiple options into a single Option.
// This is useful for creating option presets or layering custom options
// over a preset.
//
// Example:
//
//	opts := yamlstream.Options(yamlstream.Pretty, yamlstream.WithIndent(3))
//	out, err := yamlstream.Format(data, opts)
func Options(opts ...Option) Option {
	return libyaml.CombineOptions(opts...)
}

// OptsYAML parses a YAML mapping of option settings and returns an Option
// that can be combined with other options using Options().
//
// The mapping can contain any of these keys:
// - indent (int)
// - line-width (int)
// - unicode (bool)
// - canonical (bool)
// - line-break (string: ln, cr, crln)
// - explicit-start (bool)
// - explicit-end (bool)
// - compact (bool)
// - compact-seq-indent (bool)
// - quote (string: double, single)
// - max-simple-key-length (int)
// - schema (string)
// - max-depth (int)
// - max-length (int)
// - merge-keys (bool)
//
// Only the keys present override other options when combined.
//
// Example:
//
//	opts, err := yamlstream.OptsYAML(`
//	  indent: 3
//	  quote: single
//	`)
//	out, err := yamlstream.Format(data, yamlstream.Options(yamlstream.Pretty, opts))
func OptsYAML(yamlStr string) (Option, error) {
	return libyaml.OptsYAML(yamlStr)
}

// ApplyOptions returns the settings obtained by applying opts over the
// defaults.
func ApplyOptions(opts ...Option) (*Settings, error) {
	return libyaml.ApplyOptions(opts...)
}

// Settings holds the resolved configuration.
type Settings = libyaml.Options

//-----------------------------------------------------------------------------
// Type and constant re-exports
//-----------------------------------------------------------------------------

// Pipeline types
type (
	// Scanner turns characters into tokens.
	Scanner = libyaml.Scanner

	// Parser turns tokens into events.
	Parser = libyaml.Parser

	// Emitter turns events into YAML text.
	Emitter = libyaml.Emitter

	// EventSource is the pull interface shared by the parser and every
	// stage decorating it.
	EventSource = libyaml.EventSource

	// SchemaResolver fills in the tags of non-specific nodes.
	SchemaResolver = libyaml.SchemaResolver

	// MergeParser expands "<<" merge keys.
	MergeParser = libyaml.MergeParser

	// ParserBuffer captures the events of one node for replay.
	ParserBuffer = libyaml.ParserBuffer

	// AnchorBuffer is a ParserBuffer over an anchored node that records
	// whether the node refers to itself.
	AnchorBuffer = libyaml.AnchorBuffer

	// Composer builds node graphs from an EventSource.
	Composer = libyaml.Composer

	// Schema maps plain scalars to tags and tagged text to values.
	Schema = libyaml.Schema

	// ValueParser converts scalar text to a value for one tag.
	ValueParser = libyaml.ValueParser
)

// Data types
type (
	Token            = libyaml.Token
	TokenType        = libyaml.TokenType
	Event            = libyaml.Event
	EventType        = libyaml.EventType
	Mark             = libyaml.Mark
	TagName          = libyaml.TagName
	AnchorName       = libyaml.AnchorName
	Style            = libyaml.Style
	ScalarStyle      = libyaml.ScalarStyle
	SequenceStyle    = libyaml.SequenceStyle
	MappingStyle     = libyaml.MappingStyle
	VersionDirective = libyaml.VersionDirective
	TagDirective     = libyaml.TagDirective

	// Document is the node graph of one YAML document. Nodes refer to
	// each other by index, so self referencing anchors need no pointers.
	Document = libyaml.Document
	Node     = libyaml.Node
	Kind     = libyaml.Kind

	// Ref stands in for an alias to a collection still being built when a
	// document is converted to Go values.
	Ref = libyaml.Ref
)

// Error types. All of them can be matched with errors.As.
type (
	MarkedYAMLError      = libyaml.MarkedYAMLError
	ScannerError         = libyaml.ScannerError
	ParserError          = libyaml.ParserError
	ReaderError          = libyaml.ReaderError
	EmitterError         = libyaml.EmitterError
	WriterError          = libyaml.WriterError
	SemanticError        = libyaml.SemanticError
	ResourceLimitError   = libyaml.ResourceLimitError
	UnexpectedEventError = libyaml.UnexpectedEventError
)

// Sentinel errors wrapped by SemanticError.
var (
	ErrUnresolved      = libyaml.ErrUnresolved
	ErrNoMatch         = libyaml.ErrNoMatch
	ErrUnknownTag      = libyaml.ErrUnknownTag
	ErrIntegerOverflow = libyaml.ErrIntegerOverflow
	ErrMergePattern    = libyaml.ErrMergePattern
	ErrUnknownAnchor   = libyaml.ErrUnknownAnchor
)

// Event types.
const (
	StreamStartEvent   = libyaml.STREAM_START_EVENT
	StreamEndEvent     = libyaml.STREAM_END_EVENT
	DocumentStartEvent = libyaml.DOCUMENT_START_EVENT
	DocumentEndEvent   = libyaml.DOCUMENT_END_EVENT
	AliasEvent         = libyaml.ALIAS_EVENT
	ScalarEvent        = libyaml.SCALAR_EVENT
	SequenceStartEvent = libyaml.SEQUENCE_START_EVENT
	SequenceEndEvent   = libyaml.SEQUENCE_END_EVENT
	MappingStartEvent  = libyaml.MAPPING_START_EVENT
	MappingEndEvent    = libyaml.MAPPING_END_EVENT
)

// Token types.
const (
	StreamStartToken        = libyaml.STREAM_START_TOKEN
	StreamEndToken          = libyaml.STREAM_END_TOKEN
	VersionDirectiveToken   = libyaml.VERSION_DIRECTIVE_TOKEN
	TagDirectiveToken       = libyaml.TAG_DIRECTIVE_TOKEN
	DocumentStartToken      = libyaml.DOCUMENT_START_TOKEN
	DocumentEndToken        = libyaml.DOCUMENT_END_TOKEN
	BlockSequenceStartToken = libyaml.BLOCK_SEQUENCE_START_TOKEN
	BlockMappingStartToken  = libyaml.BLOCK_MAPPING_START_TOKEN
	BlockEndToken           = libyaml.BLOCK_END_TOKEN
	FlowSequenceStartToken  = libyaml.FLOW_SEQUENCE_START_TOKEN
	FlowSequenceEndToken    = libyaml.FLOW_SEQUENCE_END_TOKEN
	FlowMappingStartToken   = libyaml.FLOW_MAPPING_START_TOKEN
	FlowMappingEndToken     = libyaml.FLOW_MAPPING_END_TOKEN
	BlockEntryToken         = libyaml.BLOCK_ENTRY_TOKEN
	FlowEntryToken          = libyaml.FLOW_ENTRY_TOKEN
	KeyToken                = libyaml.KEY_TOKEN
	ValueToken              = libyaml.VALUE_TOKEN
	AliasToken              = libyaml.ALIAS_TOKEN
	AnchorToken             = libyaml.ANCHOR_TOKEN
	TagToken                = libyaml.TAG_TOKEN
	ScalarToken             = libyaml.SCALAR_TOKEN
)

// Node styles.
const (
	AnyScalarStyle    = libyaml.ANY_SCALAR_STYLE
	PlainStyle        = libyaml.PLAIN_SCALAR_STYLE
	SingleQuotedStyle = libyaml.SINGLE_QUOTED_SCALAR_STYLE
	DoubleQuotedStyle = libyaml.DOUBLE_QUOTED_SCALAR_STYLE
	LiteralStyle      = libyaml.LITERAL_SCALAR_STYLE
	FoldedStyle       = libyaml.FOLDED_SCALAR_STYLE

	BlockSequenceStyle = libyaml.BLOCK_SEQUENCE_STYLE
	FlowSequenceStyle  = libyaml.FLOW_SEQUENCE_STYLE
	BlockMappingStyle  = libyaml.BLOCK_MAPPING_STYLE
	FlowMappingStyle   = libyaml.FLOW_MAPPING_STYLE
)

// Node kinds.
const (
	ScalarNode   = libyaml.ScalarNode
	SequenceNode = libyaml.SequenceNode
	MappingNode  = libyaml.MappingNode
	AliasNode    = libyaml.AliasNode
)

// Core tags.
const (
	NullTag      = libyaml.NULL_TAG
	BoolTag      = libyaml.BOOL_TAG
	StrTag       = libyaml.STR_TAG
	IntTag       = libyaml.INT_TAG
	FloatTag     = libyaml.FLOAT_TAG
	TimestampTag = libyaml.TIMESTAMP_TAG
	BinaryTag    = libyaml.BINARY_TAG
	MergeTag     = libyaml.MERGE_TAG
	SeqTag       = libyaml.SEQ_TAG
	MapTag       = libyaml.MAP_TAG
)

// Unlimited disables a buffer limit.
const Unlimited = libyaml.Unlimited

// LineBreak represents the line ending style for YAML output.
type LineBreak = libyaml.LineBreak

// Line break constants for different platforms.
const (
	LineBreakLN   = libyaml.LN_BREAK   // Unix-style \n (default)
	LineBreakCR   = libyaml.CR_BREAK   // Old Mac-style \r
	LineBreakCRLN = libyaml.CRLN_BREAK // Windows-style \r\n
)

// QuoteStyle represents the quote style to use when quoting is required.
type QuoteStyle = libyaml.QuoteStyle

// Quote style constants for required quoting.
const (
	QuoteDouble = libyaml.QuoteDouble // Prefer double quotes (default)
	QuoteSingle = libyaml.QuoteSingle // Prefer single quotes
)

// Schemas and event helpers
var (
	FailsafeSchema = libyaml.FailsafeSchema
	JSONSchema     = libyaml.JSONSchema
	CoreSchema     = libyaml.CoreSchema
	YAML11Schema   = libyaml.YAML11Schema
	NewSchema      = libyaml.NewSchema
	SchemaByName   = libyaml.SchemaByName

	// Expect consumes the next event, failing with an
	// *UnexpectedEventError when it is not of the given type.
	Expect = libyaml.Expect

	// Accept reports whether the next event has the given type without
	// consuming it.
	Accept = libyaml.Accept

	// TryConsume consumes the next event only when it has the given type.
	TryConsume = libyaml.TryConsume

	// SkipSubtree consumes one whole node.
	SkipSubtree = libyaml.SkipSubtree

	// FormatEvent writes an event in the yaml-test-suite notation.
	FormatEvent = libyaml.FormatEvent

	NewParserBuffer = libyaml.NewParserBuffer
	NewAnchorBuffer = libyaml.NewAnchorBuffer
	NewMergeParser  = libyaml.NewMergeParser
	NewComposer     = libyaml.NewComposer
	StreamEvents    = libyaml.StreamEvents

	NewStreamStartEvent   = libyaml.NewStreamStartEvent
	NewStreamEndEvent     = libyaml.NewStreamEndEvent
	NewDocumentStartEvent = libyaml.NewDocumentStartEvent
	NewDocumentEndEvent   = libyaml.NewDocumentEndEvent
	NewAliasEvent         = libyaml.NewAliasEvent
	NewScalarEvent        = libyaml.NewScalarEvent
	NewSequenceStartEvent = libyaml.NewSequenceStartEvent
	NewSequenceEndEvent   = libyaml.NewSequenceEndEvent
	NewMappingStartEvent  = libyaml.NewMappingStartEvent
	NewMappingEndEvent    = libyaml.NewMappingEndEvent
)
