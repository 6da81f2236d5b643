// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Core types of the streaming pipeline.
// Defines Mark, Token, Event, the node styles and the tag/anchor names shared
// by the scanner, parser, buffers, resolver and emitter.

package libyaml

import (
	"fmt"
	"strings"
)

// VersionDirective holds the %YAML directive data.
type VersionDirective struct {
	Major int8 // The major version number.
	Minor int8 // The minor version number.
}

func (v VersionDirective) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// TagDirective holds the %TAG directive data.
type TagDirective struct {
	Handle string // The tag handle, e.g. "!e!".
	Prefix string // The tag prefix, e.g. "tag:example.com,2000:".
}

// defaultTagDirectives are implicitly present in every document.
var defaultTagDirectives = []TagDirective{
	{Handle: "!", Prefix: "!"},
	{Handle: "!!", Prefix: "tag:yaml.org,2002:"},
}

type LineBreak int

// Line break types.
const (
	// Let the emitter choose the break type.
	ANY_BREAK LineBreak = iota

	CR_BREAK   // Use CR for line breaks (Mac style).
	LN_BREAK   // Use LN for line breaks (Unix style).
	CRLN_BREAK // Use CR LN for line breaks (DOS style).
)

type QuoteStyle int

// Quote style types for required quoting.
const (
	QuoteDouble QuoteStyle = iota // Prefer double quotes when quoting is required.
	QuoteSingle                   // Prefer single quotes when quoting is required.
)

// ScalarStyle returns the scalar style used for this quote preference.
func (q QuoteStyle) ScalarStyle() ScalarStyle {
	if q == QuoteSingle {
		return SINGLE_QUOTED_SCALAR_STYLE
	}
	return DOUBLE_QUOTED_SCALAR_STYLE
}

// Mark holds the pointer position.
type Mark struct {
	Index  int // The position index, in characters.
	Line   int // The position line (1-indexed).
	Column int // The position column (0-indexed internally, displayed as 1-indexed).
}

func (m Mark) String() string {
	var builder strings.Builder
	if m.Line == 0 {
		return "<unknown position>"
	}

	fmt.Fprintf(&builder, "line %d", m.Line)
	if m.Column != 0 {
		fmt.Fprintf(&builder, ", column %d", m.Column+1)
	}

	return builder.String()
}

// TagName identifies the type of a node. The empty name means the tag is
// not resolved yet.
type TagName string

// IsEmpty reports whether the tag is unresolved.
func (t TagName) IsEmpty() bool { return t == "" }

// IsNonSpecific reports whether the tag still has to be resolved by a
// schema. The "!" tag forces the node to be a string, sequence or mapping
// and is non-specific as well.
func (t TagName) IsNonSpecific() bool { return t == "" || t == "!" }

// Short returns the tag with the standard prefix replaced by "!!".
func (t TagName) Short() string {
	if s, ok := strings.CutPrefix(string(t), coreTagPrefix); ok {
		return "!!" + s
	}
	return string(t)
}

// AnchorName names an anchored node. The empty name means no anchor.
type AnchorName string

// IsEmpty reports whether there is no anchor.
func (a AnchorName) IsEmpty() bool { return a == "" }

// Node Styles

type styleInt int8

// Style is the style of any node kind, as carried by an event.
type Style styleInt

type ScalarStyle styleInt

// Scalar styles.
const (
	// Let the emitter choose the style.
	ANY_SCALAR_STYLE ScalarStyle = 0

	PLAIN_SCALAR_STYLE         ScalarStyle = 1 << iota // The plain scalar style.
	SINGLE_QUOTED_SCALAR_STYLE                         // The single-quoted scalar style.
	DOUBLE_QUOTED_SCALAR_STYLE                         // The double-quoted scalar style.
	LITERAL_SCALAR_STYLE                               // The literal scalar style.
	FOLDED_SCALAR_STYLE                                // The folded scalar style.
)

// String returns a string representation of a [ScalarStyle].
func (style ScalarStyle) String() string {
	switch style {
	case PLAIN_SCALAR_STYLE:
		return "Plain"
	case SINGLE_QUOTED_SCALAR_STYLE:
		return "Single"
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return "Double"
	case LITERAL_SCALAR_STYLE:
		return "Literal"
	case FOLDED_SCALAR_STYLE:
		return "Folded"
	default:
		return "Any"
	}
}

type SequenceStyle styleInt

// Sequence styles.
const (
	// Let the emitter choose the style.
	ANY_SEQUENCE_STYLE SequenceStyle = iota

	BLOCK_SEQUENCE_STYLE // The block sequence style.
	FLOW_SEQUENCE_STYLE  // The flow sequence style.
)

type MappingStyle styleInt

// Mapping styles.
const (
	// Let the emitter choose the style.
	ANY_MAPPING_STYLE MappingStyle = iota

	BLOCK_MAPPING_STYLE // The block mapping style.
	FLOW_MAPPING_STYLE  // The flow mapping style.
)

var collectionStyleNames = []string{"Any", "Block", "Flow"}

func (style SequenceStyle) String() string { return collectionStyleNames[style] }
func (style MappingStyle) String() string  { return collectionStyleNames[style] }

// Tokens

type TokenType int

// Token types.
const (
	// An empty token.
	NO_TOKEN TokenType = iota

	STREAM_START_TOKEN // A STREAM-START token.
	STREAM_END_TOKEN   // A STREAM-END token.

	VERSION_DIRECTIVE_TOKEN // A VERSION-DIRECTIVE token.
	TAG_DIRECTIVE_TOKEN     // A TAG-DIRECTIVE token.
	DOCUMENT_START_TOKEN    // A DOCUMENT-START token.
	DOCUMENT_END_TOKEN      // A DOCUMENT-END token.

	BLOCK_SEQUENCE_START_TOKEN // A BLOCK-SEQUENCE-START token.
	BLOCK_MAPPING_START_TOKEN  // A BLOCK-MAPPING-START token.
	BLOCK_END_TOKEN            // A BLOCK-END token.

	FLOW_SEQUENCE_START_TOKEN // A FLOW-SEQUENCE-START token.
	FLOW_SEQUENCE_END_TOKEN   // A FLOW-SEQUENCE-END token.
	FLOW_MAPPING_START_TOKEN  // A FLOW-MAPPING-START token.
	FLOW_MAPPING_END_TOKEN    // A FLOW-MAPPING-END token.

	BLOCK_ENTRY_TOKEN // A BLOCK-ENTRY token.
	FLOW_ENTRY_TOKEN  // A FLOW-ENTRY token.
	KEY_TOKEN         // A KEY token.
	VALUE_TOKEN       // A VALUE token.

	ALIAS_TOKEN  // An ALIAS token.
	ANCHOR_TOKEN // An ANCHOR token.
	TAG_TOKEN    // A TAG token.
	SCALAR_TOKEN // A SCALAR token.
)

var tokenStrings = []string{
	NO_TOKEN:                   "NO_TOKEN",
	STREAM_START_TOKEN:         "STREAM_START_TOKEN",
	STREAM_END_TOKEN:           "STREAM_END_TOKEN",
	VERSION_DIRECTIVE_TOKEN:    "VERSION_DIRECTIVE_TOKEN",
	TAG_DIRECTIVE_TOKEN:        "TAG_DIRECTIVE_TOKEN",
	DOCUMENT_START_TOKEN:       "DOCUMENT_START_TOKEN",
	DOCUMENT_END_TOKEN:         "DOCUMENT_END_TOKEN",
	BLOCK_SEQUENCE_START_TOKEN: "BLOCK_SEQUENCE_START_TOKEN",
	BLOCK_MAPPING_START_TOKEN:  "BLOCK_MAPPING_START_TOKEN",
	BLOCK_END_TOKEN:            "BLOCK_END_TOKEN",
	FLOW_SEQUENCE_START_TOKEN:  "FLOW_SEQUENCE_START_TOKEN",
	FLOW_SEQUENCE_END_TOKEN:    "FLOW_SEQUENCE_END_TOKEN",
	FLOW_MAPPING_START_TOKEN:   "FLOW_MAPPING_START_TOKEN",
	FLOW_MAPPING_END_TOKEN:     "FLOW_MAPPING_END_TOKEN",
	BLOCK_ENTRY_TOKEN:          "BLOCK_ENTRY_TOKEN",
	FLOW_ENTRY_TOKEN:           "FLOW_ENTRY_TOKEN",
	KEY_TOKEN:                  "KEY_TOKEN",
	VALUE_TOKEN:                "VALUE_TOKEN",
	ALIAS_TOKEN:                "ALIAS_TOKEN",
	ANCHOR_TOKEN:               "ANCHOR_TOKEN",
	TAG_TOKEN:                  "TAG_TOKEN",
	SCALAR_TOKEN:               "SCALAR_TOKEN",
}

func (tt TokenType) String() string {
	if tt < 0 || int(tt) >= len(tokenStrings) {
		return "<unknown token>"
	}
	return tokenStrings[tt]
}

// Token holds information about a scanning token.
type Token struct {
	// The token type.
	Type TokenType

	// The start/end of the token.
	StartMark, EndMark Mark

	// The alias/anchor/scalar Value or tag/tag directive handle
	// (for ALIAS_TOKEN, ANCHOR_TOKEN, SCALAR_TOKEN, TAG_TOKEN, TAG_DIRECTIVE_TOKEN).
	Value string

	// The tag Suffix (for TAG_TOKEN).
	Suffix string

	// The tag directive Prefix (for TAG_DIRECTIVE_TOKEN).
	Prefix string

	// The scalar Style (for SCALAR_TOKEN).
	Style ScalarStyle

	// The version directive Major/Minor (for VERSION_DIRECTIVE_TOKEN).
	Major, Minor int8
}

// NestingIncrease is +1 for tokens that open a nesting level, -1 for tokens
// that close one and 0 for everything else.
func (t *Token) NestingIncrease() int {
	switch t.Type {
	case STREAM_START_TOKEN, BLOCK_SEQUENCE_START_TOKEN, BLOCK_MAPPING_START_TOKEN,
		FLOW_SEQUENCE_START_TOKEN, FLOW_MAPPING_START_TOKEN:
		return 1
	case STREAM_END_TOKEN, BLOCK_END_TOKEN, FLOW_SEQUENCE_END_TOKEN, FLOW_MAPPING_END_TOKEN:
		return -1
	}
	return 0
}

// Events

type EventType int8

// Event types.
const (
	// An empty event.
	NO_EVENT EventType = iota

	STREAM_START_EVENT   // A STREAM-START event.
	STREAM_END_EVENT     // A STREAM-END event.
	DOCUMENT_START_EVENT // A DOCUMENT-START event.
	DOCUMENT_END_EVENT   // A DOCUMENT-END event.
	ALIAS_EVENT          // An ALIAS event.
	SCALAR_EVENT         // A SCALAR event.
	SEQUENCE_START_EVENT // A SEQUENCE-START event.
	SEQUENCE_END_EVENT   // A SEQUENCE-END event.
	MAPPING_START_EVENT  // A MAPPING-START event.
	MAPPING_END_EVENT    // A MAPPING-END event.
)

var eventStrings = []string{
	NO_EVENT:             "none",
	STREAM_START_EVENT:   "stream start",
	STREAM_END_EVENT:     "stream end",
	DOCUMENT_START_EVENT: "document start",
	DOCUMENT_END_EVENT:   "document end",
	ALIAS_EVENT:          "alias",
	SCALAR_EVENT:         "scalar",
	SEQUENCE_START_EVENT: "sequence start",
	SEQUENCE_END_EVENT:   "sequence end",
	MAPPING_START_EVENT:  "mapping start",
	MAPPING_END_EVENT:    "mapping end",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventStrings) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventStrings[e]
}

// Event holds information about a parsing or emitting event.
type Event struct {
	// The event type.
	Type EventType

	// The start and end of the event.
	StartMark, EndMark Mark

	// The version directive (for DOCUMENT_START_EVENT).
	Version *VersionDirective

	// The list of tag directives (for DOCUMENT_START_EVENT).
	TagDirectives []TagDirective

	// The Anchor (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT, ALIAS_EVENT).
	Anchor AnchorName

	// The Tag (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Tag TagName

	// The scalar Value (for SCALAR_EVENT).
	Value string

	// Is the document start/end indicator Implicit, or the tag optional?
	// (for DOCUMENT_START_EVENT, DOCUMENT_END_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT, SCALAR_EVENT).
	Implicit bool

	// Is the tag optional for any non-plain style? (for SCALAR_EVENT).
	QuotedImplicit bool

	// The Style (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Style Style
}

func (e *Event) ScalarStyle() ScalarStyle     { return ScalarStyle(e.Style) }
func (e *Event) SequenceStyle() SequenceStyle { return SequenceStyle(e.Style) }
func (e *Event) MappingStyle() MappingStyle   { return MappingStyle(e.Style) }

// NestingIncrease is +1 for start events, -1 for end events and 0 for
// scalars and aliases. The running sum over a well formed stream never drops
// below zero and is zero after STREAM-END.
func (e *Event) NestingIncrease() int {
	switch e.Type {
	case STREAM_START_EVENT, DOCUMENT_START_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		return 1
	case STREAM_END_EVENT, DOCUMENT_END_EVENT, SEQUENCE_END_EVENT, MAPPING_END_EVENT:
		return -1
	}
	return 0
}

// IsNodeStart reports whether the event begins a node.
func (e *Event) IsNodeStart() bool {
	switch e.Type {
	case SCALAR_EVENT, ALIAS_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		return true
	}
	return false
}

// Nodes

const coreTagPrefix = "tag:yaml.org,2002:"

const (
	NULL_TAG      TagName = coreTagPrefix + "null"      // The tag !!null with the only possible value: null.
	BOOL_TAG      TagName = coreTagPrefix + "bool"      // The tag !!bool with the values: true and false.
	STR_TAG       TagName = coreTagPrefix + "str"       // The tag !!str for string values.
	INT_TAG       TagName = coreTagPrefix + "int"       // The tag !!int for integer values.
	FLOAT_TAG     TagName = coreTagPrefix + "float"     // The tag !!float for float values.
	TIMESTAMP_TAG TagName = coreTagPrefix + "timestamp" // The tag !!timestamp for date and time values.

	SEQ_TAG TagName = coreTagPrefix + "seq" // The tag !!seq is used to denote sequences.
	MAP_TAG TagName = coreTagPrefix + "map" // The tag !!map is used to denote mapping.

	BINARY_TAG TagName = coreTagPrefix + "binary"
	MERGE_TAG  TagName = coreTagPrefix + "merge"

	DEFAULT_SCALAR_TAG   = STR_TAG // The default scalar tag is !!str.
	DEFAULT_SEQUENCE_TAG = SEQ_TAG // The default sequence tag is !!seq.
	DEFAULT_MAPPING_TAG  = MAP_TAG // The default mapping tag is !!map.
)
