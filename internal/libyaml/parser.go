// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Parser stage: Transforms token stream into event stream.
// Implements a recursive-descent parser (LL(1)) following the YAML grammar
// specification.
//
// The parser implements the following grammar:
//
// stream               ::= STREAM-START implicit_document? explicit_document* STREAM-END
// implicit_document    ::= block_node DOCUMENT-END*
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
// block_node_or_indentless_sequence    ::=
//                          ALIAS
//                          | properties (block_content | indentless_block_sequence)?
//                          | block_content
//                          | indentless_block_sequence
// block_node           ::= ALIAS
//                          | properties block_content?
//                          | block_content
// flow_node            ::= ALIAS
//                          | properties flow_content?
//                          | flow_content
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
// block_content        ::= block_collection | flow_collection | SCALAR
// flow_content         ::= flow_collection | SCALAR
// block_collection     ::= block_sequence | block_mapping
// flow_collection      ::= flow_sequence | flow_mapping
// block_sequence       ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
// block_mapping        ::= BLOCK-MAPPING_START
//                          ((KEY block_node_or_indentless_sequence?)?
//                          (VALUE block_node_or_indentless_sequence?)?)*
//                          BLOCK-END
// flow_sequence        ::= FLOW-SEQUENCE-START
//                          (flow_sequence_entry FLOW-ENTRY)*
//                          flow_sequence_entry?
//                          FLOW-SEQUENCE-END
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
// flow_mapping         ::= FLOW-MAPPING-START
//                          (flow_mapping_entry FLOW-ENTRY)*
//                          flow_mapping_entry?
//                          FLOW-MAPPING-END
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?

package libyaml

import (
	"io"
	"log/slog"
	"strings"
)

// ParserState represents the state of the parser.
type ParserState int

// Parser state constants define the different states the parser can be in.
const (
	PARSE_STREAM_START_STATE ParserState = iota

	PARSE_IMPLICIT_DOCUMENT_START_STATE           // Expect the beginning of an implicit document.
	PARSE_DOCUMENT_START_STATE                    // Expect DOCUMENT-START.
	PARSE_DOCUMENT_CONTENT_STATE                  // Expect the content of a document.
	PARSE_DOCUMENT_END_STATE                      // Expect DOCUMENT-END.
	PARSE_BLOCK_NODE_STATE                        // Expect a block node.
	PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE        // Expect the first entry of a block sequence.
	PARSE_BLOCK_SEQUENCE_ENTRY_STATE              // Expect an entry of a block sequence.
	PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE         // Expect an entry of an indentless sequence.
	PARSE_BLOCK_MAPPING_FIRST_KEY_STATE           // Expect the first key of a block mapping.
	PARSE_BLOCK_MAPPING_KEY_STATE                 // Expect a block mapping key.
	PARSE_BLOCK_MAPPING_VALUE_STATE               // Expect a block mapping value.
	PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE         // Expect the first entry of a flow sequence.
	PARSE_FLOW_SEQUENCE_ENTRY_STATE               // Expect an entry of a flow sequence.
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE   // Expect a key of an ordered mapping.
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE // Expect a value of an ordered mapping.
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE   // Expect the and of an ordered mapping entry.
	PARSE_FLOW_MAPPING_FIRST_KEY_STATE            // Expect the first key of a flow mapping.
	PARSE_FLOW_MAPPING_KEY_STATE                  // Expect a key of a flow mapping.
	PARSE_FLOW_MAPPING_VALUE_STATE                // Expect a value of a flow mapping.
	PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE          // Expect an empty value of a flow mapping.
	PARSE_END_STATE                               // Expect nothing.
)

var parserStateNames = [...]string{
	PARSE_STREAM_START_STATE:                      "PARSE_STREAM_START_STATE",
	PARSE_IMPLICIT_DOCUMENT_START_STATE:           "PARSE_IMPLICIT_DOCUMENT_START_STATE",
	PARSE_DOCUMENT_START_STATE:                    "PARSE_DOCUMENT_START_STATE",
	PARSE_DOCUMENT_CONTENT_STATE:                  "PARSE_DOCUMENT_CONTENT_STATE",
	PARSE_DOCUMENT_END_STATE:                      "PARSE_DOCUMENT_END_STATE",
	PARSE_BLOCK_NODE_STATE:                        "PARSE_BLOCK_NODE_STATE",
	PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE:        "PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE",
	PARSE_BLOCK_SEQUENCE_ENTRY_STATE:              "PARSE_BLOCK_SEQUENCE_ENTRY_STATE",
	PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE:         "PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE",
	PARSE_BLOCK_MAPPING_FIRST_KEY_STATE:           "PARSE_BLOCK_MAPPING_FIRST_KEY_STATE",
	PARSE_BLOCK_MAPPING_KEY_STATE:                 "PARSE_BLOCK_MAPPING_KEY_STATE",
	PARSE_BLOCK_MAPPING_VALUE_STATE:               "PARSE_BLOCK_MAPPING_VALUE_STATE",
	PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE:         "PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE",
	PARSE_FLOW_SEQUENCE_ENTRY_STATE:               "PARSE_FLOW_SEQUENCE_ENTRY_STATE",
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE:   "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE",
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE: "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE",
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE:   "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE",
	PARSE_FLOW_MAPPING_FIRST_KEY_STATE:            "PARSE_FLOW_MAPPING_FIRST_KEY_STATE",
	PARSE_FLOW_MAPPING_KEY_STATE:                  "PARSE_FLOW_MAPPING_KEY_STATE",
	PARSE_FLOW_MAPPING_VALUE_STATE:                "PARSE_FLOW_MAPPING_VALUE_STATE",
	PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE:          "PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE",
	PARSE_END_STATE:                               "PARSE_END_STATE",
}

// String returns a string representation of the parser state.
func (ps ParserState) String() string {
	if ps < 0 || int(ps) >= len(parserStateNames) {
		return "<unknown parser state>"
	}
	return parserStateNames[ps]
}

// Parser structure holds all information about the current
// state of the parser.
type Parser struct {
	Scanner

	lastError error

	// Parser stuff

	state          ParserState    // The current parser state.
	states         []ParserState  // The parser states stack.
	marks          []Mark         // The stack of marks.
	tag_directives []TagDirective // The list of TAG directives.

	peeked     Event // The event returned by Peek.
	has_peeked bool  // Is peeked waiting to be consumed?
	done       bool  // Has STREAM-END been consumed?

	logger *slog.Logger
}

// NewParser creates a new parser object.
func NewParser() Parser {
	return Parser{Scanner: NewScanner()}
}

// SetLogger attaches a logger for state traces. A nil logger disables them.
func (parser *Parser) SetLogger(logger *slog.Logger) {
	if logger != nil {
		logger = logger.With(slog.String("component", "parser"))
	}
	parser.logger = logger
}

// Parse gets the next event. After STREAM-END it returns io.EOF.
func (parser *Parser) Parse(event *Event) error {
	if parser.has_peeked {
		*event = parser.peeked
		parser.peeked = Event{}
		parser.has_peeked = false
		parser.done = event.Type == STREAM_END_EVENT
		return nil
	}
	if err := parser.next(event); err != nil {
		return err
	}
	parser.done = event.Type == STREAM_END_EVENT
	return nil
}

// Peek returns the next event without consuming it. The returned event is
// only valid until the next call on the parser.
func (parser *Parser) Peek() (*Event, error) {
	if !parser.has_peeked {
		if err := parser.next(&parser.peeked); err != nil {
			return nil, err
		}
		parser.has_peeked = true
	}
	return &parser.peeked, nil
}

func (parser *Parser) next(event *Event) error {
	// Erase the event object.
	*event = Event{}

	if parser.lastError != nil {
		return parser.lastError
	}

	// No events after the end of the stream or error.
	if parser.done || parser.state == PARSE_END_STATE {
		return io.EOF
	}

	// Generate the next event.
	if err := parser.stateMachine(event); err != nil {
		parser.lastError = err
		if parser.logger != nil {
			parser.logger.Debug("parse failed", slog.String("state", parser.state.String()), slog.Any("error", err))
		}
		return err
	}
	return nil
}

// State dispatcher.
func (parser *Parser) stateMachine(event *Event) error {
	if parser.logger != nil {
		parser.logger.Debug("state", slog.String("state", parser.state.String()), slog.Int("depth", len(parser.states)))
	}

	switch parser.state {
	case PARSE_STREAM_START_STATE:
		return parser.parseStreamStart(event)

	case PARSE_IMPLICIT_DOCUMENT_START_STATE:
		return parser.parseDocumentStart(event, true)

	case PARSE_DOCUMENT_START_STATE:
		return parser.parseDocumentStart(event, false)

	case PARSE_DOCUMENT_CONTENT_STATE:
		return parser.parseDocumentContent(event)

	case PARSE_DOCUMENT_END_STATE:
		return parser.parseDocumentEnd(event)

	case PARSE_BLOCK_NODE_STATE:
		return parser.parseNode(event, true, false)

	case PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE:
		return parser.parseBlockSequenceEntry(event, true)

	case PARSE_BLOCK_SEQUENCE_ENTRY_STATE:
		return parser.parseBlockSequenceEntry(event, false)

	case PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE:
		return parser.parseIndentlessSequenceEntry(event)

	case PARSE_BLOCK_MAPPING_FIRST_KEY_STATE:
		return parser.parseBlockMappingKey(event, true)

	case PARSE_BLOCK_MAPPING_KEY_STATE:
		return parser.parseBlockMappingKey(event, false)

	case PARSE_BLOCK_MAPPING_VALUE_STATE:
		return parser.parseBlockMappingValue(event)

	case PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE:
		return parser.parseFlowSequenceEntry(event, true)

	case PARSE_FLOW_SEQUENCE_ENTRY_STATE:
		return parser.parseFlowSequenceEntry(event, false)

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE:
		return parser.parseFlowSequenceEntryMappingKey(event)

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE:
		return parser.parseFlowSequenceEntryMappingValue(event)

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE:
		return parser.parseFlowSequenceEntryMappingEnd(event)

	case PARSE_FLOW_MAPPING_FIRST_KEY_STATE:
		return parser.parseFlowMappingKey(event, true)

	case PARSE_FLOW_MAPPING_KEY_STATE:
		return parser.parseFlowMappingKey(event, false)

	case PARSE_FLOW_MAPPING_VALUE_STATE:
		return parser.parseFlowMappingValue(event, false)

	case PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE:
		return parser.parseFlowMappingValue(event, true)

	default:
		panic("invalid parser state")
	}
}

// popState returns to the state saved before entering the current node.
func (parser *Parser) popState() {
	parser.state = parser.states[len(parser.states)-1]
	parser.states = parser.states[:len(parser.states)-1]
}

// popMark drops the mark of the collection being closed and returns it.
func (parser *Parser) popMark() Mark {
	mark := parser.marks[len(parser.marks)-1]
	parser.marks = parser.marks[:len(parser.marks)-1]
	return mark
}

// Parse the production:
// stream   ::= STREAM-START implicit_document? explicit_document* STREAM-END
//
//	************
func (parser *Parser) parseStreamStart(event *Event) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}
	if token.Type != STREAM_START_TOKEN {
		return formatParserError("did not find expected <stream-start>", token.StartMark)
	}
	parser.state = PARSE_IMPLICIT_DOCUMENT_START_STATE
	*event = Event{
		Type:      STREAM_START_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.EndMark,
	}
	parser.skipToken()
	return nil
}

// Parse the productions:
// implicit_document    ::= block_node DOCUMENT-END*
//
//	*
//
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
//
//	*************************
func (parser *Parser) parseDocumentStart(event *Event, implicit bool) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	// Parse extra document end indicators.
	if !implicit {
		for token.Type == DOCUMENT_END_TOKEN {
			parser.skipToken()
			if token, err = parser.peekToken(); err != nil {
				return err
			}
		}
	}

	if implicit && token.Type != VERSION_DIRECTIVE_TOKEN &&
		token.Type != TAG_DIRECTIVE_TOKEN &&
		token.Type != DOCUMENT_START_TOKEN &&
		token.Type != STREAM_END_TOKEN {
		// Parse an implicit document.
		if err := parser.processDirectives(nil, nil); err != nil {
			return err
		}
		parser.states = append(parser.states, PARSE_DOCUMENT_END_STATE)
		parser.state = PARSE_BLOCK_NODE_STATE

		*event = Event{
			Type:      DOCUMENT_START_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
			Implicit:  true,
		}

	} else if token.Type != STREAM_END_TOKEN {
		// Parse an explicit document.
		var version_directive *VersionDirective
		var tag_directives []TagDirective
		start_mark := token.StartMark
		if err := parser.processDirectives(&version_directive, &tag_directives); err != nil {
			return err
		}
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type != DOCUMENT_START_TOKEN {
			return formatParserError(
				"did not find expected <document start>", token.StartMark)
		}
		parser.states = append(parser.states, PARSE_DOCUMENT_END_STATE)
		parser.state = PARSE_DOCUMENT_CONTENT_STATE
		end_mark := token.EndMark

		*event = Event{
			Type:          DOCUMENT_START_EVENT,
			StartMark:     start_mark,
			EndMark:       end_mark,
			Version:       version_directive,
			TagDirectives: tag_directives,
			Implicit:      false,
		}
		parser.skipToken()

	} else {
		// Parse the stream end.
		parser.state = PARSE_END_STATE
		*event = Event{
			Type:      STREAM_END_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
		}
		parser.skipToken()
	}

	return nil
}

// Parse the productions:
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
//
//	***********
func (parser *Parser) parseDocumentContent(event *Event) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	if token.Type == VERSION_DIRECTIVE_TOKEN ||
		token.Type == TAG_DIRECTIVE_TOKEN ||
		token.Type == DOCUMENT_START_TOKEN ||
		token.Type == DOCUMENT_END_TOKEN ||
		token.Type == STREAM_END_TOKEN {
		parser.popState()
		return parser.processEmptyScalar(event, token.StartMark)
	}
	return parser.parseNode(event, true, false)
}

// Parse the productions:
// implicit_document    ::= block_node DOCUMENT-END*
//
//	*************
//
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (parser *Parser) parseDocumentEnd(event *Event) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	start_mark := token.StartMark
	end_mark := token.StartMark

	implicit := true
	if token.Type == DOCUMENT_END_TOKEN {
		end_mark = token.EndMark
		parser.skipToken()
		implicit = false
	} else if token.Type != DOCUMENT_START_TOKEN && token.Type != STREAM_END_TOKEN &&
		token.Type != VERSION_DIRECTIVE_TOKEN && token.Type != TAG_DIRECTIVE_TOKEN {
		// Only one root node per document.
		return formatParserError(
			"did not find expected <document end>", token.StartMark)
	}

	parser.tag_directives = parser.tag_directives[:0]

	parser.state = PARSE_DOCUMENT_START_STATE
	*event = Event{
		Type:      DOCUMENT_END_EVENT,
		StartMark: start_mark,
		EndMark:   end_mark,
		Implicit:  implicit,
	}
	return nil
}

// Parse directives.
func (parser *Parser) processDirectives(version_directive_ref **VersionDirective, tag_directives_ref *[]TagDirective) error {
	var version_directive *VersionDirective
	var tag_directives []TagDirective

	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	for token.Type == VERSION_DIRECTIVE_TOKEN || token.Type == TAG_DIRECTIVE_TOKEN {
		switch token.Type {
		case VERSION_DIRECTIVE_TOKEN:
			if version_directive != nil {
				return formatParserError(
					"found duplicate %YAML directive", token.StartMark)
			}
			if token.Major != 1 || (token.Minor != 1 && token.Minor != 2) {
				return formatParserError(
					"found incompatible YAML document", token.StartMark)
			}
			version_directive = &VersionDirective{
				Major: token.Major,
				Minor: token.Minor,
			}
		case TAG_DIRECTIVE_TOKEN:
			value := TagDirective{
				Handle: token.Value,
				Prefix: token.Prefix,
			}
			if err := parser.appendTagDirective(value, false, token.StartMark); err != nil {
				return err
			}
			tag_directives = append(tag_directives, value)
		}

		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
	}

	for i := range defaultTagDirectives {
		if err := parser.appendTagDirective(defaultTagDirectives[i], true, token.StartMark); err != nil {
			return err
		}
	}

	if version_directive_ref != nil {
		*version_directive_ref = version_directive
	}
	if tag_directives_ref != nil {
		*tag_directives_ref = tag_directives
	}
	return nil
}

// Append a tag directive to the directives stack.
func (parser *Parser) appendTagDirective(value TagDirective, allow_duplicates bool, mark Mark) error {
	for i := range parser.tag_directives {
		if value.Handle == parser.tag_directives[i].Handle {
			if allow_duplicates {
				return nil
			}
			return formatParserError("found duplicate %TAG directive", mark)
		}
	}
	parser.tag_directives = append(parser.tag_directives, value)
	return nil
}

// Parse the productions:
// block_node_or_indentless_sequence    ::=
//
//	ALIAS
//	*****
//	| properties (block_content | indentless_block_sequence)?
//	  **********  *
//	| block_content | indentless_block_sequence
//	  *
//
// block_node           ::= ALIAS
//
//	*****
//	| properties block_content?
//	  ********** *
//	| block_content
//	  *
//
// flow_node            ::= ALIAS
//
//	*****
//	| properties flow_content?
//	  ********** *
//	| flow_content
//	  *
//
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
//
//	*************************
//
// block_content        ::= block_collection | flow_collection | SCALAR
//
//	******
//
// flow_content         ::= flow_collection | SCALAR
//
//	******
func (parser *Parser) parseNode(event *Event, block, indentless_sequence bool) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	if token.Type == ALIAS_TOKEN {
		parser.popState()
		*event = Event{
			Type:      ALIAS_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
			Anchor:    AnchorName(token.Value),
		}
		parser.skipToken()
		return nil
	}

	start_mark := token.StartMark
	end_mark := token.StartMark

	var tag_token bool
	var tag_handle, tag_suffix string
	var anchor AnchorName
	var tag_mark Mark
	switch token.Type {
	case ANCHOR_TOKEN:
		anchor = AnchorName(token.Value)
		start_mark = token.StartMark
		end_mark = token.EndMark
		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type == TAG_TOKEN {
			tag_token = true
			tag_handle = token.Value
			tag_suffix = token.Suffix
			tag_mark = token.StartMark
			end_mark = token.EndMark
			parser.skipToken()
			if token, err = parser.peekToken(); err != nil {
				return err
			}
		}
	case TAG_TOKEN:
		tag_token = true
		tag_handle = token.Value
		tag_suffix = token.Suffix
		start_mark = token.StartMark
		tag_mark = token.StartMark
		end_mark = token.EndMark
		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type == ANCHOR_TOKEN {
			anchor = AnchorName(token.Value)
			end_mark = token.EndMark
			parser.skipToken()
			if token, err = parser.peekToken(); err != nil {
				return err
			}
		}
	}

	var tag TagName
	if tag_token {
		if tag_handle == "" {
			tag = TagName(tag_suffix)
		} else {
			for i := range parser.tag_directives {
				if parser.tag_directives[i].Handle == tag_handle {
					tag = TagName(parser.tag_directives[i].Prefix + tag_suffix)
					break
				}
			}
			if tag.IsEmpty() {
				return formatParserErrorContext(
					"while parsing a node", start_mark,
					"found undefined tag handle", tag_mark)
			}
		}
	}

	implicit := tag.IsEmpty()
	if indentless_sequence && token.Type == BLOCK_ENTRY_TOKEN {
		end_mark = token.EndMark
		parser.state = PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
		*event = Event{
			Type:      SEQUENCE_START_EVENT,
			StartMark: start_mark,
			EndMark:   end_mark,
			Anchor:    anchor,
			Tag:       tag,
			Implicit:  implicit,
			Style:     Style(BLOCK_SEQUENCE_STYLE),
		}
		return nil
	}
	if token.Type == SCALAR_TOKEN {
		var plain_implicit, quoted_implicit bool
		end_mark = token.EndMark
		if (tag.IsEmpty() && token.Style == PLAIN_SCALAR_STYLE) || tag == "!" {
			plain_implicit = true
		} else if tag.IsEmpty() {
			quoted_implicit = true
		}
		parser.popState()

		*event = Event{
			Type:           SCALAR_EVENT,
			StartMark:      start_mark,
			EndMark:        end_mark,
			Anchor:         anchor,
			Tag:            tag,
			Value:          token.Value,
			Implicit:       plain_implicit,
			QuotedImplicit: quoted_implicit,
			Style:          Style(token.Style),
		}
		parser.skipToken()
		return nil
	}
	if token.Type == FLOW_SEQUENCE_START_TOKEN || token.Type == FLOW_MAPPING_START_TOKEN {
		end_mark = token.EndMark
		*event = Event{
			StartMark: start_mark,
			EndMark:   end_mark,
			Anchor:    anchor,
			Tag:       tag,
			Implicit:  implicit,
		}
		if token.Type == FLOW_SEQUENCE_START_TOKEN {
			parser.state = PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE
			event.Type = SEQUENCE_START_EVENT
			event.Style = Style(FLOW_SEQUENCE_STYLE)
		} else {
			parser.state = PARSE_FLOW_MAPPING_FIRST_KEY_STATE
			event.Type = MAPPING_START_EVENT
			event.Style = Style(FLOW_MAPPING_STYLE)
		}
		return nil
	}
	if block && (token.Type == BLOCK_SEQUENCE_START_TOKEN || token.Type == BLOCK_MAPPING_START_TOKEN) {
		end_mark = token.EndMark
		*event = Event{
			StartMark: start_mark,
			EndMark:   end_mark,
			Anchor:    anchor,
			Tag:       tag,
			Implicit:  implicit,
		}
		if token.Type == BLOCK_SEQUENCE_START_TOKEN {
			parser.state = PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE
			event.Type = SEQUENCE_START_EVENT
			event.Style = Style(BLOCK_SEQUENCE_STYLE)
		} else {
			parser.state = PARSE_BLOCK_MAPPING_FIRST_KEY_STATE
			event.Type = MAPPING_START_EVENT
			event.Style = Style(BLOCK_MAPPING_STYLE)
		}
		return nil
	}
	if !anchor.IsEmpty() || !tag.IsEmpty() {
		parser.popState()

		*event = Event{
			Type:           SCALAR_EVENT,
			StartMark:      start_mark,
			EndMark:        end_mark,
			Anchor:         anchor,
			Tag:            tag,
			Implicit:       implicit,
			QuotedImplicit: false,
			Style:          Style(PLAIN_SCALAR_STYLE),
		}
		return nil
	}

	context := "while parsing a flow node"
	if block {
		context = "while parsing a block node"
	}
	return formatParserErrorContext(context, start_mark,
		"did not find expected node content", token.StartMark)
}

// Parse the productions:
// block_sequence ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
//
//	********************  *********** *             *********
func (parser *Parser) parseBlockSequenceEntry(event *Event, first bool) error {
	if first {
		token, err := parser.peekToken()
		if err != nil {
			return err
		}
		parser.marks = append(parser.marks, token.StartMark)
		parser.skipToken()
	}

	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	if token.Type == BLOCK_ENTRY_TOKEN {
		mark := token.EndMark
		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type != BLOCK_ENTRY_TOKEN && token.Type != BLOCK_END_TOKEN {
			parser.states = append(parser.states, PARSE_BLOCK_SEQUENCE_ENTRY_STATE)
			return parser.parseNode(event, true, false)
		}
		parser.state = PARSE_BLOCK_SEQUENCE_ENTRY_STATE
		return parser.processEmptyScalar(event, mark)
	}
	if token.Type == BLOCK_END_TOKEN {
		parser.popState()
		parser.popMark()

		*event = Event{
			Type:      SEQUENCE_END_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
		}

		parser.skipToken()
		return nil
	}

	return formatParserErrorContext(
		"while parsing a block collection", parser.popMark(),
		"did not find expected '-' indicator", token.StartMark)
}

// Parse the productions:
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
//
//	*********** *
func (parser *Parser) parseIndentlessSequenceEntry(event *Event) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	if token.Type == BLOCK_ENTRY_TOKEN {
		mark := token.EndMark
		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type != BLOCK_ENTRY_TOKEN &&
			token.Type != KEY_TOKEN &&
			token.Type != VALUE_TOKEN &&
			token.Type != BLOCK_END_TOKEN {
			parser.states = append(parser.states, PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE)
			return parser.parseNode(event, true, false)
		}
		parser.state = PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
		return parser.processEmptyScalar(event, mark)
	}
	parser.popState()

	*event = Event{
		Type:      SEQUENCE_END_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.StartMark,
	}
	return nil
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	*******************
//	((KEY block_node_or_indentless_sequence?)?
//	  *** *
//	(VALUE block_node_or_indentless_sequence?)?)*
//
//	BLOCK-END
//	*********
func (parser *Parser) parseBlockMappingKey(event *Event, first bool) error {
	if first {
		token, err := parser.peekToken()
		if err != nil {
			return err
		}
		parser.marks = append(parser.marks, token.StartMark)
		parser.skipToken()
	}

	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	switch token.Type {
	case KEY_TOKEN:
		mark := token.EndMark
		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type != KEY_TOKEN &&
			token.Type != VALUE_TOKEN &&
			token.Type != BLOCK_END_TOKEN {
			parser.states = append(parser.states, PARSE_BLOCK_MAPPING_VALUE_STATE)
			return parser.parseNode(event, true, true)
		}
		parser.state = PARSE_BLOCK_MAPPING_VALUE_STATE
		return parser.processEmptyScalar(event, mark)
	case VALUE_TOKEN:
		// A value with an empty key, as in ": x".
		parser.state = PARSE_BLOCK_MAPPING_VALUE_STATE
		return parser.processEmptyScalar(event, token.StartMark)
	case BLOCK_END_TOKEN:
		parser.popState()
		parser.popMark()
		*event = Event{
			Type:      MAPPING_END_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
		}
		parser.skipToken()
		return nil
	}

	return formatParserErrorContext(
		"while parsing a block mapping", parser.popMark(),
		"did not find expected key", token.StartMark)
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	((KEY block_node_or_indentless_sequence?)?
//
//	(VALUE block_node_or_indentless_sequence?)?)*
//	 ***** *
//	BLOCK-END
func (parser *Parser) parseBlockMappingValue(event *Event) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}
	if token.Type == VALUE_TOKEN {
		mark := token.EndMark
		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type != KEY_TOKEN &&
			token.Type != VALUE_TOKEN &&
			token.Type != BLOCK_END_TOKEN {
			parser.states = append(parser.states, PARSE_BLOCK_MAPPING_KEY_STATE)
			return parser.parseNode(event, true, true)
		}
		parser.state = PARSE_BLOCK_MAPPING_KEY_STATE
		return parser.processEmptyScalar(event, mark)
	}
	parser.state = PARSE_BLOCK_MAPPING_KEY_STATE
	return parser.processEmptyScalar(event, token.StartMark)
}

// Parse the productions:
// flow_sequence        ::= FLOW-SEQUENCE-START
//
//	*******************
//	(flow_sequence_entry FLOW-ENTRY)*
//	 *                   **********
//	flow_sequence_entry?
//	*
//	FLOW-SEQUENCE-END
//	*****************
//
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (parser *Parser) parseFlowSequenceEntry(event *Event, first bool) error {
	if first {
		token, err := parser.peekToken()
		if err != nil {
			return err
		}
		parser.marks = append(parser.marks, token.StartMark)
		parser.skipToken()
	}
	token, err := parser.peekToken()
	if err != nil {
		return err
	}
	if token.Type != FLOW_SEQUENCE_END_TOKEN {
		if !first {
			if token.Type != FLOW_ENTRY_TOKEN {
				return formatParserErrorContext(
					"while parsing a flow sequence", parser.popMark(),
					"did not find expected ',' or ']'", token.StartMark)
			}
			parser.skipToken()
			if token, err = parser.peekToken(); err != nil {
				return err
			}
		}

		if token.Type == KEY_TOKEN {
			parser.state = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE
			*event = Event{
				Type:      MAPPING_START_EVENT,
				StartMark: token.StartMark,
				EndMark:   token.EndMark,
				Implicit:  true,
				Style:     Style(FLOW_MAPPING_STYLE),
			}
			parser.skipToken()
			return nil
		} else if token.Type != FLOW_SEQUENCE_END_TOKEN {
			parser.states = append(parser.states, PARSE_FLOW_SEQUENCE_ENTRY_STATE)
			return parser.parseNode(event, false, false)
		}
	}

	parser.popState()
	parser.popMark()

	*event = Event{
		Type:      SEQUENCE_END_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.EndMark,
	}

	parser.skipToken()
	return nil
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*** *
func (parser *Parser) parseFlowSequenceEntryMappingKey(event *Event) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}
	if token.Type != VALUE_TOKEN &&
		token.Type != FLOW_ENTRY_TOKEN &&
		token.Type != FLOW_SEQUENCE_END_TOKEN {
		parser.states = append(parser.states, PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE)
		return parser.parseNode(event, false, false)
	}
	mark := token.EndMark
	parser.state = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE
	return parser.processEmptyScalar(event, mark)
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	***** *
func (parser *Parser) parseFlowSequenceEntryMappingValue(event *Event) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}
	if token.Type == VALUE_TOKEN {
		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type != FLOW_ENTRY_TOKEN && token.Type != FLOW_SEQUENCE_END_TOKEN {
			parser.states = append(parser.states, PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE)
			return parser.parseNode(event, false, false)
		}
	}
	parser.state = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE
	return parser.processEmptyScalar(event, token.StartMark)
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (parser *Parser) parseFlowSequenceEntryMappingEnd(event *Event) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}
	parser.state = PARSE_FLOW_SEQUENCE_ENTRY_STATE
	*event = Event{
		Type:      MAPPING_END_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.StartMark,
	}
	return nil
}

// Parse the productions:
// flow_mapping         ::= FLOW-MAPPING-START
//
//	******************
//	(flow_mapping_entry FLOW-ENTRY)*
//	 *                  **********
//	flow_mapping_entry?
//	******************
//	FLOW-MAPPING-END
//	****************
//
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - *** *
func (parser *Parser) parseFlowMappingKey(event *Event, first bool) error {
	if first {
		token, err := parser.peekToken()
		if err != nil {
			return err
		}
		parser.marks = append(parser.marks, token.StartMark)
		parser.skipToken()
	}

	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	if token.Type != FLOW_MAPPING_END_TOKEN {
		if !first {
			if token.Type != FLOW_ENTRY_TOKEN {
				return formatParserErrorContext(
					"while parsing a flow mapping", parser.popMark(),
					"did not find expected ',' or '}'", token.StartMark)
			}
			parser.skipToken()
			if token, err = parser.peekToken(); err != nil {
				return err
			}
		}

		if token.Type == KEY_TOKEN {
			parser.skipToken()
			if token, err = parser.peekToken(); err != nil {
				return err
			}
			if token.Type != VALUE_TOKEN &&
				token.Type != FLOW_ENTRY_TOKEN &&
				token.Type != FLOW_MAPPING_END_TOKEN {
				parser.states = append(parser.states, PARSE_FLOW_MAPPING_VALUE_STATE)
				return parser.parseNode(event, false, false)
			}
			parser.state = PARSE_FLOW_MAPPING_VALUE_STATE
			return parser.processEmptyScalar(event, token.StartMark)
		} else if token.Type != FLOW_MAPPING_END_TOKEN {
			parser.states = append(parser.states, PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE)
			return parser.parseNode(event, false, false)
		}
	}

	parser.popState()
	parser.popMark()
	*event = Event{
		Type:      MAPPING_END_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.EndMark,
	}
	parser.skipToken()
	return nil
}

// Parse the productions:
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - ***** *
func (parser *Parser) parseFlowMappingValue(event *Event, empty bool) error {
	token, err := parser.peekToken()
	if err != nil {
		return err
	}
	if empty {
		parser.state = PARSE_FLOW_MAPPING_KEY_STATE
		return parser.processEmptyScalar(event, token.StartMark)
	}
	if token.Type == VALUE_TOKEN {
		parser.skipToken()
		if token, err = parser.peekToken(); err != nil {
			return err
		}
		if token.Type != FLOW_ENTRY_TOKEN && token.Type != FLOW_MAPPING_END_TOKEN {
			parser.states = append(parser.states, PARSE_FLOW_MAPPING_KEY_STATE)
			return parser.parseNode(event, false, false)
		}
	}
	parser.state = PARSE_FLOW_MAPPING_KEY_STATE
	return parser.processEmptyScalar(event, token.StartMark)
}

// formatParserError creates a ParserError with the given problem message
// and mark position.
func formatParserError(problem string, problem_mark Mark) error {
	return ParserError{
		Mark:    problem_mark,
		Message: problem,
	}
}

// formatParserErrorContext creates a ParserError with both context and
// problem information, each with their own mark positions.
func formatParserErrorContext(context string, context_mark Mark, problem string, problem_mark Mark) error {
	return ParserError{
		ContextMark:    context_mark,
		ContextMessage: context,

		Mark:    problem_mark,
		Message: problem,
	}
}

// Generate an empty scalar event.
func (parser *Parser) processEmptyScalar(event *Event, mark Mark) error {
	*event = Event{
		Type:      SCALAR_EVENT,
		StartMark: mark,
		EndMark:   mark,
		Implicit:  true,
		Style:     Style(PLAIN_SCALAR_STYLE),
	}
	return nil
}

// FormatEvent formats an event in the yaml-test-suite event notation, as
// used by the tests and the CLI.
func FormatEvent(e *Event) string {
	var b strings.Builder
	writeProps := func() {
		if !e.Anchor.IsEmpty() {
			b.WriteString(" &")
			b.WriteString(string(e.Anchor))
		}
		if !e.Tag.IsEmpty() {
			b.WriteString(" <")
			b.WriteString(string(e.Tag))
			b.WriteString(">")
		}
	}
	switch e.Type {
	case STREAM_START_EVENT:
		b.WriteString("+STR")
	case STREAM_END_EVENT:
		b.WriteString("-STR")
	case DOCUMENT_START_EVENT:
		b.WriteString("+DOC")
		if !e.Implicit {
			b.WriteString(" ---")
		}
	case DOCUMENT_END_EVENT:
		b.WriteString("-DOC")
		if !e.Implicit {
			b.WriteString(" ...")
		}
	case ALIAS_EVENT:
		b.WriteString("=ALI *")
		b.WriteString(string(e.Anchor))
	case SCALAR_EVENT:
		b.WriteString("=VAL")
		writeProps()
		switch e.ScalarStyle() {
		case PLAIN_SCALAR_STYLE:
			b.WriteString(" :")
		case LITERAL_SCALAR_STYLE:
			b.WriteString(" |")
		case FOLDED_SCALAR_STYLE:
			b.WriteString(" >")
		case SINGLE_QUOTED_SCALAR_STYLE:
			b.WriteString(" '")
		case DOUBLE_QUOTED_SCALAR_STYLE:
			b.WriteString(` "`)
		default:
			b.WriteString(" :")
		}
		b.WriteString(eventValueEscaper.Replace(e.Value))
	case SEQUENCE_START_EVENT:
		b.WriteString("+SEQ")
		if e.SequenceStyle() == FLOW_SEQUENCE_STYLE {
			b.WriteString(" []")
		}
		writeProps()
	case SEQUENCE_END_EVENT:
		b.WriteString("-SEQ")
	case MAPPING_START_EVENT:
		b.WriteString("+MAP")
		if e.MappingStyle() == FLOW_MAPPING_STYLE {
			b.WriteString(" {}")
		}
		writeProps()
	case MAPPING_END_EVENT:
		b.WriteString("-MAP")
	}
	return b.String()
}

// Escape special characters for consistent event output.
var eventValueEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\b", `\b`,
)
