// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Emitter stage: renders events as YAML text.
// The emitter is a push consumer with its own indentation and context
// stack. It looks ahead a few events to decide between simple and complex
// keys and to detect empty collections.

package libyaml

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

type EmitterState int

// The emitter states.
const (
	// Expect STREAM-START.
	EMIT_STREAM_START_STATE EmitterState = iota

	EMIT_FIRST_DOCUMENT_START_STATE       // Expect the first DOCUMENT-START or STREAM-END.
	EMIT_DOCUMENT_START_STATE             // Expect DOCUMENT-START or STREAM-END.
	EMIT_DOCUMENT_CONTENT_STATE           // Expect the content of a document.
	EMIT_DOCUMENT_END_STATE               // Expect DOCUMENT-END.
	EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE   // Expect the first item of a flow sequence.
	EMIT_FLOW_SEQUENCE_ITEM_STATE         // Expect an item of a flow sequence.
	EMIT_FLOW_MAPPING_FIRST_KEY_STATE     // Expect the first key of a flow mapping.
	EMIT_FLOW_MAPPING_KEY_STATE           // Expect a key of a flow mapping.
	EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE  // Expect a value for a simple key of a flow mapping.
	EMIT_FLOW_MAPPING_VALUE_STATE         // Expect a value of a flow mapping.
	EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE  // Expect the first item of a block sequence.
	EMIT_BLOCK_SEQUENCE_ITEM_STATE        // Expect an item of a block sequence.
	EMIT_BLOCK_MAPPING_FIRST_KEY_STATE    // Expect the first key of a block mapping.
	EMIT_BLOCK_MAPPING_KEY_STATE          // Expect the key of a block mapping.
	EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE // Expect a value for a simple key of a block mapping.
	EMIT_BLOCK_MAPPING_VALUE_STATE        // Expect a value of a block mapping.
	EMIT_END_STATE                        // Expect nothing.
)

var emitterStateNames = []string{
	"EMIT_STREAM_START_STATE",
	"EMIT_FIRST_DOCUMENT_START_STATE",
	"EMIT_DOCUMENT_START_STATE",
	"EMIT_DOCUMENT_CONTENT_STATE",
	"EMIT_DOCUMENT_END_STATE",
	"EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE",
	"EMIT_FLOW_SEQUENCE_ITEM_STATE",
	"EMIT_FLOW_MAPPING_FIRST_KEY_STATE",
	"EMIT_FLOW_MAPPING_KEY_STATE",
	"EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE",
	"EMIT_FLOW_MAPPING_VALUE_STATE",
	"EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE",
	"EMIT_BLOCK_SEQUENCE_ITEM_STATE",
	"EMIT_BLOCK_MAPPING_FIRST_KEY_STATE",
	"EMIT_BLOCK_MAPPING_KEY_STATE",
	"EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE",
	"EMIT_BLOCK_MAPPING_VALUE_STATE",
	"EMIT_END_STATE",
}

func (state EmitterState) String() string {
	if state < 0 || int(state) >= len(emitterStateNames) {
		return fmt.Sprintf("unknown emitter state %d", int(state))
	}
	return emitterStateNames[state]
}

// Emitter holds the emitter state and settings.
type Emitter struct {
	err error // The first error; every later call returns it.

	// Writer stuff

	write_handler WriteHandler // Write handler.

	output_buffer *[]byte   // String output data.
	output_writer io.Writer // File output data.

	buffer     []byte // The working buffer.
	buffer_pos int    // The current position of the buffer.

	// Emitter stuff

	canonical             bool         // If the output is in the canonical style?
	BestIndent            int          // The number of indentation spaces.
	best_width            int          // The preferred width of the output lines.
	unicode               bool         // Allow unescaped non-ASCII characters?
	line_break            LineBreak    // The preferred line break.
	compact               bool         // Render every collection in flow style.
	CompactSequenceIndent bool         // Is '- ' is considered part of the indentation for sequence elements?
	explicit_start        bool         // Always write "---".
	explicit_end          bool         // Always write "...".
	quote_preference      QuoteStyle   // The style used when a scalar must be quoted.
	schema                *Schema      // Resolves plain text for the ambiguity checks.
	max_simple_key        int          // The longest key written without "?".
	logger                *slog.Logger // Debug traces, or nil.

	state  EmitterState   // The current emitter state.
	states []EmitterState // The stack of states.

	events      []Event // The event queue.
	events_head int     // The head of the event queue.

	indents []int // The stack of indentation levels.

	tag_directives []TagDirective // The list of tag directives.

	indent int // The current indentation level.

	flow_level int // The current flow level.

	root_context       bool // Is it the document root context?
	sequence_context   bool // Is it a sequence context?
	mapping_context    bool // Is it a mapping context?
	simple_key_context bool // Is it a simple mapping key context?

	line       int  // The current line.
	column     int  // The current column.
	whitespace bool // If the last character was a whitespace?
	indention  bool // If the last character was an indentation character (' ', '-', '?', ':')?
	OpenEnded  bool // If an explicit document end is required?

	// Anchor analysis.
	anchor_data struct {
		anchor []byte // The anchor value.
		alias  bool   // Is it an alias?
	}

	// Tag analysis.
	tag_data struct {
		handle []byte // The tag handle.
		suffix []byte // The tag suffix.
	}

	// Scalar analysis.
	scalar_data struct {
		value                 []byte      // The scalar value.
		multiline             bool        // Does the scalar contain line breaks?
		flow_plain_allowed    bool        // Can the scalar be expressed in the flow plain style?
		block_plain_allowed   bool        // Can the scalar be expressed in the block plain style?
		single_quoted_allowed bool        // Can the scalar be expressed in the single quoted style?
		block_allowed         bool        // Can the scalar be expressed in the literal or folded styles?
		style                 ScalarStyle // The output style.
		plain_implicit        bool        // Plain text reads back with the event tag.
		quoted_implicit       bool        // Quoted text reads back with the event tag.
		force_plain           bool        // Only plain text reads back with the event tag.
		force_quote           bool        // Plain text would read back with another tag.
	}
}

// SetLogger sets the logger for document level traces.
func (emitter *Emitter) SetLogger(logger *slog.Logger) {
	if logger != nil {
		logger = logger.With(slog.String("component", "emitter"))
	}
	emitter.logger = logger
}

func emitterError(problem string) error {
	return EmitterError{Message: problem}
}

// Emit an event. Events are queued until enough lookahead is available.
func (emitter *Emitter) Emit(event *Event) error {
	if emitter.err != nil {
		return emitter.err
	}
	emitter.events = append(emitter.events, *event)
	for !emitter.needMoreEvents() {
		event := &emitter.events[emitter.events_head]
		if err := emitter.analyzeEvent(event); err != nil {
			emitter.err = err
			return err
		}
		if err := emitter.stateMachine(event); err != nil {
			emitter.err = err
			return err
		}
		event.Delete()
		emitter.events_head++
	}
	if emitter.events_head == len(emitter.events) {
		emitter.events = emitter.events[:0]
		emitter.events_head = 0
	}
	return nil
}

// Check if we need to accumulate more events before emitting.
//
// We accumulate extra
//   - 1 event for DOCUMENT-START
//   - 2 events for SEQUENCE-START
//   - 3 events for MAPPING-START
func (emitter *Emitter) needMoreEvents() bool {
	if emitter.events_head == len(emitter.events) {
		return true
	}
	var accumulate int
	switch emitter.events[emitter.events_head].Type {
	case DOCUMENT_START_EVENT:
		accumulate = 1
	case SEQUENCE_START_EVENT:
		accumulate = 2
	case MAPPING_START_EVENT:
		accumulate = 3
	default:
		return false
	}
	if len(emitter.events)-emitter.events_head > accumulate {
		return false
	}
	var level int
	for i := emitter.events_head; i < len(emitter.events); i++ {
		switch emitter.events[i].Type {
		case STREAM_START_EVENT, DOCUMENT_START_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT:
			level++
		case STREAM_END_EVENT, DOCUMENT_END_EVENT, SEQUENCE_END_EVENT, MAPPING_END_EVENT:
			level--
		}
		if level == 0 {
			return false
		}
	}
	return true
}

// Append a directive to the directives stack.
func (emitter *Emitter) appendTagDirective(value *TagDirective, allow_duplicates bool) error {
	for i := range emitter.tag_directives {
		if value.Handle == emitter.tag_directives[i].Handle {
			if allow_duplicates {
				return nil
			}
			return emitterError("duplicate %TAG directive")
		}
	}
	emitter.tag_directives = append(emitter.tag_directives, *value)
	return nil
}

// Increase the indentation level.
func (emitter *Emitter) increaseIndentCompact(flow, indentless bool, compact_seq bool) {
	emitter.indents = append(emitter.indents, emitter.indent)
	if emitter.indent < 0 {
		if flow {
			emitter.indent = emitter.BestIndent
		} else {
			emitter.indent = 0
		}
	} else if !indentless {
		if emitter.states[len(emitter.states)-1] == EMIT_BLOCK_SEQUENCE_ITEM_STATE {
			// The first indent inside a sequence will just skip the "- " indicator.
			emitter.indent += 2
		} else {
			// Everything else aligns to the chosen indentation.
			emitter.indent = emitter.BestIndent * ((emitter.indent + emitter.BestIndent) / emitter.BestIndent)
			if compact_seq {
				// Only sequences nested in a mapping pass compact_seq; the
				// "- " indicator takes the place of two indentation columns.
				emitter.indent = emitter.indent - 2
			}
		}
	}
}

func (emitter *Emitter) increaseIndent(flow, indentless bool) {
	emitter.increaseIndentCompact(flow, indentless, false)
}

func (emitter *Emitter) popIndent() {
	emitter.indent = emitter.indents[len(emitter.indents)-1]
	emitter.indents = emitter.indents[:len(emitter.indents)-1]
}

func (emitter *Emitter) popState() {
	emitter.state = emitter.states[len(emitter.states)-1]
	emitter.states = emitter.states[:len(emitter.states)-1]
}

// State dispatcher.
func (emitter *Emitter) stateMachine(event *Event) error {
	switch emitter.state {
	case EMIT_STREAM_START_STATE:
		return emitter.emitStreamStart(event)

	case EMIT_FIRST_DOCUMENT_START_STATE:
		return emitter.emitDocumentStart(event, true)

	case EMIT_DOCUMENT_START_STATE:
		return emitter.emitDocumentStart(event, false)

	case EMIT_DOCUMENT_CONTENT_STATE:
		return emitter.emitDocumentContent(event)

	case EMIT_DOCUMENT_END_STATE:
		return emitter.emitDocumentEnd(event)

	case EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE:
		return emitter.emitFlowSequenceItem(event, true)

	case EMIT_FLOW_SEQUENCE_ITEM_STATE:
		return emitter.emitFlowSequenceItem(event, false)

	case EMIT_FLOW_MAPPING_FIRST_KEY_STATE:
		return emitter.emitFlowMappingKey(event, true)

	case EMIT_FLOW_MAPPING_KEY_STATE:
		return emitter.emitFlowMappingKey(event, false)

	case EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE:
		return emitter.emitFlowMappingValue(event, true)

	case EMIT_FLOW_MAPPING_VALUE_STATE:
		return emitter.emitFlowMappingValue(event, false)

	case EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE:
		return emitter.emitBlockSequenceItem(event, true)

	case EMIT_BLOCK_SEQUENCE_ITEM_STATE:
		return emitter.emitBlockSequenceItem(event, false)

	case EMIT_BLOCK_MAPPING_FIRST_KEY_STATE:
		return emitter.emitBlockMappingKey(event, true)

	case EMIT_BLOCK_MAPPING_KEY_STATE:
		return emitter.emitBlockMappingKey(event, false)

	case EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE:
		return emitter.emitBlockMappingValue(event, true)

	case EMIT_BLOCK_MAPPING_VALUE_STATE:
		return emitter.emitBlockMappingValue(event, false)

	case EMIT_END_STATE:
		return emitterError("expected nothing after STREAM-END")
	}
	panic("invalid emitter state")
}

// Expect STREAM-START.
func (emitter *Emitter) emitStreamStart(event *Event) error {
	if event.Type != STREAM_START_EVENT {
		return emitterError("expected STREAM-START")
	}
	if emitter.BestIndent < 2 || emitter.BestIndent > 9 {
		emitter.BestIndent = 2
	}
	if emitter.best_width >= 0 && emitter.best_width <= emitter.BestIndent*2 {
		emitter.best_width = 80
	}
	if emitter.best_width < 0 {
		emitter.best_width = 1<<31 - 1
	}
	if emitter.line_break == ANY_BREAK {
		emitter.line_break = LN_BREAK
	}
	if emitter.max_simple_key <= 0 {
		emitter.max_simple_key = default_max_simple_key_length
	}

	emitter.indent = -1
	emitter.line = 0
	emitter.column = 0
	emitter.whitespace = true
	emitter.indention = true

	emitter.state = EMIT_FIRST_DOCUMENT_START_STATE
	return nil
}

// Expect DOCUMENT-START or STREAM-END.
func (emitter *Emitter) emitDocumentStart(event *Event, first bool) error {
	if event.Type == STREAM_END_EVENT {
		if err := emitter.flush(); err != nil {
			return err
		}
		emitter.state = EMIT_END_STATE
		return nil
	}
	if event.Type != DOCUMENT_START_EVENT {
		return emitterError("expected DOCUMENT-START or STREAM-END")
	}

	if event.Version != nil {
		if err := emitter.analyzeVersionDirective(event.Version); err != nil {
			return err
		}
	}
	for i := range event.TagDirectives {
		tag_directive := &event.TagDirectives[i]
		if err := emitter.analyzeTagDirective(tag_directive); err != nil {
			return err
		}
		if err := emitter.appendTagDirective(tag_directive, false); err != nil {
			return err
		}
	}
	for i := range defaultTagDirectives {
		if err := emitter.appendTagDirective(&defaultTagDirectives[i], true); err != nil {
			return err
		}
	}

	implicit := event.Implicit
	if !first || emitter.canonical || emitter.explicit_start {
		implicit = false
	}

	if emitter.OpenEnded && (event.Version != nil || len(event.TagDirectives) > 0) {
		if err := emitter.writeIndicator([]byte("..."), true, false, false); err != nil {
			return err
		}
		if err := emitter.writeIndent(); err != nil {
			return err
		}
	}

	if event.Version != nil {
		implicit = false
		if err := emitter.writeIndicator([]byte("%YAML"), true, false, false); err != nil {
			return err
		}
		if err := emitter.writeIndicator([]byte(event.Version.String()), true, false, false); err != nil {
			return err
		}
		if err := emitter.writeIndent(); err != nil {
			return err
		}
	}

	if len(event.TagDirectives) > 0 {
		implicit = false
		for i := range event.TagDirectives {
			tag_directive := &event.TagDirectives[i]
			if err := emitter.writeIndicator([]byte("%TAG"), true, false, false); err != nil {
				return err
			}
			if err := emitter.writeTagHandle([]byte(tag_directive.Handle)); err != nil {
				return err
			}
			if err := emitter.writeTagContent([]byte(tag_directive.Prefix), true); err != nil {
				return err
			}
			if err := emitter.writeIndent(); err != nil {
				return err
			}
		}
	}

	if !implicit {
		if err := emitter.writeIndent(); err != nil {
			return err
		}
		if err := emitter.writeIndicator([]byte("---"), true, false, false); err != nil {
			return err
		}
		if err := emitter.writeIndent(); err != nil {
			return err
		}
	}
	if emitter.logger != nil {
		emitter.logger.Debug("document start", slog.Bool("implicit", implicit), slog.Int("line", emitter.line))
	}

	emitter.state = EMIT_DOCUMENT_CONTENT_STATE
	return nil
}

// Expect the root node.
func (emitter *Emitter) emitDocumentContent(event *Event) error {
	emitter.states = append(emitter.states, EMIT_DOCUMENT_END_STATE)
	return emitter.emitNode(event, true, false, false, false)
}

// Expect DOCUMENT-END.
func (emitter *Emitter) emitDocumentEnd(event *Event) error {
	if event.Type != DOCUMENT_END_EVENT {
		return emitterError("expected DOCUMENT-END")
	}
	if err := emitter.writeIndent(); err != nil {
		return err
	}
	if !event.Implicit || emitter.explicit_end {
		if err := emitter.writeIndicator([]byte("..."), true, false, false); err != nil {
			return err
		}
		if err := emitter.writeIndent(); err != nil {
			return err
		}
	}
	if err := emitter.flush(); err != nil {
		return err
	}
	if emitter.logger != nil {
		emitter.logger.Debug("document end", slog.Int("line", emitter.line))
	}
	emitter.state = EMIT_DOCUMENT_START_STATE
	emitter.tag_directives = emitter.tag_directives[:0]
	return nil
}

// Expect a flow item node.
func (emitter *Emitter) emitFlowSequenceItem(event *Event, first bool) error {
	if first {
		if err := emitter.writeIndicator([]byte{'['}, true, true, false); err != nil {
			return err
		}
		emitter.increaseIndent(true, false)
		emitter.flow_level++
	}

	if event.Type == SEQUENCE_END_EVENT {
		if emitter.canonical && !first {
			if err := emitter.writeIndicator([]byte{','}, false, false, false); err != nil {
				return err
			}
		}
		emitter.flow_level--
		emitter.popIndent()
		if emitter.canonical && !first {
			if err := emitter.writeIndent(); err != nil {
				return err
			}
		}
		if err := emitter.writeIndicator([]byte{']'}, false, false, false); err != nil {
			return err
		}
		emitter.popState()
		return nil
	}

	if !first {
		if err := emitter.writeIndicator([]byte{','}, false, false, false); err != nil {
			return err
		}
	}
	if emitter.canonical || emitter.column > emitter.best_width {
		if err := emitter.writeIndent(); err != nil {
			return err
		}
	}
	emitter.states = append(emitter.states, EMIT_FLOW_SEQUENCE_ITEM_STATE)
	return emitter.emitNode(event, false, true, false, false)
}

// Expect a flow key node.
func (emitter *Emitter) emitFlowMappingKey(event *Event, first bool) error {
	if first {
		if err := emitter.writeIndicator([]byte{'{'}, true, true, false); err != nil {
			return err
		}
		emitter.increaseIndent(true, false)
		emitter.flow_level++
	}

	if event.Type == MAPPING_END_EVENT {
		if emitter.canonical && !first {
			if err := emitter.writeIndicator([]byte{','}, false, false, false); err != nil {
				return err
			}
		}
		emitter.flow_level--
		emitter.popIndent()
		if emitter.canonical && !first {
			if err := emitter.writeIndent(); err != nil {
				return err
			}
		}
		if err := emitter.writeIndicator([]byte{'}'}, false, false, false); err != nil {
			return err
		}
		emitter.popState()
		return nil
	}

	if !first {
		if err := emitter.writeIndicator([]byte{','}, false, false, false); err != nil {
			return err
		}
	}
	if emitter.canonical || emitter.column > emitter.best_width {
		if err := emitter.writeIndent(); err != nil {
			return err
		}
	}

	if !emitter.canonical && emitter.checkSimpleKey() {
		emitter.states = append(emitter.states, EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE)
		return emitter.emitNode(event, false, false, true, true)
	}
	if err := emitter.writeIndicator([]byte{'?'}, true, false, false); err != nil {
		return err
	}
	emitter.states = append(emitter.states, EMIT_FLOW_MAPPING_VALUE_STATE)
	return emitter.emitNode(event, false, false, true, false)
}

// Expect a flow value node.
func (emitter *Emitter) emitFlowMappingValue(event *Event, simple bool) error {
	if simple {
		if err := emitter.writeIndicator([]byte{':'}, false, false, false); err != nil {
			return err
		}
	} else {
		if emitter.canonical || emitter.column > emitter.best_width {
			if err := emitter.writeIndent(); err != nil {
				return err
			}
		}
		if err := emitter.writeIndicator([]byte{':'}, true, false, false); err != nil {
			return err
		}
	}
	emitter.states = append(emitter.states, EMIT_FLOW_MAPPING_KEY_STATE)
	return emitter.emitNode(event, false, false, true, false)
}

// Expect a block item node.
func (emitter *Emitter) emitBlockSequenceItem(event *Event, first bool) error {
	if first {
		// A sequence that is the value of a mapping key may put its "- "
		// indicators in the key's column when CompactSequenceIndent is set.
		seq := emitter.mapping_context && (emitter.column == 0 || !emitter.indention) &&
			emitter.CompactSequenceIndent
		emitter.increaseIndentCompact(false, false, seq)
	}
	if event.Type == SEQUENCE_END_EVENT {
		emitter.popIndent()
		emitter.popState()
		return nil
	}
	if err := emitter.writeIndent(); err != nil {
		return err
	}
	if err := emitter.writeIndicator([]byte{'-'}, true, false, true); err != nil {
		return err
	}
	emitter.states = append(emitter.states, EMIT_BLOCK_SEQUENCE_ITEM_STATE)
	return emitter.emitNode(event, false, true, false, false)
}

// Expect a block key node.
func (emitter *Emitter) emitBlockMappingKey(event *Event, first bool) error {
	if first {
		emitter.increaseIndent(false, false)
	}
	if event.Type == MAPPING_END_EVENT {
		emitter.popIndent()
		emitter.popState()
		return nil
	}
	if err := emitter.writeIndent(); err != nil {
		return err
	}
	if emitter.checkSimpleKey() {
		emitter.states = append(emitter.states, EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE)
		if err := emitter.emitNode(event, false, false, true, true); err != nil {
			return err
		}
		if event.Type == ALIAS_EVENT {
			// "*a:" would read the colon as part of the alias name.
			return emitter.put(' ')
		}
		return nil
	}
	if err := emitter.writeIndicator([]byte{'?'}, true, false, true); err != nil {
		return err
	}
	emitter.states = append(emitter.states, EMIT_BLOCK_MAPPING_VALUE_STATE)
	return emitter.emitNode(event, false, false, true, false)
}

// Expect a block value node.
func (emitter *Emitter) emitBlockMappingValue(event *Event, simple bool) error {
	if simple {
		if err := emitter.writeIndicator([]byte{':'}, false, false, false); err != nil {
			return err
		}
	} else {
		if err := emitter.writeIndent(); err != nil {
			return err
		}
		if err := emitter.writeIndicator([]byte{':'}, true, false, true); err != nil {
			return err
		}
	}
	emitter.states = append(emitter.states, EMIT_BLOCK_MAPPING_KEY_STATE)
	return emitter.emitNode(event, false, false, true, false)
}

// Expect a node.
func (emitter *Emitter) emitNode(event *Event,
	root bool, sequence bool, mapping bool, simple_key bool,
) error {
	emitter.root_context = root
	emitter.sequence_context = sequence
	emitter.mapping_context = mapping
	emitter.simple_key_context = simple_key

	switch event.Type {
	case ALIAS_EVENT:
		return emitter.emitAlias()
	case SCALAR_EVENT:
		return emitter.emitScalar(event)
	case SEQUENCE_START_EVENT:
		return emitter.emitSequenceStart(event)
	case MAPPING_START_EVENT:
		return emitter.emitMappingStart(event)
	}
	return emitterError(fmt.Sprintf("expected SCALAR, SEQUENCE-START, MAPPING-START, or ALIAS, but got %v", event.Type))
}

// Expect ALIAS.
func (emitter *Emitter) emitAlias() error {
	if err := emitter.processAnchor(); err != nil {
		return err
	}
	emitter.popState()
	return nil
}

// Expect SCALAR.
func (emitter *Emitter) emitScalar(event *Event) error {
	if err := emitter.selectScalarStyle(event); err != nil {
		return err
	}
	if err := emitter.processAnchor(); err != nil {
		return err
	}
	if err := emitter.processTag(); err != nil {
		return err
	}
	emitter.increaseIndent(true, false)
	if err := emitter.processScalar(); err != nil {
		return err
	}
	emitter.popIndent()
	emitter.popState()
	return nil
}

// flowForced reports whether every collection is written in flow style.
func (emitter *Emitter) flowForced() bool {
	return emitter.flow_level > 0 || emitter.canonical || emitter.compact
}

// Expect SEQUENCE-START.
func (emitter *Emitter) emitSequenceStart(event *Event) error {
	if err := emitter.processAnchor(); err != nil {
		return err
	}
	if err := emitter.processTag(); err != nil {
		return err
	}
	if emitter.flowForced() || event.SequenceStyle() == FLOW_SEQUENCE_STYLE || emitter.checkEmptySequence() {
		emitter.state = EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE
	} else {
		emitter.state = EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE
	}
	return nil
}

// Expect MAPPING-START.
func (emitter *Emitter) emitMappingStart(event *Event) error {
	if err := emitter.processAnchor(); err != nil {
		return err
	}
	if err := emitter.processTag(); err != nil {
		return err
	}
	if emitter.flowForced() || event.MappingStyle() == FLOW_MAPPING_STYLE || emitter.checkEmptyMapping() {
		emitter.state = EMIT_FLOW_MAPPING_FIRST_KEY_STATE
	} else {
		emitter.state = EMIT_BLOCK_MAPPING_FIRST_KEY_STATE
	}
	return nil
}

// Check if the next events represent an empty sequence.
func (emitter *Emitter) checkEmptySequence() bool {
	if len(emitter.events)-emitter.events_head < 2 {
		return false
	}
	return emitter.events[emitter.events_head].Type == SEQUENCE_START_EVENT &&
		emitter.events[emitter.events_head+1].Type == SEQUENCE_END_EVENT
}

// Check if the next events represent an empty mapping.
func (emitter *Emitter) checkEmptyMapping() bool {
	if len(emitter.events)-emitter.events_head < 2 {
		return false
	}
	return emitter.events[emitter.events_head].Type == MAPPING_START_EVENT &&
		emitter.events[emitter.events_head+1].Type == MAPPING_END_EVENT
}

// Check if the next node can be expressed as a simple key.
func (emitter *Emitter) checkSimpleKey() bool {
	length := 0
	switch emitter.events[emitter.events_head].Type {
	case ALIAS_EVENT:
		length += len(emitter.anchor_data.anchor)
	case SCALAR_EVENT:
		if emitter.scalar_data.multiline {
			return false
		}
		length += len(emitter.anchor_data.anchor) +
			len(emitter.tag_data.handle) +
			len(emitter.tag_data.suffix) +
			len(emitter.scalar_data.value)
	case SEQUENCE_START_EVENT:
		if !emitter.checkEmptySequence() {
			return false
		}
		length += len(emitter.anchor_data.anchor) +
			len(emitter.tag_data.handle) +
			len(emitter.tag_data.suffix)
	case MAPPING_START_EVENT:
		if !emitter.checkEmptyMapping() {
			return false
		}
		length += len(emitter.anchor_data.anchor) +
			len(emitter.tag_data.handle) +
			len(emitter.tag_data.suffix)
	default:
		return false
	}
	return length <= emitter.max_simple_key
}

// Determine an acceptable scalar style.
func (emitter *Emitter) selectScalarStyle(event *Event) error {
	data := &emitter.scalar_data
	no_tag := len(emitter.tag_data.handle) == 0 && len(emitter.tag_data.suffix) == 0
	if no_tag && !data.plain_implicit && !data.quoted_implicit {
		return emitterError("neither tag nor implicit flags are specified")
	}

	quoted := emitter.quote_preference.ScalarStyle()
	style := event.ScalarStyle()
	if style == ANY_SCALAR_STYLE || data.force_plain {
		style = PLAIN_SCALAR_STYLE
	}
	// Block styles are kept for multi-line text only.
	if (style == LITERAL_SCALAR_STYLE || style == FOLDED_SCALAR_STYLE) && !data.multiline {
		style = PLAIN_SCALAR_STYLE
	}
	if data.force_quote && style == PLAIN_SCALAR_STYLE {
		style = quoted
	}
	if emitter.canonical {
		style = DOUBLE_QUOTED_SCALAR_STYLE
	}
	if emitter.simple_key_context && data.multiline {
		style = DOUBLE_QUOTED_SCALAR_STYLE
	}

	if style == PLAIN_SCALAR_STYLE {
		if emitter.flow_level > 0 && !data.flow_plain_allowed ||
			emitter.flow_level == 0 && !data.block_plain_allowed {
			style = quoted
		}
		if len(data.value) == 0 && (emitter.flow_level > 0 || emitter.simple_key_context) {
			style = quoted
		}
		if no_tag && !data.plain_implicit {
			style = quoted
		}
	}
	if style == SINGLE_QUOTED_SCALAR_STYLE {
		if !data.single_quoted_allowed {
			style = DOUBLE_QUOTED_SCALAR_STYLE
		}
	}
	if style == LITERAL_SCALAR_STYLE || style == FOLDED_SCALAR_STYLE {
		if !data.block_allowed || emitter.flow_level > 0 || emitter.simple_key_context {
			style = DOUBLE_QUOTED_SCALAR_STYLE
		}
	}

	if no_tag && !data.quoted_implicit && style != PLAIN_SCALAR_STYLE {
		if event.Tag.IsNonSpecific() {
			emitter.tag_data.handle = []byte{'!'}
		} else if err := emitter.analyzeTag(event.Tag); err != nil {
			return err
		}
	}
	data.style = style
	return nil
}

// Write an anchor.
func (emitter *Emitter) processAnchor() error {
	if emitter.anchor_data.anchor == nil {
		return nil
	}
	c := []byte{'&'}
	if emitter.anchor_data.alias {
		c[0] = '*'
	}
	if err := emitter.writeIndicator(c, true, false, false); err != nil {
		return err
	}
	return emitter.writeAnchor(emitter.anchor_data.anchor)
}

// Write a tag.
func (emitter *Emitter) processTag() error {
	if len(emitter.tag_data.handle) == 0 && len(emitter.tag_data.suffix) == 0 {
		return nil
	}
	if len(emitter.tag_data.handle) > 0 {
		if err := emitter.writeTagHandle(emitter.tag_data.handle); err != nil {
			return err
		}
		if len(emitter.tag_data.suffix) > 0 {
			return emitter.writeTagContent(emitter.tag_data.suffix, false)
		}
		return nil
	}
	if err := emitter.writeIndicator([]byte("!<"), true, false, false); err != nil {
		return err
	}
	if err := emitter.writeTagContent(emitter.tag_data.suffix, false); err != nil {
		return err
	}
	return emitter.writeIndicator([]byte{'>'}, false, false, false)
}

// Write a scalar.
func (emitter *Emitter) processScalar() error {
	switch emitter.scalar_data.style {
	case PLAIN_SCALAR_STYLE:
		return emitter.writePlainScalar(emitter.scalar_data.value, !emitter.simple_key_context)

	case SINGLE_QUOTED_SCALAR_STYLE:
		return emitter.writeSingleQuotedScalar(emitter.scalar_data.value, !emitter.simple_key_context)

	case DOUBLE_QUOTED_SCALAR_STYLE:
		return emitter.writeDoubleQuotedScalar(emitter.scalar_data.value, !emitter.simple_key_context)

	case LITERAL_SCALAR_STYLE:
		return emitter.writeLiteralScalar(emitter.scalar_data.value)

	case FOLDED_SCALAR_STYLE:
		return emitter.writeFoldedScalar(emitter.scalar_data.value)
	}
	panic("unknown scalar style")
}

// Check if a %YAML directive is valid.
func (emitter *Emitter) analyzeVersionDirective(version_directive *VersionDirective) error {
	if version_directive.Major != 1 || (version_directive.Minor != 1 && version_directive.Minor != 2) {
		return emitterError("incompatible %YAML directive")
	}
	return nil
}

// Check if a %TAG directive is valid.
func (emitter *Emitter) analyzeTagDirective(tag_directive *TagDirective) error {
	handle := []byte(tag_directive.Handle)
	if len(handle) == 0 {
		return emitterError("tag handle must not be empty")
	}
	if handle[0] != '!' {
		return emitterError("tag handle must start with '!'")
	}
	if handle[len(handle)-1] != '!' {
		return emitterError("tag handle must end with '!'")
	}
	for i := 1; i < len(handle)-1; i += width(handle[i]) {
		if !isAlpha(handle, i) {
			return emitterError("tag handle must contain alphanumerical characters only")
		}
	}
	if len(tag_directive.Prefix) == 0 {
		return emitterError("tag prefix must not be empty")
	}
	return nil
}

// Check if an anchor is valid.
func (emitter *Emitter) analyzeAnchor(anchor AnchorName, alias bool) error {
	value := []byte(anchor)
	if len(value) == 0 {
		if alias {
			return emitterError("alias value must not be empty")
		}
		return emitterError("anchor value must not be empty")
	}
	for i := 0; i < len(value); i += width(value[i]) {
		if !isAnchorChar(value, i) {
			if alias {
				return emitterError("alias value must contain valid characters only")
			}
			return emitterError("anchor value must contain valid characters only")
		}
	}
	emitter.anchor_data.anchor = value
	emitter.anchor_data.alias = alias
	return nil
}

// Check if a tag is valid.
func (emitter *Emitter) analyzeTag(tag TagName) error {
	if tag.IsEmpty() {
		return emitterError("tag value must not be empty")
	}
	for i := range emitter.tag_directives {
		tag_directive := &emitter.tag_directives[i]
		if strings.HasPrefix(string(tag), tag_directive.Prefix) {
			emitter.tag_data.handle = []byte(tag_directive.Handle)
			emitter.tag_data.suffix = []byte(tag[len(tag_directive.Prefix):])
			return nil
		}
	}
	emitter.tag_data.suffix = []byte(tag)
	return nil
}

// Check if a scalar is valid.
func (emitter *Emitter) analyzeScalar(value []byte) {
	var block_indicators,
		flow_indicators,
		line_breaks,
		special_characters,
		tab_characters,

		leading_space,
		leading_break,
		trailing_space,
		trailing_break,
		break_space,
		space_break,

		preceded_by_whitespace,
		followed_by_whitespace,
		previous_space,
		previous_break bool

	data := &emitter.scalar_data
	data.value = value

	if len(value) == 0 {
		data.multiline = false
		data.flow_plain_allowed = false
		data.block_plain_allowed = true
		data.single_quoted_allowed = true
		data.block_allowed = false
		return
	}

	if len(value) >= 3 && ((value[0] == '-' && value[1] == '-' && value[2] == '-') || (value[0] == '.' && value[1] == '.' && value[2] == '.')) {
		block_indicators = true
		flow_indicators = true
	}

	preceded_by_whitespace = true
	for i, w := 0, 0; i < len(value); i += w {
		w = width(value[i])
		followed_by_whitespace = i+w >= len(value) || isBlank(value, i+w)

		if i == 0 {
			switch value[i] {
			case '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
				flow_indicators = true
				block_indicators = true
			case '?', ':':
				flow_indicators = true
				if followed_by_whitespace {
					block_indicators = true
				}
			case '-':
				if followed_by_whitespace {
					flow_indicators = true
					block_indicators = true
				}
			}
		} else {
			switch value[i] {
			case ',', '?', '[', ']', '{', '}':
				flow_indicators = true
			case ':':
				flow_indicators = true
				if followed_by_whitespace {
					block_indicators = true
				}
			case '#':
				if preceded_by_whitespace {
					flow_indicators = true
					block_indicators = true
				}
			}
		}

		if value[i] == '\t' {
			tab_characters = true
		} else if !isPrintable(value, i) || !isASCII(value, i) && !emitter.unicode {
			special_characters = true
		}
		if isSpace(value, i) {
			if i == 0 {
				leading_space = true
			}
			if i+w == len(value) {
				trailing_space = true
			}
			if previous_break {
				break_space = true
			}
			previous_space = true
			previous_break = false
		} else if isLineBreak(value, i) {
			line_breaks = true
			if i == 0 {
				leading_break = true
			}
			if i+w == len(value) {
				trailing_break = true
			}
			if previous_space {
				space_break = true
			}
			previous_space = false
			previous_break = true
		} else {
			previous_space = false
			previous_break = false
		}

		preceded_by_whitespace = isBlankOrZero(value, i)
	}

	data.multiline = line_breaks
	data.flow_plain_allowed = true
	data.block_plain_allowed = true
	data.single_quoted_allowed = true
	data.block_allowed = true

	if leading_space || leading_break || trailing_space || trailing_break {
		data.flow_plain_allowed = false
		data.block_plain_allowed = false
	}
	if trailing_space {
		data.block_allowed = false
	}
	if break_space {
		data.flow_plain_allowed = false
		data.block_plain_allowed = false
		data.single_quoted_allowed = false
	}
	if space_break || tab_characters || special_characters {
		data.flow_plain_allowed = false
		data.block_plain_allowed = false
		data.single_quoted_allowed = false
	}
	if space_break || special_characters {
		data.block_allowed = false
	}
	if line_breaks {
		data.flow_plain_allowed = false
		data.block_plain_allowed = false
	}
	if flow_indicators {
		data.flow_plain_allowed = false
	}
	if block_indicators {
		data.block_plain_allowed = false
	}
}

// analyzeImplicit works out which renderings of a scalar read back with
// its tag. With a schema, a specific tag is compared with what the plain
// text resolves to; otherwise the event's own flags are used.
func (emitter *Emitter) analyzeImplicit(event *Event) {
	data := &emitter.scalar_data
	data.plain_implicit = event.Implicit
	data.quoted_implicit = event.QuotedImplicit
	data.force_plain = false
	data.force_quote = false
	if emitter.schema == nil || event.Tag.IsNonSpecific() || emitter.canonical {
		return
	}
	resolved, ok := emitter.schema.ResolveScalar(event.Value)
	switch {
	case ok && resolved == event.Tag:
		data.plain_implicit = true
		data.quoted_implicit = event.Tag == STR_TAG
		data.force_plain = event.Tag != STR_TAG
	case event.Tag == STR_TAG:
		data.plain_implicit = false
		data.quoted_implicit = true
		data.force_quote = true
	}
}

// Check if the event data is valid.
func (emitter *Emitter) analyzeEvent(event *Event) error {
	emitter.anchor_data.anchor = nil
	emitter.tag_data.handle = nil
	emitter.tag_data.suffix = nil
	emitter.scalar_data.value = nil

	if !utf8.ValidString(string(event.Anchor)) || !utf8.ValidString(string(event.Tag)) ||
		!utf8.ValidString(event.Value) {
		return emitterError("invalid UTF-8 in " + event.Type.String() + " event")
	}

	switch event.Type {
	case ALIAS_EVENT:
		return emitter.analyzeAnchor(event.Anchor, true)

	case SCALAR_EVENT:
		if !event.Anchor.IsEmpty() {
			if err := emitter.analyzeAnchor(event.Anchor, false); err != nil {
				return err
			}
		}
		emitter.analyzeImplicit(event)
		data := &emitter.scalar_data
		if !event.Tag.IsEmpty() && (emitter.canonical || (!data.plain_implicit && !data.quoted_implicit)) {
			if err := emitter.analyzeTag(event.Tag); err != nil {
				return err
			}
		}
		emitter.analyzeScalar([]byte(event.Value))

	case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		if !event.Anchor.IsEmpty() {
			if err := emitter.analyzeAnchor(event.Anchor, false); err != nil {
				return err
			}
		}
		implicit := event.Implicit
		if emitter.schema != nil && !event.Tag.IsNonSpecific() {
			if resolved, ok := emitter.schema.ResolveNonSpecific(event, nil); ok && resolved == event.Tag {
				implicit = true
			}
		}
		if !event.Tag.IsEmpty() && (emitter.canonical || !implicit) {
			if err := emitter.analyzeTag(event.Tag); err != nil {
				return err
			}
		}
	}
	return nil
}

func (emitter *Emitter) writeIndent() error {
	indent := emitter.indent
	if indent < 0 {
		indent = 0
	}
	if !emitter.indention || emitter.column > indent || (emitter.column == indent && !emitter.whitespace) {
		if err := emitter.putLineBreak(); err != nil {
			return err
		}
	}
	for emitter.column < indent {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}
	emitter.whitespace = true
	return nil
}

func (emitter *Emitter) writeIndicator(indicator []byte, need_whitespace, is_whitespace, is_indention bool) error {
	if need_whitespace && !emitter.whitespace {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}
	if err := emitter.writeAll(indicator); err != nil {
		return err
	}
	emitter.whitespace = is_whitespace
	emitter.indention = (emitter.indention && is_indention)
	emitter.OpenEnded = false
	return nil
}

func (emitter *Emitter) writeAnchor(value []byte) error {
	if err := emitter.writeAll(value); err != nil {
		return err
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

func (emitter *Emitter) writeTagHandle(value []byte) error {
	if !emitter.whitespace {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}
	if err := emitter.writeAll(value); err != nil {
		return err
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

func (emitter *Emitter) writeTagContent(value []byte, need_whitespace bool) error {
	if need_whitespace && !emitter.whitespace {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}
	for i := 0; i < len(value); {
		var must_write bool
		switch value[i] {
		case ';', '/', '?', ':', '@', '&', '=', '+', '$', ',', '_', '.', '~', '*', '\'', '(', ')', '[', ']':
			must_write = true
		default:
			must_write = isAlpha(value, i)
		}
		if must_write {
			if err := emitter.write(value, &i); err != nil {
				return err
			}
			continue
		}
		w := width(value[i])
		for k := 0; k < w; k++ {
			if err := emitter.putEscapedOctet(value[i]); err != nil {
				return err
			}
			i++
		}
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

// putEscapedOctet writes octet as a %XX URI escape.
func (emitter *Emitter) putEscapedOctet(octet byte) error {
	if err := emitter.put('%'); err != nil {
		return err
	}
	if err := emitter.put(hexDigit(octet >> 4)); err != nil {
		return err
	}
	return emitter.put(hexDigit(octet & 0x0f))
}

func hexDigit(c byte) byte {
	if c < 10 {
		return c + '0'
	}
	return c + 'A' - 10
}

func (emitter *Emitter) writePlainScalar(value []byte, allow_breaks bool) error {
	if len(value) > 0 && !emitter.whitespace {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}

	spaces := false
	breaks := false
	for i := 0; i < len(value); {
		if isSpace(value, i) {
			if allow_breaks && !spaces && emitter.column > emitter.best_width && i+1 < len(value) && !isSpace(value, i+1) {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
				i += width(value[i])
			} else if err := emitter.write(value, &i); err != nil {
				return err
			}
			spaces = true
		} else if isLineBreak(value, i) {
			if !breaks && value[i] == '\n' {
				if err := emitter.putLineBreak(); err != nil {
					return err
				}
			}
			if err := emitter.writeLineBreak(value, &i); err != nil {
				return err
			}
			breaks = true
		} else {
			if breaks {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
			}
			if err := emitter.write(value, &i); err != nil {
				return err
			}
			emitter.indention = false
			spaces = false
			breaks = false
		}
	}

	if len(value) > 0 {
		emitter.whitespace = false
	}
	emitter.indention = false
	if emitter.root_context {
		emitter.OpenEnded = true
	}
	return nil
}

func (emitter *Emitter) writeSingleQuotedScalar(value []byte, allow_breaks bool) error {
	if err := emitter.writeIndicator([]byte{'\''}, true, false, false); err != nil {
		return err
	}

	spaces := false
	breaks := false
	for i := 0; i < len(value); {
		if isSpace(value, i) {
			if allow_breaks && !spaces && emitter.column > emitter.best_width && i > 0 && i < len(value)-1 && !isSpace(value, i+1) {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
				i += width(value[i])
			} else if err := emitter.write(value, &i); err != nil {
				return err
			}
			spaces = true
		} else if isLineBreak(value, i) {
			if !breaks && value[i] == '\n' {
				if err := emitter.putLineBreak(); err != nil {
					return err
				}
			}
			if err := emitter.writeLineBreak(value, &i); err != nil {
				return err
			}
			breaks = true
		} else {
			if breaks {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
			}
			if value[i] == '\'' {
				if err := emitter.put('\''); err != nil {
					return err
				}
			}
			if err := emitter.write(value, &i); err != nil {
				return err
			}
			emitter.indention = false
			spaces = false
			breaks = false
		}
	}
	if err := emitter.writeIndicator([]byte{'\''}, false, false, false); err != nil {
		return err
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

// doubleQuotedEscapes maps characters with a short escape to its letter.
var doubleQuotedEscapes = map[rune]byte{
	0x00:   '0',
	0x07:   'a',
	0x08:   'b',
	0x09:   't',
	0x0A:   'n',
	0x0b:   'v',
	0x0c:   'f',
	0x0d:   'r',
	0x1b:   'e',
	0x22:   '"',
	0x5c:   '\\',
	0x85:   'N',
	0xA0:   '_',
	0x2028: 'L',
	0x2029: 'P',
}

func (emitter *Emitter) writeDoubleQuotedScalar(value []byte, allow_breaks bool) error {
	spaces := false
	if err := emitter.writeIndicator([]byte{'"'}, true, false, false); err != nil {
		return err
	}

	for i := 0; i < len(value); {
		if !isPrintable(value, i) || (!emitter.unicode && !isASCII(value, i)) ||
			isBOM(value, i) || isLineBreak(value, i) ||
			value[i] == '"' || value[i] == '\\' {

			octet := value[i]

			var w int
			var v rune
			switch {
			case octet&0x80 == 0x00:
				w, v = 1, rune(octet&0x7F)
			case octet&0xE0 == 0xC0:
				w, v = 2, rune(octet&0x1F)
			case octet&0xF0 == 0xE0:
				w, v = 3, rune(octet&0x0F)
			case octet&0xF8 == 0xF0:
				w, v = 4, rune(octet&0x07)
			}
			for k := 1; k < w; k++ {
				octet = value[i+k]
				v = (v << 6) + (rune(octet) & 0x3F)
			}
			i += w

			if err := emitter.writeEscape(v); err != nil {
				return err
			}
			spaces = false
		} else if isSpace(value, i) {
			if allow_breaks && !spaces && emitter.column > emitter.best_width && i > 0 && i < len(value)-1 {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
				if isSpace(value, i+1) {
					if err := emitter.put('\\'); err != nil {
						return err
					}
				}
				i += width(value[i])
			} else if err := emitter.write(value, &i); err != nil {
				return err
			}
			spaces = true
		} else {
			if err := emitter.write(value, &i); err != nil {
				return err
			}
			spaces = false
		}
	}
	if err := emitter.writeIndicator([]byte{'"'}, false, false, false); err != nil {
		return err
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

// writeEscape writes the double-quoted escape sequence for v.
func (emitter *Emitter) writeEscape(v rune) error {
	if err := emitter.put('\\'); err != nil {
		return err
	}
	if c, ok := doubleQuotedEscapes[v]; ok {
		return emitter.put(c)
	}
	var indicator byte
	var w int
	switch {
	case v <= 0xFF:
		indicator, w = 'x', 2
	case v <= 0xFFFF:
		indicator, w = 'u', 4
	default:
		indicator, w = 'U', 8
	}
	if err := emitter.put(indicator); err != nil {
		return err
	}
	for k := (w - 1) * 4; k >= 0; k -= 4 {
		if err := emitter.put(hexDigit(byte((v >> uint(k)) & 0x0F))); err != nil {
			return err
		}
	}
	return nil
}

func (emitter *Emitter) writeBlockScalarHints(value []byte) error {
	if isSpace(value, 0) || isLineBreak(value, 0) {
		// The indicator is relative to the parent node, whose indent was
		// pushed when the scalar's own indent was set.
		parent := max(emitter.indents[len(emitter.indents)-1], 0)
		indent_hint := []byte{'0' + byte(emitter.indent-parent)}
		if err := emitter.writeIndicator(indent_hint, false, false, false); err != nil {
			return err
		}
	}

	emitter.OpenEnded = false

	var chomp_hint [1]byte
	if len(value) == 0 {
		chomp_hint[0] = '-'
	} else {
		i := len(value) - 1
		for value[i]&0xC0 == 0x80 {
			i--
		}
		if !isLineBreak(value, i) {
			chomp_hint[0] = '-'
		} else if i == 0 {
			chomp_hint[0] = '+'
			emitter.OpenEnded = true
		} else {
			i--
			for value[i]&0xC0 == 0x80 {
				i--
			}
			if isLineBreak(value, i) {
				chomp_hint[0] = '+'
				emitter.OpenEnded = true
			}
		}
	}
	if chomp_hint[0] != 0 {
		if err := emitter.writeIndicator(chomp_hint[:], false, false, false); err != nil {
			return err
		}
	}
	return nil
}

func (emitter *Emitter) writeLiteralScalar(value []byte) error {
	if err := emitter.writeIndicator([]byte{'|'}, true, false, false); err != nil {
		return err
	}
	if err := emitter.writeBlockScalarHints(value); err != nil {
		return err
	}
	if err := emitter.putLineBreak(); err != nil {
		return err
	}
	emitter.whitespace = true
	breaks := true
	for i := 0; i < len(value); {
		if isLineBreak(value, i) {
			if err := emitter.writeLineBreak(value, &i); err != nil {
				return err
			}
			breaks = true
		} else {
			if breaks {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
			}
			if err := emitter.write(value, &i); err != nil {
				return err
			}
			emitter.indention = false
			breaks = false
		}
	}
	return nil
}

func (emitter *Emitter) writeFoldedScalar(value []byte) error {
	if err := emitter.writeIndicator([]byte{'>'}, true, false, false); err != nil {
		return err
	}
	if err := emitter.writeBlockScalarHints(value); err != nil {
		return err
	}
	if err := emitter.putLineBreak(); err != nil {
		return err
	}
	emitter.whitespace = true

	breaks := true
	leading_spaces := true
	for i := 0; i < len(value); {
		if isLineBreak(value, i) {
			if !breaks && !leading_spaces && value[i] == '\n' {
				// A single break between two folded lines needs doubling,
				// unless the next line is more indented.
				k := i
				for k < len(value) && isLineBreak(value, k) {
					k += width(value[k])
				}
				if k < len(value) && !isBlankOrZero(value, k) {
					if err := emitter.putLineBreak(); err != nil {
						return err
					}
				}
			}
			if err := emitter.writeLineBreak(value, &i); err != nil {
				return err
			}
			breaks = true
		} else {
			if breaks {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
				leading_spaces = isBlank(value, i)
			}
			if !breaks && isSpace(value, i) && i+1 < len(value) && !isSpace(value, i+1) && emitter.column > emitter.best_width {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
				i += width(value[i])
			} else if err := emitter.write(value, &i); err != nil {
				return err
			}
			emitter.indention = false
			breaks = false
		}
	}
	return nil
}
