// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Scanner stage: converts a character stream into tokens.
//
// The scanner keeps an indentation stack for the block context and a flow
// level for bracketed collections. BLOCK-SEQUENCE-START, BLOCK-MAPPING-START
// and BLOCK-END tokens are synthesized from indentation changes. Mapping keys
// written without '?' ("simple keys") are only recognized once the following
// ':' is found, so each flow level remembers the position where a simple key
// could have started and a KEY token is inserted back into the queue when the
// ':' arrives.
//
// For example, the document
//
//	key: value
//	list:
//	  - a
//
// is scanned into
//
//	STREAM-START
//	BLOCK-MAPPING-START
//	KEY SCALAR("key",plain) VALUE SCALAR("value",plain)
//	KEY SCALAR("list",plain) VALUE
//	BLOCK-SEQUENCE-START
//	BLOCK-ENTRY SCALAR("a",plain)
//	BLOCK-END
//	BLOCK-END
//	STREAM-END

package libyaml

import (
	"fmt"
	"io"
)

// max_flow_level limits the flow_level
const max_flow_level = 10000

// max_indents limits the indents stack size
const max_indents = 10000

// max_simple_key_length is how far a ':' may follow the start of its
// implicit key.
const max_simple_key_length = 1024

// max_number_length is the number of digits accepted in a %YAML version
// component.
const max_number_length = 2

// simpleKey is a position where a mapping key may have started.
type simpleKey struct {
	possible     bool // Is a simple key possible?
	required     bool // Is a simple key required?
	token_number int  // The number of the token.
	mark         Mark // The position mark.
}

// Scanner turns YAML text into tokens.
// A Scanner processes exactly one stream and is not safe for concurrent use.
type Scanner struct {
	err error // The first error; every later call returns it.

	// Reader stuff

	read_handler func(s *Scanner, buffer []byte) (n int, err error)

	input_reader io.Reader // Streaming input.
	input        []byte    // Byte slice input.
	input_pos    int

	eof         bool // EOF flag
	bom_checked bool // Was the leading BOM looked for?

	buffer     []byte // The working buffer.
	buffer_pos int    // The current position of the buffer.

	unread int // The number of unread characters in the buffer.

	raw_buffer     []byte // The raw buffer.
	raw_buffer_pos int    // The current position of the buffer.

	offset int // The offset of the current position (in bytes).

	// Scanner stuff

	mark Mark // The mark of the current position.

	stream_start_produced bool // Have we started to scan the input stream?
	stream_end_produced   bool // Have we reached the end of the input stream?

	flow_level int // The number of unclosed '[' and '{' indicators.

	tokens          []Token // The tokens queue.
	tokens_head     int     // The head of the tokens queue.
	tokens_parsed   int     // The number of tokens fetched from the queue.
	token_available bool    // Does the tokens queue contain a token ready for dequeueing.

	indent  int   // The current indentation level.
	indents []int // The indentation levels stack.

	simple_key_allowed bool        // May a simple key occur at the current position?
	simple_keys        []simpleKey // The stack of simple keys.
	simple_keys_by_tok map[int]int // possible simple_key indexes indexed by token_number
}

// NewScanner creates a scanner. An input must be set with SetInputString or
// SetInputReader before the first Scan.
func NewScanner() Scanner {
	return Scanner{
		raw_buffer: make([]byte, 0, input_raw_buffer_size),
		buffer:     make([]byte, 0, input_buffer_size),
		mark:       Mark{Line: 1},
	}
}

// Scan fills token with the next token of the stream. After STREAM-END it
// returns io.EOF. After an error, the same error is returned on every call.
func (s *Scanner) Scan(token *Token) error {
	*token = Token{}
	if s.err != nil {
		return s.err
	}
	if s.stream_end_produced {
		return io.EOF
	}
	head, err := s.peekToken()
	if err != nil {
		return err
	}
	*token = *head
	s.skipToken()
	return nil
}

// PeekToken returns the next token without consuming it. The returned token
// is only valid until the next call on the scanner.
func (s *Scanner) PeekToken() (*Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.stream_end_produced {
		return nil, io.EOF
	}
	return s.peekToken()
}

// Mark returns the current scanning position.
func (s *Scanner) Mark() Mark {
	return s.mark
}

// peekToken gets the token at the head of the queue, fetching more tokens
// when needed.
func (s *Scanner) peekToken() (*Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.token_available {
		return &s.tokens[s.tokens_head], nil
	}
	if err := s.fetchMoreTokens(); err != nil {
		return nil, err
	}
	return &s.tokens[s.tokens_head], nil
}

// skipToken removes the token at the head of the queue.
func (s *Scanner) skipToken() {
	s.token_available = false
	s.tokens_parsed++
	s.stream_end_produced = s.tokens[s.tokens_head].Type == STREAM_END_TOKEN
	s.tokens_head++
}

func (s *Scanner) insertToken(pos int, token *Token) {
	// Check if we can move the queue at the beginning of the buffer.
	if s.tokens_head > 0 && len(s.tokens) == cap(s.tokens) {
		if s.tokens_head != len(s.tokens) {
			copy(s.tokens, s.tokens[s.tokens_head:])
		}
		s.tokens = s.tokens[:len(s.tokens)-s.tokens_head]
		s.tokens_head = 0
	}
	s.tokens = append(s.tokens, *token)
	if pos < 0 {
		return
	}
	copy(s.tokens[s.tokens_head+pos+1:], s.tokens[s.tokens_head+pos:])
	s.tokens[s.tokens_head+pos] = *token
}

// cache ensures at least n characters are available in the buffer.
func (s *Scanner) cache(n int) error {
	if s.unread >= n {
		return nil
	}
	return s.updateBuffer(n)
}

// Advance the buffer pointer.
func (s *Scanner) skip() {
	s.mark.Index++
	s.mark.Column++
	s.unread--
	s.buffer_pos += width(s.buffer[s.buffer_pos])
}

func (s *Scanner) skipLine() {
	if isCRLF(s.buffer, s.buffer_pos) {
		s.mark.Index += 2
		s.mark.Column = 0
		s.mark.Line++
		s.unread -= 2
		s.buffer_pos += 2
	} else if isLineBreak(s.buffer, s.buffer_pos) {
		s.mark.Index++
		s.mark.Column = 0
		s.mark.Line++
		s.unread--
		s.buffer_pos += width(s.buffer[s.buffer_pos])
	}
}

// Copy a character to a string buffer and advance pointers.
func (s *Scanner) read(b []byte) []byte {
	w := width(s.buffer[s.buffer_pos])
	if w == 0 {
		panic("invalid character sequence")
	}
	b = append(b, s.buffer[s.buffer_pos:s.buffer_pos+w]...)
	s.buffer_pos += w
	s.mark.Index++
	s.mark.Column++
	s.unread--
	return b
}

// Copy a line break character to a string buffer and advance pointers.
func (s *Scanner) readLine(b []byte) []byte {
	buf := s.buffer
	pos := s.buffer_pos
	switch {
	case buf[pos] == '\r' && buf[pos+1] == '\n':
		// CR LF . LF
		b = append(b, '\n')
		s.buffer_pos += 2
		s.mark.Index++
		s.unread--
	case buf[pos] == '\r' || buf[pos] == '\n':
		// CR|LF . LF
		b = append(b, '\n')
		s.buffer_pos += 1
	case buf[pos] == '\xC2' && buf[pos+1] == '\x85':
		// NEL . LF
		b = append(b, '\n')
		s.buffer_pos += 2
	case buf[pos] == '\xE2' && buf[pos+1] == '\x80' && (buf[pos+2] == '\xA8' || buf[pos+2] == '\xA9'):
		// LS|PS . LS|PS
		b = append(b, buf[pos:pos+3]...)
		s.buffer_pos += 3
	default:
		return b
	}
	s.mark.Index++
	s.mark.Column = 0
	s.mark.Line++
	s.unread--
	return b
}

// skipBlanks eats spaces and tabs.
func (s *Scanner) skipBlanks() error {
	if err := s.cache(1); err != nil {
		return err
	}
	for isBlank(s.buffer, s.buffer_pos) {
		s.skip()
		if err := s.cache(1); err != nil {
			return err
		}
	}
	return nil
}

// skipComment eats a comment up to, not including, the line break.
func (s *Scanner) skipComment() error {
	for !isBreakOrZero(s.buffer, s.buffer_pos) {
		s.skip()
		if err := s.cache(1); err != nil {
			return err
		}
	}
	return nil
}

// Set the scanner error and return it.
func (s *Scanner) scannerError(context string, context_mark Mark, problem string) error {
	s.err = ScannerError{
		ContextMessage: context,
		ContextMark:    context_mark,
		Mark:           s.mark,
		Message:        problem,
	}
	return s.err
}

// Ensure that the tokens queue contains at least one token which can be
// returned to the parser.
func (s *Scanner) fetchMoreTokens() error {
	// While we need more tokens to fetch, do it.
	for {
		if s.tokens_head != len(s.tokens) {
			// If a potential simple key is at the head position, we need to fetch
			// the next token to disambiguate it.
			head_tok_idx, ok := s.simple_keys_by_tok[s.tokens_parsed]
			if !ok {
				break
			}
			valid, err := s.simpleKeyIsValid(&s.simple_keys[head_tok_idx])
			if err != nil {
				return err
			}
			if !valid {
				break
			}
		}
		// Fetch the next token.
		if err := s.fetchNextToken(); err != nil {
			return err
		}
	}

	s.token_available = true
	return nil
}

// The dispatcher for token fetchers.
func (s *Scanner) fetchNextToken() error {
	// Ensure that the buffer is initialized.
	if err := s.cache(1); err != nil {
		return err
	}

	// Check if we just started scanning.  Fetch STREAM-START then.
	if !s.stream_start_produced {
		s.fetchStreamStart()
		return nil
	}

	// Eat whitespaces and comments until we reach the next token.
	if err := s.scanToNextToken(); err != nil {
		return err
	}

	// Check the indentation level against the current column.
	s.unrollIndent(s.mark.Column)

	// Ensure that the buffer contains at least 4 characters.  4 is the length
	// of the longest indicators ('--- ' and '... ').
	if err := s.cache(4); err != nil {
		return err
	}

	buf := s.buffer
	pos := s.buffer_pos

	// Is it the end of the stream?
	if isZeroChar(buf, pos) {
		return s.fetchStreamEnd()
	}

	// Is it a directive?
	if s.mark.Column == 0 && buf[pos] == '%' {
		return s.fetchDirective()
	}

	// Is it the document start indicator?
	if s.mark.Column == 0 && buf[pos] == '-' && buf[pos+1] == '-' && buf[pos+2] == '-' && isBlankOrZero(buf, pos+3) {
		return s.fetchDocumentIndicator(DOCUMENT_START_TOKEN)
	}

	// Is it the document end indicator?
	if s.mark.Column == 0 && buf[pos] == '.' && buf[pos+1] == '.' && buf[pos+2] == '.' && isBlankOrZero(buf, pos+3) {
		return s.fetchDocumentIndicator(DOCUMENT_END_TOKEN)
	}

	switch {
	case buf[pos] == '[':
		return s.fetchFlowCollectionStart(FLOW_SEQUENCE_START_TOKEN)
	case buf[pos] == '{':
		return s.fetchFlowCollectionStart(FLOW_MAPPING_START_TOKEN)
	case buf[pos] == ']':
		return s.fetchFlowCollectionEnd(FLOW_SEQUENCE_END_TOKEN)
	case buf[pos] == '}':
		return s.fetchFlowCollectionEnd(FLOW_MAPPING_END_TOKEN)
	case buf[pos] == ',':
		return s.fetchFlowEntry()
	case buf[pos] == '-' && isBlankOrZero(buf, pos+1):
		return s.fetchBlockEntry()
	case buf[pos] == '?' && (s.flow_level > 0 || isBlankOrZero(buf, pos+1)):
		return s.fetchKey()
	case buf[pos] == ':' && (s.flow_level > 0 || isBlankOrZero(buf, pos+1)):
		return s.fetchValue()
	case buf[pos] == '*':
		return s.fetchAnchor(ALIAS_TOKEN)
	case buf[pos] == '&':
		return s.fetchAnchor(ANCHOR_TOKEN)
	case buf[pos] == '!':
		return s.fetchTag()
	case buf[pos] == '|' && s.flow_level == 0:
		return s.fetchBlockScalar(true)
	case buf[pos] == '>' && s.flow_level == 0:
		return s.fetchBlockScalar(false)
	case buf[pos] == '\'':
		return s.fetchFlowScalar(true)
	case buf[pos] == '"':
		return s.fetchFlowScalar(false)
	}

	// Is it a plain scalar?
	//
	// A plain scalar may start with any non-blank characters except
	//
	//      '-', '?', ':', ',', '[', ']', '{', '}',
	//      '#', '&', '*', '!', '|', '>', '\'', '\"',
	//      '%', '@', '`'.
	//
	// In the block context (and, for the '-' indicator, in the flow context
	// too), it may also start with the characters
	//
	//      '-', '?', ':'
	//
	// if it is followed by a non-space character.
	if !(isBlankOrZero(buf, pos) || isPlainExcluded(buf[pos])) ||
		(buf[pos] == '-' && !isBlank(buf, pos+1)) ||
		(s.flow_level == 0 && (buf[pos] == '?' || buf[pos] == ':') && !isBlankOrZero(buf, pos+1)) {
		return s.fetchPlainScalar()
	}

	return s.scannerError("while scanning for the next token", s.mark,
		"found character that cannot start any token")
}

// isPlainExcluded reports indicator characters that cannot start a plain
// scalar on their own.
func isPlainExcluded(c byte) bool {
	switch c {
	case '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>',
		'\'', '"', '%', '@', '`':
		return true
	}
	return false
}

func (s *Scanner) simpleKeyIsValid(simple_key *simpleKey) (bool, error) {
	if !simple_key.possible {
		return false, nil
	}

	// An implicit key is restricted to a single line, and the ':' must
	// appear at most 1024 characters beyond its start.
	if simple_key.mark.Line < s.mark.Line || simple_key.mark.Index+max_simple_key_length < s.mark.Index {
		// Check if the potential simple key to be removed is required.
		if simple_key.required {
			return false, s.scannerError("while scanning a simple key", simple_key.mark,
				"could not find expected ':'")
		}
		simple_key.possible = false
		return false, nil
	}
	return true, nil
}

// Check if a simple key may start at the current position and add it if
// needed.
func (s *Scanner) saveSimpleKey() error {
	// A simple key is required at the current position if the scanner is in
	// the block context and the current column coincides with the indentation
	// level.
	required := s.flow_level == 0 && s.indent == s.mark.Column

	// If the current position may start a simple key, save it.
	if s.simple_key_allowed {
		simple_key := simpleKey{
			possible:     true,
			required:     required,
			token_number: s.tokens_parsed + (len(s.tokens) - s.tokens_head),
			mark:         s.mark,
		}

		if err := s.removeSimpleKey(); err != nil {
			return err
		}
		s.simple_keys[len(s.simple_keys)-1] = simple_key
		s.simple_keys_by_tok[simple_key.token_number] = len(s.simple_keys) - 1
	}
	return nil
}

// Remove a potential simple key at the current flow level.
func (s *Scanner) removeSimpleKey() error {
	i := len(s.simple_keys) - 1
	if s.simple_keys[i].possible {
		// If the key is required, it is an error.
		if s.simple_keys[i].required {
			return s.scannerError("while scanning a simple key", s.simple_keys[i].mark,
				"could not find expected ':'")
		}
		// Remove the key from the stack.
		s.simple_keys[i].possible = false
		delete(s.simple_keys_by_tok, s.simple_keys[i].token_number)
	}
	return nil
}

// Increase the flow level and resize the simple key list if needed.
func (s *Scanner) increaseFlowLevel() error {
	// Reset the simple key on the next level.
	s.simple_keys = append(s.simple_keys, simpleKey{
		token_number: s.tokens_parsed + (len(s.tokens) - s.tokens_head),
		mark:         s.mark,
	})

	// Increase the flow level.
	s.flow_level++
	if s.flow_level > max_flow_level {
		return s.scannerError("while increasing flow level", s.simple_keys[len(s.simple_keys)-1].mark,
			fmt.Sprintf("exceeded max depth of %d", max_flow_level))
	}
	return nil
}

// Decrease the flow level.
func (s *Scanner) decreaseFlowLevel() {
	if s.flow_level > 0 {
		s.flow_level--
		last := len(s.simple_keys) - 1
		delete(s.simple_keys_by_tok, s.simple_keys[last].token_number)
		s.simple_keys = s.simple_keys[:last]
	}
}

// Push the current indentation level to the stack and set the new level
// the current column is greater than the indentation level.  In this case,
// append or insert the specified token into the token queue.
func (s *Scanner) rollIndent(column, number int, typ TokenType, mark Mark) error {
	// In the flow context, do nothing.
	if s.flow_level > 0 {
		return nil
	}

	if s.indent < column {
		// Push the current indentation level to the stack and set the new
		// indentation level.
		s.indents = append(s.indents, s.indent)
		s.indent = column
		if len(s.indents) > max_indents {
			return s.scannerError("while increasing indent level", s.simple_keys[len(s.simple_keys)-1].mark,
				fmt.Sprintf("exceeded max depth of %d", max_indents))
		}

		// Create a token and insert it into the queue.
		token := Token{
			Type:      typ,
			StartMark: mark,
			EndMark:   mark,
		}
		if number > -1 {
			number -= s.tokens_parsed
		}
		s.insertToken(number, &token)
	}
	return nil
}

// Pop indentation levels from the indents stack until the current level
// becomes less or equal to the column.  For each indentation level, append
// the BLOCK-END token.
func (s *Scanner) unrollIndent(column int) {
	// In the flow context, do nothing.
	if s.flow_level > 0 {
		return
	}

	// Loop through the indentation levels in the stack.
	for s.indent > column {
		// Create a token and append it to the queue.
		token := Token{
			Type:      BLOCK_END_TOKEN,
			StartMark: s.mark,
			EndMark:   s.mark,
		}
		s.insertToken(-1, &token)

		// Pop the indentation level.
		s.indent = s.indents[len(s.indents)-1]
		s.indents = s.indents[:len(s.indents)-1]
	}
}

// Initialize the scanner and produce the STREAM-START token.
func (s *Scanner) fetchStreamStart() {
	// Set the initial indentation.
	s.indent = -1

	// Initialize the simple key stack.
	s.simple_keys = append(s.simple_keys, simpleKey{})

	s.simple_keys_by_tok = make(map[int]int)

	// A simple key is allowed at the beginning of the stream.
	s.simple_key_allowed = true

	// We have started.
	s.stream_start_produced = true

	// Create the STREAM-START token and append it to the queue.
	token := Token{
		Type:      STREAM_START_TOKEN,
		StartMark: s.mark,
		EndMark:   s.mark,
	}
	s.insertToken(-1, &token)
}

// Produce the STREAM-END token and shut down the scanner.
func (s *Scanner) fetchStreamEnd() error {
	// Force new line.
	if s.mark.Column != 0 {
		s.mark.Column = 0
		s.mark.Line++
	}

	// Reset the indentation level.
	s.unrollIndent(-1)

	// Reset simple keys.
	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	s.simple_key_allowed = false

	// Create the STREAM-END token and append it to the queue.
	token := Token{
		Type:      STREAM_END_TOKEN,
		StartMark: s.mark,
		EndMark:   s.mark,
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce a VERSION-DIRECTIVE or TAG-DIRECTIVE token.
func (s *Scanner) fetchDirective() error {
	// Reset the indentation level.
	s.unrollIndent(-1)

	// Reset simple keys.
	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	s.simple_key_allowed = false

	// Create the YAML-DIRECTIVE or TAG-DIRECTIVE token.
	token, err := s.scanDirective()
	if err != nil {
		return err
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the DOCUMENT-START or DOCUMENT-END token.
func (s *Scanner) fetchDocumentIndicator(typ TokenType) error {
	// Reset the indentation level.
	s.unrollIndent(-1)

	// Reset simple keys.
	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	s.simple_key_allowed = false

	// Consume the token.
	start_mark := s.mark

	s.skip()
	s.skip()
	s.skip()

	end_mark := s.mark

	// Create the DOCUMENT-START or DOCUMENT-END token.
	token := Token{
		Type:      typ,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the FLOW-SEQUENCE-START or FLOW-MAPPING-START token.
func (s *Scanner) fetchFlowCollectionStart(typ TokenType) error {
	// The indicators '[' and '{' may start a simple key.
	if err := s.saveSimpleKey(); err != nil {
		return err
	}

	// Increase the flow level.
	if err := s.increaseFlowLevel(); err != nil {
		return err
	}

	// A simple key may follow the indicators '[' and '{'.
	s.simple_key_allowed = true

	// Consume the token.
	start_mark := s.mark
	s.skip()
	end_mark := s.mark

	// Create the FLOW-SEQUENCE-START of FLOW-MAPPING-START token.
	token := Token{
		Type:      typ,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the FLOW-SEQUENCE-END or FLOW-MAPPING-END token.
func (s *Scanner) fetchFlowCollectionEnd(typ TokenType) error {
	// Reset any potential simple key on the current flow level.
	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	// Decrease the flow level.
	s.decreaseFlowLevel()

	// No simple keys after the indicators ']' and '}'.
	s.simple_key_allowed = false

	// Consume the token.
	start_mark := s.mark
	s.skip()
	end_mark := s.mark

	// Create the FLOW-SEQUENCE-END of FLOW-MAPPING-END token.
	token := Token{
		Type:      typ,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the FLOW-ENTRY token.
func (s *Scanner) fetchFlowEntry() error {
	// Reset any potential simple keys on the current flow level.
	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	// Simple keys are allowed after ','.
	s.simple_key_allowed = true

	// Consume the token.
	start_mark := s.mark
	s.skip()
	end_mark := s.mark

	// Create the FLOW-ENTRY token and append it to the queue.
	token := Token{
		Type:      FLOW_ENTRY_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the BLOCK-ENTRY token.
func (s *Scanner) fetchBlockEntry() error {
	// Check if the scanner is in the block context.
	if s.flow_level == 0 {
		// Check if we are allowed to start a new entry.
		if !s.simple_key_allowed {
			return s.scannerError("", s.mark,
				"block sequence entries are not allowed in this context")
		}
		// Add the BLOCK-SEQUENCE-START token if needed.
		if err := s.rollIndent(s.mark.Column, -1, BLOCK_SEQUENCE_START_TOKEN, s.mark); err != nil {
			return err
		}
	}

	// Reset any potential simple keys on the current flow level.
	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	// Simple keys are allowed after '-'.
	s.simple_key_allowed = true

	// Consume the token.
	start_mark := s.mark
	s.skip()
	end_mark := s.mark

	// Create the BLOCK-ENTRY token and append it to the queue.
	token := Token{
		Type:      BLOCK_ENTRY_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the KEY token.
func (s *Scanner) fetchKey() error {
	// In the block context, additional checks are required.
	if s.flow_level == 0 {
		// Check if we are allowed to start a new key (not necessary simple).
		if !s.simple_key_allowed {
			return s.scannerError("", s.mark,
				"mapping keys are not allowed in this context")
		}
		// Add the BLOCK-MAPPING-START token if needed.
		if err := s.rollIndent(s.mark.Column, -1, BLOCK_MAPPING_START_TOKEN, s.mark); err != nil {
			return err
		}
	}

	// Reset any potential simple keys on the current flow level.
	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	// Simple keys are allowed after '?' in the block context.
	s.simple_key_allowed = s.flow_level == 0

	// Consume the token.
	start_mark := s.mark
	s.skip()
	end_mark := s.mark

	// Create the KEY token and append it to the queue.
	token := Token{
		Type:      KEY_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the VALUE token.
func (s *Scanner) fetchValue() error {
	simple_key := &s.simple_keys[len(s.simple_keys)-1]

	// Have we found a simple key?
	valid, err := s.simpleKeyIsValid(simple_key)
	if err != nil {
		return err
	}
	if valid {
		// Create the KEY token and insert it into the queue.
		token := Token{
			Type:      KEY_TOKEN,
			StartMark: simple_key.mark,
			EndMark:   simple_key.mark,
		}
		s.insertToken(simple_key.token_number-s.tokens_parsed, &token)

		// In the block context, we may need to add the BLOCK-MAPPING-START token.
		if err := s.rollIndent(simple_key.mark.Column, simple_key.token_number,
			BLOCK_MAPPING_START_TOKEN, simple_key.mark); err != nil {
			return err
		}

		// Remove the simple key.
		simple_key.possible = false
		delete(s.simple_keys_by_tok, simple_key.token_number)

		// A simple key cannot follow another simple key.
		s.simple_key_allowed = false
	} else {
		// The ':' indicator follows a complex key.

		// In the block context, extra checks are required.
		if s.flow_level == 0 {
			// Check if we are allowed to start a complex value.
			if !s.simple_key_allowed {
				return s.scannerError("", s.mark,
					"mapping values are not allowed in this context")
			}

			// Add the BLOCK-MAPPING-START token if needed.
			if err := s.rollIndent(s.mark.Column, -1, BLOCK_MAPPING_START_TOKEN, s.mark); err != nil {
				return err
			}
		}

		// Simple keys after ':' are allowed in the block context.
		s.simple_key_allowed = s.flow_level == 0
	}

	// Consume the token.
	start_mark := s.mark
	s.skip()
	end_mark := s.mark

	// Create the VALUE token and append it to the queue.
	token := Token{
		Type:      VALUE_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the ALIAS or ANCHOR token.
func (s *Scanner) fetchAnchor(typ TokenType) error {
	// An anchor or an alias could be a simple key.
	if err := s.saveSimpleKey(); err != nil {
		return err
	}

	// A simple key cannot follow an anchor or an alias.
	s.simple_key_allowed = false

	// Create the ALIAS or ANCHOR token and append it to the queue.
	token, err := s.scanAnchor(typ)
	if err != nil {
		return err
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the TAG token.
func (s *Scanner) fetchTag() error {
	// A tag could be a simple key.
	if err := s.saveSimpleKey(); err != nil {
		return err
	}

	// A simple key cannot follow a tag.
	s.simple_key_allowed = false

	// Create the TAG token and append it to the queue.
	token, err := s.scanTag()
	if err != nil {
		return err
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the SCALAR(...,literal) or SCALAR(...,folded) tokens.
func (s *Scanner) fetchBlockScalar(literal bool) error {
	// Remove any potential simple keys.
	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	// A simple key may follow a block scalar.
	s.simple_key_allowed = true

	// Create the SCALAR token and append it to the queue.
	token, err := s.scanBlockScalar(literal)
	if err != nil {
		return err
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the SCALAR(...,single-quoted) or SCALAR(...,double-quoted) tokens.
func (s *Scanner) fetchFlowScalar(single bool) error {
	// A quoted scalar could be a simple key.
	if err := s.saveSimpleKey(); err != nil {
		return err
	}

	// A simple key cannot follow a flow scalar.
	s.simple_key_allowed = false

	// Create the SCALAR token and append it to the queue.
	token, err := s.scanFlowScalar(single)
	if err != nil {
		return err
	}
	s.insertToken(-1, &token)
	return nil
}

// Produce the SCALAR(...,plain) token.
func (s *Scanner) fetchPlainScalar() error {
	// A plain scalar could be a simple key.
	if err := s.saveSimpleKey(); err != nil {
		return err
	}

	// A simple key cannot follow a flow scalar.
	s.simple_key_allowed = false

	// Create the SCALAR token and append it to the queue.
	token, err := s.scanPlainScalar()
	if err != nil {
		return err
	}
	s.insertToken(-1, &token)
	return nil
}

// Eat whitespaces and comments until the next token is found.
func (s *Scanner) scanToNextToken() error {
	// Until the next token is not found.
	for {
		// Allow the BOM mark to start a line.
		if err := s.cache(3); err != nil {
			return err
		}
		if s.mark.Column == 0 && isBOM(s.buffer, s.buffer_pos) {
			s.skip()
		}

		// Eat whitespaces.
		// Tabs are allowed:
		//  - in the flow context
		//  - in the block context, but not at the beginning of the line or
		//  after '-', '?', or ':' (complex value).
		if err := s.cache(1); err != nil {
			return err
		}

		for s.buffer[s.buffer_pos] == ' ' || ((s.flow_level > 0 || !s.simple_key_allowed) && s.buffer[s.buffer_pos] == '\t') {
			s.skip()
			if err := s.cache(1); err != nil {
				return err
			}
		}

		// Eat a comment until a line break.
		if s.buffer[s.buffer_pos] == '#' {
			if err := s.skipComment(); err != nil {
				return err
			}
		}

		// If it is a line break, eat it.
		if !isLineBreak(s.buffer, s.buffer_pos) {
			break // We have found a token.
		}
		if err := s.cache(2); err != nil {
			return err
		}
		s.skipLine()

		// In the block context, a new line may start a simple key.
		if s.flow_level == 0 {
			s.simple_key_allowed = true
		}
	}

	return nil
}

// Scan a YAML-DIRECTIVE or TAG-DIRECTIVE token.
//
// Scope:
//
//	%YAML    1.1    # a comment \n
//	^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
func (s *Scanner) scanDirective() (Token, error) {
	// Eat '%'.
	start_mark := s.mark
	s.skip()

	// Scan the directive name.
	name, err := s.scanDirectiveName(start_mark)
	if err != nil {
		return Token{}, err
	}

	var token Token
	switch name {
	case "YAML":
		// Scan the VERSION directive value.
		major, minor, err := s.scanVersionDirectiveValue(start_mark)
		if err != nil {
			return Token{}, err
		}
		token = Token{
			Type:      VERSION_DIRECTIVE_TOKEN,
			StartMark: start_mark,
			EndMark:   s.mark,
			Major:     major,
			Minor:     minor,
		}
	case "TAG":
		// Scan the TAG directive value.
		handle, prefix, err := s.scanTagDirectiveValue(start_mark)
		if err != nil {
			return Token{}, err
		}
		token = Token{
			Type:      TAG_DIRECTIVE_TOKEN,
			StartMark: start_mark,
			EndMark:   s.mark,
			Value:     handle,
			Prefix:    prefix,
		}
	default:
		return Token{}, s.scannerError("while scanning a directive", start_mark,
			"found unknown directive name")
	}

	// Eat the rest of the line including any comments.
	if err := s.skipBlanks(); err != nil {
		return Token{}, err
	}
	if s.buffer[s.buffer_pos] == '#' {
		if err := s.skipComment(); err != nil {
			return Token{}, err
		}
	}

	// Check if we are at the end of the line.
	if !isBreakOrZero(s.buffer, s.buffer_pos) {
		return Token{}, s.scannerError("while scanning a directive", start_mark,
			"did not find expected comment or line break")
	}

	// Eat a line break.
	if isLineBreak(s.buffer, s.buffer_pos) {
		if err := s.cache(2); err != nil {
			return Token{}, err
		}
		s.skipLine()
	}

	return token, nil
}

// Scan the directive name.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	 ^^^^
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	 ^^^
func (s *Scanner) scanDirectiveName(start_mark Mark) (string, error) {
	// Consume the directive name.
	if err := s.cache(1); err != nil {
		return "", err
	}

	var name []byte
	for isAlpha(s.buffer, s.buffer_pos) {
		name = s.read(name)
		if err := s.cache(1); err != nil {
			return "", err
		}
	}

	// Check if the name is empty.
	if len(name) == 0 {
		return "", s.scannerError("while scanning a directive", start_mark,
			"could not find expected directive name")
	}

	// Check for an blank character after the name.
	if !isBlankOrZero(s.buffer, s.buffer_pos) {
		return "", s.scannerError("while scanning a directive", start_mark,
			"found unexpected non-alphabetical character")
	}
	return string(name), nil
}

// Scan the value of VERSION-DIRECTIVE.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	     ^^^^^^
func (s *Scanner) scanVersionDirectiveValue(start_mark Mark) (major, minor int8, err error) {
	// Eat whitespaces.
	if err := s.skipBlanks(); err != nil {
		return 0, 0, err
	}

	// Consume the major version number.
	if major, err = s.scanVersionDirectiveNumber(start_mark); err != nil {
		return 0, 0, err
	}

	// Eat '.'.
	if s.buffer[s.buffer_pos] != '.' {
		return 0, 0, s.scannerError("while scanning a %YAML directive", start_mark,
			"did not find expected digit or '.' character")
	}

	s.skip()

	// Consume the minor version number.
	if minor, err = s.scanVersionDirectiveNumber(start_mark); err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}

// Scan the version number of VERSION-DIRECTIVE.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	        ^
//	%YAML   1.1     # a comment \n
//	          ^
func (s *Scanner) scanVersionDirectiveNumber(start_mark Mark) (int8, error) {
	// Repeat while the next character is digit.
	if err := s.cache(1); err != nil {
		return 0, err
	}
	var value, length int8
	for isDigit(s.buffer, s.buffer_pos) {
		// Check if the number is too long.
		length++
		if length > max_number_length {
			return 0, s.scannerError("while scanning a %YAML directive", start_mark,
				"found extremely long version number")
		}
		value = value*10 + int8(asDigit(s.buffer, s.buffer_pos))
		s.skip()
		if err := s.cache(1); err != nil {
			return 0, err
		}
	}

	// Check if the number was present.
	if length == 0 {
		return 0, s.scannerError("while scanning a %YAML directive", start_mark,
			"did not find expected version number")
	}
	return value, nil
}

// Scan the value of a TAG-DIRECTIVE token.
//
// Scope:
//
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	    ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
func (s *Scanner) scanTagDirectiveValue(start_mark Mark) (handle, prefix string, err error) {
	// Eat whitespaces.
	if err := s.skipBlanks(); err != nil {
		return "", "", err
	}

	// Scan a handle.
	handle_value, err := s.scanTagHandle(true, start_mark)
	if err != nil {
		return "", "", err
	}

	// Expect a whitespace.
	if err := s.cache(1); err != nil {
		return "", "", err
	}
	if !isBlank(s.buffer, s.buffer_pos) {
		return "", "", s.scannerError("while scanning a %TAG directive", start_mark,
			"did not find expected whitespace")
	}

	// Eat whitespaces.
	if err := s.skipBlanks(); err != nil {
		return "", "", err
	}

	// Scan a prefix.
	prefix_value, err := s.scanTagURI(true, nil, start_mark)
	if err != nil {
		return "", "", err
	}

	// Expect a whitespace or line break.
	if err := s.cache(1); err != nil {
		return "", "", err
	}
	if !isBlankOrZero(s.buffer, s.buffer_pos) {
		return "", "", s.scannerError("while scanning a %TAG directive", start_mark,
			"did not find expected whitespace or line break")
	}

	return string(handle_value), string(prefix_value), nil
}

func (s *Scanner) scanAnchor(typ TokenType) (Token, error) {
	context := "while scanning an anchor"
	if typ == ALIAS_TOKEN {
		context = "while scanning an alias"
	}

	// Eat the indicator character.
	start_mark := s.mark
	s.skip()

	// Consume the value.
	if err := s.cache(3); err != nil {
		return Token{}, err
	}

	var name []byte
	for isAnchorChar(s.buffer, s.buffer_pos) {
		name = s.read(name)
		if err := s.cache(3); err != nil {
			return Token{}, err
		}
	}

	end_mark := s.mark

	// Check if length of the anchor is greater than 0 and it is followed by
	// a whitespace character or one of the indicators:
	//
	//      '?', ':', ',', ']', '}', '%', '@', '`'.
	if len(name) == 0 || !(isBlankOrZero(s.buffer, s.buffer_pos) || isAnchorTerminator(s.buffer[s.buffer_pos])) {
		return Token{}, s.scannerError(context, start_mark,
			"did not find expected alphabetic or numeric character")
	}

	return Token{
		Type:      typ,
		StartMark: start_mark,
		EndMark:   end_mark,
		Value:     string(name),
	}, nil
}

func isAnchorTerminator(c byte) bool {
	switch c {
	case '?', ':', ',', ']', '}', '%', '@', '`':
		return true
	}
	return false
}

// Scan a TAG token.
func (s *Scanner) scanTag() (Token, error) {
	var handle, suffix []byte
	var err error

	start_mark := s.mark

	// Check if the tag is in the canonical form.
	if err := s.cache(2); err != nil {
		return Token{}, err
	}

	if s.buffer[s.buffer_pos+1] == '<' {
		// Keep the handle as ''

		// Eat '!<'
		s.skip()
		s.skip()

		// Consume the tag value.
		if suffix, err = s.scanTagURI(false, nil, start_mark); err != nil {
			return Token{}, err
		}

		// Check for '>' and eat it.
		if s.buffer[s.buffer_pos] != '>' {
			return Token{}, s.scannerError("while scanning a tag", start_mark,
				"did not find the expected '>'")
		}

		s.skip()
	} else {
		// The tag has either the '!suffix' or the '!handle!suffix' form.

		// First, try to scan a handle.
		if handle, err = s.scanTagHandle(false, start_mark); err != nil {
			return Token{}, err
		}

		// Check if it is, indeed, handle.
		if handle[0] == '!' && len(handle) > 1 && handle[len(handle)-1] == '!' {
			// Scan the suffix now.
			if suffix, err = s.scanTagURI(false, nil, start_mark); err != nil {
				return Token{}, err
			}
		} else {
			// It wasn't a handle after all.  Scan the rest of the tag.
			if suffix, err = s.scanTagURI(false, handle, start_mark); err != nil {
				return Token{}, err
			}

			// Set the handle to '!'.
			handle = []byte{'!'}

			// A special case: the '!' tag.  Set the handle to '' and the
			// suffix to '!'.
			if len(suffix) == 0 {
				handle, suffix = suffix, handle
			}
		}
	}

	// Check the character which ends the tag.
	if err := s.cache(1); err != nil {
		return Token{}, err
	}
	if !isBlankOrZero(s.buffer, s.buffer_pos) && !(s.flow_level > 0 && isFlowIndicator(s.buffer, s.buffer_pos)) {
		return Token{}, s.scannerError("while scanning a tag", start_mark,
			"did not find expected whitespace or line break")
	}

	return Token{
		Type:      TAG_TOKEN,
		StartMark: start_mark,
		EndMark:   s.mark,
		Value:     string(handle),
		Suffix:    string(suffix),
	}, nil
}

// Scan a tag handle.
func (s *Scanner) scanTagHandle(directive bool, start_mark Mark) ([]byte, error) {
	context := "while parsing a tag"
	if directive {
		context = "while parsing a %TAG directive"
	}

	// Check the initial '!' character.
	if err := s.cache(1); err != nil {
		return nil, err
	}
	if s.buffer[s.buffer_pos] != '!' {
		return nil, s.scannerError(context, start_mark, "did not find expected '!'")
	}

	// Copy the '!' character.
	handle := s.read(nil)

	// Copy all subsequent alphabetical and numerical characters.
	if err := s.cache(1); err != nil {
		return nil, err
	}
	for isAlpha(s.buffer, s.buffer_pos) {
		handle = s.read(handle)
		if err := s.cache(1); err != nil {
			return nil, err
		}
	}

	// Check if the trailing character is '!' and copy it.
	if s.buffer[s.buffer_pos] == '!' {
		handle = s.read(handle)
	} else if directive && string(handle) != "!" {
		// It's either the '!' tag or not really a tag handle.  If it's a %TAG
		// directive, it's an error.  If it's a tag token, it must be a part of URI.
		return nil, s.scannerError(context, start_mark, "did not find expected '!'")
	}

	return handle, nil
}

// Scan a tag.
func (s *Scanner) scanTagURI(directive bool, head []byte, start_mark Mark) ([]byte, error) {
	var uri []byte
	hasTag := len(head) > 0

	// Copy the head if needed.
	//
	// Note that we don't copy the leading '!' character.
	if len(head) > 1 {
		uri = append(uri, head[1:]...)
	}

	// Scan the tag.
	if err := s.cache(1); err != nil {
		return nil, err
	}

	for isTagURIChar(s.buffer, s.buffer_pos) {
		// Inside a flow collection ',' and the closing brackets end the tag.
		if s.flow_level > 0 && !directive && isFlowIndicator(s.buffer, s.buffer_pos) {
			break
		}
		// Check if it is a URI-escape sequence.
		if s.buffer[s.buffer_pos] == '%' {
			var err error
			if uri, err = s.scanURIEscapes(directive, start_mark, uri); err != nil {
				return nil, err
			}
		} else {
			uri = s.read(uri)
		}
		if err := s.cache(1); err != nil {
			return nil, err
		}
		hasTag = true
	}

	if !hasTag {
		context := "while parsing a tag"
		if directive {
			context = "while parsing a %TAG directive"
		}
		return nil, s.scannerError(context, start_mark, "did not find expected tag URI")
	}
	return uri, nil
}

// Decode an URI-escape sequence corresponding to a single UTF-8 character.
func (s *Scanner) scanURIEscapes(directive bool, start_mark Mark, uri []byte) ([]byte, error) {
	context := "while parsing a tag"
	if directive {
		context = "while parsing a %TAG directive"
	}

	// Decode the required number of characters.
	w := 1024
	for w > 0 {
		// Check for a URI-escaped octet.
		if err := s.cache(3); err != nil {
			return nil, err
		}

		if !(s.buffer[s.buffer_pos] == '%' &&
			isHex(s.buffer, s.buffer_pos+1) &&
			isHex(s.buffer, s.buffer_pos+2)) {
			return nil, s.scannerError(context, start_mark, "did not find URI escaped octet")
		}

		// Get the octet.
		octet := byte((asHex(s.buffer, s.buffer_pos+1) << 4) + asHex(s.buffer, s.buffer_pos+2))

		// If it is the leading octet, determine the length of the UTF-8 sequence.
		if w == 1024 {
			w = width(octet)
			if w == 0 {
				return nil, s.scannerError(context, start_mark, "found an incorrect leading UTF-8 octet")
			}
		} else if octet&0xC0 != 0x80 {
			// Check if the trailing octet is correct.
			return nil, s.scannerError(context, start_mark, "found an incorrect trailing UTF-8 octet")
		}

		// Copy the octet and move the pointers.
		uri = append(uri, octet)
		s.skip()
		s.skip()
		s.skip()
		w--
	}
	return uri, nil
}

// Scan a block scalar.
func (s *Scanner) scanBlockScalar(literal bool) (Token, error) {
	const context = "while scanning a block scalar"

	// Eat the indicator '|' or '>'.
	start_mark := s.mark
	s.skip()

	// Scan the additional block scalar indicators.
	if err := s.cache(1); err != nil {
		return Token{}, err
	}

	// Check for a chomping indicator.
	var chomping, increment int
	if s.buffer[s.buffer_pos] == '+' || s.buffer[s.buffer_pos] == '-' {
		// Set the chomping method and eat the indicator.
		if s.buffer[s.buffer_pos] == '+' {
			chomping = +1
		} else {
			chomping = -1
		}
		s.skip()

		// Check for an indentation indicator.
		if err := s.cache(1); err != nil {
			return Token{}, err
		}
		if isDigit(s.buffer, s.buffer_pos) {
			// Check that the indentation is greater than 0.
			if s.buffer[s.buffer_pos] == '0' {
				return Token{}, s.scannerError(context, start_mark,
					"found an indentation indicator equal to 0")
			}

			// Get the indentation level and eat the indicator.
			increment = asDigit(s.buffer, s.buffer_pos)
			s.skip()
		}

	} else if isDigit(s.buffer, s.buffer_pos) {
		// Do the same as above, but in the opposite order.

		if s.buffer[s.buffer_pos] == '0' {
			return Token{}, s.scannerError(context, start_mark,
				"found an indentation indicator equal to 0")
		}
		increment = asDigit(s.buffer, s.buffer_pos)
		s.skip()

		if err := s.cache(1); err != nil {
			return Token{}, err
		}
		if s.buffer[s.buffer_pos] == '+' || s.buffer[s.buffer_pos] == '-' {
			if s.buffer[s.buffer_pos] == '+' {
				chomping = +1
			} else {
				chomping = -1
			}
			s.skip()
		}
	}

	// Eat whitespaces and comments to the end of the line.
	if err := s.skipBlanks(); err != nil {
		return Token{}, err
	}
	if s.buffer[s.buffer_pos] == '#' {
		if err := s.skipComment(); err != nil {
			return Token{}, err
		}
	}

	// Check if we are at the end of the line.
	if !isBreakOrZero(s.buffer, s.buffer_pos) {
		return Token{}, s.scannerError(context, start_mark,
			"did not find expected comment or line break")
	}

	// Eat a line break.
	if isLineBreak(s.buffer, s.buffer_pos) {
		if err := s.cache(2); err != nil {
			return Token{}, err
		}
		s.skipLine()
	}

	end_mark := s.mark

	// Set the indentation level if it was specified.
	var indent int
	if increment > 0 {
		if s.indent >= 0 {
			indent = s.indent + increment
		} else {
			indent = increment
		}
	}

	sc := acquireScratch()
	defer releaseScratch(sc)

	// Scan the leading line breaks and determine the indentation level if needed.
	if err := s.scanBlockScalarBreaks(&indent, sc, start_mark, &end_mark); err != nil {
		return Token{}, err
	}

	// Scan the block scalar content.
	if err := s.cache(1); err != nil {
		return Token{}, err
	}
	var leading_blank, trailing_blank bool
	for s.mark.Column == indent && !isZeroChar(s.buffer, s.buffer_pos) {
		// We are at the beginning of a non-empty line.

		// Is it a trailing whitespace?
		trailing_blank = isBlank(s.buffer, s.buffer_pos)

		// Check if we need to fold the leading line break.
		if !literal && !leading_blank && !trailing_blank && len(sc.leadingBreak) > 0 && sc.leadingBreak[0] == '\n' {
			// Do we need to join the lines by space?
			if len(sc.trailingBreaks) == 0 {
				sc.text = append(sc.text, ' ')
			}
		} else {
			sc.text = append(sc.text, sc.leadingBreak...)
		}
		sc.leadingBreak = sc.leadingBreak[:0]

		// Append the remaining line breaks.
		sc.text = append(sc.text, sc.trailingBreaks...)
		sc.trailingBreaks = sc.trailingBreaks[:0]

		// Is it a leading whitespace?
		leading_blank = isBlank(s.buffer, s.buffer_pos)

		// Consume the current line.
		for !isBreakOrZero(s.buffer, s.buffer_pos) {
			sc.text = s.read(sc.text)
			if err := s.cache(1); err != nil {
				return Token{}, err
			}
		}

		// Consume the line break.
		if err := s.cache(2); err != nil {
			return Token{}, err
		}

		sc.leadingBreak = s.readLine(sc.leadingBreak)

		// Eat the following indentation spaces and line breaks.
		if err := s.scanBlockScalarBreaks(&indent, sc, start_mark, &end_mark); err != nil {
			return Token{}, err
		}
	}

	// Chomp the tail.
	if chomping != -1 {
		sc.text = append(sc.text, sc.leadingBreak...)
	}
	if chomping == 1 {
		sc.text = append(sc.text, sc.trailingBreaks...)
	}

	token := Token{
		Type:      SCALAR_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
		Value:     string(sc.text),
		Style:     LITERAL_SCALAR_STYLE,
	}
	if !literal {
		token.Style = FOLDED_SCALAR_STYLE
	}
	return token, nil
}

// Scan indentation spaces and line breaks for a block scalar.  Determine the
// indentation level if needed.
func (s *Scanner) scanBlockScalarBreaks(indent *int, sc *scratch, start_mark Mark, end_mark *Mark) error {
	*end_mark = s.mark

	// Eat the indentation spaces and line breaks.
	max_indent := 0
	for {
		// Eat the indentation spaces.
		if err := s.cache(1); err != nil {
			return err
		}
		for (*indent == 0 || s.mark.Column < *indent) && isSpace(s.buffer, s.buffer_pos) {
			s.skip()
			if err := s.cache(1); err != nil {
				return err
			}
		}
		if s.mark.Column > max_indent {
			max_indent = s.mark.Column
		}

		// A tab inside the indentation is an error. Past it, the tab
		// starts the content of the line.
		if isTab(s.buffer, s.buffer_pos) {
			min_indent := *indent
			if min_indent == 0 {
				min_indent = max(s.indent+1, 1)
			}
			if s.mark.Column < min_indent {
				return s.scannerError("while scanning a block scalar", start_mark,
					"found a tab character where an indentation space is expected")
			}
			break
		}

		// Have we found a non-empty line?
		if !isLineBreak(s.buffer, s.buffer_pos) {
			break
		}

		// Consume the line break.
		if err := s.cache(2); err != nil {
			return err
		}
		sc.trailingBreaks = s.readLine(sc.trailingBreaks)
		*end_mark = s.mark
	}

	// Determine the indentation level if needed.
	if *indent == 0 {
		*indent = max_indent
		if *indent < s.indent+1 {
			*indent = s.indent + 1
		}
		if *indent < 1 {
			*indent = 1
		}
	}
	return nil
}

// isDocumentIndicator reports whether the buffer holds '---' or '...'
// followed by a blank at the start of a line.
func (s *Scanner) isDocumentIndicator() bool {
	buf, pos := s.buffer, s.buffer_pos
	return s.mark.Column == 0 &&
		((buf[pos] == '-' && buf[pos+1] == '-' && buf[pos+2] == '-') ||
			(buf[pos] == '.' && buf[pos+1] == '.' && buf[pos+2] == '.')) &&
		isBlankOrZero(buf, pos+3)
}

// Scan a quoted scalar.
func (s *Scanner) scanFlowScalar(single bool) (Token, error) {
	const context = "while scanning a quoted scalar"

	// Eat the left quote.
	start_mark := s.mark
	s.skip()

	sc := acquireScratch()
	defer releaseScratch(sc)

	// Consume the content of the quoted scalar.
	for {
		// Check that there are no document indicators at the beginning of the line.
		if err := s.cache(4); err != nil {
			return Token{}, err
		}

		if s.isDocumentIndicator() {
			return Token{}, s.scannerError(context, start_mark,
				"found unexpected document indicator")
		}

		// Check for EOF.
		if isZeroChar(s.buffer, s.buffer_pos) {
			return Token{}, s.scannerError(context, start_mark,
				"found unexpected end of stream")
		}

		// Consume non-blank characters.
		leading_blanks := false
		for !isBlankOrZero(s.buffer, s.buffer_pos) {
			if single && s.buffer[s.buffer_pos] == '\'' && s.buffer[s.buffer_pos+1] == '\'' {
				// Is is an escaped single quote.
				sc.text = append(sc.text, '\'')
				s.skip()
				s.skip()

			} else if single && s.buffer[s.buffer_pos] == '\'' {
				// It is a right single quote.
				break
			} else if !single && s.buffer[s.buffer_pos] == '"' {
				// It is a right double quote.
				break

			} else if !single && s.buffer[s.buffer_pos] == '\\' && isLineBreak(s.buffer, s.buffer_pos+1) {
				// It is an escaped line break.
				if err := s.cache(3); err != nil {
					return Token{}, err
				}
				s.skip()
				s.skipLine()
				leading_blanks = true
				break

			} else if !single && s.buffer[s.buffer_pos] == '\\' {
				// It is an escape sequence.
				code_length := 0

				// Check the escape character.
				switch s.buffer[s.buffer_pos+1] {
				case '0':
					sc.text = append(sc.text, 0)
				case 'a':
					sc.text = append(sc.text, '\x07')
				case 'b':
					sc.text = append(sc.text, '\x08')
				case 't', '\t':
					sc.text = append(sc.text, '\x09')
				case 'n':
					sc.text = append(sc.text, '\x0A')
				case 'v':
					sc.text = append(sc.text, '\x0B')
				case 'f':
					sc.text = append(sc.text, '\x0C')
				case 'r':
					sc.text = append(sc.text, '\x0D')
				case 'e':
					sc.text = append(sc.text, '\x1B')
				case ' ':
					sc.text = append(sc.text, '\x20')
				case '"':
					sc.text = append(sc.text, '"')
				case '\'':
					sc.text = append(sc.text, '\'')
				case '/':
					sc.text = append(sc.text, '/')
				case '\\':
					sc.text = append(sc.text, '\\')
				case 'N': // NEL (#x85)
					sc.text = append(sc.text, '\xC2', '\x85')
				case '_': // #xA0
					sc.text = append(sc.text, '\xC2', '\xA0')
				case 'L': // LS (#x2028)
					sc.text = append(sc.text, '\xE2', '\x80', '\xA8')
				case 'P': // PS (#x2029)
					sc.text = append(sc.text, '\xE2', '\x80', '\xA9')
				case 'x':
					code_length = 2
				case 'u':
					code_length = 4
				case 'U':
					code_length = 8
				default:
					return Token{}, s.scannerError(context, start_mark,
						"found unknown escape character")
				}

				s.skip()
				s.skip()

				// Consume an arbitrary escape code.
				if code_length > 0 {
					var value int

					// Scan the character value.
					if err := s.cache(code_length); err != nil {
						return Token{}, err
					}
					for k := 0; k < code_length; k++ {
						if !isHex(s.buffer, s.buffer_pos+k) {
							return Token{}, s.scannerError(context, start_mark,
								"did not find expected hexdecimal number")
						}
						value = (value << 4) + asHex(s.buffer, s.buffer_pos+k)
					}

					// Check the value and write the character.
					if (value >= 0xD800 && value <= 0xDFFF) || value > 0x10FFFF {
						return Token{}, s.scannerError(context, start_mark,
							"found invalid Unicode character escape code")
					}
					sc.text = appendRune(sc.text, value)

					// Advance the pointer.
					for k := 0; k < code_length; k++ {
						s.skip()
					}
				}
			} else {
				// It is a non-escaped non-blank character.
				sc.text = s.read(sc.text)
			}
			if err := s.cache(2); err != nil {
				return Token{}, err
			}
		}

		if err := s.cache(1); err != nil {
			return Token{}, err
		}

		// Check if we are at the end of the scalar.
		if single {
			if s.buffer[s.buffer_pos] == '\'' {
				break
			}
		} else {
			if s.buffer[s.buffer_pos] == '"' {
				break
			}
		}

		// Consume blank characters.
		for isBlank(s.buffer, s.buffer_pos) || isLineBreak(s.buffer, s.buffer_pos) {
			if isBlank(s.buffer, s.buffer_pos) {
				// Consume a space or a tab character.
				if !leading_blanks {
					sc.whitespaces = s.read(sc.whitespaces)
				} else {
					s.skip()
				}
			} else {
				if err := s.cache(2); err != nil {
					return Token{}, err
				}
				// Check if it is a first line break.
				if !leading_blanks {
					sc.whitespaces = sc.whitespaces[:0]
					sc.leadingBreak = s.readLine(sc.leadingBreak)
					leading_blanks = true
				} else {
					sc.trailingBreaks = s.readLine(sc.trailingBreaks)
				}
			}
			if err := s.cache(1); err != nil {
				return Token{}, err
			}
		}

		// Join the whitespaces or fold line breaks.
		if leading_blanks {
			sc.foldBreaks()
		} else {
			sc.text = append(sc.text, sc.whitespaces...)
			sc.whitespaces = sc.whitespaces[:0]
		}
	}

	// Eat the right quote.
	s.skip()

	token := Token{
		Type:      SCALAR_TOKEN,
		StartMark: start_mark,
		EndMark:   s.mark,
		Value:     string(sc.text),
		Style:     SINGLE_QUOTED_SCALAR_STYLE,
	}
	if !single {
		token.Style = DOUBLE_QUOTED_SCALAR_STYLE
	}
	return token, nil
}

// foldBreaks joins the pending line breaks into the text: a single line
// break becomes a space, further breaks are kept.
func (sc *scratch) foldBreaks() {
	if len(sc.leadingBreak) > 0 && sc.leadingBreak[0] == '\n' {
		if len(sc.trailingBreaks) == 0 {
			sc.text = append(sc.text, ' ')
		} else {
			sc.text = append(sc.text, sc.trailingBreaks...)
		}
	} else {
		sc.text = append(sc.text, sc.leadingBreak...)
		sc.text = append(sc.text, sc.trailingBreaks...)
	}
	sc.trailingBreaks = sc.trailingBreaks[:0]
	sc.leadingBreak = sc.leadingBreak[:0]
}

// appendRune appends the UTF-8 encoding of value.
func appendRune(b []byte, value int) []byte {
	switch {
	case value <= 0x7F:
		return append(b, byte(value))
	case value <= 0x7FF:
		return append(b, byte(0xC0+(value>>6)), byte(0x80+(value&0x3F)))
	case value <= 0xFFFF:
		return append(b, byte(0xE0+(value>>12)), byte(0x80+((value>>6)&0x3F)), byte(0x80+(value&0x3F)))
	}
	return append(b, byte(0xF0+(value>>18)), byte(0x80+((value>>12)&0x3F)),
		byte(0x80+((value>>6)&0x3F)), byte(0x80+(value&0x3F)))
}

// Scan a plain scalar.
func (s *Scanner) scanPlainScalar() (Token, error) {
	sc := acquireScratch()
	defer releaseScratch(sc)

	var leading_blanks bool
	indent := s.indent + 1

	start_mark := s.mark
	end_mark := s.mark

	// Consume the content of the plain scalar.
	for {
		// Check for a document indicator.
		if err := s.cache(4); err != nil {
			return Token{}, err
		}
		if s.isDocumentIndicator() {
			break
		}

		// Check for a comment.
		if s.buffer[s.buffer_pos] == '#' {
			break
		}

		// Consume non-blank characters.
		for !isBlankOrZero(s.buffer, s.buffer_pos) {
			// Check for indicators that may end a plain scalar.
			if (s.buffer[s.buffer_pos] == ':' && isBlankOrZero(s.buffer, s.buffer_pos+1)) ||
				(s.flow_level > 0 && s.buffer[s.buffer_pos] == ':' && isFlowIndicator(s.buffer, s.buffer_pos+1)) ||
				(s.flow_level > 0 && isFlowIndicator(s.buffer, s.buffer_pos)) {
				break
			}

			// Check if we need to join whitespaces and breaks.
			if leading_blanks {
				sc.foldBreaks()
				leading_blanks = false
			} else if len(sc.whitespaces) > 0 {
				sc.text = append(sc.text, sc.whitespaces...)
				sc.whitespaces = sc.whitespaces[:0]
			}

			// Copy the character.
			sc.text = s.read(sc.text)

			end_mark = s.mark
			if err := s.cache(2); err != nil {
				return Token{}, err
			}
		}

		// Is it the end?
		if !(isBlank(s.buffer, s.buffer_pos) || isLineBreak(s.buffer, s.buffer_pos)) {
			break
		}

		// Consume blank characters.
		if err := s.cache(1); err != nil {
			return Token{}, err
		}

		for isBlank(s.buffer, s.buffer_pos) || isLineBreak(s.buffer, s.buffer_pos) {
			if isBlank(s.buffer, s.buffer_pos) {
				// Check for tab characters that abuse indentation.
				if leading_blanks && s.mark.Column < indent && isTab(s.buffer, s.buffer_pos) {
					return Token{}, s.scannerError("while scanning a plain scalar", start_mark,
						"found a tab character that violates indentation")
				}

				// Consume a space or a tab character.
				if !leading_blanks {
					sc.whitespaces = s.read(sc.whitespaces)
				} else {
					s.skip()
				}
			} else {
				if err := s.cache(2); err != nil {
					return Token{}, err
				}

				// Check if it is a first line break.
				if !leading_blanks {
					sc.whitespaces = sc.whitespaces[:0]
					sc.leadingBreak = s.readLine(sc.leadingBreak)
					leading_blanks = true
				} else {
					sc.trailingBreaks = s.readLine(sc.trailingBreaks)
				}
			}
			if err := s.cache(1); err != nil {
				return Token{}, err
			}
		}

		// Check indentation level.
		if s.flow_level == 0 && s.mark.Column < indent {
			break
		}
	}

	// Note that we change the 'simple_key_allowed' flag.
	if leading_blanks {
		s.simple_key_allowed = true
	}

	return Token{
		Type:      SCALAR_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
		Value:     string(sc.text),
		Style:     PLAIN_SCALAR_STYLE,
	}, nil
}
