// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Input handling for the scanner.
// Reads UTF-8 text from a byte slice or an io.Reader into a lookahead buffer,
// validating every character on the way in.

package libyaml

import (
	"errors"
	"fmt"
	"io"
)

// The size of the input raw buffer.
const input_raw_buffer_size = 512

// The size of the input buffer.
// It holds the unread characters and one decoded raw buffer.
const input_buffer_size = input_raw_buffer_size * 3

// String read handler.
func stringReadHandler(s *Scanner, buffer []byte) (n int, err error) {
	if s.input_pos == len(s.input) {
		return 0, io.EOF
	}
	n = copy(buffer, s.input[s.input_pos:])
	s.input_pos += n
	return n, nil
}

// Reader read handler.
func readerReadHandler(s *Scanner, buffer []byte) (n int, err error) {
	return s.input_reader.Read(buffer)
}

// SetInputString sets a byte slice input.
func (s *Scanner) SetInputString(input []byte) {
	if s.read_handler != nil {
		panic("must set the input source only once")
	}
	s.read_handler = stringReadHandler
	s.input = input
	s.input_pos = 0
}

// SetInputReader sets a streaming input.
func (s *Scanner) SetInputReader(r io.Reader) {
	if s.read_handler != nil {
		panic("must set the input source only once")
	}
	s.read_handler = readerReadHandler
	s.input_reader = r
}

func (s *Scanner) readerError(problem string, offset, value int) error {
	s.err = ReaderError{Offset: offset, Value: value, Err: errors.New(problem)}
	return s.err
}

// Skip a leading UTF-8 BOM. Only UTF-8 input is accepted, other encodings
// must be converted by the caller.
func (s *Scanner) skipBOM() error {
	// Ensure that we had enough bytes in the raw buffer.
	for !s.eof && len(s.raw_buffer)-s.raw_buffer_pos < 3 {
		if err := s.updateRawBuffer(); err != nil {
			return err
		}
	}
	buf := s.raw_buffer[s.raw_buffer_pos:]
	if len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
		s.raw_buffer_pos += 3
		s.offset += 3
	} else if len(buf) >= 2 && (buf[0] == 0xFF && buf[1] == 0xFE || buf[0] == 0xFE && buf[1] == 0xFF) {
		return s.readerError("UTF-16 input is not supported", s.offset, -1)
	}
	s.bom_checked = true
	return nil
}

// Update the raw buffer.
func (s *Scanner) updateRawBuffer() error {
	// Return if the raw buffer is full.
	if s.raw_buffer_pos == 0 && len(s.raw_buffer) == cap(s.raw_buffer) {
		return nil
	}

	// Return on EOF.
	if s.eof {
		return nil
	}

	// Move the remaining bytes in the raw buffer to the beginning.
	if s.raw_buffer_pos > 0 && s.raw_buffer_pos < len(s.raw_buffer) {
		copy(s.raw_buffer, s.raw_buffer[s.raw_buffer_pos:])
	}
	s.raw_buffer = s.raw_buffer[:len(s.raw_buffer)-s.raw_buffer_pos]
	s.raw_buffer_pos = 0

	// Call the read handler to fill the buffer.
	size_read, err := s.read_handler(s, s.raw_buffer[len(s.raw_buffer):cap(s.raw_buffer)])
	s.raw_buffer = s.raw_buffer[:len(s.raw_buffer)+size_read]
	if err == io.EOF {
		s.eof = true
	} else if err != nil {
		return s.readerError(fmt.Sprintf("input error: %v", err), s.offset, -1)
	}
	return nil
}

// Ensure that the buffer contains at least `length` characters.
// At the end of the stream the buffer is padded with NUL characters, so
// callers can always look `length` characters ahead.
func (s *Scanner) updateBuffer(length int) error {
	if s.read_handler == nil {
		panic("read handler must be set")
	}

	// Return if the buffer contains enough characters.
	if s.unread >= length {
		return nil
	}

	if !s.bom_checked {
		if err := s.skipBOM(); err != nil {
			return err
		}
	}

	// Move the unread characters to the beginning of the buffer.
	buffer_len := len(s.buffer)
	if s.buffer_pos > 0 && s.buffer_pos < buffer_len {
		copy(s.buffer, s.buffer[s.buffer_pos:])
		buffer_len -= s.buffer_pos
		s.buffer_pos = 0
	} else if s.buffer_pos == buffer_len {
		buffer_len = 0
		s.buffer_pos = 0
	}

	// Open the whole buffer for writing, and cut it before returning.
	s.buffer = s.buffer[:cap(s.buffer)]

	// Fill the buffer until it has enough characters.
	first := true
	for s.unread < length {
		// Fill the raw buffer if necessary.
		if !first || s.raw_buffer_pos == len(s.raw_buffer) {
			if err := s.updateRawBuffer(); err != nil {
				s.buffer = s.buffer[:buffer_len]
				return err
			}
		}
		first = false

		// Decode the raw buffer.
	inner:
		for s.raw_buffer_pos != len(s.raw_buffer) {
			raw_unread := len(s.raw_buffer) - s.raw_buffer_pos
			octet := s.raw_buffer[s.raw_buffer_pos]
			w := width(octet)
			if w == 0 {
				return s.readerError("invalid leading UTF-8 octet", s.offset, int(octet))
			}

			// Check if the raw buffer contains an incomplete character.
			if w > raw_unread {
				if s.eof {
					return s.readerError("incomplete UTF-8 octet sequence", s.offset, -1)
				}
				break inner
			}

			value, err := s.decodeRune(s.raw_buffer[s.raw_buffer_pos:s.raw_buffer_pos+w])
			if err != nil {
				return err
			}

			// Check if the character is in the allowed range:
			//      #x9 | #xA | #xD | [#x20-#x7E]               (8 bit)
			//      | #x85 | [#xA0-#xD7FF] | [#xE000-#xFFFD]    (16 bit)
			//      | [#x10000-#x10FFFF]                        (32 bit)
			switch {
			case value == 0x09:
			case value == 0x0A:
			case value == 0x0D:
			case value >= 0x20 && value <= 0x7E:
			case value == 0x85:
			case value >= 0xA0 && value <= 0xD7FF:
			case value >= 0xE000 && value <= 0xFFFD:
			case value >= 0x10000 && value <= 0x10FFFF:
			default:
				return s.readerError("control characters are not allowed", s.offset, int(value))
			}

			// The input is UTF-8 already, so the octets are copied as is.
			buffer_len += copy(s.buffer[buffer_len:], s.raw_buffer[s.raw_buffer_pos:s.raw_buffer_pos+w])
			s.raw_buffer_pos += w
			s.offset += w
			s.unread++
		}

		// On EOF, put NUL into the buffer and return.
		if s.eof {
			s.buffer[buffer_len] = 0
			buffer_len++
			s.unread++
			break
		}
	}
	// The scanner looks ahead by up to `length` characters even at the end
	// of the stream; those reads must see NUL.
	for buffer_len < length {
		s.buffer[buffer_len] = 0
		buffer_len++
	}
	s.buffer = s.buffer[:buffer_len]
	return nil
}

// decodeRune decodes one complete UTF-8 sequence and rejects overlong forms
// and surrogates.
func (s *Scanner) decodeRune(seq []byte) (rune, error) {
	octet := seq[0]
	var value rune
	switch len(seq) {
	case 1:
		return rune(octet), nil
	case 2:
		value = rune(octet & 0x1F)
	case 3:
		value = rune(octet & 0x0F)
	case 4:
		value = rune(octet & 0x07)
	}

	// Check and decode the trailing octets.
	for k := 1; k < len(seq); k++ {
		octet = seq[k]
		if (octet & 0xC0) != 0x80 {
			return 0, s.readerError("invalid trailing UTF-8 octet", s.offset+k, int(octet))
		}
		value = (value << 6) + rune(octet&0x3F)
	}

	// Check the length of the sequence against the value.
	switch {
	case len(seq) == 2 && value >= 0x80:
	case len(seq) == 3 && value >= 0x800:
	case len(seq) == 4 && value >= 0x10000:
	default:
		return 0, s.readerError("invalid length of a UTF-8 sequence", s.offset, -1)
	}

	// Check the range of the value.
	if value >= 0xD800 && value <= 0xDFFF || value > 0x10FFFF {
		return 0, s.readerError("invalid Unicode character", s.offset, int(value))
	}
	return value, nil
}
