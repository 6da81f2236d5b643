// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Output buffering for the emitter.
// Characters are staged in a fixed buffer and handed to the write handler
// when the buffer fills, at the end of each document and on Flush.

package libyaml

import (
	"io"
)

const (
	// The size of the output buffer.
	output_buffer_size = 128

	// The size of the emitter's state and event queues.
	initial_stack_size = 16
	initial_queue_size = 16

	// Keys longer than this are written in the "? key" form.
	default_max_simple_key_length = 128
)

// WriteHandler is called with the staged output.
type WriteHandler func(emitter *Emitter, buffer []byte) error

func yamlStringWriteHandler(emitter *Emitter, buffer []byte) error {
	*emitter.output_buffer = append(*emitter.output_buffer, buffer...)
	return nil
}

func yamlWriterWriteHandler(emitter *Emitter, buffer []byte) error {
	_, err := emitter.output_writer.Write(buffer)
	return err
}

// SetOutputString sets the emitter to append its output to output_buffer.
func (emitter *Emitter) SetOutputString(output_buffer *[]byte) {
	if emitter.write_handler != nil {
		panic("must set the output target only once")
	}
	emitter.write_handler = yamlStringWriteHandler
	emitter.output_buffer = output_buffer
}

// SetOutputWriter sets the emitter to write its output to w.
func (emitter *Emitter) SetOutputWriter(w io.Writer) {
	if emitter.write_handler != nil {
		panic("must set the output target only once")
	}
	emitter.write_handler = yamlWriterWriteHandler
	emitter.output_writer = w
}

// Flush writes the staged output.
func (emitter *Emitter) Flush() error {
	if emitter.err != nil {
		return emitter.err
	}
	if err := emitter.flush(); err != nil {
		emitter.err = err
		return err
	}
	return nil
}

func (emitter *Emitter) flush() error {
	if emitter.write_handler == nil {
		panic("write handler not set")
	}
	if emitter.buffer_pos == 0 {
		return nil
	}
	if err := emitter.write_handler(emitter, emitter.buffer[:emitter.buffer_pos]); err != nil {
		return WriterError{Err: err}
	}
	emitter.buffer_pos = 0
	return nil
}

// Put a character to the output buffer.
func (emitter *Emitter) put(value byte) error {
	if emitter.buffer_pos+5 >= len(emitter.buffer) {
		if err := emitter.flush(); err != nil {
			return err
		}
	}
	emitter.buffer[emitter.buffer_pos] = value
	emitter.buffer_pos++
	emitter.column++
	return nil
}

// Put a line break to the output buffer.
func (emitter *Emitter) putLineBreak() error {
	if emitter.buffer_pos+5 >= len(emitter.buffer) {
		if err := emitter.flush(); err != nil {
			return err
		}
	}
	switch emitter.line_break {
	case CR_BREAK:
		emitter.buffer[emitter.buffer_pos] = '\r'
		emitter.buffer_pos += 1
	case LN_BREAK:
		emitter.buffer[emitter.buffer_pos] = '\n'
		emitter.buffer_pos += 1
	case CRLN_BREAK:
		emitter.buffer[emitter.buffer_pos+0] = '\r'
		emitter.buffer[emitter.buffer_pos+1] = '\n'
		emitter.buffer_pos += 2
	default:
		panic("unknown line break setting")
	}
	emitter.column = 0
	emitter.line++
	emitter.indention = true
	return nil
}

// Copy a character from a string into buffer.
func (emitter *Emitter) write(s []byte, i *int) error {
	if emitter.buffer_pos+5 >= len(emitter.buffer) {
		if err := emitter.flush(); err != nil {
			return err
		}
	}
	p := emitter.buffer_pos
	w := width(s[*i])
	switch w {
	case 4:
		emitter.buffer[p+3] = s[*i+3]
		fallthrough
	case 3:
		emitter.buffer[p+2] = s[*i+2]
		fallthrough
	case 2:
		emitter.buffer[p+1] = s[*i+1]
		fallthrough
	case 1:
		emitter.buffer[p+0] = s[*i+0]
	default:
		panic("unknown character width")
	}
	emitter.column++
	emitter.buffer_pos += w
	*i += w
	return nil
}

// Write a whole string into buffer.
func (emitter *Emitter) writeAll(s []byte) error {
	for i := 0; i < len(s); {
		if err := emitter.write(s, &i); err != nil {
			return err
		}
	}
	return nil
}

// Copy a line break character from a string into buffer.
func (emitter *Emitter) writeLineBreak(s []byte, i *int) error {
	if s[*i] == '\n' {
		if err := emitter.putLineBreak(); err != nil {
			return err
		}
		*i++
		return nil
	}
	if err := emitter.write(s, i); err != nil {
		return err
	}
	emitter.column = 0
	emitter.line++
	emitter.indention = true
	return nil
}
