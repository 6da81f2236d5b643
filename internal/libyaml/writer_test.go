// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.yaml.in/yamlstream/internal/testutil/assert"
)

func TestEmitterFlushEmpty(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)

	assert.NoErrorf(t, emitter.Flush(), "Flush() with empty buffer")
	assert.Equalf(t, 0, len(output), "Flush() empty buffer produced output %q", output)
}

func TestEmitterFlushMultipleTimes(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)

	for _, s := range []string{"first", "second"} {
		for i := 0; i < len(s); {
			assert.NoError(t, emitter.write([]byte(s), &i))
		}
		assert.NoError(t, emitter.Flush())
	}
	assert.Equal(t, "firstsecond", string(output))
	assert.Equalf(t, 0, emitter.buffer_pos, "buffer_pos = %d after Flush()", emitter.buffer_pos)
}

func TestEmitterFlushesFullBuffer(t *testing.T) {
	emitter := NewEmitter()
	var buf bytes.Buffer
	emitter.SetOutputWriter(&buf)

	long := strings.Repeat("x", output_buffer_size*3)
	assert.NoError(t, emitter.writeAll([]byte(long)))
	assert.Truef(t, buf.Len() > 0, "output should be flushed once the buffer fills")
	assert.Truef(t, emitter.buffer_pos < output_buffer_size, "buffer_pos = %d", emitter.buffer_pos)
	assert.NoError(t, emitter.Flush())
	assert.Equal(t, long, buf.String())
}

func TestEmitterLineBreaks(t *testing.T) {
	tests := []struct {
		lineBreak LineBreak
		want      string
	}{
		{LN_BREAK, "\n"},
		{CR_BREAK, "\r"},
		{CRLN_BREAK, "\r\n"},
	}
	for _, tt := range tests {
		emitter := NewEmitter()
		var output []byte
		emitter.SetOutputString(&output)
		emitter.SetLineBreak(tt.lineBreak)
		emitter.column = 7

		assert.NoError(t, emitter.putLineBreak())
		assert.NoError(t, emitter.Flush())
		assert.Equal(t, tt.want, string(output))
		assert.Equal(t, 0, emitter.column)
		assert.True(t, emitter.indention)
	}
}

var errBroken = errors.New("broken pipe")

func TestEmitterFlushErrorIsSticky(t *testing.T) {
	emitter := NewEmitter()
	emitter.SetOutputWriter(errorWriter{errBroken})
	assert.NoError(t, emitter.put('x'))

	err := emitter.Flush()
	var werr WriterError
	assert.ErrorAs(t, err, &werr)
	assert.ErrorIs(t, emitter.Flush(), errBroken)
}

func TestEmitterFlushPanicWithoutHandler(t *testing.T) {
	emitter := NewEmitter()
	emitter.buffer_pos = 1
	assert.PanicMatchesf(t, "write handler not set", func() {
		_ = emitter.Flush()
	}, "Flush() without write handler should panic")
}
