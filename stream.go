// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Constructors for the pipeline stages and helpers running a whole input
// through them.

package yamlstream

import (
	"bytes"
	"io"
	"strings"

	"go.yaml.in/yamlstream/internal/libyaml"
)

// NewScanner returns a scanner reading UTF-8 text from r.
func NewScanner(r io.Reader) *Scanner {
	s := libyaml.NewScanner()
	s.SetInputReader(r)
	return &s
}

// NewParser returns a parser reading from r. Only the logger of opts is
// used; the parser reports tags exactly as written.
func NewParser(r io.Reader, opts ...Option) (*Parser, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	p := libyaml.NewParser()
	p.SetInputReader(r)
	p.SetLogger(o.Logger)
	return &p, nil
}

// NewEventSource returns the full reading pipeline over r: the parser,
// merge key expansion when enabled, and tag resolution with the configured
// schema.
func NewEventSource(r io.Reader, opts ...Option) (EventSource, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return libyaml.NewReaderEventSourceWithOptions(r, o), nil
}

// NewEmitter returns an emitter writing to w.
func NewEmitter(w io.Writer, opts ...Option) (*Emitter, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return libyaml.NewEmitterWithOptions(w, o), nil
}

// Tokens returns every token of data, ending with STREAM-END.
func Tokens(data []byte) ([]Token, error) {
	s := libyaml.NewScanner()
	s.SetInputString(data)
	var tokens []Token
	for {
		var token Token
		if err := s.Scan(&token); err != nil {
			if err == io.EOF {
				return tokens, nil
			}
			return tokens, err
		}
		tokens = append(tokens, token)
	}
}

// Events returns the events of data after merge key expansion and tag
// resolution. On error the events read so far are returned with it.
func Events(data []byte, opts ...Option) ([]Event, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return drain(libyaml.NewEventSourceWithOptions(data, o))
}

// ParseEvents returns the events of data exactly as the parser reports
// them, with no tag resolution.
func ParseEvents(data []byte) ([]Event, error) {
	return drain(libyaml.NewParserWithOptions(data, nil))
}

func drain(src EventSource) ([]Event, error) {
	var events []Event
	for {
		var event Event
		if err := src.Parse(&event); err != nil {
			if err == io.EOF {
				return events, nil
			}
			return events, err
		}
		events = append(events, event)
	}
}

// FormatEvents writes events one per line in the yaml-test-suite notation.
func FormatEvents(events []Event) string {
	var b strings.Builder
	for i := range events {
		b.WriteString(libyaml.FormatEvent(&events[i]))
		b.WriteByte('\n')
	}
	return b.String()
}

// Compose returns the node graph of every document of data.
func Compose(data []byte, opts ...Option) ([]*Document, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	c := libyaml.NewComposerWithOptions(libyaml.NewEventSourceWithOptions(data, o), o)
	var docs []*Document
	for {
		doc, err := c.Next()
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

// Load returns the first document of data as generic Go values, or nil for
// an empty stream. See Document.Value for the mapping.
func Load(data []byte, opts ...Option) (any, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return libyaml.LoadYAMLWithOptions(data, o)
}

// LoadAll returns every document of data as generic Go values.
func LoadAll(data []byte, opts ...Option) ([]any, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	docs, err := Compose(data, opts...)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(docs))
	for _, doc := range docs {
		v, err := doc.Value(o.Schema)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Copy emits every event of src until the end of the stream and flushes
// the emitter. It returns the number of events copied.
func Copy(emitter *Emitter, src EventSource) (int, error) {
	n := 0
	for {
		var event Event
		if err := src.Parse(&event); err != nil {
			if err == io.EOF {
				return n, emitter.Flush()
			}
			return n, err
		}
		if err := emitter.Emit(&event); err != nil {
			return n, err
		}
		n++
	}
}

// EmitEvents writes events to w as YAML text.
func EmitEvents(w io.Writer, events []Event, opts ...Option) error {
	emitter, err := NewEmitter(w, opts...)
	if err != nil {
		return err
	}
	for i := range events {
		if err := emitter.Emit(&events[i]); err != nil {
			return err
		}
	}
	return emitter.Flush()
}

// Format reads data and writes it back with the given output options. The
// same schema decides tags while reading and quoting while writing, so
// scalars keep their meaning.
func Format(data []byte, opts ...Option) ([]byte, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	emitter := libyaml.NewEmitterWithOptions(&buf, o)
	if _, err := Copy(emitter, libyaml.NewEventSourceWithOptions(data, o)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
