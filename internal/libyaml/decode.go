// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Conversion of composed documents to generic Go values and back to events.

package libyaml

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Ref stands in for an alias to a collection that is still being built,
// which happens only for self-referencing anchors.
type Ref struct {
	Anchor AnchorName `json:"$ref"`
}

// Value returns the document as generic Go values: map[string]any for
// mappings, []any for sequences and the schema's values for scalars.
// Non-string mapping keys are formatted with fmt.Sprint. Scalars with a tag
// the schema does not know keep their text. A nil schema means the
// non-strict core schema.
func (d *Document) Value(schema *Schema) (any, error) {
	if schema == nil {
		schema = CoreSchema(false)
	}
	v := valueBuilder{
		doc:      d,
		schema:   schema,
		done:     make(map[int]any),
		building: make(map[int]bool),
	}
	return v.value(d.Root)
}

type valueBuilder struct {
	doc      *Document
	schema   *Schema
	done     map[int]any
	building map[int]bool
}

func (b *valueBuilder) value(i int) (any, error) {
	n := &b.doc.Nodes[i]
	switch n.Kind {
	case AliasNode:
		target := &b.doc.Nodes[n.Alias]
		if target.Cyclic && b.building[n.Alias] {
			return Ref{Anchor: target.Anchor}, nil
		}
		if v, ok := b.done[n.Alias]; ok {
			return v, nil
		}
		return b.value(n.Alias)
	case ScalarNode:
		return b.scalar(n)
	case SequenceNode:
		b.building[i] = true
		defer delete(b.building, i)
		seq := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := b.value(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		b.done[i] = seq
		return seq, nil
	case MappingNode:
		b.building[i] = true
		defer delete(b.building, i)
		m := make(map[string]any, len(n.Content)/2)
		for k := 0; k+1 < len(n.Content); k += 2 {
			key, err := b.value(n.Content[k])
			if err != nil {
				return nil, err
			}
			value, err := b.value(n.Content[k+1])
			if err != nil {
				return nil, err
			}
			m[keyString(key)] = value
		}
		b.done[i] = m
		return m, nil
	}
	return nil, fmt.Errorf("yaml: unknown node kind %d", n.Kind)
}

func (b *valueBuilder) scalar(n *Node) (any, error) {
	tag := n.Tag
	if tag.IsNonSpecific() {
		ev := Event{Type: SCALAR_EVENT, Tag: tag, Value: n.Value, Style: n.Style}
		resolved, ok := b.schema.ResolveNonSpecific(&ev, nil)
		if !ok {
			return nil, &SemanticError{Mark: n.mark(), Value: n.Value, Err: ErrUnresolved}
		}
		tag = resolved
	}
	v, err := b.schema.Value(tag, n.Value)
	if errors.Is(err, ErrUnknownTag) {
		return n.Value, nil
	}
	if err != nil {
		if serr, ok := err.(*SemanticError); ok {
			serr.Mark = n.mark()
		}
		return nil, err
	}
	return v, nil
}

func (n *Node) mark() Mark {
	return Mark{Line: n.Line, Column: n.Column - 1}
}

func keyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case nil:
		return "null"
	}
	return fmt.Sprint(key)
}

// MarshalJSON encodes the document value under the core schema.
func (d *Document) MarshalJSON() ([]byte, error) {
	v, err := d.Value(nil)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Events returns the document as a DOCUMENT-START .. DOCUMENT-END event
// sequence. Aliases are written as alias events, so feeding the result to
// an emitter reproduces the anchors of the input.
func (d *Document) Events() []Event {
	events := []Event{NewDocumentStartEvent(d.Version, d.TagDirectives, !d.ExplicitStart)}
	events = d.appendEvents(events, d.Root)
	return append(events, NewDocumentEndEvent(!d.ExplicitEnd))
}

func (d *Document) appendEvents(events []Event, i int) []Event {
	n := &d.Nodes[i]
	switch n.Kind {
	case AliasNode:
		return append(events, NewAliasEvent(AnchorName(n.Value)))
	case ScalarNode:
		return append(events, NewScalarEvent(n.Anchor, n.Tag, n.Value, n.Implicit, n.QuotedImplicit, ScalarStyle(n.Style)))
	case SequenceNode:
		events = append(events, NewSequenceStartEvent(n.Anchor, n.Tag, n.Implicit, SequenceStyle(n.Style)))
		for _, c := range n.Content {
			events = d.appendEvents(events, c)
		}
		return append(events, NewSequenceEndEvent())
	case MappingNode:
		events = append(events, NewMappingStartEvent(n.Anchor, n.Tag, n.Implicit, MappingStyle(n.Style)))
		for _, c := range n.Content {
			events = d.appendEvents(events, c)
		}
		return append(events, NewMappingEndEvent())
	}
	return events
}

// StreamEvents wraps the events of docs in STREAM-START and STREAM-END.
func StreamEvents(docs []*Document) []Event {
	events := []Event{NewStreamStartEvent()}
	for _, d := range docs {
		events = append(events, d.Events()...)
	}
	return append(events, NewStreamEndEvent())
}

// LoadYAML parses data and returns the value of its first document, or nil
// for an empty stream. Tags are resolved with the non-strict core schema.
func LoadYAML(data []byte) (any, error) {
	return LoadYAMLWithOptions(data, nil)
}

// LoadYAMLWithOptions is LoadYAML using the schema, merge setting, buffer
// limits and logger from opts.
func LoadYAMLWithOptions(data []byte, opts *Options) (any, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	c := NewComposerWithOptions(NewEventSourceWithOptions(data, opts), opts)
	doc, err := c.Next()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return doc.Value(opts.Schema)
}
