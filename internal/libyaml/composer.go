// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Composer stage: builds a node graph from an event stream.
// Nodes live in a per-document arena and refer to each other by index, so
// aliases, including ones that point back at an ancestor, never form
// pointer cycles.

package libyaml

import (
	"fmt"
	"io"
	"log/slog"
)

type Kind uint8

const (
	ScalarNode Kind = iota + 1
	SequenceNode
	MappingNode
	AliasNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	case AliasNode:
		return "alias"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Node is one entry of a Document arena.
type Node struct {
	Kind   Kind
	Tag    TagName
	Value  string     // Scalar text, or the anchor name of an alias.
	Anchor AnchorName // Anchor defined on this node.
	Style  Style

	// Implicit and QuotedImplicit are the flags of the originating event.
	Implicit       bool
	QuotedImplicit bool

	// Alias is the index of the anchored node an AliasNode refers to, or -1.
	Alias int

	// Content holds the indexes of the children. Mapping keys and values
	// alternate.
	Content []int

	// Cyclic is set on an anchored collection that contains an alias to
	// itself.
	Cyclic bool

	Line   int // 1-based.
	Column int // 1-based.
}

// Document is the node graph of one YAML document.
type Document struct {
	Nodes []Node
	Root  int

	Version       *VersionDirective
	TagDirectives []TagDirective
	ExplicitStart bool
	ExplicitEnd   bool
}

// Node returns the node at index i.
func (d *Document) Node(i int) *Node {
	return &d.Nodes[i]
}

// Composer reads documents from an EventSource.
type Composer struct {
	src     EventSource
	doc     *Document
	anchors map[AnchorName]int
	started bool
	done    bool

	maxDepth  int
	maxLength int
	logger    *slog.Logger
	bufLogger *slog.Logger
}

// NewComposer returns a composer reading from src with no buffer limits.
func NewComposer(src EventSource) *Composer {
	return &Composer{src: src, maxDepth: Unlimited, maxLength: Unlimited}
}

// NewComposerWithOptions returns a composer using the buffer limits and
// logger from opts.
func NewComposerWithOptions(src EventSource, opts *Options) *Composer {
	c := NewComposer(src)
	c.maxDepth = opts.MaxDepth
	c.maxLength = opts.MaxLength
	if opts.Logger != nil {
		c.logger = opts.Logger.With(slog.String("component", "composer"))
		c.bufLogger = bufferLogger(opts.Logger)
	}
	return c
}

// Compose returns the first document of src.
func Compose(src EventSource) (*Document, error) {
	return NewComposer(src).Next()
}

// ComposeAll returns every document of src.
func ComposeAll(src EventSource) ([]*Document, error) {
	c := NewComposer(src)
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

// Next returns the next document, or io.EOF after the end of the stream.
func (c *Composer) Next() (*Document, error) {
	if c.done {
		return nil, io.EOF
	}
	if !c.started {
		if err := Expect(c.src, STREAM_START_EVENT, nil); err != nil {
			return nil, err
		}
		c.started = true
	}
	end, err := TryConsume(c.src, STREAM_END_EVENT, nil)
	if err != nil {
		return nil, err
	}
	if end {
		c.done = true
		return nil, io.EOF
	}
	return c.document()
}

func (c *Composer) document() (*Document, error) {
	var start Event
	if err := Expect(c.src, DOCUMENT_START_EVENT, &start); err != nil {
		return nil, err
	}
	c.doc = &Document{
		Version:       start.Version,
		TagDirectives: start.TagDirectives,
		ExplicitStart: !start.Implicit,
	}
	c.anchors = make(map[AnchorName]int)

	root, err := c.node(c.src)
	if err != nil {
		return nil, err
	}
	c.doc.Root = root

	var end Event
	if err := Expect(c.src, DOCUMENT_END_EVENT, &end); err != nil {
		return nil, err
	}
	c.doc.ExplicitEnd = !end.Implicit
	if c.logger != nil {
		c.logger.Debug("composed document", slog.Int("nodes", len(c.doc.Nodes)), slog.Int("anchors", len(c.anchors)))
	}
	doc := c.doc
	c.doc = nil
	return doc, nil
}

func (c *Composer) newNode(kind Kind, event *Event) int {
	c.doc.Nodes = append(c.doc.Nodes, Node{
		Kind:           kind,
		Tag:            event.Tag,
		Anchor:         event.Anchor,
		Style:          event.Style,
		Implicit:       event.Implicit,
		QuotedImplicit: event.QuotedImplicit,
		Alias:          -1,
		Line:           event.StartMark.Line,
		Column:         event.StartMark.Column + 1,
	})
	n := len(c.doc.Nodes) - 1
	if kind != AliasNode && !event.Anchor.IsEmpty() {
		c.anchors[event.Anchor] = n
	}
	return n
}

func (c *Composer) node(src EventSource) (int, error) {
	next, err := src.Peek()
	if err != nil {
		return -1, unexpectedEOF(err, SCALAR_EVENT)
	}
	switch next.Type {
	case SCALAR_EVENT:
		return c.scalar(src)
	case ALIAS_EVENT:
		return c.alias(src)
	case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		if next.Anchor.IsEmpty() {
			return c.collection(src, false)
		}
		return c.anchored(src)
	}
	return -1, &UnexpectedEventError{Mark: next.StartMark, Expected: SCALAR_EVENT, Got: next.Type}
}

// anchored captures an anchored collection before composing it, so the
// node can be flagged when it refers to itself.
func (c *Composer) anchored(src EventSource) (int, error) {
	buf, err := newAnchorBuffer(src, c.maxDepth, c.maxLength, c.bufLogger)
	if err != nil {
		return -1, err
	}
	return c.collection(buf, buf.Cyclic())
}

func (c *Composer) scalar(src EventSource) (int, error) {
	var event Event
	if err := Expect(src, SCALAR_EVENT, &event); err != nil {
		return -1, err
	}
	n := c.newNode(ScalarNode, &event)
	c.doc.Nodes[n].Value = event.Value
	return n, nil
}

func (c *Composer) alias(src EventSource) (int, error) {
	var event Event
	if err := Expect(src, ALIAS_EVENT, &event); err != nil {
		return -1, err
	}
	target, ok := c.anchors[event.Anchor]
	if !ok {
		return -1, &SemanticError{Mark: event.StartMark, Value: string(event.Anchor),
			Err: fmt.Errorf("%w %q", ErrUnknownAnchor, event.Anchor)}
	}
	n := c.newNode(AliasNode, &event)
	c.doc.Nodes[n].Value = string(event.Anchor)
	c.doc.Nodes[n].Alias = target
	return n, nil
}

func (c *Composer) collection(src EventSource, cyclic bool) (int, error) {
	var start Event
	if err := src.Parse(&start); err != nil {
		return -1, unexpectedEOF(err, start.Type)
	}
	kind, endType := SequenceNode, SEQUENCE_END_EVENT
	if start.Type == MAPPING_START_EVENT {
		kind, endType = MappingNode, MAPPING_END_EVENT
	}
	n := c.newNode(kind, &start)
	c.doc.Nodes[n].Cyclic = cyclic
	for {
		end, err := TryConsume(src, endType, nil)
		if err != nil {
			return -1, err
		}
		if end {
			return n, nil
		}
		child, err := c.node(src)
		if err != nil {
			return -1, err
		}
		c.doc.Nodes[n].Content = append(c.doc.Nodes[n].Content, child)
	}
}
