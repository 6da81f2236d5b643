// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Node graph output for the yamlstream tool.

package main

import (
	"fmt"
	"io"

	"go.yaml.in/yamlstream"
)

// ProcessNodes composes every document of reader and writes the node tree
// of each. Aliases are shown by anchor name, never expanded.
func ProcessNodes(reader io.Reader, w io.Writer, profuse bool, opts ...yamlstream.Option) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	docs, err := yamlstream.Compose(input, opts...)
	if err != nil {
		return fmt.Errorf("failed to compose YAML: %w", err)
	}
	out, err := newRecordWriter(w, true)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := out.write(nodeRecord(doc, doc.Root, profuse)); err != nil {
			return err
		}
	}
	return out.close()
}

func nodeRecord(doc *yamlstream.Document, i int, profuse bool) record {
	n := doc.Node(i)
	// Node styles share the event encoding.
	ev := yamlstream.Event{Style: n.Style}
	r := record{{"kind", n.Kind.String()}}
	switch n.Kind {
	case yamlstream.AliasNode:
		r = r.add("alias", n.Value)
	case yamlstream.ScalarNode:
		if style := ev.ScalarStyle(); profuse || style != yamlstream.PlainStyle {
			r = r.add("style", style.String())
		}
		if profuse || !n.Implicit && !n.QuotedImplicit {
			r = r.add("tag", n.Tag.Short())
		}
	default:
		if style := ev.SequenceStyle(); profuse || style == yamlstream.FlowSequenceStyle {
			r = r.add("style", style.String())
		}
		if profuse || !n.Implicit {
			r = r.add("tag", n.Tag.Short())
		}
	}
	r = r.add("anchor", string(n.Anchor))
	if n.Cyclic {
		r = r.add("cyclic", true)
	}
	if profuse {
		r = r.add("pos", fmt.Sprintf("%d:%d", n.Line, n.Column))
	}
	switch n.Kind {
	case yamlstream.ScalarNode:
		r = append(r, field{"text", n.Value})
	case yamlstream.SequenceNode, yamlstream.MappingNode:
		content := []record{}
		for _, child := range n.Content {
			content = append(content, nodeRecord(doc, child, profuse))
		}
		r = r.add("content", content)
	}
	return r
}
