// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlstream_test

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/goccy/go-json"
	. "gopkg.in/check.v1"

	"go.yaml.in/yamlstream"
)

func (s *S) TestCompose(c *C) {
	docs, err := yamlstream.Compose([]byte("a: &x [1, 2]\nb: *x\n---\n&A [ *A ]\n"))
	c.Assert(err, IsNil)
	c.Assert(docs, HasLen, 2)

	root := docs[0].Node(docs[0].Root)
	c.Assert(root.Kind, Equals, yamlstream.MappingNode)
	c.Assert(root.Content, HasLen, 4)
	alias := docs[0].Node(root.Content[3])
	c.Assert(alias.Kind, Equals, yamlstream.AliasNode)
	c.Assert(alias.Alias, Equals, root.Content[1])

	cyclic := docs[1].Node(docs[1].Root)
	c.Assert(cyclic.Cyclic, Equals, true)
	v, err := docs[1].Value(nil)
	c.Assert(err, IsNil)
	c.Assert(v, DeepEquals, []any{yamlstream.Ref{Anchor: "A"}})
}

func (s *S) TestComposeErrors(c *C) {
	_, err := yamlstream.Compose([]byte("a: *nope\n"))
	c.Assert(errors.Is(err, yamlstream.ErrUnknownAnchor), Equals, true)

	_, err = yamlstream.Compose([]byte("a: &x [[[1]]]\nb: *x\n"), yamlstream.WithMaxDepth(2))
	var lerr *yamlstream.ResourceLimitError
	c.Assert(errors.As(err, &lerr), Equals, true)
	c.Assert(lerr.Limit, Equals, "depth")
	c.Assert(lerr.Max, Equals, 2)
}

func (s *S) TestLoadAll(c *C) {
	values, err := yamlstream.LoadAll([]byte("a: 1\n---\n- yes\n- on\n---\n"), yamlstream.WithSchemaName("yaml1.1"))
	c.Assert(err, IsNil)
	c.Assert(values, DeepEquals, []any{
		map[string]any{"a": int64(1)},
		[]any{true, true},
		nil,
	})

	values, err = yamlstream.LoadAll(nil)
	c.Assert(err, IsNil)
	c.Assert(values, HasLen, 0)
}

func (s *S) TestLoadMergeKeys(c *C) {
	input := "base: &b {x: 1, y: 2}\nderived:\n  <<: *b\n  y: 3\n"
	v, err := yamlstream.Load([]byte(input), yamlstream.WithMergeKeys())
	c.Assert(err, IsNil)
	c.Assert(v, DeepEquals, map[string]any{
		"base":    map[string]any{"x": int64(1), "y": int64(2)},
		"derived": map[string]any{"x": int64(1), "y": int64(3)},
	})

	v, err = yamlstream.Load([]byte(input))
	c.Assert(err, IsNil)
	derived := v.(map[string]any)["derived"].(map[string]any)
	c.Assert(derived["<<"], NotNil)
}

func (s *S) TestLoadJSON(c *C) {
	v, err := yamlstream.Load([]byte("name: app\nports: [80, 443]\ntls: true\n"))
	c.Assert(err, IsNil)
	data, err := json.Marshal(v)
	c.Assert(err, IsNil)
	c.Assert(string(data), Equals, `{"name":"app","ports":[80,443],"tls":true}`)
}

func (s *S) TestNewEventSource(c *C) {
	src, err := yamlstream.NewEventSource(strings.NewReader("- 1\n- ~\n"))
	c.Assert(err, IsNil)
	c.Assert(yamlstream.Expect(src, yamlstream.StreamStartEvent, nil), IsNil)
	c.Assert(yamlstream.Expect(src, yamlstream.DocumentStartEvent, nil), IsNil)
	c.Assert(yamlstream.Expect(src, yamlstream.SequenceStartEvent, nil), IsNil)

	var event yamlstream.Event
	c.Assert(yamlstream.Expect(src, yamlstream.ScalarEvent, &event), IsNil)
	c.Assert(event.Tag, Equals, yamlstream.IntTag)
	c.Assert(yamlstream.Expect(src, yamlstream.ScalarEvent, &event), IsNil)
	c.Assert(event.Tag, Equals, yamlstream.NullTag)

	ok, err := yamlstream.Accept(src, yamlstream.MappingStartEvent)
	c.Assert(err, IsNil)
	c.Assert(ok, Equals, false)

	err = yamlstream.Expect(src, yamlstream.ScalarEvent, nil)
	var uerr *yamlstream.UnexpectedEventError
	c.Assert(errors.As(err, &uerr), Equals, true)
	c.Assert(uerr.Got, Equals, yamlstream.SequenceEndEvent)

	_, err = yamlstream.NewEventSource(strings.NewReader(""), yamlstream.WithMaxDepth(0))
	c.Assert(err, ErrorMatches, "yaml: max depth must be positive or -1, got 0")
}

func (s *S) TestSkipSubtree(c *C) {
	p, err := yamlstream.NewParser(strings.NewReader("[a, {b: [c]}, d]"))
	c.Assert(err, IsNil)
	for i := 0; i < 4; i++ {
		var event yamlstream.Event
		c.Assert(p.Parse(&event), IsNil)
	}
	c.Assert(yamlstream.SkipSubtree(p), IsNil)

	var event yamlstream.Event
	c.Assert(yamlstream.Expect(p, yamlstream.ScalarEvent, &event), IsNil)
	c.Assert(event.Value, Equals, "d")
}

func (s *S) TestCopy(c *C) {
	src, err := yamlstream.NewEventSource(strings.NewReader("a: [1, 2]\n"))
	c.Assert(err, IsNil)
	var buf bytes.Buffer
	emitter, err := yamlstream.NewEmitter(&buf, yamlstream.Compact)
	c.Assert(err, IsNil)
	n, err := yamlstream.Copy(emitter, src)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, 11)
	c.Assert(buf.String(), Equals, "{a: [1, 2]}\n")
}

func (s *S) TestCopyStopsOnError(c *C) {
	src, err := yamlstream.NewEventSource(strings.NewReader("a: 1\nb: [\n"))
	c.Assert(err, IsNil)
	var buf bytes.Buffer
	emitter, err := yamlstream.NewEmitter(&buf)
	c.Assert(err, IsNil)
	_, err = yamlstream.Copy(emitter, src)
	var serr yamlstream.ScannerError
	var perr yamlstream.ParserError
	c.Assert(errors.As(err, &serr) || errors.As(err, &perr), Equals, true, Commentf("error: %v", err))
}

func (s *S) TestEventsRoundTrip(c *C) {
	input := "%YAML 1.2\n---\nlist:\n  - &a one\n  - *a\n  - !!binary aGk=\ntext: |\n  line\n"
	events, err := yamlstream.Events([]byte(input))
	c.Assert(err, IsNil)

	var buf bytes.Buffer
	c.Assert(yamlstream.EmitEvents(&buf, events), IsNil)
	again, err := yamlstream.Events(buf.Bytes())
	c.Assert(err, IsNil)
	c.Assert(yamlstream.FormatEvents(again), Equals, yamlstream.FormatEvents(events))
}

func (s *S) TestEmitEventsError(c *C) {
	events := []yamlstream.Event{
		yamlstream.NewStreamStartEvent(),
		yamlstream.NewScalarEvent("", "", "x", true, true, yamlstream.PlainStyle),
	}
	err := yamlstream.EmitEvents(io.Discard, events)
	var eerr yamlstream.EmitterError
	c.Assert(errors.As(err, &eerr), Equals, true)
	c.Assert(err, ErrorMatches, "yaml: expected DOCUMENT-START or STREAM-END")
}

func (s *S) TestSchemaByName(c *C) {
	schema, err := yamlstream.SchemaByName("yaml11-strict")
	c.Assert(err, IsNil)
	c.Assert(schema.String(), Equals, "yaml1.1-strict")

	_, err = yamlstream.SchemaByName("toml")
	c.Assert(err, ErrorMatches, `yaml: unknown schema "toml"`)
}

func (s *S) TestCustomSchema(c *C) {
	const colorTag = yamlstream.TagName("tag:example.com,2025:color")
	schema := yamlstream.NewSchema("colors", yamlstream.StrTag).
		Register(colorTag, `[0-9a-fA-F]{6}`, func(text string) (any, error) {
			return strings.ToLower(text), nil
		})

	events, err := yamlstream.Events([]byte("fg: ABCDEF\n"), yamlstream.WithSchema(schema))
	c.Assert(err, IsNil)
	c.Assert(events[4].Tag, Equals, colorTag)

	v, err := yamlstream.Load([]byte("fg: ABCDEF\nbg: plain\nq: 'ABCDEF'\n"), yamlstream.WithSchema(schema))
	c.Assert(err, IsNil)
	c.Assert(v, DeepEquals, map[string]any{"fg": "abcdef", "bg": "plain", "q": "ABCDEF"})
}
