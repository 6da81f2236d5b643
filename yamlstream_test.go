// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlstream_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	. "gopkg.in/check.v1"
	"gopkg.in/yaml.v3"

	"go.yaml.in/yamlstream"
)

func Test(t *testing.T) { TestingT(t) }

type S struct{}

var _ = Suite(&S{})

func (s *S) TestParseEvents(c *C) {
	events, err := yamlstream.ParseEvents([]byte("key: value"))
	c.Assert(err, IsNil)
	c.Assert(yamlstream.FormatEvents(events), Equals,
		"+STR\n+DOC\n+MAP\n=VAL :key\n=VAL :value\n-MAP\n-DOC\n-STR\n")
}

func (s *S) TestResolvedEvents(c *C) {
	events, err := yamlstream.Events([]byte("n: 0x1F"))
	c.Assert(err, IsNil)
	c.Assert(events, HasLen, 8)
	c.Assert(events[4].Tag, Equals, yamlstream.IntTag)
	c.Assert(events[4].Value, Equals, "0x1F")
}

func (s *S) TestSelfReferencingAnchor(c *C) {
	p, err := yamlstream.NewParser(strings.NewReader("&A [ *A ]"))
	c.Assert(err, IsNil)
	c.Assert(yamlstream.Expect(p, yamlstream.StreamStartEvent, nil), IsNil)
	c.Assert(yamlstream.Expect(p, yamlstream.DocumentStartEvent, nil), IsNil)
	buf, err := yamlstream.NewAnchorBuffer(p, yamlstream.Unlimited, yamlstream.Unlimited)
	c.Assert(err, IsNil)
	c.Assert(buf.Cyclic(), Equals, true)
	c.Assert(buf.Anchor(), Equals, yamlstream.AnchorName("A"))
	c.Assert(yamlstream.Expect(p, yamlstream.DocumentEndEvent, nil), IsNil)
}

var schemaLoadTests = []struct {
	schema string
	want   any
	err    error
}{
	{"core", int64(31), nil},
	{"yaml1.1", int64(31), nil},
	{"json", "0x1F", nil},
	{"failsafe", "0x1F", nil},
	{"json-strict", nil, yamlstream.ErrUnresolved},
}

func (s *S) TestLoadWithSchema(c *C) {
	for _, item := range schemaLoadTests {
		c.Logf("schema: %s", item.schema)
		v, err := yamlstream.Load([]byte("0x1F"), yamlstream.WithSchemaName(item.schema))
		if item.err != nil {
			c.Assert(errors.Is(err, item.err), Equals, true, Commentf("error: %v", err))
			var serr *yamlstream.SemanticError
			c.Assert(errors.As(err, &serr), Equals, true)
			c.Assert(serr.Mark.Line, Equals, 1)
			continue
		}
		c.Assert(err, IsNil)
		c.Assert(v, DeepEquals, item.want)
	}
}

func (s *S) TestEmitCompactKeepsMeaning(c *C) {
	events := []yamlstream.Event{
		yamlstream.NewStreamStartEvent(),
		yamlstream.NewDocumentStartEvent(nil, nil, true),
		yamlstream.NewMappingStartEvent("", "", true, yamlstream.BlockMappingStyle),
		yamlstream.NewScalarEvent("", "", "a", true, true, yamlstream.PlainStyle),
		yamlstream.NewScalarEvent("", yamlstream.BoolTag, "true", true, false, yamlstream.PlainStyle),
		yamlstream.NewScalarEvent("", "", "b", true, true, yamlstream.PlainStyle),
		yamlstream.NewScalarEvent("", yamlstream.StrTag, "true", true, false, yamlstream.PlainStyle),
		yamlstream.NewMappingEndEvent(),
		yamlstream.NewDocumentEndEvent(true),
		yamlstream.NewStreamEndEvent(),
	}
	var buf bytes.Buffer
	c.Assert(yamlstream.EmitEvents(&buf, events, yamlstream.Compact), IsNil)
	c.Assert(buf.String(), Equals, "{a: true, b: \"true\"}\n")

	buf.Reset()
	c.Assert(yamlstream.EmitEvents(&buf, events, yamlstream.Compact, yamlstream.WithQuotePreference(yamlstream.QuoteSingle)), IsNil)
	c.Assert(buf.String(), Equals, "{a: true, b: 'true'}\n")
}

var formatTests = []struct {
	name  string
	input string
	opts  []yamlstream.Option
	want  string
}{{
	name:  "flow stays flow",
	input: "{a: 1, b: 2}",
	want:  "{a: 1, b: 2}\n",
}, {
	name:  "block stays block",
	input: "a:\n  - 1\n  - 2\nb: c\n",
	want:  "a:\n  - 1\n  - 2\nb: c\n",
}, {
	name:  "compact",
	input: "a:\n  - 1\n  - 2\nb: c\n",
	opts:  []yamlstream.Option{yamlstream.Compact},
	want:  "{a: [1, 2], b: c}\n",
}, {
	name:  "pretty",
	input: "a:\n  b: c\n",
	opts:  []yamlstream.Option{yamlstream.Pretty},
	want:  "---\na:\n    b: c\n",
}, {
	name:  "pretty with override",
	input: "a:\n  b: c\n",
	opts:  []yamlstream.Option{yamlstream.Pretty, yamlstream.WithIndent(3)},
	want:  "---\na:\n   b: c\n",
}, {
	name:  "quoted number stays quoted",
	input: "x: !!str 123\n",
	want:  "x: \"123\"\n",
}, {
	name:  "anchors survive",
	input: "- &x a\n- *x\n",
	want:  "- &x a\n- *x\n",
}, {
	name:  "merge keys expanded",
	input: "b: &b {x: 1}\nd: {<<: *b, y: 2}\n",
	opts:  []yamlstream.Option{yamlstream.WithMergeKeys()},
	want:  "b: &b {x: 1}\nd: {x: 1, y: 2}\n",
}, {
	name:  "explicit end",
	input: "a\n",
	opts:  []yamlstream.Option{yamlstream.WithExplicitEnd()},
	want:  "a\n...\n",
}}

func (s *S) TestFormat(c *C) {
	for _, item := range formatTests {
		c.Logf("test: %s", item.name)
		out, err := yamlstream.Format([]byte(item.input), item.opts...)
		c.Assert(err, IsNil)
		c.Assert(string(out), Equals, item.want)
	}
}

func (s *S) TestFormatCanonical(c *C) {
	out, err := yamlstream.Format([]byte("a: 1\n"), yamlstream.Canonical)
	c.Assert(err, IsNil)
	c.Assert(string(out), Matches, `(?s)---\s*!!map \{.*\? !!str "a".*: !!int "1".*\}\n`)
}

func (s *S) TestFormatMatchesOracle(c *C) {
	inputs := []string{
		"a: [1, 'x', true, ~]\nb:\n  c: |\n    text\n",
		"- 1.5\n- \"quoted: colon\"\n- {k: v}\n",
		"key: \" lead\"\nother: 'it''s'\n",
		"k:\n- |2\n   lead\n- >-\n\n  after break\n",
		"- - |1\n    two\n",
	}
	presets := []yamlstream.Option{nil, yamlstream.Compact, yamlstream.Pretty, yamlstream.Canonical, yamlstream.WithIndent(4)}
	for _, input := range inputs {
		var want any
		c.Assert(yaml.Unmarshal([]byte(input), &want), IsNil)
		for _, preset := range presets {
			out, err := yamlstream.Format([]byte(input), preset)
			c.Assert(err, IsNil)
			var got any
			c.Assert(yaml.Unmarshal(out, &got), IsNil, Commentf("output:\n%s", out))
			c.Assert(got, DeepEquals, want, Commentf("output:\n%s", out))

			reloaded, err := yamlstream.LoadAll(out)
			c.Assert(err, IsNil, Commentf("output:\n%s", out))
			original, err := yamlstream.LoadAll([]byte(input))
			c.Assert(err, IsNil)
			c.Assert(reloaded, DeepEquals, original, Commentf("output:\n%s", out))
		}
	}
}

func (s *S) TestFormatErrors(c *C) {
	_, err := yamlstream.Format([]byte("[a, b"))
	var perr yamlstream.ParserError
	c.Assert(errors.As(err, &perr), Equals, true)
	c.Assert(err, ErrorMatches, `yaml: while parsing a flow sequence at line 1: line 2: did not find expected ',' or '\]'`)

	_, err = yamlstream.Format([]byte("a"), yamlstream.WithIndent(1))
	c.Assert(err, ErrorMatches, "yaml: indent must be between 2 and 9, got 1")
}

func (s *S) TestOptsYAML(c *C) {
	opt, err := yamlstream.OptsYAML("indent: 4\nquote: single\n")
	c.Assert(err, IsNil)
	out, err := yamlstream.Format([]byte("a:\n  b: ' x'\n"), opt)
	c.Assert(err, IsNil)
	c.Assert(string(out), Equals, "a:\n    b: ' x'\n")

	settings, err := yamlstream.ApplyOptions(yamlstream.Pretty, opt)
	c.Assert(err, IsNil)
	c.Assert(settings.Indent, Equals, 4)
	c.Assert(settings.ExplicitStart, Equals, true)
	c.Assert(settings.QuotePreference, Equals, yamlstream.QuoteSingle)

	_, err = yamlstream.OptsYAML("colour: red")
	c.Assert(err, ErrorMatches, `yaml: unknown option "colour"`)
}

func (s *S) TestTokens(c *C) {
	tokens, err := yamlstream.Tokens([]byte("a: b"))
	c.Assert(err, IsNil)
	var types []string
	for _, token := range tokens {
		types = append(types, token.Type.String())
	}
	c.Assert(types, DeepEquals, []string{
		"STREAM_START_TOKEN", "BLOCK_MAPPING_START_TOKEN", "KEY_TOKEN", "SCALAR_TOKEN",
		"VALUE_TOKEN", "SCALAR_TOKEN", "BLOCK_END_TOKEN", "STREAM_END_TOKEN",
	})

	_, err = yamlstream.Tokens([]byte("'open"))
	var serr yamlstream.ScannerError
	c.Assert(errors.As(err, &serr), Equals, true)
}

func (s *S) TestNewScanner(c *C) {
	scanner := yamlstream.NewScanner(strings.NewReader("- x"))
	var token yamlstream.Token
	n := 0
	for scanner.Scan(&token) == nil {
		n++
	}
	c.Assert(n, Equals, 6)
}
