// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"go.yaml.in/yamlstream/internal/testutil/assert"
)

func scanAll(t *testing.T, s *Scanner) []Token {
	t.Helper()
	var tokens []Token
	for {
		var token Token
		err := s.Scan(&token)
		if err == io.EOF {
			return tokens
		}
		assert.NoError(t, err)
		tokens = append(tokens, token)
	}
}

func stringScanner(input string) *Scanner {
	s := NewScanner()
	s.SetInputString([]byte(input))
	return &s
}

func TestScanMarks(t *testing.T) {
	tokens := scanAll(t, stringScanner("a: b\nlist:\n  - x\n"))
	var scalars []Token
	for _, token := range tokens {
		if token.Type == SCALAR_TOKEN {
			scalars = append(scalars, token)
		}
	}
	assert.Equal(t, 4, len(scalars))
	assert.Equal(t, Mark{Index: 0, Line: 1, Column: 0}, scalars[0].StartMark)
	assert.Equal(t, Mark{Index: 3, Line: 1, Column: 3}, scalars[1].StartMark)
	assert.Equal(t, Mark{Index: 5, Line: 2, Column: 0}, scalars[2].StartMark)
	assert.Equal(t, Mark{Index: 15, Line: 3, Column: 4}, scalars[3].StartMark)
	assert.Equal(t, "x", scalars[3].Value)
}

func TestScanScalarValues(t *testing.T) {
	tests := []struct {
		input string
		value string
		style ScalarStyle
	}{
		{"plain text", "plain text", PLAIN_SCALAR_STYLE},
		{"folded\n  plain", "folded plain", PLAIN_SCALAR_STYLE},
		{"'it''s'", "it's", SINGLE_QUOTED_SCALAR_STYLE},
		{`"caf\u00e9 \x41"`, "café A", DOUBLE_QUOTED_SCALAR_STYLE},
		{`"tab\tnl\n"`, "tab\tnl\n", DOUBLE_QUOTED_SCALAR_STYLE},
		{"|\n a\n b\n", "a\nb\n", LITERAL_SCALAR_STYLE},
		{"|-\n a\n", "a", LITERAL_SCALAR_STYLE},
		{"|+\n a\n\n", "a\n\n", LITERAL_SCALAR_STYLE},
		{">\n a\n b\n\n c\n", "a b\nc\n", FOLDED_SCALAR_STYLE},
		{"- |\n  \tx\n", "\tx\n", LITERAL_SCALAR_STYLE},
		{"|2\n  \tx\n", "\tx\n", LITERAL_SCALAR_STYLE},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var found bool
			for _, token := range scanAll(t, stringScanner(tt.input)) {
				if token.Type != SCALAR_TOKEN {
					continue
				}
				found = true
				assert.Equal(t, tt.value, token.Value)
				assert.Equal(t, tt.style, token.Style)
			}
			assert.True(t, found)
		})
	}
}

func TestScanTagToken(t *testing.T) {
	tokens := scanAll(t, stringScanner("!!int 3\n"))
	assert.Equal(t, TAG_TOKEN, tokens[1].Type)
	assert.Equal(t, "!!", tokens[1].Value)
	assert.Equal(t, "int", tokens[1].Suffix)

	tokens = scanAll(t, stringScanner("!<tag:example.com,2000:app/x> v\n"))
	assert.Equal(t, TAG_TOKEN, tokens[1].Type)
	assert.Equal(t, "", tokens[1].Value)
	assert.Equal(t, "tag:example.com,2000:app/x", tokens[1].Suffix)
}

func TestScanDirectiveTokens(t *testing.T) {
	tokens := scanAll(t, stringScanner("%YAML 1.1\n%TAG !e! tag:e.com,2000:\n---\n"))
	assert.Equal(t, VERSION_DIRECTIVE_TOKEN, tokens[1].Type)
	assert.Equal(t, int8(1), tokens[1].Major)
	assert.Equal(t, int8(1), tokens[1].Minor)
	assert.Equal(t, TAG_DIRECTIVE_TOKEN, tokens[2].Type)
	assert.Equal(t, "!e!", tokens[2].Value)
	assert.Equal(t, "tag:e.com,2000:", tokens[2].Prefix)
}

func TestScanAfterStreamEnd(t *testing.T) {
	s := stringScanner("a")
	scanAll(t, s)
	var token Token
	assert.Equal(t, io.EOF, s.Scan(&token))
	_, err := s.PeekToken()
	assert.Equal(t, io.EOF, err)
}

func TestPeekTokenDoesNotConsume(t *testing.T) {
	s := stringScanner("[a]")
	var token Token
	assert.NoError(t, s.Scan(&token))
	assert.Equal(t, STREAM_START_TOKEN, token.Type)

	peeked, err := s.PeekToken()
	assert.NoError(t, err)
	assert.Equal(t, FLOW_SEQUENCE_START_TOKEN, peeked.Type)
	assert.NoError(t, s.Scan(&token))
	assert.Equal(t, FLOW_SEQUENCE_START_TOKEN, token.Type)
}

func TestScanErrorIsSticky(t *testing.T) {
	s := stringScanner("a: 'b")
	var token Token
	var first error
	for first == nil {
		first = s.Scan(&token)
	}
	assert.ErrorMatches(t, "found unexpected end of stream", first)
	assert.Equal(t, first, s.Scan(&token))
	_, err := s.PeekToken()
	assert.Equal(t, first, err)
}

func TestScannerErrorAs(t *testing.T) {
	_, err := scanTokenTypes([]byte("a: b\n@c\n"))
	var serr ScannerError
	assert.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Mark.Line)
	assert.ErrorMatches(t, `^yaml: while scanning for the next token at line 2: found character that cannot start any token$`, err)
}

func TestReaderErrorAs(t *testing.T) {
	_, err := scanTokenTypes([]byte("ab\xc3"))
	var rerr ReaderError
	assert.ErrorAs(t, err, &rerr)
	assert.Equal(t, 2, rerr.Offset)
	assert.ErrorMatches(t, "incomplete UTF-8 octet sequence", err)
}

func TestScanReaderInput(t *testing.T) {
	input := "a: [1, 2]\nb: {c: 'd e'}\n# comment\n"
	want := scanAll(t, stringScanner(input))

	s := NewScanner()
	s.SetInputReader(iotest.OneByteReader(strings.NewReader(input)))
	got := scanAll(t, &s)
	assert.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestScanLargeReaderInput(t *testing.T) {
	input := strings.Repeat("key: value with some text\n", 200)
	s := NewScanner()
	s.SetInputReader(strings.NewReader(input))
	var scalars int
	for _, token := range scanAll(t, &s) {
		if token.Type == SCALAR_TOKEN {
			scalars++
		}
	}
	assert.Equal(t, 400, scalars)
}

func TestScanReaderFailure(t *testing.T) {
	boom := errors.New("boom")
	s := NewScanner()
	s.SetInputReader(iotest.ErrReader(boom))
	var token Token
	err := s.Scan(&token)
	assert.ErrorMatches(t, "input error: boom", err)
	var rerr ReaderError
	assert.ErrorAs(t, err, &rerr)
}

func TestScanBOM(t *testing.T) {
	tokens := scanAll(t, stringScanner("\xef\xbb\xbfa"))
	assert.Equal(t, SCALAR_TOKEN, tokens[1].Type)
	assert.Equal(t, "a", tokens[1].Value)
}

func TestSetInputTwicePanics(t *testing.T) {
	s := stringScanner("a")
	assert.PanicMatches(t, "must set the input source only once", func() {
		s.SetInputString([]byte("b"))
	})
}

func TestTokenNesting(t *testing.T) {
	inputs := []string{
		"a: b",
		"- [a, {b: c}]\n- d\n",
		"a:\n  b:\n    - c\n",
		"--- x\n--- [y]\n",
		"",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			depth := 0
			for _, token := range scanAll(t, stringScanner(input)) {
				depth += token.NestingIncrease()
				assert.Truef(t, depth >= 0, "depth dropped below zero at %s", token.Type)
			}
			assert.Equal(t, 0, depth)
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "KEY_TOKEN", KEY_TOKEN.String())
	assert.Equal(t, "<unknown token>", TokenType(-1).String())
	assert.Equal(t, "<unknown token>", TokenType(100).String())
}
