// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package datatest

import (
	"fmt"
	"strings"
)

// TrimTrailingNewline removes one trailing newline, which YAML literal
// blocks add to every case expectation.
func TrimTrailingNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}

// Lines splits a literal block expectation into its lines.
func Lines(s string) []string {
	s = TrimTrailingNewline(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// GenerateData builds large inputs from a compact description:
//
//	"text"                                   the text itself
//	{loop: ["[", 100]}                       "[" repeated 100 times
//	{join: [{text: "a"}, {loop: ["b", 3]}]}  "abbb"
//	{join: [...], loop: 2}                   the joined text twice
func GenerateData(spec any) ([]byte, error) {
	switch s := spec.(type) {
	case string:
		return []byte(s), nil
	case map[string]any:
		join, hasJoin := s["join"]
		loop, hasLoop := s["loop"]
		if !hasJoin {
			if !hasLoop {
				return nil, fmt.Errorf("data spec needs a join or a loop")
			}
			return repeat(loop)
		}
		parts, ok := join.([]any)
		if !ok {
			return nil, fmt.Errorf("join must be a sequence, got %T", join)
		}
		var b strings.Builder
		for i, part := range parts {
			data, err := GenerateData(part)
			if err != nil {
				return nil, fmt.Errorf("join item %d: %w", i, err)
			}
			b.Write(data)
		}
		if !hasLoop {
			return []byte(b.String()), nil
		}
		n, ok := loop.(int)
		if !ok {
			return nil, fmt.Errorf("loop count must be an int, got %T", loop)
		}
		return []byte(strings.Repeat(b.String(), n)), nil
	}
	return nil, fmt.Errorf("data spec must be a string or a mapping, got %T", spec)
}

func repeat(loop any) ([]byte, error) {
	pair, ok := loop.([]any)
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("loop must be [text, count], got %v", loop)
	}
	text, ok1 := pair[0].(string)
	n, ok2 := pair[1].(int)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("loop must be [text, count], got %v", loop)
	}
	return []byte(strings.Repeat(text, n)), nil
}
