// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Tag resolution for nodes without an explicit tag.
//
// A Schema is an ordered table of (tag, patterns, converter) entries. Plain
// scalars are matched against the entries in order and the first entry with
// a matching pattern gives the tag. An entry may own several patterns, for
// instance one per boolean spelling; its converter re-tests them to pick the
// conversion, so a tag always maps to a single ValueParser.

package libyaml

import (
	"errors"
	"fmt"
	"regexp"
)

// ValueParser converts the text of a scalar to a Go value.
type ValueParser func(text string) (any, error)

// Errors reported by value conversion.
var (
	ErrIntegerOverflow = errors.New("value was too large for an integer")
	ErrNoMatch         = errors.New("text does not match the tag")
	ErrUnknownTag      = errors.New("unknown tag")
	ErrUnresolved      = errors.New("no schema rule matches the scalar")
)

type schemaPattern struct {
	re    *regexp.Regexp
	parse ValueParser
}

type schemaEntry struct {
	tag      TagName
	patterns []schemaPattern
}

// Schema resolves non-specific tags. It is safe for concurrent use once
// built.
type Schema struct {
	name     string
	entries  []schemaEntry
	index    map[TagName]int
	fallback TagName
	specific map[TagName]ValueParser
}

// NewSchema returns an empty schema. Unmatched plain scalars resolve to
// fallback; an empty fallback makes the schema strict.
func NewSchema(name string, fallback TagName) *Schema {
	s := &Schema{
		name:     name,
		index:    make(map[TagName]int),
		fallback: fallback,
		specific: make(map[TagName]ValueParser),
	}
	s.specific[STR_TAG] = parseStr
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Strict reports whether the schema leaves unmatched plain scalars
// unresolved.
func (s *Schema) Strict() bool { return s.fallback.IsEmpty() }

// Fallback returns the tag of unmatched plain scalars.
func (s *Schema) Fallback() TagName { return s.fallback }

// Register adds a pattern for tag. Registering a tag that is already present
// adds the pattern to the existing entry, which keeps its position in the
// table. The pattern is anchored at both ends.
func (s *Schema) Register(tag TagName, pattern string, parse ValueParser) *Schema {
	p := schemaPattern{re: regexp.MustCompile(`^(?:` + pattern + `)$`), parse: parse}
	if i, ok := s.index[tag]; ok {
		s.entries[i].patterns = append(s.entries[i].patterns, p)
		return s
	}
	s.index[tag] = len(s.entries)
	s.entries = append(s.entries, schemaEntry{tag: tag, patterns: []schemaPattern{p}})
	entry := len(s.entries) - 1
	s.specific[tag] = func(text string) (any, error) {
		return s.entries[entry].parse(text)
	}
	return s
}

// RegisterSpecific adds a converter for an explicit tag that plain scalars
// never resolve to, such as !!binary.
func (s *Schema) RegisterSpecific(tag TagName, parse ValueParser) *Schema {
	s.specific[tag] = parse
	return s
}

func (e *schemaEntry) match(text string) (schemaPattern, bool) {
	for _, p := range e.patterns {
		if p.re.MatchString(text) {
			return p, true
		}
	}
	return schemaPattern{}, false
}

func (e *schemaEntry) parse(text string) (any, error) {
	p, ok := e.match(text)
	if !ok {
		return nil, ErrNoMatch
	}
	return p.parse(text)
}

// ResolveScalar returns the tag of a plain scalar with the given text. The
// result is false when a strict schema has no matching entry.
func (s *Schema) ResolveScalar(text string) (TagName, bool) {
	for i := range s.entries {
		if _, ok := s.entries[i].match(text); ok {
			return s.entries[i].tag, true
		}
	}
	if s.fallback.IsEmpty() {
		return "", false
	}
	return s.fallback, true
}

// ResolveNonSpecific returns the tag for a scalar, sequence start or mapping
// start event whose tag is empty or "!". path holds the start events of
// the enclosing collections, outermost first; the built-in schemas resolve
// by node kind and text alone.
func (s *Schema) ResolveNonSpecific(ev *Event, path []*Event) (TagName, bool) {
	switch ev.Type {
	case SEQUENCE_START_EVENT:
		return SEQ_TAG, true
	case MAPPING_START_EVENT:
		return MAP_TAG, true
	case SCALAR_EVENT:
		if ev.Tag == "!" || ev.ScalarStyle() != PLAIN_SCALAR_STYLE && ev.ScalarStyle() != ANY_SCALAR_STYLE {
			return STR_TAG, true
		}
		return s.ResolveScalar(ev.Value)
	}
	return "", false
}

// ResolveSpecific returns the converter for an explicit tag.
func (s *Schema) ResolveSpecific(tag TagName) (ValueParser, bool) {
	p, ok := s.specific[tag]
	return p, ok
}

// Value converts text to the Go value for tag. Failures are returned as
// *SemanticError without a mark.
func (s *Schema) Value(tag TagName, text string) (any, error) {
	parse, ok := s.ResolveSpecific(tag)
	if !ok {
		return nil, &SemanticError{Tag: tag, Value: text, Err: ErrUnknownTag}
	}
	v, err := parse(text)
	if err != nil {
		return nil, &SemanticError{Tag: tag, Value: text, Err: err}
	}
	return v, nil
}

// SchemaByName returns a built-in schema: "failsafe", "json", "core" or
// "yaml1.1" ("yaml11"), each optionally followed by "-strict".
func SchemaByName(name string) (*Schema, error) {
	switch name {
	case "failsafe":
		return FailsafeSchema(), nil
	case "json":
		return JSONSchema(false), nil
	case "json-strict":
		return JSONSchema(true), nil
	case "core", "":
		return CoreSchema(false), nil
	case "core-strict":
		return CoreSchema(true), nil
	case "yaml1.1", "yaml11":
		return YAML11Schema(false), nil
	case "yaml1.1-strict", "yaml11-strict":
		return YAML11Schema(true), nil
	}
	return nil, fmt.Errorf("yaml: unknown schema %q", name)
}

func (s *Schema) String() string {
	if s.Strict() {
		return s.name + "-strict"
	}
	return s.name
}
