// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// JSON output for the yamlstream tool.

package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"go.yaml.in/yamlstream"
)

// ProcessJSON reads every document of reader and writes each one as a
// JSON value.
func ProcessJSON(reader io.Reader, w io.Writer, pretty bool, opts ...yamlstream.Option) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	docs, err := yamlstream.LoadAll(input, opts...)
	if err != nil {
		return fmt.Errorf("failed to load YAML: %w", err)
	}
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	for _, doc := range docs {
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	}
	return nil
}

// jsonEvent is one line of --json-events output.
type jsonEvent struct {
	Event    string `json:"event"`
	Value    string `json:"value,omitempty"`
	Style    string `json:"style,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Anchor   string `json:"anchor,omitempty"`
	Implicit bool   `json:"implicit,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// ProcessJSONEvents writes the resolved events of reader as JSON lines.
// Tags are written in full.
func ProcessJSONEvents(reader io.Reader, w io.Writer, opts ...yamlstream.Option) error {
	src, err := yamlstream.NewEventSource(reader, opts...)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	for {
		var event yamlstream.Event
		err := src.Parse(&event)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
		if err := encoder.Encode(newJSONEvent(&event)); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	}
}

func newJSONEvent(event *yamlstream.Event) jsonEvent {
	je := jsonEvent{
		Event:  eventName(event.Type),
		Value:  event.Value,
		Tag:    string(event.Tag),
		Anchor: string(event.Anchor),
		Line:   event.StartMark.Line,
		Column: event.StartMark.Column + 1,
	}
	switch event.Type {
	case yamlstream.ScalarEvent:
		je.Style = event.ScalarStyle().String()
		je.Implicit = event.Implicit
	case yamlstream.SequenceStartEvent:
		je.Style = event.SequenceStyle().String()
		je.Implicit = event.Implicit
	case yamlstream.MappingStartEvent:
		je.Style = event.MappingStyle().String()
		je.Implicit = event.Implicit
	case yamlstream.DocumentStartEvent, yamlstream.DocumentEndEvent:
		je.Implicit = event.Implicit
	}
	return je
}
