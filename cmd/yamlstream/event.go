// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Event output for the yamlstream tool.

package main

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yamlstream"
)

// ProcessEvents reads YAML from reader and writes one record per event.
// With resolved set the events come from the full reading pipeline, so
// merge keys are expanded and every node carries its resolved tag.
func ProcessEvents(reader io.Reader, w io.Writer, profuse, compact, resolved bool, opts ...yamlstream.Option) error {
	src, err := eventSource(reader, resolved, opts...)
	if err != nil {
		return err
	}
	out, err := newRecordWriter(w, compact)
	if err != nil {
		return err
	}
	for {
		var event yamlstream.Event
		err := src.Parse(&event)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
		if err := out.write(eventRecord(&event, profuse)); err != nil {
			return err
		}
	}
	return out.close()
}

func eventSource(reader io.Reader, resolved bool, opts ...yamlstream.Option) (yamlstream.EventSource, error) {
	if resolved {
		return yamlstream.NewEventSource(reader, opts...)
	}
	return yamlstream.NewParser(reader, opts...)
}

// eventName turns "sequence start" into SEQUENCE-START.
func eventName(t yamlstream.EventType) string {
	return strings.ToUpper(strings.ReplaceAll(t.String(), " ", "-"))
}

func eventRecord(event *yamlstream.Event, profuse bool) record {
	r := record{{"event", eventName(event.Type)}}
	switch event.Type {
	case yamlstream.DocumentStartEvent, yamlstream.DocumentEndEvent:
		if event.Version != nil {
			r = r.add("version", event.Version.String())
		}
		// -e marks the unusual case, -E shows the flag itself.
		if profuse && event.Implicit {
			r = r.add("implicit", true)
		} else if !profuse && !event.Implicit {
			r = r.add("explicit", true)
		}
	case yamlstream.AliasEvent:
		r = r.add("anchor", string(event.Anchor))
	case yamlstream.ScalarEvent:
		r = r.add("value", event.Value)
		if style := event.ScalarStyle(); profuse || style != yamlstream.PlainStyle {
			r = r.add("style", style.String())
		}
		r = r.add("tag", event.Tag.Short())
		r = r.add("anchor", string(event.Anchor))
	case yamlstream.SequenceStartEvent:
		if style := event.SequenceStyle(); profuse || style == yamlstream.FlowSequenceStyle {
			r = r.add("style", style.String())
		}
		r = r.add("tag", event.Tag.Short())
		r = r.add("anchor", string(event.Anchor))
	case yamlstream.MappingStartEvent:
		if style := event.MappingStyle(); profuse || style == yamlstream.FlowMappingStyle {
			r = r.add("style", style.String())
		}
		r = r.add("tag", event.Tag.Short())
		r = r.add("anchor", string(event.Anchor))
	}
	if profuse {
		r = r.add("pos", formatPos(event.StartMark, event.EndMark))
	}
	return r
}
