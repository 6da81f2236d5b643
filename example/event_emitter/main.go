// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Event Emitter builds a document from events and writes it out.

package main

import (
	"bytes"
	"fmt"

	"go.yaml.in/yamlstream"
)

func main() {
	fmt.Println("Example 3: Emitting events")

	events := []yamlstream.Event{
		yamlstream.NewStreamStartEvent(),
		yamlstream.NewDocumentStartEvent(nil, nil, true),
		yamlstream.NewMappingStartEvent("", "", true, yamlstream.BlockMappingStyle),
		yamlstream.NewScalarEvent("", yamlstream.StrTag, "services", true, true, yamlstream.PlainStyle),
		yamlstream.NewSequenceStartEvent("web", "", true, yamlstream.FlowSequenceStyle),
		yamlstream.NewScalarEvent("", yamlstream.StrTag, "nginx", true, true, yamlstream.PlainStyle),
		yamlstream.NewScalarEvent("", yamlstream.StrTag, "8080", true, true, yamlstream.PlainStyle),
		yamlstream.NewSequenceEndEvent(),
		yamlstream.NewScalarEvent("", yamlstream.StrTag, "backup", true, true, yamlstream.PlainStyle),
		yamlstream.NewAliasEvent("web"),
		yamlstream.NewMappingEndEvent(),
		yamlstream.NewDocumentEndEvent(true),
		yamlstream.NewStreamEndEvent(),
	}

	// "8080" is a string, so it comes out quoted.
	var buf bytes.Buffer
	if err := yamlstream.EmitEvents(&buf, events); err != nil {
		panic(err)
	}
	fmt.Printf("Output:\n%s", buf.String())
}
