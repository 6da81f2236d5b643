// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Merge Keys expands "<<" entries and prints the resolved events.

package main

import (
	"fmt"
	"strings"

	"go.yaml.in/yamlstream"
)

func main() {
	fmt.Println("Example 4: Merge keys")

	yamlData := `defaults: &defaults
  adapter: postgres
  host: localhost
development:
  <<: *defaults
  database: dev
`

	src, err := yamlstream.NewEventSource(strings.NewReader(yamlData), yamlstream.WithMergeKeys(true))
	if err != nil {
		panic(err)
	}
	var buf strings.Builder
	emitter, err := yamlstream.NewEmitter(&buf)
	if err != nil {
		panic(err)
	}
	n, err := yamlstream.Copy(emitter, src)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Copied %d events:\n%s", n, buf.String())
}
