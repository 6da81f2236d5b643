// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Format Presets re-emits one document with each output preset.

package main

import (
	"fmt"

	"go.yaml.in/yamlstream"
)

func main() {
	fmt.Println("Example 1: Format with presets")

	yamlData := []byte(`name: myapp
version: "1.0"
ports: [80, 443]
tls:
  enabled: yes
`)

	presets := []struct {
		name string
		opt  yamlstream.Option
	}{
		{"default", yamlstream.Options()},
		{"compact", yamlstream.Compact},
		{"pretty", yamlstream.Pretty},
		{"canonical", yamlstream.Canonical},
	}

	for _, p := range presets {
		out, err := yamlstream.Format(yamlData, p.opt)
		if err != nil {
			panic(err)
		}
		fmt.Printf("--- %s ---\n%s\n", p.name, out)
	}
}
