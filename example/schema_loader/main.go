// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Schema Loader shows how the schema decides what a plain scalar
// means.

package main

import (
	"errors"
	"fmt"

	"go.yaml.in/yamlstream"
)

func main() {
	fmt.Println("Example 2: Loading with different schemas")

	yamlData := []byte(`[0x1F, yes, ~, 1.5, "42"]`)

	for _, name := range []string{"failsafe", "json", "core", "yaml1.1", "json-strict"} {
		value, err := yamlstream.Load(yamlData, yamlstream.WithSchemaName(name))
		var semErr *yamlstream.SemanticError
		switch {
		case errors.As(err, &semErr):
			fmt.Printf("%-12s error: %v\n", name, err)
		case err != nil:
			panic(err)
		default:
			fmt.Printf("%-12s %#v\n", name, value)
		}
	}
}
