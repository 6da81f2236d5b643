// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Self Reference composes a document whose anchor contains an
// alias to itself.

package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"go.yaml.in/yamlstream"
)

func main() {
	fmt.Println("Example 5: Self-referencing anchors")

	docs, err := yamlstream.Compose([]byte("&list [a, b, *list]\n"))
	if err != nil {
		panic(err)
	}
	doc := docs[0]
	root := doc.Node(doc.Root)
	fmt.Printf("root %s anchored %q, cyclic: %v\n", root.Kind, root.Anchor, root.Cyclic)

	value, err := doc.Value(nil)
	if err != nil {
		panic(err)
	}
	out, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	fmt.Printf("As JSON: %s\n", out)
}
