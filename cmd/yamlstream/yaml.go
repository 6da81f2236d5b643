// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"go.yaml.in/yamlstream"
)

// ProcessYAML reads YAML from reader and writes it back through the
// emitter, formatted with opts.
func ProcessYAML(reader io.Reader, w io.Writer, opts ...yamlstream.Option) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	out, err := yamlstream.Format(input, opts...)
	if err != nil {
		return fmt.Errorf("failed to format YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}
