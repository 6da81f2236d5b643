// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types for YAML scanning, parsing, resolving and emitting.
// Provides structured error reporting with line/column information.

package libyaml

import (
	"fmt"
	"strings"
)

type MarkedYAMLError struct {
	// optional context
	ContextMark    Mark
	ContextMessage string

	Mark    Mark
	Message string
}

func (e MarkedYAMLError) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if len(e.ContextMessage) > 0 {
		fmt.Fprintf(&builder, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if len(e.ContextMessage) == 0 || e.ContextMark != e.Mark {
		fmt.Fprintf(&builder, "%s: ", e.Mark)
	}
	builder.WriteString(e.Message)
	return builder.String()
}

type ParserError MarkedYAMLError

func (e ParserError) Error() string {
	return MarkedYAMLError(e).Error()
}

type ScannerError MarkedYAMLError

func (e ScannerError) Error() string {
	return MarkedYAMLError(e).Error()
}

// ResourceLimitError is returned when a buffered capture exceeds its
// configured depth or length. Nothing of the capture is exposed.
type ResourceLimitError struct {
	Mark    Mark
	Limit   string // "depth" or "length"
	Max     int
	Message string
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("yaml: %s: %s", e.Mark, e.Message)
}

// SemanticError reports a node whose tag cannot be resolved or whose value
// cannot be converted for its tag.
type SemanticError struct {
	Mark  Mark
	Tag   TagName
	Value string
	Err   error
}

func (e *SemanticError) Error() string {
	if e.Tag.IsEmpty() {
		return fmt.Sprintf("yaml: %s: %s", e.Mark, e.Err)
	}
	return fmt.Sprintf("yaml: %s: cannot decode %q as %s: %s", e.Mark, e.Value, e.Tag.Short(), e.Err)
}

func (e *SemanticError) Unwrap() error {
	return e.Err
}

type ReaderError struct {
	Offset int
	Value  int
	Err    error
}

func (e ReaderError) Error() string {
	return fmt.Sprintf("yaml: offset %d: %s", e.Offset, e.Err)
}

func (e ReaderError) Unwrap() error {
	return e.Err
}

type EmitterError struct {
	Message string
}

func (e EmitterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Message)
}

type WriterError struct {
	Err error
}

func (e WriterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Err)
}

func (e WriterError) Unwrap() error {
	return e.Err
}
