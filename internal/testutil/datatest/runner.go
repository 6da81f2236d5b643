// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package datatest

import (
	"testing"
)

// TestHandler runs a single case.
type TestHandler func(t *testing.T, tc map[string]any)

// TestRunner dispatches cases to handlers by their type field.
type TestRunner struct {
	handlers map[string]TestHandler
}

// NewTestRunner creates a new test runner.
func NewTestRunner() *TestRunner {
	return &TestRunner{handlers: make(map[string]TestHandler)}
}

// RegisterHandler registers the handler for cases of testType.
func (r *TestRunner) RegisterHandler(testType string, handler TestHandler) {
	r.handlers[testType] = handler
}

// RunWithCases runs every case as a subtest named by its name field.
func (r *TestRunner) RunWithCases(t *testing.T, cases []map[string]any) {
	t.Helper()
	for _, tc := range cases {
		name, _ := tc["name"].(string)
		if name == "" {
			name = "unnamed"
		}
		testType, _ := tc["type"].(string)
		if testType == "" {
			t.Fatalf("case %q has no type", name)
		}
		t.Run(name, func(t *testing.T) {
			handler, ok := r.handlers[testType]
			if !ok {
				t.Fatalf("unknown case type %q", testType)
			}
			handler(t, tc)
		})
	}
}

// RunFile loads the cases of filename with yaml.v3 and runs them.
func RunFile(t *testing.T, filename string, handlers map[string]TestHandler) {
	t.Helper()
	cases, err := LoadTestCasesFromFile(filename, nil)
	if err != nil {
		t.Fatalf("loading cases: %v", err)
	}
	runner := NewTestRunner()
	for testType, handler := range handlers {
		runner.RegisterHandler(testType, handler)
	}
	runner.RunWithCases(t, cases)
}

// Decode fills target from tc, failing the test on error.
func Decode(t *testing.T, tc map[string]any, target any) {
	t.Helper()
	if err := UnmarshalStruct(target, tc); err != nil {
		t.Fatalf("decoding case: %v", err)
	}
}
