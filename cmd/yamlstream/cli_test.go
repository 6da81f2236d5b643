// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"go.yaml.in/yamlstream"
	"go.yaml.in/yamlstream/internal/testutil/assert"
)

// TestCase represents a single test case from a test file
type TestCase struct {
	Name     string `yaml:"name"`
	Text     string `yaml:"text"`
	Options  string `yaml:"options,omitempty"`
	Token    string `yaml:"token,omitempty"`
	TOKEN    string `yaml:"TOKEN,omitempty"`
	Event    string `yaml:"event,omitempty"`
	Resolved string `yaml:"resolved,omitempty"`
	Node     string `yaml:"node,omitempty"`
	Yaml     string `yaml:"yaml,omitempty"`
	Json     string `yaml:"json,omitempty"`
	JSON     string `yaml:"JSON,omitempty"`
}

// TestSuite is a sequence of test cases
type TestSuite []TestCase

func TestCLI(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.yaml")
	if err != nil {
		t.Fatalf("Failed to find test files: %v", err)
	}
	if len(testFiles) == 0 {
		t.Skip("No test files found in testdata/")
	}
	for _, testFile := range testFiles {
		t.Run(filepath.Base(testFile), func(t *testing.T) {
			runTestFile(t, testFile)
		})
	}
}

func runTestFile(t *testing.T, testFile string) {
	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read test file %s: %v", testFile, err)
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		t.Fatalf("Failed to parse test file %s: %v", testFile, err)
	}
	for _, tc := range suite {
		t.Run(tc.Name, func(t *testing.T) {
			runTestCase(t, tc)
		})
	}
}

func runTestCase(t *testing.T, tc TestCase) {
	tests := []struct {
		flag     string
		expected string
	}{
		{"-t", tc.Token},
		{"-T", tc.TOKEN},
		{"-e", tc.Event},
		{"-r", tc.Resolved},
		{"-n", tc.Node},
		{"-y", tc.Yaml},
		{"-j", tc.Json},
		{"-J", tc.JSON},
	}
	for _, test := range tests {
		if test.expected == "" {
			continue
		}
		t.Run(test.flag, func(t *testing.T) {
			args := []string{test.flag}
			if tc.Options != "" {
				args = append(args, "-o", tc.Options)
			}
			var stdout, stderr bytes.Buffer
			if code := run(args, strings.NewReader(tc.Text), &stdout, &stderr); code != 0 {
				t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr.String())
			}
			actual := normalizeOutput(stdout.String())
			expected := normalizeOutput(test.expected)
			if actual != expected {
				t.Errorf("Output mismatch for flag %s\nExpected:\n%s\n\nActual:\n%s", test.flag, expected, actual)
			}
		})
	}
}

// normalizeOutput trims whitespace and ensures consistent line endings
func normalizeOutput(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func runCLI(t *testing.T, input string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(input), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no mode", nil, "no mode specified"},
		{"two modes", []string{"-t", "-e"}, "-t and -e cannot be combined"},
		{"unknown option", []string{"-y", "-o", "colour"}, "unknown option: colour"},
		{"bad value", []string{"-y", "-o", "indent=wide"}, "indent requires an integer value"},
		{"bad indent", []string{"-y", "-o", "indent=12"}, "yaml: "},
		{"bad schema", []string{"-r", "-o", "schema=yaml1.3"}, "yaml1.3"},
		{"missing file", []string{"-y", "testdata/missing.yaml"}, "missing.yaml"},
		{"two files", []string{"-y", "a.yaml", "b.yaml"}, "only one file argument supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "a: 1\n", tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "yamlstream version "+version)

	code, stdout, _ = runCLI(t, "", "-o", "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Available options for -o/--option")
}

func TestInputErrors(t *testing.T) {
	code, _, stderr := runCLI(t, "a: [1, 2\n", "-y")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to format YAML: yaml: while parsing a flow sequence")

	code, _, stderr = runCLI(t, "'open\n", "-t")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to scan YAML")

	code, _, stderr = runCLI(t, "a: *x\n", "-n")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to compose YAML")
}

func TestFileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("{a: 1}\n"), 0o644))
	code, stdout, stderr := runCLI(t, "", "-j", path)
	assert.Equalf(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "{\"a\":1}\n", stdout)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("indent: 4\nexplicit-start: true\n"), 0o644))
	code, stdout, stderr := runCLI(t, "a:\n  b: c\n", "-y", "-C", path)
	assert.Equalf(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "---\na:\n    b: c\n", stdout)

	// -o is applied after the config file.
	code, stdout, _ = runCLI(t, "a:\n  b: c\n", "-y", "-C", path, "-o", "indent=3")
	assert.Equal(t, 0, code)
	assert.Equal(t, "---\na:\n   b: c\n", stdout)
}

func TestJSONEvents(t *testing.T) {
	code, stdout, stderr := runCLI(t, "a: 1\n", "--json-events")
	assert.Equalf(t, 0, code, "stderr: %s", stderr)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, 8, len(lines))

	var scalar jsonEvent
	assert.NoError(t, json.Unmarshal([]byte(lines[4]), &scalar))
	assert.Equal(t, "SCALAR", scalar.Event)
	assert.Equal(t, "1", scalar.Value)
	assert.Equal(t, string(yamlstream.IntTag), scalar.Tag)
	assert.Equal(t, "Plain", scalar.Style)
	assert.Equal(t, 1, scalar.Line)
	assert.Equal(t, 4, scalar.Column)
}

func TestVerbose(t *testing.T) {
	code, stdout, stderr := runCLI(t, "a: 1\n", "-v", "-y")
	assert.Equal(t, 0, code)
	assert.Equal(t, "a: 1\n", stdout)
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestParseOneOption(t *testing.T) {
	tests := []struct {
		in    string
		count int
		err   string
	}{
		{in: "indent=4", count: 1},
		{in: "unicode", count: 1},
		{in: "no-unicode", count: 1},
		{in: "explicit", count: 2},
		{in: "no-explicit", count: 2},
		{in: "pretty", count: 1},
		{in: "quote=single", count: 1},
		{in: "line-break=crln", count: 1},
		{in: "schema=json", count: 1},
		{in: "indent", err: "option indent requires a value (use indent=value)"},
		{in: "no-indent", err: "option indent is not boolean, cannot use no- prefix"},
		{in: "pretty=true", err: "preset pretty takes no value"},
		{in: "unicode=yes", err: "option unicode requires true or false value"},
		{in: "quote=back", err: "quote must be single or double"},
		{in: "line-break=lf", err: "line-break must be ln, cr, or crln"},
		{in: "nope", err: "unknown option: nope"},
		{in: "no-nope", err: "unknown option: nope"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			opts, err := parseOneOption(tt.in)
			if tt.err != "" {
				assert.ErrorMatches(t, tt.err, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.count, len(opts))
		})
	}
}

func TestParseOptionFlags(t *testing.T) {
	opts, err := parseOptionFlags("indent=4, unicode,,no-compact")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(opts))

	_, err = parseOneOption("?")
	assert.ErrorIs(t, err, errShowOptions)
}

func TestBuildOptions(t *testing.T) {
	opts, err := buildOptions("", []string{"indent=4", "explicit-start"})
	assert.NoError(t, err)
	settings, err := yamlstream.ApplyOptions(opts...)
	assert.NoError(t, err)
	assert.Equal(t, 4, settings.Indent)
	assert.True(t, settings.ExplicitStart)

	_, err = buildOptions(filepath.Join(t.TempDir(), "none.yaml"), nil)
	assert.ErrorMatches(t, "failed to read config file: .*", err)
}

func TestFormatPos(t *testing.T) {
	mark := func(line, column int) yamlstream.Mark { return yamlstream.Mark{Line: line, Column: column} }
	assert.Equal(t, "1:1", formatPos(mark(1, 0), mark(1, 0)))
	assert.Equal(t, "1:4-5", formatPos(mark(1, 3), mark(1, 4)))
	assert.Equal(t, "1:1-3:1", formatPos(mark(1, 0), mark(3, 0)))
}
