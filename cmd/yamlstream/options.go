// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Parsing of -o options and -C config files into yamlstream options.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yamlstream"
)

// errShowOptions asks for the option list instead of a run.
var errShowOptions = errors.New("show options")

// optionSpec defines metadata for an option
type optionSpec struct {
	typ     string // "bool", "int", "string", "multi", "preset"
	handler func(value string) ([]yamlstream.Option, error)
}

func boolOption(with func(...bool) yamlstream.Option) optionSpec {
	return optionSpec{typ: "bool", handler: func(value string) ([]yamlstream.Option, error) {
		return []yamlstream.Option{with(value == "true")}, nil
	}}
}

func intOption(name string, with func(int) yamlstream.Option) optionSpec {
	return optionSpec{typ: "int", handler: func(value string) ([]yamlstream.Option, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s requires an integer value", name)
		}
		return []yamlstream.Option{with(n)}, nil
	}}
}

func presetOption(preset yamlstream.Option) optionSpec {
	return optionSpec{typ: "preset", handler: func(string) ([]yamlstream.Option, error) {
		return []yamlstream.Option{preset}, nil
	}}
}

// optionRegistry maps option names (including short aliases) to their specs
var optionRegistry = map[string]optionSpec{
	// Presets
	"compact-preset": presetOption(yamlstream.Compact),
	"pretty":         presetOption(yamlstream.Pretty),
	"canonical":      presetOption(yamlstream.Canonical),

	// Formatting options
	"indent":             intOption("indent", yamlstream.WithIndent),
	"line-width":         intOption("line-width", yamlstream.WithLineWidth),
	"width":              intOption("width", yamlstream.WithLineWidth),
	"unicode":            boolOption(yamlstream.WithUnicode),
	"compact":            boolOption(yamlstream.WithCompact),
	"compact-seq-indent": boolOption(yamlstream.WithCompactSeqIndent),
	"explicit-start":     boolOption(yamlstream.WithExplicitStart),
	"explicit-end":       boolOption(yamlstream.WithExplicitEnd),
	"explicit": {typ: "multi", handler: func(value string) ([]yamlstream.Option, error) {
		val := value == "true"
		return []yamlstream.Option{yamlstream.WithExplicitStart(val), yamlstream.WithExplicitEnd(val)}, nil
	}},
	"line-break": {typ: "string", handler: func(value string) ([]yamlstream.Option, error) {
		lb, err := parseLineBreak(value)
		if err != nil {
			return nil, err
		}
		return []yamlstream.Option{yamlstream.WithLineBreak(lb)}, nil
	}},
	"quote": {typ: "string", handler: func(value string) ([]yamlstream.Option, error) {
		switch value {
		case "single":
			return []yamlstream.Option{yamlstream.WithQuotePreference(yamlstream.QuoteSingle)}, nil
		case "double":
			return []yamlstream.Option{yamlstream.WithQuotePreference(yamlstream.QuoteDouble)}, nil
		}
		return nil, fmt.Errorf("quote must be single or double")
	}},

	// Reading options
	"schema": {typ: "string", handler: func(value string) ([]yamlstream.Option, error) {
		return []yamlstream.Option{yamlstream.WithSchemaName(value)}, nil
	}},
	"max-depth":  intOption("max-depth", yamlstream.WithMaxDepth),
	"max-length": intOption("max-length", yamlstream.WithMaxLength),
	"merge-keys": boolOption(yamlstream.WithMergeKeys),
	"merge":      boolOption(yamlstream.WithMergeKeys),
}

func parseLineBreak(value string) (yamlstream.LineBreak, error) {
	switch value {
	case "ln":
		return yamlstream.LineBreakLN, nil
	case "cr":
		return yamlstream.LineBreakCR, nil
	case "crln":
		return yamlstream.LineBreakCRLN, nil
	}
	return 0, fmt.Errorf("line-break must be ln, cr, or crln")
}

// parseOneOption parses a single option (name=value, name, no-name or a
// preset)
func parseOneOption(s string) ([]yamlstream.Option, error) {
	if s == "help" || s == "?" {
		return nil, errShowOptions
	}

	// Check for "no-" prefix for boolean false
	if name, ok := strings.CutPrefix(s, "no-"); ok {
		spec, ok := optionRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown option: %s", name)
		}
		if spec.typ != "bool" && spec.typ != "multi" {
			return nil, fmt.Errorf("option %s is not boolean, cannot use no- prefix", name)
		}
		return spec.handler("false")
	}

	if name, value, found := strings.Cut(s, "="); found {
		spec, ok := optionRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown option: %s", name)
		}
		if spec.typ == "preset" {
			return nil, fmt.Errorf("preset %s takes no value", name)
		}
		if (spec.typ == "bool" || spec.typ == "multi") && value != "true" && value != "false" {
			return nil, fmt.Errorf("option %s requires true or false value", name)
		}
		return spec.handler(value)
	}

	// Must be "name" alone (boolean true)
	spec, ok := optionRegistry[s]
	if !ok {
		return nil, fmt.Errorf("unknown option: %s", s)
	}
	if spec.typ != "bool" && spec.typ != "multi" && spec.typ != "preset" {
		return nil, fmt.Errorf("option %s requires a value (use %s=value)", s, s)
	}
	return spec.handler("true")
}

// parseOptionFlags parses comma-separated options string into individual options
func parseOptionFlags(s string) ([]yamlstream.Option, error) {
	var opts []yamlstream.Option
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		opt, err := parseOneOption(trimmed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt...)
	}
	return opts, nil
}

// buildOptions layers the config file and then the -o flags. Values are
// checked here so that a bad option is reported before any input is read.
func buildOptions(configFile string, optionFlags []string) ([]yamlstream.Option, error) {
	var opts []yamlstream.Option

	if configFile != "" {
		configData, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		configOpts, err := yamlstream.OptsYAML(string(configData))
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		opts = append(opts, configOpts)
	}

	for _, optStr := range optionFlags {
		parsedOpts, err := parseOptionFlags(optStr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parsedOpts...)
	}

	if _, err := yamlstream.ApplyOptions(opts...); err != nil {
		return nil, err
	}
	return opts, nil
}

// printAvailableOptions prints the list of available options for -o flag
func printAvailableOptions(w io.Writer) {
	fmt.Fprint(w, `Available options for -o/--option:

Presets:
  compact-preset        Flow collections on one line
  pretty                Four space indent, '---' and single quotes
  canonical             Canonical YAML output format

Formatting options:
  indent=NUM            Indentation spaces (2-9)
  line-width=NUM        Preferred line width, -1=unlimited (short: width)
  unicode               Allow non-ASCII in output
  compact               Flow style for every collection
  compact-seq-indent    '- ' counts as indentation
  explicit-start        Always emit '---' marker
  explicit-end          Always emit '...' marker
  explicit              Both explicit-start and explicit-end
  line-break=TYPE       Line ending: ln, cr, or crln
  quote=STYLE           Quote style when quoting is needed: single or double

Reading options:
  schema=NAME           failsafe, json, core or yaml1.1, with an optional -strict
  max-depth=NUM         Nesting limit for anchored nodes, -1=unlimited
  max-length=NUM        Event limit for anchored nodes, -1=unlimited
  merge-keys            Expand '<<' merge keys (short: merge)

Boolean options: use 'name' for true, 'no-name' for false
Multiple options: comma-separated or repeat -o flag

Examples:
  yamlstream -y -o indent=4,explicit
  yamlstream -y -o pretty,width=120
  yamlstream -r -o schema=yaml1.1,merge
`)
}
