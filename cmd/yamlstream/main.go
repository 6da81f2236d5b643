// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This binary shows how the yamlstream pipeline sees a YAML document. It
// reads YAML from stdin or a file and prints its tokens, events, composed
// nodes, JSON or re-emitted YAML.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.yaml.in/yamlstream"
)

// version is the current version of the yamlstream CLI tool.
const version = "0.1.0"

// stringSlice is a custom flag type for collecting multiple -o flags
type stringSlice []string

// String returns the string representation of the slice for [flag.Value] interface.
func (s *stringSlice) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprint(*s)
}

// Set appends a value to the slice for [flag.Value] interface.
func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// mode is one output mode of the tool.
type mode struct {
	short, long string
	usage       string
	set         bool
}

var modes = []*mode{
	{short: "t", long: "token", usage: "Token output"},
	{short: "T", long: "TOKEN", usage: "Token with line info"},
	{short: "e", long: "event", usage: "Event output"},
	{short: "E", long: "EVENT", usage: "Event with line info"},
	{short: "r", long: "resolved", usage: "Event output after tag resolution"},
	{short: "R", long: "RESOLVED", usage: "Resolved events with line info"},
	{short: "n", long: "node", usage: "Node representation output"},
	{short: "N", long: "NODE", usage: "Node with tag and style for all scalars"},
	{short: "j", long: "json", usage: "JSON compact output"},
	{short: "J", long: "JSON", usage: "JSON pretty output"},
	{short: "y", long: "yaml", usage: "Re-emitted YAML output"},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main with its environment passed in. It returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("yamlstream", flag.ContinueOnError)
	flags.SetOutput(stderr)

	for _, m := range modes {
		m.set = false
		flags.BoolVar(&m.set, m.short, false, m.usage)
		flags.BoolVar(&m.set, m.long, false, m.usage)
	}
	var showHelp, longMode, verbose, jsonEvents bool
	var configFile string
	var optionFlags stringSlice
	flags.BoolVar(&showHelp, "h", false, "Show this help information")
	flags.BoolVar(&showHelp, "help", false, "Show this help information")
	flags.BoolVar(&longMode, "l", false, "Long (block) formatted output")
	flags.BoolVar(&longMode, "long", false, "Long (block) formatted output")
	flags.BoolVar(&verbose, "v", false, "Log pipeline traces to stderr")
	flags.BoolVar(&verbose, "verbose", false, "Log pipeline traces to stderr")
	flags.BoolVar(&jsonEvents, "json-events", false, "Events as JSON lines")
	flags.StringVar(&configFile, "C", "", "Load options from YAML config file")
	flags.StringVar(&configFile, "config", "", "Load options from YAML config file")
	flags.Var(&optionFlags, "o", "Set option (name=value, name, no-name)")
	flags.Var(&optionFlags, "option", "Set option (name=value, name, no-name)")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(stdout)
			return 0
		}
		return 2
	}
	if showHelp {
		printHelp(stdout)
		return 0
	}

	opts, err := buildOptions(configFile, optionFlags)
	if errors.Is(err, errShowOptions) {
		printAvailableOptions(stdout)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printAvailableOptions(stderr)
		return 1
	}
	if verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, yamlstream.WithLogger(slog.New(handler)))
	}

	var selected *mode
	for _, m := range modes {
		if !m.set {
			continue
		}
		if selected != nil {
			fmt.Fprintf(stderr, "Error: -%s and -%s cannot be combined\n", selected.short, m.short)
			return 1
		}
		selected = m
	}
	if selected == nil && !jsonEvents {
		fmt.Fprintf(stderr, "Error: no mode specified. Use -t, -T, -e, -E, -r, -R, -n, -N, -j, -J, -y or --json-events.\n")
		return 1
	}

	rest := flags.Args()
	input := stdin
	switch {
	case len(rest) == 0 || len(rest) == 1 && rest[0] == "-":
	case len(rest) == 1:
		f, err := os.Open(rest[0])
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		input = f
	default:
		fmt.Fprintf(stderr, "Error: only one file argument supported\n")
		return 1
	}

	compact := !longMode
	if jsonEvents {
		err = ProcessJSONEvents(input, stdout, opts...)
	} else {
		switch selected.short {
		case "t", "T":
			err = ProcessTokens(input, stdout, selected.short == "T", compact)
		case "e", "E":
			err = ProcessEvents(input, stdout, selected.short == "E", compact, false, opts...)
		case "r", "R":
			err = ProcessEvents(input, stdout, selected.short == "R", compact, true, opts...)
		case "n", "N":
			err = ProcessNodes(input, stdout, selected.short == "N", opts...)
		case "j", "J":
			err = ProcessJSON(input, stdout, selected.short == "J", opts...)
		case "y":
			err = ProcessYAML(input, stdout, opts...)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// printHelp displays the help information for the program
func printHelp(w io.Writer) {
	fmt.Fprintf(w, `yamlstream version %s

The 'yamlstream' tool shows how the go.yaml.in/yamlstream pipeline handles
YAML: the scanner's tokens, the parser's events, the events after tag
resolution, the composed node graph, and the text the emitter writes back.

It reads YAML input text from stdin or a file and writes results to stdout.

Usage:
  yamlstream [options] [file]

Output Mode Options:
  -t, --token      Token output
  -T, --TOKEN      Token with line info

  -e, --event      Event output
  -E, --EVENT      Event with line info

  -r, --resolved   Event output after tag resolution
  -R, --RESOLVED   Resolved events with line info
  --json-events    Resolved events as JSON lines

  -n, --node       Node representation output
  -N, --NODE       Node with tag and style for all scalars

  -j, --json       JSON compact output
  -J, --JSON       JSON pretty output

  -y, --yaml       Re-emitted YAML output

  -l, --long       Long (block) formatted output

Formatting Options:
  -o, --option OPT Set option (use '-o help' to see all options)
                   Multiple: -o opt1,opt2 or -o opt1 -o opt2
                   Booleans: name (true) or no-name (false)
                   Presets: compact-preset, pretty, canonical

Configuration:
  -C, --config     Load options from YAML config file

Other Options:
  -v, --verbose    Log pipeline traces to stderr
  -h, --help       Show this help information

`, version)
}
