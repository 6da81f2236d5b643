// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Functional options for the parser, buffers, resolver and emitter.

package libyaml

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Option configures an Options value.
type Option func(*Options) error

// Options holds the settings shared by the streaming components.
type Options struct {
	// Emitter settings.
	Indent             int
	LineWidth          int
	Unicode            bool
	Canonical          bool
	LineBreak          LineBreak
	ExplicitStart      bool
	ExplicitEnd        bool
	Compact            bool
	CompactSeqIndent   bool
	QuotePreference    QuoteStyle
	MaxSimpleKeyLength int

	// Schema used by the resolver and by the emitter's quoting decisions.
	Schema *Schema

	// Buffer limits; -1 means unlimited.
	MaxDepth  int
	MaxLength int

	// MergeKeys expands "<<" keys while reading.
	MergeKeys bool

	// Logger receives debug traces. A nil Logger disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the settings used when no option is given.
func DefaultOptions() *Options {
	return &Options{
		Indent:             2,
		LineWidth:          80,
		Unicode:            true,
		LineBreak:          LN_BREAK,
		QuotePreference:    QuoteDouble,
		MaxSimpleKeyLength: default_max_simple_key_length,
		Schema:             CoreSchema(false),
		MaxDepth:           -1,
		MaxLength:          -1,
	}
}

// ApplyOptions applies opts over the defaults.
func ApplyOptions(opts ...Option) (*Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// CombineOptions returns an Option applying opts in order.
func CombineOptions(opts ...Option) Option {
	return func(o *Options) error {
		for _, opt := range opts {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// boolArg implements the optional-argument convention: no argument means
// true, one argument is used as is.
func boolArg(name string, args []bool) (bool, error) {
	switch len(args) {
	case 0:
		return true, nil
	case 1:
		return args[0], nil
	}
	return false, fmt.Errorf("yaml: %s accepts at most one argument", name)
}

// WithIndent sets the number of spaces used for each indentation level.
func WithIndent(indent int) Option {
	return func(o *Options) error {
		if indent < 2 || indent > 9 {
			return fmt.Errorf("yaml: indent must be between 2 and 9, got %d", indent)
		}
		o.Indent = indent
		return nil
	}
}

// WithLineWidth sets the preferred line width. A negative width means no
// wrapping.
func WithLineWidth(width int) Option {
	return func(o *Options) error {
		if width < 0 {
			width = -1
		}
		o.LineWidth = width
		return nil
	}
}

// WithUnicode controls whether non-ASCII characters are written unescaped.
func WithUnicode(unicode ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithUnicode", unicode)
		if err != nil {
			return err
		}
		o.Unicode = v
		return nil
	}
}

// WithCanonical forces the canonical output form: explicit tags, flow
// collections and double-quoted scalars.
func WithCanonical(canonical ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithCanonical", canonical)
		if err != nil {
			return err
		}
		o.Canonical = v
		return nil
	}
}

// WithLineBreak sets the line ending style.
func WithLineBreak(lineBreak LineBreak) Option {
	return func(o *Options) error {
		switch lineBreak {
		case ANY_BREAK, LN_BREAK, CR_BREAK, CRLN_BREAK:
		default:
			return fmt.Errorf("yaml: unknown line break %d", lineBreak)
		}
		o.LineBreak = lineBreak
		return nil
	}
}

// WithExplicitStart writes "---" before every document.
func WithExplicitStart(explicit ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithExplicitStart", explicit)
		if err != nil {
			return err
		}
		o.ExplicitStart = v
		return nil
	}
}

// WithExplicitEnd writes "..." after every document.
func WithExplicitEnd(explicit ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithExplicitEnd", explicit)
		if err != nil {
			return err
		}
		o.ExplicitEnd = v
		return nil
	}
}

// WithCompact renders every collection in flow style.
func WithCompact(compact ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithCompact", compact)
		if err != nil {
			return err
		}
		o.Compact = v
		return nil
	}
}

// WithCompactSeqIndent makes '- ' count as part of the indentation of a
// sequence nested in a mapping.
func WithCompactSeqIndent(compact ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithCompactSeqIndent", compact)
		if err != nil {
			return err
		}
		o.CompactSeqIndent = v
		return nil
	}
}

// WithQuotePreference selects the quote style used when a scalar must be
// quoted.
func WithQuotePreference(style QuoteStyle) Option {
	return func(o *Options) error {
		switch style {
		case QuoteDouble, QuoteSingle:
		default:
			return fmt.Errorf("yaml: invalid QuoteStyle value: %d", style)
		}
		o.QuotePreference = style
		return nil
	}
}

// WithMaxSimpleKeyLength sets how long a key may be before the emitter
// writes it in the explicit "? key" form.
func WithMaxSimpleKeyLength(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("yaml: max simple key length must be positive, got %d", n)
		}
		o.MaxSimpleKeyLength = n
		return nil
	}
}

// WithSchema sets the schema used for tag resolution and quoting.
func WithSchema(schema *Schema) Option {
	return func(o *Options) error {
		if schema == nil {
			return errors.New("yaml: schema must not be nil")
		}
		o.Schema = schema
		return nil
	}
}

// WithSchemaName selects a built-in schema by name, see SchemaByName.
func WithSchemaName(name string) Option {
	return func(o *Options) error {
		schema, err := SchemaByName(name)
		if err != nil {
			return err
		}
		o.Schema = schema
		return nil
	}
}

// WithMaxDepth limits the nesting depth of buffered nodes.
func WithMaxDepth(depth int) Option {
	return func(o *Options) error {
		if depth < -1 || depth == 0 {
			return fmt.Errorf("yaml: max depth must be positive or -1, got %d", depth)
		}
		o.MaxDepth = depth
		return nil
	}
}

// WithMaxLength limits the number of events in a buffered node.
func WithMaxLength(length int) Option {
	return func(o *Options) error {
		if length < -1 || length == 0 {
			return fmt.Errorf("yaml: max length must be positive or -1, got %d", length)
		}
		o.MaxLength = length
		return nil
	}
}

// WithMergeKeys enables "<<" merge key expansion.
func WithMergeKeys(merge ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithMergeKeys", merge)
		if err != nil {
			return err
		}
		o.MergeKeys = v
		return nil
	}
}

// WithLogger sets the logger for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) error {
		o.Logger = logger
		return nil
	}
}

// ParseLineBreak maps "ln", "cr" and "crln" to a LineBreak.
func ParseLineBreak(s string) (LineBreak, error) {
	switch strings.ToLower(s) {
	case "ln", "lf", "\n":
		return LN_BREAK, nil
	case "cr", "\r":
		return CR_BREAK, nil
	case "crln", "crlf", "\r\n":
		return CRLN_BREAK, nil
	}
	return ANY_BREAK, fmt.Errorf("yaml: unknown line break %q", s)
}

// ParseQuoteStyle maps "double" and "single" to a QuoteStyle.
func ParseQuoteStyle(s string) (QuoteStyle, error) {
	switch strings.ToLower(s) {
	case "double", `"`:
		return QuoteDouble, nil
	case "single", "'":
		return QuoteSingle, nil
	}
	return QuoteDouble, fmt.Errorf("yaml: unknown quote style %q", s)
}

// OptsYAML reads option settings from a YAML mapping, for example
//
//	indent: 4
//	line-width: -1
//	quote: single
//	schema: core-strict
//
// Only the keys present in the document produce options, so the result can
// be layered over a preset with CombineOptions.
func OptsYAML(yamlStr string) (Option, error) {
	value, err := LoadYAML([]byte(yamlStr))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return CombineOptions(), nil
	}
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("yaml: options must be a mapping, got %T", value)
	}

	var opts []Option
	for key, v := range fields {
		opt, err := optionFromField(key, v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	// Map iteration order is random; the options set disjoint fields.
	return CombineOptions(opts...), nil
}

func optionFromField(key string, v any) (Option, error) {
	asBool := func() (bool, error) {
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("yaml: option %s must be a bool, got %T", key, v)
		}
		return b, nil
	}
	asInt := func() (int, error) {
		switch n := v.(type) {
		case int64:
			return int(n), nil
		case uint64:
			return int(n), nil
		}
		return 0, fmt.Errorf("yaml: option %s must be an int, got %T", key, v)
	}
	asString := func() (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("yaml: option %s must be a string, got %T", key, v)
		}
		return s, nil
	}

	switch key {
	case "indent", "line-width", "max-depth", "max-length", "max-simple-key-length":
		n, err := asInt()
		if err != nil {
			return nil, err
		}
		switch key {
		case "indent":
			return WithIndent(n), nil
		case "line-width":
			return WithLineWidth(n), nil
		case "max-depth":
			return WithMaxDepth(n), nil
		case "max-length":
			return WithMaxLength(n), nil
		default:
			return WithMaxSimpleKeyLength(n), nil
		}
	case "unicode", "canonical", "explicit-start", "explicit-end", "compact",
		"compact-seq-indent", "merge-keys":
		b, err := asBool()
		if err != nil {
			return nil, err
		}
		switch key {
		case "unicode":
			return WithUnicode(b), nil
		case "canonical":
			return WithCanonical(b), nil
		case "explicit-start":
			return WithExplicitStart(b), nil
		case "explicit-end":
			return WithExplicitEnd(b), nil
		case "compact":
			return WithCompact(b), nil
		case "compact-seq-indent":
			return WithCompactSeqIndent(b), nil
		default:
			return WithMergeKeys(b), nil
		}
	case "line-break":
		s, err := asString()
		if err != nil {
			return nil, err
		}
		lb, err := ParseLineBreak(s)
		if err != nil {
			return nil, err
		}
		return WithLineBreak(lb), nil
	case "quote":
		s, err := asString()
		if err != nil {
			return nil, err
		}
		qs, err := ParseQuoteStyle(s)
		if err != nil {
			return nil, err
		}
		return WithQuotePreference(qs), nil
	case "schema":
		s, err := asString()
		if err != nil {
			return nil, err
		}
		return WithSchemaName(s), nil
	}
	return nil, fmt.Errorf("yaml: unknown option %q", key)
}
