// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Built-in schemas and their scalar converters.

package libyaml

import (
	"encoding/base64"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// FailsafeSchema resolves every plain scalar to !!str.
func FailsafeSchema() *Schema {
	return NewSchema("failsafe", STR_TAG)
}

// JSONSchema is the YAML 1.2 JSON schema: lowercase null and booleans and
// decimal numbers only. A strict JSON schema leaves other plain scalars
// unresolved.
func JSONSchema(strict bool) *Schema {
	s := NewSchema("json", fallbackTag(strict))
	s.Register(NULL_TAG, `null`, parseNull)
	s.Register(BOOL_TAG, `true`, parseTrue)
	s.Register(BOOL_TAG, `false`, parseFalse)
	s.Register(INT_TAG, `-?(?:0|[1-9][0-9]*)`, parseDecimalInt)
	s.Register(FLOAT_TAG, `-?(?:0|[1-9][0-9]*)(?:\.[0-9]*)?(?:[eE][-+]?[0-9]+)?`, parseFloat)
	return s
}

// CoreSchema is the YAML 1.2 core schema. It extends the JSON schema with
// other spellings of null and the booleans, octal and hexadecimal integers
// and the special float values.
func CoreSchema(strict bool) *Schema {
	s := NewSchema("core", fallbackTag(strict))
	s.Register(NULL_TAG, `null|Null|NULL|~|`, parseNull)
	s.Register(BOOL_TAG, `true|True|TRUE`, parseTrue)
	s.Register(BOOL_TAG, `false|False|FALSE`, parseFalse)
	s.Register(INT_TAG, `[-+]?[0-9]+`, parseDecimalInt)
	s.Register(INT_TAG, `0o[0-7]+`, parseCoreOctal)
	s.Register(INT_TAG, `0x[0-9a-fA-F]+`, parseHexInt)
	s.Register(FLOAT_TAG, `[-+]?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)(?:[eE][-+]?[0-9]+)?`, parseFloat)
	s.Register(FLOAT_TAG, `[-+]?\.(?:inf|Inf|INF)`, parseInf)
	s.Register(FLOAT_TAG, `\.(?:nan|NaN|NAN)`, parseNaN)
	s.RegisterSpecific(BINARY_TAG, parseBinary)
	s.RegisterSpecific(TIMESTAMP_TAG, parseTimestamp)
	return s
}

// YAML11Schema follows the YAML 1.1 type repository: the yes/no/on/off
// booleans, binary, legacy octal and sexagesimal integers, '_' digit
// separators, timestamps and the "<<" merge key.
func YAML11Schema(strict bool) *Schema {
	s := NewSchema("yaml1.1", fallbackTag(strict))
	s.Register(NULL_TAG, `~|null|Null|NULL|`, parseNull)
	s.Register(BOOL_TAG, `y|Y|yes|Yes|YES|true|True|TRUE|on|On|ON`, parseTrue)
	s.Register(BOOL_TAG, `n|N|no|No|NO|false|False|FALSE|off|Off|OFF`, parseFalse)
	s.Register(INT_TAG, `[-+]?0b[01_]+`, parseLegacyInt)
	s.Register(INT_TAG, `[-+]?0[0-7_]+`, parseLegacyInt)
	s.Register(INT_TAG, `[-+]?(?:0|[1-9][0-9_]*)`, parseLegacyInt)
	s.Register(INT_TAG, `[-+]?0x[0-9a-fA-F_]+`, parseLegacyInt)
	s.Register(INT_TAG, `[-+]?[1-9][0-9_]*(?::[0-5]?[0-9])+`, parseSexagesimalInt)
	s.Register(FLOAT_TAG, `[-+]?(?:[0-9][0-9_]*\.[0-9_]*|\.[0-9][0-9_]*)(?:[eE][-+]?[0-9]+)?`, parseLegacyFloat)
	s.Register(FLOAT_TAG, `[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+\.[0-9_]*`, parseSexagesimalFloat)
	s.Register(FLOAT_TAG, `[-+]?\.(?:inf|Inf|INF)`, parseInf)
	s.Register(FLOAT_TAG, `\.(?:nan|NaN|NAN)`, parseNaN)
	s.Register(TIMESTAMP_TAG, `[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}`, parseTimestamp)
	s.Register(TIMESTAMP_TAG, `[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}[Tt][0-9]{1,2}:[0-9]{1,2}:[0-9]{1,2}(?:\.[0-9]+)?(?:Z|[-+][0-9]{2}:[0-9]{2})`, parseTimestamp)
	s.Register(TIMESTAMP_TAG, `[0-9]{4}-[0-9]{1,2}-[0-9]{1,2} [0-9]{1,2}:[0-9]{1,2}:[0-9]{1,2}(?:\.[0-9]+)?`, parseTimestamp)
	s.Register(MERGE_TAG, `<<`, parseStr)
	s.RegisterSpecific(BINARY_TAG, parseBinary)
	return s
}

func fallbackTag(strict bool) TagName {
	if strict {
		return ""
	}
	return STR_TAG
}

func parseStr(text string) (any, error) { return text, nil }

func parseNull(string) (any, error) { return nil, nil }

func parseTrue(string) (any, error) { return true, nil }

func parseFalse(string) (any, error) { return false, nil }

func parseDecimalInt(text string) (any, error) {
	return parseInteger(text, 10)
}

func parseCoreOctal(text string) (any, error) {
	return parseInteger(text[2:], 8)
}

func parseHexInt(text string) (any, error) {
	return parseInteger(text[2:], 16)
}

// parseLegacyInt handles the YAML 1.1 integer forms, with '_' separators
// and a "0b", "0x" or bare "0" base prefix after the sign.
func parseLegacyInt(text string) (any, error) {
	sign, digits := splitSign(strings.ReplaceAll(text, "_", ""))
	base := 10
	switch {
	case strings.HasPrefix(digits, "0b"):
		base, digits = 2, digits[2:]
	case strings.HasPrefix(digits, "0x"):
		base, digits = 16, digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base, digits = 8, digits[1:]
	}
	return parseInteger(sign+digits, base)
}

// parseSexagesimalInt handles base 60 integers such as "1:30" (90).
func parseSexagesimalInt(text string) (any, error) {
	sign, digits := splitSign(strings.ReplaceAll(text, "_", ""))
	var total uint64
	for _, part := range strings.Split(digits, ":") {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, integerError(err)
		}
		if total > (math.MaxUint64-n)/60 {
			return nil, ErrIntegerOverflow
		}
		total = total*60 + n
	}
	return signed(sign == "-", total)
}

func parseSexagesimalFloat(text string) (any, error) {
	sign, digits := splitSign(strings.ReplaceAll(text, "_", ""))
	parts := strings.Split(digits, ":")
	var total float64
	for _, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		total = total*60 + n
	}
	if sign == "-" {
		total = -total
	}
	return total, nil
}

// parseInteger parses an optionally signed number in base. Values that fit
// an int64 are returned as int64, larger positive values as uint64.
func parseInteger(text string, base int) (any, error) {
	sign, digits := splitSign(text)
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, integerError(err)
	}
	return signed(sign == "-", u)
}

func signed(negative bool, u uint64) (any, error) {
	if negative {
		if u > 1<<63 {
			return nil, ErrIntegerOverflow
		}
		return -int64(u), nil
	}
	if u <= math.MaxInt64 {
		return int64(u), nil
	}
	return u, nil
}

func integerError(err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return ErrIntegerOverflow
	}
	return err
}

func splitSign(text string) (string, string) {
	if text != "" && (text[0] == '-' || text[0] == '+') {
		return text[:1], text[1:]
	}
	return "", text
}

func parseFloat(text string) (any, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, err
	}
	return f, nil
}

func parseLegacyFloat(text string) (any, error) {
	return parseFloat(strings.ReplaceAll(text, "_", ""))
}

func parseInf(text string) (any, error) {
	if text[0] == '-' {
		return math.Inf(-1), nil
	}
	return math.Inf(1), nil
}

func parseNaN(string) (any, error) { return math.NaN(), nil }

func parseBinary(text string) (any, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, text)
	return base64.StdEncoding.DecodeString(clean)
}

var timestampFormats = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

func parseTimestamp(text string) (any, error) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, text); err == nil {
			return t, nil
		}
	}
	return nil, ErrNoMatch
}
