// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package datatest

import "fmt"

// ByteInput is test input given either as a string or as a sequence of
// byte values, for inputs that are not valid UTF-8.
type ByteInput []byte

// FromValue implements the converter interface used by UnmarshalStruct.
func (bi *ByteInput) FromValue(v any) error {
	switch val := v.(type) {
	case string:
		*bi = []byte(val)
		return nil
	case []any:
		out := make([]byte, len(val))
		for i, item := range val {
			n, ok := item.(int)
			if !ok || n < 0 || n > 255 {
				return fmt.Errorf("byte %d: want an int in [0, 255], got %v", i, item)
			}
			out[i] = byte(n)
		}
		*bi = out
		return nil
	}
	return fmt.Errorf("input must be a string or a sequence of bytes, got %T", v)
}

// StringSlice is given either as one string or as a sequence of strings.
type StringSlice []string

// FromValue implements the converter interface used by UnmarshalStruct.
func (ss *StringSlice) FromValue(v any) error {
	switch val := v.(type) {
	case string:
		*ss = []string{val}
		return nil
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("element %d must be a string, got %T", i, item)
			}
			out[i] = s
		}
		*ss = out
		return nil
	}
	return fmt.Errorf("want a string or a sequence of strings, got %T", v)
}
