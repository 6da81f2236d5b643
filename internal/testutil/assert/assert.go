// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package assert holds the small set of assertions used by the tests of
// this module. Every assertion stops the test on failure.
package assert

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

type miniTB interface {
	Helper()
	Fatalf(string, ...any)
}

// formatSuffix renders the optional message of the f variants.
func formatSuffix(msgFormat string, args ...any) string {
	if msgFormat == "" {
		return ""
	}
	return " - " + fmt.Sprintf(msgFormat, args...)
}

// Equal asserts that got == want. Use [DeepEqual] for slices, maps and
// structs holding them.
func Equal(tb miniTB, want, got any) {
	tb.Helper()
	Equalf(tb, want, got, "")
}

// Equalf is Equal with a failure message.
func Equalf(tb miniTB, want, got any, msgFormat string, args ...any) {
	tb.Helper()
	if got != want {
		tb.Fatalf("got %v; want %v%s", got, want, formatSuffix(msgFormat, args...))
	}
}

// DeepEqual asserts that got and want are equal under reflect.DeepEqual.
func DeepEqual(tb miniTB, want, got any) {
	tb.Helper()
	DeepEqualf(tb, want, got, "")
}

// DeepEqualf is DeepEqual with a failure message.
func DeepEqualf(tb miniTB, want, got any, msgFormat string, args ...any) {
	tb.Helper()
	if !reflect.DeepEqual(got, want) {
		tb.Fatalf("got %+v; want %+v%s", got, want, formatSuffix(msgFormat, args...))
	}
}

// Contains asserts that s contains substr.
func Contains(tb miniTB, s, substr string) {
	tb.Helper()
	Containsf(tb, s, substr, "")
}

// Containsf is Contains with a failure message.
func Containsf(tb miniTB, s, substr string, msgFormat string, args ...any) {
	tb.Helper()
	if !strings.Contains(s, substr) {
		tb.Fatalf("%q does not contain %q%s", s, substr, formatSuffix(msgFormat, args...))
	}
}

// ErrorMatches asserts that err is not nil and its text matches pattern.
func ErrorMatches(tb miniTB, pattern string, err error) {
	tb.Helper()
	ErrorMatchesf(tb, pattern, err, "")
}

// ErrorMatchesf is ErrorMatches with a failure message.
func ErrorMatchesf(tb miniTB, pattern string, err error, msgFormat string, args ...any) {
	tb.Helper()
	suffix := formatSuffix(msgFormat, args...)
	if err == nil {
		tb.Fatalf("got nil; want error matching %q%s", pattern, suffix)
		return
	}
	matchText(tb, "error", err.Error(), pattern, suffix)
}

// ErrorIs asserts errors.Is(got, want).
func ErrorIs(tb miniTB, got, want error) {
	tb.Helper()
	if !errors.Is(got, want) {
		tb.Fatalf("got %#v; want %#v", got, want)
	}
}

// ErrorAs asserts errors.As(err, target). target must be a non-nil pointer.
func ErrorAs(tb miniTB, err error, target any) {
	tb.Helper()
	ok, panicErr := errorAsNoPanic(err, target)
	if panicErr != nil {
		tb.Fatalf("%s", panicErr)
		return
	}
	if !ok {
		tb.Fatalf("got %#v; want %s", err, reflect.TypeOf(target).Elem())
	}
}

// errorAsNoPanic reports the panic of a misused errors.As as an error.
func errorAsNoPanic(err error, target any) (ok bool, panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			panicErr = fmt.Errorf("panic: %v", r)
		}
	}()
	return errors.As(err, target), nil
}

// NoError asserts that err is nil.
func NoError(tb miniTB, err error) {
	tb.Helper()
	NoErrorf(tb, err, "")
}

// NoErrorf is NoError with a failure message.
func NoErrorf(tb miniTB, err error, msgFormat string, args ...any) {
	tb.Helper()
	if err != nil {
		tb.Fatalf("unexpected error: %v%s", err, formatSuffix(msgFormat, args...))
	}
}

// IsNil asserts that v is nil, including typed nil pointers, maps and
// slices.
func IsNil(tb miniTB, v any) {
	tb.Helper()
	IsNilf(tb, v, "")
}

// IsNilf is IsNil with a failure message.
func IsNilf(tb miniTB, v any, msgFormat string, args ...any) {
	tb.Helper()
	if !isNil(v) {
		tb.Fatalf("got non-nil (type %T): %#v%s", v, v, formatSuffix(msgFormat, args...))
	}
}

// NotNil asserts that v is not nil.
func NotNil(tb miniTB, v any) {
	tb.Helper()
	NotNilf(tb, v, "")
}

// NotNilf is NotNil with a failure message.
func NotNilf(tb miniTB, v any, msgFormat string, args ...any) {
	tb.Helper()
	if isNil(v) {
		tb.Fatalf("got nil; want non-nil%s", formatSuffix(msgFormat, args...))
	}
}

// True asserts that got is true.
func True(tb miniTB, got bool) {
	tb.Helper()
	Truef(tb, got, "")
}

// Truef is True with a failure message.
func Truef(tb miniTB, got bool, msgFormat string, args ...any) {
	tb.Helper()
	if !got {
		tb.Fatalf("got false; want true%s", formatSuffix(msgFormat, args...))
	}
}

// False asserts that got is false.
func False(tb miniTB, got bool) {
	tb.Helper()
	Falsef(tb, got, "")
}

// Falsef is False with a failure message.
func Falsef(tb miniTB, got bool, msgFormat string, args ...any) {
	tb.Helper()
	if got {
		tb.Fatalf("got true; want false%s", formatSuffix(msgFormat, args...))
	}
}

// PanicMatches asserts that f panics with a value whose text matches
// pattern.
func PanicMatches(tb miniTB, pattern string, f func()) {
	tb.Helper()
	PanicMatchesf(tb, pattern, f, "")
}

// PanicMatchesf is PanicMatches with a failure message.
func PanicMatchesf(tb miniTB, pattern string, f func(), msgFormat string, args ...any) {
	tb.Helper()
	suffix := formatSuffix(msgFormat, args...)
	var pan any
	func() {
		defer func() { pan = recover() }()
		f()
	}()
	if pan == nil {
		tb.Fatalf("function did not panic; want panic matching %q%s", pattern, suffix)
		return
	}
	var msg string
	switch x := pan.(type) {
	case error:
		msg = x.Error()
	case string:
		msg = x
	default:
		msg = fmt.Sprint(x)
	}
	matchText(tb, "panic", msg, pattern, suffix)
}

func matchText(tb miniTB, what, text, pattern, suffix string) {
	tb.Helper()
	re, err := regexp.Compile(pattern)
	if err != nil {
		tb.Fatalf("invalid regexp %q: %v%s", pattern, err, suffix)
		return
	}
	if !re.MatchString(text) {
		tb.Fatalf("%s %q does not match %q%s", what, text, pattern, suffix)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
