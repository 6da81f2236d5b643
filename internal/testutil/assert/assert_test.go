// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package assert

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"testing"
)

type fakeTB struct {
	failed bool
	msg    string
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Fatalf(format string, args ...any) {
	f.failed = true
	f.msg = fmt.Sprintf(format, args...)
}

func TestPassingAssertions(t *testing.T) {
	Equal(t, 2, 2)
	Equalf(t, "ok", "ok", "case %d", 1)
	DeepEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	DeepEqual(t, map[string]int{"a": 1}, map[string]int{"a": 1})
	Contains(t, "+STR\n+DOC\n", "+DOC")
	ErrorMatches(t, `line \d+`, errors.New("yaml: line 3: bad"))
	ErrorIs(t, fmt.Errorf("wrap: %w", io.EOF), io.EOF)
	NoError(t, nil)
	True(t, true)
	False(t, false)
	PanicMatches(t, `boom \d+`, func() { panic("boom 123") })
	PanicMatches(t, `fail xyz`, func() { panic(fmt.Errorf("fail xyz")) })

	var pathErr *fs.PathError
	ErrorAs(t, fmt.Errorf("wrap: %w", &fs.PathError{Op: "open", Err: io.EOF}), &pathErr)

	var p *int
	IsNil(t, p)
	var w io.Writer
	IsNil(t, w)
	NotNil(t, make([]int, 0))
}

func TestFailingAssertions(t *testing.T) {
	tests := []struct {
		name string
		run  func(tb miniTB)
		want string
	}{
		{"Equal", func(tb miniTB) { Equal(tb, 2, 1) }, `^got 1; want 2$`},
		{"Equalf", func(tb miniTB) { Equalf(tb, 2, 1, "at %s", "x") }, `^got 1; want 2 - at x$`},
		{"DeepEqual", func(tb miniTB) { DeepEqual(tb, []int{2}, []int{1}) }, `^got \[1\]; want \[2\]$`},
		{"Contains", func(tb miniTB) { Contains(tb, "abc", "z") }, `^"abc" does not contain "z"$`},
		{"ErrorMatches nil", func(tb miniTB) { ErrorMatches(tb, `x`, nil) }, `^got nil; want error matching "x"$`},
		{"ErrorMatches regexp", func(tb miniTB) { ErrorMatches(tb, `(`, errors.New("x")) }, `^invalid regexp "\("`},
		{"ErrorMatches text", func(tb miniTB) { ErrorMatches(tb, `^y$`, errors.New("x")) }, `^error "x" does not match "\^y\$"$`},
		{"ErrorIs", func(tb miniTB) { ErrorIs(tb, io.EOF, io.ErrUnexpectedEOF) }, `^got `},
		{"NoError", func(tb miniTB) { NoError(tb, errors.New("boom")) }, `^unexpected error: boom$`},
		{"IsNil", func(tb miniTB) { IsNil(tb, 1) }, `^got non-nil \(type int\): 1$`},
		{"NotNil", func(tb miniTB) { NotNil(tb, nil) }, `^got nil; want non-nil$`},
		{"True", func(tb miniTB) { True(tb, false) }, `^got false; want true$`},
		{"False", func(tb miniTB) { False(tb, true) }, `^got true; want false$`},
		{"PanicMatches none", func(tb miniTB) { PanicMatches(tb, `x`, func() {}) }, `^function did not panic`},
		{"PanicMatches text", func(tb miniTB) { PanicMatches(tb, `x`, func() { panic("y") }) }, `^panic "y" does not match "x"$`},
		{"ErrorAs", func(tb miniTB) {
			var pathErr *fs.PathError
			ErrorAs(tb, io.EOF, &pathErr)
		}, `want \*fs.PathError$`},
		{"ErrorAs bad target", func(tb miniTB) { ErrorAs(tb, io.EOF, nil) }, `^panic: `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &fakeTB{}
			tt.run(mock)
			if !mock.failed {
				t.Fatalf("expected failure")
			}
			if !regexp.MustCompile(tt.want).MatchString(mock.msg) {
				t.Fatalf("message does not match:\ngot: `%s`\nregexp: `%s`", mock.msg, tt.want)
			}
		})
	}
}

func TestFormatSuffix(t *testing.T) {
	Equal(t, "", formatSuffix(""))
	Equal(t, " - plain", formatSuffix("plain"))
	Equal(t, " - n=3", formatSuffix("n=%d", 3))
}

func TestIsNil(t *testing.T) {
	var m map[string]int
	True(t, isNil(nil))
	True(t, isNil(m))
	False(t, isNil(0))
	False(t, isNil(""))
	False(t, isNil(make([]int, 0)))
}
