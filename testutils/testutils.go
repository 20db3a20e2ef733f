// Package testutils provides utilities for testing Logo code in Go.
package testutils

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/zephyrtronium/logo"
	"github.com/zephyrtronium/logo/turtle"
)

// NewTestLogger returns a logger that writes to t.Log. Logs only appear on
// test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Session is an interpreter set up for tests, with its console and drawing
// surface exposed.
type Session struct {
	*logo.Interp
	Stream  *logo.BufferStream
	Surface *turtle.Recorder
}

// NewSession creates an interpreter for tests with a fixed random seed, a
// 300 by 300 viewport, and input read from the given text. Further options
// are applied after those.
func NewSession(t testing.TB, input string, opts ...logo.Option) *Session {
	t.Helper()
	s := &Session{
		Stream:  logo.NewBufferStream(strings.NewReader(input)),
		Surface: &turtle.Recorder{},
	}
	base := []logo.Option{
		logo.WithStream(s.Stream),
		logo.WithSurface(s.Surface),
		logo.WithViewport(300, 300),
		logo.WithRandomSeed(1),
		logo.WithLogger(NewTestLogger(t)),
	}
	s.Interp = logo.New(append(base, opts...)...)
	return s
}

// Result is the outcome of running a SourceTestCase.
type Result struct {
	// Value is the value of the program's last expression, if any.
	Value logo.Value
	// Err is the error the program ended with.
	Err error
	// Output is everything the program wrote to its console.
	Output string
}

// A SourceTestCase is a test case containing Logo source code and a
// predicate to check the result.
type SourceTestCase struct {
	// Source is the Logo source code to execute.
	Source string
	// Pass is a predicate taking the result of executing Source. If Pass
	// returns false, then the test fails.
	Pass func(r Result) bool
}

// TestFunc returns a test function for the test case. Each test runs in a
// new Session.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		s := NewSession(t, "")
		v, err := s.Eval(context.Background(), c.Source)
		r := Result{Value: v, Err: err, Output: s.Stream.Readback()}
		if !c.Pass(r) {
			var got string
			if r.Value != nil {
				got = logo.Show(r.Value)
			}
			t.Errorf("%s: %q produced wrong result; got value %q, err %v, output %q", name, c.Source, got, r.Err, r.Output)
		}
	}
}

// PassEqual returns a Pass function that predicates on Logo equality of the
// result with want. The program must not fail.
func PassEqual(want logo.Value) func(Result) bool {
	return func(r Result) bool {
		return r.Err == nil && r.Value != nil && logo.Equal(want, r.Value)
	}
}

// PassShow returns a Pass function that predicates on the result rendering
// as want, as SHOW would render it.
func PassShow(want string) func(Result) bool {
	return func(r Result) bool {
		return r.Err == nil && r.Value != nil && logo.Show(r.Value) == want
	}
}

// PassOutput returns a Pass function that predicates on the console output
// of a program that does not fail.
func PassOutput(want string) func(Result) bool {
	return func(r Result) bool {
		return r.Err == nil && r.Output == want
	}
}

// PassError returns a Pass function that returns true iff the program failed
// with an interpreter error with the given code.
func PassError(code logo.ErrorCode) func(Result) bool {
	return func(r Result) bool {
		var e *logo.Error
		return errors.As(r.Err, &e) && e.Code == code
	}
}

// PassMessage returns a Pass function that returns true iff the program
// failed with an error whose message is exactly want.
func PassMessage(want string) func(Result) bool {
	return func(r Result) bool {
		return r.Err != nil && r.Err.Error() == want
	}
}

// PassSuccess returns a Pass function that returns true iff the program
// finished without an error.
func PassSuccess() func(Result) bool {
	return func(r Result) bool {
		return r.Err == nil
	}
}
