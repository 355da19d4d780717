// Package require has checks github.com/alecthomas/assert doesn't.
// Like assert, a failed check stops the test.
package require

import (
	"errors"
)

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
}

// ErrorIs asserts that errors.Is(err, target) is true.
//
//	require.ErrorIs(t, err, store.ErrFormat)
func ErrorIs(t TestingT, err error, target error) {
	if errors.Is(err, target) {
		return
	}
	t.Errorf("expected error matching '%v', got '%v'", target, err)
	t.FailNow()
}
