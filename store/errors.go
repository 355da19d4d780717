package store

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKey is returned by Add for a value with an empty key
	ErrEmptyKey = errors.New("store: empty key")

	// ErrOutOfRange matches *OutOfRangeError with errors.Is
	ErrOutOfRange = errors.New("store: index out of range")
	// ErrIO matches *IOError with errors.Is
	ErrIO = errors.New("store: i/o failure")
	// ErrFormat matches *FormatError with errors.Is
	ErrFormat = errors.New("store: format mismatch")

	errIsDir = errors.New("is a directory")
)

// OutOfRangeError is returned by At for an index outside [0, Len)
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("store: index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// IOError is a failure to stat, read or write the backing file
type IOError struct {
	// "stat", "read" or "write"
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("store: %s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// FormatError means content of the backing file could not be decoded
// into records, or records could not be encoded
type FormatError struct {
	Path string
	// index of the bad record, -1 if the problem is not with a single record
	Index int
	Err   error
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("store: %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("store: %s: record %d: %s", e.Path, e.Index, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
