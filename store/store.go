package store

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/kjk/cfgstore/atomicfile"
	"github.com/kjk/cfgstore/log"
	"github.com/kjk/cfgstore/recfile"
)

// Keyed is a value identified by its key
type Keyed interface {
	Key() string
}

// Codec converts values to and from recfile records
type Codec[T Keyed] interface {
	// Name of record blocks in the file
	Name() string
	Marshal(v T, r *recfile.Record) error
	Unmarshal(r *recfile.Record) (T, error)
}

type options struct {
	suppressErrors bool
	logf           func(format string, args ...any)
}

type Option func(*options)

// WithSuppressErrors makes Reload log and swallow read and decode
// errors instead of returning them
func WithSuppressErrors(suppress bool) Option {
	return func(o *options) {
		o.suppressErrors = suppress
	}
}

// WithLogf sets the sink for diagnostic messages. Default is log.Diagf.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(o *options) {
		if logf != nil {
			o.logf = logf
		}
	}
}

// Store is an ordered list of values, unique by key, backed by a
// single file. Every mutation rewrites the whole file and reloads it.
// Not safe for concurrent use.
type Store[T Keyed] struct {
	path           string
	codec          Codec[T]
	suppressErrors bool
	logf           func(format string, args ...any)
	opts           []Option

	items []T
}

// Open creates a store backed by the file at path and loads it if
// it's not empty. A missing file is an empty store; it's created on
// first write. Errors probing the file are always returned, decode
// errors only if suppress errors mode is off.
func Open[T Keyed](path string, codec Codec[T], opts ...Option) (*Store[T], error) {
	o := options{
		logf: log.Diagf,
	}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store[T]{
		path:           path,
		codec:          codec,
		suppressErrors: o.suppressErrors,
		logf:           o.logf,
		opts:           slices.Clone(opts),
	}
	if _, err := s.ReloadIfNeeded(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store[T]) Path() string {
	return s.path
}

// Options returns options the store was opened with, to open another
// file the same way
func (s *Store[T]) Options() []Option {
	return slices.Clip(s.opts)
}

func (s *Store[T]) SuppressErrors() bool {
	return s.suppressErrors
}

func (s *Store[T]) Len() int {
	return len(s.items)
}

// View returns values in insertion order. The slice is shared with
// the store and must not be modified. It doesn't change when the
// store is later modified.
func (s *Store[T]) View() []T {
	return slices.Clip(s.items)
}

func (s *Store[T]) indexOf(key string) int {
	for i, v := range s.items {
		if v.Key() == key {
			return i
		}
	}
	return -1
}

// Get returns the value with a given key
func (s *Store[T]) Get(key string) (T, bool) {
	if i := s.indexOf(key); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// At returns the value at index i or *OutOfRangeError
func (s *Store[T]) At(i int) (T, error) {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, &OutOfRangeError{Index: i, Len: len(s.items)}
	}
	return s.items[i], nil
}

// TryAt is like At but logs and returns false for invalid index
func (s *Store[T]) TryAt(i int) (T, bool) {
	v, err := s.At(i)
	if err != nil {
		s.logf("trying to get record failed, invalid index %d", i)
		return v, false
	}
	return v, true
}

// Add appends v unless a value with the same key exists, in which
// case it returns false and doesn't touch the file. Otherwise the
// file is rewritten and reloaded. The bool reports the in-memory
// outcome; err reports a failed write or reload.
func (s *Store[T]) Add(v T) (bool, error) {
	if v.Key() == "" {
		return false, ErrEmptyKey
	}
	if s.indexOf(v.Key()) >= 0 {
		return false, nil
	}
	s.items = append(s.items, v)
	errWrite := s.save()
	errReload := s.Reload()
	return true, errors.Join(errWrite, errReload)
}

// Remove removes the value with the same key as v; the rest of v is
// ignored. The file is always rewritten and reloaded. The bool
// reports whether a value was removed from memory before the write.
func (s *Store[T]) Remove(v T) (bool, error) {
	i := s.indexOf(v.Key())
	removed := i >= 0
	if removed {
		s.items = slices.Concat(s.items[:i], s.items[i+1:])
	}
	errWrite := s.save()
	errReload := s.Reload()
	return removed, errors.Join(errWrite, errReload)
}

func (s *Store[T]) encode(items []T) ([]byte, error) {
	recs := make([]*recfile.Record, len(items))
	for i, v := range items {
		r := &recfile.Record{Name: s.codec.Name()}
		if err := s.codec.Marshal(v, r); err != nil {
			return nil, &FormatError{Path: s.path, Index: i, Err: err}
		}
		recs[i] = r
	}
	d, err := recfile.Marshal(recs)
	if err != nil {
		return nil, &FormatError{Path: s.path, Index: -1, Err: err}
	}
	return d, nil
}

func (s *Store[T]) save() error {
	d, err := s.encode(s.items)
	if err != nil {
		s.logf("could not encode records for %s: %s", s.path, err)
		return err
	}
	if err = atomicfile.WriteFile(s.path, d); err != nil {
		s.logf("could not write records to %s: %s", s.path, err)
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	log.Event("store.write", "path", s.path, "records", len(s.items), "size", len(d))
	return nil
}

func (s *Store[T]) decode(d []byte) ([]T, error) {
	recs, err := recfile.Unmarshal(d, s.codec.Name())
	if err != nil {
		return nil, &FormatError{Path: s.path, Index: -1, Err: err}
	}
	items := make([]T, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for i, r := range recs {
		v, err := s.codec.Unmarshal(r)
		if err != nil {
			return nil, &FormatError{Path: s.path, Index: i, Err: err}
		}
		key := v.Key()
		if key == "" {
			return nil, &FormatError{Path: s.path, Index: i, Err: ErrEmptyKey}
		}
		if seen[key] {
			return nil, &FormatError{Path: s.path, Index: i, Err: errors.New("duplicate key '" + key + "'")}
		}
		seen[key] = true
		items = append(items, v)
	}
	return items, nil
}

func (s *Store[T]) load() ([]T, error) {
	d, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	return s.decode(d)
}

// Reload replaces values with the content of the file. On failure
// the values are left as they were and the error is logged. The error
// is returned unless suppress errors mode is on.
func (s *Store[T]) Reload() error {
	items, err := s.load()
	if err != nil {
		s.logf("error when trying to reload records from %s: %s", s.path, err)
		if s.suppressErrors {
			return nil
		}
		return err
	}
	s.items = items
	log.Event("store.reload", "path", s.path, "records", len(items))
	return nil
}

// ReloadIfNeeded reloads if the file is not empty and reports whether
// it did. A missing file counts as empty.
func (s *Store[T]) ReloadIfNeeded() (bool, error) {
	st, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		s.logf("could not check size of %s: %s", s.path, err)
		return false, &IOError{Op: "stat", Path: s.path, Err: err}
	}
	if st.IsDir() {
		s.logf("could not check size of %s: %s", s.path, errIsDir)
		return false, &IOError{Op: "stat", Path: s.path, Err: errIsDir}
	}
	if st.Size() == 0 {
		return false, nil
	}
	return true, s.Reload()
}
