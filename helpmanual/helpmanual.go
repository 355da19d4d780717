// Package helpmanual looks up help text of commands kept in a store.
package helpmanual

import (
	"fmt"
	"io"

	"github.com/kjk/cfgstore/output"
	"github.com/kjk/cfgstore/store"
)

// DefaultPath is where the tool keeps help manuals
const DefaultPath = "configs/helpManuals.txt"

// Manuals maps command names to help text. Key of a record is the
// command name, value is the help text.
type Manuals struct {
	s *store.Store[store.Record]
}

// New opens manuals stored in a file at path
func New(path string, opts ...store.Option) (*Manuals, error) {
	s, err := store.OpenRecords(path, opts...)
	if err != nil {
		return nil, err
	}
	return &Manuals{s: s}, nil
}

// FromStore wraps an already opened store
func FromStore(s *store.Store[store.Record]) *Manuals {
	return &Manuals{s: s}
}

// Store gives access to the underlying store, for editing manuals
func (m *Manuals) Store() *store.Store[store.Record] {
	return m.s
}

// ChangeFilePath opens manuals in a different file with the options
// the current store was opened with. m is not changed; callers replace
// their reference.
func (m *Manuals) ChangeFilePath(path string) (*Manuals, error) {
	return New(path, m.s.Options()...)
}

// ViewAsMap returns a new map of command name => help text
func (m *Manuals) ViewAsMap() map[string]string {
	view := m.s.View()
	res := make(map[string]string, len(view))
	for _, r := range view {
		res[r.Key()] = r.Value()
	}
	return res
}

// Commands returns command names in the order they were added
func (m *Manuals) Commands() []string {
	view := m.s.View()
	res := make([]string, len(view))
	for i, r := range view {
		res[i] = r.Key()
	}
	return res
}

// Manual returns help text for a command
func (m *Manuals) Manual(command string) (string, bool) {
	r, ok := m.s.Get(command)
	if !ok {
		return "", false
	}
	return r.Value(), true
}

// PrintHelp prints help text for a command to w
func (m *Manuals) PrintHelp(w io.Writer, command string) {
	f := output.New(w)
	io.WriteString(w, output.LowClear)
	f.Format("Printing help manual for " + command + ":")
	text, ok := m.Manual(command)
	if !ok {
		f.Format("No help manual for " + f.Colorize("YELLOW", command) + " found.")
		return
	}
	fmt.Fprintln(w, text)
}
