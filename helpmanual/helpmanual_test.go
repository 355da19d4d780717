package helpmanual

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/kjk/cfgstore/store"
)

func nopLogf(format string, args ...any) {}

func newManuals(t *testing.T, name string, kv ...string) *Manuals {
	path := filepath.Join(t.TempDir(), name)
	m, err := New(path, store.WithLogf(nopLogf))
	assert.NoError(t, err)
	for i := 0; i < len(kv); i += 2 {
		_, err = m.Store().Add(store.NewRecord(kv[i], kv[i+1]))
		assert.NoError(t, err)
	}
	return m
}

func TestLookup(t *testing.T) {
	m := newManuals(t, "help.txt",
		"list", "usage: list",
		"add", "usage: add KEY VALUE",
	)
	text, ok := m.Manual("add")
	assert.True(t, ok)
	assert.Equal(t, "usage: add KEY VALUE", text)
	_, ok = m.Manual("missing")
	assert.False(t, ok)

	exp := map[string]string{
		"list": "usage: list",
		"add":  "usage: add KEY VALUE",
	}
	assert.Equal(t, exp, m.ViewAsMap())
	assert.Equal(t, []string{"list", "add"}, m.Commands())
}

func TestChangeFilePath(t *testing.T) {
	m := newManuals(t, "a.txt", "list", "from a")
	other := newManuals(t, "b.txt", "list", "from b")

	m2, err := m.ChangeFilePath(other.Store().Path())
	assert.NoError(t, err)
	text, _ := m2.Manual("list")
	assert.Equal(t, "from b", text)
	// m still reads the old file
	text, _ = m.Manual("list")
	assert.Equal(t, "from a", text)
}

func TestPrintHelp(t *testing.T) {
	m := newManuals(t, "help.txt", "list", "usage: list\nprints all records")
	var buf bytes.Buffer
	m.PrintHelp(&buf, "list")
	s := buf.String()
	assert.True(t, strings.HasPrefix(s, "\n\n\n\n\n\n\n\n\n\n"))
	assert.True(t, strings.Contains(s, ": Printing help manual for list:\n"))
	assert.True(t, strings.HasSuffix(s, "usage: list\nprints all records\n"))

	buf.Reset()
	m.PrintHelp(&buf, "nope")
	assert.True(t, strings.Contains(buf.String(), "No help manual for nope found."))
}

func TestFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "help.txt")
	s, err := store.OpenRecords(path, store.WithLogf(nopLogf))
	assert.NoError(t, err)
	m := FromStore(s)
	assert.Equal(t, 0, len(m.ViewAsMap()))
	assert.Equal(t, s, m.Store())
}

func TestFromStoreChangeFilePathKeepsOptions(t *testing.T) {
	dir := t.TempDir()
	var lines []string
	logf := func(format string, args ...any) {
		lines = append(lines, format)
	}
	s, err := store.OpenRecords(filepath.Join(dir, "a.txt"), store.WithSuppressErrors(true), store.WithLogf(logf))
	assert.NoError(t, err)
	m := FromStore(s)

	corrupt := filepath.Join(dir, "b.txt")
	err = os.WriteFile(corrupt, []byte("not a record file\n"), 0644)
	assert.NoError(t, err)
	m2, err := m.ChangeFilePath(corrupt)
	assert.NoError(t, err)
	assert.True(t, m2.Store().SuppressErrors())
	assert.Equal(t, 0, len(m2.Commands()))
	assert.Equal(t, 1, len(lines))
}
