package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/kjk/cfgstore/helpmanual"
	"github.com/kjk/cfgstore/output"
	"github.com/kjk/cfgstore/store"
)

func quietLogf(string, ...any) {}

func openTestStore(t *testing.T, name string) *store.Store[store.Record] {
	path := filepath.Join(t.TempDir(), name)
	s, err := store.OpenRecords(path, store.WithLogf(quietLogf))
	assert.NoError(t, err)
	return s
}

func TestEnvOr(t *testing.T) {
	t.Setenv("CFGSTORE_TEST_VAR", "from-env")
	assert.Equal(t, "flag", envOr("flag", "CFGSTORE_TEST_VAR", "def"))
	assert.Equal(t, "from-env", envOr("", "CFGSTORE_TEST_VAR", "def"))
	t.Setenv("CFGSTORE_TEST_VAR", "")
	assert.Equal(t, "def", envOr("", "CFGSTORE_TEST_VAR", "def"))
}

func TestRecordsText(t *testing.T) {
	recs := []store.Record{
		store.NewRecord("k1", "v1"),
		store.NewRecord("k2", "line 1\nline 2"),
	}
	assert.Equal(t, "k1: v1\nk2: line 1\\nline 2\n", recordsText(recs))
	assert.Equal(t, "", recordsText(nil))
}

func TestDiffStores(t *testing.T) {
	a := openTestStore(t, "a.txt")
	b := openTestStore(t, "b.txt")
	s, err := diffStores(a, b)
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = a.Add(store.NewRecord("k1", "v1"))
	assert.NoError(t, err)
	_, err = b.Add(store.NewRecord("k1", "v2"))
	assert.NoError(t, err)
	s, err = diffStores(a, b)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(s, "-k1: v1\n"), "diff: %s", s)
	assert.True(t, strings.Contains(s, "+k1: v2\n"), "diff: %s", s)
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, ExitDataError, exitCodeFor(&store.FormatError{Path: "x", Index: -1}))
	assert.Equal(t, ExitNoChange, exitCodeFor(&store.OutOfRangeError{Index: 3, Len: 1}))
	assert.Equal(t, ExitError, exitCodeFor(&store.IOError{Op: "write", Path: "x"}))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, StatusResponse{Status: "added", Key: "k1", Path: "p", Count: 1})
	assert.NoError(t, err)
	exp := `{
  "status": "added",
  "key": "k1",
  "path": "p",
  "count": 1
}
`
	assert.Equal(t, exp, buf.String())

	err = writeJSON(failingWriter{}, StatusResponse{Status: "added"})
	assert.Error(t, err)
}

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	var buf bytes.Buffer
	m, err := helpmanual.New(filepath.Join(t.TempDir(), "help.txt"), store.WithLogf(quietLogf))
	assert.NoError(t, err)
	_, err = m.Store().Add(store.NewRecord("add", "usage: add KEY VALUE"))
	assert.NoError(t, err)
	sh := &shell{
		s:       openTestStore(t, "settings.txt"),
		manuals: m,
		f:       output.New(&buf),
		w:       &buf,
	}
	return sh, &buf
}

func TestShell(t *testing.T) {
	sh, buf := newTestShell(t)
	input := strings.Join([]string{
		`add k1 v1`,
		`add k2 "two words"`,
		``,
		`get k2`,
		`at 0`,
		`list`,
		`remove k1`,
		`list`,
	}, "\n")
	nFailed := sh.run(strings.NewReader(input))
	assert.Equal(t, 0, nFailed, "output: %s", buf.String())
	assert.Equal(t, 1, sh.s.Len())
	r, ok := sh.s.Get("k2")
	assert.True(t, ok)
	assert.Equal(t, "two words", r.Value())

	out := buf.String()
	assert.True(t, strings.Contains(out, "k2: two words\n"))
	assert.True(t, strings.Contains(out, "k1: v1\n"))
	assert.True(t, strings.Contains(out, "removed 'k1'"))
}

func TestShellFailures(t *testing.T) {
	sh, buf := newTestShell(t)
	input := strings.Join([]string{
		`add k1 v1`,
		`add k1 v2`,
		`add onlykey`,
		`remove missing`,
		`get missing`,
		`at 5`,
		`at x`,
		`nope`,
		`add "k2`,
	}, "\n")
	nFailed := sh.run(strings.NewReader(input))
	assert.Equal(t, 8, nFailed, "output: %s", buf.String())
	assert.Equal(t, 1, sh.s.Len())
	r, _ := sh.s.Get("k1")
	assert.Equal(t, "v1", r.Value())

	out := buf.String()
	assert.True(t, strings.Contains(out, "record 'k1' already exists"))
	// manual printed for wrong number of arguments
	assert.True(t, strings.Contains(out, "usage: add KEY VALUE\n"))
	assert.True(t, strings.Contains(out, "unknown command"))
}

func TestShellQuit(t *testing.T) {
	sh, _ := newTestShell(t)
	nFailed := sh.run(strings.NewReader("add k1 v1\nquit\nadd k2 v2\n"))
	assert.Equal(t, 0, nFailed)
	assert.True(t, sh.quit)
	assert.Equal(t, 1, sh.s.Len())
}

func TestShellHelp(t *testing.T) {
	sh, buf := newTestShell(t)
	nFailed := sh.run(strings.NewReader("help\nhelp add\n"))
	assert.Equal(t, 0, nFailed)
	out := buf.String()
	assert.True(t, strings.Contains(out, "quit\n"))
	assert.True(t, strings.Contains(out, "Printing help manual for add:"))
	assert.True(t, strings.Contains(out, "usage: add KEY VALUE\n"))
}
