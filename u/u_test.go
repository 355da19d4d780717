package u

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert"
)

func TestNormalizeNewlines(t *testing.T) {
	tests := []string{
		"foo", "foo",
		"a\r\nb", "a\nb",
		"a\rb\r", "a\nb\n",
		"\r\n\r\n", "\n\n",
		"", "",
	}
	for i := 0; i < len(tests); i += 2 {
		got := NormalizeNewlines([]byte(tests[i]))
		assert.Equal(t, tests[i+1], string(got), "input: %q", tests[i])
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "12 bytes", FormatSize(12))
	assert.Equal(t, "1 kB", FormatSize(1024))
	assert.Equal(t, "1.50 kB", FormatSize(1536))
	assert.Equal(t, "2 MB", FormatSize(2*1024*1024))
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	assert.False(t, PathExists(path))
	assert.Equal(t, int64(-1), FileSize(path))
	err := os.WriteFile(path, []byte("abc"), 0644)
	assert.NoError(t, err)
	assert.True(t, FileExists(path))
	assert.False(t, DirExists(path))
	assert.True(t, DirExists(dir))
	assert.Equal(t, int64(3), FileSize(path))
}

func TestExpandTildeInPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	assert.Equal(t, home+"/cfg.txt", ExpandTildeInPath("~/cfg.txt"))
	assert.Equal(t, "/abs/cfg.txt", ExpandTildeInPath("/abs/cfg.txt"))
	assert.Equal(t, "~other", ExpandTildeInPath("~other"))
}

func TestPanicIf(t *testing.T) {
	PanicIf(false)
	defer func() {
		r := recover()
		assert.Equal(t, "bad value 3", r)
	}()
	PanicIf(true, "bad value %d", 3)
}
