package recfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
)

var largeValue = strings.Repeat("0123456789", 32)

func mkRecord(t *testing.T, kv ...string) *Record {
	r := &Record{Name: "record"}
	err := r.Write(kv...)
	assert.NoError(t, err)
	return r
}

func TestRecordWriteErrors(t *testing.T) {
	r := &Record{}
	assert.Error(t, r.Write())
	assert.Error(t, r.Write("key"))
	assert.Error(t, r.Write("", "v"))
	assert.Error(t, r.Write("a:b", "v"))
	assert.Error(t, r.Write("a\nb", "v"))
	// nothing written on error
	assert.Equal(t, 0, len(r.Entries))
}

func TestMarshalBody(t *testing.T) {
	tests := []struct {
		key, val string
		exp      string
	}{
		{"key", "k1", "key: k1\n"},
		{"value", "", "value:+0\n"},
		{"value", "line1\nline2", "value:+11\nline1\nline2\n"},
		{"value", "ends\n", "value:+5\nends\n"},
		{"value", largeValue, "value:+320\n" + largeValue + "\n"},
		{"value", "tab\there", "value:+8\ntab\there\n"},
		{"value", "a: b", "value: a: b\n"},
	}
	for _, test := range tests {
		r := mkRecord(t, test.key, test.val)
		var buf bytes.Buffer
		r.MarshalBody(&buf)
		assert.Equal(t, test.exp, buf.String())

		var r2 Record
		err := r2.UnmarshalBody(buf.Bytes())
		assert.NoError(t, err)
		v, ok := r2.Get(test.key)
		assert.True(t, ok)
		assert.Equal(t, test.val, v)
	}
}

func TestUnmarshalBodyBad(t *testing.T) {
	bad := []string{
		"no newline",
		"nocolon\n",
		":v\n",
		"key:\n",
		"key:x\n",
		"key:+abc\nabc\n",
		"key:+-1\n",
		"key:+10\nshort\n",
		"key:+3\nabcX",
	}
	for _, s := range bad {
		var r Record
		err := r.UnmarshalBody([]byte(s))
		assert.Error(t, err, "input: %q", s)
	}
}

func TestRoundTrip(t *testing.T) {
	records := []*Record{
		mkRecord(t, "key", "a", "value", "1"),
		mkRecord(t, "key", "b", "value", ""),
		mkRecord(t, "key", "help", "value", "usage: help COMMAND\n\nprints help\n"),
		mkRecord(t, "key", "big", "value", largeValue),
	}
	d, err := Marshal(records)
	assert.NoError(t, err)
	got, err := Unmarshal(d, "record")
	assert.NoError(t, err)
	assert.Equal(t, len(records), len(got))
	for i, r := range records {
		assert.Equal(t, r.Name, got[i].Name)
		assert.Equal(t, r.Entries, got[i].Entries)
	}
}

func TestMarshalFormat(t *testing.T) {
	d, err := Marshal([]*Record{mkRecord(t, "key", "k1", "value", "v1")})
	assert.NoError(t, err)
	assert.Equal(t, "--- 18 record\nkey: k1\nvalue: v1\n", string(d))
}

func TestMarshalBadName(t *testing.T) {
	r := mkRecord(t, "key", "k")
	r.Name = "two words"
	_, err := Marshal([]*Record{r})
	assert.Error(t, err)
}

func TestUnmarshalEmpty(t *testing.T) {
	got, err := Unmarshal(nil, "record")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(got))
}

func TestNoNameBlock(t *testing.T) {
	var buf bytes.Buffer
	AppendBlock(&buf, "", []byte("key: x"))
	assert.Equal(t, "--- 6\nkey: x\n", buf.String())
	got, err := Unmarshal(buf.Bytes(), "")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(got))
	v, _ := got[0].Get("key")
	assert.Equal(t, "x", v)
}

func TestUnmarshalBad(t *testing.T) {
	good := "--- 18 record\nkey: k1\nvalue: v1\n"
	bad := []string{
		"garbage",
		"garbage\n",
		"--- abc record\n",
		"--- -1 record\n",
		"--- 18 other\nkey: k1\nvalue: v1\n",
		"--- 18 record\nkey: k1\n",
		"--- 5 record\nkey: k1\n",
		good + "\xac\xed\x00\x05sr\n",
		"--- 9223372036854775807 record\nkey: a\n",
		"--- 400000000000 record\nkey: a\n",
		good + "--- 400000000000 record\nkey: a\n",
	}
	for _, s := range bad {
		_, err := Unmarshal([]byte(s), "record")
		assert.Error(t, err, "input: %q", s)
		var se *SyntaxError
		assert.True(t, errors.As(err, &se), "input: %q", s)
	}
}

func TestReaderHugeSize(t *testing.T) {
	// size of input is not known to a streaming reader
	d := "--- 18 record\nkey: k1\nvalue: v1\n--- 9223372036854775807 record\nkey: a\n"
	r := NewReader(strings.NewReader(d))
	assert.True(t, r.ReadNext())
	assert.False(t, r.ReadNext())
	var se *SyntaxError
	assert.True(t, errors.As(r.Err(), &se))
	assert.True(t, strings.Contains(se.Msg, "truncated data"), "msg: %s", se.Msg)
	assert.Equal(t, int64(18+len("--- 18 record\n")), se.Offset)
}

func TestReaderPositions(t *testing.T) {
	b1 := mkRecord(t, "key", "a")
	b2 := mkRecord(t, "key", "bb")
	d, err := Marshal([]*Record{b1, b2})
	assert.NoError(t, err)
	r := NewReader(bytes.NewReader(d))
	assert.True(t, r.ReadNext())
	assert.Equal(t, int64(0), r.CurrPos)
	first := r.NextPos
	assert.True(t, r.ReadNext())
	assert.Equal(t, first, r.CurrPos)
	assert.Equal(t, int64(len(d)), r.NextPos)
	assert.False(t, r.ReadNext())
	assert.True(t, r.Done())
	assert.NoError(t, r.Err())
}
