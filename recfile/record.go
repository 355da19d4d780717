package recfile

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

/*
A record body is a list of key/value lines: "key: value\n"

When a value is empty, long (> 120 chars) or not printable ASCII,
it's written with its size:
key:+$len\n
value\n

The trailing \n after a sized value is only written if the value
doesn't already end with one.
*/

const maxLineValueLen = 120

type Entry struct {
	Key   string
	Value string
}

// Record is a named, ordered list of key/value entries
type Record struct {
	Name    string
	Entries []Entry
}

func validKey(k string) error {
	if k == "" {
		return fmt.Errorf("empty key")
	}
	if strings.ContainsAny(k, ":\n") {
		return fmt.Errorf("key '%s' contains ':' or newline", k)
	}
	return nil
}

// Write appends key/value pairs. kv must have an even number of elements.
func (r *Record) Write(kv ...string) error {
	n := len(kv)
	if n == 0 || n%2 != 0 {
		return fmt.Errorf("invalid number of args: %d. Should be multiple of 2", n)
	}
	for i := 0; i < n; i += 2 {
		if err := validKey(kv[i]); err != nil {
			return err
		}
	}
	for i := 0; i < n; i += 2 {
		r.Entries = append(r.Entries, Entry{Key: kv[i], Value: kv[i+1]})
	}
	return nil
}

// Get returns the value of the first entry with a given key
func (r *Record) Get(key string) (string, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Reset clears entries so that r can be re-used. Name is kept.
func (r *Record) Reset() {
	r.Entries = r.Entries[:0]
}

func printableOnLine(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 32 || b > 126 {
			return false
		}
	}
	return true
}

func needsSizedFormat(s string) bool {
	return len(s) == 0 || len(s) > maxLineValueLen || !printableOnLine(s)
}

func endsWithNewline(s string) bool {
	n := len(s)
	return n > 0 && s[n-1] == '\n'
}

func marshalEntry(buf *bytes.Buffer, key, val string) {
	buf.WriteString(key)
	if !needsSizedFormat(val) {
		buf.WriteString(": ")
		buf.WriteString(val)
		buf.WriteByte('\n')
		return
	}
	buf.WriteString(":+")
	buf.WriteString(strconv.Itoa(len(val)))
	buf.WriteByte('\n')
	buf.WriteString(val)
	if len(val) > 0 && !endsWithNewline(val) {
		buf.WriteByte('\n')
	}
}

// MarshalBody appends the serialized entries of r to buf
func (r *Record) MarshalBody(buf *bytes.Buffer) {
	for _, e := range r.Entries {
		marshalEntry(buf, e.Key, e.Value)
	}
}

// UnmarshalBody replaces entries of r with entries decoded from d
func (r *Record) UnmarshalBody(d []byte) error {
	r.Reset()
	for len(d) > 0 {
		var line []byte
		idx := bytes.IndexByte(d, '\n')
		if idx == -1 {
			// last line, newline was padding added by Writer
			line, d = d, nil
		} else {
			line, d = d[:idx], d[idx+1:]
		}
		idx = bytes.IndexByte(line, ':')
		if idx < 1 || idx == len(line)-1 {
			return fmt.Errorf("line in unrecognized format: '%s'", line)
		}
		key := string(line[:idx])
		kind := line[idx+1]
		val := line[idx+2:]
		switch kind {
		case ' ':
			r.Entries = append(r.Entries, Entry{Key: key, Value: string(val)})
			continue
		case '+':
			// sized value below
		default:
			return fmt.Errorf("line in unrecognized format: '%s'", line)
		}
		n, err := strconv.Atoi(string(val))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid size in line '%s'", line)
		}
		if n > len(d) {
			return fmt.Errorf("size of value %d greater than remaining data of size %d", n, len(d))
		}
		v := string(d[:n])
		d = d[n:]
		if n > 0 && !endsWithNewline(v) {
			if len(d) == 0 || d[0] != '\n' {
				return fmt.Errorf("missing newline after value of '%s'", key)
			}
			d = d[1:]
		}
		r.Entries = append(r.Entries, Entry{Key: key, Value: v})
	}
	return nil
}
