package recfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// SyntaxError describes malformed data at a given block
type SyntaxError struct {
	// offset of the block in the data
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("recfile: %s (block at offset %d)", e.Msg, e.Offset)
}

// Reader reads records written by Writer
type Reader struct {
	r *bufio.Reader

	// if not empty, blocks with a different name are an error
	Name string

	// Record is valid after ReadNext() until the next call
	Record *Record

	// position of the current block
	CurrPos int64
	// position of the next block
	NextPos int64

	// total size of input if known
	inputSize int64

	err  error
	done bool
}

func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{
		r:      br,
		Record: &Record{},
	}
}

// Done returns true if there is nothing more to read
func (r *Reader) Done() bool {
	return r.err != nil || r.done
}

// Err returns the first error. Reaching end of data is not an error.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) syntaxErr(format string, args ...any) bool {
	r.err = &SyntaxError{Offset: r.CurrPos, Msg: fmt.Sprintf(format, args...)}
	return false
}

// ReadNext reads the next record. Returns false at the end of data
// or on error, check Err() to tell them apart.
func (r *Reader) ReadNext() bool {
	if r.Done() {
		return false
	}
	r.CurrPos = r.NextPos

	hdr, err := r.r.ReadBytes('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if len(hdr) == 0 {
				r.done = true
				return false
			}
			return r.syntaxErr("truncated header '%s'", hdr)
		}
		r.err = err
		return false
	}
	pos := int64(len(hdr))

	rest, ok := bytes.CutPrefix(hdr[:len(hdr)-1], hdrPrefix)
	if !ok {
		return r.syntaxErr("unexpected header '%s'", hdr[:len(hdr)-1])
	}
	sizeStr, name, _ := bytes.Cut(rest, []byte{' '})
	size, err := strconv.ParseInt(string(sizeStr), 10, 64)
	if err != nil || size < 0 {
		return r.syntaxErr("invalid size in header '%s'", hdr[:len(hdr)-1])
	}
	if r.Name != "" && string(name) != r.Name {
		return r.syntaxErr("unexpected record name '%s', expected '%s'", name, r.Name)
	}

	if r.inputSize > 0 && size > r.inputSize-r.CurrPos-pos {
		return r.syntaxErr("size %d in header is larger than remaining data", size)
	}

	// size is not trusted, don't allocate it up front
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r.r, size))
	if err != nil {
		r.err = err
		return false
	}
	if n != size {
		return r.syntaxErr("truncated data, expected %d bytes, got %d", size, n)
	}
	d := buf.Bytes()
	pos += size
	if size > 0 && d[size-1] != '\n' {
		b, err := r.r.ReadByte()
		if err != nil || b != '\n' {
			return r.syntaxErr("missing newline after data")
		}
		pos++
	}

	r.Record.Name = string(name)
	if err = r.Record.UnmarshalBody(d); err != nil {
		return r.syntaxErr("%s", err)
	}
	r.NextPos += pos
	return true
}

// Unmarshal decodes all records from d. If name is not empty, every
// block must have that name. Empty data is no records.
func Unmarshal(d []byte, name string) ([]*Record, error) {
	r := NewReader(bytes.NewReader(d))
	r.Name = name
	r.inputSize = int64(len(d))
	var res []*Record
	for r.ReadNext() {
		rec := &Record{
			Name:    r.Record.Name,
			Entries: append([]Entry(nil), r.Record.Entries...),
		}
		res = append(res, rec)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
