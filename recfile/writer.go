package recfile

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var hdrPrefix = []byte("--- ")

// Writer writes records as blocks framed by a header line
type Writer struct {
	w   io.Writer
	buf bytes.Buffer
	hdr bytes.Buffer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func validName(name string) error {
	if strings.ContainsAny(name, " \n") {
		return fmt.Errorf("record name '%s' contains space or newline", name)
	}
	return nil
}

// AppendBlock appends a block in the format:
// "--- ${size} ${name}\n${data}" to wb.
// ${name} is optional. For readability, data that doesn't end
// with a newline is followed by one.
func AppendBlock(wb *bytes.Buffer, name string, d []byte) {
	wb.Write(hdrPrefix)
	wb.WriteString(strconv.Itoa(len(d)))
	if name != "" {
		wb.WriteByte(' ')
		wb.WriteString(name)
	}
	wb.WriteByte('\n')
	n := len(d)
	if n > 0 {
		wb.Write(d)
		if d[n-1] != '\n' {
			wb.WriteByte('\n')
		}
	}
}

// WriteRecord writes r. Returns number of bytes written.
func (w *Writer) WriteRecord(r *Record) (int, error) {
	if err := validName(r.Name); err != nil {
		return 0, err
	}
	w.buf.Reset()
	r.MarshalBody(&w.buf)
	w.hdr.Reset()
	AppendBlock(&w.hdr, r.Name, w.buf.Bytes())
	return w.w.Write(w.hdr.Bytes())
}

// Marshal serializes records in order. No records is empty data.
func Marshal(records []*Record) ([]byte, error) {
	var out bytes.Buffer
	w := NewWriter(&out)
	for _, r := range records {
		if _, err := w.WriteRecord(r); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}
