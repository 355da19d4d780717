package u

import (
	"fmt"
	"strings"
)

// NormalizeNewlines changes CRLF (Windows) and CR (Mac) to LF (Unix).
// Returns a copy.
func NormalizeNewlines(d []byte) []byte {
	res := make([]byte, 0, len(d))
	n := len(d)
	for i := 0; i < n; i++ {
		c := d[i]
		if c != '\r' {
			res = append(res, c)
			continue
		}
		res = append(res, '\n')
		if i < n-1 && d[i+1] == '\n' {
			// CRLF
			i++
		}
	}
	return res
}

// FormatSize formats a number in a human-readable form e.g. 1.24 kB
func FormatSize(n int64) string {
	sizes := []int64{1024 * 1024 * 1024, 1024 * 1024, 1024}
	suffixes := []string{"GB", "MB", "kB"}
	for i, size := range sizes {
		if n >= size {
			s := fmt.Sprintf("%.2f", float64(n)/float64(size))
			return strings.TrimSuffix(s, ".00") + " " + suffixes[i]
		}
	}
	return fmt.Sprintf("%d bytes", n)
}
