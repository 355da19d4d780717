// Package output prints timestamped lines to the console, optionally
// with a colored part.
package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kjk/cfgstore/log"
)

var (
	BigClear = strings.Repeat("\n", 50)
	MidClear = strings.Repeat("\n", 30)
	LowClear = strings.Repeat("\n", 10)
)

// Clear returns n newlines
func Clear(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("\n", n)
}

var (
	// "prefix 1RED1colored text9 rest."
	rxPartial = regexp.MustCompile(`([A-Za-z\s\[\].-]*)[0-9]([A-Za-z]+)[0-9]([A-Za-z\s]+)9([A-Za-z\s.!]+)`)
	// "1GREEN1all of it is colored"
	rxWhole = regexp.MustCompile(`(?s)[0-9]([A-Za-z]+)[0-9](.+)`)
)

// ANSI color numbers
var colors = map[string]lipgloss.Color{
	"RED":     "1",
	"GREEN":   "2",
	"YELLOW":  "3",
	"BLUE":    "4",
	"MAGENTA": "5",
	"PURPLE":  "5",
}

// ColorFor maps an upper case color name, or its first letter in any case,
// to a color. Returns false for unknown names.
func ColorFor(name string) (lipgloss.Color, bool) {
	if len(name) == 1 {
		for full, c := range colors {
			if strings.EqualFold(full[:1], name) {
				return c, true
			}
		}
		return "", false
	}
	c, ok := colors[name]
	return c, ok
}

type Formatter struct {
	W io.Writer
	// returns current time, time.Now if nil
	Now func() time.Time

	r *lipgloss.Renderer
}

// New returns a Formatter writing to w, os.Stdout if w is nil
func New(w io.Writer) *Formatter {
	if w == nil {
		w = os.Stdout
	}
	return &Formatter{
		W: w,
		r: lipgloss.NewRenderer(w),
	}
}

func (f *Formatter) now() string {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return now().Format(log.DiagTimeFormat)
}

func (f *Formatter) renderer() *lipgloss.Renderer {
	if f.r == nil {
		f.r = lipgloss.NewRenderer(f.W)
	}
	return f.r
}

// Colorize renders s in a named color. Unknown colors render s as is.
func (f *Formatter) Colorize(color string, s string) string {
	c, ok := ColorFor(color)
	if !ok {
		return s
	}
	return f.renderer().NewStyle().Foreground(c).Render(s)
}

// Format prints s prefixed with current time
func (f *Formatter) Format(s string) {
	fmt.Fprintf(f.W, "%s: %s\n", f.now(), s)
}

// Formatf is Format with fmt.Sprintf formatting
func (f *Formatter) Formatf(format string, args ...any) {
	f.Format(fmt.Sprintf(format, args...))
}

// FormatColored prints s with a colored part. With partial, s is
// "text ${d}COLOR${d}colored text9 rest of text" where ${d} is any
// digit. Otherwise everything after "${d}COLOR${d}" is colored.
// Input not in that format is printed as by Format.
func (f *Formatter) FormatColored(s string, partial bool) {
	if partial {
		m := rxPartial.FindStringSubmatch(s)
		if m == nil {
			f.Format(s)
			return
		}
		f.Format(m[1] + f.Colorize(m[2], m[3]) + m[4])
		return
	}
	m := rxWhole.FindStringSubmatch(s)
	if m == nil {
		f.Format(s)
		return
	}
	f.Format(f.Colorize(m[1], m[2]))
}
