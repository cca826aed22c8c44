// Package report renders ambiguity results as the annotated wordpacks text file.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/raphaelgruber/wordrel/internal/models"
)

// DefaultSeparator joins related terms on an output line.
const DefaultSeparator = " · "

// Options controls how term lines are rendered.
type Options struct {
	// TermPrefix is written before every base term, e.g. "ANT-".
	TermPrefix string
	// Separator joins related terms (default DefaultSeparator).
	Separator string
}

// Writer writes one section per wordpack.
type Writer struct {
	w    *bufio.Writer
	opts Options
}

// NewWriter wraps w. Call Flush when done.
func NewWriter(w io.Writer, opts Options) *Writer {
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	return &Writer{w: bufio.NewWriter(w), opts: opts}
}

// WriteWordpack writes the title line and one annotated line per base term.
//
// A base term with collisions is prefixed with "[ a, b ] " listing the
// colliding base terms; every related term that collided is rendered as
// "[ base : term ]".
func (w *Writer) WriteWordpack(wp models.Wordpack, result *models.Ambiguity) error {
	if _, err := fmt.Fprintln(w.w, wp.Title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	for _, base := range wp.Groups.Terms() {
		related, _ := wp.Groups.Get(base)
		if _, err := fmt.Fprintln(w.w, w.FormatLine(base, related, result.For(base))); err != nil {
			return fmt.Errorf("write term %q: %w", base, err)
		}
	}
	return nil
}

// FormatLine renders a single base term line without the trailing newline.
func (w *Writer) FormatLine(base string, related []string, c *models.Collisions) string {
	var b strings.Builder

	if overlap := c.DistinctOverlap(); len(overlap) > 0 {
		fmt.Fprintf(&b, "[ %s ] ", strings.Join(overlap, ", "))
	}
	fmt.Fprintf(&b, "@ %s%s = ", w.opts.TermPrefix, base)

	parts := make([]string, 0, len(related))
	for _, r := range related {
		if match, ok := c.MatchFor(r); ok {
			parts = append(parts, fmt.Sprintf("[ %s : %s ]", match, r))
			continue
		}
		parts = append(parts, r)
	}
	b.WriteString(strings.Join(parts, w.opts.Separator))

	return b.String()
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
