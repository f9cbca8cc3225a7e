// ABOUTME: Full-screen renderer: composes a whole frame into a FrameBuffer and flushes it in one write
// ABOUTME: Hides the cursor while drawing placeholder rows and the banner, then repositions and shows it

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mauromedda/texdi/pkg/tui/terminal"
	"github.com/mauromedda/texdi/pkg/tui/width"
)

const (
	// DefaultBanner is drawn one third of the way down the screen.
	DefaultBanner = "texDi, the text editor"
	// DefaultMarker starts every row that has no content.
	DefaultMarker = "~"

	rowSeparator = "\r\n"
)

// ErrDisplayWrite reports a failed or partial frame flush.
var ErrDisplayWrite = errors.New("display write")

// Writer is the minimal interface for terminal output.
type Writer interface {
	Write(p []byte) (n int, err error)
}

// Cursor is a zero-based screen position.
type Cursor struct {
	Col int
	Row int
}

// Renderer draws frames to a Writer.
type Renderer struct {
	writer Writer
	banner string
	marker string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBanner sets the centered banner text.
func WithBanner(s string) Option {
	return func(r *Renderer) { r.banner = s }
}

// WithMarker sets the glyph drawn at the start of empty rows.
func WithMarker(s string) Option {
	return func(r *Renderer) { r.marker = s }
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w Writer, opts ...Option) *Renderer {
	r := &Renderer{
		writer: w,
		banner: DefaultBanner,
		marker: DefaultMarker,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh composes one frame for the given state, flushes it, and
// recycles the buffer.
func (r *Renderer) Refresh(cur Cursor, dims terminal.Dimensions) error {
	f, err := r.Compose(cur, dims)
	if err != nil {
		return err
	}
	defer ReleaseFrame(f)

	return r.Flush(f)
}

// Compose builds a complete frame: hide cursor, home, every row, cursor
// placement, show cursor. The caller owns the returned buffer and should
// hand it to ReleaseFrame after flushing.
func (r *Renderer) Compose(cur Cursor, dims terminal.Dimensions) (*FrameBuffer, error) {
	f := AcquireFrame()
	fw := frameWriter{f: f}

	fw.str(terminal.HideCursorSeq)
	fw.str(terminal.CursorHomeSeq)
	r.drawRows(&fw, dims)
	fw.cursor(cur.Row+1, cur.Col+1)
	fw.str(terminal.ShowCursorSeq)

	if fw.err != nil {
		ReleaseFrame(f)
		return nil, fw.err
	}
	return f, nil
}

// Flush writes the frame with a single Write call. Anything short of the
// full frame is an error.
func (r *Renderer) Flush(f *FrameBuffer) error {
	n, err := r.writer.Write(f.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayWrite, err)
	}
	if n != f.Len() {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrDisplayWrite, n, f.Len())
	}
	return nil
}

// drawRows emits one segment per screen row. The last row gets no
// separator so the terminal never scrolls.
func (r *Renderer) drawRows(fw *frameWriter, dims terminal.Dimensions) {
	bannerRow := dims.Rows / 3
	for y := 0; y < dims.Rows; y++ {
		if y == bannerRow {
			fw.str(r.bannerLine(dims.Cols))
		} else {
			fw.str(r.marker)
		}
		fw.str(terminal.EraseLineSeq)
		if y < dims.Rows-1 {
			fw.str(rowSeparator)
		}
	}
}

// bannerLine centers the banner in cols columns. When there is room on
// the left, the padding starts with the row marker.
func (r *Renderer) bannerLine(cols int) string {
	text := width.Truncate(r.banner, cols)
	padding := (cols - width.VisibleWidth(text)) / 2

	var b strings.Builder
	if padding > 0 {
		b.WriteString(r.marker)
		padding--
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(text)
	return b.String()
}

// frameWriter appends to a FrameBuffer and remembers the first error so
// composition reads as a straight sequence.
type frameWriter struct {
	f   *FrameBuffer
	err error
}

func (w *frameWriter) str(s string) {
	if w.err != nil {
		return
	}
	w.err = w.f.AppendString(s)
}

func (w *frameWriter) cursor(row, col int) {
	if w.err != nil {
		return
	}
	var scratch [32]byte
	w.err = w.f.Append(terminal.AppendCursorPosition(scratch[:0], row, col))
}
