// ABOUTME: Editor loop: render a frame, decode one key, dispatch it, repeat until quit or error
// ABOUTME: Owns the cursor and screen dimensions; moves are clamped to the visible area

package editor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mauromedda/texdi/internal/log"
	"github.com/mauromedda/texdi/pkg/tui"
	"github.com/mauromedda/texdi/pkg/tui/key"
	"github.com/mauromedda/texdi/pkg/tui/terminal"
)

// State is the editor lifecycle state.
type State int

const (
	StateRunning    State = iota // Accepting keys
	StateTerminated              // Quit or failed; Run must not be called again
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ErrTerminated is returned by Run on an editor that already stopped.
var ErrTerminated = errors.New("editor terminated")

// KeyReader yields one decoded key per call.
type KeyReader interface {
	ReadKey(ctx context.Context) (key.Key, error)
}

// FrameRenderer draws a full frame for the given state.
type FrameRenderer interface {
	Refresh(cur tui.Cursor, dims terminal.Dimensions) error
}

// Option configures an Editor.
type Option func(*Editor)

// WithQuitKey sets the letter whose control byte ends the session.
func WithQuitKey(letter byte) Option {
	return func(e *Editor) { e.quit = key.Ctrl(letter) }
}

// WithWASD enables w/a/s/d as alternative cursor movement keys.
func WithWASD(enabled bool) Option {
	return func(e *Editor) { e.wasd = enabled }
}

// Editor is the interactive state: cursor, dimensions, and lifecycle.
type Editor struct {
	out      io.Writer
	renderer FrameRenderer
	keys     KeyReader
	dims     terminal.Dimensions
	cursor   tui.Cursor
	state    State
	quit     byte
	wasd     bool
}

// New creates an Editor with the cursor at the origin. out receives the
// final clear-screen on quit.
func New(out io.Writer, r FrameRenderer, keys KeyReader, dims terminal.Dimensions, opts ...Option) *Editor {
	e := &Editor{
		out:      out,
		renderer: r,
		keys:     keys,
		dims:     dims,
		quit:     key.Ctrl('q'),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cursor returns the current cursor position.
func (e *Editor) Cursor() tui.Cursor { return e.cursor }

// State returns the lifecycle state.
func (e *Editor) State() State { return e.state }

// Dimensions returns the screen size the editor draws into.
func (e *Editor) Dimensions() terminal.Dimensions { return e.dims }

// Run loops until the quit key is pressed, in which case it clears the
// screen and returns nil, or until rendering, reading, or ctx fails.
// Either way the editor ends in StateTerminated.
func (e *Editor) Run(ctx context.Context) error {
	if e.state == StateTerminated {
		return ErrTerminated
	}

	for {
		if err := e.renderer.Refresh(e.cursor, e.dims); err != nil {
			return e.fail(fmt.Errorf("refresh screen: %w", err))
		}

		k, err := e.keys.ReadKey(ctx)
		if err != nil {
			return e.fail(fmt.Errorf("read key: %w", err))
		}
		log.Debug("key %s at row %d col %d", k, e.cursor.Row, e.cursor.Col)

		if e.Handle(k) {
			e.state = StateTerminated
			if err := terminal.ClearScreen(e.out); err != nil {
				return fmt.Errorf("clear screen: %w: %w", tui.ErrDisplayWrite, err)
			}
			return nil
		}
	}
}

// Handle applies one key and reports whether it was the quit key.
func (e *Editor) Handle(k key.Key) (quit bool) {
	if k.Type == key.KeyByte {
		if k.Byte == e.quit {
			return true
		}
		if e.wasd {
			k = wasdKey(k.Byte)
		}
	}
	if k.IsDirection() {
		e.move(k.Type)
	}
	return false
}

func (e *Editor) move(dir key.KeyType) {
	switch dir {
	case key.KeyUp:
		e.cursor.Row--
	case key.KeyDown:
		e.cursor.Row++
	case key.KeyLeft:
		e.cursor.Col--
	case key.KeyRight:
		e.cursor.Col++
	}
	e.cursor.Row = clamp(e.cursor.Row, e.dims.Rows-1)
	e.cursor.Col = clamp(e.cursor.Col, e.dims.Cols-1)
}

func (e *Editor) fail(err error) error {
	e.state = StateTerminated
	return err
}

func wasdKey(b byte) key.Key {
	switch b {
	case 'w':
		return key.Key{Type: key.KeyUp}
	case 'a':
		return key.Key{Type: key.KeyLeft}
	case 's':
		return key.Key{Type: key.KeyDown}
	case 'd':
		return key.Key{Type: key.KeyRight}
	}
	return key.Byte(b)
}

// clamp bounds v to [0, hi]; a negative hi pins v to 0.
func clamp(v, hi int) int {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}
