// ABOUTME: Session is the scoped guard around raw mode: Acquire enters it, Release restores it once.
// ABOUTME: Callers defer Release so every exit route, fatal errors included, leaves the terminal cooked.

package terminal

import (
	"io"
	"sync"
)

// Session owns a Terminal for the span between raw-mode entry and exit.
type Session struct {
	term Terminal
	once sync.Once
	err  error
}

// Acquire switches t into raw mode and returns the guard that undoes it.
// On failure the terminal was not altered and there is nothing to release.
func Acquire(t Terminal) (*Session, error) {
	if err := t.EnterRawMode(); err != nil {
		return nil, err
	}
	return &Session{term: t}, nil
}

// Release restores the captured terminal state. Only the first call
// touches the terminal; later calls return the first result.
func (s *Session) Release() error {
	s.once.Do(func() {
		s.err = s.term.ExitRawMode()
	})
	return s.err
}

// ClearScreen erases the display and homes the cursor.
func ClearScreen(w io.Writer) error {
	return writeAll(w, ClearScreenSeq+CursorHomeSeq)
}

// writeAll writes s in one call and reports a short write as an error.
func writeAll(w io.Writer, s string) error {
	n, err := io.WriteString(w, s)
	if err != nil {
		return err
	}
	if n != len(s) {
		return io.ErrShortWrite
	}
	return nil
}
