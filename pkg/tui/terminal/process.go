// ABOUTME: ProcessTerminal implements Terminal over real file descriptors using x/sys termios and x/term.
// ABOUTME: Captures the original termios once, applies the raw configuration, and restores it exactly.

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ProcessTerminal is a real terminal backed by an input and an output file,
// normally os.Stdin and os.Stdout.
type ProcessTerminal struct {
	mu          sync.Mutex
	in          *os.File
	out         *os.File
	inFd        int
	outFd       int
	readTimeout uint8
	oldState    *unix.Termios
}

// NewProcessTerminal returns a ProcessTerminal on os.Stdin and os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return NewFileTerminal(os.Stdin, os.Stdout)
}

// NewFileTerminal returns a ProcessTerminal reading from in and writing to out.
// Fd() puts both descriptors in blocking mode, which the VMIN/VTIME read
// policy depends on.
func NewFileTerminal(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{
		in:          in,
		out:         out,
		inFd:        int(in.Fd()),
		outFd:       int(out.Fd()),
		readTimeout: DefaultReadTimeout,
	}
}

// SetReadTimeout sets the VTIME value (deciseconds) used by the next
// EnterRawMode. Zero selects DefaultReadTimeout.
func (t *ProcessTerminal) SetReadTimeout(deciseconds uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.readTimeout = deciseconds
}

// EnterRawMode captures the current termios and applies the raw
// configuration. Calling it while already raw is a no-op.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState != nil {
		return nil
	}
	if !term.IsTerminal(t.inFd) {
		return fmt.Errorf("%w: %s is not a terminal", ErrTerminalQuery, t.in.Name())
	}

	orig, err := unix.IoctlGetTermios(t.inFd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("%w: tcgetattr: %w", ErrTerminalQuery, err)
	}

	raw := makeRaw(*orig, t.readTimeout)
	if err := unix.IoctlSetTermios(t.inFd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("%w: tcsetattr: %w", ErrTerminalConfig, err)
	}
	t.oldState = orig
	return nil
}

// ExitRawMode restores the termios captured by EnterRawMode.
// It is a no-op when raw mode is not active.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(t.inFd, ioctlWriteTermios, t.oldState); err != nil {
		return fmt.Errorf("%w: restoring tcsetattr: %w", ErrTerminalConfig, err)
	}
	t.oldState = nil
	return nil
}

// IsRawMode reports whether a captured state is waiting to be restored.
func (t *ProcessTerminal) IsRawMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.oldState != nil
}

// Size returns the current terminal dimensions of the output descriptor.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(t.outFd)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Read performs a single read(2) on the input descriptor. In raw mode it
// returns (0, nil) when the VTIME window elapses with no input.
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	n, err := unix.Read(t.inFd, p)
	if n < 0 {
		n = 0
	}
	if err != nil {
		return n, fmt.Errorf("reading %s: %w", t.in.Name(), err)
	}
	return n, nil
}

// Write sends bytes to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to %s: %w", t.out.Name(), err)
	}
	return n, nil
}
