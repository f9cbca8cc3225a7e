// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Captures output, replays queued input, answers cursor reports, and injects failures.

package terminal

import (
	"bytes"
	"fmt"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests.
// It records written output, serves queued input, and tracks raw-mode
// transitions. An empty input queue behaves like an elapsed read timeout.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	input      []byte
	width      int
	height     int
	rawMode    bool
	enterCount int
	exitCount  int
	writeCount int

	sizeErr    error
	readErr    error
	writeErr   error
	enterErr   error
	exitErr    error
	writeLimit int

	reportRow int
	reportCol int
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:  width,
		height: height,
	}
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.enterErr != nil {
		return v.enterErr
	}
	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.exitCount++
	if v.exitErr != nil {
		return v.exitErr
	}
	v.rawMode = false
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sizeErr != nil {
		return 0, 0, v.sizeErr
	}
	return v.width, v.height, nil
}

// Read serves queued input. With nothing queued it returns (0, nil), or
// the configured read error.
func (v *VirtualTerminal) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.input) == 0 {
		return 0, v.readErr
	}
	n := copy(p, v.input)
	v.input = v.input[n:]
	return n, nil
}

// Write appends data to the internal buffer. A configured write limit
// truncates the write to simulate a short write.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writeCount++
	if v.writeErr != nil {
		return 0, v.writeErr
	}
	if v.writeLimit > 0 && len(p) > v.writeLimit {
		p = p[:v.writeLimit]
	}
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	if v.reportRow > 0 && bytes.Contains(p, []byte(RequestCursorSeq)) {
		v.input = fmt.Appendf(v.input, "\x1b[%d;%dR", v.reportRow, v.reportCol)
	}
	return n, nil
}

// --- Test helpers (not part of Terminal interface) ---

// Feed queues bytes to be returned by subsequent Read calls.
func (v *VirtualTerminal) Feed(data []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.input = append(v.input, data...)
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times EnterRawMode succeeded.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// WriteCount returns how many times Write was called.
func (v *VirtualTerminal) WriteCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.writeCount
}

// SetSize updates the terminal dimensions.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = width
	v.height = height
}

// SetSizeError makes Size fail with err.
func (v *VirtualTerminal) SetSizeError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sizeErr = err
}

// SetReadError makes Read fail with err once the input queue is drained.
func (v *VirtualTerminal) SetReadError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.readErr = err
}

// SetWriteError makes every Write fail with err.
func (v *VirtualTerminal) SetWriteError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writeErr = err
}

// SetWriteLimit caps how many bytes a single Write accepts; zero disables it.
func (v *VirtualTerminal) SetWriteLimit(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writeLimit = n
}

// SetRawModeErrors makes EnterRawMode and ExitRawMode fail with the given errors.
func (v *VirtualTerminal) SetRawModeErrors(enterErr, exitErr error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.enterErr = enterErr
	v.exitErr = exitErr
}

// SetCursorReport makes the terminal answer every cursor position request
// with ESC [ row ; col R. A non-positive row disables the reply.
func (v *VirtualTerminal) SetCursorReport(row, col int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.reportRow = row
	v.reportCol = col
}
