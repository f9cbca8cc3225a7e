// ABOUTME: Viewport size discovery: the size ioctl first, then a cursor-report fallback.
// ABOUTME: The fallback parks the cursor bottom-right and parses the ESC [ rows ; cols R reply.

package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// maxCursorReport bounds how many reply bytes are read while waiting for 'R'.
const maxCursorReport = 32

// Dimensions is the viewport size in character cells.
type Dimensions struct {
	Rows int
	Cols int
}

// QueryDimensions returns the viewport size of t. It prefers t.Size and
// falls back to the cursor report when the size query fails or reports
// zero columns.
func QueryDimensions(t Terminal) (Dimensions, error) {
	w, h, sizeErr := t.Size()
	if sizeErr == nil && w > 0 {
		return Dimensions{Rows: h, Cols: w}, nil
	}

	d, err := cursorDimensions(t)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %w", ErrDimensionQuery, errors.Join(sizeErr, err))
	}
	return d, nil
}

// cursorDimensions moves the cursor as far right and down as the terminal
// allows and reads back where it landed.
func cursorDimensions(t Terminal) (Dimensions, error) {
	if err := writeAll(t, MoveBottomRightSeq); err != nil {
		return Dimensions{}, fmt.Errorf("moving cursor to bottom-right: %w", err)
	}
	row, col, err := CursorPosition(t)
	if err != nil {
		return Dimensions{}, err
	}
	return Dimensions{Rows: row, Cols: col}, nil
}

// CursorPosition sends the device status report request and parses the
// reply. Reading stops at 'R', at the first read that yields no byte, or
// when the reply buffer is full.
func CursorPosition(t Terminal) (row, col int, err error) {
	if err := writeAll(t, RequestCursorSeq); err != nil {
		return 0, 0, fmt.Errorf("requesting cursor position: %w", err)
	}

	var reply [maxCursorReport]byte
	var b [1]byte
	n := 0
	for n < len(reply)-1 {
		m, rerr := t.Read(b[:])
		if rerr != nil || m != 1 || b[0] == 'R' {
			break
		}
		reply[n] = b[0]
		n++
	}
	return parseCursorReport(reply[:n])
}

// parseCursorReport parses "ESC [ rows ; cols" (the terminating 'R'
// already stripped).
func parseCursorReport(reply []byte) (row, col int, err error) {
	if len(reply) < 2 || reply[0] != 0x1b || reply[1] != '[' {
		return 0, 0, fmt.Errorf("malformed cursor report %q", reply)
	}
	rowPart, colPart, ok := bytes.Cut(reply[2:], []byte{';'})
	if !ok {
		return 0, 0, fmt.Errorf("malformed cursor report %q: missing ';'", reply)
	}
	row, err = strconv.Atoi(string(rowPart))
	if err != nil {
		return 0, 0, fmt.Errorf("parsing cursor report row: %w", err)
	}
	col, err = strconv.Atoi(string(colPart))
	if err != nil {
		return 0, 0, fmt.Errorf("parsing cursor report column: %w", err)
	}
	if row <= 0 || col <= 0 {
		return 0, 0, fmt.Errorf("cursor report out of range: %d;%d", row, col)
	}
	return row, col, nil
}
