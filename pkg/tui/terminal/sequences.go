// ABOUTME: ANSI/VT escape sequences the editor emits or parses.
// ABOUTME: Shared by the renderer, the dimension fallback, and the session guard.

package terminal

import "strconv"

const (
	ClearScreenSeq     = "\x1b[2J"
	CursorHomeSeq      = "\x1b[H"
	EraseLineSeq       = "\x1b[K"
	HideCursorSeq      = "\x1b[?25l"
	ShowCursorSeq      = "\x1b[?25h"
	RequestCursorSeq   = "\x1b[6n"
	MoveBottomRightSeq = "\x1b[999C\x1b[999B"
)

// AppendCursorPosition appends ESC [ row ; col H to dst.
// row and col are 1-based, as the terminal expects.
func AppendCursorPosition(dst []byte, row, col int) []byte {
	dst = append(dst, "\x1b["...)
	dst = strconv.AppendInt(dst, int64(row), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col), 10)
	return append(dst, 'H')
}
