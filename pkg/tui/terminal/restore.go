// ABOUTME: RestoreOnPanic recovers from panics, restores the terminal, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the main goroutine.

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred at the top of main (or any
// goroutine that owns the terminal). On panic it clears the screen,
// shows the cursor, exits raw mode via the provided Terminal, prints
// the panic value and stack trace, then exits with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	recoverTerminal(t)

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// recoverTerminal is the best-effort cleanup shared by the panic path:
// errors are ignored because the process is already going down.
func recoverTerminal(t Terminal) {
	_, _ = t.Write([]byte(ClearScreenSeq + CursorHomeSeq + ShowCursorSeq))
	_ = t.ExitRawMode()
}
