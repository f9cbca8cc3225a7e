// ABOUTME: Sentinel errors for terminal mode transitions and viewport queries.
// ABOUTME: Callers classify failures with errors.Is; all of them are fatal to the editor.

package terminal

import "errors"

var (
	// ErrTerminalQuery reports a failure to read the terminal attributes.
	ErrTerminalQuery = errors.New("terminal query")

	// ErrTerminalConfig reports a failure to apply or restore terminal attributes.
	ErrTerminalConfig = errors.New("terminal config")

	// ErrDimensionQuery reports that neither the size ioctl nor the
	// cursor-report fallback produced usable viewport dimensions.
	ErrDimensionQuery = errors.New("dimension query")
)
