// ABOUTME: Defines the Terminal interface for raw mode, size queries, input, and output.
// ABOUTME: Abstracts terminal operations so implementations can target real or virtual terminals.

package terminal

// Terminal abstracts low-level terminal operations: raw mode,
// size queries, raw input reads, and output writing.
//
// Read follows the raw-mode timeout policy: it returns (0, nil) when
// no byte arrived within the read window.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
}
