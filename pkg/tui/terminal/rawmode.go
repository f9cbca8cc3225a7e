// ABOUTME: Derives the raw-mode termios from a captured original configuration.
// ABOUTME: Pure function so the flag arithmetic is testable without a TTY.

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

// DefaultReadTimeout is the VTIME value (deciseconds) used when none is
// configured: a read returns after at most ~100ms.
const DefaultReadTimeout = 1

// makeRaw returns a copy of orig with byte-at-a-time, non-echoing,
// signal-free input and unprocessed output. VMIN=0 with VTIME=readTimeout
// makes every read return after the timeout with whatever is available,
// possibly nothing.
func makeRaw(orig unix.Termios, readTimeout uint8) unix.Termios {
	raw := orig

	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG

	if readTimeout == 0 {
		readTimeout = DefaultReadTimeout
	}
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = readTimeout

	return raw
}
