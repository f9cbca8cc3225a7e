// ABOUTME: Termios ioctl request numbers for Darwin and the BSDs.
// ABOUTME: The write request applies settings only after pending output drains and unread input is discarded.

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETAF // drain output, discard pending input, then apply
)
