// ABOUTME: Termios ioctl request numbers for Linux.
// ABOUTME: The write request applies settings only after pending output drains and unread input is discarded.

//go:build linux

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TCGETS
	ioctlWriteTermios = unix.TCSETSF // drain output, discard pending input, then apply
)
