// ABOUTME: Pooled frame buffer for full-screen redraws; recycled via sync.Pool
// ABOUTME: One frame's escape codes and content accumulate here and leave in a single write

package tui

import (
	"bytes"
	"errors"
	"sync"
)

// ErrOutOfMemory reports that a frame could not grow. A half-built frame
// must never be flushed.
var ErrOutOfMemory = errors.New("frame buffer out of memory")

var framePool = sync.Pool{
	New: func() any {
		return new(FrameBuffer)
	},
}

// AcquireFrame gets an empty FrameBuffer from the pool.
func AcquireFrame() *FrameBuffer {
	f := framePool.Get().(*FrameBuffer)
	f.Reset()
	return f
}

// ReleaseFrame returns a FrameBuffer to the pool.
func ReleaseFrame(f *FrameBuffer) {
	if f == nil {
		return
	}
	f.Reset()
	framePool.Put(f)
}

// FrameBuffer is an append-only byte accumulator for one frame.
type FrameBuffer struct {
	buf bytes.Buffer
}

// Append adds p to the frame.
func (f *FrameBuffer) Append(p []byte) (err error) {
	defer recoverTooLarge(&err)
	f.buf.Write(p)
	return nil
}

// AppendString adds s to the frame.
func (f *FrameBuffer) AppendString(s string) (err error) {
	defer recoverTooLarge(&err)
	f.buf.WriteString(s)
	return nil
}

// Bytes returns the accumulated frame. The slice is valid until the next
// append or Reset.
func (f *FrameBuffer) Bytes() []byte {
	return f.buf.Bytes()
}

// Len returns the number of accumulated bytes.
func (f *FrameBuffer) Len() int {
	return f.buf.Len()
}

// Reset clears the frame for reuse without deallocating.
func (f *FrameBuffer) Reset() {
	f.buf.Reset()
}

// recoverTooLarge converts the bytes.Buffer growth panic into ErrOutOfMemory.
func recoverTooLarge(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok && errors.Is(e, bytes.ErrTooLarge) {
		*err = ErrOutOfMemory
		return
	}
	panic(r)
}
