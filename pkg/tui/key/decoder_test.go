// ABOUTME: Tests for Decoder against a scripted reader that models raw-mode read timeouts.
// ABOUTME: Covers arrows, lone ESC, truncated sequences, benign retries, and fatal read errors.

package key

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/mauromedda/texdi/internal/log"
)

// step is one scripted Read result.
type step struct {
	data []byte
	err  error
}

// scriptedReader replays steps in order; once exhausted it behaves like an
// elapsed VTIME window and returns (0, nil) forever.
type scriptedReader struct {
	steps []step
	reads int
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	r.reads++
	if len(r.steps) == 0 {
		return 0, nil
	}
	s := r.steps[0]
	n := copy(p, s.data)
	if n < len(s.data) {
		r.steps[0].data = s.data[n:]
		return n, nil
	}
	r.steps = r.steps[1:]
	return n, s.err
}

// bytesReader scripts one byte per Read call.
func bytesReader(data string) *scriptedReader {
	r := &scriptedReader{}
	for i := 0; i < len(data); i++ {
		r.steps = append(r.steps, step{data: []byte{data[i]}})
	}
	return r
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestDecoder_ReadKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{name: "arrow up", input: "\x1b[A", want: []Key{{Type: KeyUp}}},
		{name: "arrow down", input: "\x1b[B", want: []Key{{Type: KeyDown}}},
		{name: "arrow right", input: "\x1b[C", want: []Key{{Type: KeyRight}}},
		{name: "arrow left", input: "\x1b[D", want: []Key{{Type: KeyLeft}}},
		{name: "plain bytes", input: "hi", want: []Key{Byte('h'), Byte('i')}},
		{name: "quit byte", input: "\x11", want: []Key{Byte(0x11)}},
		{name: "unknown CSI final", input: "\x1b[Zx", want: []Key{{Type: KeyUnknownEscape}, Byte('x')}},
		{name: "non CSI escape consumes two bytes", input: "\x1bOAz", want: []Key{{Type: KeyUnknownEscape}, Byte('z')}},
		{name: "sequence then byte", input: "\x1b[Cq", want: []Key{{Type: KeyRight}, Byte('q')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := testContext(t)
			d := NewDecoder(bytesReader(tt.input))

			for i, want := range tt.want {
				got, err := d.ReadKey(ctx)
				if err != nil {
					t.Fatalf("ReadKey() #%d unexpected error: %v", i, err)
				}
				if got != want {
					t.Errorf("ReadKey() #%d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestDecoder_WholeSequenceInOneRead(t *testing.T) {
	t.Parallel()

	// A terminal usually delivers the whole sequence at once; the decoder
	// still consumes it one byte per read.
	r := &scriptedReader{steps: []step{{data: []byte("\x1b[Ab")}}}
	d := NewDecoder(r)
	ctx := testContext(t)

	got, err := d.ReadKey(ctx)
	if err != nil || got.Type != KeyUp {
		t.Fatalf("ReadKey() = %v, %v; want Up", got, err)
	}
	got, err = d.ReadKey(ctx)
	if err != nil || got != Byte('b') {
		t.Fatalf("ReadKey() = %v, %v; want b", got, err)
	}
}

func TestDecoder_LoneEscapeDoesNotBlock(t *testing.T) {
	t.Parallel()

	r := bytesReader("\x1b")
	d := NewDecoder(r)

	got, err := d.ReadKey(testContext(t))
	if err != nil {
		t.Fatalf("ReadKey() unexpected error: %v", err)
	}
	if got.Type != KeyUnknownEscape {
		t.Errorf("ReadKey() = %v, want UnknownEscape", got)
	}
	// ESC itself plus exactly one empty follow-up attempt.
	if r.reads != 2 {
		t.Errorf("reads = %d, want 2", r.reads)
	}
}

func TestDecoder_TruncatedSequence(t *testing.T) {
	t.Parallel()

	r := bytesReader("\x1b[")
	d := NewDecoder(r)

	got, err := d.ReadKey(testContext(t))
	if err != nil {
		t.Fatalf("ReadKey() unexpected error: %v", err)
	}
	if got.Type != KeyUnknownEscape {
		t.Errorf("ReadKey() = %v, want UnknownEscape", got)
	}
	if r.reads != 3 {
		t.Errorf("reads = %d, want 3", r.reads)
	}
}

// captureLog routes debug logging into a buffer for one test. Tests using
// it share global logger state and must not run in parallel.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOut := log.SetOutput(&buf)
	prevLevel := log.GetLevel()
	log.SetLevel(log.LevelDebug)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetLevel(prevLevel)
	})
	return &buf
}

func TestDecoder_FollowUpErrorIsUnknownEscape(t *testing.T) {
	logs := captureLog(t)

	r := &scriptedReader{steps: []step{
		{data: []byte{Escape}},
		{err: errors.New("EIO")},
	}}
	d := NewDecoder(r)

	got, err := d.ReadKey(testContext(t))
	if err != nil {
		t.Fatalf("ReadKey() unexpected error: %v", err)
	}
	if got.Type != KeyUnknownEscape {
		t.Errorf("ReadKey() = %v, want UnknownEscape", got)
	}
	if !strings.Contains(logs.String(), "escape follow-up read failed: EIO") {
		t.Errorf("debug log = %q, want the swallowed follow-up error", logs.String())
	}
}

func TestDecoder_FollowUpTimeoutIsNotLogged(t *testing.T) {
	logs := captureLog(t)

	r := &scriptedReader{steps: []step{
		{data: []byte{Escape}},
		{err: syscall.EAGAIN},
	}}
	d := NewDecoder(r)

	if got, err := d.ReadKey(testContext(t)); err != nil || got.Type != KeyUnknownEscape {
		t.Fatalf("ReadKey() = %v, %v; want UnknownEscape", got, err)
	}
	if logs.Len() != 0 {
		t.Errorf("debug log = %q, want nothing for an empty read window", logs.String())
	}
}

func TestDecoder_RetriesBenignConditions(t *testing.T) {
	t.Parallel()

	r := &scriptedReader{steps: []step{
		{},
		{err: syscall.EAGAIN},
		{err: syscall.EINTR},
		{},
		{data: []byte("x")},
	}}
	d := NewDecoder(r)

	got, err := d.ReadKey(testContext(t))
	if err != nil {
		t.Fatalf("ReadKey() unexpected error: %v", err)
	}
	if got != Byte('x') {
		t.Errorf("ReadKey() = %v, want x", got)
	}
	if r.reads != 5 {
		t.Errorf("reads = %d, want 5", r.reads)
	}
}

func TestDecoder_FatalReadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "closed stream", err: io.EOF},
		{name: "io error", err: syscall.EIO},
		{name: "arbitrary", err: errors.New("device gone")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := NewDecoder(&scriptedReader{steps: []step{{err: tt.err}}})

			_, err := d.ReadKey(testContext(t))
			if !errors.Is(err, ErrInputRead) {
				t.Fatalf("ReadKey() error = %v, want ErrInputRead", err)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("ReadKey() error = %v, want it to wrap %v", err, tt.err)
			}
		})
	}
}

func TestDecoder_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	d := NewDecoder(&scriptedReader{})
	_, err := d.ReadKey(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("ReadKey() error = %v, want context.DeadlineExceeded", err)
	}
}
