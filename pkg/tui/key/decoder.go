// ABOUTME: Decoder turns a raw-mode byte stream into Key events, one key per call.
// ABOUTME: Retries silently on empty reads and resolves ESC with one bounded read per follow-up byte.

package key

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/mauromedda/texdi/internal/log"
)

// ErrInputRead reports a read failure other than "no data yet".
var ErrInputRead = errors.New("input read")

// seqLen is the length of the escape sequences the decoder resolves.
const seqLen = 3

// Decoder reads keys from r. The reader is expected to follow the raw-mode
// timeout policy: a read with nothing available returns (0, nil) (or
// EAGAIN/EINTR) after a short wait instead of blocking forever.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey waits for the next key. Empty reads are retried until a byte
// arrives or ctx is done. A byte other than ESC is returned as-is. After
// ESC, each of the two follow-up bytes gets exactly one read attempt;
// if either attempt yields nothing the key is KeyUnknownEscape.
func (d *Decoder) ReadKey(ctx context.Context) (Key, error) {
	b, err := d.readByte(ctx)
	if err != nil {
		return Key{}, err
	}
	if b != Escape {
		return Byte(b), nil
	}

	seq := [seqLen]byte{Escape}
	for i := 1; i < seqLen; i++ {
		c, ok := d.tryReadByte()
		if !ok {
			return Key{Type: KeyUnknownEscape}, nil
		}
		seq[i] = c
	}
	return Parse(seq[:]), nil
}

// readByte polls the reader until it yields one byte.
func (d *Decoder) readByte(ctx context.Context) (byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := d.r.Read(d.buf[:])
		if n == 1 {
			return d.buf[0], nil
		}
		if err == nil || isNoData(err) {
			continue
		}
		return 0, fmt.Errorf("%w: %w", ErrInputRead, err)
	}
}

// tryReadByte makes a single read attempt, bounded by the reader's timeout.
// A failed attempt ends the sequence; a persistent error surfaces on the
// next readByte.
func (d *Decoder) tryReadByte() (byte, bool) {
	n, err := d.r.Read(d.buf[:])
	if n != 1 {
		if err != nil && !isNoData(err) {
			log.Debug("escape follow-up read failed: %v", err)
		}
		return 0, false
	}
	return d.buf[0], true
}

// isNoData reports the benign conditions a pollable read may return
// when no input arrived in time.
func isNoData(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EINTR)
}
