// ABOUTME: Defines the Key type and Parse for raw terminal keyboard input.
// ABOUTME: A Key is a literal byte, one of four arrow directions, or an unrecognized escape.

package key

import "fmt"

// Escape is the byte that introduces terminal escape sequences.
const Escape byte = 0x1b

// Key represents a decoded keyboard input event.
type Key struct {
	Type KeyType
	Byte byte // For KeyByte
}

// KeyType enumerates the kinds of key events the editor can receive.
// KeyUnknownEscape is its own tag so it never collides with a byte value.
type KeyType int

const (
	KeyByte          KeyType = iota // Printable or control character
	KeyUp                           // Arrow up
	KeyDown                         // Arrow down
	KeyRight                        // Arrow right
	KeyLeft                         // Arrow left
	KeyUnknownEscape                // ESC input that is not a recognized sequence
)

// Ctrl returns the byte a terminal sends for Ctrl+letter: the letter
// masked to its low five bits, so Ctrl('q') == 0x11.
func Ctrl(letter byte) byte {
	return letter & 0x1f
}

// Byte returns the Key for a literal input byte.
func Byte(b byte) Key {
	return Key{Type: KeyByte, Byte: b}
}

// IsDirection reports whether k is one of the four arrow keys.
func (k Key) IsDirection() bool {
	switch k.Type {
	case KeyUp, KeyDown, KeyRight, KeyLeft:
		return true
	}
	return false
}

// Parse resolves one consumed input sequence: either a single non-ESC
// byte, or ESC followed by the bytes read after it. Anything ESC-prefixed
// that the sequence table does not know, including a lone ESC, is
// KeyUnknownEscape.
func Parse(seq []byte) Key {
	if len(seq) == 1 && seq[0] != Escape {
		return Byte(seq[0])
	}
	if k, ok := legacySequences[string(seq)]; ok {
		return k
	}
	return Key{Type: KeyUnknownEscape}
}

// keyTypeNames provides human-readable labels for each non-byte KeyType.
var keyTypeNames = map[KeyType]string{
	KeyUp:            "Up",
	KeyDown:          "Down",
	KeyRight:         "Right",
	KeyLeft:          "Left",
	KeyUnknownEscape: "UnknownEscape",
}

// String returns a human-readable representation of the Key for debug logging.
func (k Key) String() string {
	if k.Type == KeyByte {
		return formatByte(k.Byte)
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "Unknown"
}

// formatByte names control characters the way terminals document them.
func formatByte(b byte) string {
	switch {
	case b == 0x7f:
		return "DEL"
	case b == Escape:
		return "ESC"
	case b < 0x20:
		return fmt.Sprintf("Ctrl+%c", b|0x40)
	case b < 0x7f:
		return string(rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
