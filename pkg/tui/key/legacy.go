// ABOUTME: Legacy CSI escape sequence table for the arrow keys.
// ABOUTME: Maps the full ESC [ X sequence to its Key; everything else is an unknown escape.

package key

// legacySequences maps the three-byte CSI arrow sequences to Key values.
var legacySequences = map[string]Key{
	"\x1b[A": {Type: KeyUp},
	"\x1b[B": {Type: KeyDown},
	"\x1b[C": {Type: KeyRight},
	"\x1b[D": {Type: KeyLeft},
}
