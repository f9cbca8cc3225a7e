// ABOUTME: VisibleWidth and Truncate compute display widths with grapheme-aware segmentation.
// ABOUTME: Fast path for pure ASCII, where one byte is one column.

package width

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisibleWidth returns the display width of s. Grapheme clusters may be
// wider than one cell for East Asian characters and emoji.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
		s = rest
		state = newState
	}
	return w
}

// Truncate returns the longest prefix of s whose display width is at most
// maxWidth, never splitting a grapheme cluster. For plain ASCII this is
// exactly the first maxWidth bytes.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) > maxWidth {
			return s[:maxWidth]
		}
		return s
	}

	w, end := 0, 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		cw := graphemeWidth(cluster)
		if w+cw > maxWidth {
			break
		}
		w += cw
		end += len(cluster)
		rest = next
		state = newState
	}
	return s[:end]
}

// isPlainASCII returns true if s contains only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// graphemeWidth returns the display width of a single grapheme cluster.
func graphemeWidth(cluster string) int {
	if len(cluster) == 0 {
		return 0
	}
	// Decode the first rune without allocating a []rune slice.
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
