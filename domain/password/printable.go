package password

import (
	"math"
	"strings"
)

// CharAt maps one uniform value to a printable byte. Values outside [0,1]
// are clamped and NaN counts as 0. u == 1 wraps to index 0.
func CharAt(u float64) byte {
	switch {
	case math.IsNaN(u) || u < 0:
		u = 0
	case u > 1:
		u = 1
	}
	idx := int(math.Floor(u*CharsetSize)) % CharsetSize
	return byte(CharsetStart + idx)
}

// MapToPrintable maps each uniform value to one character, order preserved.
func MapToPrintable(uniform []float64) string {
	var b strings.Builder
	b.Grow(len(uniform))
	for _, u := range uniform {
		b.WriteByte(CharAt(u))
	}
	return b.String()
}

// InCharset reports whether every byte of s is in the printable set.
func InCharset(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < CharsetStart || s[i] > CharsetEnd {
			return false
		}
	}
	return true
}
