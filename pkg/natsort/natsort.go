// Package natsort orders strings so that embedded numbers compare by value:
// "NET2" sorts before "NET10".
package natsort

import (
	"sort"
	"strings"
)

// Chunk is one run of a natural sort key. Chunks at even positions of a Key
// are text runs, chunks at odd positions are digit runs.
type Chunk struct {
	Text  string
	Digit bool
}

// Key is the natural sort key of a string.
type Key []Chunk

// NewKey splits s into alternating text and digit runs. Like a regexp split
// on `(\d+)`, the key always starts and ends with a (possibly empty) text
// run, so chunk kinds line up position by position between any two keys.
func NewKey(s string) Key {
	key := Key{}
	start := 0
	digit := false
	for i := 0; i < len(s); i++ {
		isDigit := s[i] >= '0' && s[i] <= '9'
		if isDigit == digit {
			continue
		}
		key = append(key, Chunk{Text: s[start:i], Digit: digit})
		start = i
		digit = isDigit
	}
	key = append(key, Chunk{Text: s[start:], Digit: digit})
	if digit {
		key = append(key, Chunk{})
	}
	return key
}

// Compare returns -1, 0 or +1 depending on whether k sorts before, equal to
// or after other.
func (k Key) Compare(other Key) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		var c int
		if k[i].Digit && other[i].Digit {
			c = compareDigits(k[i].Text, other[i].Text)
		} else {
			c = strings.Compare(k[i].Text, other[i].Text)
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	}
	return 0
}

// compareDigits compares two runs of ASCII digits by numeric value without
// converting them, so arbitrarily long runs never overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Compare compares two strings in natural order.
func Compare(a, b string) int {
	return NewKey(a).Compare(NewKey(b))
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// CompareSlices compares two string tuples column by column in natural order.
func CompareSlices(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// Strings sorts s in place in natural order. Equal keys keep their
// relative order.
func Strings(s []string) {
	keys := make([]Key, len(s))
	for i, v := range s {
		keys[i] = NewKey(v)
	}
	sort.Stable(byKey{s: s, keys: keys})
}

type byKey struct {
	s    []string
	keys []Key
}

func (b byKey) Len() int           { return len(b.s) }
func (b byKey) Less(i, j int) bool { return b.keys[i].Compare(b.keys[j]) < 0 }
func (b byKey) Swap(i, j int) {
	b.s[i], b.s[j] = b.s[j], b.s[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
