package modlist

import (
	"strings"
	"unicode"
)

// NaturalCompare compares strings case-insensitively, treating runs of
// digits as numbers so that "mod2" sorts before "mod10". Equal strings under
// that rule fall back to a byte comparison to keep the order total.
func NaturalCompare(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	i, j := 0, 0
	for i < len(la) && j < len(lb) {
		ca, cb := rune(la[i]), rune(lb[j])
		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			si := i
			for i < len(la) && unicode.IsDigit(rune(la[i])) {
				i++
			}
			sj := j
			for j < len(lb) && unicode.IsDigit(rune(lb[j])) {
				j++
			}
			if c := compareDigits(la[si:i], lb[sj:j]); c != 0 {
				return c
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(la)-i < len(lb)-j:
		return -1
	case len(la)-i > len(lb)-j:
		return 1
	}
	return strings.Compare(a, b)
}

// compareDigits compares two digit runs by numeric value.
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
