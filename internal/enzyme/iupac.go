package enzyme

import (
	"fmt"

	"cloneplan/internal/seq"
)

// 4-bit mask per IUPAC code, one bit per concrete base
var codeMap = map[byte]uint8{
	'A': 1 << 0,
	'C': 1 << 1,
	'G': 1 << 2,
	'T': 1 << 3,
	'R': (1 << 0) | (1 << 2),
	'Y': (1 << 1) | (1 << 3),
	'S': (1 << 1) | (1 << 2),
	'W': (1 << 0) | (1 << 3),
	'K': (1 << 2) | (1 << 3),
	'M': (1 << 0) | (1 << 1),
	'B': (1 << 1) | (1 << 2) | (1 << 3),
	'D': (1 << 0) | (1 << 2) | (1 << 3),
	'H': (1 << 0) | (1 << 1) | (1 << 3),
	'V': (1 << 0) | (1 << 1) | (1 << 2),
	'N': (1 << 0) | (1 << 1) | (1 << 2) | (1 << 3),
}

// complement of each single-base bit, A<->T and C<->G
var compBit = map[uint8]uint8{
	1 << 0: 1 << 3,
	1 << 1: 1 << 2,
	1 << 2: 1 << 1,
	1 << 3: 1 << 0,
}

// Matches returns whether an IUPAC code admits a concrete base,
// eg Matches('R', 'G') == true.
func Matches(code, base byte) bool {
	if code >= 'a' && code <= 'z' {
		code -= 'a' - 'A'
	}
	if base >= 'a' && base <= 'z' {
		base -= 'a' - 'A'
	}
	return codeMap[code]&codeMap[base] != 0
}

// CompileMotif converts an IUPAC motif to per-position bit-masks.
// A character outside the IUPAC alphabet is an ErrInvalidMotif.
func CompileMotif(motif string) ([]uint8, error) {
	masks := make([]uint8, len(motif))
	for i := 0; i < len(motif); i++ {
		c := motif[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		m, ok := codeMap[c]
		if !ok {
			return nil, fmt.Errorf("%w: %q at index %d of %s", ErrInvalidMotif, motif[i], i, motif)
		}
		masks[i] = m
	}
	return masks, nil
}

// matchAt returns whether the compiled motif matches bases[pos:].
// bases may itself hold IUPAC codes. A degenerate base matches a motif
// position when the two share at least one concrete base.
func matchAt(masks []uint8, bases string, pos int) bool {
	for i, m := range masks {
		b := bases[pos+i]
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		if m&codeMap[b] == 0 {
			return false
		}
	}
	return true
}

// FindAll returns the ascending start positions of every overlapping match
// of motif in s. On circular sequences, occurrences that wrap the origin
// are found by scanning a virtually doubled sequence; positions are
// reported mod length and deduplicated.
func FindAll(s seq.Seq, motif string) ([]int, error) {
	masks, err := CompileMotif(motif)
	if err != nil {
		return nil, err
	}

	n := s.Len()
	if n == 0 || len(masks) > n {
		return nil, nil
	}

	bases := s.Bases
	limit := n - len(masks)
	if s.Topology == seq.Circular {
		// doubled scan catches matches across the origin. every start
		// index stays below n so nothing is counted twice
		bases += s.Bases
		limit = n - 1
	}

	var positions []int
	for pos := 0; pos <= limit; pos++ {
		if matchAt(masks, bases, pos) {
			positions = append(positions, pos)
		}
	}
	return positions, nil
}

// TemplatesCompatible returns whether two IUPAC overhang templates could
// anneal: same length and every aligned position shares at least one
// concrete base with the complement of its partner. b is read 3'->5'
// against a, ie reversed.
func TemplatesCompatible(a, b string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}

	for i := 0; i < len(a); i++ {
		am := codeMap[upper(a[i])]
		bm := codeMap[upper(b[len(b)-1-i])]

		// complement b's mask bit by bit
		var bc uint8
		for bit, comp := range compBit {
			if bm&bit != 0 {
				bc |= comp
			}
		}

		if am&bc == 0 {
			return false
		}
	}
	return true
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}
