// Package seq holds the immutable sequence value type shared by the
// digestion and planning packages, plus the circular-aware slicing and
// reverse-complement helpers everything else leans on.
package seq

import (
	"errors"
	"fmt"
	"strings"
)

// Topology is whether a sequence's ends are free or joined.
type Topology int

const (
	// Linear DNA with two free termini
	Linear Topology = iota

	// Circular DNA, e.g. a plasmid. Index arithmetic wraps mod length
	Circular
)

func (t Topology) String() string {
	if t == Circular {
		return "circular"
	}
	return "linear"
}

// ErrInvalidChar is returned when a sequence contains a character outside
// the IUPAC nucleotide alphabet.
var ErrInvalidChar = errors.New("invalid sequence character")

// ErrDegenerateTopology is returned when circular index arithmetic is
// attempted on a zero-length sequence.
var ErrDegenerateTopology = errors.New("degenerate topology: zero-length circular sequence")

// iupacBases is every accepted sequence character (upper-case)
const iupacBases = "ACGTRYSWKMBDHVN"

// Seq is an immutable DNA sequence with a topology. Create with New so the
// character set is validated once, up front.
type Seq struct {
	// ID is the sequence's name, eg the FASTA header it was read from
	ID string

	// Bases is the upper-case sequence itself
	Bases string

	// Topology is linear or circular
	Topology Topology
}

// New validates and upper-cases bases and returns a Seq.
func New(id, bases string, topology Topology) (Seq, error) {
	bases = strings.ToUpper(strings.TrimSpace(bases))
	for i := 0; i < len(bases); i++ {
		if !strings.ContainsRune(iupacBases, rune(bases[i])) {
			return Seq{}, fmt.Errorf("%w: %q at index %d of %s", ErrInvalidChar, bases[i], i, id)
		}
	}

	return Seq{ID: id, Bases: bases, Topology: topology}, nil
}

// Len is the number of bases.
func (s Seq) Len() int {
	return len(s.Bases)
}

// Range returns the bases in [start, end). If end < start on a circular
// sequence the slice wraps the origin: tail of the sequence concatenated
// with its head. Indexes are taken mod length.
func (s Seq) Range(start, end int) (string, error) {
	n := len(s.Bases)
	if n == 0 {
		return "", ErrDegenerateTopology
	}

	if s.Topology == Linear {
		if start < 0 || end > n || end < start {
			return "", fmt.Errorf("range [%d,%d) out of bounds of linear %s (%d bp)", start, end, s.ID, n)
		}
		return s.Bases[start:end], nil
	}

	start = ((start % n) + n) % n
	end = ((end % n) + n) % n
	if end >= start {
		return s.Bases[start:end], nil
	}
	return s.Bases[start:] + s.Bases[:end], nil
}

// RevComp returns the reverse complement of a sequence of IUPAC characters.
func RevComp(bases string) string {
	comp := map[byte]byte{
		'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G',
		'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W',
		'K': 'M', 'M': 'K', 'B': 'V', 'V': 'B',
		'D': 'H', 'H': 'D', 'N': 'N', 'X': 'X',
	}

	rc := make([]byte, len(bases))
	for i := 0; i < len(bases); i++ {
		c, ok := comp[bases[len(bases)-1-i]]
		if !ok {
			c = 'N'
		}
		rc[i] = c
	}
	return string(rc)
}
