package digest

import (
	"cloneplan/internal/enzyme"
	"cloneplan/internal/seq"
)

// End describes one boundary of a fragment: the overhang type and length,
// the sticky sequence (5'->3') if any, and the enzyme that produced it.
// A natural terminus is blunt with length 0 and no enzyme.
type End struct {
	// Type of overhang left at this boundary
	Type enzyme.OverhangType `json:"type"`

	// Seq is the single-stranded sticky sequence, read 5'->3'
	Seq string `json:"seq,omitempty"`

	// Len is the overhang length, 0 for blunt
	Len int `json:"len"`

	// Enzyme that made this end, empty for a natural terminus
	Enzyme string `json:"enzyme,omitempty"`
}

// naturalEnd is the terminus of an uncut linear molecule
func naturalEnd() End {
	return End{Type: enzyme.Blunt}
}

// endAt derives the End produced by a cut at pos. The two fragment ends a
// single cut produces share one physical sticky pair, so both are derived
// from the cut position alone and report the same overhang content.
func endAt(s seq.Seq, pos int, enz enzyme.Enzyme) (End, error) {
	k, err := enz.OverhangLen()
	if err != nil {
		return End{}, err
	}

	t, err := enz.OverhangType()
	if err != nil {
		return End{}, err
	}
	if k == 0 {
		t = enzyme.Blunt
	}

	end := End{Type: t, Len: k, Enzyme: enz.Name}
	if k == 0 {
		return end, nil
	}

	// 5' overhangs are the k bases just after the cut on the top strand,
	// 3' overhangs the k bases just before it
	var sticky string
	if t == enzyme.FivePrime {
		sticky, err = stickyRange(s, pos, pos+k)
	} else {
		sticky, err = stickyRange(s, pos-k, pos)
	}
	if err != nil {
		return End{}, err
	}

	end.Seq = sticky
	return end, nil
}

// stickyRange slices [start, end) tolerating circular wrap and clamping
// linear out-of-range overhangs (a cut near a linear terminus can leave a
// truncated extension).
func stickyRange(s seq.Seq, start, end int) (string, error) {
	if s.Topology == seq.Linear {
		if start < 0 {
			start = 0
		}
		if end > s.Len() {
			end = s.Len()
		}
		if end < start {
			end = start
		}
	}
	return s.Range(start, end)
}
