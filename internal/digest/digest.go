// Package digest turns a sequence and a set of enzymes into fragments:
// cut sites are resolved on both strands, fragments are assembled with
// correct circular wrap-around, and each fragment boundary is annotated
// with the overhang the producing enzyme leaves.
package digest

import (
	"sort"

	"cloneplan/internal/enzyme"
	"cloneplan/internal/seq"
)

// Fragment is a half-open [Start, End) span of the digested sequence.
// End < Start encodes the wrap-around fragment of a circular digest, whose
// length is (n-Start)+End. Fragments are ordered by Start, wrap last.
type Fragment struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Length int `json:"length"`

	// LeftEnd and RightEnd annotate the boundaries at Start and End
	LeftEnd  End `json:"leftEnd"`
	RightEnd End `json:"rightEnd"`

	// Seq is the fragment's sequence, only set when requested
	Seq string `json:"seq,omitempty"`
}

// Wraps is whether this fragment crosses the circular origin.
func (f Fragment) Wraps() bool {
	return f.End < f.Start
}

// Options adjust a digest.
type Options struct {
	// Linearize splits a circular sequence with exactly one cut into two
	// fragments instead of leaving the circle intact
	Linearize bool

	// WithSeq materializes each fragment's sequence
	WithSeq bool
}

// Digest cuts s with the given enzymes and assembles the fragments.
// The fragment lengths of any digest sum to the sequence length.
func Digest(s seq.Seq, enzymes []enzyme.Enzyme, opt Options) ([]Fragment, error) {
	n := s.Len()
	if n == 0 && s.Topology == seq.Circular {
		return nil, seq.ErrDegenerateTopology
	}

	sites, err := CutSites(s, enzymes)
	if err != nil {
		return nil, err
	}

	byPos := make(map[int]CutSite, len(sites))
	for _, site := range sites {
		byPos[site.Pos] = site
	}

	// the end annotation at a boundary: the cutter's overhang if a cut
	// sits there, a natural terminus otherwise
	endFor := func(pos int) (End, error) {
		site, cut := byPos[pos]
		if !cut {
			return naturalEnd(), nil
		}
		return endAt(s, pos, site.Enzymes[0])
	}

	var frags []Fragment
	switch {
	case len(sites) == 0:
		frags = []Fragment{{Start: 0, End: n, Length: n, LeftEnd: naturalEnd(), RightEnd: naturalEnd()}}

	case s.Topology == seq.Linear:
		frags, err = linearFragments(s, sites, endFor)

	case len(sites) == 1 && !opt.Linearize:
		// a single cut doesn't release anything from a circle: one intact
		// fragment whose two (identical) ends reference the cut
		cutEnd, endErr := endFor(sites[0].Pos)
		if endErr != nil {
			return nil, endErr
		}
		frags = []Fragment{{Start: sites[0].Pos, End: sites[0].Pos, Length: n, LeftEnd: cutEnd, RightEnd: cutEnd}}

	case len(sites) == 1 && opt.Linearize:
		frags, err = linearizedFragments(s, sites[0])

	default:
		frags, err = circularFragments(s, sites, endFor)
	}
	if err != nil {
		return nil, err
	}

	if opt.WithSeq {
		for i := range frags {
			if err := materialize(s, &frags[i]); err != nil {
				return nil, err
			}
		}
	}
	return frags, nil
}

// linearFragments splits a linear sequence at each cut, with synthetic
// boundaries at 0 and n for the natural termini.
func linearFragments(s seq.Seq, sites []CutSite, endFor func(int) (End, error)) ([]Fragment, error) {
	n := s.Len()

	bounds := []int{0}
	for _, site := range sites {
		if site.Pos > 0 && site.Pos < n {
			bounds = append(bounds, site.Pos)
		}
	}
	bounds = append(bounds, n)

	frags := make([]Fragment, 0, len(bounds)-1)
	for i := 1; i < len(bounds); i++ {
		a, b := bounds[i-1], bounds[i]

		left, err := endFor(a)
		if err != nil {
			return nil, err
		}
		if a == 0 {
			left = naturalEnd()
		}
		right, err := endFor(b)
		if err != nil {
			return nil, err
		}
		if b == n {
			right = naturalEnd()
		}

		frags = append(frags, Fragment{Start: a, End: b, Length: b - a, LeftEnd: left, RightEnd: right})
	}
	return frags, nil
}

// linearizedFragments handles the single-cut circular digest with the
// linearize option: the circle is opened at the cut and split again at the
// origin, two fragments whose four boundaries all reference the one cut.
func linearizedFragments(s seq.Seq, site CutSite) ([]Fragment, error) {
	n := s.Len()
	cutEnd, err := endAt(s, site.Pos, site.Enzymes[0])
	if err != nil {
		return nil, err
	}

	if site.Pos == 0 {
		return []Fragment{{Start: 0, End: n, Length: n, LeftEnd: cutEnd, RightEnd: cutEnd}}, nil
	}

	return []Fragment{
		{Start: 0, End: site.Pos, Length: site.Pos, LeftEnd: cutEnd, RightEnd: cutEnd},
		{Start: site.Pos, End: 0, Length: n - site.Pos, LeftEnd: cutEnd, RightEnd: cutEnd},
	}, nil
}

// circularFragments splits a circular sequence with 2+ cuts. The sorted cut
// list is extended with (firstCut + n) so each consecutive pair produces a
// fragment; exactly one fragment wraps the origin (End < Start).
func circularFragments(s seq.Seq, sites []CutSite, endFor func(int) (End, error)) ([]Fragment, error) {
	n := s.Len()

	cuts := make([]int, 0, len(sites)+1)
	for _, site := range sites {
		cuts = append(cuts, site.Pos)
	}
	sort.Ints(cuts)
	cuts = append(cuts, cuts[0]+n)

	frags := make([]Fragment, 0, len(cuts)-1)
	for i := 1; i < len(cuts); i++ {
		a := cuts[i-1] % n
		b := cuts[i] % n

		length := b - a
		if b < a {
			length = (n - a) + b
		}

		left, err := endFor(a)
		if err != nil {
			return nil, err
		}
		right, err := endFor(b)
		if err != nil {
			return nil, err
		}

		frags = append(frags, Fragment{Start: a, End: b, Length: length, LeftEnd: left, RightEnd: right})
	}
	return frags, nil
}

// materialize fills in a fragment's sequence: a direct slice for
// non-wrapping fragments, tail+head for the wrap fragment, and a rotation
// for an intact single-cut circle.
func materialize(s seq.Seq, f *Fragment) error {
	if f.Length == s.Len() && f.Start == f.End {
		// intact circle, rotated to the cut
		f.Seq = s.Bases[f.Start:] + s.Bases[:f.Start]
		return nil
	}

	bases, err := s.Range(f.Start, f.End)
	if err != nil {
		return err
	}
	f.Seq = bases
	return nil
}
