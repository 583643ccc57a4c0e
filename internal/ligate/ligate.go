// Package ligate decides which fragment ends can anneal: concrete sticky
// ends from a digest, or theoretical IUPAC templates derived straight from
// enzyme metadata before any sequence exists.
package ligate

import (
	"errors"

	"cloneplan/internal/digest"
	"cloneplan/internal/enzyme"
	"cloneplan/internal/seq"
)

// ErrUnresolvableJunction is returned when no compatible end pair exists
// for a requested join.
var ErrUnresolvableJunction = errors.New("no compatible end pair for junction")

// Compatible reports whether two concrete fragment ends can be ligated.
// Blunt ends only pair when includeBlunt is set; sticky ends must agree in
// type and length and the sequences must be exact reverse complements.
// Symmetric: Compatible(a, b) == Compatible(b, a).
func Compatible(a, b digest.End, includeBlunt bool) bool {
	if a.Len == 0 || b.Len == 0 {
		return includeBlunt && a.Len == 0 && b.Len == 0
	}
	if a.Type != b.Type || a.Len != b.Len {
		return false
	}
	return b.Seq == seq.RevComp(a.Seq)
}

// Directional reports whether a compatible pair fixes relative orientation.
// A palindromic overhang anneals to itself in either orientation, so only a
// non-palindromic template is directional.
func Directional(a digest.End) bool {
	if a.Len == 0 {
		return false
	}
	return a.Seq != seq.RevComp(a.Seq)
}

// TheoreticalEnd is the overhang an enzyme would leave, described as an
// IUPAC template rather than concrete bases.
type TheoreticalEnd struct {
	Enzyme   string              `json:"enzyme"`
	Type     enzyme.OverhangType `json:"type"`
	Template string              `json:"template"`
	Len      int                 `json:"len"`
}

// NewTheoreticalEnd derives an enzyme's overhang template. Enzymes without
// a cut index can't produce an end (ErrMissingCutIndex).
func NewTheoreticalEnd(enz enzyme.Enzyme) (TheoreticalEnd, error) {
	t, err := enz.OverhangType()
	if err != nil {
		return TheoreticalEnd{}, err
	}
	k, err := enz.OverhangLen()
	if err != nil {
		return TheoreticalEnd{}, err
	}
	template, err := enz.OverhangTemplate()
	if err != nil {
		return TheoreticalEnd{}, err
	}

	return TheoreticalEnd{Enzyme: enz.Name, Type: t, Template: template, Len: k}, nil
}

// TemplateDirectional reports whether a theoretical end would fix
// orientation: its template must not be its own reverse complement.
func TemplateDirectional(t TheoreticalEnd) bool {
	if t.Len == 0 {
		return false
	}
	return t.Template != seq.RevComp(t.Template)
}

// TheoreticallyCompatible reports whether the ends two enzymes leave could
// ever anneal. The sequence test is IUPAC-aware: each aligned position must
// share at least one concrete base after complementing, so degenerate
// templates pass when any concrete realization would.
func TheoreticallyCompatible(a, b TheoreticalEnd, includeBlunt bool) bool {
	if a.Len == 0 || b.Len == 0 {
		return includeBlunt && a.Len == 0 && b.Len == 0
	}
	if a.Type != b.Type || a.Len != b.Len {
		return false
	}
	return enzyme.TemplatesCompatible(a.Template, b.Template)
}

// Pair is one compatible pairing between ends of a batch, by index.
type Pair struct {
	A, B int

	// Directional is whether the junction fixes orientation
	Directional bool
}

// PairOptions filter the pairs returned by Pairs.
type PairOptions struct {
	// IncludeBlunt admits blunt-blunt pairings
	IncludeBlunt bool

	// DirectionalOnly drops palindromic (orientation-ambiguous) pairs
	DirectionalOnly bool

	// MinOverhang drops pairs with shorter sticky ends
	MinOverhang int
}

// Pairs returns every compatible (i, j) pairing, i < j, plus self-pairs
// (i, i) for self-complementary ends, in ascending index order.
func Pairs(ends []digest.End, opt PairOptions) []Pair {
	var pairs []Pair
	for i := 0; i < len(ends); i++ {
		for j := i; j < len(ends); j++ {
			if !Compatible(ends[i], ends[j], opt.IncludeBlunt) {
				continue
			}
			if ends[i].Len < opt.MinOverhang {
				continue
			}

			directional := Directional(ends[i])
			if opt.DirectionalOnly && !directional {
				continue
			}
			pairs = append(pairs, Pair{A: i, B: j, Directional: directional})
		}
	}
	return pairs
}
