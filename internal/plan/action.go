package plan

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloneplan/internal/digest"
	"cloneplan/internal/enzyme"
	"cloneplan/internal/ligate"
	"cloneplan/internal/seq"
)

// Kind is the closed set of cloning action kinds.
type Kind int

const (
	KindDigest Kind = iota
	KindLigate
	KindGoldenGate
	KindPCR
)

func (k Kind) String() string {
	switch k {
	case KindDigest:
		return "digest"
	case KindLigate:
		return "ligate"
	case KindGoldenGate:
		return "goldengate"
	case KindPCR:
		return "pcr"
	}
	return "unknown"
}

// errPCRNotSimulated: PCR is an accepted action kind but amplification is
// not simulated; applying it fails fast rather than inventing an amplicon.
var errPCRNotSimulated = errors.New("pcr actions are not simulated")

// applyPCR always fails. The planner never enumerates PCR actions, but a
// hand-written plan naming one gets a clear refusal instead of a fake
// amplicon.
func applyPCR(Action) (result, error) {
	return result{}, errPCRNotSimulated
}

// Action is one cloning operation the planner can take.
type Action struct {
	Kind Kind

	// Inputs are the part names consumed
	Inputs []string

	// Enzymes used, by name
	Enzymes []string

	// Dephosphorylate records backbone dephosphorylation on a digest; it
	// blocks self-ligation of the released parts downstream
	Dephosphorylate bool
}

// Diagnostics report why an action application is or isn't usable.
type Diagnostics struct {
	InternalCutViolation    bool `json:"internalCutViolation,omitempty"`
	FrameViolation          bool `json:"frameViolation,omitempty"`
	DirectionalityViolation bool `json:"directionalityViolation,omitempty"`
}

// result is one application of an action: the parts it produced, how the
// pool changed, and the diagnostics to score or prune on.
type result struct {
	outputs   []part
	consumed  []string
	diags     Diagnostics
	junctions []junction
}

// applyDigest cuts one part with the given enzymes. Every released
// fragment joins the pool; the fragment holding the input's payload (all
// of its features, or the largest fragment when it has none) inherits the
// input's target-part identity.
func applyDigest(p part, enzymes []enzyme.Enzyme, dephos bool) (result, error) {
	s, err := seq.New(p.name, p.bases, p.topology())
	if err != nil {
		return result{}, err
	}

	sites, err := digest.CutSites(s, enzymes)
	if err != nil {
		return result{}, err
	}
	if len(sites) == 0 {
		return result{}, fmt.Errorf("%v does not cut %s", enzymeNames(enzymes), p.name)
	}

	// a single-cut circle comes back as one intact fragment rotated to
	// the cut, with both ends annotated; released as a linear part below
	// it is exactly the linearized backbone
	frags, err := digest.Digest(s, enzymes, digest.Options{WithSeq: true})
	if err != nil {
		return result{}, err
	}

	var diags Diagnostics
	for _, site := range sites {
		for _, f := range p.features {
			if f.Protected && site.Pos > f.Start && site.Pos < f.End {
				diags.InternalCutViolation = true
			}
		}
	}

	payload := payloadIndex(frags, p.features, len(p.bases))

	names := enzymeNames(enzymes)
	outputs := make([]part, 0, len(frags))
	for i, frag := range frags {
		out := part{
			name:      fmt.Sprintf("%s/%s.%d", p.name, strings.Join(names, "+"), i+1),
			bases:     frag.Seq,
			left:      frag.LeftEnd,
			right:     frag.RightEnd,
			junctions: append([]junction(nil), p.junctions...),
			features:  remapFeatures(p.features, frag, len(p.bases)),
			dephos:    dephos,
		}
		if i == payload {
			out.parts = append([]string(nil), p.parts...)
		}
		outputs = append(outputs, out)
	}

	return result{outputs: outputs, consumed: []string{p.name}, diags: diags}, nil
}

// applyDigestAll cuts several parts in one reaction with a shared enzyme
// set, merging their released fragments into one result.
func applyDigestAll(parts []part, enzymes []enzyme.Enzyme, dephosFor func(part) bool) (result, error) {
	var merged result
	for _, p := range parts {
		res, err := applyDigest(p, enzymes, dephosFor(p))
		if err != nil {
			return result{}, err
		}

		merged.outputs = append(merged.outputs, res.outputs...)
		merged.consumed = append(merged.consumed, res.consumed...)
		if res.diags.InternalCutViolation {
			merged.diags.InternalCutViolation = true
		}
	}
	return merged, nil
}

// payloadIndex picks the fragment that carries the part's identity: the
// one containing every feature, falling back to the longest fragment.
func payloadIndex(frags []digest.Fragment, features []Feature, n int) int {
	if len(features) > 0 {
		for i, frag := range frags {
			if len(remapFeatures(features, frag, n)) == len(features) {
				return i
			}
		}
	}

	longest := 0
	for i, frag := range frags {
		if frag.Length > frags[longest].Length {
			longest = i
		}
	}
	return longest
}

// remapFeatures shifts feature coordinates from the source construct into
// a fragment's local coordinates, dropping features the fragment doesn't
// fully contain. n is the source length (only needed for wrap fragments;
// pass 0 for containment checks on non-wrapping inputs).
func remapFeatures(features []Feature, frag digest.Fragment, n int) []Feature {
	var kept []Feature
	for _, f := range features {
		switch {
		case !frag.Wraps() && frag.Start != frag.End && f.Start >= frag.Start && f.End <= frag.End:
			f.Start -= frag.Start
			f.End -= frag.Start
			kept = append(kept, f)

		case frag.Wraps() && f.Start >= frag.Start:
			f.Start -= frag.Start
			f.End -= frag.Start
			kept = append(kept, f)

		case frag.Wraps() && f.End <= frag.End:
			f.Start += n - frag.Start
			f.End += n - frag.Start
			kept = append(kept, f)

		case frag.Start == frag.End && frag.Length == n:
			// intact rotated circle: keep features that don't straddle
			// the rotation point
			start := ((f.Start - frag.Start) % n + n) % n
			if start+(f.End-f.Start) <= n {
				f.End = start + (f.End - f.Start)
				f.Start = start
				kept = append(kept, f)
			}
		}
	}
	return kept
}

// applyLigate joins a to b at a's right end, or circularizes a single part
// whose own ends are compatible. minOverhang and keepFrame come from the
// planner's constraints.
func applyLigate(a, b part, minOverhang int, keepFrame bool) (result, error) {
	if a.circular || b.circular {
		return result{}, fmt.Errorf("cannot ligate circular part %s", a.name)
	}

	includeBlunt := minOverhang == 0
	if a.name == b.name {
		// self-circularization
		if a.dephos {
			return result{}, fmt.Errorf("%s is dephosphorylated and cannot self-ligate", a.name)
		}
		if !ligate.Compatible(a.right, a.left, includeBlunt) || a.right.Len < minOverhang {
			return result{}, fmt.Errorf("%w: %s onto itself", ligate.ErrUnresolvableJunction, a.name)
		}

		j := junction{
			left:        lastName(a.parts),
			right:       firstName(a.parts),
			directional: ligate.Directional(a.right),
			scar:        a.right.Len,
			frameOK:     true,
		}

		out := a
		out.name = a.name + "(circular)"
		out.circular = true
		out.junctions = append(append([]junction(nil), a.junctions...), j)
		out.left, out.right = digest.End{Type: enzyme.Blunt}, digest.End{Type: enzyme.Blunt}

		var diags Diagnostics
		if !j.directional {
			diags.DirectionalityViolation = true
		}
		return result{outputs: []part{out}, consumed: []string{a.name}, diags: diags, junctions: []junction{j}}, nil
	}

	if !ligate.Compatible(a.right, b.left, includeBlunt) || a.right.Len < minOverhang {
		return result{}, fmt.Errorf("%w: %s to %s", ligate.ErrUnresolvableJunction, a.name, b.name)
	}

	j := junction{
		left:        lastName(a.parts),
		right:       firstName(b.parts),
		directional: ligate.Directional(a.right),
		scar:        a.right.Len,
		frameOK:     true,
	}

	// features of b shift right by a's length; a junction that shifts a
	// downstream CDS off its modulo-3 frame is a frame violation
	shifted := make([]Feature, 0, len(a.features)+len(b.features))
	shifted = append(shifted, a.features...)
	for _, f := range b.features {
		f.Start += len(a.bases)
		f.End += len(a.bases)
		if f.Kind == "CDS" && f.Start%3 != f.Frame {
			j.frameOK = false
		}
		shifted = append(shifted, f)
	}

	var diags Diagnostics
	if !j.directional {
		diags.DirectionalityViolation = true
	}
	if keepFrame && !j.frameOK {
		diags.FrameViolation = true
	}

	out := part{
		name:      a.name + "+" + b.name,
		bases:     a.bases + b.bases,
		left:      a.left,
		right:     b.right,
		parts:     append(append([]string(nil), a.parts...), b.parts...),
		junctions: append(append(append([]junction(nil), a.junctions...), b.junctions...), j),
		features:  shifted,
		dephos:    a.dephos && b.dephos,
	}

	return result{outputs: []part{out}, consumed: []string{a.name, b.name}, diags: diags, junctions: []junction{j}}, nil
}

// applyGoldenGate simulates a one-pot Type IIS assembly: digest every
// input with the one enzyme, take each input's payload fragment, and chain
// them in input order. Junction overhangs must be unique and directional
// for the pot to resolve to a single product.
func applyGoldenGate(inputs []part, enz enzyme.Enzyme, minOverhang int) (result, error) {
	if !enz.TypeIIS {
		return result{}, fmt.Errorf("%s is not a Type IIS enzyme", enz.Name)
	}

	payloads := make([]part, 0, len(inputs))
	consumed := make([]string, 0, len(inputs))
	var diags Diagnostics
	for _, in := range inputs {
		res, err := applyDigest(in, []enzyme.Enzyme{enz}, false)
		if err != nil {
			return result{}, err
		}
		if res.diags.InternalCutViolation {
			diags.InternalCutViolation = true
		}

		found := false
		for _, out := range res.outputs {
			if len(out.parts) > 0 {
				payloads = append(payloads, out)
				found = true
				break
			}
		}
		if !found {
			return result{}, fmt.Errorf("no payload fragment released from %s by %s", in.name, enz.Name)
		}
		consumed = append(consumed, in.name)
	}

	// every junction overhang must be distinct, or the pot scrambles
	seen := map[string]bool{}
	for _, p := range payloads {
		if p.right.Len < minOverhang || p.right.Len == 0 {
			return result{}, fmt.Errorf("%w: %s overhang too short for golden gate", ligate.ErrUnresolvableJunction, p.name)
		}
		if !ligate.Directional(p.right) {
			diags.DirectionalityViolation = true
		}
		if seen[p.right.Seq] {
			return result{}, fmt.Errorf("%w: duplicate overhang %s in golden gate pot", ligate.ErrUnresolvableJunction, p.right.Seq)
		}
		seen[p.right.Seq] = true
	}

	assembled := payloads[0]
	var junctions []junction
	for _, next := range payloads[1:] {
		res, err := applyLigate(assembled, next, minOverhang, false)
		if err != nil {
			return result{}, err
		}
		assembled = res.outputs[0]
		junctions = append(junctions, res.junctions...)
	}

	circ, err := applyLigate(assembled, assembled, minOverhang, false)
	if err != nil {
		return result{}, err
	}
	assembled = circ.outputs[0]
	junctions = append(junctions, circ.junctions...)

	assembled.name = "goldengate(" + strings.Join(consumed, ",") + ")"
	return result{outputs: []part{assembled}, consumed: consumed, diags: diags, junctions: junctions}, nil
}

func enzymeNames(enzymes []enzyme.Enzyme) []string {
	names := make([]string, 0, len(enzymes))
	for _, e := range enzymes {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

func firstName(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func lastName(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
