// Package plan models cloning actions (digest, ligate, Golden Gate) as
// state transitions over a pool of constructs and fragments, and runs a
// beam search over those transitions to find a multi-step cloning strategy
// that builds a target assembly.
package plan

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"cloneplan/internal/digest"
	"cloneplan/internal/seq"
)

// Feature is an annotated region of a construct, eg a CDS.
type Feature struct {
	Label string `yaml:"label" json:"label"`

	// Kind of feature; only "CDS" participates in frame checks
	Kind string `yaml:"kind" json:"kind"`

	// Start and End are 0-based half-open over the construct
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`

	// Frame is the feature's reading frame (start mod 3); filled in at
	// load time when omitted
	Frame int `yaml:"frame" json:"frame"`

	// Direction is +1 for the top strand, -1 for the bottom
	Direction int `yaml:"direction" json:"direction"`

	// Protected features must not be cut when internal-cut avoidance is on
	Protected bool `yaml:"protected" json:"protected"`
}

// Construct is a named input sequence with optional features.
type Construct struct {
	Name     string
	Seq      seq.Seq
	Features []Feature
}

// NewConstruct validates the sequence and feature spans.
func NewConstruct(name, bases string, topology seq.Topology, features []Feature) (Construct, error) {
	s, err := seq.New(name, bases, topology)
	if err != nil {
		return Construct{}, err
	}

	for i, f := range features {
		if f.Start < 0 || f.End > s.Len() || f.End <= f.Start {
			return Construct{}, fmt.Errorf("feature %s of %s has span [%d,%d) outside [0,%d)", f.Label, name, f.Start, f.End, s.Len())
		}
		if f.Direction == 0 {
			features[i].Direction = 1
		}
		if f.Frame == 0 && f.Kind == "CDS" {
			features[i].Frame = f.Start % 3
		}
	}

	return Construct{Name: name, Seq: s, Features: features}, nil
}

// junction records one join made during assembly, for scoring and for
// checking the target's junction requirements.
type junction struct {
	// left and right are the part names either side of the join
	left, right string

	// directional is whether the join fixed relative orientation
	directional bool

	// scar is the length of sequence regenerated at the join
	scar int

	// frameOK is whether downstream CDS frames survived the join
	frameOK bool
}

// part is one item in the planner's pool: an intact construct or a
// fragment released by a digest. Immutable once created.
type part struct {
	name     string
	bases    string
	circular bool

	left, right digest.End

	// parts is the ordered list of target-part names this part contains
	parts []string

	// junctions made while assembling this part
	junctions []junction

	features []Feature

	// dephos marks a part whose every piece was dephosphorylated; it
	// cannot ligate to itself
	dephos bool
}

// newPart wraps an input construct.
func newPart(c Construct) part {
	return part{
		name:     c.Name,
		bases:    c.Seq.Bases,
		circular: c.Seq.Topology == seq.Circular,
		parts:    []string{c.Name},
		features: append([]Feature(nil), c.Features...),
	}
}

func (p part) topology() seq.Topology {
	if p.circular {
		return seq.Circular
	}
	return seq.Linear
}

// signature is a canonical digest of a part's content, independent of how
// it was produced.
func (p part) signature() string {
	return fmt.Sprintf("%s|%s|%s:%s:%d|%s:%s:%d|%t",
		p.bases, p.topology(),
		p.left.Type, p.left.Seq, p.left.Len,
		p.right.Type, p.right.Seq, p.right.Len,
		p.dephos)
}

// stateSignature derives the content signature of a whole pool of parts:
// a digest over the sorted part signatures plus a summary of the steps
// taken. Step records themselves are never hashed.
func stateSignature(parts []part, steps []Step) string {
	sigs := make([]string, 0, len(parts))
	for _, p := range parts {
		sigs = append(sigs, p.signature())
	}
	sort.Strings(sigs)

	kinds := make([]string, 0, len(steps))
	for _, s := range steps {
		kinds = append(kinds, s.Kind)
	}
	sort.Strings(kinds)

	h := sha1.Sum([]byte(strings.Join(sigs, "\n") + "\n--\n" + strings.Join(kinds, ",")))
	return hex.EncodeToString(h[:])
}
